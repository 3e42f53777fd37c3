package broker

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"

	"github.com/rickgao/ghostsync/internal/model"
)

// ErrOrderNotFound is returned by GetOrder when Alpaca has no such order.
var ErrOrderNotFound = errors.New("order not found")

// FetchAccount returns the account's cash and equity.
func (c *Client) FetchAccount(ctx context.Context) (model.Balance, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return model.Balance{}, err
	}

	acct, err := c.sdk.GetAccount()
	if err != nil {
		return model.Balance{}, fmt.Errorf("get account: %w", err)
	}

	return model.Balance{
		Cash:     acct.Cash,
		Equity:   acct.Equity,
		Currency: acct.Currency,
	}, nil
}

// FetchActivityPage fetches one page of activities in ascending order.
func (c *Client) FetchActivityPage(ctx context.Context, q model.ActivityQuery, pageToken string) ([]model.SourceActivity, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	page, err := c.sdk.GetAccountActivities(alpaca.GetAccountActivitiesRequest{
		ActivityTypes: q.Types,
		After:         q.After,
		Until:         q.Until,
		Direction:     "asc",
		PageSize:      c.pageSize,
		PageToken:     pageToken,
	})
	if err != nil {
		return nil, fmt.Errorf("get account activities: %w", err)
	}

	out := make([]model.SourceActivity, 0, len(page))
	for _, a := range page {
		out = append(out, convertActivity(a))
	}
	return out, nil
}

// FetchActivities fetches every activity matching q, oldest first.
func (c *Client) FetchActivities(ctx context.Context, q model.ActivityQuery) ([]model.SourceActivity, error) {
	var (
		all   []model.SourceActivity
		token string
		pages int
	)

	for {
		page, err := c.FetchActivityPage(ctx, q, token)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", pages+1, err)
		}
		pages++
		all = append(all, page...)

		if len(page) < c.pageSize {
			break
		}
		token = page[len(page)-1].ID
	}

	c.logger.Debug("fetched alpaca activities",
		"count", len(all),
		"pages", pages,
		"types", q.Types,
	)
	return all, nil
}

// GetOrder fetches an order by id.
func (c *Client) GetOrder(ctx context.Context, id string) (model.Order, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return model.Order{}, err
	}

	o, err := c.sdk.GetOrder(id)
	if err != nil {
		var apiErr *alpaca.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return model.Order{}, fmt.Errorf("get order %s: %w", id, ErrOrderNotFound)
		}
		return model.Order{}, fmt.Errorf("get order %s: %w", id, err)
	}

	return convertOrder(o), nil
}

func convertActivity(a alpaca.AccountActivity) model.SourceActivity {
	out := model.SourceActivity{
		ID:              a.ID,
		ActivityType:    a.ActivityType,
		Symbol:          a.Symbol,
		Side:            a.Side,
		Qty:             a.Qty,
		Price:           a.Price,
		NetAmount:       a.NetAmount,
		TransactionTime: a.TransactionTime,
		OrderID:         a.OrderID,
		Description:     a.Description,
	}
	if !a.Date.IsZero() {
		out.Date = a.Date.In(time.UTC)
	}
	return out
}

func convertOrder(o *alpaca.Order) model.Order {
	out := model.Order{
		ID:          o.ID,
		Symbol:      o.Symbol,
		Type:        string(o.Type),
		SubmittedAt: o.SubmittedAt,
	}
	if o.FilledAt != nil {
		out.FilledAt = *o.FilledAt
	}
	return out
}
