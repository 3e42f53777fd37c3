package ghostfolio

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/rickgao/ghostsync/internal/model"
)

// ErrAccountNotFound is returned when no account has the requested name.
var ErrAccountNotFound = errors.New("account not found")

type accountsResponse struct {
	Accounts []model.Account `json:"accounts"`
}

// AccountInput is the body of account create and update calls.
type AccountInput struct {
	ID         string  `json:"id,omitempty"`
	Name       string  `json:"name"`
	Currency   string  `json:"currency"`
	Balance    float64 `json:"balance"`
	IsExcluded bool    `json:"isExcluded"`
	PlatformID *string `json:"platformId"`
}

// Platform is a Ghostfolio platform (broker) entry.
type Platform struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ListAccounts fetches every account of the user.
func (c *Client) ListAccounts(ctx context.Context) ([]model.Account, error) {
	var resp accountsResponse
	if err := c.get(ctx, "/api/v1/account", nil, &resp); err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return resp.Accounts, nil
}

// FindAccountByName returns the first account named name, or ErrAccountNotFound.
func (c *Client) FindAccountByName(ctx context.Context, name string) (model.Account, error) {
	accounts, err := c.ListAccounts(ctx)
	if err != nil {
		return model.Account{}, err
	}
	for _, a := range accounts {
		if a.Name == name {
			return a, nil
		}
	}
	return model.Account{}, fmt.Errorf("%q: %w", name, ErrAccountNotFound)
}

// CreateAccount creates an account and returns its id.
// It is not retried, so a lost response cannot create a duplicate.
func (c *Client) CreateAccount(ctx context.Context, in AccountInput) (string, error) {
	in.ID = ""
	body, err := c.doRequest(ctx, http.MethodPost, "/api/v1/account", nil, in, true)
	if err != nil {
		return "", fmt.Errorf("create account: %w", err)
	}

	var created model.Account
	if err := unmarshal(body, &created); err != nil {
		return "", fmt.Errorf("create account: %w", err)
	}
	if _, err := uuid.Parse(created.ID); err != nil {
		return "", fmt.Errorf("create account: invalid id %q: %w", created.ID, err)
	}

	c.logger.Info("created ghostfolio account", "account_id", created.ID, "name", in.Name)
	return created.ID, nil
}

// UpdateAccount replaces the account's name, currency, balance and platform.
func (c *Client) UpdateAccount(ctx context.Context, id string, in AccountInput) error {
	in.ID = id
	if _, err := c.doWithRetry(ctx, http.MethodPut, "/api/v1/account/"+id, nil, in); err != nil {
		return fmt.Errorf("update account %s: %w", id, err)
	}
	return nil
}

// ListPlatforms fetches the platforms known to the instance.
func (c *Client) ListPlatforms(ctx context.Context) ([]Platform, error) {
	var platforms []Platform
	if err := c.get(ctx, "/api/v1/platform", nil, &platforms); err != nil {
		return nil, fmt.Errorf("list platforms: %w", err)
	}
	return platforms, nil
}
