// Package liquidity classifies Alpaca orders as maker or taker.
//
// Alpaca does not report liquidity per fill, so it is inferred from the
// order type and how quickly the order filled. Whenever the inputs are
// incomplete the order is treated as taker, the more expensive side.
package liquidity

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/rickgao/ghostsync/internal/model"
)

// ImmediateFill is the fill latency under which a limit order is
// assumed to have crossed the book.
const ImmediateFill = time.Second

// Classify returns the liquidity side of o.
func Classify(o model.Order) model.Liquidity {
	switch strings.ToLower(o.Type) {
	case "market":
		return model.Taker
	case "limit":
	default:
		return model.Taker
	}

	if o.SubmittedAt.IsZero() || o.FilledAt.IsZero() {
		return model.Taker
	}
	// A fill stamped before submission is also inconsistent data.
	if o.FilledAt.Sub(o.SubmittedAt) < ImmediateFill {
		return model.Taker
	}
	return model.Maker
}

// OrderFetcher looks up an order by id.
type OrderFetcher interface {
	GetOrder(ctx context.Context, id string) (model.Order, error)
}

// Classifier classifies orders by id. Lookups, including failed ones, are
// stored in the cache so each order is fetched at most once per cache.
type Classifier struct {
	fetcher OrderFetcher
	orders  *cache.Cache
	logger  *slog.Logger
}

// NewClassifier creates a Classifier. A nil cache gets a fresh non-expiring one.
func NewClassifier(fetcher OrderFetcher, orders *cache.Cache, logger *slog.Logger) *Classifier {
	if orders == nil {
		orders = cache.New(cache.NoExpiration, 0)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{fetcher: fetcher, orders: orders, logger: logger}
}

// Classify fetches the order with the given id and classifies it.
// An empty id or a failed lookup yields Taker.
func (c *Classifier) Classify(ctx context.Context, orderID string) model.Liquidity {
	if orderID == "" {
		return model.Taker
	}
	return Classify(c.order(ctx, orderID))
}

func (c *Classifier) order(ctx context.Context, id string) model.Order {
	if v, ok := c.orders.Get(id); ok {
		return v.(model.Order)
	}

	o, err := c.fetcher.GetOrder(ctx, id)
	if err != nil {
		// A canceled lookup says nothing about the order.
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return model.Order{ID: id}
		}
		c.logger.Warn("order lookup failed, assuming taker",
			"order_id", id,
			"error", err,
		)
		o = model.Order{ID: id}
	}

	c.orders.Set(id, o, cache.NoExpiration)
	return o
}
