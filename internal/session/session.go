// Package session holds the state scoped to a single sync run.
//
// A Session is created when a run starts and discarded when it ends.
// The 30-day trading volume, the resolved fee tier and the order-detail
// cache are computed lazily, at most once, and never shared across runs.
//
// A Session is not safe for concurrent use.
package session

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"

	"github.com/rickgao/ghostsync/internal/fees"
	"github.com/rickgao/ghostsync/internal/liquidity"
	"github.com/rickgao/ghostsync/internal/model"
)

// DefaultVolumeWindow is the trailing window used for fee tier volume.
const DefaultVolumeWindow = 30 * 24 * time.Hour

// Source is the part of the brokerage client a session needs.
type Source interface {
	liquidity.OrderFetcher
	FetchActivities(ctx context.Context, q model.ActivityQuery) ([]model.SourceActivity, error)
}

// Options configures a Session.
type Options struct {
	Resolver     *fees.Resolver
	VolumeWindow time.Duration
	Now          time.Time
	Logger       *slog.Logger
}

// Session is the run-scoped context passed to each step of a sync.
type Session struct {
	id        uuid.UUID
	now       time.Time
	accountID string

	source     Source
	resolver   *fees.Resolver
	window     time.Duration
	orders     *cache.Cache
	classifier *liquidity.Classifier
	logger     *slog.Logger

	volumeDone bool
	volume     decimal.Decimal
	tier       *fees.Tier
}

// New starts a session with a fresh run id.
func New(src Source, opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	resolver := opts.Resolver
	if resolver == nil {
		resolver = fees.NewResolver(nil, logger)
	}
	window := opts.VolumeWindow
	if window <= 0 {
		window = DefaultVolumeWindow
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	id := uuid.New()
	logger = logger.With("run_id", id.String())
	orders := cache.New(cache.NoExpiration, 0)

	return &Session{
		id:         id,
		now:        now,
		source:     src,
		resolver:   resolver,
		window:     window,
		orders:     orders,
		classifier: liquidity.NewClassifier(src, orders, logger),
		logger:     logger,
	}
}

// ID returns the run id.
func (s *Session) ID() uuid.UUID { return s.id }

// Now returns the instant the run started.
func (s *Session) Now() time.Time { return s.now }

// AccountID returns the resolved Ghostfolio account id.
func (s *Session) AccountID() string { return s.accountID }

// SetAccountID records the Ghostfolio account the run writes to.
func (s *Session) SetAccountID(id string) { s.accountID = id }

// Logger returns a logger tagged with the run id.
func (s *Session) Logger() *slog.Logger { return s.logger }

// Volume returns the trailing crypto trading volume. It is fetched on first
// use; a failed fetch counts as zero volume. A fetch cut short by ctx also
// yields zero but is retried on the next call.
func (s *Session) Volume(ctx context.Context) decimal.Decimal {
	if s.volumeDone {
		return s.volume
	}

	since := s.now.Add(-s.window)
	acts, err := s.source.FetchActivities(ctx, model.ActivityQuery{
		Types: []string{"FILL"},
		After: since,
	})
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return decimal.Zero
	}
	s.volumeDone = true
	if err != nil {
		s.logger.Warn("trailing volume fetch failed, using zero volume", "error", err)
		s.volume = decimal.Zero
		return s.volume
	}

	s.volume = fees.TrailingVolume(acts, since, s.now)
	s.logger.Info("trailing crypto volume",
		"volume", s.volume.StringFixed(2),
		"window", s.window.String(),
		"fills", len(acts),
	)
	return s.volume
}

// Tier returns the fee tier for the session volume.
func (s *Session) Tier(ctx context.Context) fees.Tier {
	if s.tier != nil {
		return *s.tier
	}
	t := s.resolver.Resolve(s.Volume(ctx))
	if !s.volumeDone {
		return t
	}
	s.tier = &t
	s.logger.Info("fee tier resolved", "tier", t.String())
	return t
}

// Liquidity classifies the order behind a fill.
func (s *Session) Liquidity(ctx context.Context, orderID string) model.Liquidity {
	return s.classifier.Classify(ctx, orderID)
}

// BuyFeeRate returns the crypto fee rate for the fill of orderID.
func (s *Session) BuyFeeRate(ctx context.Context, orderID string) decimal.Decimal {
	tier := s.Tier(ctx)
	l := s.Liquidity(ctx, orderID)
	rate := tier.Rate(l)
	s.logger.Debug("crypto fee rate",
		"order_id", orderID,
		"liquidity", string(l),
		"rate", rate.String(),
	)
	return rate
}

// CachedOrders returns the number of order lookups held by the session.
func (s *Session) CachedOrders() int {
	return s.orders.ItemCount()
}

// Close discards the run's cached state.
func (s *Session) Close() {
	s.orders.Flush()
	s.volumeDone = false
	s.volume = decimal.Zero
	s.tier = nil
}
