package syncer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rickgao/ghostsync/internal/dedup"
	"github.com/rickgao/ghostsync/internal/fees"
	"github.com/rickgao/ghostsync/internal/ghostfolio"
	"github.com/rickgao/ghostsync/internal/model"
	"github.com/rickgao/ghostsync/internal/session"
	"github.com/rickgao/ghostsync/internal/transform"
)

// DefaultBatchSize is the number of activities per import request.
const DefaultBatchSize = 10

// Source is the brokerage side of a sync.
type Source interface {
	session.Source
	FetchAccount(ctx context.Context) (model.Balance, error)
}

// Destination is the portfolio tracker side of a sync.
type Destination interface {
	FindAccountByName(ctx context.Context, name string) (model.Account, error)
	CreateAccount(ctx context.Context, in ghostfolio.AccountInput) (string, error)
	UpdateAccount(ctx context.Context, id string, in ghostfolio.AccountInput) error
	ListActivities(ctx context.Context, accountIDs ...string) ([]model.ExistingActivity, error)
	ImportActivities(ctx context.Context, batch []model.ImportActivity, dryRun bool) (ghostfolio.ImportResult, error)
	DeleteActivities(ctx context.Context, accountID string) error
}

// Config holds the static inputs of a sync.
type Config struct {
	AccountName  string
	Currency     string // Ghostfolio account currency
	PlatformID   string
	DataSource   string
	Mapping      transform.SymbolMapping
	FeeTiers     fees.Table
	VolumeWindow time.Duration
	BatchSize    int
}

// Options control a single sync run.
type Options struct {
	Days   int  // only fetch activities from the last Days days; 0 means all history
	DryRun bool // validate imports without storing them, skip the balance update
}

// Report counts what a sync run did.
type Report struct {
	RunID          string
	AccountID      string
	Fetched        int
	Transformed    int
	Skipped        int // activity codes with no Ghostfolio equivalent
	Failed         int // records that could not be transformed
	Existing       int
	New            int
	Imported       int
	Batches        int
	FailedBatches  []int // 1-based batch numbers
	BalanceUpdated bool
	Cash           decimal.Decimal
	Equity         decimal.Decimal
	DryRun         bool
}

// Syncer reconciles one Alpaca account into one Ghostfolio account.
type Syncer struct {
	src         Source
	dst         Destination
	cfg         Config
	resolver    *fees.Resolver
	transformer *transform.Transformer
	logger      *slog.Logger
	now         func() time.Time
}

// New creates a Syncer.
func New(src Source, dst Destination, cfg Config, logger *slog.Logger) *Syncer {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.Currency == "" {
		cfg.Currency = "USD"
	}

	return &Syncer{
		src:      src,
		dst:      dst,
		cfg:      cfg,
		resolver: fees.NewResolver(cfg.FeeTiers, logger),
		transformer: transform.New(transform.Options{
			DataSource: cfg.DataSource,
			Mapping:    cfg.Mapping,
		}, logger),
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Sync runs one reconciliation. The returned error is non-nil only for
// failures that stop the run before anything is imported.
func (s *Syncer) Sync(ctx context.Context, opts Options) (Report, error) {
	sess := session.New(s.src, session.Options{
		Resolver:     s.resolver,
		VolumeWindow: s.cfg.VolumeWindow,
		Now:          s.now(),
		Logger:       s.logger,
	})
	defer sess.Close()

	log := sess.Logger()
	rep := Report{RunID: sess.ID().String(), DryRun: opts.DryRun}
	start := time.Now()

	log.Info("starting sync",
		"account_name", s.cfg.AccountName,
		"days", opts.Days,
		"dry_run", opts.DryRun,
	)

	acct, err := s.resolveAccount(ctx, log)
	if err != nil {
		return rep, err
	}
	sess.SetAccountID(acct.ID)
	rep.AccountID = acct.ID
	log.Info("sync state", "state", "account_resolved", "account_id", acct.ID)

	acts, err := s.src.FetchActivities(ctx, fetchQuery(sess.Now(), opts.Days))
	if err != nil {
		return rep, fmt.Errorf("fetch alpaca activities: %w", err)
	}
	rep.Fetched = len(acts)
	log.Info("sync state", "state", "fetched", "count", rep.Fetched)

	candidates, stats := s.transformer.TransformAll(ctx, sess, acts)
	rep.Transformed = stats.Transformed
	rep.Skipped = stats.Skipped
	rep.Failed = stats.Failed
	log.Info("sync state", "state", "transformed",
		"transformed", stats.Transformed,
		"skipped", stats.Skipped,
		"failed", stats.Failed,
	)

	existing, err := s.dst.ListActivities(ctx, acct.ID)
	if err != nil {
		return rep, fmt.Errorf("list ghostfolio activities: %w", err)
	}
	rep.Existing = len(existing)
	log.Info("sync state", "state", "existing_fetched", "count", rep.Existing)

	fresh := dedup.Filter(candidates, existing)
	rep.New = len(fresh)
	log.Info("sync state", "state", "deduplicated", "new", rep.New)

	s.importAll(ctx, log, fresh, opts.DryRun, &rep)
	log.Info("sync state", "state", "imported",
		"imported", rep.Imported,
		"batches", rep.Batches,
		"failed_batches", len(rep.FailedBatches),
	)

	if opts.DryRun {
		log.Info("sync state", "state", "balance_updated", "skipped", "dry run")
	} else {
		s.updateBalance(ctx, log, acct, &rep)
		log.Info("sync state", "state", "balance_updated", "ok", rep.BalanceUpdated)
	}

	log.Info("sync state", "state", "done",
		"fetched", rep.Fetched,
		"transformed", rep.Transformed,
		"new", rep.New,
		"imported", rep.Imported,
		"failed_batches", len(rep.FailedBatches),
		"cash", formatAmount(rep.Cash, s.cfg.Currency),
		"duration", time.Since(start),
	)
	return rep, nil
}

// fetchQuery limits the listing to activities after midnight UTC of the day
// `days` days before now.
func fetchQuery(now time.Time, days int) model.ActivityQuery {
	if days <= 0 {
		return model.ActivityQuery{}
	}
	d := now.AddDate(0, 0, -days)
	return model.ActivityQuery{
		After: time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC),
	}
}

// resolveAccount finds the configured account or creates it with a zero balance.
func (s *Syncer) resolveAccount(ctx context.Context, log *slog.Logger) (model.Account, error) {
	acct, err := s.dst.FindAccountByName(ctx, s.cfg.AccountName)
	if err == nil {
		return acct, nil
	}
	if !errors.Is(err, ghostfolio.ErrAccountNotFound) {
		return model.Account{}, fmt.Errorf("resolve account: %w", err)
	}

	log.Info("account not found, creating", "account_name", s.cfg.AccountName, "currency", s.cfg.Currency)
	id, err := s.dst.CreateAccount(ctx, ghostfolio.AccountInput{
		Name:       s.cfg.AccountName,
		Currency:   s.cfg.Currency,
		Balance:    0,
		PlatformID: s.platformID(model.Account{}),
	})
	if err != nil {
		return model.Account{}, fmt.Errorf("create account: %w", err)
	}

	return model.Account{
		ID:         id,
		Name:       s.cfg.AccountName,
		Currency:   s.cfg.Currency,
		PlatformID: s.platformID(model.Account{}),
	}, nil
}

// platformID prefers the configured platform and keeps the account's otherwise.
func (s *Syncer) platformID(acct model.Account) *string {
	if s.cfg.PlatformID != "" {
		id := s.cfg.PlatformID
		return &id
	}
	return acct.PlatformID
}
