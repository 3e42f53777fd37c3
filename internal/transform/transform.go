package transform

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/rickgao/ghostsync/internal/dedup"
	"github.com/rickgao/ghostsync/internal/fees"
	"github.com/rickgao/ghostsync/internal/model"
)

// Per-record errors. The record is dropped and the run continues.
var (
	ErrUnknownSide = errors.New("unknown trade side")
	ErrMissingDate = errors.New("activity has no date")
	ErrMissingID   = errors.New("activity has no id")
	ErrInvalidID   = errors.New("activity id contains whitespace")
)

type family int

const (
	trade family = iota + 1
	dividend
	interest
	fee
)

var families = map[string]family{
	"FILL":    trade,
	"DIV":     dividend,
	"DIVCGL":  dividend,
	"DIVCGS":  dividend,
	"DIVFT":   dividend,
	"DIVNRA":  dividend,
	"DIVROC":  dividend,
	"DIVTW":   dividend,
	"DIVTXEX": dividend,
	"INT":     interest,
	"INTNRA":  interest,
	"INTTW":   interest,
	"FEE":     fee,
	"CFEE":    fee,
	"DIVFEE":  fee,
}

// Supported reports whether code is an activity code with a Ghostfolio equivalent.
func Supported(code string) bool {
	_, ok := families[code]
	return ok
}

// Run is the run-scoped state a transform reads.
type Run interface {
	AccountID() string
	BuyFeeRate(ctx context.Context, orderID string) decimal.Decimal
}

// Options configures a Transformer.
type Options struct {
	Currency   string // settlement currency and cash symbol, default USD
	DataSource string // data source for trades and dividends, default YAHOO
	Mapping    SymbolMapping
}

// Transformer converts source activities into candidate Ghostfolio activities.
type Transformer struct {
	currency   string
	dataSource string
	mapping    SymbolMapping
	logger     *slog.Logger
}

// New creates a Transformer.
func New(opts Options, logger *slog.Logger) *Transformer {
	if opts.Currency == "" {
		opts.Currency = "USD"
	}
	if opts.DataSource == "" {
		opts.DataSource = model.DataSourceYahoo
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Transformer{
		currency:   opts.Currency,
		dataSource: opts.DataSource,
		mapping:    opts.Mapping,
		logger:     logger,
	}
}

// Transform maps one source activity. It reports ok=false with a nil error
// for codes that have no Ghostfolio equivalent.
func (t *Transformer) Transform(ctx context.Context, run Run, a model.SourceActivity) (model.Activity, bool, error) {
	fam, ok := families[a.ActivityType]
	if !ok {
		return model.Activity{}, false, nil
	}
	if a.ID == "" {
		return model.Activity{}, false, ErrMissingID
	}
	// The id is stored as one comment token and read back with \S+.
	if strings.ContainsFunc(a.ID, unicode.IsSpace) {
		return model.Activity{}, false, fmt.Errorf("%w: %q", ErrInvalidID, a.ID)
	}

	var (
		out model.Activity
		err error
	)
	switch fam {
	case trade:
		out, err = t.trade(ctx, run, a)
	case dividend:
		out, err = t.dividend(a)
	case interest:
		out, err = t.interest(a)
	case fee:
		out, err = t.fee(a)
	}
	if err != nil {
		return model.Activity{}, false, err
	}

	out.AccountID = run.AccountID()
	out.Currency = t.currency
	out.SourceID = a.ID
	return out, true, nil
}

func (t *Transformer) trade(ctx context.Context, run Run, a model.SourceActivity) (model.Activity, error) {
	var typ model.ActivityType
	switch strings.ToUpper(a.Side) {
	case "BUY":
		typ = model.Buy
	case "SELL":
		typ = model.Sell
	default:
		return model.Activity{}, fmt.Errorf("%w %q", ErrUnknownSide, a.Side)
	}

	date, err := activityDate(a.TransactionTime, a)
	if err != nil {
		return model.Activity{}, err
	}

	qty := a.Qty.Abs()
	if typ == model.Buy && fees.IsCrypto(a.Symbol) {
		rate := run.BuyFeeRate(ctx, a.OrderID)
		qty = qty.Mul(decimal.NewFromInt(1).Sub(rate))
	}

	return model.Activity{
		Comment:       dedup.Token(a.ID),
		DataSource:    t.dataSource,
		Date:          date,
		Fee:           decimal.Zero,
		Quantity:      qty,
		Symbol:        t.mapping.Map(a.Symbol),
		Type:          typ,
		UnitPrice:     a.Price.Abs(),
		SourceOrderID: a.OrderID,
	}, nil
}

func (t *Transformer) dividend(a model.SourceActivity) (model.Activity, error) {
	date, err := activityDate(a.Date, a)
	if err != nil {
		return model.Activity{}, err
	}

	qty := a.Qty.Abs()
	if qty.IsZero() {
		qty = decimal.NewFromInt(1)
	}

	return model.Activity{
		Comment:    dedup.Token(a.ID),
		DataSource: t.dataSource,
		Date:       date,
		Fee:        decimal.Zero,
		Quantity:   qty,
		Symbol:     t.mapping.Map(a.Symbol),
		Type:       model.Dividend,
		UnitPrice:  a.NetAmount.Div(qty).Abs(),
	}, nil
}

func (t *Transformer) interest(a model.SourceActivity) (model.Activity, error) {
	date, err := activityDate(a.Date, a)
	if err != nil {
		return model.Activity{}, err
	}

	return model.Activity{
		Comment:    dedup.Token(a.ID) + " - Interest",
		DataSource: model.DataSourceManual,
		Date:       date,
		Fee:        decimal.Zero,
		Quantity:   decimal.NewFromInt(1),
		Symbol:     t.currency,
		Type:       model.Interest,
		UnitPrice:  a.NetAmount.Abs(),
	}, nil
}

func (t *Transformer) fee(a model.SourceActivity) (model.Activity, error) {
	date, err := activityDate(a.Date, a)
	if err != nil {
		return model.Activity{}, err
	}

	return model.Activity{
		Comment:    dedup.Token(a.ID) + " - Fee",
		DataSource: model.DataSourceManual,
		Date:       date,
		Fee:        a.NetAmount.Abs(),
		Quantity:   decimal.Zero,
		Symbol:     t.currency,
		Type:       model.Fee,
		UnitPrice:  decimal.Zero,
	}, nil
}

// activityDate prefers the family's own timestamp and falls back to
// whichever the record carries.
func activityDate(primary time.Time, a model.SourceActivity) (time.Time, error) {
	if !primary.IsZero() {
		return primary.UTC(), nil
	}
	if ts := a.Time(); !ts.IsZero() {
		return ts.UTC(), nil
	}
	return time.Time{}, ErrMissingDate
}

// Stats counts the outcome of TransformAll.
type Stats struct {
	Transformed int
	Skipped     int // unsupported activity codes
	Failed      int // supported codes that could not be mapped
}

// TransformAll maps every activity in order. Per-record failures are
// logged with the raw record and counted; they never stop the batch.
func (t *Transformer) TransformAll(ctx context.Context, run Run, acts []model.SourceActivity) ([]model.Activity, Stats) {
	var (
		out   = make([]model.Activity, 0, len(acts))
		stats Stats
	)

	for _, a := range acts {
		act, ok, err := t.Transform(ctx, run, a)
		switch {
		case err != nil:
			stats.Failed++
			t.logFailure(a, err)
		case !ok:
			stats.Skipped++
			t.logger.Debug("skipping unsupported activity type",
				"activity_type", a.ActivityType,
				"alpaca_id", a.ID,
			)
		default:
			stats.Transformed++
			out = append(out, act)
		}
	}

	return out, stats
}

func (t *Transformer) logFailure(a model.SourceActivity, err error) {
	raw, _ := json.Marshal(a)
	if errors.Is(err, ErrUnknownSide) {
		t.logger.Warn("dropping trade with unknown side",
			"alpaca_id", a.ID,
			"side", a.Side,
			"record", string(raw),
		)
		return
	}
	t.logger.Error("transform activity failed",
		"alpaca_id", a.ID,
		"activity_type", a.ActivityType,
		"error", err,
		"record", string(raw),
	)
}
