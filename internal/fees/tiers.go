package fees

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/rickgao/ghostsync/internal/model"
)

// Tier is one volume band with its maker and taker rates.
type Tier struct {
	Min   decimal.Decimal
	Max   decimal.Decimal // zero means unbounded
	Maker decimal.Decimal
	Taker decimal.Decimal
}

// Unbounded reports whether the band has no upper limit.
func (t Tier) Unbounded() bool {
	return t.Max.IsZero()
}

// Contains reports whether volume falls in [Min, Max).
func (t Tier) Contains(volume decimal.Decimal) bool {
	if volume.LessThan(t.Min) {
		return false
	}
	return t.Unbounded() || volume.LessThan(t.Max)
}

// Rate returns the maker or taker rate. Anything other than Maker is billed as taker.
func (t Tier) Rate(l model.Liquidity) decimal.Decimal {
	if l == model.Maker {
		return t.Maker
	}
	return t.Taker
}

func (t Tier) String() string {
	upper := "inf"
	if !t.Unbounded() {
		upper = t.Max.String()
	}
	return fmt.Sprintf("[%s,%s) maker=%s taker=%s", t.Min, upper, t.Maker, t.Taker)
}

// Table is an ordered list of fee tiers.
type Table []Tier

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// DefaultTable returns the Alpaca crypto fee schedule.
func DefaultTable() Table {
	return Table{
		{Min: d("0"), Max: d("100000"), Maker: d("0.0015"), Taker: d("0.0025")},
		{Min: d("100000"), Max: d("500000"), Maker: d("0.0012"), Taker: d("0.0022")},
		{Min: d("500000"), Max: d("1000000"), Maker: d("0.0010"), Taker: d("0.0020")},
		{Min: d("1000000"), Max: d("10000000"), Maker: d("0.0008"), Taker: d("0.0018")},
		{Min: d("10000000"), Max: d("25000000"), Maker: d("0.0005"), Taker: d("0.0015")},
		{Min: d("25000000"), Max: d("50000000"), Maker: d("0.0002"), Taker: d("0.0013")},
		{Min: d("50000000"), Max: d("100000000"), Maker: d("0.0002"), Taker: d("0.0012")},
		{Min: d("100000000"), Maker: d("0"), Taker: d("0.0010")},
	}
}

// Validation errors.
var (
	ErrEmptyTable = errors.New("fee table is empty")
	ErrTableGap   = errors.New("fee table does not cover [0, inf) contiguously")
)

// Validate checks that the table starts at 0, has contiguous non-empty
// bands, and ends with a single unbounded band.
func (tt Table) Validate() error {
	if len(tt) == 0 {
		return ErrEmptyTable
	}
	if !tt[0].Min.IsZero() {
		return fmt.Errorf("tier 0 starts at %s: %w", tt[0].Min, ErrTableGap)
	}

	last := len(tt) - 1
	for i, t := range tt {
		if err := validateRate("maker", t.Maker); err != nil {
			return fmt.Errorf("tier %d: %w", i, err)
		}
		if err := validateRate("taker", t.Taker); err != nil {
			return fmt.Errorf("tier %d: %w", i, err)
		}

		if i == last {
			if !t.Unbounded() {
				return fmt.Errorf("last tier ends at %s: %w", t.Max, ErrTableGap)
			}
			break
		}
		if t.Unbounded() {
			return fmt.Errorf("tier %d is unbounded but not last: %w", i, ErrTableGap)
		}
		if !t.Max.GreaterThan(t.Min) {
			return fmt.Errorf("tier %d is empty [%s,%s): %w", i, t.Min, t.Max, ErrTableGap)
		}
		if next := tt[i+1]; !next.Min.Equal(t.Max) {
			return fmt.Errorf("tier %d ends at %s but tier %d starts at %s: %w", i, t.Max, i+1, next.Min, ErrTableGap)
		}
	}
	return nil
}

func validateRate(name string, r decimal.Decimal) error {
	if r.IsNegative() || r.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return fmt.Errorf("%s rate %s outside [0,1)", name, r)
	}
	return nil
}

// Resolver looks up the tier for a volume.
type Resolver struct {
	table  Table
	logger *slog.Logger
}

// NewResolver creates a resolver over table. An empty table uses DefaultTable.
func NewResolver(table Table, logger *slog.Logger) *Resolver {
	if len(table) == 0 {
		table = DefaultTable()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{table: table, logger: logger}
}

// Resolve returns the first tier with Min <= volume < Max. If none matches,
// the lowest tier (smallest Min) is returned and a warning is logged.
func (r *Resolver) Resolve(volume decimal.Decimal) Tier {
	for _, t := range r.table {
		if t.Contains(volume) {
			return t
		}
	}

	fallback := r.lowest()
	r.logger.Warn("no fee tier matches volume, using lowest tier",
		"volume", volume.String(),
		"tier", fallback.String(),
	)
	return fallback
}

// lowest returns the tier with the smallest Min, whatever the table order.
func (r *Resolver) lowest() Tier {
	low := r.table[0]
	for _, t := range r.table[1:] {
		if t.Min.LessThan(low.Min) {
			low = t
		}
	}
	return low
}

// Table returns the resolver's tiers.
func (r *Resolver) Table() Table {
	return r.table
}
