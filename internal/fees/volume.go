package fees

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rickgao/ghostsync/internal/model"
)

// IsCrypto reports whether symbol looks like a crypto pair: it contains a
// "/" separator, or it ends in USD and is longer than the suffix.
//
// This misclassifies equity tickers that happen to end in USD.
func IsCrypto(symbol string) bool {
	if strings.Contains(symbol, "/") {
		return true
	}
	return strings.HasSuffix(symbol, "USD") && len(symbol) > len("USD")
}

// TrailingVolume sums |qty * price| over crypto fills whose time is in
// [since, until]. Non-fill activities are ignored.
func TrailingVolume(acts []model.SourceActivity, since, until time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, a := range acts {
		if a.ActivityType != "FILL" || !IsCrypto(a.Symbol) {
			continue
		}
		ts := a.Time()
		if ts.IsZero() || ts.Before(since) || ts.After(until) {
			continue
		}
		total = total.Add(a.Qty.Mul(a.Price).Abs())
	}
	return total
}
