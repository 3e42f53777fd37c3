package fees

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rickgao/ghostsync/internal/model"
)

func TestIsCrypto(t *testing.T) {
	tests := []struct {
		symbol string
		want   bool
	}{
		{"BTC/USD", true},
		{"ETH/BTC", true},
		{"BTCUSD", true},
		{"ETHUSD", true},
		{"USD", false},
		{"AAPL", false},
		{"", false},
		// Known false positive of the suffix rule.
		{"FOOUSD", true},
	}

	for _, tt := range tests {
		t.Run(tt.symbol, func(t *testing.T) {
			if got := IsCrypto(tt.symbol); got != tt.want {
				t.Errorf("IsCrypto(%q) = %v, want %v", tt.symbol, got, tt.want)
			}
		})
	}
}

func TestTrailingVolume(t *testing.T) {
	now := time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC)
	since := now.AddDate(0, 0, -30)

	acts := []model.SourceActivity{
		{ActivityType: "FILL", Symbol: "BTC/USD", Qty: d("0.5"), Price: d("40000"), TransactionTime: now.AddDate(0, 0, -1)},
		// Sells count toward volume; the sign of qty does not matter.
		{ActivityType: "FILL", Symbol: "ETHUSD", Qty: d("-2"), Price: d("3000"), TransactionTime: now.AddDate(0, 0, -10)},
		{ActivityType: "FILL", Symbol: "AAPL", Qty: d("100"), Price: d("150"), TransactionTime: now.AddDate(0, 0, -2)},
		{ActivityType: "FILL", Symbol: "BTC/USD", Qty: d("1"), Price: d("30000"), TransactionTime: now.AddDate(0, 0, -45)},
		{ActivityType: "DIV", Symbol: "BTCUSD", NetAmount: d("5"), Date: now.AddDate(0, 0, -3)},
		{ActivityType: "FILL", Symbol: "BTC/USD", Qty: d("1"), Price: d("1")},
	}

	got := TrailingVolume(acts, since, now)
	want := decimal.RequireFromString("26000")
	if !got.Equal(want) {
		t.Errorf("TrailingVolume() = %s, want %s", got, want)
	}
}

func TestTrailingVolumeEmpty(t *testing.T) {
	now := time.Now()
	if got := TrailingVolume(nil, now.AddDate(0, 0, -30), now); !got.IsZero() {
		t.Errorf("TrailingVolume(nil) = %s, want 0", got)
	}
}
