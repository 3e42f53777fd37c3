package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestSourceActivityTime(t *testing.T) {
	fill := time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC)
	day := time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		act  SourceActivity
		want time.Time
	}{
		{"fill uses transaction time", SourceActivity{TransactionTime: fill, Date: day}, fill},
		{"non-trade uses date", SourceActivity{Date: day}, day},
		{"neither set", SourceActivity{}, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.act.Time(); !got.Equal(tt.want) {
				t.Errorf("Time() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestActivityImport(t *testing.T) {
	a := Activity{
		AccountID:     "acc-1",
		Comment:       "alpaca_id=abc123",
		Currency:      "USD",
		DataSource:    DataSourceYahoo,
		Date:          time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC),
		Fee:           decimal.Zero,
		Quantity:      decimal.RequireFromString("10"),
		Symbol:        "AAPL",
		Type:          Buy,
		UnitPrice:     decimal.RequireFromString("150.25"),
		SourceID:      "abc123",
		SourceOrderID: "order-9",
	}

	imp := a.Import()
	if imp.Quantity != 10 {
		t.Errorf("Quantity = %v, want 10", imp.Quantity)
	}
	if imp.UnitPrice != 150.25 {
		t.Errorf("UnitPrice = %v, want 150.25", imp.UnitPrice)
	}
	if imp.Type != Buy {
		t.Errorf("Type = %q, want %q", imp.Type, Buy)
	}

	data, err := json.Marshal(imp)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	body := string(data)
	for _, key := range []string{`"accountId"`, `"comment"`, `"currency"`, `"dataSource"`, `"date"`, `"fee"`, `"quantity"`, `"symbol"`, `"type"`, `"unitPrice"`} {
		if !strings.Contains(body, key) {
			t.Errorf("payload missing %s: %s", key, body)
		}
	}
	if strings.Contains(body, "order-9") {
		t.Errorf("payload leaks source order id: %s", body)
	}
	if !strings.Contains(body, `"unitPrice":150.25`) {
		t.Errorf("unitPrice not a JSON number: %s", body)
	}
}

func TestActivityMarshalHidesBookkeeping(t *testing.T) {
	a := Activity{SourceID: "src-1", SourceOrderID: "ord-1"}
	data, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if strings.Contains(string(data), "src-1") || strings.Contains(string(data), "ord-1") {
		t.Errorf("bookkeeping fields serialized: %s", data)
	}
}

func TestExistingActivityDecode(t *testing.T) {
	raw := `{
		"id": "a1",
		"accountId": "acc-1",
		"comment": null,
		"date": "2024-01-15T00:00:00.000Z",
		"type": "BUY",
		"quantity": 2,
		"unitPrice": 10.5,
		"fee": 0,
		"SymbolProfile": {"symbol": "AAPL", "dataSource": "YAHOO", "currency": "USD"}
	}`

	var e ExistingActivity
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if e.Comment != "" {
		t.Errorf("Comment = %q, want empty", e.Comment)
	}
	if e.SymbolProfile.Symbol != "AAPL" {
		t.Errorf("SymbolProfile.Symbol = %q, want %q", e.SymbolProfile.Symbol, "AAPL")
	}
	if e.Date.Day() != 15 {
		t.Errorf("Date = %v, want day 15", e.Date)
	}
}
