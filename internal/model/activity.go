package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ActivityType is an activity kind understood by Ghostfolio.
type ActivityType string

const (
	Buy      ActivityType = "BUY"
	Sell     ActivityType = "SELL"
	Dividend ActivityType = "DIVIDEND"
	Interest ActivityType = "INTEREST"
	Fee      ActivityType = "FEE"
)

// Ghostfolio pricing providers.
const (
	DataSourceYahoo  = "YAHOO"
	DataSourceManual = "MANUAL"
)

// SourceActivity is one account activity as reported by Alpaca.
//
// Trade fills carry TransactionTime; every other activity carries Date.
type SourceActivity struct {
	ID              string          `json:"id"`
	ActivityType    string          `json:"activity_type"`
	Symbol          string          `json:"symbol,omitempty"`
	Side            string          `json:"side,omitempty"`
	Qty             decimal.Decimal `json:"qty"`
	Price           decimal.Decimal `json:"price"`
	NetAmount       decimal.Decimal `json:"net_amount"`
	TransactionTime time.Time       `json:"transaction_time,omitzero"`
	Date            time.Time       `json:"date,omitzero"`
	OrderID         string          `json:"order_id,omitempty"`
	Description     string          `json:"description,omitempty"`
}

// Time returns the transaction time for fills and the activity date otherwise.
func (a SourceActivity) Time() time.Time {
	if !a.TransactionTime.IsZero() {
		return a.TransactionTime
	}
	return a.Date
}

// Activity is a transformed activity waiting for deduplication.
type Activity struct {
	AccountID  string          `json:"accountId"`
	Comment    string          `json:"comment"`
	Currency   string          `json:"currency"`
	DataSource string          `json:"dataSource"`
	Date       time.Time       `json:"date"`
	Fee        decimal.Decimal `json:"fee"`
	Quantity   decimal.Decimal `json:"quantity"`
	Symbol     string          `json:"symbol"`
	Type       ActivityType    `json:"type"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`

	// Bookkeeping from the source record. Never sent to Ghostfolio.
	SourceID      string `json:"-"`
	SourceOrderID string `json:"-"`
}

// Import returns the Ghostfolio import payload for a.
func (a Activity) Import() ImportActivity {
	return ImportActivity{
		AccountID:  a.AccountID,
		Comment:    a.Comment,
		Currency:   a.Currency,
		DataSource: a.DataSource,
		Date:       a.Date,
		Fee:        a.Fee.InexactFloat64(),
		Quantity:   a.Quantity.InexactFloat64(),
		Symbol:     a.Symbol,
		Type:       a.Type,
		UnitPrice:  a.UnitPrice.InexactFloat64(),
	}
}

// ImportActivity mirrors one element of the POST /api/v1/import body.
type ImportActivity struct {
	AccountID  string       `json:"accountId"`
	Comment    string       `json:"comment"`
	Currency   string       `json:"currency"`
	DataSource string       `json:"dataSource"`
	Date       time.Time    `json:"date"`
	Fee        float64      `json:"fee"`
	Quantity   float64      `json:"quantity"`
	Symbol     string       `json:"symbol"`
	Type       ActivityType `json:"type"`
	UnitPrice  float64      `json:"unitPrice"`
}

// ExistingActivity is an activity already stored in Ghostfolio.
type ExistingActivity struct {
	ID            string        `json:"id"`
	AccountID     string        `json:"accountId"`
	Comment       string        `json:"comment"`
	Date          time.Time     `json:"date"`
	Type          string        `json:"type"`
	Quantity      float64       `json:"quantity"`
	UnitPrice     float64       `json:"unitPrice"`
	Fee           float64       `json:"fee"`
	SymbolProfile SymbolProfile `json:"SymbolProfile"`
}

// SymbolProfile identifies the asset behind an ExistingActivity.
type SymbolProfile struct {
	Symbol     string `json:"symbol"`
	DataSource string `json:"dataSource"`
	Currency   string `json:"currency"`
}
