package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Liquidity says whether an order added liquidity (maker) or removed it (taker).
type Liquidity string

const (
	Maker Liquidity = "maker"
	Taker Liquidity = "taker"
)

// Order is the subset of Alpaca order details needed to classify liquidity.
type Order struct {
	ID          string
	Symbol      string
	Type        string    // market, limit, stop, stop_limit, trailing_stop
	SubmittedAt time.Time // zero if unknown
	FilledAt    time.Time // zero if unfilled or unknown
}

// Balance is the brokerage account's cash position.
type Balance struct {
	Cash     decimal.Decimal
	Equity   decimal.Decimal
	Currency string
}

// Account is a Ghostfolio account.
type Account struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Currency   string  `json:"currency"`
	Balance    float64 `json:"balance"`
	IsExcluded bool    `json:"isExcluded"`
	PlatformID *string `json:"platformId"`
}

// ActivityQuery filters an Alpaca account activity listing.
// Zero times and an empty Types list mean no filter.
type ActivityQuery struct {
	Types []string
	After time.Time
	Until time.Time
}
