// Package model defines the data types shared by the Alpaca to Ghostfolio sync.
//
// Conventions:
//   - Source amounts use decimal.Decimal and are never rounded before transform.
//   - Ghostfolio payloads (ImportActivity, Account) use float64, matching its JSON numbers.
//   - Timestamps are time.Time in UTC.
package model
