// Package fees resolves Alpaca crypto fee rates from 30-day trading volume.
//
// A Table is an ordered list of half-open volume bands [Min, Max). The last
// band has a zero Max and is unbounded. Rates are fractions of notional.
//
// Resolve never fails: a volume no band matches falls back to the first
// (lowest, most expensive) band and is logged as a warning.
package fees
