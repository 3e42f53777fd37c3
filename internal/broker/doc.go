// Package broker reads account data from Alpaca.
//
// It wraps the Alpaca Go SDK with the calls a sync needs:
//   - FetchAccount: cash and equity
//   - FetchActivities: every account activity matching a query, following
//     page tokens until a short page is returned
//   - GetOrder: order details for maker/taker classification
//
// The SDK takes no context, so each call waits on a rate limiter bound to
// the caller's context first; a cancelled context stops between pages.
package broker
