// Package dedup filters transformed activities down to those not yet
// imported into Ghostfolio.
//
// Ghostfolio has no external-id field, so the Alpaca activity id travels
// in the free-text comment as a token:
//   - format: "alpaca_id=<id>", optionally followed by " - Interest" or " - Fee"
//   - extraction: the first match of alpaca_id=(\S+) in a comment
//   - key: the extracted id, compared as an exact string
//
// Filter is a pure function of its inputs and performs no I/O.
package dedup
