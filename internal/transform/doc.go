// Package transform maps Alpaca account activities to Ghostfolio activities.
//
// Each Alpaca activity code belongs to one family:
//
//	FILL                          trade (BUY or SELL by side)
//	DIV, DIVCGL, DIVCGS, DIVFT,
//	DIVNRA, DIVROC, DIVTW, DIVTXEX dividend
//	INT, INTNRA, INTTW            interest
//	FEE, CFEE, DIVFEE             fee
//
// Every other code (transfers, journals, splits) has no Ghostfolio
// equivalent and is skipped. Every produced activity carries the
// deduplication token "alpaca_id=<id>" in its comment.
//
// Crypto buys settle net of fee in units, so the fee is applied as a
// reduction of the quantity and the fee field stays zero.
package transform
