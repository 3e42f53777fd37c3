// Package syncer runs the Alpaca to Ghostfolio reconciliation.
//
// A sync walks these states in order, logging each with a "state" key:
//
//	account_resolved  find the Ghostfolio account by name, creating it if absent
//	fetched           list Alpaca activities (optionally only the last N days)
//	transformed       map activities to Ghostfolio activities
//	existing_fetched  list activities already in the Ghostfolio account
//	deduplicated      drop candidates whose alpaca_id is already present
//	imported          import in date order, in batches of ten
//	balance_updated   push Alpaca cash as the account balance
//	done
//
// No state is skipped, even when there is nothing to import. Failures
// before deduplication abort the run. A failed import batch is logged and
// counted and the next batch is still sent. A failed balance update is
// logged and does not undo the import.
package syncer
