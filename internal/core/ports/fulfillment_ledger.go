package ports

import "context"

// FulfillmentLedger is the append-only history of collected and abandoned items.
// It is written after the in-memory pipeline already changed, so a failing
// ledger never rolls back what the customer was told.
//
// Example:
//
//	items := registry.CollectReady("alice")
//	if err := ledger.Record(ctx, ports.NewLedgerEntries(items, time.Now())); err != nil {
//	    logger.ErrorContext(ctx, "Failed to record collection", "error", err)
//	}
type FulfillmentLedger interface {
	// Record stores all entries or none of them.
	Record(ctx context.Context, entries []LedgerEntry) error

	// History returns up to limit entries for owner, newest first.
	History(ctx context.Context, owner string, limit int) ([]LedgerEntry, error)
}
