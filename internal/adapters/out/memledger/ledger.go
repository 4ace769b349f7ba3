// Package memledger keeps the fulfillment ledger in process memory. It is the
// ledger used when no database is configured; every entry is also logged.
package memledger

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"cafe/internal/core/ports"
	"cafe/internal/pkg/errs"
)

// DefaultCapacity bounds how many entries are retained.
const DefaultCapacity = 10_000

// Ledger is a bounded, concurrency-safe ports.FulfillmentLedger.
// When full, the oldest entries are dropped.
type Ledger struct {
	mu       sync.RWMutex
	entries  []ports.LedgerEntry
	capacity int
	logger   *slog.Logger
}

// New creates an empty ledger retaining at most capacity entries.
func New(capacity int, logger *slog.Logger) (*Ledger, error) {
	if capacity < 1 {
		return nil, errs.NewValueIsOutOfRangeError("capacity", capacity, 1, "unbounded")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}
	return &Ledger{
		capacity: capacity,
		logger:   logger.With("component", "memory_ledger"),
	}, nil
}

// Record appends entries atomically.
func (l *Ledger) Record(ctx context.Context, entries []ports.LedgerEntry) error {
	for _, entry := range entries {
		if err := entry.ItemID.Validate(); err != nil {
			return err
		}
		if !entry.Outcome.IsTerminal() {
			return errs.NewValueIsInvalidError("outcome")
		}
	}

	l.mu.Lock()
	l.entries = append(l.entries, entries...)
	if overflow := len(l.entries) - l.capacity; overflow > 0 {
		l.entries = append(l.entries[:0:0], l.entries[overflow:]...)
	}
	l.mu.Unlock()

	for _, entry := range entries {
		l.logger.InfoContext(ctx, "Item left the cafe",
			"item", entry.ItemID.String(),
			"owner", entry.Owner,
			"kind", entry.Kind.String(),
			"outcome", entry.Outcome.String(),
		)
	}
	return nil
}

// History returns up to limit entries for owner, newest first.
func (l *Ledger) History(_ context.Context, owner string, limit int) ([]ports.LedgerEntry, error) {
	if strings.TrimSpace(owner) == "" {
		return nil, errs.NewValueIsRequiredError("owner")
	}
	if limit < 1 {
		return nil, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make([]ports.LedgerEntry, 0, min(limit, len(l.entries)))
	for i := len(l.entries) - 1; i >= 0 && len(result) < limit; i-- {
		if l.entries[i].Owner == owner {
			result = append(result, l.entries[i])
		}
	}
	return result, nil
}

// Len returns the number of retained entries.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}
