// Package ports defines the contracts between the cafe core and its
// infrastructure: where finished and abandoned items are recorded.
package ports

import (
	"context"
	"time"

	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/core/domain/model/order"
)

// LedgerEntry records the terminal outcome of one order item.
type LedgerEntry struct {
	ItemID   kernel.UUID
	Owner    string
	Kind     order.Kind
	Outcome  order.Stage
	PlacedAt time.Time
	At       time.Time
}

// NewLedgerEntries converts items that reached a terminal stage into entries stamped with at.
func NewLedgerEntries(items []order.Item, at time.Time) []LedgerEntry {
	entries := make([]LedgerEntry, 0, len(items))
	for _, item := range items {
		entries = append(entries, LedgerEntry{
			ItemID:   item.ID(),
			Owner:    item.Owner(),
			Kind:     item.Kind(),
			Outcome:  item.Stage(),
			PlacedAt: item.PlacedAt(),
			At:       at,
		})
	}
	return entries
}

// LedgerRepository persists ledger entries.
type LedgerRepository interface {
	// Add stores one entry. Outcome must be a terminal stage.
	Add(ctx context.Context, entry LedgerEntry) error

	// ListByOwner returns up to limit entries for owner, newest first.
	ListByOwner(ctx context.Context, owner string, limit int) ([]LedgerEntry, error)
}
