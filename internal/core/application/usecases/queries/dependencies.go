// Package queries contains read-only cafe operations.
// Queries never change stage membership; each reads one consistent snapshot.
package queries

import (
	"context"

	"cafe/internal/core/application/preparation"
	"cafe/internal/core/application/sessions"
	"cafe/internal/core/domain/services"
	"cafe/internal/core/ports"
)

type (
	// StatusReader reads one customer's stage counts.
	StatusReader interface {
		StatusFor(owner string) services.Counts
	}

	// TotalsReader reads the whole pipeline.
	TotalsReader interface {
		Totals() services.Counts
		ActiveOwners() int
		Capacity() int
	}

	// SessionLister lists connected customers.
	SessionLister interface {
		Snapshot() []sessions.Session
	}

	// SchedulerStatsReader reads preparation counters.
	SchedulerStatsReader interface {
		Stats() preparation.Stats
	}

	// HistoryReader reads the fulfillment ledger.
	HistoryReader interface {
		History(ctx context.Context, owner string, limit int) ([]ports.LedgerEntry, error)
	}
)
