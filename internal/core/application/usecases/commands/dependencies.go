// Package commands contains the cafe operations that change state: joining,
// ordering, collecting, leaving and pushing ready notifications.
// Every command is a guarded value object validated at construction; its
// handler applies it to the session directory and the stage registry.
package commands

import (
	"context"

	"cafe/internal/core/application/sessions"
	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/core/domain/model/order"
	"cafe/internal/core/ports"
)

// Collaborators of the command handlers. The concrete types live in the
// sessions, services and preparation packages.
type (
	// SessionRegistry tracks connected customers.
	SessionRegistry interface {
		Register(identity string, notifier sessions.Notifier) error
		Unregister(identity string) bool
		Has(identity string) bool
		Notify(identity string, event sessions.Event) bool
	}

	// OrderPipeline is the write side of the stage registry.
	OrderPipeline interface {
		EnqueueWaiting(items ...*order.Item) error
		CollectReady(owner string) []order.Item
		RemoveAllFor(owner string) []order.Item
	}

	// PreparationTrigger wakes the scheduler after work became available.
	PreparationTrigger interface {
		Trigger()
	}

	// PreparationControl also stops the preparation of purged items.
	PreparationControl interface {
		PreparationTrigger
		Abandon(ids ...kernel.UUID)
	}

	// Ledger is where items leaving the cafe are recorded.
	Ledger interface {
		Record(ctx context.Context, entries []ports.LedgerEntry) error
	}
)
