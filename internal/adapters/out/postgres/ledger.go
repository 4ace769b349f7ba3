package postgres

import (
	"context"
	"fmt"

	"cafe/internal/core/ports"
)

// GormFulfillmentLedger implements ports.FulfillmentLedger on top of a unit of work.
type GormFulfillmentLedger struct {
	uowFactory ports.UnitOfWorkFactory
}

// NewGormFulfillmentLedger creates a ledger writing through uowFactory.
func NewGormFulfillmentLedger(uowFactory ports.UnitOfWorkFactory) *GormFulfillmentLedger {
	return &GormFulfillmentLedger{uowFactory: uowFactory}
}

// Record inserts all entries in one transaction.
func (l *GormFulfillmentLedger) Record(ctx context.Context, entries []ports.LedgerEntry) error {
	if len(entries) == 0 {
		return nil
	}

	uow := l.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("begin ledger transaction: %w", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.LedgerRepository()
	for _, entry := range entries {
		if err := repo.Add(ctx, entry); err != nil {
			return fmt.Errorf("record %s: %w", entry.ItemID, err)
		}
	}

	return uow.Commit(ctx)
}

// History reads outside of any transaction.
func (l *GormFulfillmentLedger) History(ctx context.Context, owner string, limit int) ([]ports.LedgerEntry, error) {
	return l.uowFactory.Create().LedgerRepository().ListByOwner(ctx, owner, limit)
}
