// Package ledgerrepo maps fulfillment ledger entries to the "fulfillments" table.
package ledgerrepo

import (
	"time"

	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/core/domain/model/order"
	"cafe/internal/core/ports"

	"github.com/google/uuid"
)

// FulfillmentDTO is one row per item that left the pipeline.
type FulfillmentDTO struct {
	ItemID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Owner    string    `gorm:"index:idx_fulfillments_owner_at,priority:1;not null"`
	Kind     int       `gorm:"type:smallint;not null"`
	Outcome  int       `gorm:"type:smallint;index;not null"`
	PlacedAt time.Time `gorm:"not null"`
	At       time.Time `gorm:"index:idx_fulfillments_owner_at,priority:2;not null"`
}

// TableName overrides GORM's default naming convention.
func (FulfillmentDTO) TableName() string {
	return "fulfillments"
}

func fromDomain(entry ports.LedgerEntry) FulfillmentDTO {
	return FulfillmentDTO{
		ItemID:   entry.ItemID.Bytes(),
		Owner:    entry.Owner,
		Kind:     int(entry.Kind),
		Outcome:  int(entry.Outcome),
		PlacedAt: entry.PlacedAt.UTC(),
		At:       entry.At.UTC(),
	}
}

func toDomain(dto FulfillmentDTO) (ports.LedgerEntry, error) {
	id, err := kernel.UUIDFromString(dto.ItemID.String())
	if err != nil {
		return ports.LedgerEntry{}, err
	}

	kind := order.Kind(dto.Kind)
	if err = kind.Validate(); err != nil {
		return ports.LedgerEntry{}, err
	}

	outcome := order.Stage(dto.Outcome)
	if err = outcome.Validate(); err != nil {
		return ports.LedgerEntry{}, err
	}

	return ports.LedgerEntry{
		ItemID:   id,
		Owner:    dto.Owner,
		Kind:     kind,
		Outcome:  outcome,
		PlacedAt: dto.PlacedAt,
		At:       dto.At,
	}, nil
}
