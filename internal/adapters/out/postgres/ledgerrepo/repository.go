package ledgerrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cafe/internal/core/ports"
	"cafe/internal/pkg/errs"

	"gorm.io/gorm"
)

// MaxHistory caps ListByOwner.
const MaxHistory = 500

// GormLedgerRepository implements ports.LedgerRepository using GORM.
type GormLedgerRepository struct {
	db *gorm.DB
}

// NewGormLedgerRepository creates a repository on db, which may be a transaction.
func NewGormLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{db: db}
}

// Add inserts entry. Only terminal outcomes are accepted.
func (r *GormLedgerRepository) Add(ctx context.Context, entry ports.LedgerEntry) error {
	if err := validate(entry); err != nil {
		return err
	}

	dto := fromDomain(entry)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewObjectAlreadyExistsErrorWithCause("item", entry.ItemID.String(), err)
		}
		return err
	}
	return nil
}

// ListByOwner returns up to limit entries for owner, newest first.
func (r *GormLedgerRepository) ListByOwner(ctx context.Context, owner string, limit int) ([]ports.LedgerEntry, error) {
	if strings.TrimSpace(owner) == "" {
		return nil, errs.NewValueIsRequiredError("owner")
	}
	if limit < 1 || limit > MaxHistory {
		return nil, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxHistory)
	}

	var dtos []FulfillmentDTO
	err := r.db.WithContext(ctx).
		Where("owner = ?", owner).
		Order("at DESC").
		Order("item_id").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	entries := make([]ports.LedgerEntry, 0, len(dtos))
	for _, dto := range dtos {
		entry, convErr := toDomain(dto)
		if convErr != nil {
			return nil, fmt.Errorf("corrupt ledger row %s: %w", dto.ItemID, convErr)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func validate(entry ports.LedgerEntry) error {
	if err := entry.ItemID.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(entry.Owner) == "" {
		return errs.NewValueIsRequiredError("owner")
	}
	if err := entry.Kind.Validate(); err != nil {
		return err
	}
	if !entry.Outcome.IsTerminal() {
		return errs.NewValueIsInvalidErrorWithCause(
			"outcome",
			fmt.Errorf("%s is not a terminal stage", entry.Outcome),
		)
	}
	return nil
}
