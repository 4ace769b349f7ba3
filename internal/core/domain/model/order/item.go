package order

import (
	"errors"
	"strings"
	"time"

	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/pkg/errs"
	"cafe/internal/pkg/guard"
)

// ErrItemIsNotConstructed is returned when an Item was not created through NewItem.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is one drink owned by one customer. Identity, kind and owner never
// change; the stage moves forward through the Stage state machine.
//
// Item is not safe for concurrent mutation. The stage registry owns every live
// item and only changes stages inside its critical section; everyone else works
// on copies.
type Item struct {
	id       kernel.UUID
	kind     Kind
	owner    string
	stage    Stage
	placedAt time.Time

	guard guard.ConstructorGuard
}

// NewItem creates an item in the Waiting stage.
//
// Example:
//
//	item, err := order.NewItem(kernel.NewUUID(), order.Coffee, "alice", time.Now())
func NewItem(id kernel.UUID, kind Kind, owner string, placedAt time.Time) (*Item, error) {
	item := &Item{
		stage:    Waiting,
		placedAt: placedAt,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setID(id),
		item.setKind(kind),
		item.setOwner(owner),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// Validate ensures the item was created through NewItem.
func (i *Item) Validate() error {
	if i == nil {
		return ErrItemIsNotConstructed
	}
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i *Item) ID() kernel.UUID {
	return i.id
}

func (i *Item) Kind() Kind {
	return i.kind
}

func (i *Item) Owner() string {
	return i.owner
}

func (i *Item) Stage() Stage {
	return i.stage
}

func (i *Item) PlacedAt() time.Time {
	return i.placedAt
}

// IsOwnedBy reports whether the item belongs to owner.
func (i *Item) IsOwnedBy(owner string) bool {
	return i.owner == owner
}

// StartPreparing moves the item from Waiting to Preparing.
func (i *Item) StartPreparing() error {
	return i.apply(i.stage.StartPreparing)
}

// FinishPreparing moves the item from Preparing to Ready.
func (i *Item) FinishPreparing() error {
	return i.apply(i.stage.FinishPreparing)
}

// Collect moves the item from Ready to Collected.
func (i *Item) Collect() error {
	return i.apply(i.stage.Collect)
}

// Abandon discards an item that has not been collected.
func (i *Item) Abandon() error {
	return i.apply(i.stage.Abandon)
}

func (i *Item) apply(next func() (Stage, error)) error {
	stage, err := next()
	if err != nil {
		return err
	}
	i.stage = stage
	return nil
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setKind(kind Kind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	i.kind = kind
	return nil
}

func (i *Item) setOwner(owner string) error {
	if strings.TrimSpace(owner) == "" {
		return errs.NewValueIsRequiredError("owner")
	}
	i.owner = owner
	return nil
}
