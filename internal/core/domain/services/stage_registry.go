package services

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/core/domain/model/order"
	"cafe/internal/pkg/errs"
)

// MaxConcurrentPreparation is the number of preparation slots in the cafe.
const MaxConcurrentPreparation = 4

var (
	// ErrCapacityReached is returned when every preparation slot is taken.
	ErrCapacityReached = errors.New("preparation capacity reached")

	// ErrItemNotFound is returned when an item is not in the stage an operation expects.
	// This is the normal outcome when the owner left while the item was being prepared.
	ErrItemNotFound = errors.New("item not found")
)

// Counts is a consistent snapshot of stage sizes, either for one owner or for
// the whole registry.
type Counts struct {
	Waiting   int
	Preparing int
	Ready     int
}

// Total returns the number of items still in the pipeline.
func (c Counts) Total() int {
	return c.Waiting + c.Preparing + c.Ready
}

// IsEmpty reports whether no item is in any stage.
func (c Counts) IsEmpty() bool {
	return c.Total() == 0
}

// StageRegistry holds every live order item in one of three FIFO sequences:
// Waiting, Preparing and Ready. It is the only place where stage membership
// changes, and every change happens inside a single critical section.
//
// Invariants:
//   - an item is in exactly one sequence at any instant
//   - len(Preparing) never exceeds the capacity; the capacity check and the
//     insertion into Preparing are one atomic step
//   - Waiting is served strictly in insertion order across all owners
//
// Coarse-grained locking is used; every operation is O(n) in the number of
// live items, which is small for a single cafe.
//
// Methods return copies of items so callers can never mutate registry state.
type StageRegistry struct {
	mu       sync.Mutex
	capacity int

	waiting   []*order.Item
	preparing []*order.Item
	ready     []*order.Item
}

// NewStageRegistry creates an empty registry with the given number of preparation slots.
//
// Example:
//
//	registry, err := services.NewStageRegistry(services.MaxConcurrentPreparation)
func NewStageRegistry(capacity int) (*StageRegistry, error) {
	if capacity < 1 {
		return nil, errs.NewValueIsOutOfRangeError("capacity", capacity, 1, "unbounded")
	}
	return &StageRegistry{capacity: capacity}, nil
}

// Capacity returns the number of preparation slots.
func (r *StageRegistry) Capacity() int {
	return r.capacity
}

// EnqueueWaiting appends items to the tail of Waiting in the given order.
// Either all items are enqueued or, if any of them is not a freshly constructed
// Waiting item, none is.
func (r *StageRegistry) EnqueueWaiting(items ...*order.Item) error {
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		if item.Stage() != order.Waiting {
			return errs.NewValueIsInvalidErrorWithCause(
				"item",
				fmt.Errorf("%s is in %s stage, not Waiting", item.ID(), item.Stage()),
			)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.waiting = append(r.waiting, items...)
	return nil
}

// ClaimNext moves the head of Waiting into Preparing if a slot is free.
// It returns false when Waiting is empty or all slots are taken.
func (r *StageRegistry) ClaimNext() (order.Item, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.waiting) == 0 {
		return order.Item{}, false
	}

	item, err := r.moveToPreparingLocked(0)
	if err != nil {
		return order.Item{}, false
	}
	return item, true
}

// MoveToPreparing claims a specific waiting item, subject to capacity.
func (r *StageRegistry) MoveToPreparing(id kernel.UUID) (order.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := indexOf(r.waiting, id)
	if idx < 0 {
		return order.Item{}, fmt.Errorf("%w: %s is not waiting", ErrItemNotFound, id)
	}
	return r.moveToPreparingLocked(idx)
}

// MoveToReady moves a preparing item onto the tray. The returned flag is true
// when, after the move, the owner has nothing left in Waiting or Preparing;
// it is computed in the same critical section, so exactly one completion per
// batch observes it.
func (r *StageRegistry) MoveToReady(id kernel.UUID) (order.Item, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := indexOf(r.preparing, id)
	if idx < 0 {
		return order.Item{}, false, fmt.Errorf("%w: %s is not being prepared", ErrItemNotFound, id)
	}

	item := r.preparing[idx]
	if err := item.FinishPreparing(); err != nil {
		return order.Item{}, false, err
	}
	r.preparing = slices.Delete(r.preparing, idx, idx+1)
	r.ready = append(r.ready, item)

	owner := item.Owner()
	batchDone := countOwned(r.waiting, owner) == 0 && countOwned(r.preparing, owner) == 0
	return *item, batchDone, nil
}

// CountFor returns how many of owner's items are in stage.
// Terminal stages always count zero since their items have left the registry.
func (r *StageRegistry) CountFor(owner string, stage order.Stage) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch stage { //nolint:exhaustive // terminal stages hold no items
	case order.Waiting:
		return countOwned(r.waiting, owner)
	case order.Preparing:
		return countOwned(r.preparing, owner)
	case order.Ready:
		return countOwned(r.ready, owner)
	default:
		return 0
	}
}

// StatusFor returns owner's counts for all three stages from one snapshot.
func (r *StageRegistry) StatusFor(owner string) Counts {
	r.mu.Lock()
	defer r.mu.Unlock()

	return Counts{
		Waiting:   countOwned(r.waiting, owner),
		Preparing: countOwned(r.preparing, owner),
		Ready:     countOwned(r.ready, owner),
	}
}

// Totals returns the size of every stage.
func (r *StageRegistry) Totals() Counts {
	r.mu.Lock()
	defer r.mu.Unlock()

	return Counts{
		Waiting:   len(r.waiting),
		Preparing: len(r.preparing),
		Ready:     len(r.ready),
	}
}

// ActiveOwners returns how many distinct owners have items in any stage.
func (r *StageRegistry) ActiveOwners() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	owners := make(map[string]struct{})
	for _, stage := range [][]*order.Item{r.waiting, r.preparing, r.ready} {
		for _, item := range stage {
			owners[item.Owner()] = struct{}{}
		}
	}
	return len(owners)
}

// RemoveAllFor purges owner's items from every stage and marks them Abandoned.
// The number of purged items is len of the result.
func (r *StageRegistry) RemoveAllFor(owner string) []order.Item {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed []*order.Item
	for _, stage := range []*[]*order.Item{&r.waiting, &r.preparing, &r.ready} {
		var taken []*order.Item
		*stage, taken = extractOwned(*stage, owner)
		removed = append(removed, taken...)
	}

	result := make([]order.Item, 0, len(removed))
	for _, item := range removed {
		// Every registry item is active, so Abandon cannot fail.
		_ = item.Abandon()
		result = append(result, *item)
	}
	return result
}

// CollectReady removes owner's Ready items and marks them Collected.
// It returns an empty slice when nothing is ready.
func (r *StageRegistry) CollectReady(owner string) []order.Item {
	r.mu.Lock()
	defer r.mu.Unlock()

	var taken []*order.Item
	r.ready, taken = extractOwned(r.ready, owner)

	result := make([]order.Item, 0, len(taken))
	for _, item := range taken {
		_ = item.Collect()
		result = append(result, *item)
	}
	return result
}

func (r *StageRegistry) moveToPreparingLocked(idx int) (order.Item, error) {
	if len(r.preparing) >= r.capacity {
		return order.Item{}, ErrCapacityReached
	}

	item := r.waiting[idx]
	if err := item.StartPreparing(); err != nil {
		return order.Item{}, err
	}
	r.waiting = slices.Delete(r.waiting, idx, idx+1)
	r.preparing = append(r.preparing, item)
	return *item, nil
}

func indexOf(items []*order.Item, id kernel.UUID) int {
	return slices.IndexFunc(items, func(item *order.Item) bool {
		return item.ID().IsEqual(id)
	})
}

func countOwned(items []*order.Item, owner string) int {
	n := 0
	for _, item := range items {
		if item.IsOwnedBy(owner) {
			n++
		}
	}
	return n
}

// extractOwned splits items into those not owned by owner (order preserved)
// and those owned by owner.
func extractOwned(items []*order.Item, owner string) ([]*order.Item, []*order.Item) {
	var taken []*order.Item
	kept := slices.DeleteFunc(items, func(item *order.Item) bool {
		if item.IsOwnedBy(owner) {
			taken = append(taken, item)
			return true
		}
		return false
	})
	return kept, taken
}
