package order

import (
	"errors"
	"fmt"

	"cafe/internal/pkg/errs"
)

// ErrInvalidOrder marks every validation failure of an order request. Callers
// check it with errors.Is; the wrapped error carries the detail.
var ErrInvalidOrder = errors.New("invalid order")

// Line is one "<quantity> <kind>" part of an order, e.g. "2 tea".
type Line struct {
	quantity int
	kind     Kind
}

// NewLine validates quantity and kind. Quantity must be positive.
//
// Example:
//
//	line, err := order.NewLine(2, order.Tea)
//	if errors.Is(err, order.ErrInvalidOrder) {
//	    // reject the whole order
//	}
func NewLine(quantity int, kind Kind) (Line, error) {
	if quantity < 1 {
		return Line{}, fmt.Errorf("%w: %w", ErrInvalidOrder,
			errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded"))
	}
	if err := kind.Validate(); err != nil {
		return Line{}, fmt.Errorf("%w: %w", ErrInvalidOrder, err)
	}
	return Line{quantity: quantity, kind: kind}, nil
}

func (l Line) Quantity() int {
	return l.quantity
}

func (l Line) Kind() Kind {
	return l.kind
}

func (l Line) String() string {
	return fmt.Sprintf("%d %s", l.quantity, l.kind)
}
