package commands

import (
	"errors"
	"fmt"
	"strings"

	"cafe/internal/core/domain/model/order"
	"cafe/internal/pkg/errs"
	"cafe/internal/pkg/guard"
)

// MaxItemsPerOrder bounds the total quantity of one order request.
const MaxItemsPerOrder = 1000

var ErrPlaceOrderCommandIsNotConstructed = errors.New(
	"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
)

// PlaceOrderCommand is one order request of one customer. Every line was
// validated, so the handler either enqueues all items or none.
//
// Example:
//
//	tea, _ := order.NewLine(2, order.Tea)
//	coffee, _ := order.NewLine(1, order.Coffee)
//	cmd, err := NewPlaceOrderCommand("alice", []order.Line{tea, coffee})
//	if errors.Is(err, order.ErrInvalidOrder) {
//	    return err
//	}
//	placed, err := handler.Handle(ctx, cmd) // placed == 3
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	owner string
	lines []order.Line

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand requires a non-blank owner and at least one valid line.
// The quantities of all lines together must not exceed MaxItemsPerOrder.
func NewPlaceOrderCommand(owner string, lines []order.Line) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOwner(owner),
		cmd.setLines(lines),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

func (c PlaceOrderCommand) Owner() string {
	return c.owner
}

// Lines returns a copy of the order lines.
func (c PlaceOrderCommand) Lines() []order.Line {
	return append([]order.Line(nil), c.lines...)
}

// ItemCount is the total quantity over all lines.
func (c PlaceOrderCommand) ItemCount() int {
	n := 0
	for _, line := range c.lines {
		n += line.Quantity()
	}
	return n
}

// Details renders the lines as "2 tea and 1 coffee".
func (c PlaceOrderCommand) Details() string {
	parts := make([]string, 0, len(c.lines))
	for _, line := range c.lines {
		parts = append(parts, line.String())
	}
	return strings.Join(parts, " and ")
}

func (c *PlaceOrderCommand) setOwner(owner string) error {
	if strings.TrimSpace(owner) == "" {
		return errs.NewValueIsRequiredError("owner")
	}

	c.owner = owner
	return nil
}

func (c *PlaceOrderCommand) setLines(lines []order.Line) error {
	if len(lines) == 0 {
		return fmt.Errorf("%w: %w", order.ErrInvalidOrder, errs.NewValueIsRequiredError("lines"))
	}
	total := 0
	for i, line := range lines {
		if line.Quantity() < 1 {
			return fmt.Errorf("%w: line %d: %w", order.ErrInvalidOrder, i+1, errs.NewValueIsInvalidError("line"))
		}
		if line.Quantity() > MaxItemsPerOrder-total {
			return fmt.Errorf("%w: %w", order.ErrInvalidOrder,
				errs.NewValueIsOutOfRangeError("total quantity", total+line.Quantity(), 1, MaxItemsPerOrder))
		}
		total += line.Quantity()
	}

	c.lines = append([]order.Line(nil), lines...)
	return nil
}
