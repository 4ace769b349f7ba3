package commands

import (
	"errors"
	"strings"

	"cafe/internal/pkg/errs"
	"cafe/internal/pkg/guard"
)

var ErrNotifyOrderReadyCommandIsNotConstructed = errors.New(
	"NotifyOrderReadyCommand must be created via NewNotifyOrderReadyCommand constructor",
)

// NotifyOrderReadyCommand tells a customer that the whole batch is on the tray.
type NotifyOrderReadyCommand struct { //nolint:recvcheck //using for validation
	owner string
	ready int

	guard guard.ConstructorGuard
}

func NewNotifyOrderReadyCommand(owner string, ready int) (NotifyOrderReadyCommand, error) {
	cmd := NotifyOrderReadyCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOwner(owner),
		cmd.setReady(ready),
	); err != nil {
		return NotifyOrderReadyCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c NotifyOrderReadyCommand) Validate() error {
	return c.guard.Validate(ErrNotifyOrderReadyCommandIsNotConstructed)
}

func (c NotifyOrderReadyCommand) Owner() string {
	return c.owner
}

// Ready is the number of the owner's items on the tray.
func (c NotifyOrderReadyCommand) Ready() int {
	return c.ready
}

func (c *NotifyOrderReadyCommand) setOwner(owner string) error {
	if strings.TrimSpace(owner) == "" {
		return errs.NewValueIsRequiredError("owner")
	}

	c.owner = owner
	return nil
}

func (c *NotifyOrderReadyCommand) setReady(ready int) error {
	if ready < 0 {
		return errs.NewValueIsOutOfRangeError("ready", ready, 0, "unbounded")
	}

	c.ready = ready
	return nil
}
