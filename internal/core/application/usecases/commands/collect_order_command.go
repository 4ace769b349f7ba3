package commands

import (
	"errors"
	"strings"

	"cafe/internal/pkg/errs"
	"cafe/internal/pkg/guard"
)

var ErrCollectOrderCommandIsNotConstructed = errors.New(
	"CollectOrderCommand must be created via NewCollectOrderCommand constructor",
)

// CollectOrderCommand hands every item on the tray to its owner.
// Items still waiting or being prepared stay where they are.
type CollectOrderCommand struct { //nolint:recvcheck //using for validation
	owner string

	guard guard.ConstructorGuard
}

func NewCollectOrderCommand(owner string) (CollectOrderCommand, error) {
	cmd := CollectOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOwner(owner); err != nil {
		return CollectOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CollectOrderCommand) Validate() error {
	return c.guard.Validate(ErrCollectOrderCommandIsNotConstructed)
}

func (c CollectOrderCommand) Owner() string {
	return c.owner
}

func (c *CollectOrderCommand) setOwner(owner string) error {
	if strings.TrimSpace(owner) == "" {
		return errs.NewValueIsRequiredError("owner")
	}

	c.owner = owner
	return nil
}
