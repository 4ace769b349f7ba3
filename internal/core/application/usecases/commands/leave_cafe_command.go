package commands

import (
	"errors"
	"strings"

	"cafe/internal/pkg/errs"
	"cafe/internal/pkg/guard"
)

var ErrLeaveCafeCommandIsNotConstructed = errors.New(
	"LeaveCafeCommand must be created via NewLeaveCafeCommand constructor",
)

// LeaveCafeCommand ends a customer's session, on "exit" as well as on an
// unexpected disconnect. Everything the customer still has in the pipeline
// is discarded.
type LeaveCafeCommand struct { //nolint:recvcheck //using for validation
	owner string

	guard guard.ConstructorGuard
}

func NewLeaveCafeCommand(owner string) (LeaveCafeCommand, error) {
	cmd := LeaveCafeCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOwner(owner); err != nil {
		return LeaveCafeCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c LeaveCafeCommand) Validate() error {
	return c.guard.Validate(ErrLeaveCafeCommandIsNotConstructed)
}

func (c LeaveCafeCommand) Owner() string {
	return c.owner
}

func (c *LeaveCafeCommand) setOwner(owner string) error {
	if strings.TrimSpace(owner) == "" {
		return errs.NewValueIsRequiredError("owner")
	}

	c.owner = owner
	return nil
}
