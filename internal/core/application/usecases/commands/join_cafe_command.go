package commands

import (
	"errors"
	"strings"

	"cafe/internal/core/application/sessions"
	"cafe/internal/pkg/errs"
	"cafe/internal/pkg/guard"
)

var ErrJoinCafeCommandIsNotConstructed = errors.New(
	"JoinCafeCommand must be created via NewJoinCafeCommand constructor",
)

// JoinCafeCommand registers a customer identity for a new connection.
//
// Example:
//
//	cmd, err := NewJoinCafeCommand(name, conn)
//	if err != nil {
//	    return err
//	}
//	if err := handler.Handle(ctx, cmd); errors.Is(err, sessions.ErrDuplicateIdentity) {
//	    // ask for another name
//	}
type JoinCafeCommand struct { //nolint:recvcheck //using for validation
	identity string
	notifier sessions.Notifier

	guard guard.ConstructorGuard
}

// NewJoinCafeCommand trims identity and requires it to be non-blank.
func NewJoinCafeCommand(identity string, notifier sessions.Notifier) (JoinCafeCommand, error) {
	cmd := JoinCafeCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setIdentity(identity),
		cmd.setNotifier(notifier),
	); err != nil {
		return JoinCafeCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c JoinCafeCommand) Validate() error {
	return c.guard.Validate(ErrJoinCafeCommandIsNotConstructed)
}

func (c JoinCafeCommand) Identity() string {
	return c.identity
}

func (c JoinCafeCommand) Notifier() sessions.Notifier {
	return c.notifier
}

func (c *JoinCafeCommand) setIdentity(identity string) error {
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return errs.NewValueIsRequiredError("identity")
	}

	c.identity = identity
	return nil
}

func (c *JoinCafeCommand) setNotifier(notifier sessions.Notifier) error {
	if notifier == nil {
		return errs.NewValueIsRequiredError("notifier")
	}

	c.notifier = notifier
	return nil
}
