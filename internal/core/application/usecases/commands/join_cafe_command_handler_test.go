package commands_test

import (
	"fmt"
	"testing"

	"cafe/internal/core/application/sessions"
	"cafe/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestJoinCafeCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewJoinCafeCommand("alice", noopNotifier)

	registry := new(MockSessionRegistry)
	registry.On("Register", "alice", mock.Anything).Return(nil).Once()

	h := commands.NewJoinCafeCommandHandler(registry, discardLogger())
	err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	registry.AssertExpectations(t)
}

func TestJoinCafeCommandHandler_Handle_Duplicate(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewJoinCafeCommand("alice", noopNotifier)

	registry := new(MockSessionRegistry)
	registry.On("Register", "alice", mock.Anything).
		Return(fmt.Errorf("%w: alice", sessions.ErrDuplicateIdentity)).Once()

	h := commands.NewJoinCafeCommandHandler(registry, discardLogger())
	err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, sessions.ErrDuplicateIdentity)
}

func TestJoinCafeCommandHandler_Handle_ValidationError(t *testing.T) {
	registry := new(MockSessionRegistry)
	h := commands.NewJoinCafeCommandHandler(registry, discardLogger())

	err := h.Handle(t.Context(), commands.JoinCafeCommand{})

	require.ErrorIs(t, err, commands.ErrJoinCafeCommandIsNotConstructed)
	registry.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestJoinCafeCommandHandler_Handle_RealDirectory(t *testing.T) {
	dir := sessions.NewDirectory()
	h := commands.NewJoinCafeCommandHandler(dir, discardLogger())
	first, _ := commands.NewJoinCafeCommand("alice", noopNotifier)
	second, _ := commands.NewJoinCafeCommand("alice", noopNotifier)

	require.NoError(t, h.Handle(t.Context(), first))
	require.ErrorIs(t, h.Handle(t.Context(), second), sessions.ErrDuplicateIdentity)
	require.Equal(t, 1, dir.Count())
}
