package commands_test

import (
	"testing"

	"cafe/internal/core/application/usecases/commands"
	"cafe/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCollectOrderCommand(t *testing.T) {
	cmd, err := commands.NewCollectOrderCommand("alice")
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, "alice", cmd.Owner())

	_, err = commands.NewCollectOrderCommand(" ")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	require.ErrorIs(t, commands.CollectOrderCommand{}.Validate(), commands.ErrCollectOrderCommandIsNotConstructed)
}
