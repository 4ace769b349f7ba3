package order_test

import (
	"fmt"
	"testing"

	"cafe/internal/core/domain/model/order"
	"cafe/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStage_Validate(t *testing.T) {
	for _, stage := range []order.Stage{order.Waiting, order.Preparing, order.Ready, order.Collected, order.Abandoned} {
		t.Run(fmt.Sprintf("should validate %s stage", stage), func(t *testing.T) {
			require.NoError(t, stage.Validate())
		})
	}

	t.Run("should reject unknown stages", func(t *testing.T) {
		for _, stage := range []order.Stage{order.UnknownStage, order.Stage(99), order.Stage(-1)} {
			err := stage.Validate()

			require.Error(t, err)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})
}

func TestStage_String(t *testing.T) {
	assert.Equal(t, "Waiting", order.Waiting.String())
	assert.Equal(t, "Preparing", order.Preparing.String())
	assert.Equal(t, "Ready", order.Ready.String())
	assert.Equal(t, "Collected", order.Collected.String())
	assert.Equal(t, "Abandoned", order.Abandoned.String())
	assert.Equal(t, "Unknown", order.Stage(42).String())
}

func TestStage_Transitions(t *testing.T) {
	t.Run("should follow the happy path", func(t *testing.T) {
		stage, err := order.Waiting.StartPreparing()
		require.NoError(t, err)
		assert.Equal(t, order.Preparing, stage)

		stage, err = stage.FinishPreparing()
		require.NoError(t, err)
		assert.Equal(t, order.Ready, stage)

		stage, err = stage.Collect()
		require.NoError(t, err)
		assert.Equal(t, order.Collected, stage)
		assert.True(t, stage.IsTerminal())
	})

	t.Run("should not skip stages", func(t *testing.T) {
		_, err := order.Waiting.FinishPreparing()
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "Waiting is not a valid stage to move to Ready")

		_, err = order.Preparing.Collect()
		require.Error(t, err)

		_, err = order.Waiting.Collect()
		require.Error(t, err)
	})

	t.Run("should not go backwards", func(t *testing.T) {
		_, err := order.Ready.StartPreparing()
		require.Error(t, err)

		_, err = order.Collected.FinishPreparing()
		require.Error(t, err)
	})

	t.Run("should abandon any active stage", func(t *testing.T) {
		for _, stage := range []order.Stage{order.Waiting, order.Preparing, order.Ready} {
			next, err := stage.Abandon()

			require.NoError(t, err)
			assert.Equal(t, order.Abandoned, next)
		}
	})

	t.Run("should not abandon terminal stages", func(t *testing.T) {
		for _, stage := range []order.Stage{order.Collected, order.Abandoned, order.UnknownStage} {
			_, err := stage.Abandon()

			require.Error(t, err)
		}
	})
}
