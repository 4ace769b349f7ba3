package order_test

import (
	"testing"
	"time"

	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/core/domain/model/order"
	"cafe/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem(t *testing.T) {
	placedAt := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("should create a waiting item", func(t *testing.T) {
		id := kernel.NewUUID()

		item, err := order.NewItem(id, order.Coffee, "alice", placedAt)

		require.NoError(t, err)
		require.NoError(t, item.Validate())
		assert.True(t, item.ID().IsEqual(id))
		assert.Equal(t, order.Coffee, item.Kind())
		assert.Equal(t, "alice", item.Owner())
		assert.Equal(t, order.Waiting, item.Stage())
		assert.Equal(t, placedAt, item.PlacedAt())
		assert.True(t, item.IsOwnedBy("alice"))
		assert.False(t, item.IsOwnedBy("bob"))
	})

	t.Run("should report every invalid field", func(t *testing.T) {
		item, err := order.NewItem(kernel.UUID{}, order.UnknownKind, "  ", placedAt)

		require.Error(t, err)
		assert.Nil(t, item)
		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestItem_Validate(t *testing.T) {
	var nilItem *order.Item
	require.ErrorIs(t, nilItem.Validate(), order.ErrItemIsNotConstructed)

	zero := &order.Item{}
	require.ErrorIs(t, zero.Validate(), order.ErrItemIsNotConstructed)
}

func TestItem_Lifecycle(t *testing.T) {
	newItem := func(t *testing.T) *order.Item {
		t.Helper()
		item, err := order.NewItem(kernel.NewUUID(), order.Tea, "alice", time.Now())
		require.NoError(t, err)
		return item
	}

	t.Run("should move through every stage", func(t *testing.T) {
		item := newItem(t)

		require.NoError(t, item.StartPreparing())
		assert.Equal(t, order.Preparing, item.Stage())
		require.NoError(t, item.FinishPreparing())
		assert.Equal(t, order.Ready, item.Stage())
		require.NoError(t, item.Collect())
		assert.Equal(t, order.Collected, item.Stage())
	})

	t.Run("should keep its stage on an illegal transition", func(t *testing.T) {
		item := newItem(t)

		require.Error(t, item.Collect())
		assert.Equal(t, order.Waiting, item.Stage())
	})

	t.Run("should be abandoned from preparing", func(t *testing.T) {
		item := newItem(t)
		require.NoError(t, item.StartPreparing())

		require.NoError(t, item.Abandon())
		assert.Equal(t, order.Abandoned, item.Stage())
		require.Error(t, item.Abandon())
	})
}
