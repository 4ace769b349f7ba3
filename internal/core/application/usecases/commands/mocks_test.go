package commands_test

import (
	"context"
	"io"
	"log/slog"

	"cafe/internal/core/application/sessions"
	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/core/domain/model/order"
	"cafe/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockSessionRegistry struct{ mock.Mock }

func (m *MockSessionRegistry) Register(identity string, notifier sessions.Notifier) error {
	args := m.Called(identity, notifier)
	return args.Error(0)
}

func (m *MockSessionRegistry) Unregister(identity string) bool {
	args := m.Called(identity)
	return args.Bool(0)
}

func (m *MockSessionRegistry) Has(identity string) bool {
	args := m.Called(identity)
	return args.Bool(0)
}

func (m *MockSessionRegistry) Notify(identity string, event sessions.Event) bool {
	args := m.Called(identity, event)
	return args.Bool(0)
}

type MockOrderPipeline struct{ mock.Mock }

func (m *MockOrderPipeline) EnqueueWaiting(items ...*order.Item) error {
	args := m.Called(items)
	return args.Error(0)
}

func (m *MockOrderPipeline) CollectReady(owner string) []order.Item {
	args := m.Called(owner)
	items, _ := args.Get(0).([]order.Item)
	return items
}

func (m *MockOrderPipeline) RemoveAllFor(owner string) []order.Item {
	args := m.Called(owner)
	items, _ := args.Get(0).([]order.Item)
	return items
}

type MockTrigger struct{ mock.Mock }

func (m *MockTrigger) Trigger() {
	m.Called()
}

func (m *MockTrigger) Abandon(ids ...kernel.UUID) {
	m.Called(ids)
}

type MockLedger struct{ mock.Mock }

func (m *MockLedger) Record(ctx context.Context, entries []ports.LedgerEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
