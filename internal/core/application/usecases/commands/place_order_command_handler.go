package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/core/domain/model/order"
)

// ErrNotJoined is returned when a command names a customer that has no session.
var ErrNotJoined = errors.New("customer has not joined the cafe")

// PlaceOrderCommandHandler turns order lines into items, enqueues them in one
// step and wakes the scheduler.
type PlaceOrderCommandHandler struct {
	sessions  SessionRegistry
	pipeline  OrderPipeline
	scheduler PreparationTrigger
	logger    *slog.Logger
}

func NewPlaceOrderCommandHandler(
	sessions SessionRegistry,
	pipeline OrderPipeline,
	scheduler PreparationTrigger,
	logger *slog.Logger,
) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		sessions:  sessions,
		pipeline:  pipeline,
		scheduler: scheduler,
		logger:    logger.With("component", "place_order_handler"),
	}
}

// Handle returns the number of items placed.
func (h *PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	if !h.sessions.Has(cmd.Owner()) {
		return 0, ErrNotJoined
	}

	placedAt := time.Now()
	items := make([]*order.Item, 0, cmd.ItemCount())
	for _, line := range cmd.Lines() {
		for range line.Quantity() {
			item, err := order.NewItem(kernel.NewUUID(), line.Kind(), cmd.Owner(), placedAt)
			if err != nil {
				return 0, err
			}
			items = append(items, item)
		}
	}

	if err := h.pipeline.EnqueueWaiting(items...); err != nil {
		return 0, err
	}
	h.scheduler.Trigger()

	h.logger.InfoContext(ctx, "Order placed", "owner", cmd.Owner(), "items", len(items), "details", cmd.Details())
	return len(items), nil
}
