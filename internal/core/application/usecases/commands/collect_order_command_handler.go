package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"cafe/internal/core/domain/model/order"
	"cafe/internal/core/ports"
)

// ErrNothingReady is returned when the owner has no item on the tray.
var ErrNothingReady = errors.New("nothing ready to collect")

// CollectOrderCommandHandler removes the owner's ready items and records them.
//
// Example:
//
//	cmd, _ := NewCollectOrderCommand("alice")
//	items, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, ErrNothingReady) {
//	    // still brewing
//	}
type CollectOrderCommandHandler struct {
	pipeline OrderPipeline
	ledger   Ledger
	logger   *slog.Logger
}

func NewCollectOrderCommandHandler(pipeline OrderPipeline, ledger Ledger, logger *slog.Logger) CollectOrderCommandHandler {
	return CollectOrderCommandHandler{
		pipeline: pipeline,
		ledger:   ledger,
		logger:   logger.With("component", "collect_order_handler"),
	}
}

// Handle returns the collected items. A ledger failure is logged and does not
// fail the collection.
func (h *CollectOrderCommandHandler) Handle(ctx context.Context, cmd CollectOrderCommand) ([]order.Item, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	items := h.pipeline.CollectReady(cmd.Owner())
	if len(items) == 0 {
		return nil, ErrNothingReady
	}

	if err := h.ledger.Record(ctx, ports.NewLedgerEntries(items, time.Now())); err != nil {
		h.logger.ErrorContext(ctx, "Failed to record collected items", "owner", cmd.Owner(), "error", err)
	}

	h.logger.InfoContext(ctx, "Order collected", "owner", cmd.Owner(), "items", len(items))
	return items, nil
}
