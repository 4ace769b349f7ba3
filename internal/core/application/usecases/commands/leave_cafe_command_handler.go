package commands

import (
	"context"
	"log/slog"
	"time"

	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/core/ports"
)

// LeaveCafeCommandHandler unregisters the customer first, so no notification
// can target a departed identity, then purges every stage.
type LeaveCafeCommandHandler struct {
	sessions  SessionRegistry
	pipeline  OrderPipeline
	scheduler PreparationControl
	ledger    Ledger
	logger    *slog.Logger
}

func NewLeaveCafeCommandHandler(
	sessions SessionRegistry,
	pipeline OrderPipeline,
	scheduler PreparationControl,
	ledger Ledger,
	logger *slog.Logger,
) LeaveCafeCommandHandler {
	return LeaveCafeCommandHandler{
		sessions:  sessions,
		pipeline:  pipeline,
		scheduler: scheduler,
		ledger:    ledger,
		logger:    logger.With("component", "leave_cafe_handler"),
	}
}

// Handle returns how many items were discarded. Leaving twice is harmless.
func (h *LeaveCafeCommandHandler) Handle(ctx context.Context, cmd LeaveCafeCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	h.sessions.Unregister(cmd.Owner())
	abandoned := h.pipeline.RemoveAllFor(cmd.Owner())

	if len(abandoned) > 0 {
		ids := make([]kernel.UUID, 0, len(abandoned))
		for _, item := range abandoned {
			ids = append(ids, item.ID())
		}
		// Purged items may have held preparation slots.
		h.scheduler.Abandon(ids...)
		h.scheduler.Trigger()

		if err := h.ledger.Record(ctx, ports.NewLedgerEntries(abandoned, time.Now())); err != nil {
			h.logger.ErrorContext(ctx, "Failed to record abandoned items", "owner", cmd.Owner(), "error", err)
		}
	}

	h.logger.InfoContext(ctx, "Customer left", "identity", cmd.Owner(), "abandoned", len(abandoned))
	return len(abandoned), nil
}
