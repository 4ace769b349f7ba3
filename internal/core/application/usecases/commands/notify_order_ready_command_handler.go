package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"cafe/internal/core/application/sessions"
)

// ErrNotificationDropped is returned when the customer is gone or its outbox is full.
var ErrNotificationDropped = errors.New("notification dropped")

// NotifyOrderReadyCommandHandler pushes order-ready events through the session
// directory. It also serves as the scheduler's ready listener.
type NotifyOrderReadyCommandHandler struct {
	sessions SessionRegistry
	logger   *slog.Logger
}

func NewNotifyOrderReadyCommandHandler(sessions SessionRegistry, logger *slog.Logger) NotifyOrderReadyCommandHandler {
	return NotifyOrderReadyCommandHandler{
		sessions: sessions,
		logger:   logger.With("component", "notify_order_ready_handler"),
	}
}

// Handle delivers the event without blocking.
func (h *NotifyOrderReadyCommandHandler) Handle(ctx context.Context, cmd NotifyOrderReadyCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	event := sessions.Event{
		Kind:     sessions.EventOrderReady,
		Identity: cmd.Owner(),
		Ready:    cmd.Ready(),
		At:       time.Now(),
	}
	if !h.sessions.Notify(cmd.Owner(), event) {
		return ErrNotificationDropped
	}

	h.logger.DebugContext(ctx, "Order ready notification sent", "owner", cmd.Owner(), "ready", cmd.Ready())
	return nil
}

// OrderReady adapts Handle to the preparation scheduler's listener.
func (h *NotifyOrderReadyCommandHandler) OrderReady(ctx context.Context, owner string, ready int) {
	cmd, err := NewNotifyOrderReadyCommand(owner, ready)
	if err != nil {
		h.logger.ErrorContext(ctx, "Invalid order ready notification", "owner", owner, "error", err)
		return
	}

	if err = h.Handle(ctx, cmd); err != nil {
		h.logger.WarnContext(ctx, "Order ready notification not delivered", "owner", owner, "error", err)
	}
}
