package commands

import (
	"context"
	"log/slog"
)

// JoinCafeCommandHandler admits a customer into the session directory.
type JoinCafeCommandHandler struct {
	sessions SessionRegistry
	logger   *slog.Logger
}

func NewJoinCafeCommandHandler(sessions SessionRegistry, logger *slog.Logger) JoinCafeCommandHandler {
	return JoinCafeCommandHandler{
		sessions: sessions,
		logger:   logger.With("component", "join_cafe_handler"),
	}
}

// Handle registers the identity. sessions.ErrDuplicateIdentity is returned
// when the identity is already connected.
func (h *JoinCafeCommandHandler) Handle(ctx context.Context, cmd JoinCafeCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := h.sessions.Register(cmd.Identity(), cmd.Notifier()); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "Customer joined", "identity", cmd.Identity())
	return nil
}
