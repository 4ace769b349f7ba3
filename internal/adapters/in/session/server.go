package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"

	"cafe/internal/core/application/sessions"
	"cafe/internal/core/application/usecases/commands"
	"cafe/internal/core/application/usecases/queries"
	"cafe/internal/core/domain/model/order"
	"cafe/internal/pkg/errs"
)

// DefaultLoginAttempts is how many names a client may propose before the
// connection is closed.
const DefaultLoginAttempts = 3

// Handlers are the use cases a connected customer can reach.
type Handlers struct {
	Join    commands.JoinCafeCommandHandler
	Place   commands.PlaceOrderCommandHandler
	Collect commands.CollectOrderCommandHandler
	Leave   commands.LeaveCafeCommandHandler
	Status  queries.GetOrderStatusQueryHandler
}

// Presence records client activity.
type Presence interface {
	Touch(identity string) bool
}

// Server speaks the cafe protocol on one LineConn at a time per Serve call.
// It is safe to call Serve concurrently.
type Server struct {
	handlers      Handlers
	presence      Presence
	logger        *slog.Logger
	loginAttempts int
	outboxSize    int
}

func NewServer(handlers Handlers, presence Presence, logger *slog.Logger) (*Server, error) {
	if presence == nil {
		return nil, errs.NewValueIsRequiredError("presence")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}

	return &Server{
		handlers:      handlers,
		presence:      presence,
		logger:        logger.With("component", "session_server"),
		loginAttempts: DefaultLoginAttempts,
		outboxSize:    defaultOutboxSize,
	}, nil
}

// Serve runs the handshake and then the command loop until the client exits,
// disconnects or ctx is cancelled. The connection is closed and the customer
// leaves the cafe before Serve returns.
func (s *Server) Serve(ctx context.Context, conn LineConn) error {
	stop := context.AfterFunc(ctx, func() {
		_ = conn.Close()
	})
	defer stop()
	defer conn.Close()

	out := newOutbox(s.outboxSize)
	identity, err := s.login(ctx, conn, out)
	if identity == "" {
		return s.ignoreDisconnect(ctx, err)
	}

	logger := s.logger.With("identity", identity, "remote", conn.RemoteAddr())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		out.run(conn, logger)
	}()

	defer func() {
		s.leave(context.WithoutCancel(ctx), identity, logger)
		out.close()
		wg.Wait()
	}()

	if err != nil {
		return s.ignoreDisconnect(ctx, err)
	}

	for {
		line, err := conn.ReadLine()
		if err != nil {
			return s.ignoreDisconnect(ctx, err)
		}
		s.presence.Touch(identity)

		reply, exit := s.dispatch(ctx, identity, line, logger)
		if err := conn.WriteLines(reply...); err != nil {
			return s.ignoreDisconnect(ctx, err)
		}
		if exit {
			logger.InfoContext(ctx, "Customer exited")
			return nil
		}
	}
}

func (s *Server) login(ctx context.Context, conn LineConn, out *outbox) (string, error) {
	prompt := MsgNamePrompt
	for range s.loginAttempts {
		if err := conn.WriteLines(prompt); err != nil {
			return "", err
		}

		line, err := conn.ReadLine()
		if err != nil {
			return "", err
		}

		identity := strings.TrimSpace(line)
		if identity == "" {
			return "", nil
		}

		cmd, err := commands.NewJoinCafeCommand(identity, out)
		if err != nil {
			return "", err
		}

		err = s.handlers.Join.Handle(ctx, cmd)
		switch {
		case err == nil:
			return identity, conn.WriteLines(welcomeMessage(identity))
		case errors.Is(err, sessions.ErrDuplicateIdentity):
			prompt = duplicateNameMessage(identity)
		default:
			_ = conn.WriteLines(MsgServiceError)
			return "", err
		}
	}

	s.logger.InfoContext(ctx, "Too many login attempts", "remote", conn.RemoteAddr())
	return "", conn.WriteLines(MsgTooManyAttempts)
}

func (s *Server) dispatch(ctx context.Context, identity, line string, logger *slog.Logger) ([]string, bool) {
	cmd, err := ParseCommand(line)
	if err != nil {
		return []string{OrderErrorMessage(err)}, false
	}

	switch cmd.Kind {
	case CommandOrder:
		return s.placeOrder(ctx, identity, cmd.Lines, logger), false
	case CommandStatus:
		return s.orderStatus(ctx, identity, logger), false
	case CommandCollect:
		return s.collect(ctx, identity, logger), false
	case CommandExit:
		return []string{MsgExit}, true
	default:
		return []string{MsgUnknownCommand}, false
	}
}

func (s *Server) placeOrder(ctx context.Context, identity string, lines []order.Line, logger *slog.Logger) []string {
	cmd, err := commands.NewPlaceOrderCommand(identity, lines)
	if err != nil {
		return []string{OrderErrorMessage(err)}
	}

	if _, err := s.handlers.Place.Handle(ctx, cmd); err != nil {
		if errors.Is(err, order.ErrInvalidOrder) {
			return []string{OrderErrorMessage(err)}
		}
		logger.ErrorContext(ctx, "Failed to place order", "error", err)
		return []string{MsgServiceError}
	}

	return []string{orderReceivedMessage(identity, cmd.Details())}
}

func (s *Server) orderStatus(ctx context.Context, identity string, logger *slog.Logger) []string {
	query, err := queries.NewGetOrderStatusQuery(identity)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to build status query", "error", err)
		return []string{MsgServiceError}
	}

	status, err := s.handlers.Status.Handle(ctx, query)
	switch {
	case errors.Is(err, queries.ErrNoActiveOrder):
		return []string{noOrderMessage(identity)}
	case err != nil:
		logger.ErrorContext(ctx, "Failed to read order status", "error", err)
		return []string{MsgServiceError}
	}
	return statusMessage(status)
}

func (s *Server) collect(ctx context.Context, identity string, logger *slog.Logger) []string {
	cmd, err := commands.NewCollectOrderCommand(identity)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to build collect command", "error", err)
		return []string{MsgServiceError}
	}

	_, err = s.handlers.Collect.Handle(ctx, cmd)
	switch {
	case errors.Is(err, commands.ErrNothingReady):
		return []string{MsgStillBrewing}
	case err != nil:
		logger.ErrorContext(ctx, "Failed to collect order", "error", err)
		return []string{MsgServiceError}
	}
	return []string{collectedMessage(identity)}
}

func (s *Server) leave(ctx context.Context, identity string, logger *slog.Logger) {
	cmd, err := commands.NewLeaveCafeCommand(identity)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to build leave command", "error", err)
		return
	}
	if _, err := s.handlers.Leave.Handle(ctx, cmd); err != nil {
		logger.ErrorContext(ctx, "Failed to leave cafe", "error", err)
	}
}

// ignoreDisconnect hides errors caused by the peer going away or by shutdown.
func (s *Server) ignoreDisconnect(ctx context.Context, err error) error {
	if err == nil || errors.Is(err, io.EOF) || ctx.Err() != nil {
		return nil
	}
	return err
}
