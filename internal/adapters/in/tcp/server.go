// Package tcp accepts customer connections on a TCP listener and hands each
// one to the session protocol.
package tcp

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"

	"cafe/internal/adapters/in/session"
	"cafe/internal/pkg/errs"
)

// Handler serves one connection until it ends.
type Handler interface {
	Serve(ctx context.Context, conn session.LineConn) error
}

// Server is the TCP front door of the barista.
type Server struct {
	handler Handler
	logger  *slog.Logger

	wg     sync.WaitGroup
	active atomic.Int64
}

func NewServer(handler Handler, logger *slog.Logger) (*Server, error) {
	if handler == nil {
		return nil, errs.NewValueIsRequiredError("handler")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}
	return &Server{
		handler: handler,
		logger:  logger.With("component", "tcp_server"),
	}, nil
}

// ListenAndServe listens on addr and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections until ctx is done. It returns nil after ctx is
// cancelled and every connection has finished.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	defer ln.Close()

	stop := context.AfterFunc(ctx, func() {
		_ = ln.Close()
	})
	defer stop()

	s.logger.InfoContext(ctx, "Barista is listening", "addr", ln.Addr().String())

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				s.wg.Wait()
				s.logger.InfoContext(ctx, "TCP server stopped")
				return nil
			default:
			}
			if errors.Is(err, net.ErrClosed) {
				s.wg.Wait()
				return err
			}
			s.logger.WarnContext(ctx, "Accept failed", "error", err)
			continue
		}

		s.wg.Add(1)
		go s.handle(ctx, conn)
	}
}

// ActiveConnections is the number of connections currently being served.
func (s *Server) ActiveConnections() int64 {
	return s.active.Load()
}

func (s *Server) handle(ctx context.Context, conn net.Conn) {
	defer s.wg.Done()

	s.active.Add(1)
	defer s.active.Add(-1)

	remote := conn.RemoteAddr().String()
	s.logger.DebugContext(ctx, "Connection accepted", "remote", remote)

	if err := s.handler.Serve(ctx, session.NewStreamConn(conn, remote)); err != nil {
		s.logger.WarnContext(ctx, "Connection ended with error", "remote", remote, "error", err)
		return
	}
	s.logger.DebugContext(ctx, "Connection closed", "remote", remote)
}
