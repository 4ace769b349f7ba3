// Package http exposes the operator API and the WebSocket entry point of the
// barista.
package http

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"cafe/internal/adapters/in/session"
	"cafe/internal/core/application/usecases/queries"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const shutdownTimeout = 5 * time.Second

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// SessionHandler runs the line protocol on an upgraded connection.
type SessionHandler interface {
	Serve(ctx context.Context, conn session.LineConn) error
}

// Server coordinates between HTTP handlers and application queries.
type Server struct {
	// Query handlers
	getCafeStateHandler    queries.GetCafeStateQueryHandler
	getOrderStatusHandler  queries.GetOrderStatusQueryHandler
	getOrderHistoryHandler queries.GetOrderHistoryQueryHandler

	sessions SessionHandler
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewServer creates a new HTTP server with the required query handlers.
func NewServer(
	getCafeStateHandler queries.GetCafeStateQueryHandler,
	getOrderStatusHandler queries.GetOrderStatusQueryHandler,
	getOrderHistoryHandler queries.GetOrderHistoryQueryHandler,
	sessions SessionHandler,
	logger *slog.Logger,
) *Server {
	return &Server{
		getCafeStateHandler:    getCafeStateHandler,
		getOrderStatusHandler:  getOrderStatusHandler,
		getOrderHistoryHandler: getOrderHistoryHandler,
		sessions:               sessions,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(*http.Request) bool {
				return true
			},
		},
		logger: logger.With("component", "http_server"),
	}
}

// Echo builds the router.
func (s *Server) Echo() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.GET("/health", s.GetHealth)
	e.GET("/ws", s.ServeWebSocket)

	api := e.Group("/api/v1")
	api.GET("/state", s.GetCafeState)
	api.GET("/customers/:name/status", s.GetCustomerStatus)
	api.GET("/customers/:name/history", s.GetCustomerHistory)

	return e
}

// Run serves on addr until ctx is done, then shuts down gracefully.
// Request contexts, including upgraded WebSocket sessions, are cancelled with ctx.
func (s *Server) Run(ctx context.Context, addr string) error {
	e := s.Echo()
	e.Server.BaseContext = func(net.Listener) context.Context {
		return ctx
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.InfoContext(ctx, "HTTP server is listening", "addr", addr)
		errCh <- e.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			return err
		}
		s.logger.InfoContext(ctx, "HTTP server stopped")
		return nil
	}
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// GetCafeState handles GET /api/v1/state - totals, sessions and scheduler counters.
func (s *Server) GetCafeState(ctx echo.Context) error {
	state, err := s.getCafeStateHandler.Handle(ctx.Request().Context(), queries.NewGetCafeStateQuery())
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve cafe state",
		})
	}
	return ctx.JSON(http.StatusOK, state)
}

// GetCustomerStatus handles GET /api/v1/customers/:name/status.
func (s *Server) GetCustomerStatus(ctx echo.Context) error {
	query, err := queries.NewGetOrderStatusQuery(ctx.Param("name"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid customer name: " + err.Error(),
		})
	}

	status, err := s.getOrderStatusHandler.Handle(ctx.Request().Context(), query)
	switch {
	case errors.Is(err, queries.ErrNoActiveOrder):
		return ctx.JSON(http.StatusNotFound, ErrorResponse{
			Code:    http.StatusNotFound,
			Message: "No order found for " + query.Owner(),
		})
	case err != nil:
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve order status",
		})
	}
	return ctx.JSON(http.StatusOK, status)
}

// GetCustomerHistory handles GET /api/v1/customers/:name/history?limit=N.
func (s *Server) GetCustomerHistory(ctx echo.Context) error {
	var limit int
	if err := echo.QueryParamsBinder(ctx).Int("limit", &limit).BindError(); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid limit",
		})
	}

	query, err := queries.NewGetOrderHistoryQuery(ctx.Param("name"), limit)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid history request: " + err.Error(),
		})
	}

	history, err := s.getOrderHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		s.logger.ErrorContext(ctx.Request().Context(), "Failed to read history", "owner", query.Owner(), "error", err)
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve order history",
		})
	}
	return ctx.JSON(http.StatusOK, history)
}

// ServeWebSocket handles GET /ws - upgrades and runs a customer session.
func (s *Server) ServeWebSocket(ctx echo.Context) error {
	conn, err := s.upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		s.logger.WarnContext(ctx.Request().Context(), "WebSocket upgrade failed", "error", err)
		return nil
	}

	if err := s.sessions.Serve(ctx.Request().Context(), NewWSConn(conn)); err != nil {
		s.logger.WarnContext(ctx.Request().Context(), "WebSocket session ended with error", "error", err)
	}
	return nil
}
