package http_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	cafehttp "cafe/internal/adapters/in/http"
	"cafe/internal/adapters/in/session"
	"cafe/internal/adapters/out/memledger"
	"cafe/internal/core/application/preparation"
	"cafe/internal/core/application/sessions"
	"cafe/internal/core/application/usecases/queries"
	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/core/domain/model/order"
	"cafe/internal/core/domain/services"
	"cafe/internal/core/ports"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedStats preparation.Stats

func (s fixedStats) Stats() preparation.Stats {
	return preparation.Stats(s)
}

// greeter answers every line with "you said: <line>" until the peer leaves.
type greeter struct{}

func (greeter) Serve(_ context.Context, conn session.LineConn) error {
	defer conn.Close()
	if err := conn.WriteLines("hello", "world"); err != nil {
		return err
	}
	for {
		line, err := conn.ReadLine()
		if err != nil {
			return nil
		}
		if err := conn.WriteLines("you said: " + line); err != nil {
			return err
		}
	}
}

type fixture struct {
	registry  *services.StageRegistry
	directory *sessions.Directory
	ledger    *memledger.Ledger
	server    *httptest.Server
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	registry, err := services.NewStageRegistry(services.MaxConcurrentPreparation)
	require.NoError(t, err)
	directory := sessions.NewDirectory()
	ledger, err := memledger.New(memledger.DefaultCapacity, logger)
	require.NoError(t, err)

	api := cafehttp.NewServer(
		queries.NewGetCafeStateQueryHandler(registry, directory, fixedStats{Claimed: 3, Completed: 1}),
		queries.NewGetOrderStatusQueryHandler(registry),
		queries.NewGetOrderHistoryQueryHandler(ledger),
		greeter{},
		logger,
	)
	server := httptest.NewServer(api.Echo())
	t.Cleanup(server.Close)

	return &fixture{registry: registry, directory: directory, ledger: ledger, server: server}
}

func (f *fixture) enqueue(t *testing.T, owner string, kinds ...order.Kind) {
	t.Helper()
	for _, kind := range kinds {
		item, err := order.NewItem(kernel.NewUUID(), kind, owner, time.Now())
		require.NoError(t, err)
		require.NoError(t, f.registry.EnqueueWaiting(item))
	}
}

func (f *fixture) get(t *testing.T, path string, body any) int {
	t.Helper()

	req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, f.server.URL+path, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if body != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(body))
	}
	return resp.StatusCode
}

func TestServer_Health(t *testing.T) {
	f := newFixture(t)

	req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, f.server.URL+"/health", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Healthy", string(body))
}

func TestServer_CafeState(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.directory.Register("alice", sessions.NotifierFunc(func(sessions.Event) bool { return true })))
	f.enqueue(t, "alice", order.Tea, order.Coffee)
	_, ok := f.registry.ClaimNext()
	require.True(t, ok)

	var state queries.GetCafeStateQueryResponse
	status := f.get(t, "/api/v1/state", &state)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, state.Waiting)
	assert.Equal(t, 1, state.Preparing)
	assert.Equal(t, 0, state.Ready)
	assert.Equal(t, services.MaxConcurrentPreparation, state.Capacity)
	assert.Equal(t, 1, state.ActiveCustomers)
	require.Len(t, state.Sessions, 1)
	assert.Equal(t, "alice", state.Sessions[0].Identity)
	assert.Equal(t, int64(3), state.Scheduler.Claimed)
	assert.Equal(t, int64(1), state.Scheduler.Completed)
}

func TestServer_CustomerStatus(t *testing.T) {
	f := newFixture(t)
	f.enqueue(t, "bob", order.Tea, order.Tea)

	var status queries.GetOrderStatusQueryResponse
	code := f.get(t, "/api/v1/customers/bob/status", &status)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "bob", status.Owner)
	assert.Equal(t, 2, status.Waiting)
}

func TestServer_CustomerStatusNotFound(t *testing.T) {
	f := newFixture(t)

	var errResp cafehttp.ErrorResponse
	code := f.get(t, "/api/v1/customers/nobody/status", &errResp)

	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, http.StatusNotFound, errResp.Code)
	assert.Equal(t, "No order found for nobody", errResp.Message)
}

func TestServer_CustomerHistory(t *testing.T) {
	f := newFixture(t)
	placed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	for i := range 3 {
		require.NoError(t, f.ledger.Record(t.Context(), []ports.LedgerEntry{{
			ItemID:   kernel.NewUUID(),
			Owner:    "carol",
			Kind:     order.Coffee,
			Outcome:  order.Collected,
			PlacedAt: placed,
			At:       placed.Add(time.Duration(i+1) * time.Minute),
		}}))
	}

	var history []queries.GetOrderHistoryQueryResponse
	code := f.get(t, "/api/v1/customers/carol/history?limit=2", &history)

	assert.Equal(t, http.StatusOK, code)
	require.Len(t, history, 2)
	assert.Equal(t, "2025-01-02T03:07:05Z", history[0].At)
	assert.Equal(t, "2025-01-02T03:06:05Z", history[1].At)
	assert.Equal(t, order.Coffee.String(), history[0].Kind)
	assert.Equal(t, order.Collected.String(), history[0].Outcome)
}

func TestServer_CustomerHistoryRejectsBadLimit(t *testing.T) {
	f := newFixture(t)

	for _, path := range []string{
		"/api/v1/customers/carol/history?limit=abc",
		"/api/v1/customers/carol/history?limit=-1",
		"/api/v1/customers/carol/history?limit=100000",
	} {
		var errResp cafehttp.ErrorResponse
		code := f.get(t, path, &errResp)

		assert.Equal(t, http.StatusBadRequest, code, path)
		assert.Equal(t, http.StatusBadRequest, errResp.Code, path)
	}
}

func TestServer_WebSocketCarriesLines(t *testing.T) {
	f := newFixture(t)
	url := "ws" + strings.TrimPrefix(f.server.URL, "http") + "/ws"

	conn, resp, err := websocket.DefaultDialer.DialContext(t.Context(), url, nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	defer conn.Close()

	read := func() string {
		t.Helper()
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		kind, data, err := conn.ReadMessage()
		require.NoError(t, err)
		assert.Equal(t, websocket.TextMessage, kind)
		return string(data)
	}

	assert.Equal(t, "hello", read())
	assert.Equal(t, "world", read())

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("order 1 tea\n")))
	assert.Equal(t, "you said: order 1 tea", read())
}
