package tcp_test

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"net"
	"testing"
	"time"

	"cafe/internal/adapters/in/session"
	"cafe/internal/adapters/in/tcp"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// echoHandler answers every line with "echo: <line>" until EOF.
type echoHandler struct{}

func (echoHandler) Serve(ctx context.Context, conn session.LineConn) error {
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()
	defer conn.Close()

	for {
		line, err := conn.ReadLine()
		if err != nil {
			return nil
		}
		if err := conn.WriteLines("echo: " + line); err != nil {
			return nil
		}
	}
}

func startServer(t *testing.T) (string, context.CancelFunc, <-chan error, *tcp.Server) {
	t.Helper()

	server, err := tcp.NewServer(echoHandler{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() {
		done <- server.Serve(ctx, ln)
	}()
	t.Cleanup(cancel)

	return ln.Addr().String(), cancel, done, server
}

func TestNewServer_RequiresDependencies(t *testing.T) {
	_, err := tcp.NewServer(nil, slog.Default())
	require.Error(t, err)

	_, err = tcp.NewServer(echoHandler{}, nil)
	require.Error(t, err)
}

func TestServer_ServesConcurrentClients(t *testing.T) {
	addr, _, _, server := startServer(t)

	first, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer first.Close()
	second, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer second.Close()

	for i, conn := range []net.Conn{first, second} {
		_, err = conn.Write([]byte("hello\n"))
		require.NoError(t, err, "client %d", i)

		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		line, err := bufio.NewReader(conn).ReadString('\n')
		require.NoError(t, err)
		assert.Equal(t, "echo: hello\n", line)
	}

	assert.Eventually(t, func() bool {
		return server.ActiveConnections() == 2
	}, 2*time.Second, 5*time.Millisecond)
}

func TestServer_StopsOnCancel(t *testing.T) {
	addr, cancel, done, server := startServer(t)

	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer conn.Close()
	_, err = conn.Write([]byte("ping\n"))
	require.NoError(t, err)
	reader := bufio.NewReader(conn)
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, err = reader.ReadString('\n')
	require.NoError(t, err)

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
	assert.Equal(t, int64(0), server.ActiveConnections())

	_, err = reader.ReadString('\n')
	require.ErrorIs(t, err, io.EOF)

	_, err = net.DialTimeout("tcp", addr, 200*time.Millisecond)
	require.Error(t, err)
}
