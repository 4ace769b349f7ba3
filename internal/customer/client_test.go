package customer_test

import (
	"bufio"
	"bytes"
	"io"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"cafe/internal/customer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// fakeBarista greets, echoes commands and records what it received.
type fakeBarista struct {
	ln       net.Listener
	mu       sync.Mutex
	received []string
}

func startFakeBarista(t *testing.T) *fakeBarista {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	b := &fakeBarista{ln: ln}
	go b.serve()
	return b
}

func (b *fakeBarista) serve() {
	conn, err := b.ln.Accept()
	if err != nil {
		return
	}
	defer conn.Close()

	scanner := bufio.NewScanner(conn)
	_, _ = io.WriteString(conn, "Welcome! Please enter your name -->\n")
	if !scanner.Scan() {
		return
	}
	name := scanner.Text()
	b.record(name)
	_, _ = io.WriteString(conn, "Welcome "+name+"! What would you like to order today?\n")

	for scanner.Scan() {
		line := scanner.Text()
		b.record(line)
		if line == "exit" {
			_, _ = io.WriteString(conn, "Exiting the cafe\n")
			return
		}
		_, _ = io.WriteString(conn, "got: "+line+"\n")
	}
}

func (b *fakeBarista) record(line string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.received = append(b.received, line)
}

func (b *fakeBarista) Received() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.received...)
}

func TestIsCommand(t *testing.T) {
	for _, line := range []string{"order 1 tea", "ORDER STATUS", " collect ", "exit", "order"} {
		assert.True(t, customer.IsCommand(line), line)
	}
	for _, line := range []string{"", "hello", "status", "collect now"} {
		assert.False(t, customer.IsCommand(line), line)
	}
}

func TestRun_Session(t *testing.T) {
	barista := startFakeBarista(t)
	inR, inW := io.Pipe()
	defer inW.Close()
	out := &syncBuffer{}

	done := make(chan error, 1)
	go func() {
		done <- customer.Run(t.Context(), barista.ln.Addr().String(), inR, out)
	}()

	waitFor := func(text string) {
		t.Helper()
		require.Eventually(t, func() bool {
			return strings.Contains(out.String(), text)
		}, 2*time.Second, 5*time.Millisecond, "waiting for %q in %q", text, out.String())
	}
	send := func(line string) {
		t.Helper()
		_, err := io.WriteString(inW, line+"\n")
		require.NoError(t, err)
	}

	waitFor("Please enter your name -->")
	send("alice")
	waitFor("Welcome alice! What would you like to order today?")

	send("dance")
	waitFor(customer.MsgInvalidCommand)

	send("order 2 tea")
	waitFor("got: order 2 tea")

	send("exit")
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("client did not exit")
	}

	assert.Contains(t, out.String(), customer.MsgGoodBye)
	assert.Equal(t, []string{"alice", "order 2 tea", "exit"}, barista.Received())
}

func TestRun_ServerClosesConnection(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		_, _ = io.WriteString(conn, "Welcome! Please enter your name -->\n")
		_ = conn.Close()
	}()

	inR, inW := io.Pipe()
	defer inW.Close()
	out := &syncBuffer{}

	err = customer.Run(t.Context(), ln.Addr().String(), inR, out)

	require.NoError(t, err)
	assert.Equal(t, "Welcome! Please enter your name -->\n", out.String())
}

func TestRun_DialError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	err = customer.Run(t.Context(), addr, strings.NewReader(""), io.Discard)

	require.Error(t, err)
}
