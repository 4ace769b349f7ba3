// Package customer is the interactive command-line client of the cafe.
package customer

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

const (
	MsgInvalidCommand = "Invalid command. Please try again."
	MsgGoodBye        = "GoodBye!"

	dialTimeout  = 5 * time.Second
	exitLinger   = 2 * time.Second
	welcomeTrail = "What would you like to order today?"
)

// IsCommand reports whether line is worth sending to the barista.
func IsCommand(line string) bool {
	normalized := strings.ToLower(strings.TrimSpace(line))
	switch {
	case normalized == "order status", normalized == "collect", normalized == "exit":
		return true
	default:
		return strings.HasPrefix(normalized, "order")
	}
}

func isExit(line string) bool {
	return strings.EqualFold(strings.TrimSpace(line), "exit")
}

// printer serializes writes from the server reader and the input loop.
type printer struct {
	mu  sync.Mutex
	out io.Writer
}

func (p *printer) println(line string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = fmt.Fprintln(p.out, line)
}

// Run connects to addr and relays lines between the user and the barista
// until the user exits, either side closes, or ctx is done.
//
// Until the barista has welcomed the customer every input line is sent as a
// name; afterwards lines that are not cafe commands are rejected locally.
func Run(ctx context.Context, addr string, in io.Reader, out io.Writer) error {
	dialer := net.Dialer{Timeout: dialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("connect to barista at %s: %w", addr, err)
	}
	defer conn.Close()

	p := &printer{out: out}
	var joined atomic.Bool

	serverDone := make(chan error, 1)
	go func() {
		serverDone <- relayServer(conn, p, &joined)
	}()

	input := make(chan string)
	go func() {
		defer close(input)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case input <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-serverDone:
			return err
		case line, ok := <-input:
			if !ok {
				return nil
			}
			if joined.Load() && !IsCommand(line) {
				p.println(MsgInvalidCommand)
				continue
			}
			if _, err := io.WriteString(conn, line+"\n"); err != nil {
				return fmt.Errorf("send to barista: %w", err)
			}
			if joined.Load() && isExit(line) {
				p.println(MsgGoodBye)
				waitForClose(serverDone)
				return nil
			}
		}
	}
}

func relayServer(conn net.Conn, p *printer, joined *atomic.Bool) error {
	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "Welcome ") && strings.HasSuffix(line, welcomeTrail) {
			joined.Store(true)
		}
		p.println(line)
	}
	if err := scanner.Err(); err != nil && !errors.Is(err, net.ErrClosed) {
		return err
	}
	return nil
}

// waitForClose lets the farewell from the barista arrive before returning.
func waitForClose(serverDone <-chan error) {
	select {
	case <-serverDone:
	case <-time.After(exitLinger):
	}
}
