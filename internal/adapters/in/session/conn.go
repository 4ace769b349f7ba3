// Package session runs the line-based cafe protocol over any transport that
// can read and write whole lines: TCP streams and WebSocket text frames.
package session

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"sync"
	"time"
)

const (
	// MaxLineLength bounds a single client line.
	MaxLineLength = 4 * 1024

	defaultWriteTimeout = 10 * time.Second
)

// ErrLineTooLong is returned by ReadLine when a client sends more than MaxLineLength bytes without a newline.
var ErrLineTooLong = errors.New("line too long")

// LineConn is one client connection.
// WriteLines must be safe for concurrent use and write all lines as one unit.
type LineConn interface {
	ReadLine() (string, error)
	WriteLines(lines ...string) error
	Close() error
	RemoteAddr() string
}

type writeDeadliner interface {
	SetWriteDeadline(t time.Time) error
}

// StreamConn frames a byte stream as newline-terminated lines.
type StreamConn struct {
	rwc          io.ReadWriteCloser
	scanner      *bufio.Scanner
	writer       *bufio.Writer
	writeMu      sync.Mutex
	writeTimeout time.Duration
	remote       string
}

// NewStreamConn wraps rwc. When rwc is a net.Conn, writes get a deadline so a
// stalled client cannot block its writer forever.
func NewStreamConn(rwc io.ReadWriteCloser, remote string) *StreamConn {
	scanner := bufio.NewScanner(rwc)
	scanner.Buffer(make([]byte, 0, 512), MaxLineLength)
	return &StreamConn{
		rwc:          rwc,
		scanner:      scanner,
		writer:       bufio.NewWriter(rwc),
		writeTimeout: defaultWriteTimeout,
		remote:       remote,
	}
}

// ReadLine returns the next line without its terminator. It returns io.EOF
// when the peer closed the stream.
func (c *StreamConn) ReadLine() (string, error) {
	if c.scanner.Scan() {
		return strings.TrimRight(c.scanner.Text(), "\r"), nil
	}
	if err := c.scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return "", ErrLineTooLong
		}
		return "", err
	}
	return "", io.EOF
}

// WriteLines writes and flushes all lines under one lock.
func (c *StreamConn) WriteLines(lines ...string) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if d, ok := c.rwc.(writeDeadliner); ok && c.writeTimeout > 0 {
		_ = d.SetWriteDeadline(time.Now().Add(c.writeTimeout))
	}

	for _, line := range lines {
		if _, err := c.writer.WriteString(line); err != nil {
			return err
		}
		if err := c.writer.WriteByte('\n'); err != nil {
			return err
		}
	}
	return c.writer.Flush()
}

func (c *StreamConn) Close() error {
	return c.rwc.Close()
}

func (c *StreamConn) RemoteAddr() string {
	return c.remote
}
