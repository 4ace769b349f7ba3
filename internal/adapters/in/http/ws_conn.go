package http

import (
	"io"
	"strings"
	"sync"

	"cafe/internal/adapters/in/session"

	"github.com/gorilla/websocket"
)

// WSConn carries the line protocol over WebSocket: every text message is one
// line in either direction.
type WSConn struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func NewWSConn(conn *websocket.Conn) *WSConn {
	conn.SetReadLimit(session.MaxLineLength)
	return &WSConn{conn: conn}
}

func (c *WSConn) ReadLine() (string, error) {
	_, data, err := c.conn.ReadMessage()
	if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		return "", io.EOF
	}
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

// WriteLines sends each line as its own message. gorilla/websocket allows
// a single concurrent writer.
func (c *WSConn) WriteLines(lines ...string) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	for _, line := range lines {
		if err := c.conn.WriteMessage(websocket.TextMessage, []byte(line)); err != nil {
			return err
		}
	}
	return nil
}

func (c *WSConn) Close() error {
	return c.conn.Close()
}

func (c *WSConn) RemoteAddr() string {
	return c.conn.RemoteAddr().String()
}
