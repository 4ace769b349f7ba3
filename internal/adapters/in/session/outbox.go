package session

import (
	"log/slog"
	"sync"

	"cafe/internal/core/application/sessions"
)

const defaultOutboxSize = 16

// outbox queues pushes for one connection. It is the connection's
// sessions.Notifier: Deliver never blocks and drops events once the queue is
// full or the connection is gone.
type outbox struct {
	events    chan sessions.Event
	done      chan struct{}
	closeOnce sync.Once
}

func newOutbox(size int) *outbox {
	return &outbox{
		events: make(chan sessions.Event, size),
		done:   make(chan struct{}),
	}
}

func (o *outbox) Deliver(event sessions.Event) bool {
	select {
	case <-o.done:
		return false
	default:
	}

	select {
	case o.events <- event:
		return true
	default:
		return false
	}
}

// run writes queued events to conn until close is called or a write fails.
func (o *outbox) run(conn LineConn, logger *slog.Logger) {
	for {
		select {
		case <-o.done:
			return
		case event := <-o.events:
			if event.Kind != sessions.EventOrderReady {
				continue
			}
			if err := conn.WriteLines(readyNotification(event.Identity)); err != nil {
				logger.Warn("Failed to push notification", "identity", event.Identity, "error", err)
				return
			}
		}
	}
}

func (o *outbox) close() {
	o.closeOnce.Do(func() {
		close(o.done)
	})
}
