package sessions

import "time"

// EventKind enumerates pushes the server may send without a request.
type EventKind int

const (
	UnknownEvent EventKind = iota

	// EventOrderReady is sent once all items of an order batch reached the tray.
	EventOrderReady
)

func (k EventKind) String() string {
	switch k { //nolint:exhaustive // everything else is unknown
	case EventOrderReady:
		return "order_ready"
	default:
		return "unknown"
	}
}

// Event is an unsolicited message for one customer.
type Event struct {
	Kind     EventKind
	Identity string
	Ready    int
	At       time.Time
}

// Notifier delivers events to one connected customer.
// Deliver must not block; it returns false when the event was dropped.
type Notifier interface {
	Deliver(Event) bool
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Event) bool

func (f NotifierFunc) Deliver(e Event) bool {
	return f(e)
}
