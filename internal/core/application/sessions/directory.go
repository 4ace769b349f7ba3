package sessions

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"cafe/internal/pkg/errs"
)

// ErrDuplicateIdentity is returned by Register when the identity is already connected.
var ErrDuplicateIdentity = errors.New("identity is already taken")

// Session is a read-only view of a connected customer.
type Session struct {
	Identity string    `json:"identity"`
	JoinedAt time.Time `json:"joinedAt"`
	LastSeen time.Time `json:"lastSeen"`
}

type entry struct {
	session  Session
	notifier Notifier
}

// Option configures a Directory.
type Option func(*Directory)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(d *Directory) {
		d.now = now
	}
}

// Directory is a concurrency-safe identity to session map.
//
// Example:
//
//	dir := sessions.NewDirectory()
//	if err := dir.Register("alice", conn); errors.Is(err, sessions.ErrDuplicateIdentity) {
//	    // ask for another name
//	}
//	defer dir.Unregister("alice")
type Directory struct {
	mu       sync.RWMutex
	sessions map[string]*entry
	now      func() time.Time
}

// NewDirectory creates an empty directory.
func NewDirectory(opts ...Option) *Directory {
	d := &Directory{
		sessions: make(map[string]*entry),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Register adds identity with its notifier. Identities are case-sensitive.
func (d *Directory) Register(identity string, notifier Notifier) error {
	if strings.TrimSpace(identity) == "" {
		return errs.NewValueIsRequiredError("identity")
	}
	if notifier == nil {
		return errs.NewValueIsRequiredError("notifier")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.sessions[identity]; ok {
		return fmt.Errorf("%w: %w", ErrDuplicateIdentity, errs.NewObjectAlreadyExistsError("identity", identity))
	}

	now := d.now()
	d.sessions[identity] = &entry{
		session:  Session{Identity: identity, JoinedAt: now, LastSeen: now},
		notifier: notifier,
	}
	return nil
}

// Unregister removes identity. It reports whether the identity was present.
func (d *Directory) Unregister(identity string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.sessions[identity]; !ok {
		return false
	}
	delete(d.sessions, identity)
	return true
}

// Notify hands event to identity's notifier outside the directory lock.
// It returns false when identity is not connected or the notifier dropped the event.
func (d *Directory) Notify(identity string, event Event) bool {
	d.mu.RLock()
	e, ok := d.sessions[identity]
	d.mu.RUnlock()

	if !ok {
		return false
	}
	return e.notifier.Deliver(event)
}

// Touch records activity for identity.
func (d *Directory) Touch(identity string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	e, ok := d.sessions[identity]
	if !ok {
		return false
	}
	e.session.LastSeen = d.now()
	return true
}

func (d *Directory) Has(identity string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	_, ok := d.sessions[identity]
	return ok
}

func (d *Directory) Count() int {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return len(d.sessions)
}

// Snapshot returns all sessions ordered by identity.
func (d *Directory) Snapshot() []Session {
	d.mu.RLock()
	result := make([]Session, 0, len(d.sessions))
	for _, e := range d.sessions {
		result = append(result, e.session)
	}
	d.mu.RUnlock()

	slices.SortFunc(result, func(a, b Session) int {
		return strings.Compare(a.Identity, b.Identity)
	})
	return result
}
