package preparation

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/core/domain/model/order"
	"cafe/internal/core/domain/services"
	"cafe/internal/pkg/errs"
)

// ErrShutdownTimeout is returned by Stop when preparations are still running
// after the grace period.
var ErrShutdownTimeout = errors.New("preparation shutdown timed out")

// Pipeline is the part of the stage registry the scheduler drives.
type Pipeline interface {
	ClaimNext() (order.Item, bool)
	MoveToReady(id kernel.UUID) (order.Item, bool, error)
	CountFor(owner string, stage order.Stage) int
}

// ReadyListener is told when an owner's last in-flight item reached the tray.
type ReadyListener interface {
	OrderReady(ctx context.Context, owner string, ready int)
}

// Stats are cumulative scheduler counters.
type Stats struct {
	Claimed   int64 `json:"claimed"`
	Completed int64 `json:"completed"`
	Discarded int64 `json:"discarded"`
	Cancelled int64 `json:"cancelled"`
	InFlight  int64 `json:"inFlight"`
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithDurations replaces the default preparation times.
func WithDurations(durations DurationFunc) Option {
	return func(s *Scheduler) {
		s.duration = durations
	}
}

// WithSleeper replaces SleepContext, used by tests to control time.
func WithSleeper(sleep Sleeper) Option {
	return func(s *Scheduler) {
		s.sleep = sleep
	}
}

// Scheduler claims waiting items whenever a slot is free and prepares each
// claimed item in its own goroutine.
//
// Trigger must be called after anything that can make work available:
// new items enqueued, or slots freed by a purge. Finished preparations
// re-trigger by themselves. Purged items must be passed to Abandon before
// the re-trigger, so the number of running preparations never exceeds the
// registry capacity for longer than a cancellation takes.
//
// Example:
//
//	scheduler, err := preparation.NewScheduler(registry, notifier, logger,
//	    preparation.WithDurations(preparation.DefaultDurations().For))
//	go scheduler.Run(ctx)
//	defer scheduler.Stop(2 * time.Second)
type Scheduler struct {
	pipeline Pipeline
	listener ReadyListener
	duration DurationFunc
	sleep    Sleeper
	logger   *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	stopped bool
	running map[kernel.UUID]context.CancelFunc
	wg      sync.WaitGroup

	claimed   atomic.Int64
	completed atomic.Int64
	discarded atomic.Int64
	cancelled atomic.Int64
}

// NewScheduler creates a scheduler for pipeline that reports finished batches to listener.
func NewScheduler(
	pipeline Pipeline,
	listener ReadyListener,
	logger *slog.Logger,
	opts ...Option,
) (*Scheduler, error) {
	if pipeline == nil {
		return nil, errs.NewValueIsRequiredError("pipeline")
	}
	if listener == nil {
		return nil, errs.NewValueIsRequiredError("listener")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		pipeline: pipeline,
		listener: listener,
		duration: DefaultDurations().For,
		sleep:    SleepContext,
		logger:   logger.With("component", "preparation_scheduler"),
		ctx:      ctx,
		cancel:   cancel,
		running:  make(map[kernel.UUID]context.CancelFunc),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Trigger fills every free preparation slot from the head of the waiting area.
// It never blocks on preparation and is a no-op after Stop.
func (s *Scheduler) Trigger() {
	for {
		s.mu.Lock()
		if s.stopped {
			s.mu.Unlock()
			return
		}
		item, ok := s.pipeline.ClaimNext()
		if !ok {
			s.mu.Unlock()
			return
		}
		ctx, cancel := context.WithCancel(s.ctx)
		s.running[item.ID()] = cancel
		s.wg.Add(1)
		s.mu.Unlock()

		s.claimed.Add(1)
		go s.prepare(ctx, item)
	}
}

// Abandon cancels the preparations of items that were purged from the
// registry. The cancelled preparations count as discarded. Ids that are not
// being prepared are ignored.
func (s *Scheduler) Abandon(ids ...kernel.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range ids {
		if cancel, ok := s.running[id]; ok {
			delete(s.running, id)
			cancel()
		}
	}
}

// release forgets a finished preparation. It reports false when the
// preparation was abandoned before.
func (s *Scheduler) release(id kernel.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	cancel, ok := s.running[id]
	if ok {
		delete(s.running, id)
		cancel()
	}
	return ok
}

// Run drains anything already waiting and blocks until ctx is done.
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.InfoContext(ctx, "Preparation scheduler started")
	s.Trigger()
	<-ctx.Done()
	return nil
}

// Halt refuses further claims. Running preparations continue; Trigger becomes
// a no-op.
func (s *Scheduler) Halt() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
}

// Stop refuses further claims, cancels running preparations and waits up to
// grace for their goroutines to return. Cancelled items stay in Preparing.
func (s *Scheduler) Stop(grace time.Duration) error {
	s.Halt()
	s.cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	timer := time.NewTimer(grace)
	defer timer.Stop()

	select {
	case <-done:
		s.logger.Info("Preparation scheduler stopped", "stats", s.Stats())
		return nil
	case <-timer.C:
		s.logger.Error("Preparation scheduler did not stop in time", "grace", grace, "stats", s.Stats())
		return ErrShutdownTimeout
	}
}

// Stats returns a snapshot of the counters. The outcome counters are loaded
// before claimed, so InFlight is never negative.
func (s *Scheduler) Stats() Stats {
	stats := Stats{
		Completed: s.completed.Load(),
		Discarded: s.discarded.Load(),
		Cancelled: s.cancelled.Load(),
	}
	stats.Claimed = s.claimed.Load()
	stats.InFlight = max(stats.Claimed-stats.Completed-stats.Discarded-stats.Cancelled, 0)
	return stats
}

// Running reports how many preparations have not finished or been abandoned.
func (s *Scheduler) Running() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.running)
}

func (s *Scheduler) prepare(ctx context.Context, item order.Item) {
	defer s.wg.Done()

	duration := s.duration(item.Kind())
	s.logger.DebugContext(ctx, "Preparing item",
		"item", item.ID().String(), "kind", item.Kind().String(), "owner", item.Owner(), "duration", duration)

	if err := s.sleep(ctx, duration); err != nil {
		if !s.release(item.ID()) {
			s.discarded.Add(1)
			s.logger.DebugContext(s.ctx, "Preparation abandoned", "item", item.ID().String(), "owner", item.Owner())
			return
		}
		s.cancelled.Add(1)
		s.logger.InfoContext(s.ctx, "Preparation cancelled", "item", item.ID().String(), "owner", item.Owner())
		return
	}
	s.release(item.ID())

	ready, batchDone, err := s.pipeline.MoveToReady(item.ID())
	if err != nil {
		s.discarded.Add(1)
		if !errors.Is(err, services.ErrItemNotFound) {
			s.logger.ErrorContext(s.ctx, "Failed to move item to tray", "item", item.ID().String(), "error", err)
		} else {
			s.logger.DebugContext(s.ctx, "Item abandoned during preparation", "item", item.ID().String())
		}
		s.Trigger()
		return
	}

	s.completed.Add(1)
	s.Trigger()

	if batchDone {
		owner := ready.Owner()
		s.listener.OrderReady(s.ctx, owner, s.pipeline.CountFor(owner, order.Ready))
	}
}
