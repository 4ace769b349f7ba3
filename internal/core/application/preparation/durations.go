package preparation

import (
	"context"
	"time"

	"cafe/internal/core/domain/model/order"
	"cafe/internal/pkg/errs"
)

const (
	DefaultTeaDuration    = 30 * time.Second
	DefaultCoffeeDuration = 45 * time.Second
)

// DurationFunc returns how long preparing an item of the given kind takes.
type DurationFunc func(order.Kind) time.Duration

// Sleeper blocks for d or until ctx is done, returning ctx.Err() in the latter case.
type Sleeper func(ctx context.Context, d time.Duration) error

// Durations holds the preparation time per kind.
type Durations struct {
	Tea    time.Duration
	Coffee time.Duration
}

// DefaultDurations returns the standard brewing times.
func DefaultDurations() Durations {
	return Durations{
		Tea:    DefaultTeaDuration,
		Coffee: DefaultCoffeeDuration,
	}
}

// Validate checks that every duration is positive.
func (d Durations) Validate() error {
	if d.Tea <= 0 {
		return errs.NewValueIsOutOfRangeError("tea duration", d.Tea, time.Nanosecond, "unbounded")
	}
	if d.Coffee <= 0 {
		return errs.NewValueIsOutOfRangeError("coffee duration", d.Coffee, time.Nanosecond, "unbounded")
	}
	return nil
}

// For returns the duration for kind; unknown kinds take the longest time.
func (d Durations) For(kind order.Kind) time.Duration {
	switch kind { //nolint:exhaustive // unknown kinds never reach the pipeline
	case order.Tea:
		return d.Tea
	case order.Coffee:
		return d.Coffee
	default:
		return max(d.Tea, d.Coffee)
	}
}

// SleepContext is the production Sleeper.
func SleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
