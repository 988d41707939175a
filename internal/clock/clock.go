// Package clock provides helpers for time-related operations.
package clock

import (
	"context"
	"time"
)

// SleepWithContext waits for the duration or returns early if the context is canceled.
func SleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Backoff yields exponentially growing delays between Initial and Max.
// The zero value backs off from one second up to one minute.
type Backoff struct {
	Initial time.Duration
	Max     time.Duration

	current time.Duration
}

// Next returns the delay to wait before the next attempt and advances the sequence.
func (b *Backoff) Next() time.Duration {
	initial, maxDelay := b.bounds()
	if b.current == 0 {
		b.current = initial
		return b.current
	}
	b.current *= 2
	if b.current > maxDelay {
		b.current = maxDelay
	}
	return b.current
}

// Reset restarts the sequence after a successful attempt.
func (b *Backoff) Reset() {
	b.current = 0
}

// Wait sleeps for the next delay, returning early when ctx is done.
func (b *Backoff) Wait(ctx context.Context) error {
	return SleepWithContext(ctx, b.Next())
}

func (b *Backoff) bounds() (time.Duration, time.Duration) {
	initial, maxDelay := b.Initial, b.Max
	if initial <= 0 {
		initial = time.Second
	}
	if maxDelay <= 0 {
		maxDelay = time.Minute
	}
	if maxDelay < initial {
		maxDelay = initial
	}
	return initial, maxDelay
}
