// Package lazy provides single-slot, per-instance memoization cells.
package lazy

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
)

// State is the resolution state of a Cell.
type State int32

const (
	// Unresolved means the resolver has never run.
	Unresolved State = iota
	// Resolving means a resolver call is in flight.
	Resolving
	// Resolved means a value is cached for the lifetime of the cell.
	Resolved
	// Failed means the last attempt returned an error; the next Get retries.
	Failed
)

func (s State) String() string {
	switch s {
	case Unresolved:
		return "unresolved"
	case Resolving:
		return "resolving"
	case Resolved:
		return "resolved"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Cell computes a value on first successful access and caches it.
// Failures are not cached. Concurrent callers are serialized so the
// resolver never runs twice at once and never runs again after success.
// Panics in the resolver are not recovered.
type Cell[T any] struct {
	mu      sync.Mutex
	state   atomic.Int32
	value   T
	resolve func(context.Context) (T, error)
}

// New returns an unresolved cell backed by resolve.
func New[T any](resolve func(context.Context) (T, error)) *Cell[T] {
	return &Cell[T]{resolve: resolve}
}

// Get returns the cached value or runs the resolver.
func (c *Cell[T]) Get(ctx context.Context) (T, error) {
	if State(c.state.Load()) == Resolved {
		return c.value, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if State(c.state.Load()) == Resolved {
		return c.value, nil
	}

	c.state.Store(int32(Resolving))
	defer func() {
		// A panicking resolver leaves the cell retryable; the panic itself propagates.
		c.state.CompareAndSwap(int32(Resolving), int32(Failed))
	}()
	value, err := c.resolve(ctx)
	if err != nil {
		c.state.Store(int32(Failed))
		var zero T
		return zero, err
	}

	c.value = value
	c.resolve = nil
	c.state.Store(int32(Resolved))
	return value, nil
}

// State reports the current resolution state.
func (c *Cell[T]) State() State {
	return State(c.state.Load())
}

// Peek returns the cached value without triggering resolution.
func (c *Cell[T]) Peek() (T, bool) {
	if State(c.state.Load()) == Resolved {
		return c.value, true
	}
	var zero T
	return zero, false
}
