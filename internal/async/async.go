// Package async provides the small set of blocking, single-shot primitives the
// game paces itself with: clock-driven delays and a one-consumer latch for
// player input. Every wait honours its context.
package async

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrStale is returned to a waiter whose latch arm was replaced by a newer Wait.
var ErrStale = errors.New("latch wait superseded")

// Clock supplies timer channels.
type Clock interface {
	After(d time.Duration) <-chan time.Time
}

// RealClock uses wall-clock timers.
type RealClock struct{}

// After implements Clock.
func (RealClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}

// InstantClock fires every timer immediately. Used by tests and by headless
// runs where pacing does not matter.
type InstantClock struct{}

// After implements Clock.
func (InstantClock) After(time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	ch <- time.Now()
	return ch
}

// Delay blocks for d on clock, or until ctx is done.
func Delay(ctx context.Context, clock Clock, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case <-clock.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type arm[T any] struct {
	value chan T
	stale chan struct{}
}

// Latch hands values to at most one waiting consumer. A value offered while
// nobody waits is dropped.
type Latch[T any] struct {
	mu      sync.Mutex
	current *arm[T]
}

// Wait arms the latch and blocks until a value is offered, the arm is
// replaced by another Wait (ErrStale) or ctx is done.
func (l *Latch[T]) Wait(ctx context.Context) (T, error) {
	a := &arm[T]{value: make(chan T, 1), stale: make(chan struct{})}

	l.mu.Lock()
	if l.current != nil {
		close(l.current.stale)
	}
	l.current = a
	l.mu.Unlock()

	var zero T
	select {
	case v := <-a.value:
		return v, nil
	case <-a.stale:
		return zero, ErrStale
	case <-ctx.Done():
		if l.disarm(a) {
			return zero, ctx.Err()
		}
		// Lost the arm: an Offer handed over a value first, or a newer Wait
		// replaced this one.
		select {
		case v := <-a.value:
			return v, nil
		default:
			return zero, ctx.Err()
		}
	}
}

// Offer delivers v to the armed waiter, if any, and disarms the latch.
// It reports whether the value was taken; a taken value is always returned
// by the waiter's Wait.
func (l *Latch[T]) Offer(v T) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	a := l.current
	if a == nil {
		return false
	}
	l.current = nil
	a.value <- v
	return true
}

// Armed reports whether a consumer is currently waiting.
func (l *Latch[T]) Armed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current != nil
}

// disarm removes a if it is still the current arm and reports whether it was.
func (l *Latch[T]) disarm(a *arm[T]) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.current != a {
		return false
	}
	l.current = nil
	return true
}
