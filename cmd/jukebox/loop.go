package jukebox

import (
	"context"
	"errors"
	"time"
)

// Clock measures wall-clock time between loop iterations.
type Clock struct {
	now     func() time.Time
	last    time.Time
	started bool
}

// NewClock returns a Clock reading now, or time.Now when nil.
func NewClock(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{now: now}
}

// Tick returns the time since the previous Tick. The first Tick returns 0
// and a clock going backwards yields 0.
func (c *Clock) Tick() time.Duration {
	t := c.now()
	if !c.started {
		c.started = true
		c.last = t
		return 0
	}
	dt := t.Sub(c.last)
	c.last = t
	return max(dt, 0)
}

// EventSource yields at most one key per Poll, waiting no longer than
// timeout.
type EventSource interface {
	Poll(ctx context.Context, timeout time.Duration) (Key, bool, error)
}

// QueueSource is an EventSource fed by the terminal front-end.
type QueueSource struct {
	keys chan Key
}

func NewQueueSource(capacity int) *QueueSource {
	return &QueueSource{keys: make(chan Key, max(capacity, 1))}
}

// Push enqueues k without blocking. It reports false when the queue is full.
func (q *QueueSource) Push(k Key) bool {
	select {
	case q.keys <- k:
		return true
	default:
		return false
	}
}

func (q *QueueSource) Poll(ctx context.Context, timeout time.Duration) (Key, bool, error) {
	select {
	case k := <-q.keys:
		return k, true, nil
	default:
	}
	if timeout <= 0 {
		return Key{}, false, nil
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case k := <-q.keys:
		return k, true, nil
	case <-timer.C:
		return Key{}, false, nil
	case <-ctx.Done():
		return Key{}, false, ctx.Err()
	}
}

// Loop is one control loop over a session: advance the clock, then handle
// at most one input event.
type Loop struct {
	Session     *Session
	Clock       *Clock
	Source      EventSource
	PollTimeout time.Duration
}

// Step runs one iteration and returns the action it applied. Load and scan
// failures are returned for display; the loop itself keeps going.
func (l *Loop) Step(ctx context.Context) (Action, error) {
	var errs []error
	if err := l.Session.Advance(l.Clock.Tick()); err != nil {
		errs = append(errs, err)
	}

	key, ok, err := l.Source.Poll(ctx, l.PollTimeout)
	if err != nil {
		return ActionNone, errors.Join(append(errs, err)...)
	}
	if !ok {
		return ActionNone, errors.Join(errs...)
	}

	action := Dispatch(l.Session.Mode(), key)
	if err := l.Session.Apply(ctx, action); err != nil {
		errs = append(errs, err)
	}
	return action, errors.Join(errs...)
}
