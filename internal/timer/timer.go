// Package timer tracks how long a quiz has been running.
package timer

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

type State int

const (
	Stopped State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "RUNNING"
	}
	return "STOPPED"
}

// Timer refreshes its elapsed value once per tick while running. Elapsed is
// safe to read from any goroutine.
type Timer struct {
	mu      sync.Mutex
	now     func() time.Time
	tick    time.Duration
	start   time.Time
	offset  time.Duration
	state   State
	cancel  context.CancelFunc
	done    chan struct{}
	elapsed atomic.Int64 // milliseconds
}

// Option configures a Timer.
type Option func(*Timer)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(t *Timer) {
		t.now = now
	}
}

// WithTick sets the refresh interval. Defaults to one second.
func WithTick(d time.Duration) Option {
	return func(t *Timer) {
		if d > 0 {
			t.tick = d
		}
	}
}

func New(opts ...Option) *Timer {
	t := &Timer{
		now:  time.Now,
		tick: time.Second,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Start resets elapsed time to zero and starts counting.
func (t *Timer) Start() {
	t.StartFrom(0)
}

// StartFrom starts counting with offset already elapsed. A running timer is
// restarted.
func (t *Timer) StartFrom(offset time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopLocked()
	t.start = t.now()
	t.offset = offset
	t.elapsed.Store(offset.Milliseconds())
	t.state = Running

	ctx, cancel := context.WithCancel(context.Background())
	t.cancel = cancel
	t.done = make(chan struct{})
	go t.run(ctx, t.done, t.start, offset)
}

func (t *Timer) run(ctx context.Context, done chan struct{}, start time.Time, offset time.Duration) {
	defer close(done)
	ticker := time.NewTicker(t.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.elapsed.Store((offset + t.now().Sub(start)).Milliseconds())
		}
	}
}

// Stop cancels the periodic refresh and records the final elapsed time.
// Stopping a stopped timer does nothing.
func (t *Timer) Stop() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state == Running {
		t.stopLocked()
		t.elapsed.Store((t.offset + t.now().Sub(t.start)).Milliseconds())
	}
	return t.Elapsed()
}

func (t *Timer) stopLocked() {
	if t.cancel == nil {
		return
	}
	t.cancel()
	<-t.done
	t.cancel = nil
	t.done = nil
	t.state = Stopped
}

// Elapsed returns the last computed elapsed time.
func (t *Timer) Elapsed() time.Duration {
	return time.Duration(t.elapsed.Load()) * time.Millisecond
}

// ElapsedMs returns the last computed elapsed time in milliseconds.
func (t *Timer) ElapsedMs() int64 {
	return t.elapsed.Load()
}

func (t *Timer) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}
