// Package clock provides cancellable scheduled tasks for the bridge core.
//
// Every timer in the core (boot dwell, instrument settle, panel beats, speech
// debounce) is created through a [Clock] and returns a [Timer] handle. Owners
// stop the handle before arming a new one and on teardown, so a cancelled task
// never mutates state after its subject is gone.
//
// [Loop] delivers expired callbacks over a channel so that a single event loop
// (the TUI update loop) runs them. [Fake] is a manually advanced clock for tests
// and the headless simulator.
package clock

import (
	"sync"
	"sync/atomic"
	"time"
)

// Timer is a handle to a scheduled callback.
type Timer interface {
	// Stop cancels the callback. It returns true if the call prevented the
	// callback from running.
	Stop() bool
}

// Clock schedules callbacks and reports the current time.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// Real runs callbacks on the runtime timer goroutine.
type Real struct{}

// Now returns time.Now().
func (Real) Now() time.Time { return time.Now() }

// AfterFunc wraps time.AfterFunc.
func (Real) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Loop is a Clock whose callbacks are handed to a single consumer through
// Callbacks(). A callback whose timer was stopped after expiry but before the
// consumer ran it is dropped.
type Loop struct {
	ch     chan func()
	done   chan struct{}
	closed sync.Once
}

// NewLoop creates a Loop with the given callback buffer.
func NewLoop(buffer int) *Loop {
	if buffer < 1 {
		buffer = 1
	}
	return &Loop{
		ch:   make(chan func(), buffer),
		done: make(chan struct{}),
	}
}

const (
	timerPending int32 = iota
	timerStopped
	timerFired
)

type loopTimer struct {
	t     *time.Timer
	state atomic.Int32
}

func (lt *loopTimer) Stop() bool {
	if !lt.state.CompareAndSwap(timerPending, timerStopped) {
		return false
	}
	lt.t.Stop()
	return true
}

// Now returns time.Now().
func (l *Loop) Now() time.Time { return time.Now() }

// AfterFunc schedules f to be delivered on Callbacks() after d.
func (l *Loop) AfterFunc(d time.Duration, f func()) Timer {
	lt := &loopTimer{}
	lt.t = time.AfterFunc(d, func() {
		run := func() {
			if lt.state.CompareAndSwap(timerPending, timerFired) {
				f()
			}
		}
		select {
		case l.ch <- run:
		case <-l.done:
		}
	})
	return lt
}

// Callbacks returns the channel of expired callbacks.
func (l *Loop) Callbacks() <-chan func() { return l.ch }

// Done is closed once Close has been called.
func (l *Loop) Done() <-chan struct{} { return l.done }

// Close stops delivery. Timers that expire afterwards are discarded.
func (l *Loop) Close() {
	l.closed.Do(func() { close(l.done) })
}
