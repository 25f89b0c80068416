// Package cadence throttles scene redraws.
//
// The renderer offers a redraw opportunity at its own refresh rate and asks
// [Scheduler.Evaluate] whether a frame should be drawn. The answer depends only
// on the time since the last granted redraw and on an activity signal: while
// anything is happening the scene may redraw at the active rate, otherwise at
// the idle rate. Skipped opportunities are dropped, never queued.
package cadence

import (
	"sync"
	"time"
)

// Default redraw intervals.
const (
	DefaultActiveInterval = time.Second / 60
	DefaultIdleInterval   = time.Second / 30
)

// Stats counts scheduler decisions.
type Stats struct {
	Opportunities int
	Redraws       int
	ActiveRedraws int
	// Active is the activity signal seen by the most recent decision.
	Active bool
	// Last is the timestamp of the most recent granted redraw.
	Last time.Duration
}

// Skipped returns how many opportunities did not redraw.
func (s Stats) Skipped() int {
	return s.Opportunities - s.Redraws
}

// Scheduler decides whether a redraw opportunity should produce a frame.
// It is safe for concurrent use.
type Scheduler struct {
	intervalActive time.Duration
	intervalIdle   time.Duration
	activity       func() bool

	mu    sync.Mutex
	last  time.Duration
	drawn bool
	stats Stats
}

// New creates a Scheduler. A nil activity function is treated as always idle.
// Non-positive intervals fall back to the defaults.
func New(intervalActive, intervalIdle time.Duration, activity func() bool) *Scheduler {
	if intervalActive <= 0 {
		intervalActive = DefaultActiveInterval
	}
	if intervalIdle <= 0 {
		intervalIdle = DefaultIdleInterval
	}
	if activity == nil {
		activity = func() bool { return false }
	}
	return &Scheduler{
		intervalActive: intervalActive,
		intervalIdle:   intervalIdle,
		activity:       activity,
	}
}

// Evaluate is called once per redraw opportunity with the renderer's elapsed
// time. It returns true when a frame should be drawn and records now as the
// last redraw. The first call always draws; a now earlier than the last redraw
// never does.
func (s *Scheduler) Evaluate(now time.Duration) bool {
	// The activity signal reads other components and must not run under s.mu.
	active := s.activity()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.stats.Opportunities++
	s.stats.Active = active

	if s.drawn {
		interval := s.intervalIdle
		if active {
			interval = s.intervalActive
		}
		if now < s.last || now-s.last < interval {
			return false
		}
	}

	s.drawn = true
	s.last = now
	s.stats.Redraws++
	if active {
		s.stats.ActiveRedraws++
	}
	s.stats.Last = now
	return true
}

// Interval returns the interval the next decision would use.
func (s *Scheduler) Interval() time.Duration {
	if s.activity() {
		return s.intervalActive
	}
	return s.intervalIdle
}

// Stats returns a snapshot of the decision counters.
func (s *Scheduler) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// Reset forgets the last redraw so the next opportunity draws.
func (s *Scheduler) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drawn = false
	s.last = 0
	s.stats = Stats{}
}
