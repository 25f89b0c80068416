package power

import (
	"time"

	"github.com/Iron-Ham/bridge/internal/clock"
	"github.com/Iron-Ham/bridge/internal/logging"
)

const (
	defaultSettleDelay = 600 * time.Millisecond
	defaultStagger     = 100 * time.Millisecond
)

// Option configures a Registry.
type Option func(*options)

type options struct {
	clock       clock.Clock
	logger      *logging.Logger
	settleDelay time.Duration
	stagger     time.Duration
	instruments []string
}

// WithClock sets the clock that drives settle timers.
func WithClock(c clock.Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

// WithLogger sets the logger for the registry.
func WithLogger(logger *logging.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithSettleDelay sets how long an instrument stays in boot before running.
// A negative value is replaced with the default (600ms).
func WithSettleDelay(d time.Duration) Option {
	return func(o *options) {
		o.settleDelay = d
	}
}

// WithStagger sets the extra settle delay added per instrument in
// registration order. A negative value is replaced with the default (100ms).
func WithStagger(d time.Duration) Option {
	return func(o *options) {
		o.stagger = d
	}
}

// WithInstruments registers instruments up front so their stagger order is
// fixed rather than depending on first query.
func WithInstruments(ids ...string) Option {
	return func(o *options) {
		o.instruments = append(o.instruments, ids...)
	}
}
