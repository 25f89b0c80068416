package boot

import (
	"github.com/Iron-Ham/bridge/internal/clock"
	"github.com/Iron-Ham/bridge/internal/logging"
)

// Option configures a Sequencer.
type Option func(*options)

type options struct {
	clock  clock.Clock
	logger *logging.Logger
	strict bool
}

// WithClock sets the clock used to timestamp phase changes.
func WithClock(c clock.Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

// WithLogger sets the logger for the sequencer.
func WithLogger(logger *logging.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithStrict makes SetPhase log and return rejected transitions.
// Without it rejected transitions are silently ignored.
func WithStrict(strict bool) Option {
	return func(o *options) {
		o.strict = strict
	}
}
