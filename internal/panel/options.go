package panel

import (
	"github.com/Iron-Ham/bridge/internal/clock"
	"github.com/Iron-Ham/bridge/internal/logging"
)

// Option configures a Controller.
type Option func(*options)

type options struct {
	clock  clock.Clock
	logger *logging.Logger
	strict bool
	panels []string
}

// WithClock sets the clock used to timestamp events.
func WithClock(c clock.Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

// WithLogger sets the logger for the controller.
func WithLogger(logger *logging.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithStrict makes SetPhase log and return rejected phases.
func WithStrict(strict bool) Option {
	return func(o *options) {
		o.strict = strict
	}
}

// WithPanels restricts Expand to the given panel IDs. Without it any ID is
// accepted. The restriction is narrower than "any panel may expand": once a
// list is set, Expand of an ID outside it fails with a *errors.NotFoundError
// and leaves the current expansion untouched.
func WithPanels(ids ...string) Option {
	return func(o *options) {
		o.panels = append(o.panels, ids...)
	}
}
