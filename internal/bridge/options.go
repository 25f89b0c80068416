package bridge

import (
	"github.com/Iron-Ham/bridge/internal/clock"
	"github.com/Iron-Ham/bridge/internal/event"
	"github.com/Iron-Ham/bridge/internal/logging"
	"github.com/Iron-Ham/bridge/internal/threat"
)

// Option configures a Bridge.
type Option func(*options)

type options struct {
	clock   clock.Clock
	bus     *event.Bus
	logger  *logging.Logger
	threats []threat.Threat
	seeded  bool
}

// WithClock sets the clock every component schedules through.
func WithClock(c clock.Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

// WithBus sets the event bus. By default the bridge creates its own.
func WithBus(bus *event.Bus) Option {
	return func(o *options) {
		o.bus = bus
	}
}

// WithLogger sets the logger for the bridge and its components.
func WithLogger(logger *logging.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithThreats replaces the demo threats with threats. Passing none starts with
// an empty store.
func WithThreats(threats ...threat.Threat) Option {
	return func(o *options) {
		o.threats = threats
		o.seeded = true
	}
}
