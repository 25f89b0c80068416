package power

import "sync"

// Observer is one consumer's view of an instrument. It remembers the power it
// last reported so it can flag the boot -> running edge exactly once.
type Observer struct {
	registry *Registry
	id       string

	mu   sync.Mutex
	last State
}

// ID returns the observed instrument ID.
func (o *Observer) ID() string {
	return o.id
}

// Read returns the current reading for the instrument.
func (o *Observer) Read() Reading {
	status := o.registry.State(o.id)
	global := o.registry.Global()

	o.mu.Lock()
	justBooted := o.last == StateBoot && status.Power == StateRunning
	o.last = status.Power
	o.mu.Unlock()

	return Reading{
		Power:      status.Power,
		Global:     global,
		JustBooted: justBooted,
		IsOff:      status.Power == StateOff,
		IsBooting:  status.Power == StateBoot,
		IsRunning:  status.Power == StateRunning,
		HasError:   status.HasError,
	}
}
