package power

import (
	"slices"
	"sync"
	"time"

	"github.com/Iron-Ham/bridge/internal/boot"
	"github.com/Iron-Ham/bridge/internal/clock"
	"github.com/Iron-Ham/bridge/internal/event"
	"github.com/Iron-Ham/bridge/internal/logging"
)

type instrument struct {
	id       string
	index    int
	power    State
	hasError bool

	// settle is non-nil while a boot -> running timer is pending.
	settle clock.Timer
	gen    uint64
}

// Registry owns the power state of every instrument. It is safe for concurrent
// use; events are published after the internal lock is released.
type Registry struct {
	clock       clock.Clock
	bus         *event.Bus
	logger      *logging.Logger
	settleDelay time.Duration
	stagger     time.Duration
	subID       string

	mu          sync.Mutex
	instruments map[string]*instrument
	order       []string
	gateOpen    bool
	global      State
}

// New creates a Registry that follows boot phase events on bus.
// A nil bus gets a private one, in which case HandlePhase must be called
// directly.
func New(bus *event.Bus, opts ...Option) *Registry {
	o := &options{
		clock:       clock.Real{},
		logger:      logging.NopLogger(),
		settleDelay: defaultSettleDelay,
		stagger:     defaultStagger,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.clock == nil {
		o.clock = clock.Real{}
	}
	if o.logger == nil {
		o.logger = logging.NopLogger()
	}
	if o.settleDelay < 0 {
		o.settleDelay = defaultSettleDelay
	}
	if o.stagger < 0 {
		o.stagger = defaultStagger
	}
	if bus == nil {
		bus = event.NewBus()
	}

	r := &Registry{
		clock:       o.clock,
		bus:         bus,
		logger:      o.logger.WithComponent("power"),
		settleDelay: o.settleDelay,
		stagger:     o.stagger,
		instruments: make(map[string]*instrument),
	}
	for _, id := range o.instruments {
		r.lookupLocked(id)
	}

	r.subID = bus.Subscribe(event.TypePhaseChanged, func(e event.Event) {
		pe, ok := e.(event.PhaseChangedEvent)
		if !ok {
			return
		}
		if c, ok := boot.ChangeFromEvent(pe); ok {
			r.HandlePhase(c)
		}
	})
	return r
}

// Close detaches the registry from the bus and cancels every pending settle.
func (r *Registry) Close() {
	r.bus.Unsubscribe(r.subID)

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, inst := range r.instruments {
		r.cancelLocked(inst)
	}
}

// HandlePhase applies a boot phase change. Reaching power-surge, or skipping
// past it, opens the power gate. A reset returns everything to off.
func (r *Registry) HandlePhase(c boot.PhaseChange) {
	if c.Reset {
		r.Reset()
		return
	}
	if c.To < boot.PhasePowerSurge {
		return
	}

	r.mu.Lock()
	if r.gateOpen {
		r.mu.Unlock()
		return
	}
	r.gateOpen = true
	var pending []event.Event
	for _, id := range r.order {
		inst := r.instruments[id]
		if inst.power == StateOff {
			inst.power = StateBoot
			r.armLocked(inst, r.settleDelay+time.Duration(inst.index)*r.stagger)
		}
		pending = append(pending, r.instrumentEventLocked(inst))
	}
	pending = r.appendGlobalLocked(pending)
	r.mu.Unlock()

	r.logger.Debug("power gate opened", "phase", c.To.String(), "instruments", len(pending))
	r.publish(pending)
}

// State returns the status of id, creating the instrument if it is new.
// HasError is reported as false until the power gate has opened.
func (r *Registry) State(id string) Status {
	r.mu.Lock()
	inst, created := r.lookupLocked(id)
	var pending []event.Event
	if created && r.gateOpen {
		// Instruments that appear after power-surge boot straight away.
		inst.power = StateBoot
		r.armLocked(inst, r.settleDelay)
		pending = append(pending, r.instrumentEventLocked(inst))
		pending = r.appendGlobalLocked(pending)
	}
	status := r.statusLocked(inst)
	r.mu.Unlock()

	r.publish(pending)
	return status
}

// ReportError sets or clears the data-load error of id.
//
// An error never changes power: a running instrument stays running, and one
// still booting stays in boot once its settle fires. Clearing the error of an
// instrument stuck in boot arms a fresh settle.
func (r *Registry) ReportError(id string, hasError bool) {
	r.mu.Lock()
	inst, created := r.lookupLocked(id)
	if inst.hasError == hasError && !created {
		r.mu.Unlock()
		return
	}
	inst.hasError = hasError

	var pending []event.Event
	if r.gateOpen {
		if created {
			inst.power = StateBoot
			r.armLocked(inst, r.settleDelay)
		} else if !hasError && inst.power == StateBoot && inst.settle == nil {
			r.armLocked(inst, r.settleDelay)
		}
		pending = append(pending, r.instrumentEventLocked(inst))
		pending = r.appendGlobalLocked(pending)
	}
	r.mu.Unlock()

	r.logger.WithInstrument(id).Debug("error flag changed", "has_error", hasError)
	r.publish(pending)
}

// Global returns the bridge-wide power state: off until the power gate
// opens, boot while any instrument is not yet running (including one held in
// boot by a malfunction), and running once every instrument is.
func (r *Registry) Global() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.global
}

// Instruments returns every known instrument ID in registration order.
func (r *Registry) Instruments() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.order)
}

// Reset cancels every pending settle and returns all instruments and the
// global state to off. Error flags are kept.
func (r *Registry) Reset() {
	r.mu.Lock()
	r.gateOpen = false
	var pending []event.Event
	for _, id := range r.order {
		inst := r.instruments[id]
		r.cancelLocked(inst)
		if inst.power != StateOff {
			inst.power = StateOff
			pending = append(pending, r.instrumentEventLocked(inst))
		}
	}
	pending = r.appendGlobalLocked(pending)
	r.mu.Unlock()

	r.logger.Debug("power reset")
	r.publish(pending)
}

// Observe returns an Observer for id.
func (r *Registry) Observe(id string) *Observer {
	return &Observer{registry: r, id: id, last: StateOff}
}

func (r *Registry) lookupLocked(id string) (*instrument, bool) {
	if inst, ok := r.instruments[id]; ok {
		return inst, false
	}
	inst := &instrument{id: id, index: len(r.order), power: StateOff}
	r.instruments[id] = inst
	r.order = append(r.order, id)
	return inst, true
}

func (r *Registry) armLocked(inst *instrument, d time.Duration) {
	r.cancelLocked(inst)
	gen := inst.gen
	id := inst.id
	inst.settle = r.clock.AfterFunc(d, func() { r.settle(id, gen) })
}

func (r *Registry) cancelLocked(inst *instrument) {
	if inst.settle != nil {
		inst.settle.Stop()
		inst.settle = nil
	}
	inst.gen++
}

func (r *Registry) settle(id string, gen uint64) {
	r.mu.Lock()
	inst, ok := r.instruments[id]
	if !ok || inst.gen != gen || !r.gateOpen {
		r.mu.Unlock()
		return
	}
	inst.settle = nil

	var pending []event.Event
	if inst.hasError {
		r.logger.WithInstrument(id).Warn("instrument malfunction, holding in boot")
	} else if inst.power == StateBoot {
		inst.power = StateRunning
		pending = append(pending, r.instrumentEventLocked(inst))
		r.logger.WithInstrument(id).Debug("instrument running")
	}
	pending = r.appendGlobalLocked(pending)
	r.mu.Unlock()

	r.publish(pending)
}

func (r *Registry) statusLocked(inst *instrument) Status {
	return Status{
		Power:    inst.power,
		HasError: inst.hasError && r.gateOpen,
	}
}

func (r *Registry) computeGlobalLocked() State {
	if !r.gateOpen {
		return StateOff
	}
	for _, inst := range r.instruments {
		if inst.power != StateRunning {
			return StateBoot
		}
	}
	return StateRunning
}

func (r *Registry) appendGlobalLocked(pending []event.Event) []event.Event {
	global := r.computeGlobalLocked()
	if global == r.global {
		return pending
	}
	r.global = global
	return append(pending, event.NewGlobalPowerChangedEvent(global.String(), r.clock.Now()))
}

func (r *Registry) instrumentEventLocked(inst *instrument) event.Event {
	s := r.statusLocked(inst)
	return event.NewInstrumentChangedEvent(inst.id, s.Power.String(), s.HasError, r.clock.Now())
}

func (r *Registry) publish(events []event.Event) {
	for _, e := range events {
		r.bus.Publish(e)
	}
}
