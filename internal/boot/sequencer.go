package boot

import (
	"sync"

	"github.com/Iron-Ham/bridge/internal/clock"
	"github.com/Iron-Ham/bridge/internal/errors"
	"github.com/Iron-Ham/bridge/internal/event"
	"github.com/Iron-Ham/bridge/internal/logging"
)

const component = "boot"

const (
	bootingIntensity  = 1.0
	settledIntensity  = 0.96
	sequenceLastIndex = float64(PhaseComplete)
)

// PhaseChange describes one transition of the sequencer.
type PhaseChange struct {
	From  Phase
	To    Phase
	Reset bool
}

// Sequencer holds the current boot phase. It is safe for concurrent use;
// subscribers are notified after the internal lock is released.
type Sequencer struct {
	mu    sync.Mutex
	phase Phase

	bus    *event.Bus
	clock  clock.Clock
	logger *logging.Logger
	strict bool
}

// New creates a Sequencer at PhaseStart that publishes on bus.
// A nil bus gets a private one.
func New(bus *event.Bus, opts ...Option) *Sequencer {
	o := &options{
		clock:  clock.Real{},
		logger: logging.NopLogger(),
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
	if bus == nil {
		bus = event.NewBus()
	}

	return &Sequencer{
		phase:  PhaseStart,
		bus:    bus,
		clock:  o.clock,
		logger: o.logger.WithComponent(component),
		strict: o.strict,
	}
}

// Phase returns the current phase.
func (s *Sequencer) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Advance moves to the next phase. It is a no-op at PhaseComplete.
func (s *Sequencer) Advance() {
	s.mu.Lock()
	if s.phase == PhaseComplete {
		s.mu.Unlock()
		return
	}
	change := s.setLocked(s.phase.Next(), false)
	s.mu.Unlock()

	s.publish(change)
}

// Skip jumps to PhaseComplete. It is a no-op at PhaseComplete.
func (s *Sequencer) Skip() {
	s.mu.Lock()
	if s.phase == PhaseComplete {
		s.mu.Unlock()
		return
	}
	change := s.setLocked(PhaseComplete, false)
	s.mu.Unlock()

	s.publish(change)
}

// Reset returns to PhaseStart for a replay. It is a no-op at PhaseStart.
func (s *Sequencer) Reset() {
	s.mu.Lock()
	if s.phase == PhaseStart {
		s.mu.Unlock()
		return
	}
	change := s.setLocked(PhaseStart, true)
	s.mu.Unlock()

	s.publish(change)
}

// SetPhase requests a transition to p from outside the sequencer. Only the
// immediate next phase, or PhaseComplete as a skip, is accepted.
//
// A rejected request returns a *errors.TransitionError in strict mode and is
// logged at WARN. Otherwise it is dropped and SetPhase returns nil.
func (s *Sequencer) SetPhase(p Phase) error {
	s.mu.Lock()
	from := s.phase
	if !p.Valid() || from == PhaseComplete || (p != from.Next() && p != PhaseComplete) {
		s.mu.Unlock()
		return s.reject(from, p)
	}
	change := s.setLocked(p, false)
	s.mu.Unlock()

	s.publish(change)
	return nil
}

func (s *Sequencer) reject(from, to Phase) error {
	err := errors.NewTransitionError(component, from.String(), to.String())
	if !to.Valid() {
		err = err.WithCause(errors.ErrUnknownPhase)
	}
	if !s.strict {
		s.logger.Report("phase request ignored", err, "from", from.String(), "to", to.String())
		return nil
	}
	s.logger.Warn("phase request rejected", "from", from.String(), "to", to.String(), "error", err.Error())
	return err
}

func (s *Sequencer) setLocked(to Phase, reset bool) PhaseChange {
	change := PhaseChange{From: s.phase, To: to, Reset: reset}
	s.phase = to
	return change
}

func (s *Sequencer) publish(c PhaseChange) {
	s.logger.Debug("phase changed", "from", c.From.String(), "to", c.To.String(), "reset", c.Reset)
	s.bus.Publish(event.NewPhaseChangedEvent(c.From.String(), c.To.String(), c.Reset, s.clock.Now()))
}

// Subscribe registers fn for every phase change and returns a subscription ID.
// fn runs synchronously on the goroutine that made the change.
func (s *Sequencer) Subscribe(fn func(PhaseChange)) string {
	return s.bus.Subscribe(event.TypePhaseChanged, func(e event.Event) {
		pe, ok := e.(event.PhaseChangedEvent)
		if !ok {
			return
		}
		c, ok := ChangeFromEvent(pe)
		if !ok {
			return
		}
		fn(c)
	})
}

// Unsubscribe removes a subscription created by Subscribe.
func (s *Sequencer) Unsubscribe(id string) bool {
	return s.bus.Unsubscribe(id)
}

// ChangeFromEvent converts a published phase event back to a PhaseChange.
func ChangeFromEvent(e event.PhaseChangedEvent) (PhaseChange, bool) {
	from, err := ParsePhase(e.From)
	if err != nil {
		return PhaseChange{}, false
	}
	to, err := ParsePhase(e.To)
	if err != nil {
		return PhaseChange{}, false
	}
	return PhaseChange{From: from, To: to, Reset: e.Reset}, true
}

// IsBooting reports whether the sequence is still running.
func (s *Sequencer) IsBooting() bool {
	return s.Phase() != PhaseComplete
}

// Complete reports whether the sequence has finished.
func (s *Sequencer) Complete() bool {
	return s.Phase() == PhaseComplete
}

// Reached reports whether the current phase is p or later.
func (s *Sequencer) Reached(p Phase) bool {
	return s.Phase() >= p
}

// GlobalIntensity is the scene light multiplier: full while booting, slightly
// dimmed once settled.
func (s *Sequencer) GlobalIntensity() float64 {
	if s.Complete() {
		return settledIntensity
	}
	return bootingIntensity
}

// Progress is the fraction of the sequence completed, from 0 to 1.
func (s *Sequencer) Progress() float64 {
	return float64(s.Phase()) / sequenceLastIndex
}
