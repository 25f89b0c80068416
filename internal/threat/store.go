// Package threat holds the financial threats shown on the viewport and the one
// currently under the pointer.
//
// The store feeds two other components: whether any threat exists is part of
// the render activity signal, and hover changes become speech focus. A [Store]
// also implements speech.Composer, turning a hovered threat into the line the
// companion says about it.
package threat

import (
	"fmt"
	"slices"
	"sync"

	"github.com/Iron-Ham/bridge/internal/clock"
	"github.com/Iron-Ham/bridge/internal/errors"
	"github.com/Iron-Ham/bridge/internal/event"
	"github.com/Iron-Ham/bridge/internal/logging"
	"github.com/Iron-Ham/bridge/internal/speech"
)

// Store is the owner of the threat list. It is safe for concurrent use.
type Store struct {
	bus    *event.Bus
	clock  clock.Clock
	logger *logging.Logger

	mu      sync.Mutex
	threats []Threat
	hovered string
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock used to timestamp change events.
func WithClock(c clock.Clock) Option {
	return func(s *Store) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithLogger sets the logger for the store.
func WithLogger(logger *logging.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a Store holding initial.
func New(bus *event.Bus, initial []Threat, opts ...Option) *Store {
	if bus == nil {
		bus = event.NewBus()
	}
	s := &Store{
		bus:     bus,
		clock:   clock.Real{},
		logger:  logging.NopLogger(),
		threats: slices.Clone(initial),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithComponent("threat")
	return s
}

// List returns a copy of every threat in display order.
func (s *Store) List() []Threat {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.threats)
}

// Get returns the threat with id.
func (s *Store) Get(id string) (Threat, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexLocked(id); i >= 0 {
		return s.threats[i], true
	}
	return Threat{}, false
}

// Count returns the number of threats, deflected ones included.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.threats)
}

// HasThreats reports whether any threat exists.
func (s *Store) HasThreats() bool {
	return s.Count() > 0
}

// Add appends t. IDs must be unique and non-empty.
func (s *Store) Add(t Threat) error {
	if t.ID == "" {
		return errors.NewValidationError("threat id must not be empty").WithField("id")
	}
	s.mu.Lock()
	if s.indexLocked(t.ID) >= 0 {
		s.mu.Unlock()
		return errors.NewValidationError("duplicate threat").WithField("id").WithValue(t.ID)
	}
	s.threats = append(s.threats, t)
	s.mu.Unlock()

	s.logger.Debug("threat added", "threat_id", t.ID, "severity", string(t.Severity))
	s.publish()
	return nil
}

// Remove deletes the threat with id and clears the hover if it pointed there.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return errors.NewNotFoundError("threat", id)
	}
	s.threats = slices.Delete(s.threats, i, i+1)
	if s.hovered == id {
		s.hovered = ""
	}
	s.mu.Unlock()

	s.logger.Debug("threat removed", "threat_id", id)
	s.publish()
	return nil
}

// Deflect marks the threat with id as handled. Deflected threats stay listed.
func (s *Store) Deflect(id string) error {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return errors.NewNotFoundError("threat", id)
	}
	if s.threats[i].Deflected {
		s.mu.Unlock()
		return nil
	}
	s.threats[i].Deflected = true
	s.mu.Unlock()

	s.logger.Debug("threat deflected", "threat_id", id)
	s.publish()
	return nil
}

// Hovered returns the ID of the threat under the pointer, or "".
func (s *Store) Hovered() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hovered
}

// SetHovered moves the hover to id. An empty id clears it.
func (s *Store) SetHovered(id string) error {
	s.mu.Lock()
	if id != "" && s.indexLocked(id) < 0 {
		s.mu.Unlock()
		return errors.NewNotFoundError("threat", id)
	}
	if s.hovered == id {
		s.mu.Unlock()
		return nil
	}
	s.hovered = id
	s.mu.Unlock()

	s.publish()
	return nil
}

// Cycle moves the hover delta steps through the list, wrapping at both ends.
// With nothing hovered, a positive delta starts at the first threat and a
// negative one at the last. It returns the new hovered ID.
func (s *Store) Cycle(delta int) string {
	s.mu.Lock()
	n := len(s.threats)
	if n == 0 || delta == 0 {
		hovered := s.hovered
		s.mu.Unlock()
		return hovered
	}
	i := s.indexLocked(s.hovered)
	switch {
	case i < 0 && delta > 0:
		i = delta - 1
	case i < 0:
		i = n + delta
	default:
		i += delta
	}
	i = ((i % n) + n) % n
	s.hovered = s.threats[i].ID
	hovered := s.hovered
	s.mu.Unlock()

	s.publish()
	return hovered
}

// Compose implements speech.Composer: the line for a threat is its detail.
// Deflected and unknown threats say nothing.
func (s *Store) Compose(subjectID string) (speech.Message, bool) {
	t, ok := s.Get(subjectID)
	if !ok || t.Deflected {
		return speech.Message{}, false
	}
	return speech.Message{
		SubjectID: t.ID,
		Text:      t.Detail,
		Priority:  speech.PriorityNormal,
		Category:  speech.CategoryDetail,
	}, true
}

// Summary is a one-line report used for the companion's nudge.
func (s *Store) Summary() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	active, danger := 0, 0
	var worst *Threat
	for i := range s.threats {
		t := &s.threats[i]
		if t.Deflected {
			continue
		}
		active++
		if t.Severity == SeverityDanger {
			danger++
		}
		if worst == nil || t.Amount > worst.Amount {
			worst = t
		}
	}
	if active == 0 {
		return "All clear, Captain. No threats on scope."
	}
	return fmt.Sprintf("%d threats on scope, %d critical. Largest: %s.", active, danger, worst.Label)
}

func (s *Store) indexLocked(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(s.threats, func(t Threat) bool { return t.ID == id })
}

func (s *Store) publish() {
	s.mu.Lock()
	count, hovered := len(s.threats), s.hovered
	s.mu.Unlock()
	s.bus.Publish(event.NewThreatsChangedEvent(count, hovered, s.clock.Now()))
}
