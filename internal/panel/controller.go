package panel

import (
	"math"
	"slices"
	"sync"

	"github.com/Iron-Ham/bridge/internal/clock"
	"github.com/Iron-Ham/bridge/internal/errors"
	"github.com/Iron-Ham/bridge/internal/event"
	"github.com/Iron-Ham/bridge/internal/logging"
)

const component = "panel"

// Change describes one observable change of the controller.
type Change struct {
	// PanelID is the expanded panel after the change, empty when none.
	PanelID  string
	Phase    Phase
	Previous Phase
}

// Controller owns the expanded panel, its activation phase, and per-panel
// health. It is safe for concurrent use.
type Controller struct {
	bus    *event.Bus
	clock  clock.Clock
	logger *logging.Logger
	strict bool
	panels []string

	mu       sync.Mutex
	expanded string
	phase    Phase
	health   map[string]float64
}

// New creates a Controller with no panel expanded.
func New(bus *event.Bus, opts ...Option) *Controller {
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

	return &Controller{
		bus:    bus,
		clock:  o.clock,
		logger: o.logger.WithComponent(component),
		strict: o.strict,
		panels: o.panels,
		phase:  PhaseIdle,
		health: make(map[string]float64),
	}
}

// Panels returns the configured panel IDs. When non-empty, Expand accepts
// only these IDs.
func (c *Controller) Panels() []string {
	return slices.Clone(c.panels)
}

// Expand shows id starting at beat1. A later call replaces an earlier one.
// It returns a *errors.NotFoundError if panels were configured and id is not
// one of them.
func (c *Controller) Expand(id string) error {
	if len(c.panels) > 0 && !slices.Contains(c.panels, id) {
		return errors.NewNotFoundError("panel", id)
	}

	c.mu.Lock()
	if c.expanded == id && c.phase == PhaseBeat1 {
		c.mu.Unlock()
		return nil
	}
	change := Change{PanelID: id, Phase: PhaseBeat1, Previous: c.phase}
	c.expanded = id
	c.phase = PhaseBeat1
	c.mu.Unlock()

	c.publish(change)
	return nil
}

// Collapse starts dismissing the expanded panel. It is a no-op when nothing is
// expanded or the panel is already dismissing.
func (c *Controller) Collapse() {
	c.mu.Lock()
	if c.expanded == "" || c.phase == PhaseDismissing {
		c.mu.Unlock()
		return
	}
	change := Change{PanelID: c.expanded, Phase: PhaseDismissing, Previous: c.phase}
	c.phase = PhaseDismissing
	c.mu.Unlock()

	c.publish(change)
}

// SetPhase stores p. Idle also clears the expanded panel. Any other valid phase
// is stored as given, in any order.
//
// An unknown phase is rejected: in strict mode it is logged and a
// *errors.TransitionError is returned, otherwise it is ignored.
func (c *Controller) SetPhase(p Phase) error {
	c.mu.Lock()
	if !p.Valid() {
		from := c.phase
		c.mu.Unlock()
		return c.reject(from, p)
	}
	if c.phase == p && (p != PhaseIdle || c.expanded == "") {
		c.mu.Unlock()
		return nil
	}
	change := Change{PanelID: c.expanded, Phase: p, Previous: c.phase}
	c.phase = p
	if p == PhaseIdle {
		c.expanded = ""
		change.PanelID = ""
	}
	c.mu.Unlock()

	c.publish(change)
	return nil
}

func (c *Controller) reject(from, to Phase) error {
	err := errors.NewTransitionError(component, from.String(), to.String()).WithCause(errors.ErrUnknownPhase)
	if !c.strict {
		c.logger.Report("phase request ignored", err, "from", from.String(), "to", to.String())
		return nil
	}
	c.logger.Warn("phase request rejected", "from", from.String(), "to", to.String(), "error", err.Error())
	return err
}

// SetHealth sets the health of id, clamped to [0, 1]. NaN is ignored.
func (c *Controller) SetHealth(id string, v float64) {
	if math.IsNaN(v) {
		return
	}
	v = min(max(v, 0), 1)

	c.mu.Lock()
	old, ok := c.health[id]
	if !ok {
		old = 1
	}
	if old == v {
		c.mu.Unlock()
		return
	}
	c.health[id] = v
	c.mu.Unlock()

	c.logger.WithPanel(id).Debug("health changed", "health", v)
	c.bus.Publish(event.NewHealthChangedEvent(id, v, c.clock.Now()))
}

// Health returns the health of id. Panels never set report 1.
func (c *Controller) Health(id string) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.health[id]; ok {
		return v
	}
	return 1
}

// Expanded returns the expanded panel ID, if any.
func (c *Controller) Expanded() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.expanded, c.expanded != ""
}

// Phase returns the current activation phase.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// IsExpanded reports whether any panel is expanded. The cadence scheduler reads
// this as part of its activity signal.
func (c *Controller) IsExpanded() bool {
	_, ok := c.Expanded()
	return ok
}

// Subscribe registers fn for every panel change and returns a subscription ID.
func (c *Controller) Subscribe(fn func(Change)) string {
	return c.bus.Subscribe(event.TypePanelChanged, func(e event.Event) {
		pe, ok := e.(event.PanelChangedEvent)
		if !ok {
			return
		}
		phase, err := ParsePhase(pe.Phase)
		if err != nil {
			return
		}
		prev, err := ParsePhase(pe.Previous)
		if err != nil {
			return
		}
		fn(Change{PanelID: pe.PanelID, Phase: phase, Previous: prev})
	})
}

// Unsubscribe removes a subscription created by Subscribe.
func (c *Controller) Unsubscribe(id string) bool {
	return c.bus.Unsubscribe(id)
}

func (c *Controller) publish(ch Change) {
	c.logger.WithPanel(ch.PanelID).Debug("panel changed", "phase", ch.Phase.String(), "previous", ch.Previous.String())
	c.bus.Publish(event.NewPanelChangedEvent(ch.PanelID, ch.Phase.String(), ch.Previous.String(), c.clock.Now()))
}
