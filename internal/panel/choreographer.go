package panel

import (
	"sync"
	"time"

	"github.com/Iron-Ham/bridge/internal/clock"
	"github.com/Iron-Ham/bridge/internal/logging"
)

// Default beat timings.
const (
	DefaultBeat1   = 400 * time.Millisecond
	DefaultBeat2   = 800 * time.Millisecond
	DefaultDismiss = 400 * time.Millisecond
)

// Timings are the durations of the scripted phases.
type Timings struct {
	Beat1   time.Duration
	Beat2   time.Duration
	Dismiss time.Duration
}

// DefaultTimings returns the standard 400/800/400ms choreography.
func DefaultTimings() Timings {
	return Timings{Beat1: DefaultBeat1, Beat2: DefaultBeat2, Dismiss: DefaultDismiss}
}

// Choreographer drives the reveal and dismiss beats of a Controller. Every
// phase change cancels the pending beat before arming the next one.
type Choreographer struct {
	ctrl    *Controller
	clock   clock.Clock
	timings Timings
	logger  *logging.Logger
	subID   string

	mu     sync.Mutex
	timer  clock.Timer
	gen    uint64
	closed bool
}

// NewChoreographer attaches a Choreographer to ctrl.
func NewChoreographer(ctrl *Controller, clk clock.Clock, timings Timings, logger *logging.Logger) *Choreographer {
	if logger == nil {
		logger = logging.NopLogger()
	}
	ch := &Choreographer{
		ctrl:    ctrl,
		clock:   clk,
		timings: timings,
		logger:  logger.WithComponent("choreographer"),
	}
	ch.subID = ctrl.Subscribe(ch.onChange)
	return ch
}

// Cancel drops any pending beat timer. The controller keeps its phase.
func (ch *Choreographer) Cancel() {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	ch.cancelLocked()
}

// Pending reports whether a beat timer is armed.
func (ch *Choreographer) Pending() bool {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	return ch.timer != nil
}

// Close cancels the pending beat and detaches from the controller.
func (ch *Choreographer) Close() {
	ch.mu.Lock()
	if ch.closed {
		ch.mu.Unlock()
		return
	}
	ch.closed = true
	ch.cancelLocked()
	ch.mu.Unlock()

	ch.ctrl.Unsubscribe(ch.subID)
}

func (ch *Choreographer) onChange(c Change) {
	ch.mu.Lock()
	defer ch.mu.Unlock()

	if ch.closed {
		return
	}
	ch.cancelLocked()

	var next Phase
	var after time.Duration
	switch c.Phase {
	case PhaseBeat1:
		next, after = PhaseBeat2, ch.timings.Beat1
	case PhaseBeat2:
		next, after = PhaseActive, ch.timings.Beat2
	case PhaseDismissing:
		next, after = PhaseIdle, ch.timings.Dismiss
	default:
		return
	}

	gen := ch.gen
	from, panelID := c.Phase, c.PanelID
	ch.timer = ch.clock.AfterFunc(after, func() { ch.fire(gen, panelID, from, next) })
	ch.logger.WithPanel(panelID).Debug("beat armed", "from", from.String(), "next", next.String())
}

func (ch *Choreographer) fire(gen uint64, panelID string, from, next Phase) {
	ch.mu.Lock()
	if ch.closed || gen != ch.gen {
		ch.mu.Unlock()
		return
	}
	ch.timer = nil
	ch.mu.Unlock()

	expanded, _ := ch.ctrl.Expanded()
	if expanded != panelID || ch.ctrl.Phase() != from {
		return
	}
	_ = ch.ctrl.SetPhase(next)
}

func (ch *Choreographer) cancelLocked() {
	if ch.timer != nil {
		ch.timer.Stop()
		ch.timer = nil
	}
	ch.gen++
}
