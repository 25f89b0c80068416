package boot

import (
	"sync"
	"time"

	"github.com/Iron-Ham/bridge/internal/clock"
)

// Gate becomes active once the sequencer has reached a phase and a further
// delay has elapsed. A gate built after boot has completed is active
// immediately. A replay deactivates it until the phase is reached again.
type Gate struct {
	seq   *Sequencer
	clock clock.Clock
	phase Phase
	delay time.Duration
	subID string

	mu     sync.Mutex
	active bool
	timer  clock.Timer
	gen    uint64
	closed bool
}

// NewGate creates a Gate for phase plus delay.
func NewGate(seq *Sequencer, clk clock.Clock, phase Phase, delay time.Duration) *Gate {
	g := &Gate{
		seq:   seq,
		clock: clk,
		phase: phase,
		delay: delay,
	}
	g.subID = seq.Subscribe(func(c PhaseChange) { g.observe(c.To) })
	g.observe(seq.Phase())
	return g
}

// Active reports whether the gate has opened.
func (g *Gate) Active() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.active
}

// Close cancels a pending delay and detaches from the sequencer.
func (g *Gate) Close() {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return
	}
	g.closed = true
	g.cancelLocked()
	g.mu.Unlock()

	g.seq.Unsubscribe(g.subID)
}

func (g *Gate) observe(p Phase) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return
	}
	switch {
	case p == PhaseComplete:
		g.cancelLocked()
		g.active = true
	case p < g.phase:
		g.cancelLocked()
		g.active = false
	case g.active || g.timer != nil:
		// Already open or opening.
	case g.delay <= 0:
		g.active = true
	default:
		g.gen++
		gen := g.gen
		g.timer = g.clock.AfterFunc(g.delay, func() { g.open(gen) })
	}
}

func (g *Gate) open(gen uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed || gen != g.gen {
		return
	}
	g.timer = nil
	g.active = true
}

func (g *Gate) cancelLocked() {
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
	g.gen++
}
