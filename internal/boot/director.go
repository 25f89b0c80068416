package boot

import (
	"sync"
	"time"

	"github.com/Iron-Ham/bridge/internal/clock"
	"github.com/Iron-Ham/bridge/internal/logging"
)

// DirectorConfig configures a Director.
type DirectorConfig struct {
	// Dwell is how long each phase lasts. Phases missing from the map advance
	// on the next timer delivery.
	Dwell map[Phase]time.Duration

	// AutoStart leaves PhaseStart after its dwell instead of waiting for Start.
	AutoStart bool

	Logger *logging.Logger
}

// DwellFromNames converts a name-keyed dwell table, as found in config, to a
// Phase-keyed one. Unknown names are dropped.
func DwellFromNames(named map[string]time.Duration) map[Phase]time.Duration {
	dwell := make(map[Phase]time.Duration, len(named))
	for name, d := range named {
		p, err := ParsePhase(name)
		if err != nil {
			continue
		}
		dwell[p] = d
	}
	return dwell
}

// Director advances a Sequencer on a timer: each phase is held for its dwell
// time and then advanced. Skip and Reset on the sequencer cancel the pending
// timer and arm the one for the new phase.
type Director struct {
	seq   *Sequencer
	clock clock.Clock
	cfg   DirectorConfig

	logger *logging.Logger
	subID  string

	mu      sync.Mutex
	timer   clock.Timer
	gen     uint64
	stopped bool
}

// NewDirector creates a Director and arms the timer for the sequencer's
// current phase.
func NewDirector(seq *Sequencer, clk clock.Clock, cfg DirectorConfig) *Director {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}
	d := &Director{
		seq:    seq,
		clock:  clk,
		cfg:    cfg,
		logger: logger.WithComponent("boot-director"),
	}
	d.subID = seq.Subscribe(func(c PhaseChange) { d.arm(c.To) })
	d.arm(seq.Phase())
	return d
}

// Start is the user leaving the start screen. It is a no-op in any other phase.
func (d *Director) Start() {
	if d.seq.Phase() != PhaseStart {
		return
	}
	d.seq.Advance()
}

// Stop cancels the pending dwell timer and detaches from the sequencer.
// It is safe to call multiple times.
func (d *Director) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	d.cancelLocked()
	d.mu.Unlock()

	d.seq.Unsubscribe(d.subID)
}

// Pending reports whether a dwell timer is armed.
func (d *Director) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

func (d *Director) arm(p Phase) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.cancelLocked()
	if p == PhaseComplete || (p == PhaseStart && !d.cfg.AutoStart) {
		return
	}

	d.gen++
	gen := d.gen
	dwell := d.cfg.Dwell[p]
	d.timer = d.clock.AfterFunc(dwell, func() { d.fire(gen, p) })
	d.logger.Debug("dwell armed", "phase", p.String(), "dwell_ms", dwell.Milliseconds())
}

func (d *Director) fire(gen uint64, p Phase) {
	d.mu.Lock()
	if d.stopped || gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.mu.Unlock()

	// The sequencer may have moved on through Skip or SetPhase.
	if d.seq.Phase() != p {
		return
	}
	d.seq.Advance()
}

func (d *Director) cancelLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
}
