package bridge

import (
	"sync"
	"time"

	"github.com/Iron-Ham/bridge/internal/boot"
	"github.com/Iron-Ham/bridge/internal/cadence"
	"github.com/Iron-Ham/bridge/internal/clock"
	"github.com/Iron-Ham/bridge/internal/config"
	"github.com/Iron-Ham/bridge/internal/errors"
	"github.com/Iron-Ham/bridge/internal/event"
	"github.com/Iron-Ham/bridge/internal/logging"
	"github.com/Iron-Ham/bridge/internal/panel"
	"github.com/Iron-Ham/bridge/internal/power"
	"github.com/Iron-Ham/bridge/internal/speech"
	"github.com/Iron-Ham/bridge/internal/threat"
)

// Subject IDs for messages that are not about a threat.
const (
	SubjectGreeting = "greeting"
	SubjectNudge    = "nudge"
)

// Activation gates. The console lights up with the glow phase; the viewport
// follows shortly after full power.
const (
	consoleGatePhase  = boot.PhaseConsoleGlow
	viewportGatePhase = boot.PhaseFullPower
	viewportGateDelay = 200 * time.Millisecond
)

// Bridge is the composition root of the dashboard core.
type Bridge struct {
	cfg    config.Config
	clock  clock.Clock
	bus    *event.Bus
	logger *logging.Logger
	epoch  time.Time

	seq      *boot.Sequencer
	director *boot.Director
	console  *boot.Gate
	viewport *boot.Gate
	power    *power.Registry
	panels   *panel.Controller
	choreo   *panel.Choreographer
	cadence  *cadence.Scheduler
	speech   *speech.Queue
	threats  *threat.Store

	subs []string

	mu      sync.Mutex
	hovered string
	closed  bool
}

// New builds a Bridge from cfg. The configuration is validated first and the
// first problem found is returned as an *errors.ValidationError.
func New(cfg *config.Config, opts ...Option) (*Bridge, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if problems := cfg.Validate(); len(problems) > 0 {
		p := problems[0]
		return nil, errors.NewValidationError(p.Message).WithField(p.Field).WithValue(p.Value)
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.clock == nil {
		o.clock = clock.Real{}
	}
	if o.logger == nil {
		o.logger = logging.NopLogger()
	}
	if o.bus == nil {
		o.bus = event.NewBus()
	}
	if !o.seeded {
		o.threats = threat.DemoThreats()
	}

	b := &Bridge{
		cfg:    *cfg,
		clock:  o.clock,
		bus:    o.bus,
		logger: o.logger.WithComponent("bridge"),
		epoch:  o.clock.Now(),
	}

	b.seq = boot.New(b.bus,
		boot.WithClock(b.clock),
		boot.WithLogger(o.logger),
		boot.WithStrict(cfg.Boot.Strict),
	)
	b.power = power.New(b.bus,
		power.WithClock(b.clock),
		power.WithLogger(o.logger),
		power.WithSettleDelay(cfg.Power.SettleDelay()),
		power.WithStagger(cfg.Power.Stagger()),
		power.WithInstruments(cfg.Power.Instruments...),
	)
	b.panels = panel.New(b.bus,
		panel.WithClock(b.clock),
		panel.WithLogger(o.logger),
		panel.WithStrict(cfg.Boot.Strict),
		panel.WithPanels(cfg.Panel.Panels...),
	)
	b.choreo = panel.NewChoreographer(b.panels, b.clock, panel.Timings{
		Beat1:   cfg.Panel.Beat1(),
		Beat2:   cfg.Panel.Beat2(),
		Dismiss: cfg.Panel.Dismiss(),
	}, o.logger)
	b.threats = threat.New(b.bus, o.threats,
		threat.WithClock(b.clock),
		threat.WithLogger(o.logger),
	)
	b.speech = speech.New(b.bus, b.threats,
		speech.WithClock(b.clock),
		speech.WithLogger(o.logger),
		speech.WithDebounce(cfg.Speech.Debounce()),
		speech.WithAutoDismiss(cfg.Speech.AutoDismiss(), cfg.Speech.Typewriter()),
	)
	b.cadence = cadence.New(cfg.Cadence.ActiveInterval(), cfg.Cadence.IdleInterval(), b.Active)

	b.subs = append(b.subs,
		b.bus.Subscribe(event.TypeThreatsChanged, b.onThreats),
		b.bus.Subscribe(event.TypePhaseChanged, b.onPhase),
	)

	// The director is created last so its first dwell timer is armed after
	// every subscriber is in place.
	b.console = boot.NewGate(b.seq, b.clock, consoleGatePhase, 0)
	b.viewport = boot.NewGate(b.seq, b.clock, viewportGatePhase, viewportGateDelay)
	b.director = boot.NewDirector(b.seq, b.clock, boot.DirectorConfig{
		Dwell:     boot.DwellFromNames(cfg.Boot.Dwell.Durations()),
		AutoStart: cfg.Boot.AutoStart,
		Logger:    o.logger,
	})

	b.logger.Info("bridge assembled",
		"instruments", len(cfg.Power.Instruments),
		"panels", len(cfg.Panel.Panels),
		"threats", b.threats.Count(),
		"strict", cfg.Boot.Strict,
	)
	return b, nil
}

// Start leaves the start screen. With boot.skip configured the sequence jumps
// straight to complete.
func (b *Bridge) Start() {
	if b.cfg.Boot.Skip {
		b.seq.Skip()
		return
	}
	b.director.Start()
}

// Skip jumps the boot sequence to complete.
func (b *Bridge) Skip() {
	b.seq.Skip()
}

// Replay runs the boot sequence again from the start screen. Every component
// follows the reset through the bus, see onPhase.
func (b *Bridge) Replay() {
	b.seq.Reset()

	b.logger.Info("boot replay")
	if b.cfg.Boot.Skip {
		b.seq.Skip()
	}
}

// Active is the cadence activity signal: any threat exists or any panel is
// expanded.
func (b *Bridge) Active() bool {
	return b.threats.HasThreats() || b.panels.IsExpanded()
}

// Redraw asks the cadence scheduler whether the current refresh opportunity
// should produce a frame.
func (b *Bridge) Redraw() bool {
	return b.cadence.Evaluate(b.clock.Now().Sub(b.epoch))
}

// Nudge has the companion summarize the threat board at normal priority.
func (b *Bridge) Nudge() error {
	return b.speech.Say(b.nudge())
}

func (b *Bridge) nudge() speech.Message {
	return speech.Message{
		SubjectID: SubjectNudge,
		Text:      b.threats.Summary(),
		Priority:  speech.PriorityNormal,
		Category:  speech.CategoryNudge,
	}
}

// ConsoleActive reports whether the console has lit up.
func (b *Bridge) ConsoleActive() bool { return b.console.Active() }

// ViewportActive reports whether the viewport (threat scope) has lit up.
func (b *Bridge) ViewportActive() bool { return b.viewport.Active() }

// Config returns the configuration the bridge was built from.
func (b *Bridge) Config() config.Config { return b.cfg }

// Bus returns the shared event bus.
func (b *Bridge) Bus() *event.Bus { return b.bus }

// Clock returns the clock every component schedules through.
func (b *Bridge) Clock() clock.Clock { return b.clock }

// Sequencer returns the boot sequencer.
func (b *Bridge) Sequencer() *boot.Sequencer { return b.seq }

// Director returns the boot dwell director.
func (b *Bridge) Director() *boot.Director { return b.director }

// Power returns the instrument power registry.
func (b *Bridge) Power() *power.Registry { return b.power }

// Panels returns the panel controller.
func (b *Bridge) Panels() *panel.Controller { return b.panels }

// Choreographer returns the panel beat choreographer.
func (b *Bridge) Choreographer() *panel.Choreographer { return b.choreo }

// Cadence returns the render cadence scheduler.
func (b *Bridge) Cadence() *cadence.Scheduler { return b.cadence }

// Speech returns the speech queue.
func (b *Bridge) Speech() *speech.Queue { return b.speech }

// Threats returns the threat store.
func (b *Bridge) Threats() *threat.Store { return b.threats }

// Close cancels every pending timer and detaches all components from the bus.
// It is safe to call multiple times.
func (b *Bridge) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	b.mu.Unlock()

	b.director.Stop()
	b.console.Close()
	b.viewport.Close()
	b.choreo.Close()
	b.speech.Close()
	b.power.Close()
	for _, id := range b.subs {
		b.bus.Unsubscribe(id)
	}
	b.logger.Info("bridge closed")
}

func (b *Bridge) onThreats(e event.Event) {
	te, ok := e.(event.ThreatsChangedEvent)
	if !ok {
		return
	}
	b.mu.Lock()
	if b.closed || te.Hovered == b.hovered {
		b.mu.Unlock()
		return
	}
	b.hovered = te.Hovered
	b.mu.Unlock()

	b.speech.FocusChange(te.Hovered)
}

func (b *Bridge) onPhase(e event.Event) {
	pe, ok := e.(event.PhaseChangedEvent)
	if !ok {
		return
	}
	c, ok := boot.ChangeFromEvent(pe)
	if !ok {
		return
	}
	switch {
	case c.Reset:
		b.onReset()
	case c.To == boot.PhaseComplete:
		b.onComplete()
	}
}

// onReset clears what the previous boot left behind. Power follows the reset
// on its own.
func (b *Bridge) onReset() {
	b.choreo.Cancel()
	_ = b.panels.SetPhase(panel.PhaseIdle)
	b.speech.Reset()
}

// onComplete greets the captain and queues the threat summary behind the
// greeting.
func (b *Bridge) onComplete() {
	if b.cfg.Speech.Greeting != "" {
		err := b.speech.Say(speech.Message{
			SubjectID: SubjectGreeting,
			Text:      b.cfg.Speech.Greeting,
			Priority:  speech.PriorityHigh,
			Category:  speech.CategoryGreeting,
		})
		if err != nil {
			b.logger.Report("greeting dropped", err)
		}
	}
	if !b.threats.HasThreats() {
		return
	}
	if err := b.speech.Enqueue(b.nudge()); err != nil {
		b.logger.Report("nudge dropped", err)
	}
}
