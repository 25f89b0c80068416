package tui

import (
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/bridge/internal/boot"
	"github.com/Iron-Ham/bridge/internal/bridge"
	"github.com/Iron-Ham/bridge/internal/clock"
	"github.com/Iron-Ham/bridge/internal/power"
	"github.com/Iron-Ham/bridge/internal/tui/keymap"
	"github.com/Iron-Ham/bridge/internal/tui/styles"
	"github.com/Iron-Ham/bridge/internal/tui/view"
)

const healthStep = 0.1

// Model is the bubbletea model of the bridge screen.
//
// Every tick is a redraw opportunity handed to the cadence scheduler. The
// frame is rebuilt only when a redraw is granted; View otherwise returns the
// cached frame.
type Model struct {
	bridge *bridge.Bridge
	loop   *clock.Loop

	keys     keymap.KeyMap
	help     help.Model
	progress progress.Model
	styles   styles.Styles

	observers []*power.Observer
	refresh   time.Duration

	width, height int
	showStats     bool
	blinkOn       bool
	readoutStart  time.Time
	frame         string
	quitting      bool
}

// NewModel creates a Model over b. loop may be nil when b runs on another
// clock, as in tests.
func NewModel(b *bridge.Bridge, loop *clock.Loop, palette *styles.ColorPalette) Model {
	cfg := b.Config()
	refresh := cfg.Cadence.RefreshInterval()
	if refresh <= 0 {
		refresh = time.Second / 120
	}

	ids := b.Power().Instruments()
	observers := make([]*power.Observer, 0, len(ids))
	for _, id := range ids {
		observers = append(observers, b.Power().Observe(id))
	}

	m := Model{
		bridge:    b,
		loop:      loop,
		keys:      keymap.Default(b.Panels().Panels()),
		help:      help.New(),
		observers: observers,
		refresh:   refresh,
		showStats: cfg.TUI.ShowStats,
	}
	m.setPalette(palette)
	return m
}

func (m *Model) setPalette(p *styles.ColorPalette) {
	m.styles = styles.New(p)
	m.progress = progress.New(
		progress.WithGradient(string(m.styles.Palette.Border), string(m.styles.Palette.Primary)),
		progress.WithoutPercentage(),
		progress.WithWidth(40),
	)
}

// Init starts the tick, the blink and the timer pump.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tick(m.refresh), blink(), waitTimer(m.loop))
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		m.trackReadout()
		if m.bridge.Redraw() {
			m.frame = m.render()
		}
		return m, tick(m.refresh)

	case timerMsg:
		if msg != nil {
			msg()
		}
		return m, waitTimer(m.loop)

	case blinkMsg:
		m.blinkOn = !m.blinkOn
		return m, blink()

	case ThemeMsg:
		m.setPalette(msg.Palette)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	b := m.bridge
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Start):
		b.Start()
	case key.Matches(msg, m.keys.Skip):
		b.Skip()
	case key.Matches(msg, m.keys.Replay):
		b.Replay()
	case key.Matches(msg, m.keys.Collapse):
		b.Panels().Collapse()
	case key.Matches(msg, m.keys.HealthDown):
		m.adjustHealth(-healthStep)
	case key.Matches(msg, m.keys.HealthUp):
		m.adjustHealth(healthStep)
	case key.Matches(msg, m.keys.Up):
		b.Threats().Cycle(-1)
	case key.Matches(msg, m.keys.Down):
		b.Threats().Cycle(1)
	case key.Matches(msg, m.keys.Clear):
		_ = b.Threats().SetHovered("")
	case key.Matches(msg, m.keys.Deflect):
		if id := b.Threats().Hovered(); id != "" {
			_ = b.Threats().Deflect(id)
		}
	case key.Matches(msg, m.keys.Nudge):
		_ = b.Nudge()
	case key.Matches(msg, m.keys.Silence):
		if cur, ok := b.Speech().Current(); ok {
			b.Speech().Finish(cur.ID)
		}
	case key.Matches(msg, m.keys.Fault):
		m.toggleFault()
	case key.Matches(msg, m.keys.Stats):
		m.showStats = !m.showStats
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	default:
		if i := m.keys.PanelIndex(msg.String()); i >= 0 && b.ConsoleActive() {
			_ = b.Panels().Expand(b.Panels().Panels()[i])
		}
	}
	return m, nil
}

func (m Model) adjustHealth(delta float64) {
	id, ok := m.bridge.Panels().Expanded()
	if !ok {
		return
	}
	h := m.bridge.Panels().Health(id) + delta
	m.bridge.Panels().SetHealth(id, math.Round(h*10)/10)
}

// toggleFault flips the malfunction flag of the first instrument.
func (m Model) toggleFault() {
	ids := m.bridge.Power().Instruments()
	if len(ids) == 0 {
		return
	}
	st := m.bridge.Power().State(ids[0])
	m.bridge.Power().ReportError(ids[0], !st.HasError)
}

// trackReadout records when the boot readout started so typing progresses with
// real time between frames.
func (m *Model) trackReadout() {
	phase := m.bridge.Sequencer().Phase()
	switch {
	case phase < boot.PhaseConsoleGlow:
		m.readoutStart = time.Time{}
	case m.readoutStart.IsZero():
		m.readoutStart = m.bridge.Clock().Now()
	}
}

// View returns the cached frame.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.frame == "" {
		return m.render()
	}
	return m.frame
}

func (m Model) render() string {
	b := m.bridge
	seq := b.Sequencer()
	s := m.styles

	var sections []string
	if seq.IsBooting() {
		var lines []string
		var typing string
		if !m.readoutStart.IsZero() {
			lines, typing = view.Readout(b.Clock().Now().Sub(m.readoutStart))
		}
		sections = append(sections, view.BootOverlay(s, view.BootState{
			Phase:  seq.Phase(),
			Bar:    m.progress.ViewAs(seq.Progress()),
			Lines:  lines,
			Typing: typing,
			Width:  m.width,
		}))
	} else {
		sections = append(sections, s.Title.Render("SYNESTHESIAPAY BRIDGE"))
	}

	if seq.Reached(boot.PhaseConsoleGlow) {
		sections = append(sections, m.renderInstruments(), m.renderConsole())
		if id, ok := b.Panels().Expanded(); ok {
			sections = append(sections, view.Hologram(s, view.HologramState{
				PanelID: id,
				Phase:   b.Panels().Phase(),
				Health:  b.Panels().Health(id),
			}))
		}
		sections = append(sections, view.Threats(s, b.Threats().List(), b.Threats().Hovered(), b.ViewportActive()))
	}

	cur, speaking := b.Speech().Current()
	sections = append(sections,
		view.Fit(view.SpeechLine(s, cur, speaking), m.width),
		view.Footer(s, view.FooterState{
			Phase:     seq.Phase(),
			Power:     b.Power().Global(),
			Stats:     b.Cadence().Stats(),
			ShowStats: m.showStats,
			Help:      m.help.View(m.keys),
			Width:     m.width,
		}),
	)
	return lipgloss.JoinVertical(lipgloss.Left, nonEmpty(sections)...)
}

func (m Model) renderInstruments() string {
	items := make([]view.Instrument, 0, len(m.observers))
	for _, o := range m.observers {
		items = append(items, view.Instrument{ID: o.ID(), Reading: o.Read()})
	}
	return view.InstrumentStrip(m.styles, items, m.blinkOn)
}

func (m Model) renderConsole() string {
	panels := m.bridge.Panels()
	expanded, _ := panels.Expanded()
	ids := panels.Panels()
	slots := make([]view.ConsolePanel, 0, len(ids))
	for _, id := range ids {
		slots = append(slots, view.ConsolePanel{
			ID:       id,
			Health:   panels.Health(id),
			Expanded: id == expanded,
		})
	}
	return view.Console(m.styles, slots, m.bridge.ConsoleActive())
}

func nonEmpty(sections []string) []string {
	out := sections[:0]
	for _, s := range sections {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}
