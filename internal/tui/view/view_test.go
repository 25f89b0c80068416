package view

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/bridge/internal/boot"
	"github.com/Iron-Ham/bridge/internal/cadence"
	"github.com/Iron-Ham/bridge/internal/panel"
	"github.com/Iron-Ham/bridge/internal/power"
	"github.com/Iron-Ham/bridge/internal/speech"
	"github.com/Iron-Ham/bridge/internal/threat"
	"github.com/Iron-Ham/bridge/internal/tui/styles"
)

func lineDuration(line string) time.Duration {
	return time.Duration(len(line)+1)*ReadoutCharInterval + ReadoutLinePause
}

func TestReadout(t *testing.T) {
	first := ReadoutLines[0]

	tests := []struct {
		name       string
		elapsed    time.Duration
		wantDone   int
		wantTyping string
	}{
		{"negative", -time.Second, 0, ""},
		{"start", 0, 0, ""},
		{"three chars", 3 * ReadoutCharInterval, 0, first[:3]},
		{"fully typed, not committed", time.Duration(len(first)) * ReadoutCharInterval, 0, first},
		{"committed, pausing", time.Duration(len(first)+1) * ReadoutCharInterval, 1, ""},
		{"second line begins", lineDuration(first) + ReadoutCharInterval, 1, ReadoutLines[1][:1]},
		{"finished", time.Hour, len(ReadoutLines), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			done, typing := Readout(tt.elapsed)
			if len(done) != tt.wantDone || typing != tt.wantTyping {
				t.Errorf("Readout(%v) = %d lines, %q; want %d, %q", tt.elapsed, len(done), typing, tt.wantDone, tt.wantTyping)
			}
		})
	}
}

func TestBootOverlay(t *testing.T) {
	s := styles.New(nil)

	start := BootOverlay(s, BootState{Phase: boot.PhaseStart})
	if !strings.Contains(start, "press enter") {
		t.Errorf("start screen = %q", start)
	}

	glow := BootOverlay(s, BootState{Phase: boot.PhaseConsoleGlow, Bar: "[bar]", Lines: ReadoutLines[:2], Typing: "THR"})
	for _, want := range []string{"CONSOLE-GLOW", "[bar]", ReadoutLines[1], "THR"} {
		if !strings.Contains(glow, want) {
			t.Errorf("console-glow overlay missing %q", want)
		}
	}
}

func TestInstrumentStrip(t *testing.T) {
	s := styles.New(nil)
	items := []Instrument{
		{ID: "inst-01", Reading: power.Reading{Power: power.StateRunning, IsRunning: true}},
		{ID: "inst-02", Reading: power.Reading{Power: power.StateBoot, IsBooting: true, HasError: true}},
		{ID: "glass", Reading: power.Reading{IsOff: true}},
	}

	out := InstrumentStrip(s, items, true)
	for _, want := range []string{"INST-01", "INST-02 FAULT", "○ GLASS"} {
		if !strings.Contains(out, want) {
			t.Errorf("strip missing %q: %q", want, out)
		}
	}
	if strings.Contains(InstrumentStrip(s, items, false), "✖") {
		t.Error("fault lamp lit during blink-off")
	}
}

func TestConsole(t *testing.T) {
	s := styles.New(nil)
	panels := []ConsolePanel{{ID: "shields", Health: 1}, {ID: "cards", Health: 0.5, Expanded: true}}

	lit := Console(s, panels, true)
	if !strings.Contains(lit, "Shield Status") || !strings.Contains(lit, "Card Intelligence") {
		t.Errorf("lit console missing labels: %q", lit)
	}
	if dark := Console(s, panels, false); strings.Contains(dark, "Shield Status") {
		t.Error("dark console shows labels")
	}
}

func TestHealthBar(t *testing.T) {
	tests := []struct {
		health float64
		want   string
	}{
		{1, "████ 100%"},
		{0, "░░░░   0%"},
		{0.5, "██░░  50%"},
		{-1, "░░░░   0%"},
	}
	for _, tt := range tests {
		if got := HealthBar(tt.health, 4); got != tt.want {
			t.Errorf("HealthBar(%v) = %q, want %q", tt.health, got, tt.want)
		}
	}
}

func TestHologramBeats(t *testing.T) {
	s := styles.New(nil)

	if got := Hologram(s, HologramState{PanelID: "shields", Phase: panel.PhaseIdle}); got != "" {
		t.Errorf("idle hologram = %q, want empty", got)
	}
	beat1 := Hologram(s, HologramState{PanelID: "shields", Phase: panel.PhaseBeat1, Health: 1})
	if strings.Contains(beat1, "SHIELD STATUS") {
		t.Error("title revealed at beat1")
	}
	beat2 := Hologram(s, HologramState{PanelID: "shields", Phase: panel.PhaseBeat2, Health: 1})
	if !strings.Contains(beat2, "SHIELD STATUS") || strings.Contains(beat2, "signature") {
		t.Errorf("beat2 hologram = %q", beat2)
	}
	active := Hologram(s, HologramState{PanelID: "shields", Phase: panel.PhaseActive, Health: 1})
	if !strings.Contains(active, "#00f0ff") {
		t.Errorf("active hologram missing signature color: %q", active)
	}
}

func TestThreats(t *testing.T) {
	s := styles.New(nil)
	threats := threat.DemoThreats()[:2]

	if out := Threats(s, threats, "", false); !strings.Contains(out, "offline") {
		t.Errorf("unlit scope = %q", out)
	}
	out := Threats(s, threats, "dining-overspend", true)
	if !strings.Contains(out, "GYM $49.99/mo") || !strings.Contains(out, "Recreation Deck") {
		t.Errorf("scope = %q", out)
	}
	if strings.Contains(out, "Zero usage") {
		t.Error("detail shown for a threat that is not hovered")
	}
}

func TestSpeechLine(t *testing.T) {
	s := styles.New(nil)
	if out := SpeechLine(s, speech.Message{}, false); !strings.Contains(out, SpeakerName) {
		t.Errorf("quiet line = %q", out)
	}
	out := SpeechLine(s, speech.Message{Text: "Shields holding."}, true)
	if !strings.Contains(out, "Shields holding.") {
		t.Errorf("speech line = %q", out)
	}
}

func TestFooter(t *testing.T) {
	s := styles.New(nil)
	st := FooterState{
		Phase: boot.PhaseComplete,
		Power: power.StateRunning,
		Stats: cadence.Stats{Opportunities: 10, Redraws: 4, Active: true},
		Help:  "q quit",
	}

	out := Footer(s, st)
	if strings.Contains(out, "frames") {
		t.Error("stats shown with ShowStats=false")
	}
	st.ShowStats = true
	out = Footer(s, st)
	for _, want := range []string{"phase complete", "power running", "active", "frames 4/10 (skipped 6)", "q quit"} {
		if !strings.Contains(out, want) {
			t.Errorf("footer missing %q: %q", want, out)
		}
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		line  string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"short", 0, "short"},
		{"Bridge systems online", 10, "Bridge sy…"},
		{"abc", 1, "a"},
	}
	for _, tt := range tests {
		if got := Fit(tt.line, tt.width); got != tt.want {
			t.Errorf("Fit(%q, %d) = %q, want %q", tt.line, tt.width, got, tt.want)
		}
	}

	styled := lipgloss.NewStyle().Bold(true).Render("Standing by, Captain")
	if got := lipgloss.Width(Fit(styled, 8)); got != 8 {
		t.Errorf("styled width = %d, want 8", got)
	}
}
