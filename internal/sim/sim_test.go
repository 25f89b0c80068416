package sim

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/Iron-Ham/bridge/internal/boot"
	"github.com/Iron-Ham/bridge/internal/bridge"
	"github.com/Iron-Ham/bridge/internal/config"
	"github.com/Iron-Ham/bridge/internal/event"
)

func TestRun_DemoScript(t *testing.T) {
	var buf bytes.Buffer
	summary, err := Run(config.Default(), &buf, Options{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if summary.Failed != 0 {
		t.Errorf("Failed = %d, want 0\n%s", summary.Failed, buf.String())
	}

	wantCounts := map[string]int{
		event.TypePhaseChanged:   6,
		event.TypePanelChanged:   5,
		event.TypeHealthChanged:  1,
		event.TypeSpeechChanged:  4,
		event.TypeThreatsChanged: 4,
	}
	for typ, want := range wantCounts {
		if got := summary.Events[typ]; got != want {
			t.Errorf("Events[%s] = %d, want %d", typ, got, want)
		}
	}

	out := buf.String()
	for _, want := range []string{
		"full-power -> complete",
		"inst-02 boot FAULT",
		`[high] greeting: "Bridge systems online, Captain. Standing by."`,
		"shields beat2 -> active",
		`[normal] nudge: "7 threats on scope, 4 critical.`,
		"> hover streaming",
		"[normal] streaming: ",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("timeline missing %q", want)
		}
	}
	if strings.Contains(out, "gym-membership: ") {
		t.Error("swept-over threat was spoken")
	}

	if summary.Elapsed < 10*time.Second {
		t.Errorf("Elapsed = %v, want at least 10s", summary.Elapsed)
	}
	if c := summary.Cadence; c.Redraws == 0 || c.Redraws >= c.Opportunities {
		t.Errorf("Cadence = %+v, want some but not all opportunities drawn", c)
	}
}

func TestRun_CustomScript(t *testing.T) {
	var buf bytes.Buffer
	script := []Step{
		{At: 500 * time.Millisecond, Name: "bad panel", Do: func(b *bridge.Bridge) error {
			return b.Panels().Expand("warp-core")
		}},
		{At: 0, Name: "skip", Do: func(b *bridge.Bridge) error {
			b.Skip()
			return nil
		}},
	}

	summary, err := Run(config.Default(), &buf, Options{Script: script, Duration: time.Second, Quiet: true})
	if err != nil {
		t.Fatal(err)
	}
	if summary.Failed != 1 {
		t.Errorf("Failed = %d, want 1", summary.Failed)
	}
	out := buf.String()
	if strings.Index(out, "> skip") > strings.Index(out, "> bad panel") {
		t.Error("steps not run in time order")
	}
	if strings.Contains(out, event.TypePhaseChanged) {
		t.Error("quiet run wrote event lines")
	}
	if summary.Events[event.TypePhaseChanged] != 1 {
		t.Errorf("Events[phase] = %d, want 1", summary.Events[event.TypePhaseChanged])
	}
}

func TestRun_RejectedTransition(t *testing.T) {
	cfg := config.Default()
	cfg.Boot.Strict = true
	script := []Step{
		{At: 0, Name: "skip", Do: func(b *bridge.Bridge) error {
			b.Skip()
			return nil
		}},
		{At: 100 * time.Millisecond, Name: "rewind", Do: func(b *bridge.Bridge) error {
			return b.Sequencer().SetPhase(boot.PhaseDarkness)
		}},
		{At: 200 * time.Millisecond, Name: "bad panel", Do: func(b *bridge.Bridge) error {
			return b.Panels().Expand("warp-core")
		}},
	}

	var buf bytes.Buffer
	summary, err := Run(cfg, &buf, Options{Script: script, Duration: time.Second, Quiet: true})
	if err != nil {
		t.Fatal(err)
	}
	if summary.Failed != 2 {
		t.Errorf("Failed = %d, want 2", summary.Failed)
	}
	out := buf.String()
	if strings.Count(out, "! transition rejected") != 1 || strings.Count(out, "! step failed") != 1 {
		t.Errorf("failure labels wrong:\n%s", out)
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Panel.Panels = []string{"a", "a"}
	if _, err := Run(cfg, &bytes.Buffer{}, Options{}); err == nil {
		t.Error("Run() with duplicate panels = nil error")
	}
}

func TestDescribe(t *testing.T) {
	at := time.Time{}
	tests := []struct {
		e    event.Event
		want string
	}{
		{event.NewPhaseChangedEvent("complete", "start", true, at), "complete -> start (replay)"},
		{event.NewInstrumentChangedEvent("glass", "running", false, at), "glass running"},
		{event.NewHealthChangedEvent("cards", 0.25, at), "cards 25%"},
		{event.NewSpeechChangedEvent("", "", "", "", at), "(silent)"},
		{event.NewThreatsChangedEvent(3, "streaming", at), "3 threats, focus streaming"},
	}
	for _, tt := range tests {
		if got := Describe(tt.e); got != tt.want {
			t.Errorf("Describe(%T) = %q, want %q", tt.e, got, tt.want)
		}
	}
}

