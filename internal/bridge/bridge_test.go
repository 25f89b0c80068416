package bridge

import (
	"testing"
	"time"

	"github.com/Iron-Ham/bridge/internal/boot"
	"github.com/Iron-Ham/bridge/internal/clock"
	"github.com/Iron-Ham/bridge/internal/config"
	"github.com/Iron-Ham/bridge/internal/errors"
	"github.com/Iron-Ham/bridge/internal/event"
	"github.com/Iron-Ham/bridge/internal/panel"
	"github.com/Iron-Ham/bridge/internal/power"
	"github.com/Iron-Ham/bridge/internal/speech"
	"github.com/Iron-Ham/bridge/internal/threat"
)

func newTestBridge(t *testing.T, cfg *config.Config, opts ...Option) (*Bridge, *clock.Fake) {
	t.Helper()
	clk := clock.NewFake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	b, err := New(cfg, append([]Option{WithClock(clk)}, opts...)...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(b.Close)
	return b, clk
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Cadence.IdleFPS = 90

	_, err := New(cfg)
	if err == nil {
		t.Fatal("New() with idle_fps > active_fps = nil error")
	}
	if !errors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("New() error = %v, want ErrInvalidInput", err)
	}
}

func TestBridge_BootTimeline(t *testing.T) {
	b, clk := newTestBridge(t, config.Default())
	seq := b.Sequencer()

	if b.Director().Pending() {
		t.Fatal("director armed at start without auto_start")
	}
	b.Start()
	if seq.Phase() != boot.PhaseNameExit {
		t.Fatalf("Phase() after Start = %v, want name-exit", seq.Phase())
	}

	steps := []struct {
		advance time.Duration
		want    boot.Phase
	}{
		{1000 * time.Millisecond, boot.PhaseDarkness},
		{500 * time.Millisecond, boot.PhaseConsoleGlow},
		{1500 * time.Millisecond, boot.PhasePowerSurge},
		{1000 * time.Millisecond, boot.PhaseFullPower},
		{1000 * time.Millisecond, boot.PhaseComplete},
	}
	for _, st := range steps {
		clk.Advance(st.advance)
		if got := seq.Phase(); got != st.want {
			t.Fatalf("Phase() = %v, want %v", got, st.want)
		}
	}

	for _, id := range b.Power().Instruments() {
		if got := b.Power().State(id).Power; got != power.StateRunning {
			t.Errorf("instrument %s = %v, want running", id, got)
		}
	}
	if !b.ConsoleActive() || !b.ViewportActive() {
		t.Errorf("gates: console=%v viewport=%v, want both active", b.ConsoleActive(), b.ViewportActive())
	}

	msg, ok := b.Speech().Current()
	if !ok || msg.SubjectID != SubjectGreeting || msg.Priority != speech.PriorityHigh {
		t.Errorf("Current() = %+v, %v; want high-priority greeting", msg, ok)
	}
}

func TestBridge_PowerOffBeforeSurge(t *testing.T) {
	b, clk := newTestBridge(t, config.Default())
	b.Start()
	clk.Advance(2999 * time.Millisecond)

	if b.Sequencer().Phase() != boot.PhaseConsoleGlow {
		t.Fatalf("Phase() = %v, want console-glow", b.Sequencer().Phase())
	}
	if b.Power().Global() != power.StateOff {
		t.Errorf("Global() = %v, want off", b.Power().Global())
	}
	if !b.ConsoleActive() {
		t.Error("console gate not active during console-glow")
	}
	if b.ViewportActive() {
		t.Error("viewport gate active before full-power")
	}
}

func TestBridge_SkipConfigured(t *testing.T) {
	cfg := config.Default()
	cfg.Boot.Skip = true
	b, _ := newTestBridge(t, cfg)

	b.Start()
	if !b.Sequencer().Complete() {
		t.Fatalf("Phase() = %v, want complete", b.Sequencer().Phase())
	}
	if b.Power().Global() != power.StateBoot {
		t.Errorf("Global() = %v, want boot while settling", b.Power().Global())
	}
}

func TestBridge_HoverDrivesSpeech(t *testing.T) {
	b, clk := newTestBridge(t, config.Default())

	if err := b.Threats().SetHovered("gym-membership"); err != nil {
		t.Fatal(err)
	}
	clk.Advance(100 * time.Millisecond)
	if err := b.Threats().SetHovered("fraud-alert"); err != nil {
		t.Fatal(err)
	}
	clk.Advance(150 * time.Millisecond)

	msg, ok := b.Speech().Current()
	if !ok || msg.SubjectID != "fraud-alert" {
		t.Fatalf("Current() = %+v, %v; want fraud-alert", msg, ok)
	}
	if got := b.Speech().Proposals(); got != 1 {
		t.Errorf("Proposals() = %d, want 1", got)
	}
}

func TestBridge_GreetingNotPreemptedByHover(t *testing.T) {
	b, clk := newTestBridge(t, config.Default())
	b.Skip()

	_ = b.Threats().SetHovered("streaming")
	clk.Advance(200 * time.Millisecond)

	msg, _ := b.Speech().Current()
	if msg.SubjectID != SubjectGreeting {
		t.Errorf("Current().SubjectID = %q, want greeting", msg.SubjectID)
	}
	if err := b.Nudge(); !errors.Is(err, errors.ErrSpeechRejected) {
		t.Errorf("Nudge() during greeting = %v, want ErrSpeechRejected", err)
	}
}

func TestBridge_NudgeFollowsGreeting(t *testing.T) {
	b, clk := newTestBridge(t, config.Default())
	b.Skip()

	cfg := config.Default()
	greeting := time.Duration(len(cfg.Speech.Greeting))*cfg.Speech.Typewriter() + cfg.Speech.AutoDismiss()
	if b.Speech().Waiting() != 1 {
		t.Fatalf("Waiting() = %d, want the nudge queued", b.Speech().Waiting())
	}

	clk.Advance(greeting - time.Millisecond)
	if msg, _ := b.Speech().Current(); msg.SubjectID != SubjectGreeting {
		t.Fatalf("Current().SubjectID = %q before dismissal, want greeting", msg.SubjectID)
	}
	clk.Advance(time.Millisecond)
	msg, ok := b.Speech().Current()
	if !ok || msg.Category != speech.CategoryNudge || msg.Text != b.Threats().Summary() {
		t.Fatalf("Current() = %+v, %v; want the nudge", msg, ok)
	}

	// Once the greeting is gone, focus reaches the companion again.
	_ = b.Threats().SetHovered("gym-membership")
	clk.Advance(100 * time.Millisecond)
	_ = b.Threats().SetHovered("streaming")
	clk.Advance(150 * time.Millisecond)
	if msg, _ := b.Speech().Current(); msg.SubjectID != "streaming" {
		t.Errorf("Current().SubjectID = %q, want streaming", msg.SubjectID)
	}
	if got := b.Speech().Proposals(); got != 1 {
		t.Errorf("Proposals() = %d, want 1", got)
	}
}

func TestBridge_NudgeWithoutGreeting(t *testing.T) {
	cfg := config.Default()
	cfg.Speech.Greeting = ""
	b, _ := newTestBridge(t, cfg)
	b.Skip()

	msg, ok := b.Speech().Current()
	if !ok || msg.SubjectID != SubjectNudge {
		t.Fatalf("Current() = %+v, %v; want the nudge straight away", msg, ok)
	}
	if err := b.Nudge(); !errors.Is(err, errors.ErrSpeechRejected) {
		t.Errorf("Nudge() while nudging = %v, want ErrSpeechRejected", err)
	}
}

func TestBridge_NudgeAllClear(t *testing.T) {
	cfg := config.Default()
	cfg.Speech.Greeting = ""
	b, _ := newTestBridge(t, cfg, WithThreats())
	b.Skip()

	if _, ok := b.Speech().Current(); ok {
		t.Fatal("companion spoke with no greeting and no threats")
	}
	if err := b.Nudge(); err != nil {
		t.Fatalf("Nudge() error = %v", err)
	}
	msg, _ := b.Speech().Current()
	if msg.Category != speech.CategoryNudge || msg.Text != "All clear, Captain. No threats on scope." {
		t.Errorf("Current() = %+v", msg)
	}
}

func TestBridge_GreetingDismissedAfterBoot(t *testing.T) {
	b, clk := newTestBridge(t, config.Default(), WithThreats())
	b.Start()
	clk.Advance(5 * time.Second)
	if msg, _ := b.Speech().Current(); msg.SubjectID != SubjectGreeting {
		t.Fatalf("Current().SubjectID = %q at complete, want greeting", msg.SubjectID)
	}

	clk.Advance(10 * time.Second)
	if msg, ok := b.Speech().Current(); ok {
		t.Errorf("Current() = %+v ten seconds after boot, want silence", msg)
	}
}

func TestBridge_Activity(t *testing.T) {
	t.Run("demo threats keep the scene active", func(t *testing.T) {
		b, _ := newTestBridge(t, config.Default())
		if !b.Active() {
			t.Error("Active() = false with demo threats")
		}
	})

	t.Run("expanded panel is active", func(t *testing.T) {
		b, _ := newTestBridge(t, config.Default(), WithThreats())
		if b.Active() {
			t.Fatal("Active() = true with no threats and no panel")
		}
		if err := b.Panels().Expand("cards"); err != nil {
			t.Fatal(err)
		}
		if !b.Active() {
			t.Error("Active() = false with an expanded panel")
		}
	})
}

func TestBridge_Redraw(t *testing.T) {
	b, clk := newTestBridge(t, config.Default(), WithThreats())

	draws := 0
	for i := 0; i < 10; i++ {
		if b.Redraw() {
			draws++
		}
		clk.Advance(10 * time.Millisecond)
	}
	// Idle at 30fps: frames at 0, 40 and 80ms.
	if draws != 3 {
		t.Errorf("idle draws = %d, want 3", draws)
	}
	if got := b.Cadence().Stats().Opportunities; got != 10 {
		t.Errorf("Opportunities = %d, want 10", got)
	}
}

func TestBridge_Replay(t *testing.T) {
	b, clk := newTestBridge(t, config.Default())
	b.Skip()
	clk.Advance(2 * time.Second)

	if err := b.Panels().Expand("shields"); err != nil {
		t.Fatal(err)
	}
	var resets int
	b.Bus().Subscribe(event.TypePhaseChanged, func(e event.Event) {
		if e.(event.PhaseChangedEvent).Reset {
			resets++
		}
	})

	b.Replay()

	if b.Sequencer().Phase() != boot.PhaseStart || resets != 1 {
		t.Errorf("Phase() = %v resets = %d, want start and 1", b.Sequencer().Phase(), resets)
	}
	if b.Power().Global() != power.StateOff {
		t.Errorf("Global() = %v, want off", b.Power().Global())
	}
	if b.Panels().Phase() != panel.PhaseIdle || b.Choreographer().Pending() {
		t.Errorf("panel phase = %v pending = %v, want idle and none", b.Panels().Phase(), b.Choreographer().Pending())
	}
	if _, ok := b.Speech().Current(); ok {
		t.Error("speech still current after replay")
	}
	if b.ViewportActive() {
		t.Error("viewport gate active after replay")
	}

	// Nothing stale may fire after the reset.
	clk.Advance(5 * time.Second)
	if b.Sequencer().Phase() != boot.PhaseStart {
		t.Errorf("Phase() = %v after replay, want start", b.Sequencer().Phase())
	}
}

func TestBridge_SequencerResetClearsPanels(t *testing.T) {
	b, clk := newTestBridge(t, config.Default())
	b.Skip()
	if err := b.Panels().Expand("shields"); err != nil {
		t.Fatal(err)
	}
	if !b.Choreographer().Pending() {
		t.Fatal("no beat armed after Expand")
	}

	b.Sequencer().Reset()

	if b.Choreographer().Pending() || b.Panels().Phase() != panel.PhaseIdle {
		t.Fatalf("pending = %v phase = %v after reset, want none and idle", b.Choreographer().Pending(), b.Panels().Phase())
	}
	if _, ok := b.Speech().Current(); ok || b.Speech().Waiting() != 0 {
		t.Error("speech survived the reset")
	}

	clk.Advance(2 * time.Second)
	if got := b.Panels().Phase(); got != panel.PhaseIdle {
		t.Errorf("Phase() = %v after stale beats would have fired, want idle", got)
	}
}

func TestBridge_CloseCancelsTimers(t *testing.T) {
	clk := clock.NewFake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	cfg := config.Default()
	cfg.Boot.AutoStart = true
	b, err := New(cfg, WithClock(clk), WithThreats(threat.DemoThreats()...))
	if err != nil {
		t.Fatal(err)
	}
	_ = b.Threats().SetHovered("streaming")
	if clk.Pending() == 0 {
		t.Fatal("no timers armed")
	}

	b.Close()
	b.Close()
	if got := clk.Pending(); got != 0 {
		t.Errorf("Pending() after Close = %d, want 0", got)
	}
}
