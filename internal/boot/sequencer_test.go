package boot

import (
	"testing"
	"time"

	"github.com/Iron-Ham/bridge/internal/clock"
	"github.com/Iron-Ham/bridge/internal/errors"
	"github.com/Iron-Ham/bridge/internal/event"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestPhase_String(t *testing.T) {
	tests := []struct {
		phase Phase
		want  string
	}{
		{PhaseStart, "start"},
		{PhaseNameExit, "name-exit"},
		{PhaseDarkness, "darkness"},
		{PhaseConsoleGlow, "console-glow"},
		{PhasePowerSurge, "power-surge"},
		{PhaseFullPower, "full-power"},
		{PhaseComplete, "complete"},
		{Phase(42), "unknown(42)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.phase.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParsePhase(t *testing.T) {
	for _, p := range Phases() {
		got, err := ParsePhase(p.String())
		if err != nil {
			t.Errorf("ParsePhase(%q) error = %v", p, err)
		}
		if got != p {
			t.Errorf("ParsePhase(%q) = %v, want %v", p, got, p)
		}
	}

	if _, err := ParsePhase("warp"); !errors.Is(err, errors.ErrUnknownPhase) {
		t.Errorf("ParsePhase(warp) error = %v, want ErrUnknownPhase", err)
	}
}

func TestSequencer_AdvanceIsMonotonic(t *testing.T) {
	seq := New(nil)

	prev := seq.Phase()
	for i := 0; i < 10; i++ {
		seq.Advance()
		if cur := seq.Phase(); cur < prev {
			t.Fatalf("phase went backwards: %v -> %v", prev, cur)
		}
		prev = seq.Phase()
	}
	if !seq.Complete() {
		t.Errorf("Phase() = %v after 10 advances, want complete", seq.Phase())
	}
}

func TestSequencer_SkipFromAnyPhase(t *testing.T) {
	for _, start := range Phases() {
		t.Run(start.String(), func(t *testing.T) {
			seq := New(nil)
			for seq.Phase() != start {
				seq.Advance()
			}
			seq.Skip()
			if seq.Phase() != PhaseComplete {
				t.Errorf("Phase() = %v after Skip, want complete", seq.Phase())
			}
		})
	}
}

func TestSequencer_PublishesEachTransition(t *testing.T) {
	bus := event.NewBus()
	clk := clock.NewFake(epoch)
	seq := New(bus, WithClock(clk))

	var got []PhaseChange
	seq.Subscribe(func(c PhaseChange) { got = append(got, c) })

	seq.Advance()
	seq.Advance()
	seq.Skip()
	seq.Skip() // no-op
	seq.Reset()
	seq.Reset() // no-op

	want := []PhaseChange{
		{From: PhaseStart, To: PhaseNameExit},
		{From: PhaseNameExit, To: PhaseDarkness},
		{From: PhaseDarkness, To: PhaseComplete},
		{From: PhaseComplete, To: PhaseStart, Reset: true},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d changes %v, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("change[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSequencer_EventTimestamp(t *testing.T) {
	bus := event.NewBus()
	clk := clock.NewFake(epoch)
	seq := New(bus, WithClock(clk))

	var at time.Time
	bus.Subscribe(event.TypePhaseChanged, func(e event.Event) { at = e.Timestamp() })

	clk.Advance(3 * time.Second)
	seq.Advance()
	if !at.Equal(epoch.Add(3 * time.Second)) {
		t.Errorf("Timestamp() = %v, want %v", at, epoch.Add(3*time.Second))
	}
}

func TestSequencer_Unsubscribe(t *testing.T) {
	seq := New(nil)
	calls := 0
	id := seq.Subscribe(func(PhaseChange) { calls++ })

	seq.Advance()
	if !seq.Unsubscribe(id) {
		t.Fatal("Unsubscribe() = false, want true")
	}
	seq.Advance()
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestSequencer_SetPhase(t *testing.T) {
	tests := []struct {
		name    string
		from    Phase
		to      Phase
		want    Phase
		wantErr bool
	}{
		{"next phase", PhaseStart, PhaseNameExit, PhaseNameExit, false},
		{"skip to complete", PhaseDarkness, PhaseComplete, PhaseComplete, false},
		{"backward", PhasePowerSurge, PhaseDarkness, PhasePowerSurge, true},
		{"repeat", PhaseConsoleGlow, PhaseConsoleGlow, PhaseConsoleGlow, true},
		{"skip ahead", PhaseStart, PhasePowerSurge, PhaseStart, true},
		{"from complete", PhaseComplete, PhaseStart, PhaseComplete, true},
		{"complete again", PhaseComplete, PhaseComplete, PhaseComplete, true},
		{"unknown", PhaseStart, Phase(99), PhaseStart, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, strict := range []bool{true, false} {
				seq := New(nil, WithStrict(strict))
				for seq.Phase() != tt.from {
					seq.Advance()
				}

				err := seq.SetPhase(tt.to)
				if seq.Phase() != tt.want {
					t.Errorf("strict=%v: Phase() = %v, want %v", strict, seq.Phase(), tt.want)
				}

				switch {
				case !tt.wantErr && err != nil:
					t.Errorf("strict=%v: SetPhase() error = %v, want nil", strict, err)
				case tt.wantErr && strict && !errors.Is(err, errors.ErrInvalidTransition):
					t.Errorf("strict=%v: SetPhase() error = %v, want ErrInvalidTransition", strict, err)
				case tt.wantErr && !strict && err != nil:
					t.Errorf("strict=%v: SetPhase() error = %v, want silent nil", strict, err)
				}
			}
		})
	}
}

func TestSequencer_SetPhaseRejectionDetails(t *testing.T) {
	seq := New(nil, WithStrict(true))
	seq.Skip()

	err := seq.SetPhase(PhaseDarkness)
	var te *errors.TransitionError
	if !errors.As(err, &te) {
		t.Fatalf("SetPhase() error = %T, want *TransitionError", err)
	}
	if te.Component != "boot" || te.From != "complete" || te.To != "darkness" {
		t.Errorf("TransitionError = %+v", te)
	}

	err = seq.SetPhase(Phase(-1))
	if !errors.Is(err, errors.ErrUnknownPhase) {
		t.Errorf("SetPhase(-1) error = %v, want ErrUnknownPhase", err)
	}
}

func TestSequencer_RejectedSetPhasePublishesNothing(t *testing.T) {
	seq := New(nil, WithStrict(true))
	calls := 0
	seq.Subscribe(func(PhaseChange) { calls++ })

	_ = seq.SetPhase(PhaseFullPower)
	if calls != 0 {
		t.Errorf("calls = %d, want 0", calls)
	}
}

func TestSequencer_DerivedReads(t *testing.T) {
	seq := New(nil)

	if !seq.IsBooting() || seq.Complete() {
		t.Error("new sequencer should be booting")
	}
	if seq.GlobalIntensity() != 1.0 {
		t.Errorf("GlobalIntensity() = %v, want 1.0", seq.GlobalIntensity())
	}
	if seq.Progress() != 0 {
		t.Errorf("Progress() = %v, want 0", seq.Progress())
	}

	for seq.Phase() != PhasePowerSurge {
		seq.Advance()
	}
	if !seq.Reached(PhaseConsoleGlow) || !seq.Reached(PhasePowerSurge) {
		t.Error("Reached() should be true for current and earlier phases")
	}
	if seq.Reached(PhaseFullPower) {
		t.Error("Reached(full-power) should be false at power-surge")
	}
	if got, want := seq.Progress(), 4.0/6.0; got != want {
		t.Errorf("Progress() = %v, want %v", got, want)
	}

	seq.Skip()
	if seq.IsBooting() || !seq.Complete() {
		t.Error("skipped sequencer should be complete")
	}
	if seq.GlobalIntensity() != 0.96 {
		t.Errorf("GlobalIntensity() = %v, want 0.96", seq.GlobalIntensity())
	}
	if seq.Progress() != 1 {
		t.Errorf("Progress() = %v, want 1", seq.Progress())
	}
}

func TestSequencer_SubscriberCanReenter(t *testing.T) {
	seq := New(nil)
	seq.Subscribe(func(c PhaseChange) {
		if c.To == PhaseNameExit {
			seq.Advance()
		}
	})

	seq.Advance()
	if seq.Phase() != PhaseDarkness {
		t.Errorf("Phase() = %v, want darkness", seq.Phase())
	}
}
