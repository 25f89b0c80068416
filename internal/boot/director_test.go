package boot

import (
	"testing"
	"time"

	"github.com/Iron-Ham/bridge/internal/clock"
)

func testDwell() map[Phase]time.Duration {
	return map[Phase]time.Duration{
		PhaseStart:       100 * time.Millisecond,
		PhaseNameExit:    1000 * time.Millisecond,
		PhaseDarkness:    500 * time.Millisecond,
		PhaseConsoleGlow: 1500 * time.Millisecond,
		PhasePowerSurge:  1000 * time.Millisecond,
		PhaseFullPower:   1000 * time.Millisecond,
	}
}

func TestDirector_WaitsForStart(t *testing.T) {
	clk := clock.NewFake(epoch)
	seq := New(nil)
	d := NewDirector(seq, clk, DirectorConfig{Dwell: testDwell()})
	defer d.Stop()

	clk.Advance(10 * time.Second)
	if seq.Phase() != PhaseStart {
		t.Fatalf("Phase() = %v, want start without user input", seq.Phase())
	}
	if d.Pending() {
		t.Error("Pending() = true at start screen")
	}

	d.Start()
	if seq.Phase() != PhaseNameExit {
		t.Fatalf("Phase() = %v after Start, want name-exit", seq.Phase())
	}

	d.Start() // no-op outside the start screen
	if seq.Phase() != PhaseNameExit {
		t.Errorf("second Start moved to %v", seq.Phase())
	}
}

func TestDirector_RunsSequence(t *testing.T) {
	clk := clock.NewFake(epoch)
	seq := New(nil)
	d := NewDirector(seq, clk, DirectorConfig{Dwell: testDwell()})
	defer d.Stop()

	d.Start()

	steps := []struct {
		advance time.Duration
		want    Phase
	}{
		{999 * time.Millisecond, PhaseNameExit},
		{1 * time.Millisecond, PhaseDarkness},
		{500 * time.Millisecond, PhaseConsoleGlow},
		{1500 * time.Millisecond, PhasePowerSurge},
		{1000 * time.Millisecond, PhaseFullPower},
		{1000 * time.Millisecond, PhaseComplete},
	}
	for _, s := range steps {
		clk.Advance(s.advance)
		if seq.Phase() != s.want {
			t.Fatalf("Phase() = %v, want %v", seq.Phase(), s.want)
		}
	}
	if d.Pending() {
		t.Error("Pending() = true at complete")
	}
}

func TestDirector_AutoStart(t *testing.T) {
	clk := clock.NewFake(epoch)
	seq := New(nil)
	d := NewDirector(seq, clk, DirectorConfig{Dwell: testDwell(), AutoStart: true})
	defer d.Stop()

	clk.Advance(100 * time.Millisecond)
	if seq.Phase() != PhaseNameExit {
		t.Errorf("Phase() = %v, want name-exit after auto start dwell", seq.Phase())
	}

	clk.Advance(20 * time.Second)
	if !seq.Complete() {
		t.Errorf("Phase() = %v, want complete", seq.Phase())
	}
}

func TestDirector_SkipCancelsDwell(t *testing.T) {
	clk := clock.NewFake(epoch)
	seq := New(nil)
	d := NewDirector(seq, clk, DirectorConfig{Dwell: testDwell()})
	defer d.Stop()

	d.Start()
	seq.Skip()
	if d.Pending() {
		t.Error("Pending() = true after skip")
	}
	if clk.Pending() != 0 {
		t.Errorf("clock pending = %d, want 0", clk.Pending())
	}
}

func TestDirector_ResetReplays(t *testing.T) {
	clk := clock.NewFake(epoch)
	seq := New(nil)
	d := NewDirector(seq, clk, DirectorConfig{Dwell: testDwell(), AutoStart: true})
	defer d.Stop()

	clk.Advance(1200 * time.Millisecond) // start + name-exit + part of darkness
	if seq.Phase() != PhaseDarkness {
		t.Fatalf("Phase() = %v, want darkness", seq.Phase())
	}

	seq.Reset()
	if seq.Phase() != PhaseStart {
		t.Fatalf("Phase() = %v after Reset, want start", seq.Phase())
	}
	// The old darkness dwell would have fired 400ms from now.
	clk.Advance(99 * time.Millisecond)
	if seq.Phase() != PhaseStart {
		t.Errorf("Phase() = %v, stale dwell fired", seq.Phase())
	}
	clk.Advance(1 * time.Millisecond)
	if seq.Phase() != PhaseNameExit {
		t.Errorf("Phase() = %v, want name-exit after replayed start dwell", seq.Phase())
	}
}

func TestDirector_Stop(t *testing.T) {
	clk := clock.NewFake(epoch)
	seq := New(nil)
	d := NewDirector(seq, clk, DirectorConfig{Dwell: testDwell()})

	d.Start()
	d.Stop()
	d.Stop()

	clk.Advance(10 * time.Second)
	if seq.Phase() != PhaseNameExit {
		t.Errorf("Phase() = %v, want name-exit after Stop", seq.Phase())
	}
}

func TestDirector_ExternalSetPhaseRearms(t *testing.T) {
	clk := clock.NewFake(epoch)
	seq := New(nil)
	d := NewDirector(seq, clk, DirectorConfig{Dwell: testDwell()})
	defer d.Stop()

	d.Start()
	clk.Advance(600 * time.Millisecond)
	if err := seq.SetPhase(PhaseDarkness); err != nil {
		t.Fatal(err)
	}
	// The darkness dwell starts from the external transition.
	clk.Advance(499 * time.Millisecond)
	if seq.Phase() != PhaseDarkness {
		t.Fatalf("Phase() = %v, want darkness", seq.Phase())
	}
	clk.Advance(1 * time.Millisecond)
	if seq.Phase() != PhaseConsoleGlow {
		t.Errorf("Phase() = %v, want console-glow", seq.Phase())
	}
}

func TestDwellFromNames(t *testing.T) {
	dwell := DwellFromNames(map[string]time.Duration{
		"darkness": time.Second,
		"bogus":    time.Minute,
	})
	if len(dwell) != 1 || dwell[PhaseDarkness] != time.Second {
		t.Errorf("DwellFromNames() = %v", dwell)
	}
}
