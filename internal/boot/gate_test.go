package boot

import (
	"testing"
	"time"

	"github.com/Iron-Ham/bridge/internal/clock"
)

func TestGate_OpensAfterPhasePlusDelay(t *testing.T) {
	clk := clock.NewFake(epoch)
	seq := New(nil)
	g := NewGate(seq, clk, PhaseConsoleGlow, 200*time.Millisecond)
	defer g.Close()

	for seq.Phase() != PhaseDarkness {
		seq.Advance()
	}
	clk.Advance(time.Second)
	if g.Active() {
		t.Fatal("Active() = true before phase reached")
	}

	seq.Advance() // console-glow
	clk.Advance(199 * time.Millisecond)
	if g.Active() {
		t.Fatal("Active() = true before delay elapsed")
	}
	clk.Advance(1 * time.Millisecond)
	if !g.Active() {
		t.Fatal("Active() = false after delay")
	}

	seq.Advance() // later phases keep it open
	if !g.Active() {
		t.Error("Active() = false after later phase")
	}
}

func TestGate_LaterPhaseDoesNotRestartDelay(t *testing.T) {
	clk := clock.NewFake(epoch)
	seq := New(nil)
	g := NewGate(seq, clk, PhaseNameExit, 300*time.Millisecond)
	defer g.Close()

	seq.Advance()
	clk.Advance(200 * time.Millisecond)
	seq.Advance()
	clk.Advance(100 * time.Millisecond)
	if !g.Active() {
		t.Error("Active() = false, delay should run from the first qualifying phase")
	}
}

func TestGate_ActiveImmediatelyAtComplete(t *testing.T) {
	clk := clock.NewFake(epoch)
	seq := New(nil)
	seq.Skip()

	g := NewGate(seq, clk, PhasePowerSurge, time.Hour)
	defer g.Close()
	if !g.Active() {
		t.Error("Active() = false for gate built after completion")
	}
}

func TestGate_SkipOpensWithoutDelay(t *testing.T) {
	clk := clock.NewFake(epoch)
	seq := New(nil)
	g := NewGate(seq, clk, PhasePowerSurge, time.Hour)
	defer g.Close()

	seq.Skip()
	if !g.Active() {
		t.Error("Active() = false after skip")
	}
	if clk.Pending() != 0 {
		t.Errorf("clock pending = %d, want 0", clk.Pending())
	}
}

func TestGate_ZeroDelay(t *testing.T) {
	clk := clock.NewFake(epoch)
	seq := New(nil)
	g := NewGate(seq, clk, PhaseNameExit, 0)
	defer g.Close()

	seq.Advance()
	if !g.Active() {
		t.Error("Active() = false with zero delay")
	}
}

func TestGate_ResetDeactivates(t *testing.T) {
	clk := clock.NewFake(epoch)
	seq := New(nil)
	g := NewGate(seq, clk, PhaseNameExit, 100*time.Millisecond)
	defer g.Close()

	seq.Skip()
	seq.Reset()
	if g.Active() {
		t.Fatal("Active() = true after replay")
	}

	seq.Advance()
	seq.Reset()
	clk.Advance(time.Second)
	if g.Active() {
		t.Error("Active() = true, pending delay survived replay")
	}
}

func TestGate_Close(t *testing.T) {
	clk := clock.NewFake(epoch)
	seq := New(nil)
	g := NewGate(seq, clk, PhaseNameExit, 100*time.Millisecond)

	seq.Advance()
	g.Close()
	g.Close()
	clk.Advance(time.Second)
	if g.Active() {
		t.Error("Active() = true after Close")
	}
}
