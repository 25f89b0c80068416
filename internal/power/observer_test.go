package power

import (
	"testing"
	"time"
)

func TestObserver_JustBootedEdge(t *testing.T) {
	f := newFixture(t, WithSettleDelay(600*time.Millisecond), WithInstruments("inst-01"))
	obs := f.reg.Observe("inst-01")

	r := obs.Read()
	if !r.IsOff || r.JustBooted {
		t.Fatalf("Read() = %+v, want off", r)
	}

	f.seq.Skip()
	r = obs.Read()
	if !r.IsBooting || r.JustBooted || r.Global != StateBoot {
		t.Fatalf("Read() = %+v, want booting", r)
	}

	f.clk.Advance(600 * time.Millisecond)
	r = obs.Read()
	if !r.IsRunning || !r.JustBooted {
		t.Fatalf("Read() = %+v, want running and just booted", r)
	}
	if r.Global != StateRunning {
		t.Errorf("Global = %v, want running", r.Global)
	}

	r = obs.Read()
	if r.JustBooted {
		t.Error("JustBooted should be true on exactly one read")
	}
}

func TestObserver_NoEdgeWithoutSeeingBoot(t *testing.T) {
	f := newFixture(t, WithInstruments("inst-01"))
	obs := f.reg.Observe("inst-01")

	obs.Read()
	f.seq.Skip()
	f.clk.Advance(time.Second)

	if r := obs.Read(); r.JustBooted {
		t.Error("JustBooted = true, previous read saw off not boot")
	}
}

func TestObserver_HasErrorAndID(t *testing.T) {
	f := newFixture(t)
	obs := f.reg.Observe("glass")
	if obs.ID() != "glass" {
		t.Errorf("ID() = %q, want glass", obs.ID())
	}

	f.reg.ReportError("glass", true)
	if obs.Read().HasError {
		t.Error("HasError visible before power-surge")
	}
	f.seq.Skip()
	if !obs.Read().HasError {
		t.Error("HasError hidden after power-surge")
	}
}
