package cadence

import (
	"testing"
	"time"
)

func ms(v float64) time.Duration {
	return time.Duration(v * float64(time.Millisecond))
}

func TestScheduler_Evaluate(t *testing.T) {
	tests := []struct {
		name   string
		active bool
		times  []time.Duration
		want   []bool
	}{
		{
			name:   "idle skips 10ms",
			active: false,
			times:  []time.Duration{0, ms(10), ms(40)},
			want:   []bool{true, false, true},
		},
		{
			name:   "active fires at 20ms",
			active: true,
			times:  []time.Duration{0, ms(10), ms(20), ms(40)},
			want:   []bool{true, false, true, true},
		},
		{
			name:   "exact interval fires",
			active: true,
			times:  []time.Duration{0, DefaultActiveInterval, 2 * DefaultActiveInterval},
			want:   []bool{true, true, true},
		},
		{
			name:   "no backlog after a long gap",
			active: false,
			times:  []time.Duration{0, time.Second, time.Second + ms(1), time.Second + ms(34)},
			want:   []bool{true, true, false, true},
		},
		{
			name:   "time going backwards never fires",
			active: true,
			times:  []time.Duration{ms(100), ms(50), ms(10), ms(117)},
			want:   []bool{true, false, false, true},
		},
		{
			name:   "first call draws at any time",
			active: false,
			times:  []time.Duration{ms(5)},
			want:   []bool{true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(DefaultActiveInterval, DefaultIdleInterval, func() bool { return tt.active })
			for i, now := range tt.times {
				if got := s.Evaluate(now); got != tt.want[i] {
					t.Errorf("Evaluate(%v) = %v, want %v", now, got, tt.want[i])
				}
			}
		})
	}
}

func TestScheduler_NeverFasterThanActive(t *testing.T) {
	s := New(DefaultActiveInterval, DefaultIdleInterval, func() bool { return true })

	var last time.Duration
	drawn := false
	for now := time.Duration(0); now < time.Second; now += ms(1) {
		if !s.Evaluate(now) {
			continue
		}
		if drawn && now-last < DefaultActiveInterval {
			t.Fatalf("redraw at %v only %v after %v", now, now-last, last)
		}
		last, drawn = now, true
	}

	stats := s.Stats()
	if stats.Redraws < 55 || stats.Redraws > 60 {
		t.Errorf("Redraws = %d in 1s at 1ms opportunities, want about 59", stats.Redraws)
	}
	if stats.Opportunities != 1000 {
		t.Errorf("Opportunities = %d, want 1000", stats.Opportunities)
	}
	if stats.Skipped() != stats.Opportunities-stats.Redraws {
		t.Errorf("Skipped() = %d", stats.Skipped())
	}
}

func TestScheduler_ActivitySwitch(t *testing.T) {
	active := false
	s := New(DefaultActiveInterval, DefaultIdleInterval, func() bool { return active })

	s.Evaluate(0)
	if s.Evaluate(ms(20)) {
		t.Error("idle scheduler drew at 20ms")
	}
	active = true
	if s.Interval() != DefaultActiveInterval {
		t.Errorf("Interval() = %v, want active interval", s.Interval())
	}
	if !s.Evaluate(ms(21)) {
		t.Error("active scheduler skipped at 21ms")
	}

	stats := s.Stats()
	if stats.ActiveRedraws != 1 || !stats.Active {
		t.Errorf("Stats() = %+v, want one active redraw", stats)
	}
	if stats.Last != ms(21) {
		t.Errorf("Stats().Last = %v, want 21ms", stats.Last)
	}
}

func TestScheduler_Defaults(t *testing.T) {
	s := New(0, -1, nil)
	if s.Interval() != DefaultIdleInterval {
		t.Errorf("Interval() = %v, want idle default", s.Interval())
	}
	if !s.Evaluate(0) {
		t.Error("first Evaluate() = false")
	}
}

func TestScheduler_Reset(t *testing.T) {
	s := New(DefaultActiveInterval, DefaultIdleInterval, nil)
	s.Evaluate(ms(500))
	s.Reset()

	if !s.Evaluate(0) {
		t.Error("Evaluate(0) after Reset = false, want a fresh first draw")
	}
	if got := s.Stats().Opportunities; got != 1 {
		t.Errorf("Opportunities = %d after Reset, want 1", got)
	}
}
