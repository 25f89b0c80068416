// Package sim runs a scripted bridge session headless on a fake clock and
// writes the resulting timeline.
//
// The simulator advances the clock one refresh opportunity at a time, so the
// cadence scheduler sees the same opportunities the terminal app would. Every
// bus event is written as it happens, stamped with its offset from the start.
package sim

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/Iron-Ham/bridge/internal/bridge"
	"github.com/Iron-Ham/bridge/internal/cadence"
	"github.com/Iron-Ham/bridge/internal/clock"
	"github.com/Iron-Ham/bridge/internal/config"
	"github.com/Iron-Ham/bridge/internal/errors"
	"github.com/Iron-Ham/bridge/internal/event"
	"github.com/Iron-Ham/bridge/internal/logging"
)

// Step is one scripted action.
type Step struct {
	At   time.Duration
	Name string
	Do   func(*bridge.Bridge) error
}

// Options configures a run.
type Options struct {
	// Duration is how long to simulate. Zero means run until the last step
	// plus two seconds.
	Duration time.Duration
	// Script replaces DemoScript.
	Script []Step
	// Quiet suppresses per-event lines; only steps and the summary are written.
	Quiet  bool
	Logger *logging.Logger
}

// Summary is the result of a run.
type Summary struct {
	Elapsed time.Duration
	Events  map[string]int
	Cadence cadence.Stats
	// Failed counts steps that returned an error.
	Failed int
}

// epoch is the fixed start of every simulation so runs are reproducible.
var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

// Run simulates cfg and writes the timeline to w.
func Run(cfg *config.Config, w io.Writer, opts Options) (Summary, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}
	script := opts.Script
	if script == nil {
		script = DemoScript()
	}
	script = slices.Clone(script)
	slices.SortStableFunc(script, func(a, b Step) int { return int(a.At - b.At) })

	duration := opts.Duration
	if duration <= 0 {
		duration = 2 * time.Second
		if n := len(script); n > 0 {
			duration += script[n-1].At
		}
	}
	step := cfg.Cadence.RefreshInterval()
	if step <= 0 {
		step = time.Second / 120
	}

	clk := clock.NewFake(epoch)
	b, err := bridge.New(cfg, bridge.WithClock(clk), bridge.WithLogger(logger))
	if err != nil {
		return Summary{}, err
	}
	defer b.Close()

	summary := Summary{Events: make(map[string]int)}
	stamp := func() string {
		return fmt.Sprintf("+%7.3fs", clk.Now().Sub(epoch).Seconds())
	}
	b.Bus().SubscribeAll(func(e event.Event) {
		summary.Events[e.EventType()]++
		if !opts.Quiet {
			fmt.Fprintf(w, "%s  %-26s %s\n", stamp(), e.EventType(), Describe(e))
		}
	})

	next := 0
	runDue := func() {
		elapsed := clk.Now().Sub(epoch)
		for next < len(script) && script[next].At <= elapsed {
			s := script[next]
			next++
			fmt.Fprintf(w, "%s  %-26s %s\n", stamp(), "> "+s.Name, "")
			if err := s.Do(b); err != nil {
				summary.Failed++
				label := "! step failed"
				if errors.IsTransition(err) {
					label = "! transition rejected"
				}
				fmt.Fprintf(w, "%s  %-26s %v\n", stamp(), label, err)
				logger.Report("script step failed", err, "step", s.Name)
			}
		}
	}

	for elapsed := time.Duration(0); elapsed <= duration; elapsed += step {
		if target := epoch.Add(elapsed); target.After(clk.Now()) {
			clk.Advance(target.Sub(clk.Now()))
		}
		runDue()
		b.Redraw()
	}

	summary.Elapsed = clk.Now().Sub(epoch)
	summary.Cadence = b.Cadence().Stats()
	fmt.Fprintf(w, "\nsimulated %s: %d redraws of %d opportunities (%d while active, %d skipped)\n",
		summary.Elapsed, summary.Cadence.Redraws, summary.Cadence.Opportunities,
		summary.Cadence.ActiveRedraws, summary.Cadence.Skipped())
	return summary, nil
}

// Describe renders an event's payload for the timeline.
func Describe(e event.Event) string {
	switch e := e.(type) {
	case event.PhaseChangedEvent:
		if e.Reset {
			return fmt.Sprintf("%s -> %s (replay)", e.From, e.To)
		}
		return fmt.Sprintf("%s -> %s", e.From, e.To)
	case event.InstrumentChangedEvent:
		if e.HasError {
			return fmt.Sprintf("%s %s FAULT", e.InstrumentID, e.Power)
		}
		return fmt.Sprintf("%s %s", e.InstrumentID, e.Power)
	case event.GlobalPowerChangedEvent:
		return e.Power
	case event.PanelChangedEvent:
		if e.PanelID == "" {
			return fmt.Sprintf("%s -> %s", e.Previous, e.Phase)
		}
		return fmt.Sprintf("%s %s -> %s", e.PanelID, e.Previous, e.Phase)
	case event.HealthChangedEvent:
		return fmt.Sprintf("%s %.0f%%", e.PanelID, e.Health*100)
	case event.SpeechChangedEvent:
		if e.MessageID == "" {
			return "(silent)"
		}
		return fmt.Sprintf("[%s] %s: %q", e.Priority, e.SubjectID, e.Text)
	case event.ThreatsChangedEvent:
		if e.Hovered == "" {
			return fmt.Sprintf("%d threats", e.Count)
		}
		return fmt.Sprintf("%d threats, focus %s", e.Count, e.Hovered)
	default:
		return ""
	}
}
