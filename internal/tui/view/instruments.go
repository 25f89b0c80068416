package view

import (
	"strings"

	"github.com/Iron-Ham/bridge/internal/power"
	"github.com/Iron-Ham/bridge/internal/tui/styles"
)

// Instrument is one entry of the instrument strip.
type Instrument struct {
	ID      string
	Reading power.Reading
}

// InstrumentStrip renders each instrument as a lamp and label. Faulted
// instruments blink while they are stuck booting.
func InstrumentStrip(s styles.Styles, items []Instrument, blink bool) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, instrumentLamp(s, it, blink))
	}
	return strings.Join(parts, "  ")
}

func instrumentLamp(s styles.Styles, it Instrument, blink bool) string {
	r := it.Reading
	label := strings.ToUpper(it.ID)
	switch {
	case r.HasError:
		if blink {
			return s.Error.Render("✖ " + label + " FAULT")
		}
		return s.Muted.Render("  " + label + " FAULT")
	case r.IsRunning && r.JustBooted:
		return s.Title.Render("◉ " + label)
	case r.IsRunning:
		return s.PowerRunning.Render("● " + label)
	case r.IsBooting:
		return s.PowerBoot.Render("◐ " + label)
	default:
		return s.PowerOff.Render("○ " + label)
	}
}
