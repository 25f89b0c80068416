package view

import (
	"fmt"

	"github.com/Iron-Ham/bridge/internal/boot"
	"github.com/Iron-Ham/bridge/internal/cadence"
	"github.com/Iron-Ham/bridge/internal/power"
	"github.com/Iron-Ham/bridge/internal/tui/styles"
)

// FooterState is the status line content.
type FooterState struct {
	Phase     boot.Phase
	Power     power.State
	Stats     cadence.Stats
	ShowStats bool
	Help      string
	Width     int
}

// Footer renders the status line and help.
func Footer(s styles.Styles, st FooterState) string {
	status := fmt.Sprintf("phase %s · power %s", st.Phase, st.Power)
	if st.ShowStats {
		mode := "idle"
		if st.Stats.Active {
			mode = "active"
		}
		status += fmt.Sprintf(" · %s · frames %d/%d (skipped %d)",
			mode, st.Stats.Redraws, st.Stats.Opportunities, st.Stats.Skipped())
	}
	style := s.Footer
	if st.Width > 0 {
		style = style.Width(st.Width)
	}
	return style.Render(status + "\n" + st.Help)
}
