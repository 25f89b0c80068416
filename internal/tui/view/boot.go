package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/bridge/internal/boot"
	"github.com/Iron-Ham/bridge/internal/tui/styles"
)

// BootState is what the boot overlay shows.
type BootState struct {
	Phase boot.Phase
	// Bar is the rendered progress bar.
	Bar string
	// Lines and Typing come from Readout.
	Lines  []string
	Typing string
	Width  int
}

// BootOverlay renders the start screen and the boot sequence.
func BootOverlay(s styles.Styles, st BootState) string {
	var b strings.Builder

	switch st.Phase {
	case boot.PhaseStart:
		b.WriteString(s.Title.Render("S Y N E S T H E S I A P A Y"))
		b.WriteString("\n")
		b.WriteString(s.Subtitle.Render("financial bridge"))
		b.WriteString("\n\n")
		b.WriteString(s.Muted.Render("press enter to engage, s to skip"))
	case boot.PhaseNameExit:
		b.WriteString(s.Muted.Render("S Y N E S T H E S I A P A Y"))
	case boot.PhaseDarkness:
		b.WriteString(" ")
	default:
		b.WriteString(s.Title.Render("BOOT SEQUENCE: " + strings.ToUpper(st.Phase.String())))
		b.WriteString("\n")
		b.WriteString(st.Bar)
		b.WriteString("\n\n")
		for _, line := range st.Lines {
			b.WriteString(s.Text.Render(line))
			b.WriteString("\n")
		}
		if st.Typing != "" {
			b.WriteString(s.Text.Render(st.Typing))
			b.WriteString(s.Title.Render("█"))
			b.WriteString("\n")
		}
	}

	if st.Width <= 0 {
		return b.String()
	}
	return lipgloss.PlaceHorizontal(st.Width, lipgloss.Center, b.String())
}
