package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/bridge/internal/panel"
	"github.com/Iron-Ham/bridge/internal/tui/styles"
)

// HologramState is the expanded panel as the hologram projector sees it.
type HologramState struct {
	PanelID string
	Phase   panel.Phase
	Health  float64
	Width   int
}

// Hologram renders the expanded panel. Content is revealed by beat: the frame
// appears at beat1, the title and health at beat2, details once active. While
// dismissing only a fading frame remains.
func Hologram(s styles.Styles, st HologramState) string {
	if st.Phase == panel.PhaseIdle || st.PanelID == "" {
		return ""
	}
	c := panel.SystemColor(st.PanelID, st.Health)
	color := lipgloss.Color(c.Hex())
	width := st.Width
	if width <= 0 {
		width = 48
	}
	frame := s.Hologram.BorderForeground(color).Width(width)

	var lines []string
	switch st.Phase {
	case panel.PhaseBeat1:
		lines = []string{s.Muted.Render("projecting ...")}
	case panel.PhaseBeat2:
		lines = []string{
			lipgloss.NewStyle().Foreground(color).Bold(true).Render(strings.ToUpper(PanelLabel(st.PanelID))),
			lipgloss.NewStyle().Foreground(color).Render(HealthBar(st.Health, 24)),
		}
	case panel.PhaseActive:
		lines = []string{
			lipgloss.NewStyle().Foreground(color).Bold(true).Render(strings.ToUpper(PanelLabel(st.PanelID))),
			lipgloss.NewStyle().Foreground(color).Render(HealthBar(st.Health, 24)),
			"",
			s.Text.Render(fmt.Sprintf("system integrity  %3.0f%%", st.Health*100)),
			s.Text.Render("signature         " + c.Hex()),
			s.Muted.Render("esc to close, -/+ to adjust"),
		}
	case panel.PhaseDismissing:
		frame = frame.BorderForeground(s.Palette.Border)
		lines = []string{s.Muted.Render("closing ...")}
	}
	return frame.Render(strings.Join(lines, "\n"))
}
