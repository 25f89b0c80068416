package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/bridge/internal/panel"
	"github.com/Iron-Ham/bridge/internal/tui/styles"
)

type panelInfo struct {
	label  string
	module string
	class  string
}

var panelLabels = map[string]panelInfo{
	"shields":      {"Shield Status", "INST-01", "DEFENSIVE"},
	"networth":     {"Net Worth", "INST-02", "FINANCIAL"},
	"transactions": {"Transactions", "INST-03", "FINANCIAL"},
	"cards":        {"Card Intelligence", "INST-04", "INTEL"},
}

// PanelLabel returns the display label of a panel.
func PanelLabel(id string) string {
	if info, ok := panelLabels[id]; ok {
		return info.label
	}
	return strings.ToUpper(id)
}

// ConsolePanel is one console slot.
type ConsolePanel struct {
	ID       string
	Health   float64
	Expanded bool
}

// Console renders the command console. When lit is false the slots are dark.
func Console(s styles.Styles, panels []ConsolePanel, lit bool) string {
	boxes := make([]string, 0, len(panels))
	for i, p := range panels {
		boxes = append(boxes, consoleBox(s, i, p, lit))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

func consoleBox(s styles.Styles, index int, p ConsolePanel, lit bool) string {
	info, ok := panelLabels[p.ID]
	if !ok {
		info = panelInfo{label: strings.ToUpper(p.ID), module: fmt.Sprintf("INST-%02d", index+1), class: "AUX"}
	}
	box := s.Box.Width(22)
	if !lit {
		return box.Render(s.PowerOff.Render(fmt.Sprintf("%s\n%s\n", info.module, "· · ·")))
	}

	color := lipgloss.Color(panel.SystemColor(p.ID, p.Health).Hex())
	if p.Expanded {
		box = s.ActiveBox.Width(22).BorderForeground(color)
	}
	header := s.Muted.Render(fmt.Sprintf("%d %s: %s", index+1, info.module, info.class))
	label := lipgloss.NewStyle().Foreground(color).Bold(true).Render(info.label)
	health := lipgloss.NewStyle().Foreground(color).Render(HealthBar(p.Health, 10))
	return box.Render(header + "\n" + label + "\n" + health)
}

// HealthBar renders health in [0,1] as a bar of width cells and a percentage.
func HealthBar(health float64, width int) string {
	health = min(max(health, 0), 1)
	filled := int(health*float64(width) + 0.5)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + fmt.Sprintf(" %3.0f%%", health*100)
}
