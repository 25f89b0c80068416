package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/bridge/internal/threat"
	"github.com/Iron-Ham/bridge/internal/tui/styles"
)

var kindGlyphs = map[threat.Kind]string{
	threat.KindAsteroid:     "☄",
	threat.KindIonStorm:     "≈",
	threat.KindSolarFlare:   "✺",
	threat.KindBlackHole:    "◎",
	threat.KindWormhole:     "@",
	threat.KindEnemyCruiser: "⧫",
}

// Threats renders the viewport's threat scope. Before the viewport lights the
// scope shows nothing but its frame.
func Threats(s styles.Styles, threats []threat.Threat, hovered string, lit bool) string {
	title := s.Title.Render("THREAT SCOPE")
	if !lit {
		return s.Box.Render(title + "\n" + s.PowerOff.Render("offline"))
	}
	if len(threats) == 0 {
		return s.Box.Render(title + "\n" + s.Muted.Render("no contacts"))
	}

	lines := []string{title}
	for _, t := range threats {
		lines = append(lines, threatLine(s, t, t.ID == hovered))
	}
	return s.Box.Render(strings.Join(lines, "\n"))
}

func threatLine(s styles.Styles, t threat.Threat, hovered bool) string {
	glyph, ok := kindGlyphs[t.Kind]
	if !ok {
		glyph = "?"
	}
	cursor := "  "
	if hovered {
		cursor = "▸ "
	}
	text := fmt.Sprintf("%s %-20s %10s", glyph, t.Label, fmt.Sprintf("$%.2f", t.Amount))

	var style lipgloss.Style
	switch {
	case t.Deflected:
		style = s.Deflected
	case t.Severity == threat.SeverityDanger:
		style = s.Danger
	case t.Severity == threat.SeverityWarning:
		style = s.Caution
	default:
		style = s.Info
	}
	line := cursor + style.Render(text)
	if hovered {
		line = s.Hovered.Render(cursor) + style.Render(text) + "  " + s.Muted.Render(t.Detail)
	}
	return line
}
