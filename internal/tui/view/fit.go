package view

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Ellipsis marks a line cut to fit the terminal.
const Ellipsis = "…"

// Fit cuts a styled line to width visible columns, keeping escape sequences
// intact. A width of zero or less leaves the line alone, which is what the
// first frame sees before the terminal reports its size.
func Fit(line string, width int) string {
	if width <= 0 || lipgloss.Width(line) <= width {
		return line
	}
	if width <= lipgloss.Width(Ellipsis) {
		return ansi.Truncate(line, width, "")
	}
	return ansi.Truncate(line, width, Ellipsis)
}
