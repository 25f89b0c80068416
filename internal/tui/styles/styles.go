// Package styles holds the lipgloss styles of the bridge terminal app and the
// theme files they are built from.
package styles

import "github.com/charmbracelet/lipgloss"

// Styles is the full set of styles derived from one palette. Views take a
// Styles value rather than reading globals so a theme reload swaps everything
// at once.
type Styles struct {
	Palette *ColorPalette

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Text     lipgloss.Style
	Muted    lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style

	Box       lipgloss.Style
	ActiveBox lipgloss.Style
	Hologram  lipgloss.Style

	PowerOff     lipgloss.Style
	PowerBoot    lipgloss.Style
	PowerRunning lipgloss.Style

	Danger  lipgloss.Style
	Caution lipgloss.Style
	Info    lipgloss.Style

	Hovered   lipgloss.Style
	Deflected lipgloss.Style

	Speaker lipgloss.Style
	Speech  lipgloss.Style
	Footer  lipgloss.Style
}

// New builds Styles from p. A nil palette means the default theme.
func New(p *ColorPalette) Styles {
	if p == nil {
		p = GetPalette(ThemeDefault)
	}
	return Styles{
		Palette: p,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary),
		Subtitle: lipgloss.NewStyle().
			Foreground(p.Muted).
			Italic(true),
		Text:    lipgloss.NewStyle().Foreground(p.Text),
		Muted:   lipgloss.NewStyle().Foreground(p.Muted),
		Warning: lipgloss.NewStyle().Foreground(p.Warning),
		Error:   lipgloss.NewStyle().Foreground(p.Error).Bold(true),

		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(0, 1),
		ActiveBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Primary).
			Padding(0, 1),
		Hologram: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			Padding(0, 2),

		PowerOff:     lipgloss.NewStyle().Foreground(p.PowerOff),
		PowerBoot:    lipgloss.NewStyle().Foreground(p.PowerBoot),
		PowerRunning: lipgloss.NewStyle().Foreground(p.PowerRunning).Bold(true),

		Danger:  lipgloss.NewStyle().Foreground(p.Danger).Bold(true),
		Caution: lipgloss.NewStyle().Foreground(p.Caution),
		Info:    lipgloss.NewStyle().Foreground(p.Info),

		Hovered: lipgloss.NewStyle().
			Foreground(p.Text).
			Background(p.Surface).
			Bold(true),
		Deflected: lipgloss.NewStyle().
			Foreground(p.Muted).
			Strikethrough(true),

		Speaker: lipgloss.NewStyle().Foreground(p.Primary).Bold(true),
		Speech:  lipgloss.NewStyle().Foreground(p.Text).Italic(true),
		Footer: lipgloss.NewStyle().
			Foreground(p.Muted).
			BorderTop(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(p.Border),
	}
}
