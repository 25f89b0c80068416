package styles

import (
	"slices"

	"github.com/charmbracelet/lipgloss"
)

// ThemeName represents a named color theme.
type ThemeName string

// Available theme names.
const (
	ThemeDefault    ThemeName = "default"    // Cyan console on deep space
	ThemeAmber      ThemeName = "amber"      // Phosphor amber, old freighter
	ThemeMonochrome ThemeName = "monochrome" // Grayscale for low-color terminals
)

// BuiltinThemes returns all built-in theme names.
func BuiltinThemes() []string {
	return []string{
		string(ThemeDefault),
		string(ThemeAmber),
		string(ThemeMonochrome),
	}
}

// IsBuiltinTheme checks if a theme name is a built-in theme.
func IsBuiltinTheme(name string) bool {
	return slices.Contains(BuiltinThemes(), name)
}

// ColorPalette defines the color scheme for a theme.
type ColorPalette struct {
	// Primary accent color (titles, focused panel)
	Primary lipgloss.Color
	// Secondary accent color (healthy readouts)
	Secondary lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
	// Muted color (de-emphasized text, idle panels)
	Muted   lipgloss.Color
	Surface lipgloss.Color
	Text    lipgloss.Color
	Border  lipgloss.Color

	// Instrument power states
	PowerOff     lipgloss.Color
	PowerBoot    lipgloss.Color
	PowerRunning lipgloss.Color

	// Threat severities
	Danger  lipgloss.Color
	Caution lipgloss.Color
	Info    lipgloss.Color
}

// GetPalette returns the palette for a built-in theme. Unknown names get the
// default palette.
func GetPalette(name ThemeName) *ColorPalette {
	switch name {
	case ThemeAmber:
		return amberPalette()
	case ThemeMonochrome:
		return monochromePalette()
	default:
		return defaultPalette()
	}
}

func defaultPalette() *ColorPalette {
	return &ColorPalette{
		Primary:      lipgloss.Color("#00F0FF"),
		Secondary:    lipgloss.Color("#50FFA0"),
		Warning:      lipgloss.Color("#FFAA00"),
		Error:        lipgloss.Color("#FF3C3C"),
		Muted:        lipgloss.Color("#6B8A99"),
		Surface:      lipgloss.Color("#0A1420"),
		Text:         lipgloss.Color("#E6F4FA"),
		Border:       lipgloss.Color("#2D4A5A"),
		PowerOff:     lipgloss.Color("#3A4A55"),
		PowerBoot:    lipgloss.Color("#FFD25A"),
		PowerRunning: lipgloss.Color("#00F0FF"),
		Danger:       lipgloss.Color("#FF3C3C"),
		Caution:      lipgloss.Color("#FFAA00"),
		Info:         lipgloss.Color("#AA78FF"),
	}
}

func amberPalette() *ColorPalette {
	return &ColorPalette{
		Primary:      lipgloss.Color("#FFB000"),
		Secondary:    lipgloss.Color("#FFCC66"),
		Warning:      lipgloss.Color("#FF8800"),
		Error:        lipgloss.Color("#FF4400"),
		Muted:        lipgloss.Color("#8A6A30"),
		Surface:      lipgloss.Color("#1A1000"),
		Text:         lipgloss.Color("#FFE0A0"),
		Border:       lipgloss.Color("#5A4010"),
		PowerOff:     lipgloss.Color("#4A3810"),
		PowerBoot:    lipgloss.Color("#FF8800"),
		PowerRunning: lipgloss.Color("#FFB000"),
		Danger:       lipgloss.Color("#FF4400"),
		Caution:      lipgloss.Color("#FF8800"),
		Info:         lipgloss.Color("#FFCC66"),
	}
}

func monochromePalette() *ColorPalette {
	return &ColorPalette{
		Primary:      lipgloss.Color("#FFFFFF"),
		Secondary:    lipgloss.Color("#D0D0D0"),
		Warning:      lipgloss.Color("#B0B0B0"),
		Error:        lipgloss.Color("#FFFFFF"),
		Muted:        lipgloss.Color("#808080"),
		Surface:      lipgloss.Color("#101010"),
		Text:         lipgloss.Color("#E0E0E0"),
		Border:       lipgloss.Color("#606060"),
		PowerOff:     lipgloss.Color("#404040"),
		PowerBoot:    lipgloss.Color("#A0A0A0"),
		PowerRunning: lipgloss.Color("#FFFFFF"),
		Danger:       lipgloss.Color("#FFFFFF"),
		Caution:      lipgloss.Color("#C0C0C0"),
		Info:         lipgloss.Color("#909090"),
	}
}
