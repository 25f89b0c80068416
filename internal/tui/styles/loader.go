package styles

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// ThemeFile represents a custom theme definition loaded from YAML.
type ThemeFile struct {
	// Name is the theme's display name (e.g., "Red Alert")
	Name string `yaml:"name"`
	// Author is the theme creator's name (optional)
	Author string `yaml:"author,omitempty"`
	// Description provides details about the theme (optional)
	Description string `yaml:"description,omitempty"`
	// Version is the theme file format version (currently "1")
	Version string `yaml:"version"`
	// Colors defines the color palette
	Colors ThemeColors `yaml:"colors"`
}

// ThemeColors contains all color definitions for a theme.
// All colors should be hex format (#RRGGBB or #RGB).
type ThemeColors struct {
	// Base colors
	Primary   string `yaml:"primary"`
	Secondary string `yaml:"secondary"`
	Warning   string `yaml:"warning"`
	Error     string `yaml:"error"`
	Muted     string `yaml:"muted"`
	Surface   string `yaml:"surface"`
	Text      string `yaml:"text"`
	Border    string `yaml:"border"`

	// Power colors (optional - defaults to base colors if not specified)
	Power ThemePowerColors `yaml:"power,omitempty"`

	// Severity colors (optional - defaults to base colors if not specified)
	Severity ThemeSeverityColors `yaml:"severity,omitempty"`
}

// ThemePowerColors defines colors for instrument power states.
type ThemePowerColors struct {
	Off     string `yaml:"off,omitempty"`
	Boot    string `yaml:"boot,omitempty"`
	Running string `yaml:"running,omitempty"`
}

// ThemeSeverityColors defines colors for threat severities.
type ThemeSeverityColors struct {
	Danger  string `yaml:"danger,omitempty"`
	Warning string `yaml:"warning,omitempty"`
	Info    string `yaml:"info,omitempty"`
}

// hexColorRegex validates hex color format.
var hexColorRegex = regexp.MustCompile(`^#([0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)

// LoadThemeFile loads a theme from a YAML file.
func LoadThemeFile(path string) (*ThemeFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading theme file: %w", err)
	}

	var theme ThemeFile
	if err := yaml.Unmarshal(data, &theme); err != nil {
		return nil, fmt.Errorf("parsing theme file: %w", err)
	}

	if err := theme.Validate(); err != nil {
		return nil, fmt.Errorf("invalid theme: %w", err)
	}

	return &theme, nil
}

// Validate checks that the theme file is well-formed.
func (t *ThemeFile) Validate() error {
	if t.Name == "" {
		return errors.New("theme name is required")
	}
	if t.Version == "" {
		return errors.New("theme version is required")
	}
	if t.Version != "1" {
		return fmt.Errorf("unsupported theme version: %s (supported: 1)", t.Version)
	}

	required := []struct{ name, color string }{
		{"primary", t.Colors.Primary},
		{"secondary", t.Colors.Secondary},
		{"warning", t.Colors.Warning},
		{"error", t.Colors.Error},
		{"muted", t.Colors.Muted},
		{"surface", t.Colors.Surface},
		{"text", t.Colors.Text},
		{"border", t.Colors.Border},
	}
	for _, c := range required {
		if c.color == "" {
			return fmt.Errorf("color '%s' is required", c.name)
		}
		if !isValidHexColor(c.color) {
			return fmt.Errorf("color '%s' has invalid format: %s (expected #RGB or #RRGGBB)", c.name, c.color)
		}
	}

	optional := []struct{ name, color string }{
		{"power.off", t.Colors.Power.Off},
		{"power.boot", t.Colors.Power.Boot},
		{"power.running", t.Colors.Power.Running},
		{"severity.danger", t.Colors.Severity.Danger},
		{"severity.warning", t.Colors.Severity.Warning},
		{"severity.info", t.Colors.Severity.Info},
	}
	for _, c := range optional {
		if c.color != "" && !isValidHexColor(c.color) {
			return fmt.Errorf("color '%s' has invalid format: %s (expected #RGB or #RRGGBB)", c.name, c.color)
		}
	}
	return nil
}

func isValidHexColor(color string) bool {
	return hexColorRegex.MatchString(color)
}

// ToPalette converts the theme file to a ColorPalette.
func (t *ThemeFile) ToPalette() *ColorPalette {
	c := t.Colors
	return &ColorPalette{
		Primary:   lipgloss.Color(c.Primary),
		Secondary: lipgloss.Color(c.Secondary),
		Warning:   lipgloss.Color(c.Warning),
		Error:     lipgloss.Color(c.Error),
		Muted:     lipgloss.Color(c.Muted),
		Surface:   lipgloss.Color(c.Surface),
		Text:      lipgloss.Color(c.Text),
		Border:    lipgloss.Color(c.Border),

		PowerOff:     colorOrDefault(c.Power.Off, c.Border),
		PowerBoot:    colorOrDefault(c.Power.Boot, c.Warning),
		PowerRunning: colorOrDefault(c.Power.Running, c.Primary),

		Danger:  colorOrDefault(c.Severity.Danger, c.Error),
		Caution: colorOrDefault(c.Severity.Warning, c.Warning),
		Info:    colorOrDefault(c.Severity.Info, c.Secondary),
	}
}

// colorOrDefault returns the color if non-empty, otherwise returns the default.
func colorOrDefault(color, defaultColor string) lipgloss.Color {
	if color != "" {
		return lipgloss.Color(color)
	}
	return lipgloss.Color(defaultColor)
}

// ExportTheme renders a built-in theme as a theme file, ready to be saved and
// customized.
func ExportTheme(name ThemeName) ([]byte, error) {
	p := GetPalette(name)
	tf := &ThemeFile{
		Name:        string(name),
		Description: fmt.Sprintf("Exported from built-in theme '%s'", name),
		Version:     "1",
		Colors: ThemeColors{
			Primary:   string(p.Primary),
			Secondary: string(p.Secondary),
			Warning:   string(p.Warning),
			Error:     string(p.Error),
			Muted:     string(p.Muted),
			Surface:   string(p.Surface),
			Text:      string(p.Text),
			Border:    string(p.Border),
			Power: ThemePowerColors{
				Off:     string(p.PowerOff),
				Boot:    string(p.PowerBoot),
				Running: string(p.PowerRunning),
			},
			Severity: ThemeSeverityColors{
				Danger:  string(p.Danger),
				Warning: string(p.Caution),
				Info:    string(p.Info),
			},
		},
	}
	return yaml.Marshal(tf)
}

// Resolve picks the palette for the configured theme. A theme file, when set,
// wins over the theme name.
func Resolve(name, file string) (*ColorPalette, error) {
	if file == "" {
		return GetPalette(ThemeName(name)), nil
	}
	tf, err := LoadThemeFile(file)
	if err != nil {
		return nil, err
	}
	return tf.ToPalette(), nil
}
