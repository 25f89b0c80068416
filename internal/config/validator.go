package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "power.settle_delay_ms")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// ValidThemes returns the built-in theme names
func ValidThemes() []string {
	return []string{"default", "amber", "monochrome"}
}

// Upper bounds for timing fields.
const (
	maxDwellMs  = 60_000
	maxBeatMs   = 10_000
	maxFPS      = 240
	maxDebounce = 5_000

	maxTypewriter = 1_000
)

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateBoot()...)
	errors = append(errors, c.validatePower()...)
	errors = append(errors, c.validatePanel()...)
	errors = append(errors, c.validateCadence()...)
	errors = append(errors, c.validateSpeech()...)
	errors = append(errors, c.validateLogging()...)
	errors = append(errors, c.validateTUI()...)

	return errors
}

func (c *Config) validateBoot() []ValidationError {
	var errors []ValidationError

	d := c.Boot.Dwell
	fields := []struct {
		name  string
		value int
	}{
		{"boot.dwell_ms.start", d.Start},
		{"boot.dwell_ms.name_exit", d.NameExit},
		{"boot.dwell_ms.darkness", d.Darkness},
		{"boot.dwell_ms.console_glow", d.ConsoleGlow},
		{"boot.dwell_ms.power_surge", d.PowerSurge},
		{"boot.dwell_ms.full_power", d.FullPower},
	}
	for _, f := range fields {
		errors = append(errors, checkRange(f.name, f.value, 0, maxDwellMs)...)
	}

	return errors
}

func (c *Config) validatePower() []ValidationError {
	var errors []ValidationError

	errors = append(errors, checkRange("power.settle_delay_ms", c.Power.SettleDelayMs, 0, maxDwellMs)...)
	errors = append(errors, checkRange("power.stagger_ms", c.Power.StaggerMs, 0, maxDwellMs)...)
	errors = append(errors, checkIDs("power.instruments", c.Power.Instruments)...)

	return errors
}

func (c *Config) validatePanel() []ValidationError {
	var errors []ValidationError

	errors = append(errors, checkRange("panel.beat1_ms", c.Panel.Beat1Ms, 0, maxBeatMs)...)
	errors = append(errors, checkRange("panel.beat2_ms", c.Panel.Beat2Ms, 0, maxBeatMs)...)
	errors = append(errors, checkRange("panel.dismiss_ms", c.Panel.DismissMs, 0, maxBeatMs)...)

	if len(c.Panel.Panels) == 0 {
		errors = append(errors, ValidationError{
			Field:   "panel.panels",
			Value:   c.Panel.Panels,
			Message: "must list at least one panel",
		})
	}
	errors = append(errors, checkIDs("panel.panels", c.Panel.Panels)...)

	return errors
}

func (c *Config) validateCadence() []ValidationError {
	var errors []ValidationError

	errors = append(errors, checkRange("cadence.active_fps", c.Cadence.ActiveFPS, 1, maxFPS)...)
	errors = append(errors, checkRange("cadence.idle_fps", c.Cadence.IdleFPS, 1, maxFPS)...)
	errors = append(errors, checkRange("cadence.refresh_hz", c.Cadence.RefreshHz, 1, maxFPS)...)

	if c.Cadence.IdleFPS > c.Cadence.ActiveFPS {
		errors = append(errors, ValidationError{
			Field:   "cadence.idle_fps",
			Value:   c.Cadence.IdleFPS,
			Message: fmt.Sprintf("must not exceed cadence.active_fps (%d)", c.Cadence.ActiveFPS),
		})
	}

	return errors
}

func (c *Config) validateSpeech() []ValidationError {
	var errors []ValidationError
	errors = append(errors, checkRange("speech.debounce_ms", c.Speech.DebounceMs, 0, maxDebounce)...)
	errors = append(errors, checkRange("speech.auto_dismiss_ms", c.Speech.AutoDismissMs, 0, maxDwellMs)...)
	errors = append(errors, checkRange("speech.typewriter_ms", c.Speech.TypewriterMs, 0, maxTypewriter)...)
	return errors
}

func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	if strings.ContainsRune(c.Logging.Dir, '\x00') {
		errors = append(errors, ValidationError{
			Field:   "logging.dir",
			Value:   c.Logging.Dir,
			Message: "contains invalid null character",
		})
	}

	return errors
}

func (c *Config) validateTUI() []ValidationError {
	var errors []ValidationError

	// A theme file replaces the named theme, so the name is not checked then.
	if c.TUI.ThemeFile == "" && c.TUI.Theme != "" && !slices.Contains(ValidThemes(), c.TUI.Theme) {
		errors = append(errors, ValidationError{
			Field:   "tui.theme",
			Value:   c.TUI.Theme,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidThemes(), ", ")),
		})
	}

	return errors
}

func checkRange(field string, value, lo, hi int) []ValidationError {
	if value < lo {
		msg := "must be non-negative"
		if lo > 0 {
			msg = fmt.Sprintf("must be at least %d", lo)
		}
		return []ValidationError{{Field: field, Value: value, Message: msg}}
	}
	if value > hi {
		return []ValidationError{{Field: field, Value: value, Message: fmt.Sprintf("exceeds maximum of %d", hi)}}
	}
	return nil
}

func checkIDs(field string, ids []string) []ValidationError {
	var errors []ValidationError
	seen := make(map[string]bool, len(ids))
	for i, id := range ids {
		name := fmt.Sprintf("%s[%d]", field, i)
		if strings.TrimSpace(id) == "" {
			errors = append(errors, ValidationError{Field: name, Value: id, Message: "must not be empty"})
			continue
		}
		if seen[id] {
			errors = append(errors, ValidationError{Field: name, Value: id, Message: "duplicate entry"})
		}
		seen[id] = true
	}
	return errors
}
