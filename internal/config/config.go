package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete bridge configuration
type Config struct {
	Boot    BootConfig    `mapstructure:"boot"`
	Power   PowerConfig   `mapstructure:"power"`
	Panel   PanelConfig   `mapstructure:"panel"`
	Cadence CadenceConfig `mapstructure:"cadence"`
	Speech  SpeechConfig  `mapstructure:"speech"`
	Logging LoggingConfig `mapstructure:"logging"`
	TUI     TUIConfig     `mapstructure:"tui"`
}

// BootConfig controls the boot sequence
type BootConfig struct {
	// Strict logs and returns rejected phase transitions instead of ignoring them.
	// Meant for development builds.
	Strict bool `mapstructure:"strict"`

	// AutoStart leaves the start screen without waiting for user input
	AutoStart bool `mapstructure:"auto_start"`

	// Skip jumps straight to complete on startup
	Skip bool `mapstructure:"skip"`

	// Dwell is how long each phase lasts before the director advances it
	Dwell DwellConfig `mapstructure:"dwell_ms"`
}

// DwellConfig holds per-phase dwell times in milliseconds.
// Start is only used when AutoStart is set.
type DwellConfig struct {
	Start       int `mapstructure:"start"`
	NameExit    int `mapstructure:"name_exit"`
	Darkness    int `mapstructure:"darkness"`
	ConsoleGlow int `mapstructure:"console_glow"`
	PowerSurge  int `mapstructure:"power_surge"`
	FullPower   int `mapstructure:"full_power"`
}

// Durations returns the dwell times keyed by phase name
func (d DwellConfig) Durations() map[string]time.Duration {
	ms := func(v int) time.Duration { return time.Duration(v) * time.Millisecond }
	return map[string]time.Duration{
		"start":        ms(d.Start),
		"name-exit":    ms(d.NameExit),
		"darkness":     ms(d.Darkness),
		"console-glow": ms(d.ConsoleGlow),
		"power-surge":  ms(d.PowerSurge),
		"full-power":   ms(d.FullPower),
	}
}

// PowerConfig controls instrument power-up
type PowerConfig struct {
	// SettleDelayMs is how long an instrument stays in boot before running
	SettleDelayMs int `mapstructure:"settle_delay_ms"`

	// StaggerMs is added to the settle delay for each instrument in order
	StaggerMs int `mapstructure:"stagger_ms"`

	// Instruments are registered up front so the stagger order is stable
	Instruments []string `mapstructure:"instruments"`
}

// SettleDelay returns the settle delay as a time.Duration
func (c *PowerConfig) SettleDelay() time.Duration {
	return time.Duration(c.SettleDelayMs) * time.Millisecond
}

// Stagger returns the per-instrument stagger as a time.Duration
func (c *PowerConfig) Stagger() time.Duration {
	return time.Duration(c.StaggerMs) * time.Millisecond
}

// PanelConfig controls hologram panel choreography
type PanelConfig struct {
	Beat1Ms   int      `mapstructure:"beat1_ms"`
	Beat2Ms   int      `mapstructure:"beat2_ms"`
	DismissMs int      `mapstructure:"dismiss_ms"`
	Panels    []string `mapstructure:"panels"`
}

// Beat1 returns how long the first reveal beat lasts
func (c *PanelConfig) Beat1() time.Duration {
	return time.Duration(c.Beat1Ms) * time.Millisecond
}

// Beat2 returns how long the second reveal beat lasts
func (c *PanelConfig) Beat2() time.Duration {
	return time.Duration(c.Beat2Ms) * time.Millisecond
}

// Dismiss returns how long the dismiss animation lasts
func (c *PanelConfig) Dismiss() time.Duration {
	return time.Duration(c.DismissMs) * time.Millisecond
}

// CadenceConfig controls scene redraw throttling
type CadenceConfig struct {
	// ActiveFPS is the redraw rate while threats exist or a panel is expanded
	ActiveFPS int `mapstructure:"active_fps"`

	// IdleFPS is the redraw rate otherwise
	IdleFPS int `mapstructure:"idle_fps"`

	// RefreshHz is how often the terminal offers a redraw opportunity
	RefreshHz int `mapstructure:"refresh_hz"`
}

// ActiveInterval returns the minimum spacing between redraws while active
func (c *CadenceConfig) ActiveInterval() time.Duration {
	return fpsInterval(c.ActiveFPS)
}

// IdleInterval returns the minimum spacing between redraws while idle
func (c *CadenceConfig) IdleInterval() time.Duration {
	return fpsInterval(c.IdleFPS)
}

// RefreshInterval returns the spacing between redraw opportunities
func (c *CadenceConfig) RefreshInterval() time.Duration {
	return fpsInterval(c.RefreshHz)
}

func fpsInterval(fps int) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Second / time.Duration(fps)
}

// SpeechConfig controls the companion speech queue
type SpeechConfig struct {
	// DebounceMs is how long focus must rest on a subject before it is proposed
	DebounceMs int `mapstructure:"debounce_ms"`

	// Greeting is spoken at high priority once boot completes. Empty disables it.
	Greeting string `mapstructure:"greeting"`

	// AutoDismissMs is how long a greeting or nudge stays up after it has been
	// typed out. Zero keeps it until silenced.
	AutoDismissMs int `mapstructure:"auto_dismiss_ms"`

	// TypewriterMs is the time taken to type out one character
	TypewriterMs int `mapstructure:"typewriter_ms"`
}

// Debounce returns the focus debounce as a time.Duration
func (c *SpeechConfig) Debounce() time.Duration {
	return time.Duration(c.DebounceMs) * time.Millisecond
}

// AutoDismiss returns the auto dismiss delay as a time.Duration
func (c *SpeechConfig) AutoDismiss() time.Duration {
	return time.Duration(c.AutoDismissMs) * time.Millisecond
}

// Typewriter returns the per-character typing time as a time.Duration
func (c *SpeechConfig) Typewriter() time.Duration {
	return time.Duration(c.TypewriterMs) * time.Millisecond
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether logging is active
	Enabled bool `mapstructure:"enabled"`

	// Level sets the minimum log level: "debug", "info", "warn", "error"
	Level string `mapstructure:"level"`

	// Dir is where bridge.log is written (default: ConfigDir()/logs)
	Dir string `mapstructure:"dir"`

	// DevStderr also writes readable log lines to stderr.
	// Ignored by the interactive dashboard, which owns the terminal.
	DevStderr bool `mapstructure:"dev_stderr"`
}

// ResolveDir returns the log directory, falling back to ConfigDir()/logs
func (c *LoggingConfig) ResolveDir() string {
	if c.Dir != "" {
		return expandHome(c.Dir)
	}
	return filepath.Join(ConfigDir(), "logs")
}

// TUIConfig controls the terminal dashboard
type TUIConfig struct {
	// Theme is a built-in theme name
	Theme string `mapstructure:"theme"`

	// ThemeFile is a YAML theme that overrides Theme when set
	ThemeFile string `mapstructure:"theme_file"`

	// ShowStats shows redraw counters in the footer
	ShowStats bool `mapstructure:"show_stats"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Boot: BootConfig{
			Strict:    false,
			AutoStart: false,
			Dwell: DwellConfig{
				Start:       1600,
				NameExit:    1000,
				Darkness:    500,
				ConsoleGlow: 1500,
				PowerSurge:  1000,
				FullPower:   1000,
			},
		},
		Power: PowerConfig{
			SettleDelayMs: 600,
			StaggerMs:     100,
			Instruments:   []string{"inst-01", "inst-02", "inst-03", "inst-04", "left-strip", "glass"},
		},
		Panel: PanelConfig{
			Beat1Ms:   400,
			Beat2Ms:   800,
			DismissMs: 400,
			Panels:    []string{"shields", "networth", "transactions", "cards"},
		},
		Cadence: CadenceConfig{
			ActiveFPS: 60,
			IdleFPS:   30,
			RefreshHz: 120,
		},
		Speech: SpeechConfig{
			DebounceMs:    150,
			Greeting:      "Bridge systems online, Captain. Standing by.",
			AutoDismissMs: 5000,
			TypewriterMs:  30,
		},
		Logging: LoggingConfig{
			Enabled: false,
			Level:   "info",
		},
		TUI: TUIConfig{
			Theme:     "default",
			ShowStats: true,
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Boot defaults
	viper.SetDefault("boot.strict", defaults.Boot.Strict)
	viper.SetDefault("boot.auto_start", defaults.Boot.AutoStart)
	viper.SetDefault("boot.skip", defaults.Boot.Skip)
	viper.SetDefault("boot.dwell_ms.start", defaults.Boot.Dwell.Start)
	viper.SetDefault("boot.dwell_ms.name_exit", defaults.Boot.Dwell.NameExit)
	viper.SetDefault("boot.dwell_ms.darkness", defaults.Boot.Dwell.Darkness)
	viper.SetDefault("boot.dwell_ms.console_glow", defaults.Boot.Dwell.ConsoleGlow)
	viper.SetDefault("boot.dwell_ms.power_surge", defaults.Boot.Dwell.PowerSurge)
	viper.SetDefault("boot.dwell_ms.full_power", defaults.Boot.Dwell.FullPower)

	// Power defaults
	viper.SetDefault("power.settle_delay_ms", defaults.Power.SettleDelayMs)
	viper.SetDefault("power.stagger_ms", defaults.Power.StaggerMs)
	viper.SetDefault("power.instruments", defaults.Power.Instruments)

	// Panel defaults
	viper.SetDefault("panel.beat1_ms", defaults.Panel.Beat1Ms)
	viper.SetDefault("panel.beat2_ms", defaults.Panel.Beat2Ms)
	viper.SetDefault("panel.dismiss_ms", defaults.Panel.DismissMs)
	viper.SetDefault("panel.panels", defaults.Panel.Panels)

	// Cadence defaults
	viper.SetDefault("cadence.active_fps", defaults.Cadence.ActiveFPS)
	viper.SetDefault("cadence.idle_fps", defaults.Cadence.IdleFPS)
	viper.SetDefault("cadence.refresh_hz", defaults.Cadence.RefreshHz)

	// Speech defaults
	viper.SetDefault("speech.debounce_ms", defaults.Speech.DebounceMs)
	viper.SetDefault("speech.greeting", defaults.Speech.Greeting)
	viper.SetDefault("speech.auto_dismiss_ms", defaults.Speech.AutoDismissMs)
	viper.SetDefault("speech.typewriter_ms", defaults.Speech.TypewriterMs)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)
	viper.SetDefault("logging.dev_stderr", defaults.Logging.DevStderr)

	// TUI defaults
	viper.SetDefault("tui.theme", defaults.TUI.Theme)
	viper.SetDefault("tui.theme_file", defaults.TUI.ThemeFile)
	viper.SetDefault("tui.show_stats", defaults.TUI.ShowStats)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling or validation fails
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "bridge")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".bridge"
	}
	return filepath.Join(home, ".config", "bridge")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

func expandHome(path string) string {
	if len(path) < 2 || path[:2] != "~/" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
