package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Iron-Ham/bridge/internal/config"
	"github.com/Iron-Ham/bridge/internal/errors"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage bridge configuration",
	Long: `View and modify bridge configuration settings.

Configuration is loaded from (in order of precedence):
  1. Environment variables (BRIDGE_* prefix, e.g. BRIDGE_CADENCE_IDLE_FPS)
  2. Config file (~/.config/bridge/config.yaml)
  3. Default values`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	RunE:  runConfigInit,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value and save it to the config file.

Examples:
  bridge config set boot.skip true
  bridge config set cadence.idle_fps 24
  bridge config set tui.theme amber`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configInitForce bool

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)

	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "overwrite an existing config file")
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	out, err := yaml.Marshal(viper.AllSettings())
	if err != nil {
		return fmt.Errorf("failed to render config: %w", err)
	}
	if used := viper.ConfigFileUsed(); used != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "# %s\n", used)
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "# defaults (no config file found)")
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if used := viper.ConfigFileUsed(); used != "" {
		fmt.Fprintf(out, "Config file: %s\n", used)
	} else {
		fmt.Fprintln(out, "Config file: (none)")
	}
	fmt.Fprintln(out, "Search paths:")
	fmt.Fprintf(out, "  %s\n", config.ConfigFile())
	fmt.Fprintln(out, "  ./config.yaml")
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configTarget()
	if _, err := os.Stat(path); err == nil && !configInitForce {
		return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigTemplate), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created config file at %s\n", path)
	return nil
}

// valueKind is the type a settable key is parsed as.
type valueKind int

const (
	kindBool valueKind = iota
	kindInt
	kindString
	kindList
)

var validKeys = map[string]valueKind{
	"boot.strict":                kindBool,
	"boot.auto_start":            kindBool,
	"boot.skip":                  kindBool,
	"boot.dwell_ms.start":        kindInt,
	"boot.dwell_ms.name_exit":    kindInt,
	"boot.dwell_ms.darkness":     kindInt,
	"boot.dwell_ms.console_glow": kindInt,
	"boot.dwell_ms.power_surge":  kindInt,
	"boot.dwell_ms.full_power":   kindInt,
	"power.settle_delay_ms":      kindInt,
	"power.stagger_ms":           kindInt,
	"power.instruments":          kindList,
	"panel.beat1_ms":             kindInt,
	"panel.beat2_ms":             kindInt,
	"panel.dismiss_ms":           kindInt,
	"panel.panels":               kindList,
	"cadence.active_fps":         kindInt,
	"cadence.idle_fps":           kindInt,
	"cadence.refresh_hz":         kindInt,
	"speech.debounce_ms":         kindInt,
	"speech.greeting":            kindString,
	"speech.auto_dismiss_ms":     kindInt,
	"speech.typewriter_ms":       kindInt,
	"logging.enabled":            kindBool,
	"logging.level":              kindString,
	"logging.dir":                kindString,
	"logging.dev_stderr":         kindBool,
	"tui.theme":                  kindString,
	"tui.theme_file":             kindString,
	"tui.show_stats":             kindBool,
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, raw := args[0], args[1]

	kind, ok := validKeys[key]
	if !ok {
		keys := make([]string, 0, len(validKeys))
		for k := range validKeys {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return errors.NewValidationError("unknown config key; valid keys:\n  " + strings.Join(keys, "\n  ")).WithField(key)
	}

	value, err := parseValue(kind, raw)
	if err != nil {
		return errors.NewValidationError(err.Error()).WithField(key).WithValue(raw)
	}

	previous := viper.Get(key)
	viper.Set(key, value)
	if _, err := loadConfig(); err != nil {
		viper.Set(key, previous)
		return err
	}

	path := configTarget()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := viper.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %v\n", key, value)
	return nil
}

func parseValue(kind valueKind, raw string) (any, error) {
	switch kind {
	case kindBool:
		return strconv.ParseBool(raw)
	case kindInt:
		return strconv.Atoi(raw)
	case kindList:
		var items []string
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				items = append(items, part)
			}
		}
		return items, nil
	default:
		return raw, nil
	}
}

// configTarget is the file config writes go to: the file in use, or the
// default location.
func configTarget() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	return config.ConfigFile()
}

const defaultConfigTemplate = `# Bridge configuration
# Environment variables override this file: BRIDGE_<SECTION>_<KEY>, e.g. BRIDGE_BOOT_SKIP=true

boot:
  # Reject invalid phase transitions with an error instead of ignoring them
  strict: false
  # Leave the start screen on its own after dwell_ms.start
  auto_start: false
  # Jump straight to the finished bridge on startup
  skip: false
  dwell_ms:
    start: 1600
    name_exit: 1000
    darkness: 500
    console_glow: 1500
    power_surge: 1000
    full_power: 1000

power:
  # Time an instrument spends booting before it runs
  settle_delay_ms: 600
  # Extra delay per instrument, in registration order
  stagger_ms: 100
  instruments:
    - inst-01
    - inst-02
    - inst-03
    - inst-04
    - left-strip
    - glass

panel:
  beat1_ms: 400
  beat2_ms: 800
  dismiss_ms: 400
  panels:
    - shields
    - networth
    - transactions
    - cards

cadence:
  # Redraw rate while something is animating
  active_fps: 60
  # Redraw rate once the bridge is settled
  idle_fps: 30
  # How often the dashboard offers a redraw opportunity
  refresh_hz: 120

speech:
  # How long focus must rest on a threat before the companion talks about it
  debounce_ms: 150
  # Spoken when boot completes; empty disables
  greeting: "Bridge systems online, Captain. Standing by."
  # Greetings and nudges clear this long after typing out; 0 keeps them up
  auto_dismiss_ms: 5000
  typewriter_ms: 30

logging:
  enabled: false
  level: info
  # Defaults to ~/.config/bridge/logs
  dir: ""
  # Mirror logs to stderr (simulate only)
  dev_stderr: false

tui:
  # default, amber or monochrome
  theme: default
  # YAML theme file; overrides theme and is reloaded on save
  theme_file: ""
  show_stats: true
`
