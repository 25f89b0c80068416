package cmd

import (
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/bridge/internal/bridge"
	"github.com/Iron-Ham/bridge/internal/clock"
	"github.com/Iron-Ham/bridge/internal/errors"
	"github.com/Iron-Ham/bridge/internal/logging"
	"github.com/Iron-Ham/bridge/internal/tui"
	"github.com/Iron-Ham/bridge/internal/tui/styles"
)

// timerBuffer is how many expired core timers may queue while Update is busy.
const timerBuffer = 64

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the bridge dashboard",
	Long: `Start the bridge dashboard in the terminal.

The config file is watched while the dashboard runs: changes to the theme
and the log level apply immediately. Other settings apply on the next start.`,
	RunE: runRun,
}

var runSkipBoot bool

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&runSkipBoot, "skip-boot", false, "skip the boot sequence")
}

var stdoutIsTerminal = func() bool { return term.IsTerminal(os.Stdout.Fd()) }

// errNoTerminal is returned when run is not attached to a terminal.
var errNoTerminal = errors.New("bridge run needs an interactive terminal; use 'bridge simulate' for headless runs")

func runRun(cmd *cobra.Command, args []string) error {
	if !stdoutIsTerminal() {
		return errNoTerminal
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if runSkipBoot {
		cfg.Boot.Skip = true
	}

	logger, err := newLogger(cfg, true)
	if err != nil {
		return errors.Wrap(err, "failed to set up logging")
	}
	defer logger.Close()

	palette, err := styles.Resolve(cfg.TUI.Theme, cfg.TUI.ThemeFile)
	if err != nil {
		return errors.Wrap(err, "failed to load theme")
	}

	loop := clock.NewLoop(timerBuffer)
	b, err := bridge.New(cfg, bridge.WithClock(loop), bridge.WithLogger(logger))
	if err != nil {
		return err
	}
	defer b.Close()

	app := tui.New(b, loop, palette)
	watchConfig(app, logger)

	if cfg.TUI.ThemeFile != "" {
		w, err := styles.NewThemeWatcher(cfg.TUI.ThemeFile, app.SetTheme, func(err error) {
			logger.Warn("theme reload failed", "file", cfg.TUI.ThemeFile, "error", err)
		})
		if err != nil {
			logger.Warn("theme watcher unavailable", "file", cfg.TUI.ThemeFile, "error", err)
		} else {
			w.Start()
			defer w.Stop()
		}
	}

	if cfg.Boot.Skip {
		b.Start()
	}
	return app.Run()
}

// watchConfig applies theme and log level changes from the config file to the
// running app.
func watchConfig(app *tui.App, logger *logging.Logger) {
	if viper.ConfigFileUsed() == "" {
		return
	}
	viper.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := loadConfig()
		if err != nil {
			logger.Report("config reload rejected", err, "file", e.Name)
			return
		}
		logger.SetLevel(cfg.Logging.Level)

		palette, err := styles.Resolve(cfg.TUI.Theme, cfg.TUI.ThemeFile)
		if err != nil {
			logger.Warn("theme reload failed", "theme", cfg.TUI.Theme, "error", err)
			return
		}
		app.SetTheme(palette)
		logger.Info("config reloaded", "file", e.Name, "theme", cfg.TUI.Theme)
	})
	viper.WatchConfig()
}
