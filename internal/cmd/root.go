// Package cmd holds the bridge command tree.
package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/bridge/internal/config"
	"github.com/Iron-Ham/bridge/internal/errors"
	"github.com/Iron-Ham/bridge/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "bridge",
	Short: "Financial bridge dashboard for the terminal",
	Long: `Bridge runs the SynesthesiaPay starship dashboard in your terminal:
a boot sequence that powers up the instruments, a command console with
hologram panels, a threat scope and a companion that talks you through it.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and prints any error it returns
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

// printError writes err for the user. Input problems get a pointer to the
// effective configuration.
func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
	if errors.IsUserFacing(err) && errors.Is(err, errors.ErrInvalidInput) {
		fmt.Fprintln(w, "Run 'bridge config show' to inspect the effective configuration.")
	}
}

// loadConfig loads and validates the configuration. The first validation
// problem is returned as an *errors.ValidationError.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err == nil {
		return cfg, nil
	}
	var problems config.ValidationErrors
	if !errors.As(err, &problems) || len(problems) == 0 {
		return nil, errors.Wrap(err, "failed to read config")
	}
	p := problems[0]
	msg := p.Message
	if n := len(problems) - 1; n > 0 {
		msg = fmt.Sprintf("%s (and %d more)", msg, n)
	}
	return nil, errors.NewValidationError(msg).WithField(p.Field).WithValue(p.Value)
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/bridge/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "override logging.level (debug, info, warn, error)")
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))

	if cfgFile, _ := rootCmd.PersistentFlags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("BRIDGE")
	// Replace dots with underscores for nested keys in env vars
	// e.g., BRIDGE_CADENCE_IDLE_FPS for cadence.idle_fps
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}

// newLogger builds the logger described by cfg. Logging disabled means a
// no-op logger. The stderr mirror is only honored when the caller does not
// own the terminal.
func newLogger(cfg *config.Config, interactive bool) (*logging.Logger, error) {
	if !cfg.Logging.Enabled {
		return logging.NopLogger(), nil
	}
	return logging.New(logging.Options{
		Dir:    cfg.Logging.ResolveDir(),
		Level:  cfg.Logging.Level,
		Stderr: cfg.Logging.DevStderr && !interactive,
	})
}
