package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/bridge/internal/sim"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a scripted session headless and print the timeline",
	Long: `Run a scripted bridge session on a simulated clock and print every
phase change, power change, panel beat and companion message with its
offset from the start, followed by redraw statistics.

No terminal UI is started and the run takes no real time.

Examples:
  bridge simulate
  bridge simulate --duration 20s
  bridge simulate --quiet`,
	RunE: runSimulate,
}

var (
	simulateDuration time.Duration
	simulateQuiet    bool
)

func init() {
	rootCmd.AddCommand(simulateCmd)
	simulateCmd.Flags().DurationVar(&simulateDuration, "duration", 0, "simulated time to run (default: until the script ends plus 2s)")
	simulateCmd.Flags().BoolVarP(&simulateQuiet, "quiet", "q", false, "print only script steps and the summary")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer logger.Close()

	_, err = sim.Run(cfg, cmd.OutOrStdout(), sim.Options{
		Duration: simulateDuration,
		Quiet:    simulateQuiet,
		Logger:   logger,
	})
	return err
}
