package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/bridge/internal/boot"
	"github.com/Iron-Ham/bridge/internal/config"
)

var phasesCmd = &cobra.Command{
	Use:   "phases",
	Short: "List the boot phases and their configured dwell times",
	RunE:  runPhases,
}

func init() {
	rootCmd.AddCommand(phasesCmd)
}

func runPhases(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	dwell := boot.DwellFromNames(cfg.Boot.Dwell.Durations())

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PHASE\tDWELL\tSTARTS AT")
	var at time.Duration
	for _, p := range boot.Phases() {
		d, ok := dwell[p]
		switch {
		case p == boot.PhaseComplete:
			fmt.Fprintf(w, "%s\t-\t%s\n", p, at)
		case p == boot.PhaseStart && !cfg.Boot.AutoStart:
			fmt.Fprintf(w, "%s\tuntil engaged\t-\n", p)
		case ok:
			fmt.Fprintf(w, "%s\t%s\t%s\n", p, d, at)
			at += d
		default:
			fmt.Fprintf(w, "%s\t0s\t%s\n", p, at)
		}
	}
	return w.Flush()
}
