package cmd

import (
	"github.com/burstaudit/burstaudit/core"
	"github.com/burstaudit/burstaudit/internal/contract"
	"github.com/spf13/cobra"
)

// processCmd runs the burst audit pipeline on one activity export.
var processCmd = &cobra.Command{
	Use:   "process <input-file> <output-dir>",
	Short: "Process an activity export and write per-group burst reports",
	Long: `Load a learner activity export (.csv or .xlsx), keep only completed
transcript rows, group them by learner and completion day, and write one
report per group that exceeds the burst threshold. Each report ends with a
TOTAL row summing the group's activity durations.

Examples:
  # Process an export into ./results
  burstaudit process export.xlsx ./results

  # Bundle the reports into a zip afterwards
  burstaudit process export.csv ./results --archive

  # Emit the run summary as JSON
  burstaudit process export.xlsx ./results --output json`,
	Args:    cobra.ExactArgs(2),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteProcess(cfg, runStore, args[0], args[1]); err != nil {
			contract.LogFatal("Processing failed", err)
		}
	},
}
