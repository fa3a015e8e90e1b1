package cmd

import (
	"github.com/pamout/devlog/core"
	"github.com/pamout/devlog/internal/contract"
	"github.com/spf13/cobra"
)

// statsCmd prints the aggregate report.
var statsCmd = &cobra.Command{
	Use:   "stats [root-path]",
	Short: "Print statistics, streaks, commit sizes and file history.",
	Long: `Print every aggregate of the dev logs: totals, counts by type and
category, frequency, streaks, commit sizes, time of day, most changed files
and deployments.

Reads the JSON document when it exists, otherwise parses the input directory.

Examples:
  # Print a summary in the terminal
  devlog stats

  # Export a flat section,key,value table
  devlog stats --output csv --output-file stats.csv

  # Machine-readable report
  devlog stats --output json --top-files 50`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteStats(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot compute statistics", err)
		}
	},
}
