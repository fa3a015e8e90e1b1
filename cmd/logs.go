package cmd

import (
	"github.com/pamout/devlog/core"
	"github.com/pamout/devlog/internal/contract"
	"github.com/spf13/cobra"
)

// logsCmd lists every record.
var logsCmd = &cobra.Command{
	Use:   "logs [root-path]",
	Short: "List every dev log with its size and category.",
	Long: `List the records newest first with date, type, title and line counts.

Examples:
  # Table in the terminal
  devlog logs

  # Export for analytics
  devlog logs --output parquet --output-file logs.parquet`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteLogs(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot list dev logs", err)
		}
	},
}
