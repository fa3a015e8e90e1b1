package cmd

import (
	"github.com/pamout/devlog/core"
	"github.com/pamout/devlog/internal/contract"
	"github.com/spf13/cobra"
)

// showCmd prints one record.
var showCmd = &cobra.Command{
	Use:   "show <log-number>",
	Short: "Print one dev log as rendered markdown.",
	Long: `Print a single dev log in the terminal. The record is looked up in the
project of the current directory; numeric log numbers match with or without
leading zeros.

Examples:
  devlog show 12
  devlog show 12 --output json`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		// The positional argument is the log number, not a root path.
		return sharedSetup(rootCtx, cmd, nil)
	},
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteShow(rootCtx, cfg, args[0]); err != nil {
			contract.LogFatal("Cannot show dev log", err)
		}
	},
}
