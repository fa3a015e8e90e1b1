package cmd

import (
	"github.com/pamout/devlog/core"
	"github.com/pamout/devlog/internal/contract"
	"github.com/spf13/cobra"
)

// renderCmd renders pages from an existing JSON document.
var renderCmd = &cobra.Command{
	Use:   "render [root-path]",
	Short: "Render HTML pages from the existing JSON document.",
	Long: `Render the HTML pages from a JSON document written by an earlier build.
Statistics are recomputed from the stored records, so the pages always match them.

Pages: index, timeline, heatmap, files, commit-size, time-analysis, deployment, stats

Examples:
  # Render every page
  devlog render

  # Render only the heatmap
  devlog render --page heatmap`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteRender(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot render pages", err)
		}
	},
}
