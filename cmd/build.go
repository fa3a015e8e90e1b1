package cmd

import (
	"github.com/pamout/devlog/core"
	"github.com/pamout/devlog/internal/contract"
	"github.com/spf13/cobra"
)

// buildCmd runs the whole pipeline.
var buildCmd = &cobra.Command{
	Use:   "build [root-path]",
	Short: "Parse the dev logs, write the JSON document and render every page.",
	Long: `Parse every markdown document in the input directory, write the records
and their statistics to the JSON document, and render the HTML pages.

A document that cannot be parsed is skipped with a warning. Records are
ordered by log number, newest first.

With no flags the layout is:
  docs/dev-log/*.md             input documents
  docs/html/data/dev-logs.json  JSON document
  docs/html/*.html              report pages

Examples:
  # Build the project in the current directory
  devlog build

  # Only refresh the JSON document
  devlog build --skip-render

  # Rebuild two pages of another project
  devlog build ../web --page index,stats

  # Record the run in the history store
  devlog build --history-backend sqlite`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteBuild(rootCtx, cfg, historyManager); err != nil {
			contract.LogFatal("Cannot build dev logs", err)
		}
	},
}
