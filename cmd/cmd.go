// Package cmd defines the command-line interface for devlog.
package cmd

import (
	"github.com/pamout/devlog/internal/contract"
	"github.com/pamout/devlog/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(logsCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("input-dir", contract.DefaultInputDir, "Directory of dev-log markdown files, relative to the project root")
	rootCmd.PersistentFlags().String("output-dir", contract.DefaultOutputDir, "Directory receiving the HTML pages, relative to the project root")
	rootCmd.PersistentFlags().String("data-file", contract.DefaultDataFile, "JSON document path, relative to the output directory")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("log-level", contract.DefaultLogLevel, "Log level: debug or info or warn or error")
	rootCmd.PersistentFlags().String("categories-file", "", "YAML file with record and file category tables")
	rootCmd.PersistentFlags().String("history-backend", "", "Run history backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("page", "", "Comma-separated pages to render (default: all)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of buildCmd to Viper
	buildCmd.Flags().Bool("skip-render", false, "Write the JSON document without rendering pages")
	if err := viper.BindPFlags(buildCmd.Flags()); err != nil {
		contract.LogFatal("Error binding build flags", err)
	}

	// Bind all flags of statsCmd to Viper
	statsCmd.Flags().Int("top-files", contract.DefaultTopFiles, "Number of most changed files to report")
	if err := viper.BindPFlags(statsCmd.Flags()); err != nil {
		contract.LogFatal("Error binding stats flags", err)
	}

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
