package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/pamout/devlog/internal/contract"
	"github.com/pamout/devlog/internal/history"
	"github.com/pamout/devlog/schema"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// configName is the config file name, without extension, searched in . and $HOME.
const configName = ".devlog"

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// appFs is the filesystem used to validate configuration.
var appFs = afero.NewOsFs()

// historyManager is the global run history manager instance.
var historyManager contract.HistoryManager = history.Manager

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:   "devlog",
	Short: "Turn development-log markdown into JSON data and HTML reports.",
	Long: `Devlog parses the per-commit development logs under docs/dev-log into
records, writes them to a single JSON document and renders a set of static
HTML report pages: kanban board, timeline, heatmap, file history, commit
sizes, time analysis, deployments and statistics.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	setConfigSource()

	// Set environment variable prefix
	viper.SetEnvPrefix("DEVLOG")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Set defaults in Viper
	viper.SetDefault("input-dir", contract.DefaultInputDir)
	viper.SetDefault("output-dir", contract.DefaultOutputDir)
	viper.SetDefault("data-file", contract.DefaultDataFile)
	viper.SetDefault("precision", contract.DefaultPrecision)
	viper.SetDefault("top-files", contract.DefaultTopFiles)
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("log-level", contract.DefaultLogLevel)
	viper.SetDefault("history-backend", "")
	viper.SetDefault("history-db-connect", "")
	viper.SetDefault("color", "yes")
}

// setConfigSource points viper at --config or the default search paths.
func setConfigSource() {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
		return
	}
	viper.SetConfigName(configName) // Name of config file (without extension)
	viper.SetConfigType("yaml")     // We'll use YAML format
	viper.AddConfigPath(".")        // Look in the current directory
	viper.AddConfigPath("$HOME")    // Look in the home directory
}

// sharedSetup unmarshals config and runs validation.
func sharedSetup(_ context.Context, _ *cobra.Command, args []string) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := loadConfigFile(); err != nil {
		return err
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Handle positional arguments (which Viper doesn't do).
	if len(args) == 1 {
		input.RootPathStr = args[0]
	} else {
		input.RootPathStr = "."
	}

	// 4. Run all validation and complex parsing.
	// This function populates the global 'cfg' from 'input'.
	if err := contract.ProcessAndValidate(cfg, appFs, input); err != nil {
		return err
	}
	if err := contract.ConfigureLogger(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	color.NoColor = color.NoColor || !cfg.UseColors

	// 5. Initialize run history with validated config
	if err := history.InitStores(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return fmt.Errorf("failed to initialize history: %w", err)
	}

	return nil
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// loadConfigFile handles config file loading logic common to all setup functions.
func loadConfigFile() error {
	setConfigSource()

	// Load config file if present
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetHistoryManager sets the global history manager.
func SetHistoryManager(mgr contract.HistoryManager) {
	historyManager = mgr
}
