package cmd

import (
	"errors"
	"fmt"

	"github.com/pamout/devlog/internal/contract"
	"github.com/pamout/devlog/internal/history"
	"github.com/pamout/devlog/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historySetup loads minimal configuration needed for history operations.
// This is used by commands that need history access without full shared setup.
func historySetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get history-related config values
	backend, err := contract.ParseHistoryBackend(viper.GetString("history-backend"))
	if err != nil {
		return err
	}
	connStr := viper.GetString("history-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Initialize stores with the loaded config
	if err := history.InitStores(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize history: %w", err)
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")

	return nil
}

// historySetupWrapper wraps historySetup to provide PreRunE for history commands.
func historySetupWrapper(_ *cobra.Command, _ []string) error {
	return historySetup()
}

// historyMigrateSetup loads minimal configuration needed for migrate operations.
// It does NOT initialize stores or create tables, so migrations can run on a fresh database.
func historyMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend, err := contract.ParseHistoryBackend(viper.GetString("history-backend"))
	if err != nil {
		return err
	}
	connStr := viper.GetString("history-db-connect")

	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetHistoryDBFilePath()
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr

	return nil
}

// historyMigrateSetupWrapper wraps historyMigrateSetup to provide PreRunE for migrate command.
func historyMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return historyMigrateSetup()
}

// historyCmd focused on run history management.
//
// Note: History subcommands use minimal initialization (historySetup) instead of
// the full sharedSetup used by the build commands. This avoids resolving the
// project layout for simple database operations.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage build run history and exports",
	Long: `Manage the history of build runs.

When enabled, every build stores:
- Run metadata (timestamp, configuration, duration)
- Record counts and skipped documents
- One snapshot row per record (type, category, size bucket, lines changed)

Supported backends: SQLite, MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show history statistics
  export  - Export data to Parquet for analytics
  clear   - Remove all history data
  migrate - Run database schema migrations

Examples:
  # Check tracking status
  devlog history status --history-backend sqlite

  # Export for analysis in pandas/DuckDB
  devlog history export --history-backend sqlite --output-file devlog`,
}

// historyStatusCmd shows history status.
var historyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display run history statistics and connection details",
	Long: `Show the backend, the number of stored runs, the newest and oldest run
and the size of each history table.

Examples:
  devlog history status --history-backend sqlite`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := history.Manager.GetHistoryStore()
		if store == nil {
			contract.LogFatal("Failed to get history status", errors.New("history tracking is not initialized"))
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		history.PrintHistoryStatus(status)
	},
}

// historyExportCmd exports history data to Parquet files.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export run history to Parquet for BI tools and analytics",
	Long: `Export all stored history to Parquet files.

Writes two datasets next to --output-file:
- <output-file>.runs.parquet     one row per build run
- <output-file>.records.parquet  one row per record snapshot

Requires: --output-file parameter

Examples:
  devlog history export --history-backend sqlite --output-file devlog
  duckdb -c "SELECT type, count(*) FROM read_parquet('devlog.records.parquet') GROUP BY type"`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := history.ExecuteHistoryExport(cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export history data", err)
		}
	},
}

// historyClearCmd clears the history data.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all run history data",
	Long: `Delete all stored runs and record snapshots.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before clearing
  devlog history export --history-backend sqlite --output-file backup
  devlog history clear --history-backend sqlite`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		// Release the SQLite handle before the file is removed.
		history.CloseStores()
		if err := history.ClearHistory(cfg.HistoryBackend, contract.GetHistoryDBFilePath(), cfg.HistoryDBConnect); err != nil {
			contract.LogFatal("Failed to clear history data", err)
		}
		fmt.Println("History data cleared successfully.")
	},
}

// historyMigrateCmd runs database migrations for the history store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the history store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  devlog history migrate --history-backend sqlite

  # Migrate to specific version
  devlog history migrate --history-backend sqlite --target-version 1

  # Rollback to initial state
  devlog history migrate --history-backend sqlite --target-version 0`,
	PreRunE: historyMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := history.MigrateHistory(cfg.HistoryBackend, cfg.HistoryDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
