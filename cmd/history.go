package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sonarsheet/sonarsheet/internal/contract"
	"github.com/sonarsheet/sonarsheet/internal/outwriter"
	"github.com/sonarsheet/sonarsheet/internal/runstore"
	"github.com/sonarsheet/sonarsheet/schema"
)

// historySetup loads minimal configuration needed for run-history operations.
// This is used by commands that need store access without full shared setup,
// which would otherwise demand an organization key and server URL.
func historySetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get history-related config values
	backend := schema.DatabaseBackend(viper.GetString("history-backend"))
	connStr := viper.GetString("history-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	rows := viper.GetInt("history-rows")
	if rows <= 0 || rows > contract.MaxHistoryRows {
		return fmt.Errorf("history-rows must be between 1 and %d (received %d)", contract.MaxHistoryRows, rows)
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	cfg.HistoryRows = rows

	// Output-related values used by the list and status printers.
	cfg.Output = schema.OutputMode(viper.GetString("output"))
	cfg.OutputFile = viper.GetString("output-file")

	return nil
}

// historySetupWrapper wraps historySetup to provide PreRunE for history commands.
func historySetupWrapper(_ *cobra.Command, _ []string) error {
	return historySetup()
}

// historyMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT open the store or create tables,
// allowing migrations to run on a fresh database.
func historyMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(viper.GetString("history-backend"))
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

// openHistoryStore opens the configured run-history store or exits.
func openHistoryStore() *runstore.Store {
	store, err := runstore.NewStore(cfg.HistoryBackend, cfg.HistoryDBConnect)
	if err != nil {
		contract.LogFatal("Failed to open run history store", err)
	}
	return store
}

// historyCmd focused on run-history management.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage recorded report runs",
	Long: `Manage the run history that sonarsheet records for every collection.

When enabled, sonarsheet stores one row per report run: start and end
timestamps, the organization key, configuration parameters and how many
projects were collected. This makes it easy to see when an organization
was last checked and how collection times evolve.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  list    - Show recent runs
  status  - Show store statistics and connection info
  clear   - Remove all recorded runs
  migrate - Run database schema migrations

Examples:
  # Show the last ten runs
  sonarsheet history list

  # Check where runs are stored
  sonarsheet history status`,
}

// historyListCmd lists recent runs.
var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show recent report runs, newest first",
	Long: `List recorded report runs from the configured backend, newest first.

Each row shows the run ID, organization key, start time, collection
duration and the number of projects collected. Use --history-rows to
control how many runs are shown.

Examples:
  # Last ten runs (default)
  sonarsheet history list

  # Last fifty runs as JSON
  sonarsheet history list --history-rows 50 --output json`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := openHistoryStore()
		defer func() { _ = store.Close() }()

		runs, err := store.ListRuns(cfg.HistoryRows)
		if err != nil {
			contract.LogFatal("Failed to list runs", err)
		}
		if err := outwriter.PrintRuns(runs, cfg); err != nil {
			contract.LogFatal("Failed to print runs", err)
		}
	},
}

// historyClearCmd clears the run history.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded report runs",
	Long: `Delete all recorded runs from the configured backend.

WARNING: This action cannot be undone.

Examples:
  # Clear SQLite history (default)
  sonarsheet history clear

  # Clear MySQL history (set connection string via env variable)
  SONARSHEET_HISTORY_BACKEND=mysql SONARSHEET_HISTORY_DB_CONNECT="..." sonarsheet history clear`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := openHistoryStore()
		defer func() { _ = store.Close() }()

		if err := store.Clear(); err != nil {
			contract.LogFatal("Failed to clear run history", err)
		}
		fmt.Println("Run history cleared successfully.")
	},
}

// historyStatusCmd shows run-history store status.
var historyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display run-history statistics and connection details",
	Long: `Show detailed information about the run-history store.

Displays:
- Backend type and connection status
- Total number of recorded runs
- Last and oldest run timestamps

Examples:
  # Check run-history status
  sonarsheet history status`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := openHistoryStore()
		defer func() { _ = store.Close() }()

		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get run-history status", err)
		}
		if err := outwriter.PrintRunStatus(status, cfg); err != nil {
			contract.LogFatal("Failed to print run-history status", err)
		}
	},
}

// historyMigrateCmd runs database migrations for the run-history store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the run-history store.

By default, migrates to the latest version. Use --target-version for
specific versions.

Examples:
  # Migrate to latest version (default)
  sonarsheet history migrate

  # Migrate to specific version
  sonarsheet history migrate --target-version 1

  # Rollback to initial state
  sonarsheet history migrate --target-version 0`,
	PreRunE: historyMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := runstore.Migrate(cfg.HistoryBackend, cfg.HistoryDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
