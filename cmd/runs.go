package cmd

import (
	"fmt"

	"github.com/burstaudit/burstaudit/internal/contract"
	"github.com/burstaudit/burstaudit/internal/runlog"
	"github.com/burstaudit/burstaudit/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// runsSetup loads minimal configuration needed for run history operations.
// This is used by commands that need the store without full shared setup.
func runsSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get run-history-related config values
	backend := schema.DatabaseBackend(viper.GetString("runs-backend"))
	connStr := viper.GetString("runs-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	store, err := runlog.NewStore(backend, connStr)
	if err != nil {
		return fmt.Errorf("failed to initialize run history: %w", err)
	}
	runStore = store

	cfg.RunBackend = backend
	cfg.RunDBConnect = connStr
	cfg.RunLimit = viper.GetInt("runs-limit")
	if cfg.RunLimit <= 0 {
		cfg.RunLimit = contract.DefaultRunLimit
	}

	return nil
}

// runsSetupWrapper wraps runsSetup to provide PreRunE for runs commands.
func runsSetupWrapper(_ *cobra.Command, _ []string) error {
	return runsSetup()
}

// runsCmd groups run history management.
//
// Note: Runs subcommands use minimal initialization (runsSetup) instead of
// the full sharedSetup used by processing commands. This skips output and
// archive validation that run history operations never need.
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Manage the history of completed processing runs",
	Long: `Inspect and manage the record of completed processing runs.

Every process, serve and MCP run is recorded with its input file, number of
reports written, total group count and duration.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status - Show run history statistics and connection info
  list   - Show the most recent runs
  clear  - Remove all recorded runs

Examples:
  # Check run history status
  burstaudit runs status

  # Show the last 5 runs
  burstaudit runs list --runs-limit 5`,
}

// runsStatusCmd shows run history status.
var runsStatusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Display run history statistics and connection details",
	PreRunE: runsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := runStore.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get run history status", err)
		}
		runlog.PrintStatus(status)
	},
}

// runsListCmd lists recent runs.
var runsListCmd = &cobra.Command{
	Use:     "list",
	Short:   "Show the most recent processing runs",
	PreRunE: runsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		records, err := runStore.ListRuns(cfg.RunLimit)
		if err != nil {
			contract.LogFatal("Failed to list runs", err)
		}
		runlog.PrintRuns(records)
	},
}

// runsClearCmd clears the run history.
var runsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded runs",
	Long: `Delete all recorded runs from the configured backend.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the table's rows

Examples:
  # Clear the default SQLite history
  burstaudit runs clear`,
	PreRunE: runsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runStore.Clear(); err != nil {
			contract.LogFatal("Failed to clear run history", err)
		}
		fmt.Println("Run history cleared successfully.")
	},
}
