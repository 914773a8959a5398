package contract

import (
	"fmt"

	"github.com/burstaudit/burstaudit/schema"
)

// Default values for configuration.
const (
	DefaultPrecision  = 1
	DefaultRunLimit   = 20
	MaxRunLimit       = 1000
	DefaultListenAddr = ":8080"
)

// Config holds the validated runtime configuration. Simple fields are
// copied straight from the raw input; fields that need parsing (booleans,
// enums) are set by ProcessAndValidate.
type Config struct {
	Output       schema.OutputMode       // Run summary format: text, csv, json, parquet
	OutputFile   string                  // Optional path for the run summary (stdout when empty)
	Precision    int                     // Decimal precision for duration columns
	Color        bool                    // Colored severity labels in the text table
	Width        int                     // Terminal width override (0 = auto-detect)
	Archive      bool                    // Bundle the output directory into a zip after a run
	ArchiveFile  string                  // Optional explicit archive path
	RunBackend   schema.DatabaseBackend  // Run history backend
	RunDBConnect string                  // Connection string for mysql/postgresql run history
	RunLimit     int                     // Number of history rows to show
	ListenAddr   string                  // Bind address for serve mode
	JobsDir      string                  // Directory holding per-job archives in serve mode
}

// ConfigRawInput holds the raw values merged by Viper from defaults, the
// config file, environment and flags, before validation.
type ConfigRawInput struct {
	Output       string `mapstructure:"output"`
	OutputFile   string `mapstructure:"output-file"`
	Precision    int    `mapstructure:"precision"`
	Color        string `mapstructure:"color"`
	Width        int    `mapstructure:"width"`
	Archive      bool   `mapstructure:"archive"`
	ArchiveFile  string `mapstructure:"archive-file"`
	RunBackend   string `mapstructure:"runs-backend"`
	RunDBConnect string `mapstructure:"runs-db-connect"`
	RunLimit     int    `mapstructure:"runs-limit"`
	ListenAddr   string `mapstructure:"listen"`
	JobsDir      string `mapstructure:"jobs-dir"`
}

// ProcessAndValidate performs all parsing and validation on the raw
// inputs and populates the final Config.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	// --- 1. Output mode ---
	cfg.Output = schema.OutputMode(input.Output)
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format %q. must be text, csv, json, parquet", input.Output)
	}
	cfg.OutputFile = input.OutputFile
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	// --- 2. Precision ---
	if input.Precision < 0 || input.Precision > 3 {
		return fmt.Errorf("precision must be between 0 and 3 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	// --- 3. Color ---
	colorOn, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid color setting: %w", err)
	}
	cfg.Color = colorOn

	// --- 4. Width ---
	if input.Width < 0 {
		return fmt.Errorf("width cannot be negative (received %d)", input.Width)
	}
	cfg.Width = input.Width

	// --- 5. Archive ---
	cfg.Archive = input.Archive
	cfg.ArchiveFile = input.ArchiveFile
	if cfg.ArchiveFile != "" {
		cfg.Archive = true
	}

	// --- 6. Run history backend ---
	cfg.RunBackend = schema.DatabaseBackend(input.RunBackend)
	if _, ok := schema.ValidRunLogBackends[cfg.RunBackend]; !ok {
		return fmt.Errorf("invalid runs backend %q. must be sqlite, mysql, postgresql, none", input.RunBackend)
	}
	cfg.RunDBConnect = input.RunDBConnect
	if err := ValidateDatabaseConnectionString(cfg.RunBackend, cfg.RunDBConnect); err != nil {
		return err
	}

	if input.RunLimit <= 0 || input.RunLimit > MaxRunLimit {
		return fmt.Errorf("runs-limit must be greater than 0 and cannot exceed %d (received %d)", MaxRunLimit, input.RunLimit)
	}
	cfg.RunLimit = input.RunLimit

	// --- 7. Serve mode ---
	cfg.ListenAddr = input.ListenAddr
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = DefaultListenAddr
	}
	cfg.JobsDir = input.JobsDir

	return nil
}

// ValidateDatabaseConnectionString checks that server-backed run history
// backends come with a connection string. SQLite falls back to a file in
// the home directory and needs none.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("mysql runs backend requires --runs-db-connect (user:password@tcp(host:port)/dbname)")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("postgresql runs backend requires --runs-db-connect (host=... port=... user=... dbname=...)")
		}
	}
	return nil
}
