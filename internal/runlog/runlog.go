// Package runlog records completed processing runs in a durable store.
package runlog

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/burstaudit/burstaudit/internal/contract"
	"github.com/burstaudit/burstaudit/schema"
	_ "github.com/go-sql-driver/mysql"  // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib"  // PostgreSQL driver
	_ "modernc.org/sqlite"              // SQLite driver
)

const runsTable = "burstaudit_runs"

// StoreImpl handles run history storage using various database backends.
type StoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
	dbPath  string // set for the SQLite backend only
}

var _ contract.RunStore = &StoreImpl{} // Compile-time check

// NewStore initializes and returns a run history store for the backend.
func NewStore(backend schema.DatabaseBackend, connStr string) (contract.RunStore, error) {
	var db *sql.DB
	var err error
	var dbPath string

	switch backend {
	case schema.SQLiteBackend:
		dbPath = connStr
		if dbPath == "" {
			dbPath = contract.GetRunLogDBPath()
		}
		db, err = sql.Open("sqlite", dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite run history at %q: %w. Check that the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		// connStr should be: user:password@tcp(host:port)/dbname
		db, err = sql.Open("mysql", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MySQL run history: %w. Check connection format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		// connStr should be: host=localhost port=5432 user=postgres dbname=mydb
		db, err = sql.Open("pgx", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL run history: %w. Check connection format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}

	case schema.NoneBackend:
		// Return a no-op store for disabled history
		return &StoreImpl{db: nil, backend: backend}, nil

	default:
		return nil, fmt.Errorf("unsupported runs backend: %s. Must be sqlite, mysql, postgresql, or none", backend)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database. Check that the server is running and connection parameters are valid: %w", backend, err)
	}

	if _, err := db.Exec(getCreateTableQuery(backend)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", runsTable, err)
	}

	return &StoreImpl{db: db, backend: backend, dbPath: dbPath}, nil
}

// getCreateTableQuery returns the CREATE TABLE query for the given backend.
func getCreateTableQuery(backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				input_file VARCHAR(1024) NOT NULL,
				files_written INT NOT NULL,
				groups_total INT NOT NULL,
				run_duration_ms BIGINT NOT NULL,
				started_at BIGINT NOT NULL
			);
		`, runsTable)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGSERIAL PRIMARY KEY,
				input_file TEXT NOT NULL,
				files_written INTEGER NOT NULL,
				groups_total INTEGER NOT NULL,
				run_duration_ms BIGINT NOT NULL,
				started_at BIGINT NOT NULL
			);
		`, runsTable)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER PRIMARY KEY AUTOINCREMENT,
				input_file TEXT NOT NULL,
				files_written INTEGER NOT NULL,
				groups_total INTEGER NOT NULL,
				run_duration_ms INTEGER NOT NULL,
				started_at INTEGER NOT NULL
			);
		`, runsTable)
	}
}

// RecordRun persists one completed run and returns its unique ID.
func (s *StoreImpl) RecordRun(result *schema.RunResult) (int64, error) {
	if s.backend == schema.NoneBackend || s.db == nil {
		return 0, nil
	}

	startedAt := result.StartedAt
	if startedAt.IsZero() {
		startedAt = time.Now()
	}
	args := []any{
		result.InputFile,
		result.FilesWritten,
		result.GroupsTotal,
		result.Duration.Milliseconds(),
		startedAt.Unix(),
	}

	// PostgreSQL has no LastInsertId; use RETURNING there.
	if s.backend == schema.PostgreSQLBackend {
		query := fmt.Sprintf(`INSERT INTO %s (input_file, files_written, groups_total, run_duration_ms, started_at)
			VALUES ($1, $2, $3, $4, $5) RETURNING run_id`, runsTable)
		var id int64
		if err := s.db.QueryRow(query, args...).Scan(&id); err != nil {
			return 0, fmt.Errorf("failed to record run: %w", err)
		}
		return id, nil
	}

	query := fmt.Sprintf(`INSERT INTO %s (input_file, files_written, groups_total, run_duration_ms, started_at)
		VALUES (?, ?, ?, ?, ?)`, runsTable)
	res, err := s.db.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to record run: %w", err)
	}
	return res.LastInsertId()
}

// ListRuns returns the most recent runs, newest first.
func (s *StoreImpl) ListRuns(limit int) ([]schema.RunRecord, error) {
	if s.backend == schema.NoneBackend || s.db == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = contract.DefaultRunLimit
	}

	placeholder := "?"
	if s.backend == schema.PostgreSQLBackend {
		placeholder = "$1"
	}
	query := fmt.Sprintf(`SELECT run_id, input_file, files_written, groups_total, run_duration_ms, started_at
		FROM %s ORDER BY run_id DESC LIMIT %s`, runsTable, placeholder)

	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []schema.RunRecord
	for rows.Next() {
		var rec schema.RunRecord
		var startedAt int64
		if err := rows.Scan(&rec.RunID, &rec.InputFile, &rec.FilesWritten, &rec.GroupsTotal, &rec.RunDurationMs, &startedAt); err != nil {
			return nil, err
		}
		rec.StartedAt = time.Unix(startedAt, 0)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// GetStatus returns status information about the run history store.
func (s *StoreImpl) GetStatus() (schema.RunLogStatus, error) {
	status := schema.RunLogStatus{
		Backend:   string(s.backend),
		Connected: s.db != nil,
	}
	if s.backend == schema.NoneBackend || s.db == nil {
		return status, nil
	}

	row := s.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", runsTable))
	if err := row.Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}
	if status.TotalRuns == 0 {
		return status, nil
	}

	row = s.db.QueryRow(fmt.Sprintf("SELECT MAX(started_at) FROM %s", runsTable))
	var lastTs int64
	if err := row.Scan(&lastTs); err != nil {
		return status, fmt.Errorf("failed to get last run time: %w", err)
	}
	status.LastRunTime = time.Unix(lastTs, 0)
	return status, nil
}

// Clear removes all recorded runs. For SQLite the database file itself is
// deleted; server backends keep the table and drop its rows.
func (s *StoreImpl) Clear() error {
	if s.backend == schema.NoneBackend || s.db == nil {
		return nil
	}

	if s.backend == schema.SQLiteBackend {
		if err := s.db.Close(); err != nil {
			return err
		}
		s.db = nil
		if err := os.Remove(s.dbPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove run history file: %w", err)
		}
		return nil
	}

	if _, err := s.db.Exec(fmt.Sprintf("DELETE FROM %s", runsTable)); err != nil {
		return fmt.Errorf("failed to clear run history: %w", err)
	}
	return nil
}

// Close closes the underlying DB connection.
func (s *StoreImpl) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
