// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import "github.com/burstaudit/burstaudit/schema"

// RunStore defines the interface for recording completed processing runs.
// This allows the run history layer to be mocked for testing.
type RunStore interface {
	// RecordRun persists one completed run and returns its unique ID.
	RecordRun(result *schema.RunResult) (int64, error)

	// ListRuns returns the most recent runs, newest first.
	ListRuns(limit int) ([]schema.RunRecord, error)

	// GetStatus returns status information about the run history store.
	GetStatus() (schema.RunLogStatus, error)

	// Clear removes all recorded runs.
	Clear() error

	// Close closes the underlying connection.
	Close() error
}
