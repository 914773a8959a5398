package server

import (
	"fmt"
	"os"
	"path/filepath"
)

// Workspace is a scratch directory for one upload job: the uploaded input
// file plus the report output directory. It is removed after the job's
// archive has been produced, whether or not processing succeeded.
type Workspace struct {
	root string
}

// NewWorkspace creates a fresh scratch directory for a job.
func NewWorkspace() (*Workspace, error) {
	root, err := os.MkdirTemp("", "burstaudit-*")
	if err != nil {
		return nil, fmt.Errorf("could not create workspace: %w", err)
	}
	ws := &Workspace{root: root}
	if err := os.Mkdir(ws.OutputDir(), 0o755); err != nil {
		_ = ws.Close()
		return nil, fmt.Errorf("could not create workspace output dir: %w", err)
	}
	return ws, nil
}

// InputPath returns where the uploaded file should be stored, keeping the
// original base name so its extension drives format detection.
func (w *Workspace) InputPath(filename string) string {
	return filepath.Join(w.root, filepath.Base(filename))
}

// OutputDir returns the directory reports are written into.
func (w *Workspace) OutputDir() string {
	return filepath.Join(w.root, "results")
}

// Close removes the workspace and everything in it.
func (w *Workspace) Close() error {
	return os.RemoveAll(w.root)
}
