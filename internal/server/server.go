// Package server exposes the processing pipeline over HTTP: clients upload
// an activity export and download the bundled reports for their job.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/burstaudit/burstaudit/core"
	"github.com/burstaudit/burstaudit/internal/bundle"
	"github.com/burstaudit/burstaudit/internal/contract"
	"github.com/burstaudit/burstaudit/schema"
	"github.com/google/uuid"
)

// maxUploadBytes caps multipart uploads at 256 MiB.
const maxUploadBytes = 256 << 20

const archiveName = "results.zip"

// Server handles upload jobs. Each job gets a UUID, a scratch workspace for
// processing, and a persisted archive under jobsDir for later download.
type Server struct {
	cfg     *contract.Config
	store   contract.RunStore
	jobsDir string
}

// ProcessResponse is the JSON body returned for a completed upload job.
type ProcessResponse struct {
	JobID        string                `json:"job_id"`
	InputFile    string                `json:"input_file"`
	RowsLoaded   int                   `json:"rows_loaded"`
	RowsRetained int                   `json:"rows_retained"`
	GroupsTotal  int                   `json:"groups_total"`
	FilesWritten int                   `json:"files_written"`
	Groups       []schema.GroupSummary `json:"groups"`
	DownloadURL  string                `json:"download_url"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewServer builds a Server, creating the jobs directory if needed.
func NewServer(cfg *contract.Config, store contract.RunStore) (*Server, error) {
	jobsDir := cfg.JobsDir
	if jobsDir == "" {
		jobsDir = filepath.Join(os.TempDir(), "burstaudit-jobs")
	}
	if err := os.MkdirAll(jobsDir, 0o755); err != nil {
		return nil, fmt.Errorf("could not create jobs directory %s: %w", jobsDir, err)
	}
	return &Server{cfg: cfg, store: store, jobsDir: jobsDir}, nil
}

// Handler returns the HTTP routes for the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/process", s.handleProcess)
	mux.HandleFunc("GET /api/v1/download/{job}/"+archiveName, s.handleDownload)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return mux
}

// ListenAndServe starts the HTTP server on the configured address.
func (s *Server) ListenAndServe() error {
	srv := &http.Server{
		Addr:              s.cfg.ListenAddr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	fmt.Fprintf(os.Stderr, "Listening on %s\n", s.cfg.ListenAddr)
	return srv.ListenAndServe()
}

// handleProcess accepts a multipart upload, runs the pipeline on it and
// returns the per-group summary plus a download link for the archive.
func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing multipart field \"file\"")
		return
	}
	defer func() { _ = file.Close() }()

	start := time.Now()
	ws, err := NewWorkspace()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer func() { _ = ws.Close() }()

	inputPath := ws.InputPath(header.Filename)
	if err := saveUpload(file, inputPath); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	result, err := core.Process(inputPath, ws.OutputDir())
	if err != nil {
		var unsupported *schema.UnsupportedFormatError
		if errors.As(err, &unsupported) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	result.StartedAt = start
	result.Duration = time.Since(start)

	jobID := uuid.New().String()
	archivePath := filepath.Join(s.jobsDir, jobID+".zip")
	if err := bundle.ZipDirectory(ws.OutputDir(), archivePath); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	result.ArchiveFile = archivePath

	if s.store != nil {
		if _, err := s.store.RecordRun(result); err != nil {
			contract.LogWarn("could not record run history", err)
		}
	}

	resp := ProcessResponse{
		JobID:        jobID,
		InputFile:    header.Filename,
		RowsLoaded:   result.RowsLoaded,
		RowsRetained: result.RowsRetained,
		GroupsTotal:  result.GroupsTotal,
		FilesWritten: result.FilesWritten,
		Groups:       result.Groups,
		DownloadURL:  fmt.Sprintf("/api/v1/download/%s/%s", jobID, archiveName),
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleDownload streams a job's archive back to the client.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("job")
	if _, err := uuid.Parse(jobID); err != nil {
		writeError(w, http.StatusBadRequest, "invalid job id")
		return
	}

	archivePath := filepath.Join(s.jobsDir, jobID+".zip")
	if _, err := os.Stat(archivePath); err != nil {
		writeError(w, http.StatusNotFound, "job not found")
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", archiveName))
	http.ServeFile(w, r, archivePath)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, "ok\n")
}

func saveUpload(src io.Reader, dst string) error {
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("could not store upload: %w", err)
	}
	defer func() { _ = out.Close() }()
	if _, err := io.Copy(out, src); err != nil {
		return fmt.Errorf("could not store upload: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: strings.TrimSpace(msg)})
}
