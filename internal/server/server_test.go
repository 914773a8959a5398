package server

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/burstaudit/burstaudit/internal/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := &contract.Config{JobsDir: t.TempDir()}
	srv, err := NewServer(cfg, nil)
	require.NoError(t, err)
	return srv
}

func uploadRequest(t *testing.T, filename string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/process", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

// burstCSV builds an export with 51 completed rows for one learner on one
// day, enough for exactly one report.
func burstCSV(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	require.NoError(t, w.Write([]string{
		"Learner - Name", "Learner - ID", "Completion Date",
		"Learning activity - Duration", "Learning activity - Title",
		"Learning activity - ID", "Transcript status",
	}))
	for i := 0; i < 51; i++ {
		require.NoError(t, w.Write([]string{
			"Learner One", "L1", "2024-01-05", "2",
			fmt.Sprintf("Course %d", i), fmt.Sprintf("ACT-%d", i), "Completed",
		}))
	}
	w.Flush()
	require.NoError(t, w.Error())
	return buf.Bytes()
}

func TestServer_ProcessAndDownload(t *testing.T) {
	srv := newTestServer(t)
	handler := srv.Handler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, uploadRequest(t, "export.csv", burstCSV(t)))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ProcessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.JobID)
	assert.Equal(t, "export.csv", resp.InputFile)
	assert.Equal(t, 51, resp.RowsLoaded)
	assert.Equal(t, 1, resp.FilesWritten)
	require.Len(t, resp.Groups, 1)
	assert.Equal(t, "learner_L1_2024-01-05.xlsx", resp.Groups[0].ReportFile)
	assert.Equal(t, "/api/v1/download/"+resp.JobID+"/results.zip", resp.DownloadURL)

	// Download the archive and check its contents.
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, resp.DownloadURL, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/zip", rec.Header().Get("Content-Type"))

	data, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, zr.File, 1)
	assert.Equal(t, "learner_L1_2024-01-05.xlsx", zr.File[0].Name)
}

func TestServer_ProcessUnsupportedExtension(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, uploadRequest(t, "export.txt", []byte("nope")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unsupported file type")
}

func TestServer_ProcessBadColumns(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, uploadRequest(t, "export.csv", []byte("A,B\n1,2\n")))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "candidate columns")
}

func TestServer_ProcessMissingFileField(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/process", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_DownloadUnknownJob(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	url := "/api/v1/download/00000000-0000-0000-0000-000000000000/results.zip"
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_DownloadInvalidJobID(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	url := "/api/v1/download/..%2Fescape/results.zip"
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
	assert.NotEqual(t, http.StatusOK, rec.Code)
}

func TestServer_Healthz(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok\n", rec.Body.String())
}
