package core

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/burstaudit/burstaudit/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var activityHeader = []string{
	"Learner - Name",
	"Learner - ID",
	"Completion Date",
	"Learning activity - Duration",
	"Learning activity - Title",
	"Learning activity - ID",
	"Transcript status",
}

func activityRow(learner, date, duration, status string, i int) []string {
	return []string{
		"Learner " + learner,
		learner,
		date,
		duration,
		fmt.Sprintf("Course %d", i),
		fmt.Sprintf("ACT-%d", i),
		status,
	}
}

func writeActivityCSV(t *testing.T, path string, rows [][]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	w := csv.NewWriter(f)
	require.NoError(t, w.Write(activityHeader))
	require.NoError(t, w.WriteAll(rows))
	w.Flush()
	require.NoError(t, w.Error())
	require.NoError(t, f.Close())
}

func writeActivityXLSX(t *testing.T, path string, rows [][]string) {
	t.Helper()
	f := excelize.NewFile()
	header := make([]any, len(activityHeader))
	for i, h := range activityHeader {
		header[i] = h
	}
	cell, err := excelize.CoordinatesToCellName(1, 1)
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Sheet1", cell, &header))
	for i, row := range rows {
		cells := make([]any, len(row))
		for j, v := range row {
			cells[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &cells))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
}

// burstRows builds 60 completed rows for L1 on one day (duration 2 each),
// 10 completed rows for L2, and a couple of non-completed rows that the
// filter must drop.
func burstRows() [][]string {
	var rows [][]string
	for i := 0; i < 60; i++ {
		rows = append(rows, activityRow("L1", "2024-01-05 09:30:00", "2", "Completed", i))
	}
	for i := 0; i < 10; i++ {
		rows = append(rows, activityRow("L2", "2024-01-05", "1", "Completed", i))
	}
	rows = append(rows, activityRow("L1", "2024-01-05", "99", "In Progress", 999))
	rows = append(rows, activityRow("L3", "2024-01-05", "99", "Withdrawn", 998))
	return rows
}

func TestProcess_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "export.csv")
	outputDir := filepath.Join(dir, "results")
	writeActivityCSV(t, input, burstRows())

	result, err := Process(input, outputDir)
	require.NoError(t, err)

	assert.Equal(t, 72, result.RowsLoaded)
	assert.Equal(t, 70, result.RowsRetained)
	assert.Equal(t, 2, result.GroupsTotal)
	assert.Equal(t, 1, result.FilesWritten)

	require.Len(t, result.Groups, 2)
	assert.Equal(t, "L1", result.Groups[0].LearnerID)
	assert.True(t, result.Groups[0].Qualified)
	assert.Equal(t, "learner_L1_2024-01-05.xlsx", result.Groups[0].ReportFile)
	assert.Equal(t, "L2", result.Groups[1].LearnerID)
	assert.False(t, result.Groups[1].Qualified)
	assert.Empty(t, result.Groups[1].ReportFile)

	// Exactly one report file on disk.
	entries, err := os.ReadDir(outputDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "learner_L1_2024-01-05.xlsx", entries[0].Name())

	// Read the report back: header, 60 data rows, TOTAL row.
	f, err := excelize.OpenFile(filepath.Join(outputDir, entries[0].Name()))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	require.Len(t, rows, 62)
	assert.Equal(t, []string{
		"Learning activity - Title",
		"Learner - ID",
		"Learning activity - ID",
		"Learning activity - Duration",
		"Completion Date",
	}, rows[0])

	// Dates are canonicalized in the emitted rows.
	assert.Equal(t, "2024-01-05", rows[1][4])

	total := rows[len(rows)-1]
	assert.Equal(t, schema.TotalLabel, total[schema.ReportTitleIndex])
	v, err := strconv.ParseFloat(total[schema.ReportDurationIndex], 64)
	require.NoError(t, err)
	assert.InDelta(t, 120.0, v, 1e-9)
}

func TestProcess_NoQualifyingGroups(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "export.csv")
	outputDir := filepath.Join(dir, "results")

	var rows [][]string
	for i := 0; i < 50; i++ { // at the threshold, not over it
		rows = append(rows, activityRow("L1", "2024-01-05", "1", "Completed", i))
	}
	writeActivityCSV(t, input, rows)

	result, err := Process(input, outputDir)
	require.NoError(t, err)
	assert.Equal(t, 0, result.FilesWritten)
	assert.Equal(t, 1, result.GroupsTotal)

	// The output directory exists and is empty.
	entries, err := os.ReadDir(outputDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestProcess_NoDataRows(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "export.csv")
	outputDir := filepath.Join(dir, "results")
	writeActivityCSV(t, input, nil)

	result, err := Process(input, outputDir)
	require.NoError(t, err)
	assert.Equal(t, 0, result.RowsLoaded)
	assert.Equal(t, 0, result.GroupsTotal)
	assert.Equal(t, 0, result.FilesWritten)
	assert.Empty(t, result.Groups)

	// The output directory is created even when nothing is written.
	entries, err := os.ReadDir(outputDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestProcess_UnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "export.txt")
	require.NoError(t, os.WriteFile(input, []byte("not tabular"), 0o644))

	_, err := Process(input, filepath.Join(dir, "results"))
	require.Error(t, err)

	var unsupported *schema.UnsupportedFormatError
	assert.ErrorAs(t, err, &unsupported)
}

func TestProcess_CSVAndXLSXAgree(t *testing.T) {
	dir := t.TempDir()
	rows := burstRows()

	csvPath := filepath.Join(dir, "export.csv")
	writeActivityCSV(t, csvPath, rows)
	xlsxPath := filepath.Join(dir, "export.xlsx")
	writeActivityXLSX(t, xlsxPath, rows)

	csvResult, err := Process(csvPath, filepath.Join(dir, "csv-results"))
	require.NoError(t, err)
	xlsxResult, err := Process(xlsxPath, filepath.Join(dir, "xlsx-results"))
	require.NoError(t, err)

	assert.Equal(t, csvResult.RowsLoaded, xlsxResult.RowsLoaded)
	assert.Equal(t, csvResult.RowsRetained, xlsxResult.RowsRetained)
	assert.Equal(t, csvResult.FilesWritten, xlsxResult.FilesWritten)
	assert.Equal(t, csvResult.Groups, xlsxResult.Groups)
}

func TestProcess_NaTBucket(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "export.csv")

	var rows [][]string
	for i := 0; i < 51; i++ {
		rows = append(rows, activityRow("L1", "never", "1", "Completed", i))
	}
	writeActivityCSV(t, input, rows)

	result, err := Process(input, filepath.Join(dir, "results"))
	require.NoError(t, err)
	require.Equal(t, 1, result.FilesWritten)
	assert.Equal(t, schema.NotADate, result.Groups[0].Date)
	assert.Equal(t, "learner_L1_NaT.xlsx", result.Groups[0].ReportFile)
}
