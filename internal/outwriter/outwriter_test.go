package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"

	"github.com/burstaudit/burstaudit/internal/contract"
	"github.com/burstaudit/burstaudit/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *schema.RunResult {
	return &schema.RunResult{
		InputFile:    "export.csv",
		OutputDir:    "results",
		RowsLoaded:   72,
		RowsRetained: 70,
		GroupsTotal:  2,
		FilesWritten: 1,
		Groups: []schema.GroupSummary{
			{
				LearnerID:     "L1",
				Date:          "2024-01-05",
				RowCount:      60,
				TotalDuration: 120,
				Qualified:     true,
				ReportFile:    "learner_L1_2024-01-05.xlsx",
			},
			{
				LearnerID:     "L2",
				Date:          "2024-01-05",
				RowCount:      10,
				TotalDuration: 10,
			},
		},
	}
}

func TestWriteSummaryCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeSummaryCSV(&buf, sampleResult(), createFormatter(1)))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{
		"learner_id", "completion_date", "row_count", "total_duration",
		"severity", "qualified", "report_file",
	}, records[0])
	assert.Equal(t, []string{
		"L1", "2024-01-05", "60", "120.0", contract.ElevatedValue, "true", "learner_L1_2024-01-05.xlsx",
	}, records[1])
	assert.Equal(t, []string{
		"L2", "2024-01-05", "10", "10.0", contract.NormalValue, "false", "",
	}, records[2])
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, sampleResult()))

	var decoded schema.RunResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 1, decoded.FilesWritten)
	require.Len(t, decoded.Groups, 2)
	assert.Equal(t, "learner_L1_2024-01-05.xlsx", decoded.Groups[0].ReportFile)
	assert.Empty(t, decoded.Groups[1].ReportFile)
}

func TestWriteSummaryTable(t *testing.T) {
	cfg := &contract.Config{Width: 120}

	var buf bytes.Buffer
	require.NoError(t, writeSummaryTable(&buf, sampleResult(), cfg, createFormatter(1)))

	out := buf.String()
	// Only the qualifying group is listed.
	assert.Contains(t, out, "L1")
	assert.Contains(t, out, "learner_L1_2024-01-05.xlsx")
	assert.NotContains(t, out, "L2")
	assert.Contains(t, out, "Wrote 1 report(s) for 2 group(s) (70 of 72 rows retained)")
}

func TestWriteSummaryTable_NoQualifyingGroups(t *testing.T) {
	result := sampleResult()
	result.Groups = result.Groups[1:]
	result.FilesWritten = 0
	result.ArchiveFile = "results.zip"

	var buf bytes.Buffer
	require.NoError(t, writeSummaryTable(&buf, result, &contract.Config{Width: 120}, createFormatter(1)))

	out := buf.String()
	assert.Contains(t, out, "Wrote 0 report(s)")
	assert.Contains(t, out, "Bundled results into results.zip")
}

func TestCreateFormatter(t *testing.T) {
	assert.Equal(t, "1.5", createFormatter(1)(1.5))
	assert.Equal(t, "2", createFormatter(0)(1.5)) // round half to even
	assert.Equal(t, "1.500", createFormatter(3)(1.5))
}
