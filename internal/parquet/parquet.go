// Package parquet exports run summaries to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/burstaudit/burstaudit/schema"
	"github.com/parquet-go/parquet-go"
)

// GroupRecord is one (learner, day) group of a processing run, flattened
// for columnar export. Qualified groups carry their report filename;
// ReportFile is nullable for groups below the threshold.
type GroupRecord struct {
	// InputFile is the dataset the run was processed from
	InputFile string `parquet:"input_file,snappy"`

	// StartedAt is when the run began (TIMESTAMP with nanosecond precision)
	StartedAt time.Time `parquet:"started_at,snappy"`

	// LearnerID is the group's learner identifier
	LearnerID string `parquet:"learner_id,snappy"`

	// CompletionDate is the canonical date string of the group
	CompletionDate string `parquet:"completion_date,snappy"`

	// RowCount is the number of activity rows in the group
	RowCount int32 `parquet:"row_count,snappy"`

	// TotalDuration is the summed activity duration of the group
	TotalDuration float64 `parquet:"total_duration,snappy"`

	// Qualified marks groups that exceeded the burst threshold
	Qualified bool `parquet:"qualified,snappy"`

	// ReportFile is the emitted report filename (nullable)
	ReportFile *string `parquet:"report_file,optional,snappy"`
}

// ExportRunSummary writes every group of the run to a Parquet file.
func ExportRunSummary(outputPath string, result *schema.RunResult) error {
	return WriteGroupRecordsParquet(ConvertGroupSummaries(result), outputPath)
}

// ConvertGroupSummaries converts a run result's group summaries to
// GroupRecords for Parquet export.
func ConvertGroupSummaries(result *schema.RunResult) []GroupRecord {
	records := make([]GroupRecord, len(result.Groups))
	for i, g := range result.Groups {
		rec := GroupRecord{
			InputFile:      result.InputFile,
			StartedAt:      result.StartedAt,
			LearnerID:      g.LearnerID,
			CompletionDate: g.Date,
			RowCount:       int32(g.RowCount),
			TotalDuration:  g.TotalDuration,
			Qualified:      g.Qualified,
		}
		if g.ReportFile != "" {
			file := g.ReportFile
			rec.ReportFile = &file
		}
		records[i] = rec
	}
	return records
}

// WriteGroupRecordsParquet writes a slice of GroupRecord structs to a
// Parquet file. The schema is derived from the struct tags.
func WriteGroupRecordsParquet(data []GroupRecord, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[GroupRecord](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return nil
}
