// Package outwriter has output and writer logic for run summaries.
package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/burstaudit/burstaudit/internal/contract"
	"github.com/burstaudit/burstaudit/internal/parquet"
	"github.com/burstaudit/burstaudit/schema"
)

// WriteRunSummary emits the summary of a completed run, dispatching on
// the configured output format.
func WriteRunSummary(result *schema.RunResult, cfg *contract.Config) error {
	fmtFloat := createFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSummaryCSV(w, result, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		if err := parquet.ExportRunSummary(cfg.OutputFile, result); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Wrote Parquet to %s\n", cfg.OutputFile)
		return nil
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSummaryTable(w, result, cfg, fmtFloat)
		}, "Wrote table")
	}
}

// writeSummaryCSV writes one record per group, qualifying or not, so the
// output can be filtered downstream.
func writeSummaryCSV(w io.Writer, result *schema.RunResult, fmtFloat func(float64) string) error {
	header := []string{
		"learner_id",
		"completion_date",
		"row_count",
		"total_duration",
		"severity",
		"qualified",
		"report_file",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, g := range result.Groups {
			rec := []string{
				g.LearnerID,
				g.Date,
				fmt.Sprintf("%d", g.RowCount),
				fmtFloat(g.TotalDuration),
				contract.GetPlainLabel(g.RowCount),
				fmt.Sprintf("%t", g.Qualified),
				g.ReportFile,
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeWithFile handles the common pattern of opening a file, writing to
// it, and cleaning up.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "%s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVWithHeader creates a CSV writer, writes a header, then the rows.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	return writeRows(csvWriter)
}

// createFormatter builds the float formatter shared by the writers.
func createFormatter(precision int) func(float64) string {
	return func(v float64) string {
		return fmt.Sprintf("%.*f", precision, v)
	}
}
