package core

import (
	"fmt"
	"os"

	"github.com/burstaudit/burstaudit/internal/report"
	"github.com/burstaudit/burstaudit/internal/tabular"
	"github.com/burstaudit/burstaudit/schema"
)

// Process runs the pipeline for one input file: load, resolve, filter,
// group, then write one report per qualifying group into outputDir. The
// directory is created if absent. Loader and resolver errors are fatal
// and happen before any file is written; a run where no group qualifies
// returns a result with zero files, not an error.
func Process(inputPath, outputDir string) (*schema.RunResult, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("could not create output directory %s: %w", outputDir, err)
	}

	table, err := tabular.Load(inputPath)
	if err != nil {
		return nil, err
	}

	cols, err := ResolveColumns(table)
	if err != nil {
		return nil, err
	}

	filtered := FilterCompleted(table, cols.Transcript)
	canonical := CanonicalizeDates(filtered, cols.Date)
	groups := BuildGroups(canonical, cols)

	result := &schema.RunResult{
		InputFile:    inputPath,
		OutputDir:    outputDir,
		RowsLoaded:   len(table.Rows),
		RowsRetained: len(filtered.Rows),
		GroupsTotal:  len(groups),
	}

	for _, g := range groups {
		summary := schema.GroupSummary{
			LearnerID:     g.Key.LearnerID,
			Date:          g.Key.Date,
			RowCount:      len(g.Rows),
			TotalDuration: g.TotalDuration,
		}
		if g.Qualifies() {
			rep := BuildReport(canonical, cols, g)
			if err := report.WriteReport(outputDir, rep); err != nil {
				return nil, fmt.Errorf("could not write report for learner %s on %s: %w",
					g.Key.LearnerID, g.Key.Date, err)
			}
			summary.Qualified = true
			summary.ReportFile = rep.FileName
			result.FilesWritten++
		}
		result.Groups = append(result.Groups, summary)
	}

	return result, nil
}

// BuildReport projects a group's rows onto the fixed output column set
// [Title, Learner ID, Activity ID, Duration, Completion Date], using the
// resolved physical header names. Duration cells are coerced to numbers
// (non-numeric becomes zero) so the emitted column always sums to the
// TOTAL row, which the writer appends.
func BuildReport(t *schema.Table, cols *schema.ResolvedColumns, g *schema.Group) *schema.Report {
	headers := []string{cols.Title, cols.LearnerID, cols.ActivityID, cols.Duration, cols.Date}
	indexes := make([]int, len(headers))
	for i, h := range headers {
		indexes[i] = t.Index(h)
	}

	rows := make([][]any, 0, len(g.Rows))
	for _, src := range g.Rows {
		row := make([]any, len(indexes))
		for i, idx := range indexes {
			if i == schema.ReportDurationIndex {
				row[i] = CoerceDuration(src[idx])
			} else {
				row[i] = src[idx]
			}
		}
		rows = append(rows, row)
	}

	return &schema.Report{
		Key:      g.Key,
		FileName: schema.ReportFileName(g.Key),
		Headers:  headers,
		Rows:     rows,
		Total:    g.TotalDuration,
	}
}
