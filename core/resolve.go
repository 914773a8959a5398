package core

import (
	"strings"

	"github.com/burstaudit/burstaudit/schema"
)

// ResolveColumns maps every logical column to a physical column of the
// table. Required columns fail with a ColumnNotFoundError when no header
// matches; the transcript status column is resolved leniently and left
// empty when absent, which skips the filter stage downstream.
func ResolveColumns(t *schema.Table) (*schema.ResolvedColumns, error) {
	resolved := make(map[schema.LogicalColumn]string, len(schema.RequiredColumns))
	for _, logical := range schema.RequiredColumns {
		name, err := FindColumn(t.Columns, schema.ColumnCandidates[logical])
		if err != nil {
			return nil, err
		}
		resolved[logical] = name
	}

	cols := &schema.ResolvedColumns{
		LearnerName: resolved[schema.LearnerNameColumn],
		LearnerID:   resolved[schema.LearnerIDColumn],
		Date:        resolved[schema.CompletionDateColumn],
		Duration:    resolved[schema.ActivityDurationColumn],
		Title:       resolved[schema.ActivityTitleColumn],
		ActivityID:  resolved[schema.ActivityIDColumn],
	}

	// Lenient pass: a missing transcript column is not an error.
	if name, err := FindColumn(t.Columns, schema.ColumnCandidates[schema.TranscriptColumn]); err == nil {
		cols.Transcript = name
	}

	return cols, nil
}

// FindColumn resolves an ordered candidate list against the table headers.
// Pass one matches case-insensitively in candidate order. Pass two strips
// all whitespace from both sides and compares case-insensitively; the
// first table column (in table order) matching any candidate wins.
func FindColumn(columns []string, candidates []string) (string, error) {
	for _, cand := range candidates {
		for _, col := range columns {
			if strings.EqualFold(col, cand) {
				return col, nil
			}
		}
	}

	for _, col := range columns {
		for _, cand := range candidates {
			if stripSpace(col) == stripSpace(cand) {
				return col, nil
			}
		}
	}

	return "", &schema.ColumnNotFoundError{
		Candidates: append([]string(nil), candidates...),
		Available:  append([]string(nil), columns...),
	}
}

// stripSpace removes every whitespace run and lowercases, so header
// variants like "Learner -ID" and "learner - id" compare equal.
func stripSpace(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), ""))
}
