package core

import (
	"strings"

	"github.com/burstaudit/burstaudit/schema"
)

// FilterCompleted retains only rows whose transcript status normalizes to
// "completed". Rows are dropped, never mutated. When statusCol is empty
// (no transcript column was resolved) the table passes through unchanged.
func FilterCompleted(t *schema.Table, statusCol string) *schema.Table {
	if statusCol == "" {
		return t
	}
	idx := t.Index(statusCol)
	if idx < 0 {
		return t
	}

	kept := make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		if normalizeStatus(row[idx]) == schema.CompletedStatus {
			kept = append(kept, row)
		}
	}
	return &schema.Table{Columns: t.Columns, Rows: kept}
}

func normalizeStatus(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
