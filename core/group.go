package core

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/burstaudit/burstaudit/schema"
)

// dateLayouts are tried in order when parsing completion dates. Source
// exports carry anything from bare dates to full timestamps; only the
// calendar date matters for grouping.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
	"01/02/2006 15:04",
	"1/2/2006",
	"01-02-2006",
	"02 Jan 2006",
	"Jan 2, 2006",
}

// ParseCompletionDate parses a cell as a calendar date. The bool result is
// false for values no layout accepts; callers bucket those under the
// not-a-date sentinel rather than failing the run.
func ParseCompletionDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// CanonicalDate renders a cell as the canonical date-only grouping string,
// or the NotADate sentinel when the cell does not parse.
func CanonicalDate(s string) string {
	t, ok := ParseCompletionDate(s)
	if !ok {
		return schema.NotADate
	}
	return t.Format(schema.DateOnlyFormat)
}

// CanonicalizeDates rewrites the date column of every row to its canonical
// date-only string, so grouping and the emitted reports agree on the same
// rendering. Returns a new table; the input rows are not mutated.
func CanonicalizeDates(t *schema.Table, dateCol string) *schema.Table {
	idx := t.Index(dateCol)
	if idx < 0 {
		return t
	}
	rows := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		clone := append([]string(nil), row...)
		clone[idx] = CanonicalDate(clone[idx])
		rows[i] = clone
	}
	return &schema.Table{Columns: t.Columns, Rows: rows}
}

// CoerceDuration converts a duration cell to a number. It is total:
// non-numeric and empty values coerce to zero instead of failing. ParseFloat
// accepts "NaN" and "Inf" spellings; those coerce to zero too, so one bad
// cell cannot poison a group's duration total.
func CoerceDuration(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// BuildGroups partitions the filtered table into (learner, date) groups.
// Rows keep their original relative order within a group; the returned
// slice iterates in ascending (learner ID, date string) order. Each
// group's duration total is computed here, with non-numeric durations
// counting as zero.
func BuildGroups(t *schema.Table, cols *schema.ResolvedColumns) []*schema.Group {
	learnerIdx := t.Index(cols.LearnerID)
	dateIdx := t.Index(cols.Date)
	durationIdx := t.Index(cols.Duration)

	byKey := make(map[schema.GroupKey]*schema.Group)
	for _, row := range t.Rows {
		key := schema.GroupKey{LearnerID: row[learnerIdx], Date: row[dateIdx]}
		g, ok := byKey[key]
		if !ok {
			g = &schema.Group{Key: key}
			byKey[key] = g
		}
		g.Rows = append(g.Rows, row)
		g.TotalDuration += CoerceDuration(row[durationIdx])
	}

	groups := make([]*schema.Group, 0, len(byKey))
	for _, g := range byKey {
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Key.Less(groups[j].Key)
	})
	return groups
}
