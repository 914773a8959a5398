// Package schema has configs, models and shared constants for all parts of burstaudit.
package schema

import "time"

// Table is an ordered tabular dataset loaded from a single input file.
// Column names are normalized (trimmed) at load time; cell values are kept
// exactly as they appear in the source. Every row has len(Columns) cells.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Index returns the position of the named column, or -1 when absent.
func (t *Table) Index(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// ResolvedColumns holds the physical column name resolved for each logical
// field of one input. Resolution is computed once per run and never changes.
// Transcript is empty when the input carries no transcript status column.
type ResolvedColumns struct {
	LearnerName string
	LearnerID   string
	Date        string
	Duration    string
	Title       string
	ActivityID  string
	Transcript  string
}

// GroupKey identifies one output unit: a learner on a calendar day.
// Date is the canonical date-only string, or the not-a-date sentinel.
type GroupKey struct {
	LearnerID string
	Date      string
}

// Less orders keys ascending by (LearnerID, Date).
func (k GroupKey) Less(other GroupKey) bool {
	if k.LearnerID != other.LearnerID {
		return k.LearnerID < other.LearnerID
	}
	return k.Date < other.Date
}

// Group is the ordered subsequence of filtered rows sharing one GroupKey,
// plus the summed duration over those rows.
type Group struct {
	Key           GroupKey
	Rows          [][]string
	TotalDuration float64
}

// Qualifies reports whether the group exceeds the burst threshold and
// therefore produces an output report.
func (g *Group) Qualifies() bool {
	return len(g.Rows) > BurstThreshold
}

// Report is one serializable output unit: the projected rows of a
// qualifying group. Rows hold string cells except the duration column,
// which is coerced to float64. The writer appends the TOTAL row.
type Report struct {
	Key      GroupKey
	FileName string
	Headers  []string
	Rows     [][]any
	Total    float64
}

// GroupSummary describes one (learner, day) group of a completed run.
// ReportFile is empty for groups below the threshold.
type GroupSummary struct {
	LearnerID     string  `json:"learner_id"`
	Date          string  `json:"completion_date"`
	RowCount      int     `json:"row_count"`
	TotalDuration float64 `json:"total_duration"`
	Qualified     bool    `json:"qualified"`
	ReportFile    string  `json:"report_file,omitempty"`
}

// RunResult is what the pipeline hands back to its caller: the count of
// report files written plus per-group summaries for every group seen.
type RunResult struct {
	InputFile    string         `json:"input_file"`
	OutputDir    string         `json:"output_dir"`
	RowsLoaded   int            `json:"rows_loaded"`
	RowsRetained int            `json:"rows_retained"`
	GroupsTotal  int            `json:"groups_total"`
	FilesWritten int            `json:"files_written"`
	Groups       []GroupSummary `json:"groups"`
	ArchiveFile  string         `json:"archive_file,omitempty"`
	StartedAt    time.Time      `json:"started_at"`
	Duration     time.Duration  `json:"duration_ns"`
}

// QualifyingGroups returns the subset of group summaries that produced a
// report file, preserving iteration order.
func (r *RunResult) QualifyingGroups() []GroupSummary {
	var out []GroupSummary
	for _, g := range r.Groups {
		if g.Qualified {
			out = append(out, g)
		}
	}
	return out
}

// RunRecord is one row of the run history store.
type RunRecord struct {
	RunID         int64
	InputFile     string
	FilesWritten  int
	GroupsTotal   int
	RunDurationMs int64
	StartedAt     time.Time
}

// RunLogStatus holds status information about the run history store.
type RunLogStatus struct {
	Backend     string
	Connected   bool
	TotalRuns   int
	LastRunTime time.Time
}
