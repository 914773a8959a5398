package schema

// Custom string types for type safety.
type (
	// LogicalColumn names a semantic field resolved from header candidates.
	LogicalColumn string

	// OutputMode represents the format of the run summary output.
	OutputMode string

	// DatabaseBackend represents the database backend for run history.
	DatabaseBackend string
)

// All logical columns of a learner activity export.
const (
	LearnerNameColumn      LogicalColumn = "learner_name"
	LearnerIDColumn        LogicalColumn = "learner_id"
	CompletionDateColumn   LogicalColumn = "completion_date"
	ActivityDurationColumn LogicalColumn = "activity_duration"
	ActivityTitleColumn    LogicalColumn = "activity_title"
	ActivityIDColumn       LogicalColumn = "activity_id"
	TranscriptColumn       LogicalColumn = "transcript_status"
)

// ColumnCandidates lists the acceptable header names per logical column,
// in preference order. Matching is case-insensitive and falls back to a
// whitespace-stripped comparison, so "Learner -ID" and "learner - id"
// both resolve to LearnerIDColumn.
var ColumnCandidates = map[LogicalColumn][]string{
	LearnerNameColumn:      {"Learner - Name"},
	LearnerIDColumn:        {"Learner - ID"},
	CompletionDateColumn:   {"Completion Date"},
	ActivityDurationColumn: {"Learning activity - Duration"},
	ActivityTitleColumn:    {"Learning activity - Title"},
	ActivityIDColumn:       {"Learning activity - ID"},
	TranscriptColumn:       {"Transcript status"},
}

// RequiredColumns are resolved strictly: a missing match aborts the run.
// TranscriptColumn is absent here on purpose; it is resolved leniently.
var RequiredColumns = []LogicalColumn{
	LearnerNameColumn,
	LearnerIDColumn,
	CompletionDateColumn,
	ActivityDurationColumn,
	ActivityTitleColumn,
	ActivityIDColumn,
}

// ReportColumns is the fixed projection of every output report, in order.
var ReportColumns = []LogicalColumn{
	ActivityTitleColumn,
	LearnerIDColumn,
	ActivityIDColumn,
	ActivityDurationColumn,
	CompletionDateColumn,
}

// Positions of special columns within ReportColumns.
const (
	ReportTitleIndex    = 0
	ReportDurationIndex = 3
)

// Business constants of the burst audit.
const (
	// BurstThreshold is the fixed cutoff: a (learner, day) group produces
	// a report iff it has strictly more than this many rows.
	BurstThreshold = 50

	// CompletedStatus is the only transcript status retained by the filter,
	// compared after trimming and lowercasing.
	CompletedStatus = "completed"

	// TotalLabel is the title cell of the synthetic trailing row.
	TotalLabel = "TOTAL"

	// NotADate buckets rows whose completion date cannot be parsed.
	NotADate = "NaT"

	// DateOnlyFormat renders group dates without a time component.
	DateOnlyFormat = "2006-01-02"

	// ReportFileExt is the extension of every emitted report.
	ReportFileExt = ".xlsx"
)

// All run summary output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All run history backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// ValidOutputModes lists all valid run summary output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidRunLogBackends lists all valid run history backends.
var ValidRunLogBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
