package schema

import (
	"fmt"
	"strings"
)

// UnsupportedFormatError reports an input file whose extension is not in
// the supported set. It is fatal and aborts the run before any output.
type UnsupportedFormatError struct {
	Path string
	Ext  string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file type %q for %s: expected .xlsx, .xls or .csv", e.Ext, e.Path)
}

// ColumnNotFoundError reports a required logical column with no resolvable
// physical column. It carries both the candidates tried and the headers
// actually present, for diagnosability.
type ColumnNotFoundError struct {
	Candidates []string
	Available  []string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("none of the candidate columns found: [%s]; available columns: [%s]",
		strings.Join(e.Candidates, ", "), strings.Join(e.Available, ", "))
}
