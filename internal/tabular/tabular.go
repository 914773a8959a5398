// Package tabular loads delimited-text and spreadsheet files into memory.
package tabular

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/burstaudit/burstaudit/schema"
	"github.com/xuri/excelize/v2"
)

// Load reads the file at path into a table, detecting the format from the
// extension: .xlsx/.xls go through the spreadsheet reader, .csv through
// the delimited-text reader. Any other extension fails with an
// UnsupportedFormatError. Column names are trimmed of surrounding
// whitespace; cell values are not altered.
func Load(path string) (*schema.Table, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".xlsx", ".xls":
		return loadSpreadsheet(path)
	case ".csv":
		return loadCSV(path)
	default:
		return nil, &schema.UnsupportedFormatError{Path: path, Ext: ext}
	}
}

// loadCSV reads a delimited-text file. Ragged rows are tolerated: short
// rows are padded with empty cells and long rows truncated to the header.
func loadCSV(path string) (*schema.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("could not parse %s: %w", path, err)
	}
	return tableFromRecords(records), nil
}

// loadSpreadsheet reads the first sheet of a workbook.
func loadSpreadsheet(path string) (*schema.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return &schema.Table{}, nil
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("could not read sheet %s of %s: %w", sheets[0], path, err)
	}
	return tableFromRecords(records), nil
}

// tableFromRecords treats the first record as the header row, trims each
// header, and normalizes every data row to the header width.
func tableFromRecords(records [][]string) *schema.Table {
	if len(records) == 0 {
		return &schema.Table{}
	}

	columns := make([]string, len(records[0]))
	for i, h := range records[0] {
		columns[i] = strings.TrimSpace(h)
	}

	rows := make([][]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make([]string, len(columns))
		copy(row, rec)
		rows = append(rows, row)
	}
	return &schema.Table{Columns: columns, Rows: rows}
}
