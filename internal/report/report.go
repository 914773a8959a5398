// Package report emits one spreadsheet per qualifying group.
package report

import (
	"fmt"
	"path/filepath"

	"github.com/burstaudit/burstaudit/schema"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Sheet1"

// WriteReport serializes one report to <outputDir>/<rep.FileName> as a
// single-sheet workbook: the projected header row, one row per source row
// in group order, then the TOTAL row carrying only the title label and the
// summed duration. Each report file is written independently; a failure
// here never touches sibling reports.
func WriteReport(outputDir string, rep *schema.Report) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	header := make([]any, len(rep.Headers))
	for i, h := range rep.Headers {
		header[i] = h
	}
	if err := setRow(f, 1, header); err != nil {
		return err
	}

	for i, row := range rep.Rows {
		if err := setRow(f, i+2, row); err != nil {
			return err
		}
	}

	if err := setRow(f, len(rep.Rows)+2, totalRow(rep)); err != nil {
		return err
	}

	path := filepath.Join(outputDir, rep.FileName)
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("could not save %s: %w", path, err)
	}
	return nil
}

// totalRow builds the synthetic trailing row: title cell "TOTAL", the
// duration cell holding the group total, every other cell empty.
func totalRow(rep *schema.Report) []any {
	row := make([]any, len(rep.Headers))
	for i := range row {
		row[i] = ""
	}
	row[schema.ReportTitleIndex] = schema.TotalLabel
	row[schema.ReportDurationIndex] = rep.Total
	return row
}

func setRow(f *excelize.File, rowNum int, cells []any) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheetName, cell, &cells); err != nil {
		return fmt.Errorf("could not set row %d: %w", rowNum, err)
	}
	return nil
}
