package outwriter

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/burstaudit/burstaudit/internal/contract"
	"github.com/burstaudit/burstaudit/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/term"
)

// writeSummaryTable renders the human-readable run summary: one row per
// qualifying group plus a footer with run-wide counts. Groups below the
// threshold are counted but not listed.
func writeSummaryTable(w io.Writer, result *schema.RunResult, cfg *contract.Config, fmtFloat func(float64) string) error {
	qualifying := result.QualifyingGroups()

	if len(qualifying) > 0 {
		table := tablewriter.NewWriter(w)
		table.Header([]string{"#", "Learner", "Date", "Rows", "Severity", "Total Duration", "Report"})
		table.Configure(func(tcfg *tablewriter.Config) {
			tcfg.Row.Alignment.Global = tw.AlignRight
		})

		maxFileWidth := getMaxTableFileWidth(cfg)
		var data [][]string
		for i, g := range qualifying {
			label := contract.GetPlainLabel(g.RowCount)
			if cfg.Color {
				label = contract.GetColorLabel(g.RowCount)
			}
			data = append(data, []string{
				strconv.Itoa(i + 1),
				g.LearnerID,
				g.Date,
				strconv.Itoa(g.RowCount),
				label,
				fmtFloat(g.TotalDuration),
				contract.TruncatePath(g.ReportFile, maxFileWidth),
			})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "Wrote %d report(s) for %d group(s) (%d of %d rows retained)\n",
		result.FilesWritten, result.GroupsTotal, result.RowsRetained, result.RowsLoaded); err != nil {
		return err
	}
	if result.ArchiveFile != "" {
		if _, err := fmt.Fprintf(w, "Bundled results into %s\n", result.ArchiveFile); err != nil {
			return err
		}
	}
	if result.Duration > 0 {
		if _, err := fmt.Fprintf(w, "Processing completed in %v\n", result.Duration); err != nil {
			return err
		}
	}
	return nil
}

// getMaxTableFileWidth calculates the maximum width for report filenames
// in table output based on terminal width.
func getMaxTableFileWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Conservative default for narrow terminals and CI
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the fixed columns with borders and padding
	baseWidth := 60

	available := termWidth - baseWidth
	if available < 15 {
		return 15
	}
	if available > 60 {
		return 60
	}
	return available
}
