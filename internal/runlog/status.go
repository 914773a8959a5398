package runlog

import (
	"fmt"

	"github.com/burstaudit/burstaudit/schema"
)

// PrintStatus prints run history status information.
func PrintStatus(status schema.RunLogStatus) {
	fmt.Printf("Runs Backend: %s\n", status.Backend)
	fmt.Printf("Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	fmt.Printf("Total Runs: %d\n", status.TotalRuns)
	if status.TotalRuns > 0 {
		fmt.Printf("Last Run: %s\n", status.LastRunTime.Format("2006-01-02 15:04:05"))
	}
}

// PrintRuns prints recorded runs, one line per run.
func PrintRuns(records []schema.RunRecord) {
	if len(records) == 0 {
		fmt.Println("No runs recorded.")
		return
	}
	for _, rec := range records {
		fmt.Printf("#%d  %s  %s  reports=%d groups=%d took=%dms\n",
			rec.RunID,
			rec.StartedAt.Format("2006-01-02 15:04:05"),
			rec.InputFile,
			rec.FilesWritten,
			rec.GroupsTotal,
			rec.RunDurationMs,
		)
	}
}
