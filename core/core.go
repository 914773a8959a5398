// Package core implements the burst audit pipeline: column resolution,
// filtering, grouping, aggregation and per-group report emission.
package core

import (
	"time"

	"github.com/burstaudit/burstaudit/internal/bundle"
	"github.com/burstaudit/burstaudit/internal/contract"
	"github.com/burstaudit/burstaudit/internal/outwriter"
)

// ExecuteProcess runs the full pipeline for one input file, optionally
// bundles the output directory into a zip archive, records the run in the
// history store and emits the run summary in the configured format.
func ExecuteProcess(cfg *contract.Config, store contract.RunStore, inputPath, outputDir string) error {
	start := time.Now()

	result, err := Process(inputPath, outputDir)
	if err != nil {
		return err
	}
	result.StartedAt = start
	result.Duration = time.Since(start)

	if cfg.Archive && result.FilesWritten > 0 {
		archivePath := cfg.ArchiveFile
		if archivePath == "" {
			archivePath = bundle.DefaultArchivePath(outputDir, start)
		}
		if err := bundle.ZipDirectory(outputDir, archivePath); err != nil {
			return err
		}
		result.ArchiveFile = archivePath
	}

	if store != nil {
		if _, err := store.RecordRun(result); err != nil {
			contract.LogWarn("could not record run history", err)
		}
	}

	return outwriter.WriteRunSummary(result, cfg)
}
