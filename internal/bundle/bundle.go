// Package bundle packages an output directory into a downloadable archive.
package bundle

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// DefaultArchivePath names the archive next to the output directory,
// stamped with the run start time.
func DefaultArchivePath(outputDir string, startedAt time.Time) string {
	name := "results_" + startedAt.Format("20060102_150405") + ".zip"
	return filepath.Join(filepath.Dir(filepath.Clean(outputDir)), name)
}

// ZipDirectory writes every regular file under srcDir into a zip archive
// at zipPath, with paths stored relative to srcDir.
func ZipDirectory(srcDir, zipPath string) error {
	out, err := os.Create(zipPath)
	if err != nil {
		return fmt.Errorf("could not create archive %s: %w", zipPath, err)
	}
	defer func() { _ = out.Close() }()

	zw := zip.NewWriter(out)
	err = filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		return addFile(zw, path, filepath.ToSlash(rel))
	})
	if err != nil {
		_ = zw.Close()
		return fmt.Errorf("could not archive %s: %w", srcDir, err)
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("could not finalize archive %s: %w", zipPath, err)
	}
	return nil
}

func addFile(zw *zip.Writer, path, name string) error {
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	w, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, src)
	return err
}
