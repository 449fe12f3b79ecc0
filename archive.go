package md2overleaf

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// writeArchive folds the staging directory into a single zip file at zipPath,
// preserving the stage's relative layout exactly: no root-folder wrapping, so
// the LaTeX files sit at archive root and assets under their subdirectories.
// A prior archive at zipPath is overwritten.
func writeArchive(stageDir, zipPath string) error {
	out, err := os.Create(zipPath) // #nosec G304 -- archive path is derived from the job output dir
	if err != nil {
		return fmt.Errorf("creating archive: %w", err)
	}

	zw := zip.NewWriter(out)

	walkErr := filepath.WalkDir(stageDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(stageDir, p)
		if err != nil {
			return err
		}

		entry, err := zw.Create(filepath.ToSlash(rel))
		if err != nil {
			return fmt.Errorf("adding %s: %w", rel, err)
		}

		f, err := os.Open(p) // #nosec G304 -- path produced by WalkDir over the stage
		if err != nil {
			return err
		}
		_, err = io.Copy(entry, f)
		_ = f.Close()
		return err
	})

	if walkErr != nil {
		_ = zw.Close()
		_ = out.Close()
		return fmt.Errorf("archiving %s: %w", stageDir, walkErr)
	}

	if err := zw.Close(); err != nil {
		_ = out.Close()
		return fmt.Errorf("finalizing archive: %w", err)
	}
	return out.Close()
}
