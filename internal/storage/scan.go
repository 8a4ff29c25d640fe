package storage

import (
	"io/fs"
	"path/filepath"

	"github.com/Fesaa/mnema/internal/analysis"
	"github.com/Fesaa/mnema/internal/model"
	"go-micro.dev/v4/logger"
)

// Scan walks a download directory and parses every archive file into an
// OnDiskContent entry. Unparseable files are skipped, not errors: the next
// reconciliation just treats them as absent.
func (m *Manager) Scan(dir string) ([]model.OnDiskContent, error) {
	var entries []model.OnDiskContent

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warnf("Scan %s failed: %s", path, err)
			return nil
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			rel = path
		}

		result := analysis.AnalyzeFile(rel)
		if result.FileName == "" && result.Chapter == "" && result.Volume == "" {
			return nil
		}

		seriesName := filepath.Base(filepath.Dir(path))
		if seriesName == "." || seriesName == string(filepath.Separator) {
			seriesName = filepath.Base(dir)
		}

		entries = append(entries, model.OnDiskContent{
			SeriesName: seriesName,
			Path:       path,
			Chapter:    result.Chapter,
			Volume:     result.Volume,
		})
		return nil
	})

	return entries, err
}
