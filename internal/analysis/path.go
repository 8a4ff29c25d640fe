package analysis

import (
	"path/filepath"
	"strings"
)

type fileLayout struct {
	SeriesDir string
	FileName  string
	Extension string
}

func extractLayout(file string) fileLayout {
	result := fileLayout{}

	result.Extension = strings.TrimPrefix(filepath.Ext(file), ".")

	path, fileName := filepath.Split(file)
	result.FileName = strings.TrimSuffix(fileName, "."+result.Extension)

	path = strings.Trim(path, string(filepath.Separator))
	if path != "" {
		directories := strings.Split(path, string(filepath.Separator))
		result.SeriesDir = directories[len(directories)-1]
	}

	return result
}

func (l fileLayout) IsArchiveFile() bool {
	var archiveExtensions = []string{
		"cbz", "cbr", "zip", "rar", "epub", "pdf",
	}

	ext := strings.ToLower(l.Extension)
	for _, archiveExtension := range archiveExtensions {
		if ext == archiveExtension {
			return true
		}
	}

	return false
}
