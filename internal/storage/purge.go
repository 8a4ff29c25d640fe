package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Purge removes an item's whole download directory. The directory must live
// under the managed downloads root.
func (m *Manager) Purge(dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolve directory failed: %w", err)
	}
	root, err := filepath.Abs(m.dirs.Downloads)
	if err != nil {
		return fmt.Errorf("resolve downloads root failed: %w", err)
	}
	if !strings.HasPrefix(abs, root+string(filepath.Separator)) {
		return fmt.Errorf("refuse to purge %s: outside downloads root", dir)
	}

	return os.RemoveAll(abs)
}

// Remove deletes a single on-disk file, used for regrouped stale chapters
func (m *Manager) Remove(path string) error {
	return os.Remove(path)
}
