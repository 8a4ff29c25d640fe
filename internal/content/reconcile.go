package content

import (
	"github.com/Fesaa/mnema/internal/model"
)

// FilterAlreadyDownloadedContent compares the desired chapter list against a
// scan of the download directory. A chapter with an exact (volume, chapter)
// match on disk is already satisfied and leaves the queue. A chapter whose
// marker exists on disk under a different volume label was regrouped by the
// provider: it stays queued and the stale path is marked for removal. Files
// matching no desired chapter are never touched.
//
// Running it twice on the same inputs yields the same result.
func FilterAlreadyDownloadedContent(queued []model.Chapter, onDisk []model.OnDiskContent) ([]model.Chapter, []string) {
	remaining := make([]model.Chapter, 0, len(queued))
	var toRemove []string
	removeSet := map[string]bool{}

	for _, ch := range queued {
		if hasExactMatch(ch, onDisk) {
			continue
		}

		if stale, ok := findRegrouped(ch, onDisk); ok {
			if !removeSet[stale.Path] {
				removeSet[stale.Path] = true
				toRemove = append(toRemove, stale.Path)
			}
		}

		remaining = append(remaining, ch)
	}

	return remaining, toRemove
}

// empty markers compare as empty strings, not wildcards
func hasExactMatch(ch model.Chapter, onDisk []model.OnDiskContent) bool {
	for _, entry := range onDisk {
		if entry.Chapter == ch.Chapter && entry.Volume == ch.Volume {
			return true
		}
	}
	return false
}

func findRegrouped(ch model.Chapter, onDisk []model.OnDiskContent) (model.OnDiskContent, bool) {
	if ch.Chapter == "" {
		return model.OnDiskContent{}, false
	}
	for _, entry := range onDisk {
		if entry.Chapter == ch.Chapter && entry.Volume != ch.Volume {
			return entry, true
		}
	}
	return model.OnDiskContent{}, false
}
