package model

import (
	"strings"
	"time"

	"github.com/antzucaro/matchr"
)

// maxTitleDistance is how many edits a release title may be away from one of
// the series titles and still count as the same series
const maxTitleDistance = 2

// ContentFormat classifies what a monitored series contains
type ContentFormat int

const (
	FormatManga ContentFormat = iota
	FormatManhwa
	FormatLightNovel
)

// Subscription tracks a single piece of content on a single provider
type Subscription struct {
	ID          string    `bson:"_id,omitempty"`
	ContentID   string    `bson:"contentid"`
	Provider    Provider  `bson:"provider"`
	Title       string    `bson:"title"`
	BaseDir     string    `bson:"basedir"`
	Enabled     bool      `bson:"enabled"`
	LastRefresh time.Time `bson:"lastrefresh"`
}

func (s *Subscription) Sources() []Provider {
	return []Provider{s.Provider}
}

// Matches reports whether a release belongs to this subscription
func (s *Subscription) Matches(release *ContentRelease) bool {
	return release.ContentID != "" && release.ContentID == s.ContentID && release.Provider == s.Provider
}

// MonitoredSeries tracks a series across one or more providers by title
type MonitoredSeries struct {
	ID        string        `bson:"_id,omitempty"`
	Titles    []string      `bson:"titles"`
	Providers []Provider    `bson:"providers"`
	Format    ContentFormat `bson:"format"`
	BaseDir   string        `bson:"basedir"`
}

func (m *MonitoredSeries) Sources() []Provider {
	return m.Providers
}

// MatchesTitle reports whether any of the candidate titles extracted from a
// release name refers to this series
func (m *MonitoredSeries) MatchesTitle(candidates []string) bool {
	for _, candidate := range candidates {
		for _, title := range m.Titles {
			if titlesEqual(candidate, title) {
				return true
			}
		}
	}
	return false
}

func titlesEqual(a, b string) bool {
	a = normalizeTitle(a)
	b = normalizeTitle(b)
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}
	return matchr.Levenshtein(a, b) <= maxTitleDistance
}

func normalizeTitle(title string) string {
	return strings.Join(strings.Fields(strings.ToLower(title)), " ")
}
