package watcher

import (
	"context"

	"github.com/Fesaa/mnema/internal/model"
)

// Entity is a tracked thing the watcher polls releases for
type Entity interface {
	Sources() []model.Provider
}

// ReleaseSource returns recently-published releases for a set of providers
type ReleaseSource interface {
	GetRecent(ctx context.Context, providers []model.Provider) ([]model.ContentRelease, error)
}

// DedupStore remembers which releases have already been examined
type DedupStore interface {
	FilterUnseen(ctx context.Context, releaseIDs []string) ([]string, error)
	MarkSeen(ctx context.Context, releases []model.ContentRelease) error
}

// Matcher decides which releases satisfy which entities and triggers the
// downloads. At most one trigger fires per entity per run.
type Matcher[E Entity] interface {
	Match(ctx context.Context, releases []model.ContentRelease, entities []E) Result
}

// Result aggregates the outcome of one matching pass
type Result struct {
	// ActedOn are the releases that satisfied some entity
	ActedOn []model.ContentRelease

	// Started counts successfully triggered downloads
	Started int

	// Failed counts entities whose trigger returned an error
	Failed int
}

// SubscriptionTrigger starts a download for a matched subscription
type SubscriptionTrigger interface {
	StartDownload(ctx context.Context, sub *model.Subscription, release model.ContentRelease) error
}

// SeriesTrigger starts a download for a matched monitored series
type SeriesTrigger interface {
	StartSeriesDownload(ctx context.Context, series *model.MonitoredSeries, release model.ContentRelease) error
}

// TitleParser extracts candidate series titles from a release display name,
// applying provider-specific naming quirks when known
type TitleParser interface {
	ParseTitles(provider model.Provider, releaseName string) []string
}
