package provider

import (
	"context"

	"github.com/Fesaa/mnema/internal/model"
)

// Client is implemented once per external provider. Network behavior,
// parsing and timeouts all live behind this contract.
type Client interface {
	// GetSeries fetches the normalized metadata snapshot for a content id,
	// including the full chapter list
	GetSeries(ctx context.Context, contentID string) (*model.Series, error)

	// DownloadChapter transfers one chapter into destDir and returns the
	// number of bytes written
	DownloadChapter(ctx context.Context, series *model.Series, chapter model.Chapter, destDir string) (int64, error)

	// GetRecentReleases returns releases published since the provider's
	// feed horizon, newest first
	GetRecentReleases(ctx context.Context) ([]model.ContentRelease, error)

	// ParseReleaseTitles extracts candidate series titles from a release
	// display name, provider-specific naming quirks applied
	ParseReleaseTitles(releaseName string) []string
}

// Registry maps providers to their constructed clients. Built once at
// startup and passed by reference; lookups never construct anything.
type Registry struct {
	clients map[model.Provider]Client
}

func NewRegistry() *Registry {
	return &Registry{clients: map[model.Provider]Client{}}
}

func (r *Registry) Register(p model.Provider, cli Client) {
	r.clients[p] = cli
}

func (r *Registry) Get(p model.Provider) (Client, bool) {
	cli, ok := r.clients[p]
	return cli, ok
}

func (r *Registry) Providers() []model.Provider {
	providers := make([]model.Provider, 0, len(r.clients))
	for p := range r.clients {
		providers = append(providers, p)
	}
	return providers
}
