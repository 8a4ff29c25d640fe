package relsearch

import (
	"context"

	"github.com/Fesaa/mnema/internal/model"
	"github.com/Fesaa/mnema/internal/provider"
	"go-micro.dev/v4/logger"
)

// registryEngine fans a query out over the provider registry's clients and
// merges their feeds. A single failing provider is logged and skipped so
// one dead site cannot blind the watchers to every other source.
type registryEngine struct {
	next     SearchEngine
	registry *provider.Registry
}

func NewRegistryEngine(registry *provider.Registry) SearchEngine {
	return &registryEngine{registry: registry}
}

func (e *registryEngine) SetNext(next SearchEngine) {
	e.next = next
}

func (e *registryEngine) SearchReleases(ctx context.Context, providers []model.Provider) ([]model.ContentRelease, error) {
	var result []model.ContentRelease
	queried := 0

	for _, p := range providers {
		cli, ok := e.registry.Get(p)
		if !ok {
			logger.Warnf("No client registered for provider %s", p)
			continue
		}

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		releases, err := cli.GetRecentReleases(ctx)
		if err != nil {
			logger.Warnf("Fetch recent releases from %s failed: %s", p, err)
			continue
		}
		queried++
		result = append(result, releases...)
	}

	if queried == 0 && e.next != nil {
		return e.next.SearchReleases(ctx, providers)
	}
	if queried == 0 {
		return nil, ErrAnyReleasesNotFound
	}

	return result, nil
}
