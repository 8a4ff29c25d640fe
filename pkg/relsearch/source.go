package relsearch

import (
	"context"
	"errors"

	"github.com/Fesaa/mnema/internal/model"
)

// Source adapts a SearchEngine chain to the watchers' release-source
// contract: an empty universe is not an error, just an empty run
type Source struct {
	Engine SearchEngine
}

func (s Source) GetRecent(ctx context.Context, providers []model.Provider) ([]model.ContentRelease, error) {
	releases, err := s.Engine.SearchReleases(ctx, providers)
	if errors.Is(err, ErrAnyReleasesNotFound) {
		return nil, nil
	}
	return releases, err
}
