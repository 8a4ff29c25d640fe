// Package relsearch aggregates recent-release queries across providers
package relsearch

import (
	"context"
	"errors"

	"github.com/Fesaa/mnema/internal/model"
)

var ErrAnyReleasesNotFound = errors.New("any releases not found")

// SearchEngine fetches recent releases for a set of providers. Engines can
// be chained; a failing engine defers to the next one.
type SearchEngine interface {
	SearchReleases(ctx context.Context, providers []model.Provider) ([]model.ContentRelease, error)
	SetNext(next SearchEngine)
}
