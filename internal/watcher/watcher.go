package watcher

import (
	"context"
	"fmt"

	"github.com/Fesaa/mnema/internal/model"
	"go-micro.dev/v4/logger"
)

// Watcher is a reusable polling/dedup/match/report template, parameterized
// by the tracked-entity type. One instance per watch mode.
type Watcher[E Entity] struct {
	// Name identifies the watch mode in logs
	Name string

	// Load returns all eligible entities
	Load func(ctx context.Context) ([]E, error)

	Source  ReleaseSource
	Dedup   DedupStore
	Matcher Matcher[E]
}

// RunWatcher executes one polling run. Entity matching is sequential; the
// caller guarantees runs of the same watcher never overlap.
func (w *Watcher[E]) RunWatcher(ctx context.Context) error {
	entities, err := w.Load(ctx)
	if err != nil {
		return fmt.Errorf("load entities failed: %w", err)
	}
	if len(entities) == 0 {
		return nil
	}

	providers := collectProviders(entities)

	releases, err := w.Source.GetRecent(ctx, providers)
	if err != nil {
		return fmt.Errorf("fetch recent releases failed: %w", err)
	}
	if len(releases) == 0 {
		logger.Debugf("[%s] No recent releases", w.Name)
		return nil
	}

	fresh, err := w.filterSeen(ctx, releases)
	if err != nil {
		return fmt.Errorf("filter seen releases failed: %w", err)
	}

	result := w.Matcher.Match(ctx, fresh, entities)

	// every examined release is marked seen, matched or not, so it is
	// never re-evaluated on the next run
	if err = w.Dedup.MarkSeen(ctx, releases); err != nil {
		logger.Errorf("[%s] Mark releases as seen failed, duplicate downloads may start: %s", w.Name, err)
	}

	logger.Infof("[%s] Run complete: %d releases, %d new, %d started, %d failed",
		w.Name, len(releases), len(fresh), result.Started, result.Failed)
	return nil
}

func (w *Watcher[E]) filterSeen(ctx context.Context, releases []model.ContentRelease) ([]model.ContentRelease, error) {
	ids := make([]string, 0, len(releases))
	for _, r := range releases {
		ids = append(ids, r.ReleaseID)
	}

	unseen, err := w.Dedup.FilterUnseen(ctx, ids)
	if err != nil {
		return nil, err
	}

	unseenSet := make(map[string]bool, len(unseen))
	for _, id := range unseen {
		unseenSet[id] = true
	}

	fresh := make([]model.ContentRelease, 0, len(unseen))
	for _, r := range releases {
		if unseenSet[r.ReleaseID] {
			fresh = append(fresh, r)
		}
	}
	return fresh, nil
}

func collectProviders[E Entity](entities []E) []model.Provider {
	seen := map[model.Provider]bool{}
	var providers []model.Provider
	for _, e := range entities {
		for _, p := range e.Sources() {
			if !seen[p] {
				seen[p] = true
				providers = append(providers, p)
			}
		}
	}
	return providers
}
