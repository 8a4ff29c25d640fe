package watcher

import (
	"context"

	"github.com/Fesaa/mnema/internal/model"
	"go-micro.dev/v4/logger"
)

// SeriesMatcher matches releases against monitored series by parsed title
type SeriesMatcher struct {
	Trigger SeriesTrigger
	Titles  TitleParser
}

// Match applies the provider's title parser to each release name and fuzzy
// matches the candidates against every monitored series' title set. A
// series matches at most once per run, so two releases that both
// legitimately name it cannot fire two downloads.
func (m *SeriesMatcher) Match(ctx context.Context, releases []model.ContentRelease, series []*model.MonitoredSeries) Result {
	result := Result{}
	matched := map[string]bool{}
	attempted := map[string]bool{}

	for _, release := range releases {
		if ctx.Err() != nil {
			logger.Warnf("Series matching cancelled: %s", ctx.Err())
			return result
		}

		candidates := m.Titles.ParseTitles(release.Provider, release.ReleaseName)
		if len(candidates) == 0 {
			continue
		}

		for _, s := range series {
			if !providesOn(s, release.Provider) || !s.MatchesTitle(candidates) {
				continue
			}

			if matched[s.ID] {
				result.ActedOn = append(result.ActedOn, release)
				break
			}
			if attempted[s.ID] {
				break
			}
			attempted[s.ID] = true

			if err := m.Trigger.StartSeriesDownload(ctx, s, release); err != nil {
				logger.Errorf("Start download for series %s failed: %s", s.ID, err)
				result.Failed++
				break
			}

			matched[s.ID] = true
			result.Started++
			result.ActedOn = append(result.ActedOn, release)
			break
		}
	}

	return result
}

func providesOn(s *model.MonitoredSeries, p model.Provider) bool {
	for _, sp := range s.Providers {
		if sp == p {
			return true
		}
	}
	return false
}
