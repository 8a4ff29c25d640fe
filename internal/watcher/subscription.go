package watcher

import (
	"context"

	"github.com/Fesaa/mnema/internal/model"
	"go-micro.dev/v4/logger"
)

// SubscriptionMatcher matches releases against subscriptions by content id
type SubscriptionMatcher struct {
	Trigger SubscriptionTrigger
}

// Match walks the releases sequentially. A subscription triggers at most
// one download per run; further releases for the same content are still
// reported as acted-on so they are not reprocessed. Trigger errors are
// isolated per subscription and counted, never propagated.
func (m *SubscriptionMatcher) Match(ctx context.Context, releases []model.ContentRelease, subs []*model.Subscription) Result {
	result := Result{}
	triggered := map[string]bool{}
	attempted := map[string]bool{}

	for _, release := range releases {
		if ctx.Err() != nil {
			logger.Warnf("Subscription matching cancelled: %s", ctx.Err())
			return result
		}

		for _, sub := range subs {
			if !sub.Matches(&release) {
				continue
			}

			if triggered[sub.ID] {
				result.ActedOn = append(result.ActedOn, release)
				break
			}
			if attempted[sub.ID] {
				break
			}
			attempted[sub.ID] = true

			if err := m.Trigger.StartDownload(ctx, sub, release); err != nil {
				logger.Errorf("Start download for subscription '%s' [ %s ] failed: %s", sub.Title, sub.ID, err)
				result.Failed++
				break
			}

			triggered[sub.ID] = true
			result.Started++
			result.ActedOn = append(result.ActedOn, release)
			break
		}
	}

	return result
}
