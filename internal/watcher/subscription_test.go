package watcher

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Fesaa/mnema/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSubscriptionTrigger struct {
	mu sync.Mutex

	failFor map[string]bool
	started []string
}

func (f *fakeSubscriptionTrigger) StartDownload(ctx context.Context, sub *model.Subscription, release model.ContentRelease) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFor[sub.ID] {
		return errors.New("trigger failed")
	}
	f.started = append(f.started, sub.ID+"/"+release.ReleaseID)
	return nil
}

func TestSubscriptionMatcherSingleTrigger(t *testing.T) {
	trigger := &fakeSubscriptionTrigger{}
	m := &SubscriptionMatcher{Trigger: trigger}

	subs := []*model.Subscription{subscription("s1", "c1")}
	releases := []model.ContentRelease{
		release("r1", "c1"),
		release("r2", "c1"),
		release("r3", "other"),
	}

	result := m.Match(context.Background(), releases, subs)

	// the first release fires the download, the second is acted on
	// without firing again, the third matches nothing
	assert.Equal(t, []string{"s1/r1"}, trigger.started)
	assert.Equal(t, 1, result.Started)
	assert.Equal(t, 0, result.Failed)
	require.Len(t, result.ActedOn, 2)
	assert.Equal(t, "r1", result.ActedOn[0].ReleaseID)
	assert.Equal(t, "r2", result.ActedOn[1].ReleaseID)
}

func TestSubscriptionMatcherIndependentSubscriptions(t *testing.T) {
	trigger := &fakeSubscriptionTrigger{}
	m := &SubscriptionMatcher{Trigger: trigger}

	subs := []*model.Subscription{
		subscription("s1", "c1"),
		subscription("s2", "c2"),
	}
	releases := []model.ContentRelease{
		release("r1", "c1"),
		release("r2", "c2"),
	}

	result := m.Match(context.Background(), releases, subs)

	assert.Equal(t, []string{"s1/r1", "s2/r2"}, trigger.started)
	assert.Equal(t, 2, result.Started)
	assert.Len(t, result.ActedOn, 2)
}

func TestSubscriptionMatcherNoMatches(t *testing.T) {
	trigger := &fakeSubscriptionTrigger{}
	m := &SubscriptionMatcher{Trigger: trigger}

	result := m.Match(context.Background(),
		[]model.ContentRelease{release("r1", "unknown")},
		[]*model.Subscription{subscription("s1", "c1")})

	assert.Empty(t, trigger.started)
	assert.Equal(t, Result{}, result)
}

func TestSubscriptionMatcherProviderMismatch(t *testing.T) {
	trigger := &fakeSubscriptionTrigger{}
	m := &SubscriptionMatcher{Trigger: trigger}

	rel := release("r1", "c1")
	rel.Provider = model.ProviderBato

	result := m.Match(context.Background(),
		[]model.ContentRelease{rel},
		[]*model.Subscription{subscription("s1", "c1")})

	// same content id on another provider is a different thing
	assert.Empty(t, trigger.started)
	assert.Equal(t, 0, result.Started)
}

func TestSubscriptionMatcherFailureIsolation(t *testing.T) {
	trigger := &fakeSubscriptionTrigger{failFor: map[string]bool{"s1": true}}
	m := &SubscriptionMatcher{Trigger: trigger}

	subs := []*model.Subscription{
		subscription("s1", "c1"),
		subscription("s2", "c2"),
	}
	releases := []model.ContentRelease{
		release("r1", "c1"),
		release("r2", "c2"),
		release("r3", "c1"),
	}

	result := m.Match(context.Background(), releases, subs)

	// s1's failure neither aborts the run nor marks its releases acted-on,
	// and the subscription is not retried within the same run
	assert.Equal(t, []string{"s2/r2"}, trigger.started)
	assert.Equal(t, 1, result.Started)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.ActedOn, 1)
	assert.Equal(t, "r2", result.ActedOn[0].ReleaseID)
}

func TestSubscriptionMatcherCancellation(t *testing.T) {
	trigger := &fakeSubscriptionTrigger{}
	m := &SubscriptionMatcher{Trigger: trigger}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := m.Match(ctx,
		[]model.ContentRelease{release("r1", "c1")},
		[]*model.Subscription{subscription("s1", "c1")})

	// cancellation halts the walk; unreached entities are not failures
	assert.Empty(t, trigger.started)
	assert.Equal(t, Result{}, result)
}
