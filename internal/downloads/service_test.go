package downloads

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Fesaa/mnema/internal/content"
	"github.com/Fesaa/mnema/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDispatcher struct {
	err      error
	requests []model.DownloadRequest
}

func (f *fakeDispatcher) Download(req model.DownloadRequest) (*content.Item, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.requests = append(f.requests, req)
	return nil, nil
}

type fakeDatabase struct {
	err       error
	refreshed []string
}

func (f *fakeDatabase) UpdateSubscriptionRefresh(ctx context.Context, id string, at time.Time) error {
	if f.err != nil {
		return f.err
	}
	f.refreshed = append(f.refreshed, id)
	return nil
}

func TestStartDownloadBuildsRequestFromSubscription(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	database := &fakeDatabase{}
	s := &Service{Dispatcher: dispatcher, Database: database}

	sub := &model.Subscription{
		ID:        "sub-1",
		ContentID: "content-1",
		Provider:  model.ProviderMangadex,
		Title:     "Example Series",
		BaseDir:   "/library/manga",
	}
	rel := model.ContentRelease{ReleaseID: "r1", ReleaseName: "Example Series Ch. 10"}

	require.NoError(t, s.StartDownload(context.Background(), sub, rel))

	require.Len(t, dispatcher.requests, 1)
	req := dispatcher.requests[0]
	assert.Equal(t, model.ProviderMangadex, req.Provider)
	assert.Equal(t, "content-1", req.ContentID)
	assert.Equal(t, "/library/manga", req.BaseDir)
	assert.Equal(t, "Example Series", req.TempTitle)
	assert.True(t, req.Metadata.StartImmediately)

	assert.Equal(t, []string{"sub-1"}, database.refreshed)
}

func TestStartDownloadRefreshFailureIsNotFatal(t *testing.T) {
	s := &Service{
		Dispatcher: &fakeDispatcher{},
		Database:   &fakeDatabase{err: errors.New("db down")},
	}

	sub := &model.Subscription{ID: "sub-1", ContentID: "c1", Provider: model.ProviderMangadex}
	assert.NoError(t, s.StartDownload(context.Background(), sub, model.ContentRelease{}))
}

func TestStartDownloadDispatcherFailure(t *testing.T) {
	s := &Service{
		Dispatcher: &fakeDispatcher{err: errors.New("no manager")},
		Database:   &fakeDatabase{},
	}

	sub := &model.Subscription{ID: "sub-1", ContentID: "c1", Provider: model.ProviderMangadex}
	assert.Error(t, s.StartDownload(context.Background(), sub, model.ContentRelease{}))
}

func TestStartSeriesDownload(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	s := &Service{Dispatcher: dispatcher, Database: &fakeDatabase{}}

	series := &model.MonitoredSeries{
		ID:      "m1",
		Titles:  []string{"Example Series"},
		BaseDir: "/library/manga",
	}
	rel := model.ContentRelease{
		ReleaseID:   "r1",
		ContentID:   "content-9",
		ContentName: "Example Series",
		Provider:    model.ProviderBato,
	}

	require.NoError(t, s.StartSeriesDownload(context.Background(), series, rel))

	require.Len(t, dispatcher.requests, 1)
	req := dispatcher.requests[0]
	assert.Equal(t, model.ProviderBato, req.Provider)
	assert.Equal(t, "content-9", req.ContentID)
	assert.Equal(t, "/library/manga", req.BaseDir)
	assert.Equal(t, "Example Series", req.TempTitle)
}

func TestStartSeriesDownloadWithoutContentID(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	s := &Service{Dispatcher: dispatcher, Database: &fakeDatabase{}}

	err := s.StartSeriesDownload(context.Background(), &model.MonitoredSeries{ID: "m1"}, model.ContentRelease{ReleaseID: "r1"})
	assert.Error(t, err)
	assert.Empty(t, dispatcher.requests)
}
