// Package downloads turns watcher matches into content-manager requests
package downloads

import (
	"context"
	"fmt"
	"time"

	"github.com/Fesaa/mnema/internal/model"
	"go-micro.dev/v4/logger"
)

type Service struct {
	Dispatcher Dispatcher
	Database   Database
}

// StartDownload begins downloading a matched subscription's content. The
// manager's idempotent registration makes a duplicate trigger attach to the
// already-running item instead of starting a second transfer.
func (s *Service) StartDownload(ctx context.Context, sub *model.Subscription, release model.ContentRelease) error {
	req := model.DownloadRequest{
		Provider:  sub.Provider,
		ContentID: sub.ContentID,
		BaseDir:   sub.BaseDir,
		TempTitle: sub.Title,
		Metadata:  model.DownloadMetadata{StartImmediately: true},
	}

	if _, err := s.Dispatcher.Download(req); err != nil {
		return fmt.Errorf("start download failed: %w", err)
	}

	logger.Infof("Release '%s' triggered download of subscription '%s'", release.ReleaseName, sub.Title)

	if err := s.Database.UpdateSubscriptionRefresh(ctx, sub.ID, time.Now()); err != nil {
		logger.Warnf("Update subscription refresh time failed: %s", err)
	}
	return nil
}

// StartSeriesDownload begins downloading for a matched monitored series
func (s *Service) StartSeriesDownload(ctx context.Context, series *model.MonitoredSeries, release model.ContentRelease) error {
	if release.ContentID == "" {
		return fmt.Errorf("release %s carries no content id", release.ReleaseID)
	}

	req := model.DownloadRequest{
		Provider:  release.Provider,
		ContentID: release.ContentID,
		BaseDir:   series.BaseDir,
		TempTitle: release.ContentName,
		Metadata:  model.DownloadMetadata{StartImmediately: true},
	}

	if _, err := s.Dispatcher.Download(req); err != nil {
		return fmt.Errorf("start download failed: %w", err)
	}

	logger.Infof("Release '%s' triggered download of monitored series %s", release.ReleaseName, series.ID)
	return nil
}
