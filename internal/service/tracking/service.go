// Package tracking manages the entities the watchers poll releases for
package tracking

import (
	"context"
	"errors"

	"github.com/Fesaa/mnema/internal/model"
	"go-micro.dev/v4/logger"
)

type Empty struct{}

type DeleteRequest struct {
	ID string `json:"id"`
}

type SubscriptionsResponse struct {
	Subscriptions []*model.Subscription `json:"subscriptions"`
}

type SeriesResponse struct {
	Series []*model.MonitoredSeries `json:"series"`
}

type Tracking struct {
	Database Database
}

func (s *Tracking) Subscribe(ctx context.Context, req *model.Subscription, resp *Empty) error {
	if req.ContentID == "" || req.Provider == "" {
		return errors.New("content id and provider are required")
	}

	req.Enabled = true
	if err := s.Database.AddSubscription(ctx, req); err != nil {
		logger.Errorf("Add subscription for %s:%s failed: %s", req.Provider, req.ContentID, err)
		return err
	}

	logger.Infof("Subscribed to %s:%s", req.Provider, req.ContentID)
	return nil
}

func (s *Tracking) Unsubscribe(ctx context.Context, req *DeleteRequest, resp *Empty) error {
	if err := s.Database.DeleteSubscription(ctx, req.ID); err != nil {
		logger.Errorf("Delete subscription %s failed: %s", req.ID, err)
		return err
	}
	return nil
}

func (s *Tracking) ListSubscriptions(ctx context.Context, req *Empty, resp *SubscriptionsResponse) error {
	subs, err := s.Database.GetActiveSubscriptions(ctx)
	if err != nil {
		logger.Errorf("Get subscriptions failed: %s", err)
		return err
	}
	resp.Subscriptions = subs
	return nil
}

func (s *Tracking) Monitor(ctx context.Context, req *model.MonitoredSeries, resp *Empty) error {
	if len(req.Titles) == 0 || len(req.Providers) == 0 {
		return errors.New("titles and providers are required")
	}

	if err := s.Database.AddMonitoredSeries(ctx, req); err != nil {
		logger.Errorf("Add monitored series failed: %s", err)
		return err
	}

	logger.Infof("Monitoring series '%s' on %d providers", req.Titles[0], len(req.Providers))
	return nil
}

func (s *Tracking) Unmonitor(ctx context.Context, req *DeleteRequest, resp *Empty) error {
	if err := s.Database.DeleteMonitoredSeries(ctx, req.ID); err != nil {
		logger.Errorf("Delete monitored series %s failed: %s", req.ID, err)
		return err
	}
	return nil
}

func (s *Tracking) ListMonitored(ctx context.Context, req *Empty, resp *SeriesResponse) error {
	series, err := s.Database.GetMonitoredSeries(ctx)
	if err != nil {
		logger.Errorf("Get monitored series failed: %s", err)
		return err
	}
	resp.Series = series
	return nil
}
