package tracking

import (
	"context"

	"github.com/Fesaa/mnema/internal/model"
)

type Database interface {
	GetActiveSubscriptions(ctx context.Context) ([]*model.Subscription, error)
	AddSubscription(ctx context.Context, sub *model.Subscription) error
	DeleteSubscription(ctx context.Context, id string) error

	GetMonitoredSeries(ctx context.Context) ([]*model.MonitoredSeries, error)
	AddMonitoredSeries(ctx context.Context, series *model.MonitoredSeries) error
	DeleteMonitoredSeries(ctx context.Context, id string) error
}
