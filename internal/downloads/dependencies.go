package downloads

import (
	"context"
	"time"

	"github.com/Fesaa/mnema/internal/content"
	"github.com/Fesaa/mnema/internal/model"
)

type Dispatcher interface {
	Download(req model.DownloadRequest) (*content.Item, error)
}

type Database interface {
	UpdateSubscriptionRefresh(ctx context.Context, id string, at time.Time) error
}
