package content

import (
	"context"
	"errors"
	"fmt"
	"time"

	core "github.com/Fesaa/mnema/internal/content"
	"github.com/Fesaa/mnema/internal/lock"
	"github.com/Fesaa/mnema/internal/model"
	"go-micro.dev/v4/logger"
)

const lockTimeout = 15 * time.Second

type Empty struct{}

type MoveToQueueRequest struct {
	Provider  model.Provider `json:"provider"`
	ContentID string         `json:"contentId"`
}

type ListResponse struct {
	Content []model.ContentSnapshot `json:"content"`
}

// Content exposes the content manager to other services and the UI
type Content struct {
	Locker     lock.Locker
	Dispatcher *core.Dispatcher
	Notifier   core.Notifier
}

func (s *Content) Download(ctx context.Context, req *model.DownloadRequest, resp *model.ContentSnapshot) error {
	if req.Provider == "" || req.ContentID == "" {
		return errors.New("provider and content id are required")
	}

	lk, err := lock.TimedLock(ctx, s.Locker, req.Key(), lockTimeout)
	if err != nil {
		return fmt.Errorf("acquire lock failed: %w", err)
	}
	defer lk.Unlock()

	item, err := s.Dispatcher.Download(*req)
	if err != nil {
		logger.Errorf("Download %s failed: %s", req.Key(), err)
		return err
	}

	*resp = item.Snapshot()
	return nil
}

func (s *Content) Stop(ctx context.Context, req *model.StopRequest, resp *Empty) error {
	key := model.ContentKey{Provider: req.Provider, ContentID: req.ContentID}

	lk, err := lock.TimedLock(ctx, s.Locker, key, lockTimeout)
	if err != nil {
		return fmt.Errorf("acquire lock failed: %w", err)
	}
	defer lk.Unlock()

	if err := s.Dispatcher.StopDownload(*req); err != nil {
		logger.Errorf("Stop %s failed: %s", key, err)
		return err
	}

	logger.Infof("Stopped %s", key)
	return nil
}

func (s *Content) MoveToQueue(ctx context.Context, req *MoveToQueueRequest, resp *Empty) error {
	if err := s.Dispatcher.MoveToDownloadQueue(req.Provider, req.ContentID); err != nil {
		logger.Warnf("Move %s:%s to download queue failed: %s", req.Provider, req.ContentID, err)
		return err
	}
	return nil
}

func (s *Content) List(ctx context.Context, req *Empty, resp *ListResponse) error {
	resp.Content = s.Dispatcher.GetAllContent()
	return nil
}

// Announce republishes every live item's snapshot in one envelope on the
// notification topic, so a freshly connected client can resync its view
func (s *Content) Announce(ctx context.Context, req *Empty, resp *Empty) error {
	s.Notifier.BulkInfoUpdate(s.Dispatcher.GetAllContent())
	return nil
}

func (s *Content) Message(ctx context.Context, req *model.Message, resp *model.MessageReply) error {
	reply, err := s.Dispatcher.RelayMessage(*req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return err
		}
		logger.Errorf("Relay message to %s:%s failed: %s", req.Provider, req.ContentID, err)
		return err
	}

	*resp = *reply
	return nil
}
