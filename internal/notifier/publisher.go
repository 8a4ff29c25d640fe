package notifier

import (
	"context"
	"time"

	"github.com/Fesaa/mnema/internal/model"
	"github.com/google/uuid"
	"go-micro.dev/v4"
	"go-micro.dev/v4/logger"
)

// Publisher pushes live item events out to connected clients
type Publisher interface {
	StateUpdate(key model.ContentKey, state model.ContentState)
	SizeUpdate(key model.ContentKey, sizeBytes int64)
	ProgressUpdate(key model.ContentKey, progress float32, estimated time.Duration, speedType model.SpeedType, speed int64)
	ContentAdded(snapshot model.ContentSnapshot)
	ContentDeleted(key model.ContentKey)
	InfoUpdate(snapshot model.ContentSnapshot)
	BulkInfoUpdate(snapshots []model.ContentSnapshot)
}

type publisher struct {
	event micro.Event
}

// NewPublisher creates a Publisher over the service message bus
func NewPublisher(service micro.Service) Publisher {
	return &publisher{
		event: micro.NewEvent(NotificationTopic, service.Client()),
	}
}

func (p *publisher) publish(e *Event) {
	e.EventID = uuid.NewString()
	if err := p.event.Publish(context.Background(), e); err != nil {
		logger.Warnf("Publish %s notification failed: %s", e.Kind, err)
	}
}

func (p *publisher) StateUpdate(key model.ContentKey, state model.ContentState) {
	p.publish(&Event{
		Kind:      KindContentStateUpdate,
		Provider:  key.Provider,
		ContentID: key.ContentID,
		State:     &state,
	})
}

func (p *publisher) SizeUpdate(key model.ContentKey, sizeBytes int64) {
	p.publish(&Event{
		Kind:      KindContentSizeUpdate,
		Provider:  key.Provider,
		ContentID: key.ContentID,
		SizeBytes: &sizeBytes,
	})
}

func (p *publisher) ProgressUpdate(key model.ContentKey, progress float32, estimated time.Duration, speedType model.SpeedType, speed int64) {
	estimatedMs := estimated.Milliseconds()
	p.publish(&Event{
		Kind:        KindContentProgressUpdate,
		Provider:    key.Provider,
		ContentID:   key.ContentID,
		Progress:    &progress,
		EstimatedMs: &estimatedMs,
		SpeedType:   speedType,
		Speed:       speed,
	})
}

func (p *publisher) ContentAdded(snapshot model.ContentSnapshot) {
	p.publish(&Event{
		Kind:      KindAddContent,
		Provider:  snapshot.Provider,
		ContentID: snapshot.ContentID,
		Snapshot:  &snapshot,
	})
}

func (p *publisher) ContentDeleted(key model.ContentKey) {
	p.publish(&Event{
		Kind:      KindDeleteContent,
		Provider:  key.Provider,
		ContentID: key.ContentID,
	})
}

func (p *publisher) InfoUpdate(snapshot model.ContentSnapshot) {
	p.publish(&Event{
		Kind:      KindContentInfoUpdate,
		Provider:  snapshot.Provider,
		ContentID: snapshot.ContentID,
		Snapshot:  &snapshot,
	})
}

// BulkInfoUpdate pushes every given snapshot in a single envelope; clients
// use it to resync their whole view instead of polling List
func (p *publisher) BulkInfoUpdate(snapshots []model.ContentSnapshot) {
	p.publish(&Event{
		Kind:      KindBulkContentInfoUpdate,
		Snapshots: snapshots,
	})
}
