package notifier

import (
	"github.com/Fesaa/mnema/internal/model"
)

// NotificationTopic is the broker topic all client-facing events go out on
const NotificationTopic = "mnema.notifications"

type EventKind string

const (
	KindContentStateUpdate    EventKind = "ContentStateUpdate"
	KindContentSizeUpdate     EventKind = "ContentSizeUpdate"
	KindContentProgressUpdate EventKind = "ContentProgressUpdate"
	KindAddContent            EventKind = "AddContent"
	KindDeleteContent         EventKind = "DeleteContent"
	KindContentInfoUpdate     EventKind = "ContentInfoUpdate"
	KindBulkContentInfoUpdate EventKind = "BulkContentInfoUpdate"
)

// Event is the envelope published on the notification topic. Only the
// fields relevant to the Kind are set. EventID lets clients drop envelopes
// they already handled when the broker redelivers.
type Event struct {
	EventID   string         `json:"eventId"`
	Kind      EventKind      `json:"kind"`
	Provider  model.Provider `json:"provider"`
	ContentID string         `json:"contentId"`

	State *model.ContentState `json:"state,omitempty"`

	SizeBytes *int64 `json:"sizeBytes,omitempty"`

	Progress    *float32        `json:"progress,omitempty"`
	EstimatedMs *int64          `json:"estimatedMs,omitempty"`
	SpeedType   model.SpeedType `json:"speedType,omitempty"`
	Speed       int64           `json:"speed,omitempty"`

	Snapshot  *model.ContentSnapshot  `json:"snapshot,omitempty"`
	Snapshots []model.ContentSnapshot `json:"snapshots,omitempty"`
}
