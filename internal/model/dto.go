package model

// DownloadMetadata carries optional per-request behavior flags
type DownloadMetadata struct {
	// StartImmediately skips the interactive Waiting pause
	StartImmediately bool `json:"startImmediately"`
}

// DownloadRequest asks the manager to start tracking a piece of content
type DownloadRequest struct {
	Provider  Provider         `json:"provider"`
	ContentID string           `json:"contentId"`
	BaseDir   string           `json:"baseDir"`
	TempTitle string           `json:"tempTitle"`
	Metadata  DownloadMetadata `json:"metadata"`
}

func (r *DownloadRequest) Key() ContentKey {
	return ContentKey{Provider: r.Provider, ContentID: r.ContentID}
}

// StopRequest cancels an active item, optionally purging its directory
type StopRequest struct {
	Provider    Provider `json:"provider"`
	ContentID   string   `json:"contentId"`
	DeleteFiles bool     `json:"deleteFiles"`
}

// MessageType identifies an interactive action on a Waiting item
type MessageType int

const (
	MessageListContent MessageType = iota
	MessageFilterContent
	MessageStartDownload
)

// Message is a user-originated action routed to an active item
type Message struct {
	Provider  Provider    `json:"provider"`
	ContentID string      `json:"contentId"`
	Type      MessageType `json:"type"`
	Data      []string    `json:"data"`
}

// MessageReply is the payload returned by an item for a Message
type MessageReply struct {
	Chapters []Chapter `json:"chapters,omitempty"`
}

// SpeedType says what unit a progress speed is measured in
type SpeedType int

const (
	SpeedBytes SpeedType = iota
	SpeedImages
)

// DownloadInfo is the observable transfer progress of an item
type DownloadInfo struct {
	TotalChapters int       `json:"totalChapters"`
	Done          int       `json:"done"`
	SizeBytes     int64     `json:"sizeBytes"`
	SpeedType     SpeedType `json:"speedType"`
	Speed         int64     `json:"speed"`
}

// ContentSnapshot is a shallow copy of an item's observable state
type ContentSnapshot struct {
	Provider    Provider     `json:"provider"`
	ContentID   string       `json:"contentId"`
	Title       string       `json:"title"`
	DownloadDir string       `json:"downloadDir"`
	State       ContentState `json:"state"`
	Info        DownloadInfo `json:"info"`
}
