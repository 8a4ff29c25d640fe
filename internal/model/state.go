package model

// ContentState is the lifecycle state of an active download item
type ContentState int

const (
	StateQueued ContentState = iota
	StateLoading
	StateWaiting
	StateReady
	StateDownloading
	StateCleanup
	StateCancelled
)

var stateNames = map[ContentState]string{
	StateQueued:      "queued",
	StateLoading:     "loading",
	StateWaiting:     "waiting",
	StateReady:       "ready",
	StateDownloading: "downloading",
	StateCleanup:     "cleanup",
	StateCancelled:   "cancelled",
}

func (s ContentState) String() string {
	name, ok := stateNames[s]
	if !ok {
		return "unknown"
	}
	return name
}

// Terminal reports whether the item can no longer progress
func (s ContentState) Terminal() bool {
	return s == StateCleanup || s == StateCancelled
}
