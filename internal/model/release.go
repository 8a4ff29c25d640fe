package model

import "time"

// ContentRelease is one externally-announced release. ReleaseID is unique
// within a provider and is the sole dedup key.
type ContentRelease struct {
	ReleaseID   string    `bson:"releaseid"`
	ContentID   string    `bson:"contentid,omitempty"`
	ReleaseName string    `bson:"releasename"`
	ContentName string    `bson:"contentname"`
	ReleaseDate time.Time `bson:"releasedate"`
	Provider    Provider  `bson:"provider"`
}
