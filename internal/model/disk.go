package model

// OnDiskContent is one scanned entry of a download directory. Chapter and
// Volume are the markers the file name was parsed into; either can be empty.
type OnDiskContent struct {
	SeriesName string
	Path       string
	Chapter    string
	Volume     string
}
