package model

import "fmt"

// Provider identifies an external source of content and release metadata
type Provider string

const (
	ProviderMangadex Provider = "mangadex"
	ProviderDynasty  Provider = "dynasty"
	ProviderWebtoon  Provider = "webtoon"
	ProviderNyaa     Provider = "nyaa"
	ProviderBato     Provider = "bato"
)

// ContentKey identifies a piece of content within one provider
type ContentKey struct {
	Provider  Provider
	ContentID string
}

func (k ContentKey) String() string {
	return fmt.Sprintf("%s:%s", k.Provider, k.ContentID)
}
