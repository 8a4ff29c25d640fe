package watcher

import (
	"github.com/Fesaa/mnema/internal/analysis"
	"github.com/Fesaa/mnema/internal/model"
	"github.com/Fesaa/mnema/internal/provider"
)

// registryTitleParser asks the provider's client for candidate titles and
// falls back to the generic name analyzer for unknown providers
type registryTitleParser struct {
	registry *provider.Registry
}

func NewTitleParser(registry *provider.Registry) TitleParser {
	return &registryTitleParser{registry: registry}
}

func (p *registryTitleParser) ParseTitles(prov model.Provider, releaseName string) []string {
	if cli, ok := p.registry.Get(prov); ok {
		if titles := cli.ParseReleaseTitles(releaseName); len(titles) > 0 {
			return titles
		}
	}
	return analysis.AnalyzeReleaseName(releaseName).Titles
}
