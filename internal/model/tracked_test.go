package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchesTitle(t *testing.T) {
	series := &MonitoredSeries{
		Titles: []string{"Dungeon Meshi", "Delicious in Dungeon"},
	}

	type testCase struct {
		name       string
		candidates []string
		matches    bool
	}

	testCases := []testCase{
		{
			name:       "exact",
			candidates: []string{"Dungeon Meshi"},
			matches:    true,
		},
		{
			name:       "case and spacing ignored",
			candidates: []string{"  dungeon   MESHI "},
			matches:    true,
		},
		{
			name:       "small typo within distance",
			candidates: []string{"Dungeon Mesh"},
			matches:    true,
		},
		{
			name:       "alternate title",
			candidates: []string{"Delicious in Dungeon"},
			matches:    true,
		},
		{
			name:       "second candidate matches",
			candidates: []string{"Something Else", "Dungeon Meshi"},
			matches:    true,
		},
		{
			name:       "different series",
			candidates: []string{"Berserk"},
			matches:    false,
		},
		{
			name:       "empty candidate never matches",
			candidates: []string{""},
			matches:    false,
		},
		{
			name:    "no candidates",
			matches: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.matches, series.MatchesTitle(tc.candidates))
		})
	}
}

func TestSubscriptionMatches(t *testing.T) {
	sub := &Subscription{ContentID: "c1", Provider: ProviderMangadex}

	assert.True(t, sub.Matches(&ContentRelease{ContentID: "c1", Provider: ProviderMangadex}))
	assert.False(t, sub.Matches(&ContentRelease{ContentID: "c2", Provider: ProviderMangadex}))
	assert.False(t, sub.Matches(&ContentRelease{ContentID: "c1", Provider: ProviderBato}))
	assert.False(t, sub.Matches(&ContentRelease{Provider: ProviderMangadex}))
}
