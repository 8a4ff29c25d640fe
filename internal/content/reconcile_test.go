package content

import (
	"testing"

	"github.com/Fesaa/mnema/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestFilterAlreadyDownloadedContent(t *testing.T) {
	type testCase struct {
		name      string
		queued    []model.Chapter
		onDisk    []model.OnDiskContent
		remaining []model.Chapter
		toRemove  []string
	}

	testCases := []testCase{
		{
			name: "empty disk keeps everything queued",
			queued: []model.Chapter{
				{ID: "c1", Volume: "1", Chapter: "1"},
				{ID: "c2", Volume: "1", Chapter: "2"},
			},
			remaining: []model.Chapter{
				{ID: "c1", Volume: "1", Chapter: "1"},
				{ID: "c2", Volume: "1", Chapter: "2"},
			},
		},
		{
			name: "exact match leaves the queue",
			queued: []model.Chapter{
				{ID: "c1", Volume: "1", Chapter: "1"},
				{ID: "c2", Volume: "1", Chapter: "2"},
			},
			onDisk: []model.OnDiskContent{
				{SeriesName: "Example", Path: "/d/example/v1c1.cbz", Volume: "1", Chapter: "1"},
			},
			remaining: []model.Chapter{
				{ID: "c2", Volume: "1", Chapter: "2"},
			},
		},
		{
			name: "regrouped chapter stays queued and stale file is removed",
			queued: []model.Chapter{
				{ID: "c12", Volume: "3", Chapter: "12"},
			},
			onDisk: []model.OnDiskContent{
				{SeriesName: "Example", Path: "/d/example/v2c12.cbz", Volume: "2", Chapter: "12"},
			},
			remaining: []model.Chapter{
				{ID: "c12", Volume: "3", Chapter: "12"},
			},
			toRemove: []string{"/d/example/v2c12.cbz"},
		},
		{
			name: "extra files on disk are never touched",
			queued: []model.Chapter{
				{ID: "c1", Volume: "1", Chapter: "1"},
			},
			onDisk: []model.OnDiskContent{
				{SeriesName: "Other", Path: "/d/other/v5c40.cbz", Volume: "5", Chapter: "40"},
			},
			remaining: []model.Chapter{
				{ID: "c1", Volume: "1", Chapter: "1"},
			},
		},
		{
			name: "chapter marker mismatch is not a match",
			queued: []model.Chapter{
				{ID: "c2", Volume: "1", Chapter: "2"},
			},
			onDisk: []model.OnDiskContent{
				{SeriesName: "Example", Path: "/d/example/v1.cbz", Volume: "1"},
			},
			remaining: []model.Chapter{
				{ID: "c2", Volume: "1", Chapter: "2"},
			},
		},
		{
			name: "volume-only entries do not count as regrouped",
			queued: []model.Chapter{
				{ID: "v3", Volume: "3"},
			},
			onDisk: []model.OnDiskContent{
				{SeriesName: "Example", Path: "/d/example/v2.cbz", Volume: "2"},
			},
			remaining: []model.Chapter{
				{ID: "v3", Volume: "3"},
			},
		},
		{
			name: "stale path reported once for several regrouped chapters",
			queued: []model.Chapter{
				{ID: "a", Volume: "2", Chapter: "7"},
				{ID: "b", Volume: "3", Chapter: "7"},
			},
			onDisk: []model.OnDiskContent{
				{SeriesName: "Example", Path: "/d/example/v1c7.cbz", Volume: "1", Chapter: "7"},
			},
			remaining: []model.Chapter{
				{ID: "a", Volume: "2", Chapter: "7"},
				{ID: "b", Volume: "3", Chapter: "7"},
			},
			toRemove: []string{"/d/example/v1c7.cbz"},
		},
		{
			name: "everything already downloaded",
			queued: []model.Chapter{
				{ID: "c1", Volume: "1", Chapter: "1"},
			},
			onDisk: []model.OnDiskContent{
				{SeriesName: "Example", Path: "/d/example/v1c1.cbz", Volume: "1", Chapter: "1"},
			},
			remaining: []model.Chapter{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			remaining, toRemove := FilterAlreadyDownloadedContent(tc.queued, tc.onDisk)
			assert.Equal(t, tc.remaining, remaining)
			assert.Equal(t, tc.toRemove, toRemove)
		})
	}
}

func TestFilterAlreadyDownloadedContentIsIdempotent(t *testing.T) {
	queued := []model.Chapter{
		{ID: "c1", Volume: "1", Chapter: "1"},
		{ID: "c12", Volume: "3", Chapter: "12"},
	}
	onDisk := []model.OnDiskContent{
		{Path: "/d/v1c1.cbz", Volume: "1", Chapter: "1"},
		{Path: "/d/v2c12.cbz", Volume: "2", Chapter: "12"},
	}

	first, firstRemove := FilterAlreadyDownloadedContent(queued, onDisk)
	second, secondRemove := FilterAlreadyDownloadedContent(queued, onDisk)

	assert.Equal(t, first, second)
	assert.Equal(t, firstRemove, secondRemove)
	assert.Equal(t, []model.Chapter{{ID: "c12", Volume: "3", Chapter: "12"}}, first)
	assert.Equal(t, []string{"/d/v2c12.cbz"}, firstRemove)
}
