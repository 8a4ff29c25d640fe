package content

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Fesaa/mnema/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// journal records cross-collaborator events in arrival order
type journal struct {
	mu      sync.Mutex
	entries []string
}

func (j *journal) add(entry string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, entry)
}

func (j *journal) all() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]string{}, j.entries...)
}

type fakeClient struct {
	mu sync.Mutex

	series    *model.Series
	seriesErr error

	downloadErr error
	downloaded  []string

	// when set, DownloadChapter blocks until the gate closes even if the
	// context is already cancelled, like a transfer that is mid-write
	gate    chan struct{}
	journal *journal
}

func (f *fakeClient) GetSeries(ctx context.Context, contentID string) (*model.Series, error) {
	if f.seriesErr != nil {
		return nil, f.seriesErr
	}
	return f.series, nil
}

func (f *fakeClient) DownloadChapter(ctx context.Context, series *model.Series, chapter model.Chapter, destDir string) (int64, error) {
	if f.downloadErr != nil {
		return 0, f.downloadErr
	}
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	f.downloaded = append(f.downloaded, chapter.ID)
	f.mu.Unlock()
	if f.journal != nil {
		f.journal.add("write:" + chapter.ID)
	}
	return 1024, nil
}

func (f *fakeClient) GetRecentReleases(ctx context.Context) ([]model.ContentRelease, error) {
	return nil, nil
}

func (f *fakeClient) ParseReleaseTitles(releaseName string) []string {
	return nil
}

func (f *fakeClient) downloadedChapters() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string{}, f.downloaded...)
}

type fakeStorage struct {
	mu sync.Mutex

	onDisk  []model.OnDiskContent
	removed []string
	purged  []string
	journal *journal
}

func (f *fakeStorage) Scan(dir string) ([]model.OnDiskContent, error) {
	return f.onDisk, nil
}

func (f *fakeStorage) Remove(path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, path)
	return nil
}

func (f *fakeStorage) Purge(dir string) error {
	f.mu.Lock()
	f.purged = append(f.purged, dir)
	f.mu.Unlock()
	if f.journal != nil {
		f.journal.add("purge")
	}
	return nil
}

type fakeNotifier struct {
	mu sync.Mutex

	added   int
	deleted int
	sizes   []int64
}

func (f *fakeNotifier) StateUpdate(key model.ContentKey, state model.ContentState) {}
func (f *fakeNotifier) SizeUpdate(key model.ContentKey, sizeBytes int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sizes = append(f.sizes, sizeBytes)
}
func (f *fakeNotifier) ProgressUpdate(key model.ContentKey, progress float32, estimated time.Duration, speedType model.SpeedType, speed int64) {
}
func (f *fakeNotifier) ContentAdded(snapshot model.ContentSnapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.added++
}
func (f *fakeNotifier) ContentDeleted(key model.ContentKey) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted++
}
func (f *fakeNotifier) InfoUpdate(snapshot model.ContentSnapshot) {}

func (f *fakeNotifier) BulkInfoUpdate(snapshots []model.ContentSnapshot) {}

func (f *fakeNotifier) counts() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.added, f.deleted
}

func testSeries() *model.Series {
	return &model.Series{
		ID:       "series-1",
		Title:    "Example Series",
		Provider: model.ProviderMangadex,
		Chapters: []model.Chapter{
			{ID: "ch-1", Volume: "1", Chapter: "1"},
			{ID: "ch-2", Volume: "1", Chapter: "2"},
		},
	}
}

func waitForState(t *testing.T, item *Item, state model.ContentState) {
	t.Helper()
	require.Eventually(t, func() bool {
		return item.State() == state
	}, 2*time.Second, 5*time.Millisecond)
}

func TestManagerDownloadIsIdempotent(t *testing.T) {
	cli := &fakeClient{series: testSeries()}
	notif := &fakeNotifier{}
	m := NewManager(model.ProviderMangadex, cli, &fakeStorage{}, notif, 2)

	req := model.DownloadRequest{
		Provider:  model.ProviderMangadex,
		ContentID: "series-1",
		BaseDir:   t.TempDir(),
	}

	const callers = 16
	items := make([]*Item, callers)
	var wg sync.WaitGroup
	for n := 0; n < callers; n++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			item, err := m.Download(req)
			assert.NoError(t, err)
			items[n] = item
		}(n)
	}
	wg.Wait()

	for n := 1; n < callers; n++ {
		assert.Same(t, items[0], items[n])
	}

	added, _ := notif.counts()
	assert.Equal(t, 1, added)
	assert.Len(t, m.GetAllContent(), 1)
}

func TestManagerDownloadRejectsForeignProvider(t *testing.T) {
	m := NewManager(model.ProviderMangadex, &fakeClient{}, &fakeStorage{}, &fakeNotifier{}, 1)

	_, err := m.Download(model.DownloadRequest{Provider: model.ProviderNyaa, ContentID: "x"})
	assert.Error(t, err)

	_, err = m.Download(model.DownloadRequest{Provider: model.ProviderMangadex})
	assert.Error(t, err)
}

func TestManagerStopDownloadMissingItem(t *testing.T) {
	store := &fakeStorage{}
	m := NewManager(model.ProviderMangadex, &fakeClient{}, store, &fakeNotifier{}, 1)

	err := m.StopDownload(model.StopRequest{
		Provider:    model.ProviderMangadex,
		ContentID:   "never-added",
		DeleteFiles: true,
	})
	assert.NoError(t, err)
	assert.Empty(t, store.purged)
}

func TestManagerStopDownloadCancelsAndPurges(t *testing.T) {
	cli := &fakeClient{series: testSeries()}
	store := &fakeStorage{}
	notif := &fakeNotifier{}
	m := NewManager(model.ProviderMangadex, cli, store, notif, 1)

	item, err := m.Download(model.DownloadRequest{
		Provider:  model.ProviderMangadex,
		ContentID: "series-1",
		BaseDir:   t.TempDir(),
	})
	require.NoError(t, err)
	waitForState(t, item, model.StateWaiting)

	err = m.StopDownload(model.StopRequest{
		Provider:    model.ProviderMangadex,
		ContentID:   "series-1",
		DeleteFiles: true,
	})
	require.NoError(t, err)

	assert.Equal(t, model.StateCancelled, item.State())
	assert.Equal(t, []string{item.DownloadDir()}, store.purged)
	assert.Empty(t, m.GetAllContent())

	require.Eventually(t, func() bool {
		_, deleted := notif.counts()
		return deleted > 0
	}, 2*time.Second, 5*time.Millisecond)
}

func TestManagerStopDownloadWaitsForTransferUnwind(t *testing.T) {
	j := &journal{}
	gate := make(chan struct{})
	cli := &fakeClient{series: testSeries(), gate: gate, journal: j}
	store := &fakeStorage{journal: j}
	m := NewManager(model.ProviderMangadex, cli, store, &fakeNotifier{}, 1)

	item, err := m.Download(model.DownloadRequest{
		Provider:  model.ProviderMangadex,
		ContentID: "series-1",
		BaseDir:   t.TempDir(),
		Metadata:  model.DownloadMetadata{StartImmediately: true},
	})
	require.NoError(t, err)
	waitForState(t, item, model.StateDownloading)

	// the transfer finishes its in-flight write a little after the stop
	// request cancels the item
	go func() {
		time.Sleep(50 * time.Millisecond)
		close(gate)
	}()

	err = m.StopDownload(model.StopRequest{
		Provider:    model.ProviderMangadex,
		ContentID:   "series-1",
		DeleteFiles: true,
	})
	require.NoError(t, err)

	// the purge must come after the last write, or the landed file
	// survives the delete the user asked for
	entries := j.all()
	require.NotEmpty(t, entries)
	assert.Equal(t, "write:ch-1", entries[0])
	assert.Equal(t, "purge", entries[len(entries)-1])
}

func TestManagerEvictionOfReplacedItem(t *testing.T) {
	gate := make(chan struct{})
	cli := &fakeClient{series: testSeries(), gate: gate}
	notif := &fakeNotifier{}
	m := NewManager(model.ProviderMangadex, cli, &fakeStorage{}, notif, 1)

	old, err := m.Download(model.DownloadRequest{
		Provider:  model.ProviderMangadex,
		ContentID: "series-1",
		BaseDir:   t.TempDir(),
		Metadata:  model.DownloadMetadata{StartImmediately: true},
	})
	require.NoError(t, err)
	waitForState(t, old, model.StateDownloading)

	// stop without deleting files, so the old item's goroutine is still
	// unwinding when the same content id is registered again
	require.NoError(t, m.StopDownload(model.StopRequest{
		Provider:  model.ProviderMangadex,
		ContentID: "series-1",
	}))

	replacement, err := m.Download(model.DownloadRequest{
		Provider:  model.ProviderMangadex,
		ContentID: "series-1",
		BaseDir:   t.TempDir(),
	})
	require.NoError(t, err)
	assert.NotSame(t, old, replacement)

	close(gate)
	<-old.Done()

	// only the explicit stop announces a deletion; the old item's
	// eviction must stay silent for a key the replacement now owns
	_, deleted := notif.counts()
	assert.Equal(t, 1, deleted)
	assert.Len(t, m.GetAllContent(), 1)
}

func TestManagerRelayMessageUnknownContent(t *testing.T) {
	m := NewManager(model.ProviderMangadex, &fakeClient{}, &fakeStorage{}, &fakeNotifier{}, 1)

	_, err := m.RelayMessage(model.Message{
		Provider:  model.ProviderMangadex,
		ContentID: "missing",
		Type:      model.MessageListContent,
	})
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, m.MoveToDownloadQueue("missing"), ErrNotFound)
}

func TestManagerFullLifecycle(t *testing.T) {
	cli := &fakeClient{series: testSeries()}
	store := &fakeStorage{
		onDisk: []model.OnDiskContent{
			{Path: "/d/example/v1c1.cbz", Volume: "1", Chapter: "1"},
		},
	}
	notif := &fakeNotifier{}
	m := NewManager(model.ProviderMangadex, cli, store, notif, 1)

	_, err := m.Download(model.DownloadRequest{
		Provider:  model.ProviderMangadex,
		ContentID: "series-1",
		BaseDir:   t.TempDir(),
		Metadata:  model.DownloadMetadata{StartImmediately: true},
	})
	require.NoError(t, err)

	// item leaves the registry once its run reaches a terminal state
	require.Eventually(t, func() bool {
		return len(m.GetAllContent()) == 0
	}, 2*time.Second, 5*time.Millisecond)

	// chapter 1 was satisfied by the scan, only chapter 2 is transferred
	assert.Equal(t, []string{"ch-2"}, cli.downloadedChapters())
	assert.Empty(t, store.removed)
	assert.Equal(t, []int64{1024}, notif.sizes)
}

func TestManagerInteractiveFlow(t *testing.T) {
	cli := &fakeClient{series: testSeries()}
	m := NewManager(model.ProviderMangadex, cli, &fakeStorage{}, &fakeNotifier{}, 1)

	item, err := m.Download(model.DownloadRequest{
		Provider:  model.ProviderMangadex,
		ContentID: "series-1",
		BaseDir:   t.TempDir(),
	})
	require.NoError(t, err)
	waitForState(t, item, model.StateWaiting)

	reply, err := m.RelayMessage(model.Message{
		ContentID: "series-1",
		Type:      model.MessageListContent,
	})
	require.NoError(t, err)
	assert.Len(t, reply.Chapters, 2)

	reply, err = m.RelayMessage(model.Message{
		ContentID: "series-1",
		Type:      model.MessageFilterContent,
		Data:      []string{"ch-2"},
	})
	require.NoError(t, err)
	require.Len(t, reply.Chapters, 1)
	assert.Equal(t, "ch-2", reply.Chapters[0].ID)

	require.NoError(t, m.MoveToDownloadQueue("series-1"))

	require.Eventually(t, func() bool {
		return len(m.GetAllContent()) == 0
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"ch-2"}, cli.downloadedChapters())
}
