package content

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/Fesaa/mnema/internal/model"
	"github.com/Fesaa/mnema/internal/provider"
	"go-micro.dev/v4/logger"
	"golang.org/x/sync/semaphore"
)

const progressInterval = 5 * time.Second

// Item is the state machine for a single in-flight download. Its
// progression runs on its own goroutine; Cancel and ProcessMessage can be
// called from any goroutine at any time.
type Item struct {
	mu sync.Mutex

	key     model.ContentKey
	title   string
	dir     string
	request model.DownloadRequest

	state    model.ContentState
	series   *model.Series
	queued   []model.Chapter
	toRemove []string

	done      int
	total     int
	sizeBytes int64
	startedAt time.Time

	ctx     context.Context
	cancel  context.CancelFunc
	startCh chan struct{}
	doneCh  chan struct{}

	cli      provider.Client
	store    Storage
	notifier Notifier
	slots    *semaphore.Weighted
	onDone   func(*Item)

	log logger.Logger
}

func newItem(req model.DownloadRequest, cli provider.Client, store Storage, notif Notifier, slots *semaphore.Weighted, onDone func(*Item)) *Item {
	title := req.TempTitle
	if title == "" {
		title = req.ContentID
	}

	item := &Item{
		key:      req.Key(),
		title:    title,
		dir:      filepath.Join(req.BaseDir, title),
		request:  req,
		state:    model.StateQueued,
		startCh:  make(chan struct{}),
		doneCh:   make(chan struct{}),
		cli:      cli,
		store:    store,
		notifier: notif,
		slots:    slots,
		onDone:   onDone,
	}
	item.ctx, item.cancel = context.WithCancel(context.Background())
	item.log = logger.Fields(map[string]interface{}{
		"content": item.key.String(),
	})
	return item
}

func (i *Item) Key() model.ContentKey {
	return i.key
}

// DownloadDir returns the directory this item writes into
func (i *Item) DownloadDir() string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.dir
}

// State returns the current lifecycle state
func (i *Item) State() model.ContentState {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.state
}

// Snapshot returns a shallow copy of the observable state
func (i *Item) Snapshot() model.ContentSnapshot {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.snapshotLocked()
}

func (i *Item) snapshotLocked() model.ContentSnapshot {
	info := model.DownloadInfo{
		TotalChapters: i.total,
		Done:          i.done,
		SizeBytes:     i.sizeBytes,
		SpeedType:     model.SpeedBytes,
		Speed:         i.speedLocked(),
	}
	return model.ContentSnapshot{
		Provider:    i.key.Provider,
		ContentID:   i.key.ContentID,
		Title:       i.title,
		DownloadDir: i.dir,
		State:       i.state,
		Info:        info,
	}
}

func (i *Item) speedLocked() int64 {
	if i.startedAt.IsZero() {
		return 0
	}
	elapsed := time.Since(i.startedAt).Seconds()
	if elapsed <= 0 {
		return 0
	}
	return int64(float64(i.sizeBytes) / elapsed)
}

// Cancel aborts the item from any non-terminal state
func (i *Item) Cancel() {
	i.setState(model.StateCancelled)
	i.cancel()
}

// Start forces a Waiting item towards Ready without user interaction
func (i *Item) Start() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.state != model.StateWaiting {
		return fmt.Errorf("cannot start download in state %s", i.state)
	}
	i.signalStartLocked()
	return nil
}

func (i *Item) signalStartLocked() {
	select {
	case <-i.startCh:
	default:
		close(i.startCh)
	}
}

func (i *Item) setStateLocked(state model.ContentState) bool {
	if i.state == state || i.state.Terminal() {
		return false
	}
	i.state = state
	i.log.Logf(logger.DebugLevel, "State -> %s", state)
	return true
}

// setState mutates under the lock but publishes outside it, so a slow
// notification transport can never hold up Snapshot callers
func (i *Item) setState(state model.ContentState) {
	i.mu.Lock()
	changed := i.setStateLocked(state)
	i.mu.Unlock()

	if changed {
		i.notifier.StateUpdate(i.key, state)
	}
}

// run is the item's background progression. It owns the goroutine from
// Queued to Cleanup and reports itself done through onDone.
func (i *Item) run() {
	defer i.finish()

	// Queued -> Loading: wait for a download slot
	if err := i.slots.Acquire(i.ctx, 1); err != nil {
		return
	}
	defer i.slots.Release(1)

	i.setState(model.StateLoading)
	if err := i.load(); err != nil {
		if i.ctx.Err() == nil {
			i.log.Logf(logger.ErrorLevel, "Load metadata failed: %s", err)
		}
		return
	}

	// Loading -> Waiting: hold for interactive confirmation unless the
	// request asked for an immediate start
	i.setState(model.StateWaiting)
	if !i.request.Metadata.StartImmediately {
		select {
		case <-i.startCh:
		case <-i.ctx.Done():
			return
		}
	}

	// Waiting -> Ready: reconcile against what already exists on disk
	i.setState(model.StateReady)
	if err := i.reconcile(); err != nil {
		i.log.Logf(logger.WarnLevel, "Reconcile against disk failed: %s", err)
	}

	i.mu.Lock()
	remaining := len(i.queued)
	i.mu.Unlock()
	if remaining == 0 {
		i.log.Log(logger.InfoLevel, "Nothing left to download")
		return
	}

	// Ready -> Downloading
	i.setState(model.StateDownloading)
	i.download()
}

func (i *Item) finish() {
	i.Cleanup()
	if i.onDone != nil {
		i.onDone(i)
	}
	close(i.doneCh)
}

// Done is closed once the background progression has fully unwound; after
// that no collaborator call on behalf of this item is still in flight
func (i *Item) Done() <-chan struct{} {
	return i.doneCh
}

// Cleanup is idempotent; it closes the item's cancellation scope and marks
// it terminal without touching any transferred data
func (i *Item) Cleanup() {
	i.setState(model.StateCleanup)
	i.cancel()
}

func (i *Item) load() error {
	series, err := i.cli.GetSeries(i.ctx, i.key.ContentID)
	if err != nil {
		return fmt.Errorf("get series failed: %w", err)
	}

	i.mu.Lock()
	i.series = series
	if series.Title != "" {
		i.title = series.Title
		i.dir = filepath.Join(i.request.BaseDir, series.Title)
	}
	i.queued = append([]model.Chapter{}, series.Chapters...)
	i.total = len(i.queued)
	snapshot := i.snapshotLocked()
	i.mu.Unlock()

	i.notifier.InfoUpdate(snapshot)
	return nil
}

func (i *Item) reconcile() error {
	onDisk, err := i.store.Scan(i.DownloadDir())
	if err != nil {
		return fmt.Errorf("scan download dir failed: %w", err)
	}

	i.mu.Lock()
	i.queued, i.toRemove = FilterAlreadyDownloadedContent(i.queued, onDisk)
	i.total = len(i.queued)
	toRemove := append([]string{}, i.toRemove...)
	i.mu.Unlock()

	for _, path := range toRemove {
		i.log.Logf(logger.InfoLevel, "Removing regrouped chapter file %s", path)
		if err := i.store.Remove(path); err != nil {
			i.log.Logf(logger.WarnLevel, "Remove %s failed: %s", path, err)
		}
	}

	return nil
}

func (i *Item) download() {
	i.mu.Lock()
	i.startedAt = time.Now()
	chapters := append([]model.Chapter{}, i.queued...)
	series := i.series
	dir := i.dir
	i.mu.Unlock()

	stopProgress := i.startProgressTicker()
	defer stopProgress()

	for _, ch := range chapters {
		if i.ctx.Err() != nil {
			return
		}

		written, err := i.cli.DownloadChapter(i.ctx, series, ch, dir)
		if err != nil {
			// chapters transferred so far stay on disk
			if i.ctx.Err() == nil {
				i.log.Logf(logger.ErrorLevel, "Download chapter %s failed: %s", ch.ID, err)
			}
			return
		}

		i.mu.Lock()
		i.done++
		i.sizeBytes += written
		size := i.sizeBytes
		i.mu.Unlock()

		i.notifier.SizeUpdate(i.key, size)
	}

	i.log.Logf(logger.InfoLevel, "Downloaded %d chapters", len(chapters))
}

func (i *Item) startProgressTicker() func() {
	ticker := time.NewTicker(progressInterval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ticker.C:
				i.emitProgress()
			case <-done:
				return
			case <-i.ctx.Done():
				return
			}
		}
	}()

	return func() {
		ticker.Stop()
		close(done)
	}
}

func (i *Item) emitProgress() {
	i.mu.Lock()
	total := i.total
	done := i.done
	startedAt := i.startedAt
	speed := i.speedLocked()
	i.mu.Unlock()

	if total == 0 {
		return
	}

	progress := float32(done) / float32(total)
	var estimated time.Duration
	if done > 0 {
		perChapter := time.Since(startedAt) / time.Duration(done)
		estimated = perChapter * time.Duration(total-done)
	}

	i.notifier.ProgressUpdate(i.key, progress, estimated, model.SpeedBytes, speed)
}
