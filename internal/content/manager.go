package content

import (
	"fmt"
	"sync"

	"github.com/Fesaa/mnema/internal/model"
	"github.com/Fesaa/mnema/internal/provider"
	"go-micro.dev/v4/logger"
	"golang.org/x/sync/semaphore"
)

// Manager owns the set of active download items for one provider
type Manager struct {
	mu sync.RWMutex

	provider model.Provider
	cli      provider.Client
	store    Storage
	notifier Notifier
	slots    *semaphore.Weighted

	items map[string]*Item
}

// NewManager creates a Manager instance. maxDownloads caps how many items
// may hold a download slot at once.
func NewManager(p model.Provider, cli provider.Client, store Storage, notif Notifier, maxDownloads int) *Manager {
	if maxDownloads <= 0 {
		maxDownloads = 1
	}
	return &Manager{
		provider: p,
		cli:      cli,
		store:    store,
		notifier: notif,
		slots:    semaphore.NewWeighted(int64(maxDownloads)),
		items:    map[string]*Item{},
	}
}

// Download returns the live item for the request's content, creating and
// starting one when absent. Two concurrent calls for the same content id
// yield the same item.
func (m *Manager) Download(req model.DownloadRequest) (*Item, error) {
	if req.Provider != m.provider {
		return nil, fmt.Errorf("request provider %s does not match manager %s", req.Provider, m.provider)
	}
	if req.ContentID == "" {
		return nil, fmt.Errorf("empty content id")
	}

	m.mu.RLock()
	item, ok := m.items[req.ContentID]
	m.mu.RUnlock()
	if ok {
		return item, nil
	}

	m.mu.Lock()
	if item, ok = m.items[req.ContentID]; ok {
		m.mu.Unlock()
		return item, nil
	}

	item = newItem(req, m.cli, m.store, m.notifier, m.slots, m.evict)
	m.items[req.ContentID] = item
	m.mu.Unlock()

	m.notifier.ContentAdded(item.Snapshot())
	logger.Infof("Download started: %s", item.Key())
	go item.run()

	return item, nil
}

// StopDownload cancels the matching item. Stopping something already gone
// is not a failure.
func (m *Manager) StopDownload(req model.StopRequest) error {
	m.mu.Lock()
	item, ok := m.items[req.ContentID]
	if ok {
		delete(m.items, req.ContentID)
	}
	m.mu.Unlock()

	if !ok {
		return nil
	}

	item.Cancel()
	m.notifier.ContentDeleted(item.Key())

	if req.DeleteFiles {
		// a transfer that was mid-write when the context got cancelled
		// must not land its file after the purge
		<-item.Done()
		if err := m.store.Purge(item.DownloadDir()); err != nil {
			return fmt.Errorf("purge download dir failed: %w", err)
		}
	}

	return nil
}

// MoveToDownloadQueue forces a Waiting item to Ready without waiting for
// interactive confirmation
func (m *Manager) MoveToDownloadQueue(contentID string) error {
	m.mu.RLock()
	item, ok := m.items[contentID]
	m.mu.RUnlock()

	if !ok {
		return ErrNotFound
	}
	return item.Start()
}

// GetAllContent returns shallow snapshots of all active items
func (m *Manager) GetAllContent() []model.ContentSnapshot {
	m.mu.RLock()
	items := make([]*Item, 0, len(m.items))
	for _, item := range m.items {
		items = append(items, item)
	}
	m.mu.RUnlock()

	snapshots := make([]model.ContentSnapshot, 0, len(items))
	for _, item := range items {
		snapshots = append(snapshots, item.Snapshot())
	}
	return snapshots
}

// RelayMessage dispatches a user message to the item it targets
func (m *Manager) RelayMessage(msg model.Message) (*model.MessageReply, error) {
	m.mu.RLock()
	item, ok := m.items[msg.ContentID]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}
	return item.ProcessMessage(msg)
}

// evict removes an item whose progression reached a terminal state
func (m *Manager) evict(item *Item) {
	m.mu.Lock()
	current, ok := m.items[item.Key().ContentID]
	evicted := ok && current == item
	if evicted {
		delete(m.items, item.Key().ContentID)
	}
	m.mu.Unlock()

	// the registry may already hold a replacement item under this content
	// id; announcing a deletion for it would drop a live download from
	// every client's view
	if evicted {
		m.notifier.ContentDeleted(item.Key())
	}
}
