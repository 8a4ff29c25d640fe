package content

import (
	"fmt"

	"github.com/Fesaa/mnema/internal/model"
)

// Dispatcher routes requests to the per-provider manager. Built once at
// startup; the manager set never changes afterwards.
type Dispatcher struct {
	managers map[model.Provider]*Manager
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{managers: map[model.Provider]*Manager{}}
}

func (d *Dispatcher) Register(p model.Provider, m *Manager) {
	d.managers[p] = m
}

func (d *Dispatcher) manager(p model.Provider) (*Manager, error) {
	m, ok := d.managers[p]
	if !ok {
		return nil, fmt.Errorf("no manager registered for provider %s", p)
	}
	return m, nil
}

func (d *Dispatcher) Download(req model.DownloadRequest) (*Item, error) {
	m, err := d.manager(req.Provider)
	if err != nil {
		return nil, err
	}
	return m.Download(req)
}

func (d *Dispatcher) StopDownload(req model.StopRequest) error {
	m, err := d.manager(req.Provider)
	if err != nil {
		return err
	}
	return m.StopDownload(req)
}

func (d *Dispatcher) MoveToDownloadQueue(p model.Provider, contentID string) error {
	m, err := d.manager(p)
	if err != nil {
		return err
	}
	return m.MoveToDownloadQueue(contentID)
}

func (d *Dispatcher) RelayMessage(msg model.Message) (*model.MessageReply, error) {
	m, err := d.manager(msg.Provider)
	if err != nil {
		return nil, err
	}
	return m.RelayMessage(msg)
}

func (d *Dispatcher) GetAllContent() []model.ContentSnapshot {
	var snapshots []model.ContentSnapshot
	for _, m := range d.managers {
		snapshots = append(snapshots, m.GetAllContent()...)
	}
	return snapshots
}
