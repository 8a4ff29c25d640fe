package content

import (
	"errors"

	"github.com/Fesaa/mnema/internal/model"
	"github.com/Fesaa/mnema/internal/notifier"
)

// ErrNotFound is returned when a message or action targets an unknown item
var ErrNotFound = errors.New("content not found")

// Storage is the on-disk collaborator: scanning for reconciliation plus
// the destructive operations the manager performs
type Storage interface {
	Scan(dir string) ([]model.OnDiskContent, error)
	Remove(path string) error
	Purge(dir string) error
}

// Notifier pushes item lifecycle events to clients
type Notifier = notifier.Publisher
