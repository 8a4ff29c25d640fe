package content

import (
	"fmt"

	"github.com/Fesaa/mnema/internal/model"
)

// ProcessMessage routes a user-originated action to the item. Safe to call
// concurrently with the item's own background progression.
func (i *Item) ProcessMessage(msg model.Message) (*model.MessageReply, error) {
	switch msg.Type {
	case model.MessageListContent:
		return i.listContent()
	case model.MessageFilterContent:
		return i.filterContent(msg.Data)
	case model.MessageStartDownload:
		if err := i.Start(); err != nil {
			return nil, err
		}
		return &model.MessageReply{}, nil
	default:
		return nil, fmt.Errorf("unknown message type: %d", msg.Type)
	}
}

// listContent returns the chapters still queued for transfer
func (i *Item) listContent() (*model.MessageReply, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.series == nil {
		return nil, fmt.Errorf("content is not loaded yet")
	}

	return &model.MessageReply{
		Chapters: append([]model.Chapter{}, i.queued...),
	}, nil
}

// filterContent restricts the queue to the selected chapter ids. Only valid
// while the item waits for interactive confirmation.
func (i *Item) filterContent(chapterIDs []string) (*model.MessageReply, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.state != model.StateWaiting {
		return nil, fmt.Errorf("cannot filter content in state %s", i.state)
	}

	selected := make(map[string]bool, len(chapterIDs))
	for _, id := range chapterIDs {
		selected[id] = true
	}

	filtered := make([]model.Chapter, 0, len(chapterIDs))
	for _, ch := range i.queued {
		if selected[ch.ID] {
			filtered = append(filtered, ch)
		}
	}

	i.queued = filtered
	i.total = len(filtered)

	return &model.MessageReply{
		Chapters: append([]model.Chapter{}, i.queued...),
	}, nil
}
