package history

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/repriest/bitly-widget/internal/storage/types"
)

// History owns the ordered list of past shortenings. The persisted sequence
// is loaded once at construction; every append goes to storage first and only
// then mutates the in-memory mirror.
type History struct {
	mu      sync.Mutex
	entries []types.HistoryEntry
	storage types.Storage
}

func New(st types.Storage) (*History, error) {
	entries, err := st.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	if entries == nil {
		entries = []types.HistoryEntry{}
	}
	return &History{
		entries: entries,
		storage: st,
	}, nil
}

// Entries returns a copy of the current sequence in insertion order.
func (h *History) Entries() []types.HistoryEntry {
	h.mu.Lock()
	defer h.mu.Unlock()

	entries := make([]types.HistoryEntry, len(h.entries))
	copy(entries, h.entries)
	return entries
}

// Append records one completed shortening and returns the updated sequence.
func (h *History) Append(longURL string, shortURL string) ([]types.HistoryEntry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	entry := types.HistoryEntry{
		UUID:     uuid.New().String(),
		LongURL:  longURL,
		ShortURL: shortURL,
	}

	// persist first, mirror second
	if err := h.storage.Append(entry); err != nil {
		return nil, fmt.Errorf("failed to append entry to storage: %w", err)
	}
	h.entries = append(h.entries, entry)

	entries := make([]types.HistoryEntry, len(h.entries))
	copy(entries, h.entries)
	return entries, nil
}
