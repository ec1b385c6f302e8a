package memory

import (
	"context"

	t "github.com/repriest/bitly-widget/internal/storage/types"
)

type MemoryStorage struct {
	entries []t.HistoryEntry
}

func NewMemoryStorage() (*MemoryStorage, error) {
	return &MemoryStorage{
		entries: []t.HistoryEntry{},
	}, nil
}

func (s *MemoryStorage) Load() ([]t.HistoryEntry, error) {
	entries := make([]t.HistoryEntry, len(s.entries))
	copy(entries, s.entries)
	return entries, nil
}

func (s *MemoryStorage) Append(entry t.HistoryEntry) error {
	s.entries = append(s.entries, entry)
	return nil
}

func (s *MemoryStorage) Ping(_ context.Context) error {
	return nil
}

func (s *MemoryStorage) Close() error {
	return nil
}
