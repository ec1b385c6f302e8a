package types

import (
	"context"
	"errors"
)

// HistoryEntry is one completed shortening: the original URL and the short
// link the service issued for it. Entries keep insertion order and are never
// removed.
type HistoryEntry struct {
	UUID     string `json:"uuid"`
	LongURL  string `json:"long_url"`
	ShortURL string `json:"short_url"`
}

type Storage interface {
	Load() ([]HistoryEntry, error)
	Append(entry HistoryEntry) error
	Ping(ctx context.Context) error
	Close() error
}

var ErrEntryExists = errors.New("history entry already exists")
