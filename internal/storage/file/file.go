package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	t "github.com/repriest/bitly-widget/internal/storage/types"
)

// FileStorage keeps the whole history as a single JSON array document and
// rewrites it on every append. Last write wins, no cross-process locking.
type FileStorage struct {
	filePath string
}

func NewFileStorage(filePath string) (*FileStorage, error) {
	// make sure the path is writable before the first append
	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open or create file: %w", err)
	}
	if err := file.Close(); err != nil {
		return nil, fmt.Errorf("failed to close file: %w", err)
	}

	return &FileStorage{filePath: filePath}, nil
}

// Load returns the persisted entries. A missing file or a malformed document
// yields an empty history, never an error: stale local data must not prevent
// startup.
func (s *FileStorage) Load() ([]t.HistoryEntry, error) {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []t.HistoryEntry{}, nil
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(data) == 0 {
		return []t.HistoryEntry{}, nil
	}

	var entries []t.HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		// treat unreadable history as empty
		return []t.HistoryEntry{}, nil
	}
	if entries == nil {
		entries = []t.HistoryEntry{}
	}
	return entries, nil
}

func (s *FileStorage) Append(entry t.HistoryEntry) error {
	entries, err := s.Load()
	if err != nil {
		return err
	}
	entries = append(entries, entry)

	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal entries: %w", err)
	}
	if err := os.WriteFile(s.filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write to file %s: %w", s.filePath, err)
	}
	return nil
}

func (s *FileStorage) Ping(_ context.Context) error {
	_, err := os.Stat(s.filePath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat file %s: %w", s.filePath, err)
	}
	return nil
}

func (s *FileStorage) Close() error {
	return nil
}
