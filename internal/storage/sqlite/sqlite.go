package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	t "github.com/repriest/bitly-widget/internal/storage/types"
)

type sqliteStorage struct {
	db *sql.DB
}

func NewSQLiteStorage(path string) (t.Storage, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pragmas := []string{
		`PRAGMA journal_mode = WAL;`,
		`PRAGMA synchronous = NORMAL;`,
		`PRAGMA busy_timeout = 5000;`,
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply pragma: %w", err)
		}
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS history (
			position INTEGER PRIMARY KEY AUTOINCREMENT,
			uuid TEXT NOT NULL UNIQUE,
			long_url TEXT NOT NULL,
			short_url TEXT NOT NULL
		)
	`)

	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table history: %w", err)
	}

	return &sqliteStorage{db: db}, nil
}

func (s *sqliteStorage) Load() ([]t.HistoryEntry, error) {
	rows, err := s.db.Query("SELECT uuid, long_url, short_url FROM history ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	entries := []t.HistoryEntry{}
	for rows.Next() {
		entry := t.HistoryEntry{}
		err := rows.Scan(&entry.UUID, &entry.LongURL, &entry.ShortURL)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	return entries, nil
}

func (s *sqliteStorage) Append(entry t.HistoryEntry) error {
	_, err := s.db.Exec(`
		INSERT INTO history (uuid, long_url, short_url)
		VALUES (?, ?, ?)
	`, entry.UUID, entry.LongURL, entry.ShortURL)

	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return t.ErrEntryExists
		}
		return fmt.Errorf("failed to insert history entry: %w", err)
	}
	return nil
}

func (s *sqliteStorage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *sqliteStorage) Close() error {
	return s.db.Close()
}
