package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	t "github.com/repriest/bitly-widget/internal/storage/types"
)

type pgStorage struct {
	db *sql.DB
}

func NewPgStorage(dsn string) (t.Storage, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// position keeps insertion order for Load
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS history (
			position SERIAL,
			uuid TEXT PRIMARY KEY,
			long_url TEXT NOT NULL,
			short_url TEXT NOT NULL
		)
	`)

	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table history: %w", err)
	}

	return &pgStorage{db: db}, nil
}

func (s *pgStorage) Load() ([]t.HistoryEntry, error) {
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

func (s *pgStorage) Append(entry t.HistoryEntry) error {
	_, err := s.db.Exec(`
		INSERT INTO history (uuid, long_url, short_url)
		VALUES ($1, $2, $3)
	`, entry.UUID, entry.LongURL, entry.ShortURL)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return t.ErrEntryExists
		}
		return fmt.Errorf("failed to insert history entry: %w", err)
	}
	return nil
}

func (s *pgStorage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *pgStorage) Close() error {
	return s.db.Close()
}
