package internal

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// KeyValuePair represents one origin-scoped entry from widgetStorage
type KeyValuePair struct {
	Origin    string
	Key       string
	Value     string
	UpdatedAt time.Time
}

// Storage is an origin-scoped key/value store, the durable equivalent of a
// browser's localStorage.
type Storage struct {
	db  *sql.DB
	now func() time.Time
}

// NewStorage creates a new Storage instance
func NewStorage(db *sql.DB) *Storage {
	return &Storage{db: db, now: time.Now}
}

// Get returns the value stored under key for origin. ok is false when no row exists.
func (s *Storage) Get(origin, key string) (value string, ok bool, err error) {
	var v sql.NullString
	err = s.db.QueryRow(
		"SELECT value FROM widgetStorage WHERE origin = ? AND key = ?",
		origin, key,
	).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("query failed: %w", err)
	}
	if !v.Valid {
		return "", false, nil
	}
	return v.String, true, nil
}

// Set stores value under key for origin, replacing any previous value
func (s *Storage) Set(origin, key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO widgetStorage (origin, key, value, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(origin, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		origin, key, value, s.now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("upsert failed: %w", err)
	}
	return nil
}

// List returns the entries stored under key for every origin, most recently updated first
func (s *Storage) List(key string) ([]KeyValuePair, error) {
	rows, err := s.db.Query(
		"SELECT origin, key, value, updated_at FROM widgetStorage WHERE key = ? AND value IS NOT NULL ORDER BY updated_at DESC, origin",
		key,
	)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var pairs []KeyValuePair
	for rows.Next() {
		var pair KeyValuePair
		var updated int64
		if err := rows.Scan(&pair.Origin, &pair.Key, &pair.Value, &updated); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		pair.UpdatedAt = time.Unix(updated, 0)
		pairs = append(pairs, pair)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return pairs, nil
}
