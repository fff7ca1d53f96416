package internal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const createStorageTableSQL = `
CREATE TABLE IF NOT EXISTS widgetStorage (
	origin     TEXT NOT NULL,
	key        TEXT NOT NULL,
	value      TEXT,
	updated_at INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (origin, key)
)`

// OpenDatabase opens (creating if needed) the widget storage database and
// makes sure the key/value table exists.
func OpenDatabase(path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, &StorageError{Path: path, Op: "open", Err: err}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &StorageError{Path: path, Op: "open", Err: err}
	}
	// A single connection keeps ":memory:" databases coherent and serialises writers.
	db.SetMaxOpenConns(1)

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, &StorageError{Path: path, Op: "open", Err: fmt.Errorf("ping failed: %w", err)}
	}

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, &StorageError{Path: path, Op: "migrate", Err: err}
	}

	return db, nil
}

// Migrate creates the widgetStorage table if it does not exist
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(createStorageTableSQL); err != nil {
		return fmt.Errorf("create widgetStorage: %w", err)
	}
	return nil
}

// DefaultStoragePath returns ~/.support-widget/storage.db
func DefaultStoragePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".support-widget", "storage.db"), nil
}
