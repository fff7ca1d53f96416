package testutil

import (
	"database/sql"
	"testing"

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

// CreateInMemoryDB creates an in-memory SQLite database with the widgetStorage table
func CreateInMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create in-memory database: %v", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(createStorageTableSQL); err != nil {
		db.Close()
		t.Fatalf("Failed to create widgetStorage table: %v", err)
	}

	return db
}

// CreateTestDB creates a test database holding sessions for two origins
func CreateTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db := CreateInMemoryDB(t)

	rows := []struct {
		origin  string
		key     string
		value   string
		updated int64
	}{
		{origin: "https://shop.example.com", key: "asst_session_id", value: "sess-shop", updated: 2000},
		{origin: "https://docs.example.com", key: "asst_session_id", value: "sess-docs", updated: 1000},
		{origin: "https://shop.example.com", key: "theme", value: "dark", updated: 3000},
	}

	stmt, err := db.Prepare("INSERT INTO widgetStorage (origin, key, value, updated_at) VALUES (?, ?, ?, ?)")
	if err != nil {
		db.Close()
		t.Fatalf("Failed to prepare insert statement: %v", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		if _, err := stmt.Exec(row.origin, row.key, row.value, row.updated); err != nil {
			db.Close()
			t.Fatalf("Failed to insert row: %v", err)
		}
	}

	return db
}

// InsertValue inserts a raw widgetStorage row
func InsertValue(t *testing.T, db *sql.DB, origin, key string, value interface{}) {
	t.Helper()
	insertSQL := "INSERT INTO widgetStorage (origin, key, value, updated_at) VALUES (?, ?, ?, 0)"
	if _, err := db.Exec(insertSQL, origin, key, value); err != nil {
		t.Fatalf("Failed to insert value: %v", err)
	}
}
