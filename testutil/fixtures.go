package testutil

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

// Config bodies as served by GET /v1/widget/config
const (
	HelpConfigJSON = `{"primary_color":"#123456","chat_title":"Help","welcome_message":"Hi","position":"top-left"}`

	FullConfigJSON = `{
		"tenant_id": "2f1c0a52-8d8c-4a7e-9a55-1d4d7d1b2f10",
		"primary_color": "#0ea5e9",
		"chat_title": "Chat with Acme",
		"welcome_message": "Hello! How can I help you?",
		"position": "bottom-left",
		"background_color": "#f8fafc",
		"bot_name": "Acme Bot",
		"logo_url": "https://cdn.example.com/acme.png",
		"suggested_questions": ["How do I get started?", "What are your pricing plans?"]
	}`
)

// CreateSQLiteFixture creates a widget storage database file holding one session
func CreateSQLiteFixture(t *testing.T, dbPath, origin, sessionID string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		t.Fatalf("Failed to create fixture directory: %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer func() { _ = db.Close() }()

	if _, err := db.Exec(createStorageTableSQL); err != nil {
		t.Fatalf("Failed to create table: %v", err)
	}

	insertSQL := "INSERT INTO widgetStorage (origin, key, value, updated_at) VALUES (?, 'asst_session_id', ?, 1)"
	if _, err := db.Exec(insertSQL, origin, sessionID); err != nil {
		t.Fatalf("Failed to insert session: %v", err)
	}
}
