package internal

import (
	"path/filepath"
	"testing"

	"github.com/iksnae/support-widget/testutil"
)

func TestSQLiteSessionStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "storage.db")

	db, err := OpenDatabase(path)
	if err != nil {
		t.Fatalf("OpenDatabase() error = %v", err)
	}
	store := NewSQLiteSessionStore(NewStorage(db), "https://shop.example.com")
	if _, ok := store.Get(); ok {
		t.Fatal("fresh store should have no session")
	}
	store.Set("abc")
	db.Close()

	db, err = OpenDatabase(path)
	if err != nil {
		t.Fatalf("OpenDatabase() reopen error = %v", err)
	}
	defer db.Close()

	got, ok := NewSQLiteSessionStore(NewStorage(db), "https://shop.example.com").Get()
	if !ok || got != "abc" {
		t.Errorf("Get() after reopen = %q, %v; want %q, true", got, ok, "abc")
	}

	if _, ok := NewSQLiteSessionStore(NewStorage(db), "https://other.example.com").Get(); ok {
		t.Error("session must be scoped to its origin")
	}
}

func TestSQLiteSessionStore_FixtureFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.db")
	testutil.CreateSQLiteFixture(t, path, "https://docs.example.com", "sess-fixture")

	db, err := OpenDatabase(path)
	if err != nil {
		t.Fatalf("OpenDatabase() error = %v", err)
	}
	defer db.Close()

	store := NewSQLiteSessionStore(NewStorage(db), "https://docs.example.com")
	if got, ok := store.Get(); !ok || got != "sess-fixture" {
		t.Errorf("Get() = %q, %v", got, ok)
	}
	if store.Origin() != "https://docs.example.com" {
		t.Errorf("Origin() = %q", store.Origin())
	}
}

func TestSQLiteSessionStore_StorageFailureIsSilent(t *testing.T) {
	db := testutil.CreateInMemoryDB(t)
	store := NewSQLiteSessionStore(NewStorage(db), "o")
	db.Close()

	store.Set("abc")
	if _, ok := store.Get(); ok {
		t.Error("Get() on broken storage should report absent")
	}
}

func TestMemorySessionStore(t *testing.T) {
	store := NewMemorySessionStore("")
	if _, ok := store.Get(); ok {
		t.Error("empty store should report absent")
	}
	store.Set("xyz")
	if got, ok := store.Get(); !ok || got != "xyz" {
		t.Errorf("Get() = %q, %v", got, ok)
	}
}
