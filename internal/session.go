package internal

import "sync"

// SessionKey is the storage key holding the session identifier
const SessionKey = "asst_session_id"

// SessionStore holds the single session identifier of a widget.
// Implementations never surface storage failures to the widget.
type SessionStore interface {
	Get() (string, bool)
	Set(id string)
}

// SQLiteSessionStore persists the session identifier in widgetStorage under
// SessionKey for one origin.
type SQLiteSessionStore struct {
	storage *Storage
	origin  string
}

// NewSQLiteSessionStore creates a session store scoped to origin
func NewSQLiteSessionStore(storage *Storage, origin string) *SQLiteSessionStore {
	return &SQLiteSessionStore{storage: storage, origin: origin}
}

// Get returns the persisted session identifier, if any
func (s *SQLiteSessionStore) Get() (string, bool) {
	id, ok, err := s.storage.Get(s.origin, SessionKey)
	if err != nil {
		LogWarn("Failed to read session for %s: %v", s.origin, err)
		return "", false
	}
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// Set persists id, overwriting the previous identifier
func (s *SQLiteSessionStore) Set(id string) {
	if err := s.storage.Set(s.origin, SessionKey, id); err != nil {
		LogWarn("Failed to persist session for %s: %v", s.origin, err)
		return
	}
	LogDebug("Persisted session %s for %s", id, s.origin)
}

// Origin returns the storage scope of this store
func (s *SQLiteSessionStore) Origin() string {
	return s.origin
}

// MemorySessionStore keeps the identifier in memory only
type MemorySessionStore struct {
	mu sync.Mutex
	id string
}

// NewMemorySessionStore creates a store seeded with id (may be empty)
func NewMemorySessionStore(id string) *MemorySessionStore {
	return &MemorySessionStore{id: id}
}

func (m *MemorySessionStore) Get() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.id, m.id != ""
}

func (m *MemorySessionStore) Set(id string) {
	m.mu.Lock()
	m.id = id
	m.mu.Unlock()
}
