package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// ChatCall is one request received by the mock chat endpoint
type ChatCall struct {
	Message   string  `json:"message"`
	SessionID *string `json:"session_id"`
	APIKey    string  `json:"-"`
	RequestID string  `json:"-"`
}

// ChatFunc answers a chat call with a status code and raw body
type ChatFunc func(call ChatCall) (status int, body string)

// MockAPI is a fake support backend serving the widget endpoints
type MockAPI struct {
	*httptest.Server

	mu           sync.Mutex
	configStatus int
	configBody   string
	configCalls  int
	chat         ChatFunc
	chatCalls    []ChatCall
	hold         chan struct{}
}

// NewMockAPI starts a mock backend serving HelpConfigJSON and echoing chat
// messages under session "sess-1". It is closed when the test ends.
func NewMockAPI(t *testing.T) *MockAPI {
	t.Helper()
	m := &MockAPI{
		configStatus: http.StatusOK,
		configBody:   HelpConfigJSON,
		chat: func(call ChatCall) (int, string) {
			body, _ := json.Marshal(map[string]string{
				"session_id": "sess-1",
				"answer":     "echo: " + call.Message,
			})
			return http.StatusOK, string(body)
		},
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Route("/v1/widget", func(r chi.Router) {
		r.Use(requireAPIKey)
		r.Get("/config", m.handleConfig)
		r.Post("/chat", m.handleChat)
	})
	r.Get("/static/widget.css", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/css")
		_, _ = io.WriteString(w, "#chat-bubble{border-radius:50%}")
	})

	m.Server = httptest.NewServer(r)
	t.Cleanup(m.Close)
	return m
}

func requireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("ASST-API-Key") == "" {
			http.Error(w, `{"detail":"missing api key"}`, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (m *MockAPI) handleConfig(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	m.configCalls++
	status, body := m.configStatus, m.configBody
	m.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func (m *MockAPI) handleChat(w http.ResponseWriter, r *http.Request) {
	var call ChatCall
	if err := json.NewDecoder(r.Body).Decode(&call); err != nil {
		http.Error(w, `{"detail":"bad request"}`, http.StatusBadRequest)
		return
	}
	call.APIKey = r.Header.Get("ASST-API-Key")
	call.RequestID = r.Header.Get("X-Request-ID")

	m.mu.Lock()
	m.chatCalls = append(m.chatCalls, call)
	fn, hold := m.chat, m.hold
	m.mu.Unlock()

	if hold != nil {
		select {
		case <-hold:
		case <-r.Context().Done():
			return
		}
	}

	status, body := fn(call)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

// SetConfig changes the config endpoint's response
func (m *MockAPI) SetConfig(status int, body string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.configStatus, m.configBody = status, body
}

// OnChat replaces the chat endpoint's behaviour
func (m *MockAPI) OnChat(fn ChatFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chat = fn
}

// HoldChat makes chat requests block until release is called
func (m *MockAPI) HoldChat() (release func()) {
	ch := make(chan struct{})
	m.mu.Lock()
	m.hold = ch
	m.mu.Unlock()
	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			m.hold = nil
			m.mu.Unlock()
			close(ch)
		})
	}
}

// ChatCalls returns the chat requests received so far
func (m *MockAPI) ChatCalls() []ChatCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ChatCall(nil), m.chatCalls...)
}

// ConfigCalls returns how many times the config endpoint was hit
func (m *MockAPI) ConfigCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.configCalls
}
