// Package preview serves a host page with a live widget embedded in it.
package preview

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/iksnae/support-widget/internal"
	"github.com/iksnae/support-widget/internal/render"
	"github.com/iksnae/support-widget/internal/ui"
)

//go:embed assets
var assets embed.FS

// DefaultSendTimeout bounds how long a send request waits for the reply
const DefaultSendTimeout = 35 * time.Second

// Handler exposes one mounted widget over HTTP
type Handler struct {
	widget      *internal.Widget
	html        render.Renderer
	sendTimeout time.Duration
}

// New creates a handler for w
func New(w *internal.Widget) *Handler {
	return &Handler{
		widget:      w,
		html:        &render.HTMLRenderer{},
		sendTimeout: DefaultSendTimeout,
	}
}

// NewRouter wires the preview routes
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", h.handlePage)
	r.Get("/preview.js", h.handleAsset("assets/preview.js", "text/javascript"))
	r.Get("/static/widget.css", h.handleAsset("assets/widget.css", "text/css"))

	r.Route("/widget", func(wr chi.Router) {
		h.RegisterRoutes(wr)
	})

	return r
}

// RegisterRoutes registers the widget interaction routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/state", h.handleState)
	r.Get("/tree", h.handleTree)
	r.Post("/click", h.handleClick)
	r.Post("/send", h.handleSend)
}

const pageHead = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>Support widget preview</title>
</head>
<body>
<main><h1>Host page</h1><p>The widget below is isolated from this page's styles.</p></main>
`

const pageTail = `<script src="/preview.js"></script>
</body>
</html>
`

func (h *Handler) handlePage(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	buf.WriteString(pageHead)
	if err := h.html.Render(h.widget.Document().Snapshot(), &buf); err != nil {
		internal.LogError("Failed to render widget: %v", err)
		respondError(w, http.StatusInternalServerError, "render failed")
		return
	}
	buf.WriteString(pageTail)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) handleAsset(name, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := assets.ReadFile(name)
		if err != nil {
			respondError(w, http.StatusNotFound, "asset not found")
			return
		}
		w.Header().Set("Content-Type", contentType)
		_, _ = w.Write(data)
	}
}

// State is the JSON view of a widget returned by GET /widget/state
type State struct {
	Window      string       `json:"window"`
	Degraded    bool         `json:"degraded"`
	Busy        bool         `json:"busy"`
	SendEnabled bool         `json:"send_enabled"`
	Messages    []ui.Message `json:"messages"`
}

func (h *Handler) state() State {
	view := h.widget.View()
	return State{
		Window:      h.widget.Window().State().String(),
		Degraded:    h.widget.Degraded(),
		Busy:        h.widget.Busy(),
		SendEnabled: view.SendEnabled(),
		Messages:    view.Messages(),
	}
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.state())
}

func (h *Handler) handleTree(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.widget.Document().Snapshot())
}

func (h *Handler) handleClick(w http.ResponseWriter, r *http.Request) {
	id := r.FormValue("id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "id is required")
		return
	}
	if !h.widget.Click(id) {
		respondError(w, http.StatusConflict, "nothing handled the click")
		return
	}
	respondJSON(w, http.StatusOK, h.state())
}

func (h *Handler) handleSend(w http.ResponseWriter, r *http.Request) {
	done, err := h.widget.Send(r.FormValue("message"))
	switch {
	case errors.Is(err, internal.ErrEmptyMessage):
		respondError(w, http.StatusBadRequest, "message is required")
		return
	case errors.Is(err, internal.ErrSendInFlight):
		respondError(w, http.StatusConflict, err.Error())
		return
	case errors.Is(err, internal.ErrWidgetOffline):
		respondError(w, http.StatusServiceUnavailable, err.Error())
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	timer := time.NewTimer(h.sendTimeout)
	defer timer.Stop()

	select {
	case <-done:
		respondJSON(w, http.StatusOK, h.state())
	case <-timer.C:
		respondJSON(w, http.StatusAccepted, h.state())
	case <-r.Context().Done():
	}
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		internal.LogWarn("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
