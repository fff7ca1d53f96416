package internal

import (
	"context"
	"errors"
	"net/http"

	"github.com/iksnae/support-widget/internal/ui"
)

// ErrWidgetOffline is returned by Send on a degraded widget
var ErrWidgetOffline = errors.New("widget is offline")

// Options injects collaborators into Mount. Zero values use real ones.
type Options struct {
	HTTPClient *http.Client
	Scheduler  ui.Scheduler

	// Page receives the widget root; Mount fails if it already holds one.
	Page *ui.Page

	// Fetcher and Chat default to a Client built from the settings.
	Fetcher ConfigFetcher
	Chat    ChatClient
}

// Widget is one embedded widget instance and everything it owns
type Widget struct {
	settings   Settings
	config     WidgetConfig
	degraded   bool
	doc        *ui.Document
	view       *ui.ChatView
	window     *ui.Toggle
	dispatcher *Dispatcher

	ctx    context.Context
	cancel context.CancelFunc
}

// Mount loads the tenant config and builds the widget. A missing API key
// aborts with ErrMissingAPIKey and nothing is built. A failed config load
// yields a degraded widget, not an error.
func Mount(ctx context.Context, settings Settings, sessions SessionStore, opts Options) (*Widget, error) {
	settings = settings.Normalize()
	if err := settings.Validate(); err != nil {
		LogError("Support AI Widget: Missing API key.")
		return nil, err
	}

	var client *Client
	if opts.Fetcher == nil || opts.Chat == nil {
		client = NewClient(settings, opts.HTTPClient)
	}
	fetcher := opts.Fetcher
	if fetcher == nil {
		fetcher = client
	}
	chat := opts.Chat
	if chat == nil {
		chat = client
	}

	cfg, degraded := LoadConfig(ctx, fetcher)

	doc := ui.NewDocument(ui.Build(cfg.Theme(settings, degraded)))
	if opts.Page != nil {
		if err := opts.Page.Attach(doc); err != nil {
			LogError("Support AI Widget: %v", err)
			return nil, err
		}
	}

	wctx, cancel := context.WithCancel(context.Background())
	w := &Widget{
		settings: settings,
		config:   cfg,
		degraded: degraded,
		doc:      doc,
		view:     ui.NewChatView(doc),
		window:   ui.NewToggle(doc, opts.Scheduler),
		ctx:      wctx,
		cancel:   cancel,
	}

	doc.Bind(ui.ActionToggle, func(ui.Event, *ui.Node) { w.window.Toggle() })

	if !degraded {
		w.dispatcher = NewDispatcher(chat, sessions, w.view)
		doc.Bind(ui.ActionSend, func(ui.Event, *ui.Node) { w.fire(w.view.Input()) })
		doc.Bind(ui.ActionSuggest, func(_ ui.Event, target *ui.Node) { w.fire(target.Text) })
	}

	LogInfo("Widget mounted for %s (degraded: %t)", settings.Origin, degraded)
	return w, nil
}

func (w *Widget) fire(text string) {
	if _, err := w.Send(text); err != nil {
		LogDebug("Send ignored: %v", err)
	}
}

// Send runs the send pipeline for text, as if typed and submitted
func (w *Widget) Send(text string) (<-chan struct{}, error) {
	if w.dispatcher == nil {
		return nil, ErrWidgetOffline
	}
	return w.dispatcher.Send(w.ctx, text)
}

// Click dispatches a click on node id
func (w *Widget) Click(id string) bool {
	return w.doc.Dispatch(id, ui.EventClick)
}

// Type sets the input field text
func (w *Widget) Type(text string) {
	w.view.SetInput(text)
}

// Submit dispatches the enter key on the input field
func (w *Widget) Submit() bool {
	return w.doc.Dispatch(ui.InputID, ui.EventEnter)
}

// Close cancels in-flight exchanges and any pending hide
func (w *Widget) Close() {
	w.cancel()
	w.window.Stop()
}

func (w *Widget) Settings() Settings { return w.settings }
func (w *Widget) Config() WidgetConfig { return w.config }
func (w *Widget) Degraded() bool { return w.degraded }
func (w *Widget) Document() *ui.Document { return w.doc }
func (w *Widget) View() *ui.ChatView { return w.view }
func (w *Widget) Window() *ui.Toggle { return w.window }
func (w *Widget) Busy() bool { return w.dispatcher != nil && w.dispatcher.Busy() }
