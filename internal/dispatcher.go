package internal

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/iksnae/support-widget/internal/ui"
)

// FallbackAnswer is shown as the bot reply when an exchange fails
const FallbackAnswer = "Sorry, something went wrong."

// ChatClient performs one chat exchange with the backend
type ChatClient interface {
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}

// MessageView is the part of the UI the dispatcher drives
type MessageView interface {
	ClearInput()
	AppendMessage(m ui.Message)
	ShowLoading()
	HideLoading()
	SetSendEnabled(enabled bool)
}

// Dispatcher runs the send pipeline: echo, loading, POST, then answer or
// fallback. At most one exchange runs at a time.
type Dispatcher struct {
	client   ChatClient
	sessions SessionStore
	view     MessageView

	mu       sync.Mutex
	inFlight bool
}

// NewDispatcher wires a dispatcher to its collaborators
func NewDispatcher(client ChatClient, sessions SessionStore, view MessageView) *Dispatcher {
	return &Dispatcher{client: client, sessions: sessions, view: view}
}

// Busy reports whether an exchange is in flight
func (d *Dispatcher) Busy() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.inFlight
}

// Send trims raw and, if anything is left, starts an exchange. The user
// message is echoed and the loading indicator shown before Send returns;
// the returned channel closes once the answer or fallback is rendered.
// Empty input returns ErrEmptyMessage and touches nothing; a send while
// another is running returns ErrSendInFlight.
func (d *Dispatcher) Send(ctx context.Context, raw string) (<-chan struct{}, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return nil, ErrEmptyMessage
	}

	d.mu.Lock()
	if d.inFlight {
		d.mu.Unlock()
		return nil, ErrSendInFlight
	}
	d.inFlight = true
	d.mu.Unlock()

	d.view.ClearInput()
	d.view.AppendMessage(ui.Message{Text: text, Sender: ui.SenderUser})
	d.view.ShowLoading()
	d.view.SetSendEnabled(false)

	req := ChatRequest{Message: text}
	if id, ok := d.sessions.Get(); ok {
		req.SessionID = &id
	}

	done := make(chan struct{})
	go d.exchange(ctx, req, done)
	return done, nil
}

func (d *Dispatcher) exchange(ctx context.Context, req ChatRequest, done chan<- struct{}) {
	defer close(done)
	defer d.finish()
	defer func() {
		if r := recover(); r != nil {
			LogError("Support AI: %v", fmt.Errorf("chat exchange panicked: %v", r))
			d.view.HideLoading()
			d.view.AppendMessage(ui.Message{Text: FallbackAnswer, Sender: ui.SenderBot})
		}
	}()

	resp, err := d.client.Chat(ctx, req)
	d.view.HideLoading()
	if err != nil {
		LogError("Support AI: %v", err)
		d.view.AppendMessage(ui.Message{Text: FallbackAnswer, Sender: ui.SenderBot})
		return
	}

	d.sessions.Set(resp.SessionID)
	d.view.AppendMessage(ui.Message{Text: resp.Answer, Sender: ui.SenderBot})
}

// finish releases the in-flight guard before re-enabling the send control
func (d *Dispatcher) finish() {
	d.view.HideLoading()
	d.mu.Lock()
	d.inFlight = false
	d.mu.Unlock()
	d.view.SetSendEnabled(true)
}
