package ui

import (
	"sync"
	"time"
)

// CloseDelay is how long the closing animation runs before the window is hidden
const CloseDelay = 300 * time.Millisecond

// Timer is a scheduled task that can be cancelled
type Timer interface {
	Stop() bool
}

// Scheduler runs f after d
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// RealScheduler schedules on the runtime timer
type RealScheduler struct{}

func (RealScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// WindowState is the visibility state of the chat window
type WindowState int

const (
	WindowClosed WindowState = iota
	WindowOpen
	WindowClosing
)

func (s WindowState) String() string {
	switch s {
	case WindowOpen:
		return "open"
	case WindowClosing:
		return "closing"
	default:
		return "closed"
	}
}

// Toggle drives the window open/closed. Closing applies the slide-down
// state immediately and hides the window after CloseDelay through a task
// keyed by a transition token; any later transition invalidates the token
// and stops the task, so a superseded hide never runs.
type Toggle struct {
	mu      sync.Mutex
	doc     *Document
	sched   Scheduler
	delay   time.Duration
	state   WindowState
	token   uint64
	pending Timer
}

// NewToggle starts closed, matching the hidden window Build produces
func NewToggle(doc *Document, sched Scheduler) *Toggle {
	if sched == nil {
		sched = RealScheduler{}
	}
	return &Toggle{doc: doc, sched: sched, delay: CloseDelay}
}

// State returns the current window state
func (t *Toggle) State() WindowState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Toggle opens a closed or closing window and closes an open one
func (t *Toggle) Toggle() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == WindowOpen {
		t.closeLocked()
		return
	}
	t.openLocked()
}

// Stop cancels a pending hide without changing state
func (t *Toggle) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.token++
	t.cancelLocked()
}

func (t *Toggle) openLocked() {
	t.token++
	t.cancelLocked()
	t.doc.RemoveClass(WindowID, ClassHidden, ClassSlideDown)
	t.doc.AddClass(WindowID, ClassSlideUp)
	t.state = WindowOpen
}

func (t *Toggle) closeLocked() {
	t.token++
	t.cancelLocked()
	t.doc.RemoveClass(WindowID, ClassSlideUp)
	t.doc.AddClass(WindowID, ClassSlideDown)
	t.state = WindowClosing

	token := t.token
	t.pending = t.sched.AfterFunc(t.delay, func() { t.hide(token) })
}

func (t *Toggle) hide(token uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if token != t.token || !t.doc.HasClass(WindowID, ClassSlideDown) {
		return
	}
	t.doc.AddClass(WindowID, ClassHidden)
	t.state = WindowClosed
	t.pending = nil
}

func (t *Toggle) cancelLocked() {
	if t.pending != nil {
		t.pending.Stop()
		t.pending = nil
	}
}
