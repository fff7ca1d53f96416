package ui

import (
	"errors"
	"sync"
)

// ErrRootExists is returned when a page already holds a root with the same id
var ErrRootExists = errors.New("widget root already attached")

// Page stands in for the host document body
type Page struct {
	mu    sync.Mutex
	roots []*Document
}

func NewPage() *Page {
	return &Page{}
}

// Attach appends doc's root to the page. A page holds at most one root per id.
func (p *Page) Attach(doc *Document) error {
	id := doc.Snapshot().ID
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, r := range p.roots {
		if r.Snapshot().ID == id {
			return ErrRootExists
		}
	}
	p.roots = append(p.roots, doc)
	return nil
}

// Roots returns the attached documents in attach order
func (p *Page) Roots() []*Document {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*Document(nil), p.roots...)
}
