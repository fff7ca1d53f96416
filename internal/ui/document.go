package ui

import (
	"sync"
)

// Handler reacts to a dispatched event. target is a snapshot of the node the
// event was dispatched on.
type Handler func(ev Event, target *Node)

// Document owns a live widget tree. All access goes through its methods,
// which serialise mutations; handlers and change listeners run outside the lock.
type Document struct {
	mu        sync.Mutex
	root      *Node
	handlers  map[Action]Handler
	listeners []func()
	scrolled  *Node
}

// NewDocument wraps root; the document takes ownership of the tree
func NewDocument(root *Node) *Document {
	return &Document{root: root, handlers: map[Action]Handler{}}
}

// Snapshot returns a deep copy of the whole tree
func (d *Document) Snapshot() *Node {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.root.Clone()
}

// Get returns a copy of the node with the given id
func (d *Document) Get(id string) (*Node, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := d.root.Find(id)
	if n == nil {
		return nil, false
	}
	return n.Clone(), true
}

// Has reports whether a node with the given id exists
func (d *Document) Has(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.root.Find(id) != nil
}

// HasClass reports whether node id carries class c
func (d *Document) HasClass(id, c string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := d.root.Find(id)
	return n != nil && n.HasClass(c)
}

// Value returns the current value of an input node
func (d *Document) Value(id string) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if n := d.root.Find(id); n != nil {
		return n.Value
	}
	return ""
}

// Children returns copies of the children of node id
func (d *Document) Children(id string) []*Node {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := d.root.Find(id)
	if n == nil {
		return nil
	}
	out := make([]*Node, len(n.Children))
	for i, c := range n.Children {
		out[i] = c.Clone()
	}
	return out
}

// ScrolledTo returns a copy of the node most recently scrolled into view
func (d *Document) ScrolledTo() *Node {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.scrolled.Clone()
}

// Update runs fn against node id under the document lock. It reports
// whether the node exists.
func (d *Document) Update(id string, fn func(*Node)) bool {
	d.mu.Lock()
	n := d.root.Find(id)
	if n != nil {
		fn(n)
	}
	d.mu.Unlock()
	if n != nil {
		d.notify()
	}
	return n != nil
}

func (d *Document) AddClass(id string, classes ...string) bool {
	return d.Update(id, func(n *Node) { n.addClass(classes...) })
}

func (d *Document) RemoveClass(id string, classes ...string) bool {
	return d.Update(id, func(n *Node) { n.removeClass(classes...) })
}

func (d *Document) SetValue(id, value string) bool {
	return d.Update(id, func(n *Node) { n.Value = value })
}

func (d *Document) SetStyle(id, prop, value string) bool {
	return d.Update(id, func(n *Node) {
		if n.Style == nil {
			n.Style = map[string]string{}
		}
		n.Style[prop] = value
	})
}

func (d *Document) SetDisabled(id string, disabled bool) bool {
	return d.Update(id, func(n *Node) { n.Disabled = disabled })
}

// Append adds child to node parentID and scrolls it into view
func (d *Document) Append(parentID string, child *Node) bool {
	d.mu.Lock()
	parent := d.root.Find(parentID)
	if parent != nil {
		parent.Children = append(parent.Children, child)
		d.scrolled = child
	}
	d.mu.Unlock()
	if parent != nil {
		d.notify()
	}
	return parent != nil
}

// Remove detaches node id from the tree
func (d *Document) Remove(id string) bool {
	d.mu.Lock()
	removed := false
	if parent := d.root.findParent(id); parent != nil {
		for i, c := range parent.Children {
			if c.ID == id {
				parent.Children = append(parent.Children[:i], parent.Children[i+1:]...)
				removed = true
				break
			}
		}
	}
	d.mu.Unlock()
	if removed {
		d.notify()
	}
	return removed
}

// Bind wires action to h, replacing any previous binding
func (d *Document) Bind(action Action, h Handler) {
	d.mu.Lock()
	d.handlers[action] = h
	d.mu.Unlock()
}

// Dispatch delivers ev to node id. Nothing happens when the node does not
// exist, is disabled, or declares no bound action for ev.
func (d *Document) Dispatch(id string, ev Event) bool {
	d.mu.Lock()
	n := d.root.Find(id)
	if n == nil || n.Disabled {
		d.mu.Unlock()
		return false
	}
	return d.dispatchLocked(n, ev)
}

// DispatchNode delivers ev to the first node for which match returns true.
// It serves nodes without ids, such as suggestion chips.
func (d *Document) DispatchNode(match func(*Node) bool, ev Event) bool {
	d.mu.Lock()
	var target *Node
	d.root.Walk(func(n *Node) bool {
		if match(n) {
			target = n
			return false
		}
		return true
	})
	if target == nil || target.Disabled {
		d.mu.Unlock()
		return false
	}
	return d.dispatchLocked(target, ev)
}

// dispatchLocked is called with d.mu held and releases it
func (d *Document) dispatchLocked(n *Node, ev Event) bool {
	action, ok := n.On[ev]
	var h Handler
	if ok {
		h = d.handlers[action]
	}
	target := n.Clone()
	d.mu.Unlock()
	if h == nil {
		return false
	}
	h(ev, target)
	return true
}

// OnChange registers fn to run after every mutation
func (d *Document) OnChange(fn func()) {
	d.mu.Lock()
	d.listeners = append(d.listeners, fn)
	d.mu.Unlock()
}

func (d *Document) notify() {
	d.mu.Lock()
	listeners := append([]func(){}, d.listeners...)
	d.mu.Unlock()
	for _, fn := range listeners {
		fn()
	}
}
