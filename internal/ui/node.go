// Package ui describes the widget as a declarative node tree.
//
// A tree is built once from a Theme, wrapped in a Document that serialises
// mutations and dispatches declared events to bound handlers, and handed to
// renderers (see internal/render) that turn snapshots into markup or text.
package ui

import "slices"

// Event is a user interaction a node can declare a reaction to
type Event string

const (
	EventClick Event = "click"
	EventEnter Event = "enter"
)

// Action names the handler a node's event is wired to
type Action string

const (
	ActionToggle  Action = "toggle"
	ActionSend    Action = "send"
	ActionSuggest Action = "suggest"
)

// Node is one element of the widget tree
type Node struct {
	Tag      string            `json:"tag" yaml:"tag"`
	ID       string            `json:"id,omitempty" yaml:"id,omitempty"`
	Classes  []string          `json:"classes,omitempty" yaml:"classes,omitempty"`
	Style    map[string]string `json:"style,omitempty" yaml:"style,omitempty"`
	Attrs    map[string]string `json:"attrs,omitempty" yaml:"attrs,omitempty"`
	Text     string            `json:"text,omitempty" yaml:"text,omitempty"`
	Value    string            `json:"value,omitempty" yaml:"value,omitempty"`
	Disabled bool              `json:"disabled,omitempty" yaml:"disabled,omitempty"`
	Shadow   bool              `json:"shadow,omitempty" yaml:"shadow,omitempty"` // children sit behind an encapsulation boundary
	On       map[Event]Action  `json:"on,omitempty" yaml:"on,omitempty"`
	Children []*Node           `json:"children,omitempty" yaml:"children,omitempty"`
}

// Option configures a node under construction
type Option func(*Node)

// El builds a node with the given tag
func El(tag string, opts ...Option) *Node {
	n := &Node{Tag: tag}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

func Div(opts ...Option) *Node { return El("div", opts...) }
func Span(opts ...Option) *Node { return El("span", opts...) }
func Button(opts ...Option) *Node { return El("button", opts...) }
func Input(opts ...Option) *Node { return El("input", opts...) }

func ID(id string) Option {
	return func(n *Node) { n.ID = id }
}

func Class(classes ...string) Option {
	return func(n *Node) {
		for _, c := range classes {
			if c != "" && !slices.Contains(n.Classes, c) {
				n.Classes = append(n.Classes, c)
			}
		}
	}
}

func Style(prop, value string) Option {
	return func(n *Node) {
		if value == "" {
			return
		}
		if n.Style == nil {
			n.Style = map[string]string{}
		}
		n.Style[prop] = value
	}
}

func Attr(name, value string) Option {
	return func(n *Node) {
		if n.Attrs == nil {
			n.Attrs = map[string]string{}
		}
		n.Attrs[name] = value
	}
}

func Text(text string) Option {
	return func(n *Node) { n.Text = text }
}

func Shadow() Option {
	return func(n *Node) { n.Shadow = true }
}

func On(ev Event, action Action) Option {
	return func(n *Node) {
		if n.On == nil {
			n.On = map[Event]Action{}
		}
		n.On[ev] = action
	}
}

func Children(children ...*Node) Option {
	return func(n *Node) {
		for _, c := range children {
			if c != nil {
				n.Children = append(n.Children, c)
			}
		}
	}
}

// If applies opt only when cond holds
func If(cond bool, opt Option) Option {
	return func(n *Node) {
		if cond {
			opt(n)
		}
	}
}

// HasClass reports whether the node carries class c
func (n *Node) HasClass(c string) bool {
	return slices.Contains(n.Classes, c)
}

func (n *Node) addClass(classes ...string) {
	Class(classes...)(n)
}

func (n *Node) removeClass(classes ...string) {
	n.Classes = slices.DeleteFunc(n.Classes, func(c string) bool {
		return slices.Contains(classes, c)
	})
}

// Find returns the first node with the given id in the subtree, depth first
func (n *Node) Find(id string) *Node {
	if n == nil {
		return nil
	}
	if n.ID == id {
		return n
	}
	for _, c := range n.Children {
		if found := c.Find(id); found != nil {
			return found
		}
	}
	return nil
}

// findParent returns the parent of the node with the given id
func (n *Node) findParent(id string) *Node {
	for _, c := range n.Children {
		if c.ID == id {
			return n
		}
		if p := c.findParent(id); p != nil {
			return p
		}
	}
	return nil
}

// Clone returns a deep copy of the subtree
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := *n
	c.Classes = slices.Clone(n.Classes)
	if n.Style != nil {
		c.Style = make(map[string]string, len(n.Style))
		for k, v := range n.Style {
			c.Style[k] = v
		}
	}
	if n.Attrs != nil {
		c.Attrs = make(map[string]string, len(n.Attrs))
		for k, v := range n.Attrs {
			c.Attrs[k] = v
		}
	}
	if n.On != nil {
		c.On = make(map[Event]Action, len(n.On))
		for k, v := range n.On {
			c.On[k] = v
		}
	}
	if n.Children != nil {
		c.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = child.Clone()
		}
	}
	return &c
}

// Walk visits the subtree depth first, stopping early when fn returns false
func (n *Node) Walk(fn func(*Node) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n) {
		return false
	}
	for _, c := range n.Children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}
