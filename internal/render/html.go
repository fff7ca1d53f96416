package render

import (
	"bufio"
	"html"
	"io"
	"sort"
	"strings"

	"github.com/iksnae/support-widget/internal/ui"
)

// ActionAttrPrefix prefixes the data attributes carrying declared events,
// e.g. data-on-click="toggle"
const ActionAttrPrefix = "data-on-"

var voidElements = map[string]bool{
	"input": true,
	"link":  true,
	"img":   true,
	"br":    true,
	"meta":  true,
}

// HTMLRenderer renders the widget as an HTML fragment. A shadow node's
// children are wrapped in a declarative shadow root so host page styles
// do not reach them.
type HTMLRenderer struct{}

// Render renders a widget tree to HTML
func (r *HTMLRenderer) Render(root *ui.Node, w io.Writer) error {
	bw := bufio.NewWriter(w)
	writeNode(bw, root)
	if _, err := bw.WriteString("\n"); err != nil {
		return err
	}
	return bw.Flush()
}

// Extension returns the file extension for this format
func (r *HTMLRenderer) Extension() string {
	return "html"
}

func writeNode(w *bufio.Writer, n *ui.Node) {
	if n == nil {
		return
	}
	w.WriteString("<" + n.Tag)
	writeAttrs(w, n)
	w.WriteString(">")
	if voidElements[n.Tag] {
		return
	}

	if n.Shadow {
		w.WriteString(`<template shadowrootmode="open">`)
	}
	w.WriteString(html.EscapeString(n.Text))
	for _, c := range n.Children {
		writeNode(w, c)
	}
	if n.Shadow {
		w.WriteString("</template>")
	}
	w.WriteString("</" + n.Tag + ">")
}

func writeAttrs(w *bufio.Writer, n *ui.Node) {
	attr := func(name, value string) {
		w.WriteString(" " + name + `="` + html.EscapeString(value) + `"`)
	}

	if n.ID != "" {
		attr("id", n.ID)
	}
	if len(n.Classes) > 0 {
		attr("class", strings.Join(n.Classes, " "))
	}
	if len(n.Style) > 0 {
		attr("style", styleString(n.Style))
	}
	for _, name := range sortedKeys(n.Attrs) {
		attr(name, n.Attrs[name])
	}
	if n.Tag == "input" && n.Value != "" {
		attr("value", n.Value)
	}
	events := make(map[string]string, len(n.On))
	for ev, action := range n.On {
		events[string(ev)] = string(action)
	}
	for _, ev := range sortedKeys(events) {
		attr(ActionAttrPrefix+ev, events[ev])
	}
	if n.Disabled {
		w.WriteString(" disabled")
	}
}

func styleString(style map[string]string) string {
	parts := make([]string, 0, len(style))
	for _, prop := range sortedKeys(style) {
		parts = append(parts, prop+": "+style[prop])
	}
	return strings.Join(parts, "; ")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
