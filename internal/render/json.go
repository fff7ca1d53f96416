package render

import (
	"encoding/json"
	"io"

	"github.com/iksnae/support-widget/internal/ui"
)

// JSONRenderer renders the widget tree as indented JSON
type JSONRenderer struct{}

// Render renders a widget tree to JSON format
func (r *JSONRenderer) Render(root *ui.Node, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(root)
}

// Extension returns the file extension for this format
func (r *JSONRenderer) Extension() string {
	return "json"
}
