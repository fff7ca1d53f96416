package render

import (
	"io"

	"github.com/iksnae/support-widget/internal/ui"
	"gopkg.in/yaml.v3"
)

// YAMLRenderer renders the widget tree in YAML format
type YAMLRenderer struct{}

// Render renders a widget tree to YAML format
func (r *YAMLRenderer) Render(root *ui.Node, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer func() { _ = enc.Close() }()

	return enc.Encode(root)
}

// Extension returns the file extension for this format
func (r *YAMLRenderer) Extension() string {
	return "yaml"
}
