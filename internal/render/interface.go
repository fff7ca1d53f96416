// Package render turns widget trees into markup, data or terminal text.
package render

import (
	"fmt"
	"io"

	"github.com/iksnae/support-widget/internal/ui"
)

// Renderer defines the interface for all output formats
type Renderer interface {
	Render(root *ui.Node, w io.Writer) error
	Extension() string
}

// NewRenderer creates a new renderer based on format
func NewRenderer(format string) (Renderer, error) {
	switch format {
	case "html":
		return &HTMLRenderer{}, nil
	case "md", "markdown":
		return &MarkdownRenderer{}, nil
	case "yaml":
		return &YAMLRenderer{}, nil
	case "json":
		return &JSONRenderer{}, nil
	case "text":
		return &TextRenderer{Width: DefaultWidth}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: html, md, yaml, json, text)", format)
	}
}
