package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/iksnae/support-widget/internal"
	"github.com/iksnae/support-widget/internal/render"
	"github.com/iksnae/support-widget/internal/ui"
	"github.com/spf13/cobra"
)

var (
	renderFormat string
	renderOutput string
	renderConfig string
	renderOpen   bool
)

// renderCmd represents the render command
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the mounted widget",
	Long: `Mount the widget and write its current tree in the chosen format.

Formats:
  html      Markup with the widget inside a declarative shadow root
  json      The widget tree as JSON
  yaml      The widget tree as YAML
  md        The conversation as a Markdown transcript
  text      A terminal drawing of the widget

Use --config to render from a local YAML/JSON config instead of the backend.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		renderer, err := render.NewRenderer(renderFormat)
		if err != nil {
			return err
		}

		settings := resolveSettings()
		w, err := mountWidget(cmd.Context(), settings, internal.NewMemorySessionStore(""), renderConfig)
		if err != nil {
			return err
		}
		defer w.Close()

		if renderOpen {
			w.Click(ui.BubbleID)
		}
		root := w.Document().Snapshot()

		if renderOutput == "" {
			return renderer.Render(root, cmd.OutOrStdout())
		}
		return renderToFile(cmd.OutOrStdout(), renderer, root, renderOutput, renderFormat)
	},
}

func renderToFile(out io.Writer, renderer render.Renderer, root *ui.Node, path, format string) error {
	if filepath.Ext(path) == "" {
		path = path + "." + renderer.Extension()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return &internal.RenderError{Format: format, Path: path, Err: err}
	}

	file, err := os.Create(path)
	if err != nil {
		return &internal.RenderError{Format: format, Path: path, Err: err}
	}
	defer func() { _ = file.Close() }()

	if err := renderer.Render(root, file); err != nil {
		return &internal.RenderError{Format: format, Path: path, Err: err}
	}
	internal.LogInfo("Rendered widget to %s", path)
	fmt.Fprintln(out, successStyle.Render("✅ Wrote "+path))
	return nil
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "html", "Output format (html, json, yaml, md, text)")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "Write to this file instead of stdout")
	renderCmd.Flags().StringVar(&renderConfig, "config", "", "Render from a local widget config file")
	renderCmd.Flags().BoolVar(&renderOpen, "open", false, "Open the chat window before rendering")
}
