package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/iksnae/support-widget/internal/ui"
)

// MarkdownRenderer renders the conversation as a Markdown transcript
type MarkdownRenderer struct{}

// Render renders the widget's conversation to Markdown format
func (r *MarkdownRenderer) Render(root *ui.Node, w io.Writer) error {
	title, status := headerText(root)
	messages := ui.MessagesOf(root)

	if _, err := fmt.Fprintf(w, "# %s\n\n", title); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "**Status:** %s  \n", status)
	_, _ = fmt.Fprintf(w, "**Messages:** %d\n\n", len(messages))
	_, _ = fmt.Fprintf(w, "---\n\n")

	for i, msg := range messages {
		speaker := "Bot"
		if msg.Sender == ui.SenderUser {
			speaker = "You"
		}
		_, _ = fmt.Fprintf(w, "**%s:**\n\n%s\n\n", speaker, escapeMarkdown(msg.Text))

		if i < len(messages)-1 {
			_, _ = fmt.Fprintf(w, "---\n\n")
		}
	}

	return nil
}

// escapeMarkdown escapes markdown emphasis outside code blocks
func escapeMarkdown(text string) string {
	lines := strings.Split(text, "\n")
	var result []string
	inCodeBlock := false

	for _, line := range lines {
		if strings.HasPrefix(line, "```") {
			inCodeBlock = !inCodeBlock
			result = append(result, line)
		} else if inCodeBlock {
			result = append(result, line)
		} else {
			line = strings.ReplaceAll(line, "**", "\\*\\*")
			line = strings.ReplaceAll(line, "__", "\\_\\_")
			result = append(result, line)
		}
	}

	return strings.Join(result, "\n")
}

// Extension returns the file extension for this format
func (r *MarkdownRenderer) Extension() string {
	return "md"
}
