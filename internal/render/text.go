package render

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/iksnae/support-widget/internal/ui"
)

// DefaultWidth is the panel width used when none is set
const DefaultWidth = 48

var (
	botStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("238")).
			Padding(0, 1)

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Padding(0, 1)

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			Padding(0, 1)

	inputStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), true, false, false, false).
			BorderForeground(lipgloss.Color("240"))

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			Italic(true)
)

// TextRenderer draws the widget as a terminal panel
type TextRenderer struct {
	Width int
}

// Render renders a widget tree as styled terminal text
func (r *TextRenderer) Render(root *ui.Node, w io.Writer) error {
	_, err := io.WriteString(w, Panel(root, r.Width)+"\n")
	return err
}

// Extension returns the file extension for this format
func (r *TextRenderer) Extension() string {
	return "txt"
}

// Panel draws the bubble alone while the window is hidden, otherwise the
// whole chat window.
func Panel(root *ui.Node, width int) string {
	if width <= 0 {
		width = DefaultWidth
	}
	primary := lipgloss.Color(primaryColor(root))

	window := root.Find(ui.WindowID)
	if window == nil || window.HasClass(ui.ClassHidden) {
		return lipgloss.NewStyle().Background(primary).Padding(0, 1).Render("💬")
	}

	title, status := headerText(root)
	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("255")).
		Background(primary).
		Width(width).
		Padding(0, 1).
		Render(title + "  · " + status)

	parts := []string{header, Transcript(root, width)}
	if input := root.Find(ui.InputID); input != nil {
		line := "> " + input.Value
		if send := root.Find(ui.SendID); send != nil && send.Disabled {
			line += "  (sending…)"
		}
		parts = append(parts, inputStyle.Width(width).Render(line))
	}
	if footer := root.Find(ui.FooterID); footer != nil {
		parts = append(parts, footerStyle.Render(footer.Text))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Transcript draws the message list, bot lines on the left and user lines
// on the right.
func Transcript(root *ui.Node, width int) string {
	if width <= 0 {
		width = DefaultWidth
	}
	list := root.Find(ui.MessagesID)
	if list == nil {
		return ""
	}
	maxLine := width * 3 / 4
	primary := lipgloss.Color(primaryColor(root))

	var lines []string
	for _, c := range list.Children {
		lineWidth := min(lipgloss.Width(c.Text)+2, maxLine)
		switch {
		case c.HasClass("loading"):
			lines = append(lines, loadingStyle.Render("• • •"))
		case c.HasClass(string(ui.SenderUser)):
			line := userStyle.Background(primary).Width(lineWidth).Render(c.Text)
			lines = append(lines, lipgloss.PlaceHorizontal(width, lipgloss.Right, line))
		case c.HasClass("message"):
			lines = append(lines, botStyle.Width(lineWidth).Render(c.Text))
		}
	}
	return strings.Join(lines, "\n")
}

func primaryColor(root *ui.Node) string {
	if bubble := root.Find(ui.BubbleID); bubble != nil {
		if c := bubble.Style["background-color"]; c != "" {
			return c
		}
	}
	return "39"
}

func headerText(root *ui.Node) (title, status string) {
	root.Find(ui.HeaderID).Walk(func(n *ui.Node) bool {
		switch {
		case n.Tag == "h3":
			title = n.Text
		case n.HasClass("status"):
			status = n.Text
		}
		return true
	})
	return title, status
}
