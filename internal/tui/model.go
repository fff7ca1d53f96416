// Package tui hosts a mounted widget in a bubbletea program.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/iksnae/support-widget/internal"
	"github.com/iksnae/support-widget/internal/render"
	"github.com/iksnae/support-widget/internal/ui"
)

// ChangedMsg is delivered after the widget document changes
type ChangedMsg struct{}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	offlineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)
)

const (
	keyToggle  = "ctrl+o"
	chromeRows = 4
)

// Model renders one widget and forwards keys to it
type Model struct {
	widget  *internal.Widget
	changes <-chan struct{}

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model

	width  int
	height int
	ready  bool
}

// New wraps w. The model subscribes to document changes; at most one
// pending notification is queued, so bursts of mutations coalesce.
func New(w *internal.Widget) Model {
	changes := make(chan struct{}, 1)
	w.Document().OnChange(func() {
		select {
		case changes <- struct{}{}:
		default:
		}
	})

	in := textinput.New()
	in.Placeholder = "Type a message..."
	in.Prompt = "> "
	in.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))

	return Model{
		widget:   w,
		changes:  changes,
		input:    in,
		spinner:  sp,
		viewport: viewport.New(render.DefaultWidth, 10),
		width:    render.DefaultWidth,
	}
}

func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return ChangedMsg{}
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, waitForChange(m.changes))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-chromeRows, 1)
		m.input.Width = max(msg.Width-4, 1)
		m.ready = true
		m.refresh()

	case ChangedMsg:
		m.refresh()
		cmds = append(cmds, waitForChange(m.changes))

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case keyToggle:
			m.widget.Click(ui.BubbleID)
			m.refresh()
			return m, nil
		case "enter":
			if !m.open() {
				return m, nil
			}
			m.widget.Type(m.input.Value())
			m.widget.Submit()
			m.input.SetValue(m.widget.View().Input())
			m.refresh()
			return m, nil
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

		if m.open() && !m.widget.Degraded() {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			m.widget.Type(m.input.Value())
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) refresh() {
	m.viewport.SetContent(render.Transcript(m.widget.Document().Snapshot(), m.viewport.Width))
	m.viewport.GotoBottom()
}

func (m Model) open() bool {
	return m.widget.Window().State() == ui.WindowOpen
}

func (m Model) View() string {
	root := m.widget.Document().Snapshot()
	if !m.open() {
		return render.Panel(root, m.width) + "  " + helpStyle.Render(keyToggle+" to chat · esc to quit")
	}

	cfg := m.widget.Config()
	header := headerStyle.
		Background(lipgloss.Color(cfg.PrimaryColor)).
		Width(m.width).
		Render(cfg.ChatTitle)

	var footer string
	switch {
	case m.widget.Degraded():
		footer = offlineStyle.Render(ui.StatusOffline)
	case m.widget.View().LoadingVisible():
		footer = m.spinner.View() + " waiting for reply"
	default:
		footer = m.input.View()
	}

	return strings.Join([]string{
		header,
		m.viewport.View(),
		footer,
		helpStyle.Render(keyToggle + " to close · esc to quit"),
	}, "\n")
}
