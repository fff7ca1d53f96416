package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/iksnae/support-widget/internal"
	"github.com/iksnae/support-widget/internal/tui"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	chatEphemeral bool
	chatLogFile   string
)

// chatCmd represents the chat command
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with support in the terminal",
	Long: `Mount the widget and drive it from a full-screen terminal UI.

Keys:
  ctrl+o     Open or close the chat window
  enter      Send the typed message
  pgup/pgdn  Scroll the conversation
  esc        Quit

Logs are written to a file while the UI owns the terminal.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
			return fmt.Errorf("chat needs an interactive terminal; use 'ask' for scripts")
		}

		logPath := chatLogFile
		if logPath == "" {
			dbPath, err := internal.DefaultStoragePath()
			if err != nil {
				return err
			}
			logPath = filepath.Join(filepath.Dir(dbPath), "chat.log")
		}
		if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer func() { _ = logFile.Close() }()
		internal.SetLogOutput(logFile)
		defer internal.SetLogOutput(os.Stderr)

		settings := resolveSettings()
		sessions, closeStore, err := openSessionStore(settings, chatEphemeral)
		if err != nil {
			return err
		}
		defer closeStore()

		w, err := mountWidget(cmd.Context(), settings, sessions, "")
		if err != nil {
			return err
		}
		defer w.Close()

		if _, err := tea.NewProgram(tui.New(w), tea.WithAltScreen()).Run(); err != nil {
			return fmt.Errorf("terminal UI failed: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().BoolVar(&chatEphemeral, "ephemeral", false, "Do not read or persist the session")
	chatCmd.Flags().StringVar(&chatLogFile, "log-file", "", "Where to write logs (default ~/.support-widget/chat.log)")
}
