package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/support-widget/internal"
	"github.com/spf13/cobra"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

// sessionCmd groups the session subcommands
var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Inspect remembered conversation sessions",
	Long:  `Inspect the conversation sessions the widget remembers, one per origin.`,
}

var sessionShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the session remembered for the current origin",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings := resolveSettings()
		sessions, closeStore, err := openSessionStore(settings, false)
		if err != nil {
			return err
		}
		defer closeStore()

		id, ok := sessions.Get()
		if !ok {
			return fmt.Errorf("no session stored for %s", settings.Origin)
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), id)
		return nil
	},
}

var sessionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sessions for every origin",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings := resolveSettings()
		path := settings.StoragePath
		if path == "" {
			var err error
			if path, err = internal.DefaultStoragePath(); err != nil {
				return err
			}
		}

		db, err := internal.OpenDatabase(path)
		if err != nil {
			return fmt.Errorf("failed to open session storage: %w", err)
		}
		defer func() { _ = db.Close() }()

		pairs, err := internal.NewStorage(db).List(internal.SessionKey)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(pairs) == 0 {
			_, _ = fmt.Fprintln(out, headerStyle.Render("📋 No sessions found"))
			return nil
		}

		_, _ = fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("📋 Found %d session(s)", len(pairs))))
		_, _ = fmt.Fprintln(out)

		w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
		_, _ = fmt.Fprintln(w, titleStyle.Render("Origin")+"\t"+titleStyle.Render("Session")+"\t"+titleStyle.Render("Updated")+"\t")
		_, _ = fmt.Fprintln(w, strings.Repeat("─", 80))
		for _, p := range pairs {
			updated := dateStyle.Render("—")
			if p.UpdatedAt.Unix() > 0 {
				updated = dateStyle.Render(p.UpdatedAt.Format("2006-01-02 15:04"))
			}
			_, _ = fmt.Fprintln(w, p.Origin+"\t"+idStyle.Render(p.Value)+"\t"+updated+"\t")
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionShowCmd)
	sessionCmd.AddCommand(sessionListCmd)
}
