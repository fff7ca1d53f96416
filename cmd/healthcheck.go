package cmd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/support-widget/internal"
	"github.com/spf13/cobra"
)

var (
	healthcheckVerbose bool
	healthcheckTimeout time.Duration
)

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true).
			Underline(true)
)

// healthcheckCmd represents the healthcheck command
var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Check that the widget can reach its backend",
	Long: `Check the health of the widget setup by verifying:
  • An API key is configured
  • Session storage can be opened
  • The widget config endpoint accepts the key
  • The widget stylesheet is served

This command is useful for debugging an embed that shows "Offline".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		say := func(a ...interface{}) { _, _ = fmt.Fprintln(out, a...) }
		detail := func(format string, a ...interface{}) {
			if healthcheckVerbose {
				_, _ = fmt.Fprintf(out, "   "+format+"\n", a...)
			}
		}

		say(sectionStyle.Render("🔍 Support Widget Health Check"))
		say()

		// Step 1: Settings
		say(infoStyle.Render("Step 1: Resolving settings..."))
		settings := resolveSettings()
		detail("API URL: %s", settings.BaseURL)
		detail("Origin: %s", settings.Origin)
		if err := settings.Validate(); err != nil {
			say(errorStyle.Render("❌ No API key configured"))
			say("   Pass --api-key or set " + internal.EnvAPIKey)
			return fmt.Errorf("health check failed: %w", err)
		}
		say(successStyle.Render("✅ API key configured"))
		say()

		// Step 2: Session storage
		say(infoStyle.Render("Step 2: Opening session storage..."))
		storageOK := true
		sessions, closeStore, err := openSessionStore(settings, false)
		if err != nil {
			storageOK = false
			say(warningStyle.Render("⚠️  Session storage unavailable:"), err)
			say("   Conversations will not be remembered between runs")
		} else {
			if id, ok := sessions.Get(); ok {
				say(successStyle.Render("✅ Session storage ready (conversation in progress)"))
				detail("Session: %s", id)
			} else {
				say(successStyle.Render("✅ Session storage ready (no conversation yet)"))
			}
			closeStore()
		}
		say()

		ctx, cancel := context.WithTimeout(cmd.Context(), healthcheckTimeout)
		defer cancel()
		httpClient := &http.Client{Timeout: healthcheckTimeout}

		// Step 3: Config endpoint
		say(infoStyle.Render("Step 3: Fetching widget config..."))
		detail("GET %s", settings.ConfigURL())
		cfg, err := internal.NewClient(settings, httpClient).FetchConfig(ctx)
		configOK := err == nil
		if configOK {
			say(successStyle.Render(fmt.Sprintf("✅ Config loaded: %q", cfg.ChatTitle)))
			detail("Position: %s, primary color: %s", cfg.Position, cfg.PrimaryColor)
			if len(cfg.SuggestedQuestions) > 0 {
				detail("Suggested questions: %d", len(cfg.SuggestedQuestions))
			}
		} else {
			say(errorStyle.Render("❌ Config fetch failed:"), err)
			say("   The widget will render in offline mode")
		}
		say()

		// Step 4: Stylesheet
		say(infoStyle.Render("Step 4: Checking stylesheet..."))
		detail("GET %s", settings.StylesheetURL())
		stylesheetErr := checkStylesheet(ctx, httpClient, settings.StylesheetURL())
		if stylesheetErr == nil {
			say(successStyle.Render("✅ Stylesheet served"))
		} else {
			say(warningStyle.Render("⚠️  Stylesheet unavailable:"), stylesheetErr)
		}
		say()

		// Summary
		say(sectionStyle.Render("📊 Summary"))
		say()

		switch {
		case configOK && storageOK && stylesheetErr == nil:
			say(successStyle.Render("✅ Health check passed!"))
			return nil
		case configOK:
			say(warningStyle.Render("⚠️  Widget will work with reduced functionality"))
			return nil
		default:
			say(errorStyle.Render("❌ Health check failed"))
			say("   • The widget cannot load its config and will show Offline")
			return fmt.Errorf("health check failed: %w", err)
		}
	},
}

func checkStylesheet(ctx context.Context, client *http.Client, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(healthcheckCmd)
	healthcheckCmd.Flags().BoolVarP(&healthcheckVerbose, "verbose", "v", false, "Show detailed diagnostic information")
	healthcheckCmd.Flags().DurationVar(&healthcheckTimeout, "timeout", 10*time.Second, "Timeout for backend requests")
}
