package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/iksnae/support-widget/internal"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	verbose     bool
	apiKey      string
	apiURL      string
	origin      string
	storagePath string
	version     string = "dev"
	commit      string = "unknown"
	date        string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "support-widget",
	Short: "Run the Support AI chat widget outside the browser",
	Long: `Mount the Support AI chat widget against a support backend and drive it
from the terminal, a preview web server, or scripts.

The widget loads its tenant config once, renders a chat bubble and window,
and relays messages to the backend, remembering the conversation per origin.

Features:
  • Interactive terminal chat with the same behaviour as the embedded widget
  • Preview server that embeds the widget in a host page
  • Render the widget as HTML, JSON, YAML, Markdown or terminal text
  • Persisted conversation sessions, scoped per origin

Quick Start:
  support-widget chat --api-key <key>                 # Chat in the terminal
  support-widget ask "Where is my order?"             # One-shot question
  support-widget preview --addr :8080                 # Serve a host page
  support-widget render --format html --open          # Print widget markup

Settings can also come from WIDGET_API_KEY, WIDGET_API_URL, WIDGET_ORIGIN and
WIDGET_STORAGE, or a .env file in the working directory.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			internal.LogWarn("Failed to load .env: %v", err)
		}
		internal.SetVerbose(verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "Tenant API key (overrides "+internal.EnvAPIKey+")")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Support backend base URL (default "+internal.DefaultBaseURL+")")
	rootCmd.PersistentFlags().StringVar(&origin, "origin", "", "Origin the session is remembered under (default: the API URL's origin)")
	rootCmd.PersistentFlags().StringVar(&storagePath, "storage", "", "Path to the session storage database")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}
