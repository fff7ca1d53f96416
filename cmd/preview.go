package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iksnae/support-widget/internal"
	"github.com/iksnae/support-widget/internal/preview"
	"github.com/spf13/cobra"
)

var (
	previewAddr      string
	previewConfig    string
	previewEphemeral bool
)

// previewCmd represents the preview command
var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Serve a host page with the widget embedded",
	Long: `Start a local web server whose page embeds the mounted widget.

The page renders the widget inside a shadow root and forwards clicks and
messages to it, so the bubble, window animation and conversation behave as
they would on a customer site.

Routes:
  GET  /               Host page
  GET  /widget/state   Window state and conversation as JSON
  GET  /widget/tree    Widget tree as JSON
  POST /widget/click   Click a node (form field id)
  POST /widget/send    Send a message (form field message)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		settings := resolveSettings()
		sessions, closeStore, err := openSessionStore(settings, previewEphemeral)
		if err != nil {
			return err
		}
		defer closeStore()

		w, err := mountWidget(ctx, settings, sessions, previewConfig)
		if err != nil {
			return err
		}
		defer w.Close()

		srv := &http.Server{
			Addr:              previewAddr,
			Handler:           preview.NewRouter(preview.New(w)),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			internal.LogInfo("Preview listening on %s", previewAddr)
			errCh <- srv.ListenAndServe()
		}()
		fmt.Println(successStyle.Render("✅ Preview at http://" + displayAddr(previewAddr)))

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("preview server failed: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		internal.LogInfo("Shutting down preview server")
		return srv.Shutdown(shutdownCtx)
	},
}

func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}

func init() {
	rootCmd.AddCommand(previewCmd)
	previewCmd.Flags().StringVar(&previewAddr, "addr", ":8080", "Address to listen on")
	previewCmd.Flags().StringVar(&previewConfig, "config", "", "Serve the widget from a local config file")
	previewCmd.Flags().BoolVar(&previewEphemeral, "ephemeral", false, "Do not read or persist the session")
}
