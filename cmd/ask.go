package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/iksnae/support-widget/internal"
	"github.com/iksnae/support-widget/internal/ui"
	"github.com/spf13/cobra"
)

var (
	askTimeout   time.Duration
	askEphemeral bool
)

// askCmd represents the ask command
var askCmd = &cobra.Command{
	Use:   "ask <message>",
	Short: "Send one message and print the reply",
	Long: `Send a single message through the widget and print the bot's reply.

The conversation continues the session remembered for the origin, so
repeated asks share context. Use --ephemeral to start a fresh one.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings := resolveSettings()
		sessions, closeStore, err := openSessionStore(settings, askEphemeral)
		if err != nil {
			return err
		}
		defer closeStore()

		ctx, cancel := context.WithTimeout(cmd.Context(), askTimeout)
		defer cancel()

		w, err := mountWidget(ctx, settings, sessions, "")
		if err != nil {
			return err
		}
		defer w.Close()

		if w.Degraded() {
			return fmt.Errorf("support backend unavailable: %s", internal.OfflineWelcome)
		}

		done, err := w.Send(strings.Join(args, " "))
		if err != nil {
			return err
		}

		err = internal.ShowProgress(ctx, cmd.ErrOrStderr(), "Waiting for reply", func() error {
			select {
			case <-done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
		if err != nil {
			return fmt.Errorf("no reply: %w", err)
		}

		msgs := w.View().Messages()
		reply := msgs[len(msgs)-1]
		if reply.Sender != ui.SenderBot {
			return fmt.Errorf("no reply received")
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), reply.Text)
		if reply.Text == internal.FallbackAnswer {
			return fmt.Errorf("chat request failed")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().DurationVar(&askTimeout, "timeout", 45*time.Second, "How long to wait for config and reply")
	askCmd.Flags().BoolVar(&askEphemeral, "ephemeral", false, "Do not read or persist the session")
}
