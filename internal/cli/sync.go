package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ayutaki/kiroku/internal/service"
)

func addSync(topLevel *cobra.Command, ro *rootOptions) {
	var (
		reset bool
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Push queued changes to the server",
		Long: "Push every queued change to the server now. Failed entries stay in\n" +
			"the queue and are retried on the next sync; --reset discards them.",
		Example: `
kiroku sync
kiroku sync --watch
kiroku sync --reset
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(ro)
			if err != nil {
				return err
			}

			if reset {
				app.Services.Engine.Reset()
				fmt.Fprintf(color.Output, "%s queue discarded\n", color.YellowString("●"))
				return nil
			}

			if err = app.Unlock(); err != nil {
				return err
			}

			ctx := context.Background()
			if watch {
				ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
				defer cancel()

				app.Start(ctx)
				defer app.Stop()
				<-ctx.Done()
				return nil
			}

			app.Services.Engine.Flush(ctx)

			status := app.Services.Engine.Status()
			switch {
			case status.State == service.StateError:
				fmt.Fprintf(color.Output, "%s sync incomplete, %d entr%s still queued\n",
					color.RedString("✘"), status.QueueDepth, plural(status.QueueDepth))
				return fmt.Errorf("%d queued change(s) failed to sync", status.QueueDepth)
			case status.QueueDepth > 0:
				fmt.Fprintf(color.Output, "%s %d entr%s still queued\n",
					color.YellowString("●"), status.QueueDepth, plural(status.QueueDepth))
			default:
				fmt.Fprintf(color.Output, "%s queue empty\n", color.GreenString("✔"))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&reset, "reset", false, "discard every queued change")
	cmd.Flags().BoolVar(&watch, "watch", false, "keep running and sync on the configured interval")
	topLevel.AddCommand(cmd)
}

func plural(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
