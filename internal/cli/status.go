package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/ayutaki/kiroku/internal/service"
	"github.com/ayutaki/kiroku/models"
)

func addStatus(topLevel *cobra.Command, ro *rootOptions) {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the pending queue and sync state",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(ro)
			if err != nil {
				return err
			}

			status := app.Services.Engine.Status()
			fmt.Fprintf(color.Output, "state: %s\n", stateCell(status.State))

			queue := app.Services.Engine.Queue()
			if len(queue) == 0 {
				fmt.Fprintf(color.Output, "queue: %s\n", color.GreenString("empty"))
				return nil
			}

			tbl := uitable.New()
			tbl.MaxColWidth = 40
			tbl.AddRow(bold("Queued"), bold("Op"), bold("Target"), bold("Attempts"), bold("Last error"))
			for _, entry := range queue {
				tbl.AddRow(
					entry.CreatedAt.Format("2006-01-02 15:04"),
					string(entry.Type),
					entryTarget(entry),
					entry.AttemptCount,
					entry.LastError,
				)
			}
			fmt.Fprintln(color.Output, tbl)
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}

func stateCell(state service.SyncState) string {
	switch state {
	case service.StateSyncing:
		return color.CyanString(string(state))
	case service.StateError:
		return color.RedString(string(state))
	default:
		return color.GreenString(string(state))
	}
}

func entryTarget(entry models.OutboxEntry) string {
	switch {
	case entry.Draft != nil:
		if entry.Draft.Name != "" {
			return entry.Draft.Name
		}
		return entry.Draft.ID
	case entry.Params != nil:
		return entry.Params.ItemID
	default:
		return "?"
	}
}
