package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ayutaki/kiroku/internal/client"
	"github.com/ayutaki/kiroku/models"
)

func addRemove(topLevel *cobra.Command, ro *rootOptions) {
	var date string

	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete an entry",
		Example: `
kiroku rm 0197a5c2-8f1e-7f3a-9a3b-1c2d3e4f5a6b --date 2025-06-10
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(ro)
			if err != nil {
				return err
			}
			if err = app.Unlock(); err != nil {
				return err
			}

			day, err := parseDay(date)
			if err != nil {
				return fmt.Errorf("parse date: %w", err)
			}

			item, found := findItem(app, day, args[0])
			if !found {
				// fall back to a bare id: the server still clears the
				// day named by --date
				item = models.Item{ID: args[0], Date: day}
			}

			if err = app.Services.Items.Delete(context.Background(), item); err != nil {
				return err
			}

			fmt.Fprintf(color.Output, "%s deleted %s\n", color.GreenString("✔"), args[0])
			reportQueue(app)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "date the entry appears on (defaults to today)")
	topLevel.AddCommand(cmd)
}

// findItem looks the id up in the merged month view so deletes carry the
// full date range of multi-day events.
func findItem(app *client.App, day, id string) (models.Item, bool) {
	records, err := app.Services.Items.LoadMonth(context.Background(), models.MonthKey(day))
	if err != nil {
		return models.Item{}, false
	}
	for _, rec := range records {
		for _, item := range rec.OrderedItems {
			if item.ID == id {
				return item, true
			}
		}
	}
	return models.Item{}, false
}
