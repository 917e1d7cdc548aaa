package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/ayutaki/kiroku/internal/client"
	"github.com/ayutaki/kiroku/models"
)

func addList(topLevel *cobra.Command, ro *rootOptions) {
	var (
		timeline  bool
		recurring bool
	)

	cmd := &cobra.Command{
		Use:     "list [month]",
		Aliases: []string{"ls"},
		Short:   "Show entries for a month",
		Example: `
kiroku list
kiroku list 2025-06
kiroku list --timeline
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(ro)
			if err != nil {
				return err
			}
			if err = app.Unlock(); err != nil {
				return err
			}

			raw := ""
			if len(args) > 0 {
				raw = args[0]
			}
			monthKey, err := parseMonth(raw)
			if err != nil {
				return fmt.Errorf("parse month: %w", err)
			}

			if timeline {
				return printTimeline(app, monthKey)
			}
			return printMonth(app, monthKey, recurring)
		},
	}

	cmd.Flags().BoolVar(&timeline, "timeline", false, "flat list, newest first")
	cmd.Flags().BoolVar(&recurring, "recurring", true, "include recurring event instances")
	topLevel.AddCommand(cmd)
}

func printMonth(app *client.App, monthKey string, withRecurring bool) error {
	records, err := app.Services.Items.LoadMonth(context.Background(), monthKey)
	if err != nil {
		return err
	}

	tbl := uitable.New()
	tbl.MaxColWidth = 60
	tbl.Wrap = true
	tbl.AddRow(bold("Date"), bold("Kind"), bold("Entry"), bold("ID"))

	for _, rec := range records {
		items := rec.OrderedItems
		if withRecurring {
			items = append(items, app.Recurring.InstancesFor(rec.Date)...)
		}
		for _, item := range items {
			tbl.AddRow(rec.Date, kindCell(item), entryCell(item), item.ID)
		}
	}

	fmt.Fprintln(color.Output, tbl)
	reportQueue(app)
	return nil
}

func printTimeline(app *client.App, monthKey string) error {
	items, err := app.Services.Items.Timeline(context.Background(), monthKey)
	if err != nil {
		return err
	}

	tbl := uitable.New()
	tbl.MaxColWidth = 60
	tbl.Wrap = true
	tbl.AddRow(bold("When"), bold("Kind"), bold("Entry"), bold("ID"))

	for _, item := range items {
		tbl.AddRow(item.FilingDate(), kindCell(item), entryCell(item), item.ID)
	}

	fmt.Fprintln(color.Output, tbl)
	reportQueue(app)
	return nil
}

func kindCell(item models.Item) string {
	if item.InferKind() == models.KindEvent {
		return color.CyanString("event")
	}
	return "note"
}

func entryCell(item models.Item) string {
	text := item.Name
	if text == "" {
		text = item.Content
	}
	if !item.Decrypted && item.Name != "" {
		text = color.RedString(item.Name)
	}
	if item.InferKind() == models.KindEvent && len(item.StartTime) >= 16 {
		text = fmt.Sprintf("%s %s", item.StartTime[11:16], text)
	}
	return strings.ReplaceAll(text, "\n", " ")
}

func bold(s string) string {
	return color.New(color.Bold).Sprint(s)
}
