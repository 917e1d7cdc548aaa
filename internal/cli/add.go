package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ayutaki/kiroku/internal/client"
	"github.com/ayutaki/kiroku/models"
)

type addOptions struct {
	title     string
	date      string
	startDate string
	endDate   string
	startTime string
	endTime   string
	editID    string
	template  string
}

func addAdd(topLevel *cobra.Command, ro *rootOptions) {
	ao := &addOptions{}

	cmd := &cobra.Command{
		Use:   "add [text]",
		Short: "Add a diary note or calendar event",
		Long: "Add an entry. Content with the " + models.EventTag + " hashtag becomes a\n" +
			"calendar event; everything else is a diary note.",
		Example: `
kiroku add "had ramen for lunch #日記"
kiroku add "dentist #予定" --date 2025-06-12 --start 09:30 --end 10:00
kiroku add "conference #予定" --start-date 2025-06-10 --end-date 2025-06-12
kiroku add --template morning-pages
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 && ao.template == "" {
				return errors.New("requires entry text or --template")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(ro)
			if err != nil {
				return err
			}
			if err = app.Unlock(); err != nil {
				return err
			}

			date, err := parseDay(ao.date)
			if err != nil {
				return fmt.Errorf("parse date: %w", err)
			}

			form := models.EntryForm{
				Date:      date,
				StartDate: ao.startDate,
				EndDate:   ao.endDate,
				StartTime: ao.startTime,
				EndTime:   ao.endTime,
				Title:     ao.title,
				Content:   strings.Join(args, " "),
			}

			if ao.template != "" {
				tpl, found := findTemplate(app.Templates.List(), ao.template)
				if !found {
					return fmt.Errorf("template %q not found", ao.template)
				}
				form = tpl.Form(date)
				if len(args) > 0 {
					form.Content = strings.Join(args, " ")
				}
			}

			item, err := app.Services.Items.Save(context.Background(), form, ao.editID)
			if err != nil {
				return err
			}

			kind := "note"
			if item.Kind == models.KindEvent {
				kind = "event"
			}
			fmt.Fprintf(color.Output, "%s %s saved (%s)\n", color.GreenString("✔"), kind, item.ID)
			reportQueue(app)
			return nil
		},
	}

	cmd.Flags().StringVar(&ao.title, "title", "", "entry title")
	cmd.Flags().StringVar(&ao.date, "date", "", "entry date (defaults to today)")
	cmd.Flags().StringVar(&ao.startDate, "start-date", "", "event start date")
	cmd.Flags().StringVar(&ao.endDate, "end-date", "", "event end date")
	cmd.Flags().StringVar(&ao.startTime, "start", "", `event start time, "15:04"`)
	cmd.Flags().StringVar(&ao.endTime, "end", "", `event end time, "15:04"`)
	cmd.Flags().StringVar(&ao.editID, "edit", "", "id of an existing entry to replace")
	cmd.Flags().StringVar(&ao.template, "template", "", "expand a saved template")

	topLevel.AddCommand(cmd)
}

func findTemplate(templates []models.Template, nameOrID string) (models.Template, bool) {
	for _, tpl := range templates {
		if tpl.ID == nameOrID || tpl.Name == nameOrID {
			return tpl, true
		}
	}
	return models.Template{}, false
}

// reportQueue prints a short hint when entries are waiting for the server.
func reportQueue(app *client.App) {
	if depth := app.Services.Engine.Status().QueueDepth; depth > 0 {
		fmt.Fprintf(color.Output, "%s %d pending change(s) queued for sync\n",
			color.YellowString("●"), depth)
	}
}
