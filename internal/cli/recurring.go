package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/ayutaki/kiroku/models"
)

func addRecurring(topLevel *cobra.Command, ro *rootOptions) {
	cmd := &cobra.Command{
		Use:     "recurring",
		Aliases: []string{"rec"},
		Short:   "Manage recurring events",
		Long:    "Recurring events are repeat rules expanded into the calendar on\ndisplay. They live in local storage only and are never uploaded.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(recurringList(ro), recurringAdd(ro), recurringRemove(ro))
	topLevel.AddCommand(cmd)
}

func recurringList(ro *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List recurring event rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(ro)
			if err != nil {
				return err
			}

			rules := app.Recurring.List()
			if len(rules) == 0 {
				fmt.Fprintln(color.Output, "no recurring events")
				return nil
			}

			tbl := uitable.New()
			tbl.MaxColWidth = 40
			tbl.AddRow(bold("Title"), bold("Repeats"), bold("Time"), bold("Active"), bold("ID"))
			for _, rule := range rules {
				active := color.GreenString("yes")
				if !rule.IsActive {
					active = color.RedString("no")
				}
				tbl.AddRow(rule.Title, repeatCell(rule), rule.StartTime, active, rule.ID)
			}
			fmt.Fprintln(color.Output, tbl)
			return nil
		},
	}
}

func repeatCell(rule models.RecurringEvent) string {
	switch rule.Frequency {
	case models.Weekly:
		days := make([]string, len(rule.DaysOfWeek))
		for i, d := range rule.DaysOfWeek {
			days[i] = time.Weekday(d).String()[:3]
		}
		return "weekly " + strings.Join(days, ",")
	case models.Monthly:
		return fmt.Sprintf("monthly day %d", rule.DayOfMonth)
	default:
		return string(rule.Frequency)
	}
}

func recurringAdd(ro *rootOptions) *cobra.Command {
	var (
		content    string
		startTime  string
		endTime    string
		frequency  string
		daysOfWeek []int
		dayOfMonth int
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a recurring event rule",
		Example: `
kiroku recurring add "standup" --freq weekly --days 1,2,3,4,5 --start 09:00
kiroku recurring add "rent" --freq monthly --day 1 --start 10:00
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(ro)
			if err != nil {
				return err
			}

			freq := models.RecurringFrequency(frequency)
			switch freq {
			case models.Daily, models.Weekly, models.Monthly:
			default:
				return fmt.Errorf("invalid --freq %q (daily, weekly, monthly)", frequency)
			}
			if freq == models.Weekly && len(daysOfWeek) == 0 {
				return fmt.Errorf("--days is required for weekly rules")
			}
			if freq == models.Monthly && dayOfMonth == 0 {
				return fmt.Errorf("--day is required for monthly rules")
			}

			rule := app.Recurring.Add(models.RecurringEvent{
				Title:      strings.Join(args, " "),
				Content:    content,
				StartTime:  startTime,
				EndTime:    endTime,
				Frequency:  freq,
				DaysOfWeek: daysOfWeek,
				DayOfMonth: dayOfMonth,
				IsActive:   true,
			})

			fmt.Fprintf(color.Output, "%s recurring event %q saved (%s)\n", color.GreenString("✔"), rule.Title, rule.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&content, "content", "", "event content")
	cmd.Flags().StringVar(&startTime, "start", "09:00", `start time, "15:04"`)
	cmd.Flags().StringVar(&endTime, "end", "", `end time, "15:04"`)
	cmd.Flags().StringVar(&frequency, "freq", "daily", "repeat frequency: daily, weekly, monthly")
	cmd.Flags().IntSliceVar(&daysOfWeek, "days", nil, "weekdays for weekly rules (0=Sunday)")
	cmd.Flags().IntVar(&dayOfMonth, "day", 0, "day of month for monthly rules")
	return cmd
}

func recurringRemove(ro *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a recurring event rule",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(ro)
			if err != nil {
				return err
			}

			app.Recurring.Delete(args[0])
			fmt.Fprintf(color.Output, "%s recurring event deleted\n", color.GreenString("✔"))
			return nil
		},
	}
}
