package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/ayutaki/kiroku/models"
)

func addTemplate(topLevel *cobra.Command, ro *rootOptions) {
	cmd := &cobra.Command{
		Use:     "template",
		Aliases: []string{"templates", "tpl"},
		Short:   "Manage entry templates",
		Long:    "Templates pre-fill the entry form. They live in local storage only\nand are expanded with \"kiroku add --template <name>\".",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(templateList(ro), templateAdd(ro), templateRemove(ro))
	topLevel.AddCommand(cmd)
}

func templateList(ro *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(ro)
			if err != nil {
				return err
			}

			templates := app.Templates.List()
			if len(templates) == 0 {
				fmt.Fprintln(color.Output, "no templates saved")
				return nil
			}

			tbl := uitable.New()
			tbl.MaxColWidth = 50
			tbl.AddRow(bold("Name"), bold("Kind"), bold("Title"), bold("ID"))
			for _, tpl := range templates {
				kind := "note"
				if tpl.IsEvent {
					kind = color.CyanString("event")
				}
				tbl.AddRow(tpl.Name, kind, tpl.Title, tpl.ID)
			}
			fmt.Fprintln(color.Output, tbl)
			return nil
		},
	}
}

func templateAdd(ro *rootOptions) *cobra.Command {
	var (
		title     string
		content   string
		event     bool
		startTime string
		endTime   string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Save a new template",
		Example: `
kiroku template add morning-pages --title "Morning pages" --content "#日記 "
kiroku template add standup --event --start 09:00 --end 09:15 --content "standup #予定"
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(ro)
			if err != nil {
				return err
			}

			tpl := app.Templates.Save(models.Template{
				Name:      args[0],
				IsEvent:   event,
				Title:     title,
				Content:   content,
				StartTime: startTime,
				EndTime:   endTime,
			})

			fmt.Fprintf(color.Output, "%s template %q saved (%s)\n", color.GreenString("✔"), tpl.Name, tpl.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "template title")
	cmd.Flags().StringVar(&content, "content", "", "template content")
	cmd.Flags().BoolVar(&event, "event", false, "mark the template as an event")
	cmd.Flags().StringVar(&startTime, "start", "", `event start time, "15:04"`)
	cmd.Flags().StringVar(&endTime, "end", "", `event end time, "15:04"`)
	return cmd
}

func templateRemove(ro *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <name-or-id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a template",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(ro)
			if err != nil {
				return err
			}

			tpl, found := findTemplate(app.Templates.List(), args[0])
			if !found {
				return fmt.Errorf("template %q not found", args[0])
			}

			app.Templates.Delete(tpl.ID)
			fmt.Fprintf(color.Output, "%s template %q deleted\n", color.GreenString("✔"), tpl.Name)
			return nil
		},
	}
}
