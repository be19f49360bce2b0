package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/andersvik/timetrack/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newEntryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entry",
		Short: "Inspect and prune recorded time entries",
	}

	cmd.AddCommand(
		newEntryListCmd(app),
		newEntryRemoveCmd(app),
	)

	return cmd
}

func newEntryListCmd(app *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent time entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			end := time.Now().UTC()
			start := end.AddDate(0, 0, -days)
			entries, err := app.Entries.ListByDateRange(context.Background(), start, end)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println("No entries found.")
				return nil
			}

			headers := []string{"ID", "TASK", "STARTED", "HOURS", "STATE"}
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				state := formatter.Dim("closed")
				if e.InProgress() {
					state = formatter.StyleGreen.Render("running")
				}
				rows = append(rows, []string{
					formatter.TruncID(e.ID),
					formatter.TruncID(e.TaskID),
					formatter.HumanTimestamp(e.StartedAt),
					formatter.FormatHours(e.TotalHours),
					state,
				})
			}
			fmt.Print(formatter.RenderBox("Entries", formatter.RenderTable(headers, rows)))
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 7, "Number of recent days to show")
	return cmd
}

func newEntryRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Delete a time entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := app.confirm("Delete this time entry?")
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("Cancelled.")
				return nil
			}
			if err := app.Entries.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed entry %s\n", args[0])
			return nil
		},
	}
}
