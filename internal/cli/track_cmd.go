package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/andersvik/timetrack/internal/cli/formatter"
	"github.com/andersvik/timetrack/internal/domain"
	"github.com/andersvik/timetrack/internal/service"
	"github.com/spf13/cobra"
)

func newTrackCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "track",
		Short: "Start, stop and watch time tracking",
	}

	cmd.AddCommand(
		newTrackStartCmd(app),
		newTrackStopCmd(app),
		newTrackRestartCmd(app),
		newTrackStatusCmd(app),
		newTrackWatchCmd(app),
	)

	return cmd
}

func newTrackStartCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "start TASK_ID",
		Short: "Start tracking a task, stopping any running session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			task, err := app.Tasks.GetByID(ctx, args[0])
			if err != nil {
				return err
			}
			if err := app.Tracker.Start(ctx, task.ID); err != nil {
				return err
			}
			fmt.Printf("Tracking %s\n", formatter.Bold(task.Name))
			return nil
		},
	}
}

func newTrackStopCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the running session",
		RunE: func(cmd *cobra.Command, args []string) error {
			closed, err := app.Tracker.Stop(context.Background())
			if err != nil {
				return err
			}
			if closed == nil {
				fmt.Println("Nothing is being tracked.")
				return nil
			}
			fmt.Printf("Stopped after %s (entry %s)\n",
				formatter.FormatHours(closed.TotalHours), closed.ID)
			return nil
		},
	}
}

func newTrackRestartCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "restart ENTRY_ID",
		Short: "Resume a stopped entry, keeping its recorded hours",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if err := app.Tracker.Restart(ctx, args[0]); err != nil {
				return err
			}
			current := app.Tracker.Current()
			fmt.Printf("Resumed entry %s with %s on the clock\n",
				args[0], formatter.FormatHours(current.AccumulatedHours))
			return nil
		},
	}
}

func newTrackStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current tracking state",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if err := app.Tracker.Hydrate(ctx); err != nil {
				return err
			}
			current := app.Tracker.Current()
			if current == nil {
				fmt.Println(formatter.TrackingPill(domain.TrackingIdle))
				return nil
			}

			task, err := app.Tasks.GetByID(ctx, current.TaskID)
			taskName := current.TaskID
			if err == nil {
				taskName = task.Name
			}
			fmt.Printf("%s  %s  %s\n",
				formatter.TrackingPill(domain.TrackingActive),
				formatter.Bold(taskName),
				formatter.FormatElapsed(app.Tracker.ElapsedSeconds()),
			)
			return nil
		},
	}
}

func newTrackWatchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch the running session with a live timer",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Tracker.Hydrate(context.Background()); err != nil {
				return err
			}
			model := newWatchModel(app.Tracker, taskNameResolver(app))
			_, err := tea.NewProgram(model).Run()
			return err
		},
	}
}

func taskNameResolver(app *App) func(taskID string) string {
	return func(taskID string) string {
		task, err := app.Tasks.GetByID(context.Background(), taskID)
		if err != nil {
			return taskID
		}
		return task.Name
	}
}

type watchTickMsg time.Time

type watchModel struct {
	tracker  service.TrackerService
	taskName func(taskID string) string
	spinner  spinner.Model
}

func newWatchModel(tracker service.TrackerService, taskName func(string) string) watchModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = formatter.StyleGreen
	return watchModel{tracker: tracker, taskName: taskName, spinner: s}
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(watchTick(), m.spinner.Tick)
}

func watchTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return watchTickMsg(t)
	})
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case watchTickMsg:
		return m, watchTick()
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m watchModel) View() string {
	current := m.tracker.Current()
	if current == nil {
		return formatter.RenderBox("Tracking", formatter.TrackingPill(domain.TrackingIdle)+"\n\n"+formatter.Dim("q to quit")) + "\n"
	}

	content := fmt.Sprintf("%s%s  %s\n\n%s\n\n%s",
		m.spinner.View(),
		formatter.TrackingPill(domain.TrackingActive),
		formatter.Bold(m.taskName(current.TaskID)),
		formatter.StyleHeader.Render(formatter.FormatElapsed(m.tracker.ElapsedSeconds())),
		formatter.Dim("q to quit"),
	)
	return formatter.RenderBox("Tracking", content) + "\n"
}
