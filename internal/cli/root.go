package cli

import (
	"github.com/andersvik/timetrack/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Customers service.CustomerService
	Contracts service.ContractService
	Projects  service.ProjectService
	Tasks     service.TaskService
	Entries   service.EntryService
	Tracker   service.TrackerService
	Reports   service.ReportService

	// ExportDir is where report exports land unless overridden per command.
	ExportDir string

	// DefaultCurrency fills in for contracts created without --currency.
	DefaultCurrency string

	// IsInteractive reports whether stdin is a terminal; destructive commands
	// only prompt for confirmation when it returns true.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "timetrack" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "timetrack",
		Short: "Track billable time and build customer reports",
	}

	root.AddCommand(
		newTrackCmd(app),
		newReportCmd(app),
		newCustomerCmd(app),
		newContractCmd(app),
		newProjectCmd(app),
		newTaskCmd(app),
		newEntryCmd(app),
	)

	return root
}
