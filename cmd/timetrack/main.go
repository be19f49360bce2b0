package main

import (
	"fmt"
	"io"
	"os"

	"github.com/andersvik/timetrack/internal/cli"
	"github.com/andersvik/timetrack/internal/config"
	"github.com/andersvik/timetrack/internal/db"
	"github.com/andersvik/timetrack/internal/repository"
	"github.com/andersvik/timetrack/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Getenv("TIMETRACK_CONFIG_DIR"))
	if err != nil {
		return err
	}

	database, err := db.OpenDB(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	customerRepo := repository.NewSQLiteCustomerRepo(database)
	contractRepo := repository.NewSQLiteContractRepo(database)
	projectRepo := repository.NewSQLiteProjectRepo(database)
	taskRepo := repository.NewSQLiteTaskRepo(database)
	entryRepo := repository.NewSQLiteEntryRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	// Use-case telemetry goes to stderr when TIMETRACK_LOG is set.
	var logSink io.Writer
	if os.Getenv("TIMETRACK_LOG") != "" {
		logSink = os.Stderr
	}
	observer := service.NewLogUseCaseObserver(logSink)

	app := &cli.App{
		Customers: service.NewCustomerService(customerRepo),
		Contracts: service.NewContractService(contractRepo, customerRepo),
		Projects:  service.NewProjectService(projectRepo, contractRepo),
		Tasks:     service.NewTaskService(taskRepo, projectRepo),
		Entries:   service.NewEntryService(entryRepo),
		Tracker: service.NewTrackerService(entryRepo, uow, cfg.User.ID,
			service.WithTrackerObserver(observer)),
		Reports: service.NewReportService(entryRepo, customerRepo, contractRepo, projectRepo, taskRepo, observer),

		ExportDir:       cfg.Export.Dir,
		DefaultCurrency: cfg.Export.Currency,
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
