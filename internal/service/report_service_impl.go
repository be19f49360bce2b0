package service

import (
	"context"
	"fmt"
	"time"

	"github.com/andersvik/timetrack/internal/domain"
	"github.com/andersvik/timetrack/internal/report"
	"github.com/andersvik/timetrack/internal/repository"
)

type reportService struct {
	entries   repository.EntryRepo
	customers repository.CustomerRepo
	contracts repository.ContractRepo
	projects  repository.ProjectRepo
	tasks     repository.TaskRepo
	observer  UseCaseObserver
}

func NewReportService(
	entries repository.EntryRepo,
	customers repository.CustomerRepo,
	contracts repository.ContractRepo,
	projects repository.ProjectRepo,
	tasks repository.TaskRepo,
	observers ...UseCaseObserver,
) ReportService {
	return &reportService{
		entries:   entries,
		customers: customers,
		contracts: contracts,
		projects:  projects,
		tasks:     tasks,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *reportService) Generate(ctx context.Context, customerID string, period report.Period, reportType domain.ReportType) (summary *domain.ReportSummary, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		observe(ctx, s.observer, "report.generate", startedAt, err, map[string]any{
			"customer_id": customerID,
			"report_type": string(reportType),
		})
	}()

	if !domain.ValidReportTypes[reportType] {
		return nil, fmt.Errorf("unknown report type %q", reportType)
	}
	if err = period.Validate(); err != nil {
		return nil, err
	}

	idx, err := s.buildIndices(ctx, customerID)
	if err != nil {
		return nil, err
	}

	entries, err := s.entries.ListByDateRange(ctx, period.Start, period.End)
	if err != nil {
		return nil, fmt.Errorf("loading entries: %w", err)
	}

	return report.Aggregate(entries, idx, customerID, period, reportType)
}

func (s *reportService) GenerateMonthly(ctx context.Context, customerID string, year int, month time.Month, reportType domain.ReportType) (*domain.ReportSummary, error) {
	return s.Generate(ctx, customerID, report.MonthPeriod(year, month), reportType)
}

// buildIndices snapshots the record graph the aggregation reads from. The
// customer must exist; everything else is loaded wholesale so the aggregator
// decides what resolves and what is an orphan.
func (s *reportService) buildIndices(ctx context.Context, customerID string) (report.Indices, error) {
	idx := report.Indices{
		Tasks:     make(map[string]*domain.Task),
		Projects:  make(map[string]*domain.Project),
		Contracts: make(map[string]*domain.Contract),
		Customers: make(map[string]*domain.Customer),
	}

	customer, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		return idx, fmt.Errorf("loading customer: %w", err)
	}
	idx.Customers[customer.ID] = customer

	contracts, err := s.contracts.ListByCustomer(ctx, customerID)
	if err != nil {
		return idx, fmt.Errorf("loading contracts: %w", err)
	}
	for _, c := range contracts {
		idx.Contracts[c.ID] = c
	}

	projects, err := s.projects.List(ctx)
	if err != nil {
		return idx, fmt.Errorf("loading projects: %w", err)
	}
	for _, p := range projects {
		idx.Projects[p.ID] = p
	}

	tasks, err := s.tasks.List(ctx, true)
	if err != nil {
		return idx, fmt.Errorf("loading tasks: %w", err)
	}
	for _, t := range tasks {
		idx.Tasks[t.ID] = t
	}

	return idx, nil
}
