package service

import (
	"context"
	"time"

	"github.com/andersvik/timetrack/internal/domain"
	"github.com/andersvik/timetrack/internal/report"
)

// TrackingEvent announces a confirmed tracking state transition. Events are
// published only after the store has durably confirmed the transition and the
// manager has re-hydrated from it, never before.
type TrackingEvent struct {
	State TrackingState
	Entry *domain.TimeEntry
	At    time.Time
}

type TrackingState = domain.TrackingState

// TrackerService owns the single-active-session invariant: a user has at most
// one in-progress entry at any moment, across tabs and restarts. All
// mutations are store-authoritative; the in-memory cursor is a cache that is
// rebuilt from the store after every transition.
type TrackerService interface {
	// Start begins tracking the given task, closing any running session
	// first. The close-and-create pair is atomic from the caller's point of
	// view.
	Start(ctx context.Context, taskID string) error
	// Restart resumes an existing closed entry, preserving its accumulated
	// hours as the elapsed-time base. Any running session is closed first.
	Restart(ctx context.Context, entryID string) error
	// Stop closes the running session and returns the closed entry, or
	// (nil, nil) when idle. Idle stops cause no store mutation.
	Stop(ctx context.Context) (*domain.TimeEntry, error)
	// Hydrate rebuilds the cursor from the store's in-progress entry.
	Hydrate(ctx context.Context) error
	IsTracking() bool
	Current() *domain.ActiveTracking
	// ElapsedSeconds is a pure query, safe to poll every second: no store
	// traffic, monotonically non-decreasing while tracking, 0 when idle.
	ElapsedSeconds() int
	// Subscribe returns a channel receiving every subsequent state
	// transition. Slow consumers miss events rather than block the manager.
	Subscribe() <-chan TrackingEvent
}

type CustomerService interface {
	Create(ctx context.Context, c *domain.Customer) error
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Customer, error)
	Update(ctx context.Context, c *domain.Customer) error
	Archive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type ContractService interface {
	Create(ctx context.Context, c *domain.Contract) error
	GetByID(ctx context.Context, id string) (*domain.Contract, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*domain.Contract, error)
	Update(ctx context.Context, c *domain.Contract) error
	Delete(ctx context.Context, id string) error
}

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

type TaskService interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Task, error)
	Archive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type EntryService interface {
	ListByDateRange(ctx context.Context, start, end time.Time) ([]*domain.TimeEntry, error)
	GetByID(ctx context.Context, id string) (*domain.TimeEntry, error)
	Delete(ctx context.Context, id string) error
}

// ReportService builds report summaries from stored entries and the current
// domain record graph, and hands them to the export pipeline.
type ReportService interface {
	Generate(ctx context.Context, customerID string, period report.Period, reportType domain.ReportType) (*domain.ReportSummary, error)
	GenerateMonthly(ctx context.Context, customerID string, year int, month time.Month, reportType domain.ReportType) (*domain.ReportSummary, error)
}
