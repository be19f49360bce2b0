package repository

import (
	"context"
	"time"

	"github.com/andersvik/timetrack/internal/domain"
)

type CustomerRepo interface {
	Create(ctx context.Context, c *domain.Customer) error
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Customer, error)
	Update(ctx context.Context, c *domain.Customer) error
	Archive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type ContractRepo interface {
	Create(ctx context.Context, c *domain.Contract) error
	GetByID(ctx context.Context, id string) (*domain.Contract, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*domain.Contract, error)
	Update(ctx context.Context, c *domain.Contract) error
	Delete(ctx context.Context, id string) error
}

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Task, error)
	Archive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// EntryRepo is the durable time-entry store. It owns duration arithmetic:
// Close and Resume transition an entry between the closed and in-progress
// states and compute final hours server-side, so callers never trust a purely
// local clock.
type EntryRepo interface {
	Create(ctx context.Context, e *domain.TimeEntry) error
	GetByID(ctx context.Context, id string) (*domain.TimeEntry, error)
	// Close finishes the running segment at closedAt, folding it into
	// TotalHours and clearing the progress start. Fails with ErrNotInProgress
	// when the entry is closed.
	Close(ctx context.Context, id string, closedAt time.Time) (*domain.TimeEntry, error)
	// Resume marks a closed entry progress-started at resumedAt, preserving
	// its accumulated TotalHours. Fails with ErrAlreadyInProgress when a
	// segment is already running.
	Resume(ctx context.Context, id string, resumedAt time.Time) (*domain.TimeEntry, error)
	// FindInProgress returns the user's single in-progress entry, or nil when
	// the user is idle.
	FindInProgress(ctx context.Context, userID string) (*domain.TimeEntry, error)
	ListByDateRange(ctx context.Context, start, end time.Time) ([]*domain.TimeEntry, error)
	Delete(ctx context.Context, id string) error
}
