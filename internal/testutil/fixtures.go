package testutil

import (
	"time"

	"github.com/andersvik/timetrack/internal/domain"
	"github.com/google/uuid"
)

// Customer options
type CustomerOption func(*domain.Customer)

func WithCustomerArchived(at time.Time) CustomerOption {
	return func(c *domain.Customer) {
		c.ArchivedAt = &at
	}
}

func NewTestCustomer(name string, opts ...CustomerOption) *domain.Customer {
	now := time.Now().UTC()
	c := &domain.Customer{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Contract options
type ContractOption func(*domain.Contract)

func WithDailyRate(rate float64, currency string) ContractOption {
	return func(c *domain.Contract) {
		c.DailyRate = rate
		c.Currency = currency
	}
}

func WithValidity(start, end time.Time) ContractOption {
	return func(c *domain.Contract) {
		c.StartDate = start
		c.EndDate = end
	}
}

func NewTestContract(customerID, name string, opts ...ContractOption) *domain.Contract {
	now := time.Now().UTC()
	c := &domain.Contract{
		ID:         uuid.New().String(),
		CustomerID: customerID,
		Name:       name,
		DailyRate:  800,
		Currency:   "EUR",
		StartDate:  now.AddDate(0, -6, 0),
		EndDate:    now.AddDate(0, 6, 0),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Project options
type ProjectOption func(*domain.Project)

func WithContract(contractID string) ProjectOption {
	return func(p *domain.Project) {
		p.ContractID = &contractID
	}
}

func NewTestProject(customerID, name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	p := &domain.Project{
		ID:         uuid.New().String(),
		CustomerID: customerID,
		Name:       name,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func NewTestTask(projectID, name string) *domain.Task {
	now := time.Now().UTC()
	return &domain.Task{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Entry options
type EntryOption func(*domain.TimeEntry)

func WithTotalHours(h float64) EntryOption {
	return func(e *domain.TimeEntry) {
		e.TotalHours = h
	}
}

func WithEntryStartedAt(t time.Time) EntryOption {
	return func(e *domain.TimeEntry) {
		e.StartedAt = t
	}
}

func WithProgressStartedAt(t time.Time) EntryOption {
	return func(e *domain.TimeEntry) {
		e.ProgressStartedAt = &t
	}
}

func NewTestEntry(userID, taskID string, opts ...EntryOption) *domain.TimeEntry {
	now := time.Now().UTC()
	e := &domain.TimeEntry{
		ID:        uuid.New().String(),
		UserID:    userID,
		TaskID:    taskID,
		StartedAt: now,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
