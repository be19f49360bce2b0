package domain

import "time"

type Task struct {
	ID         string
	ProjectID  string
	Name       string
	ArchivedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
