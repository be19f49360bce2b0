package service

import (
	"context"
	"time"

	"github.com/andersvik/timetrack/internal/domain"
	"github.com/andersvik/timetrack/internal/repository"
)

type entryService struct {
	entries repository.EntryRepo
}

func NewEntryService(entries repository.EntryRepo) EntryService {
	return &entryService{entries: entries}
}

func (s *entryService) ListByDateRange(ctx context.Context, start, end time.Time) ([]*domain.TimeEntry, error) {
	return s.entries.ListByDateRange(ctx, start, end)
}

func (s *entryService) GetByID(ctx context.Context, id string) (*domain.TimeEntry, error) {
	return s.entries.GetByID(ctx, id)
}

func (s *entryService) Delete(ctx context.Context, id string) error {
	return s.entries.Delete(ctx, id)
}
