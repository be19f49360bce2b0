package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/andersvik/timetrack/internal/db"
	"github.com/andersvik/timetrack/internal/domain"
	"github.com/andersvik/timetrack/internal/repository"
	"github.com/google/uuid"
)

const eventBuffer = 8

type trackerService struct {
	entries  repository.EntryRepo
	uow      db.UnitOfWork
	userID   string
	now      func() time.Time
	observer UseCaseObserver

	mu      sync.Mutex
	current *domain.ActiveTracking

	subMu sync.Mutex
	subs  []chan TrackingEvent
}

// TrackerOption customizes a tracker service. Used mainly by tests to pin the
// clock.
type TrackerOption func(*trackerService)

func WithClock(now func() time.Time) TrackerOption {
	return func(s *trackerService) { s.now = now }
}

func WithTrackerObserver(obs UseCaseObserver) TrackerOption {
	return func(s *trackerService) { s.observer = useCaseObserverOrNoop([]UseCaseObserver{obs}) }
}

// NewTrackerService builds the tracking manager for one user. The returned
// service carries no state until Hydrate or the first mutation runs; callers
// typically Hydrate right after construction.
func NewTrackerService(entries repository.EntryRepo, uow db.UnitOfWork, userID string, opts ...TrackerOption) TrackerService {
	s := &trackerService{
		entries:  entries,
		uow:      uow,
		userID:   userID,
		now:      time.Now,
		observer: NoopUseCaseObserver{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *trackerService) Start(ctx context.Context, taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	startedAt := s.now().UTC()

	var err error
	defer func() {
		observe(ctx, s.observer, "tracker.start", startedAt, err, map[string]any{"task_id": taskID})
	}()

	// The store may hold a session this process never saw (another terminal,
	// a crash before the last hydration). Refresh before deciding what to
	// close so the stop-and-start pair operates on the store's truth.
	if err = s.rehydrateLocked(ctx); err != nil {
		return err
	}

	now := s.now().UTC()
	entry := &domain.TimeEntry{
		ID:                uuid.New().String(),
		UserID:            s.userID,
		TaskID:            taskID,
		StartedAt:         now,
		ProgressStartedAt: &now,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	previous := s.current
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txEntries := repository.NewSQLiteEntryRepo(tx)
		if previous != nil {
			if closeErr := closePrevious(ctx, txEntries, previous.EntryID, now); closeErr != nil {
				return closeErr
			}
		}
		return txEntries.Create(ctx, entry)
	})
	if err != nil {
		return err
	}

	if err = s.rehydrateLocked(ctx); err != nil {
		return err
	}
	s.publish(domain.TrackingActive, entry, now)
	return nil
}

func (s *trackerService) Restart(ctx context.Context, entryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	startedAt := s.now().UTC()

	var err error
	defer func() {
		observe(ctx, s.observer, "tracker.restart", startedAt, err, map[string]any{"entry_id": entryID})
	}()

	if err = s.rehydrateLocked(ctx); err != nil {
		return err
	}

	now := s.now().UTC()
	previous := s.current
	var resumed *domain.TimeEntry
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txEntries := repository.NewSQLiteEntryRepo(tx)
		if previous != nil {
			// Restarting the entry that is already running folds its segment
			// and opens a fresh one, same as restarting any other entry.
			if closeErr := closePrevious(ctx, txEntries, previous.EntryID, now); closeErr != nil {
				return closeErr
			}
		}
		var resumeErr error
		resumed, resumeErr = txEntries.Resume(ctx, entryID, now)
		return resumeErr
	})
	if err != nil {
		return err
	}

	if err = s.rehydrateLocked(ctx); err != nil {
		return err
	}
	s.publish(domain.TrackingActive, resumed, now)
	return nil
}

func (s *trackerService) Stop(ctx context.Context) (*domain.TimeEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	startedAt := s.now().UTC()

	var err error
	defer func() {
		observe(ctx, s.observer, "tracker.stop", startedAt, err, nil)
	}()

	if err = s.rehydrateLocked(ctx); err != nil {
		return nil, err
	}
	if s.current == nil {
		return nil, nil
	}

	now := s.now().UTC()
	var closed *domain.TimeEntry
	closed, err = s.entries.Close(ctx, s.current.EntryID, now)
	if err != nil {
		return nil, err
	}

	if err = s.rehydrateLocked(ctx); err != nil {
		return nil, err
	}
	s.publish(domain.TrackingIdle, closed, now)
	return closed, nil
}

func (s *trackerService) Hydrate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rehydrateLocked(ctx)
}

func (s *trackerService) IsTracking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil
}

func (s *trackerService) Current() *domain.ActiveTracking {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	copied := *s.current
	return &copied
}

func (s *trackerService) ElapsedSeconds() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return 0
	}
	return s.current.ElapsedSeconds(s.now().UTC())
}

func (s *trackerService) Subscribe() <-chan TrackingEvent {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	ch := make(chan TrackingEvent, eventBuffer)
	s.subs = append(s.subs, ch)
	return ch
}

// rehydrateLocked rebuilds the cursor from the store. A lookup failure leaves
// the previously advertised state in place so queries keep answering from the
// last confirmed snapshot.
func (s *trackerService) rehydrateLocked(ctx context.Context) error {
	entry, err := s.entries.FindInProgress(ctx, s.userID)
	if err != nil {
		return fmt.Errorf("hydrating tracking state: %w", err)
	}
	s.current = domain.TrackingFromEntry(entry)
	return nil
}

// closePrevious tolerates the session having been closed or deleted by
// another process since the last hydration; the store already reflects the
// outcome the caller wanted.
func closePrevious(ctx context.Context, entries repository.EntryRepo, entryID string, closedAt time.Time) error {
	_, err := entries.Close(ctx, entryID, closedAt)
	if err != nil && !errors.Is(err, repository.ErrNotInProgress) && !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("closing running session: %w", err)
	}
	return nil
}

func (s *trackerService) publish(state TrackingState, entry *domain.TimeEntry, at time.Time) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	event := TrackingEvent{State: state, Entry: entry, At: at}
	for _, ch := range s.subs {
		select {
		case ch <- event:
		default:
		}
	}
}
