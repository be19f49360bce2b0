package service

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/andersvik/timetrack/internal/domain"
	"github.com/andersvik/timetrack/internal/repository"
	"github.com/andersvik/timetrack/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock(t time.Time) *fakeClock { return &fakeClock{t: t} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type trackerFixture struct {
	db      *sql.DB
	entries repository.EntryRepo
	clock   *fakeClock
	tracker TrackerService
	taskID  string
	userID  string
}

func newTrackerFixture(t *testing.T) *trackerFixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	customer := testutil.NewTestCustomer("Acme")
	require.NoError(t, repository.NewSQLiteCustomerRepo(database).Create(ctx, customer))
	project := testutil.NewTestProject(customer.ID, "Website")
	require.NoError(t, repository.NewSQLiteProjectRepo(database).Create(ctx, project))
	task := testutil.NewTestTask(project.ID, "Development")
	require.NoError(t, repository.NewSQLiteTaskRepo(database).Create(ctx, task))

	clock := newFakeClock(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	entries := repository.NewSQLiteEntryRepo(database)
	tracker := NewTrackerService(entries, testutil.NewTestUoW(database), "u1", WithClock(clock.Now))
	require.NoError(t, tracker.Hydrate(ctx))

	return &trackerFixture{
		db:      database,
		entries: entries,
		clock:   clock,
		tracker: tracker,
		taskID:  task.ID,
		userID:  "u1",
	}
}

func TestTracker_StartBeginsSession(t *testing.T) {
	f := newTrackerFixture(t)
	ctx := context.Background()

	assert.False(t, f.tracker.IsTracking())
	require.NoError(t, f.tracker.Start(ctx, f.taskID))

	assert.True(t, f.tracker.IsTracking())
	current := f.tracker.Current()
	require.NotNil(t, current)
	assert.Equal(t, f.taskID, current.TaskID)

	running, err := f.entries.FindInProgress(ctx, f.userID)
	require.NoError(t, err)
	require.NotNil(t, running)
	assert.Equal(t, current.EntryID, running.ID)
}

func TestTracker_StartClosesRunningSessionFirst(t *testing.T) {
	f := newTrackerFixture(t)
	ctx := context.Background()

	require.NoError(t, f.tracker.Start(ctx, f.taskID))
	first := f.tracker.Current().EntryID

	f.clock.Advance(90 * time.Minute)
	require.NoError(t, f.tracker.Start(ctx, f.taskID))
	second := f.tracker.Current().EntryID
	assert.NotEqual(t, first, second)

	closed, err := f.entries.GetByID(ctx, first)
	require.NoError(t, err)
	assert.False(t, closed.InProgress())
	assert.InDelta(t, 1.5, closed.TotalHours, 1e-6)

	running, err := f.entries.FindInProgress(ctx, f.userID)
	require.NoError(t, err)
	require.NotNil(t, running)
	assert.Equal(t, second, running.ID)
}

func TestTracker_StopClosesAndReturnsEntry(t *testing.T) {
	f := newTrackerFixture(t)
	ctx := context.Background()

	require.NoError(t, f.tracker.Start(ctx, f.taskID))
	f.clock.Advance(30 * time.Minute)

	closed, err := f.tracker.Stop(ctx)
	require.NoError(t, err)
	require.NotNil(t, closed)
	assert.False(t, closed.InProgress())
	assert.InDelta(t, 0.5, closed.TotalHours, 1e-6)

	assert.False(t, f.tracker.IsTracking())
	assert.Zero(t, f.tracker.ElapsedSeconds())

	running, err := f.entries.FindInProgress(ctx, f.userID)
	require.NoError(t, err)
	assert.Nil(t, running)
}

func TestTracker_StopWhenIdleIsANoop(t *testing.T) {
	f := newTrackerFixture(t)
	ctx := context.Background()

	closed, err := f.tracker.Stop(ctx)
	require.NoError(t, err)
	assert.Nil(t, closed)

	var count int
	require.NoError(t, f.db.QueryRow("SELECT COUNT(*) FROM time_entries").Scan(&count))
	assert.Zero(t, count, "idle stop must not touch the store")
}

func TestTracker_RestartPreservesAccumulatedHours(t *testing.T) {
	f := newTrackerFixture(t)
	ctx := context.Background()

	seeded := testutil.NewTestEntry(f.userID, f.taskID, testutil.WithTotalHours(2.5))
	require.NoError(t, f.entries.Create(ctx, seeded))

	require.NoError(t, f.tracker.Restart(ctx, seeded.ID))
	assert.True(t, f.tracker.IsTracking())
	assert.Equal(t, seeded.ID, f.tracker.Current().EntryID)

	f.clock.Advance(30 * time.Minute)
	assert.Equal(t, int(2.5*3600+1800), f.tracker.ElapsedSeconds())

	closed, err := f.tracker.Stop(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, closed.TotalHours, 1e-6)
}

func TestTracker_RestartClosesOtherRunningSession(t *testing.T) {
	f := newTrackerFixture(t)
	ctx := context.Background()

	seeded := testutil.NewTestEntry(f.userID, f.taskID, testutil.WithTotalHours(1.0))
	require.NoError(t, f.entries.Create(ctx, seeded))

	require.NoError(t, f.tracker.Start(ctx, f.taskID))
	first := f.tracker.Current().EntryID
	f.clock.Advance(time.Hour)

	require.NoError(t, f.tracker.Restart(ctx, seeded.ID))
	assert.Equal(t, seeded.ID, f.tracker.Current().EntryID)

	closed, err := f.entries.GetByID(ctx, first)
	require.NoError(t, err)
	assert.False(t, closed.InProgress())
	assert.InDelta(t, 1.0, closed.TotalHours, 1e-6)
}

func TestTracker_RestartOfRunningEntryFoldsAndResumes(t *testing.T) {
	f := newTrackerFixture(t)
	ctx := context.Background()

	require.NoError(t, f.tracker.Start(ctx, f.taskID))
	id := f.tracker.Current().EntryID
	f.clock.Advance(time.Hour)

	require.NoError(t, f.tracker.Restart(ctx, id))
	assert.True(t, f.tracker.IsTracking())
	assert.Equal(t, id, f.tracker.Current().EntryID)
	assert.InDelta(t, 1.0, f.tracker.Current().AccumulatedHours, 1e-6,
		"the finished segment folds into the base before the new one opens")
}

func TestTracker_ElapsedSecondsGrowsMonotonically(t *testing.T) {
	f := newTrackerFixture(t)
	ctx := context.Background()

	assert.Zero(t, f.tracker.ElapsedSeconds())
	require.NoError(t, f.tracker.Start(ctx, f.taskID))

	previous := f.tracker.ElapsedSeconds()
	for i := 0; i < 5; i++ {
		f.clock.Advance(time.Second)
		elapsed := f.tracker.ElapsedSeconds()
		assert.GreaterOrEqual(t, elapsed, previous)
		previous = elapsed
	}
	assert.Equal(t, 5, previous)
}

func TestTracker_SecondInstanceHydratesStoreSession(t *testing.T) {
	f := newTrackerFixture(t)
	ctx := context.Background()

	require.NoError(t, f.tracker.Start(ctx, f.taskID))
	want := f.tracker.Current().EntryID

	other := NewTrackerService(f.entries, testutil.NewTestUoW(f.db), f.userID, WithClock(f.clock.Now))
	require.NoError(t, other.Hydrate(ctx))

	assert.True(t, other.IsTracking())
	assert.Equal(t, want, other.Current().EntryID)

	// The second instance stops the session the first one started.
	f.clock.Advance(15 * time.Minute)
	closed, err := other.Stop(ctx)
	require.NoError(t, err)
	require.NotNil(t, closed)
	assert.Equal(t, want, closed.ID)

	// The first instance learns about it on its next mutation.
	stopped, err := f.tracker.Stop(ctx)
	require.NoError(t, err)
	assert.Nil(t, stopped)
	assert.False(t, f.tracker.IsTracking())
}

func TestTracker_SubscribersSeeConfirmedTransitions(t *testing.T) {
	f := newTrackerFixture(t)
	ctx := context.Background()

	events := f.tracker.Subscribe()
	require.NoError(t, f.tracker.Start(ctx, f.taskID))
	f.clock.Advance(time.Minute)
	_, err := f.tracker.Stop(ctx)
	require.NoError(t, err)

	started := <-events
	assert.Equal(t, domain.TrackingActive, started.State)
	require.NotNil(t, started.Entry)
	assert.Equal(t, f.taskID, started.Entry.TaskID)

	stopped := <-events
	assert.Equal(t, domain.TrackingIdle, stopped.State)
	require.NotNil(t, stopped.Entry)
	assert.False(t, stopped.Entry.InProgress())

	select {
	case e := <-events:
		t.Fatalf("unexpected event: %+v", e)
	default:
	}
}

func TestTracker_FailedStartLeavesStateUnchanged(t *testing.T) {
	f := newTrackerFixture(t)
	ctx := context.Background()

	require.NoError(t, f.tracker.Start(ctx, f.taskID))
	running := f.tracker.Current().EntryID

	boom := errors.New("disk I/O error")
	failing := &testutil.FailOnNthExecUoW{DB: f.db, FailOn: 2, Err: boom}
	tracker := NewTrackerService(f.entries, failing, f.userID, WithClock(f.clock.Now))
	require.NoError(t, tracker.Hydrate(ctx))

	events := tracker.Subscribe()
	err := tracker.Start(ctx, f.taskID)
	require.ErrorIs(t, err, boom)

	// Advertised state and store both still show the original session.
	assert.True(t, tracker.IsTracking())
	assert.Equal(t, running, tracker.Current().EntryID)
	entry, findErr := f.entries.FindInProgress(ctx, f.userID)
	require.NoError(t, findErr)
	require.NotNil(t, entry)
	assert.Equal(t, running, entry.ID)

	select {
	case e := <-events:
		t.Fatalf("no event may be published for a failed transition: %+v", e)
	default:
	}
}

func TestTracker_RestartUnknownEntryFails(t *testing.T) {
	f := newTrackerFixture(t)
	ctx := context.Background()

	err := f.tracker.Restart(ctx, "no-such-entry")
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.False(t, f.tracker.IsTracking())
}
