package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeEntry_InProgress(t *testing.T) {
	now := time.Now().UTC()
	closed := &TimeEntry{ID: "e1", TotalHours: 1.5}
	assert.False(t, closed.InProgress())

	running := &TimeEntry{ID: "e2", ProgressStartedAt: &now}
	assert.True(t, running.InProgress())
}

func TestTrackingFromEntry_ClosedEntryYieldsNil(t *testing.T) {
	assert.Nil(t, TrackingFromEntry(nil))
	assert.Nil(t, TrackingFromEntry(&TimeEntry{ID: "e1", TotalHours: 2}))
}

func TestTrackingFromEntry_RebuildsCursor(t *testing.T) {
	started := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	resumed := time.Date(2026, 3, 2, 13, 0, 0, 0, time.UTC)
	e := &TimeEntry{
		ID:                "e1",
		TaskID:            "t1",
		StartedAt:         started,
		TotalHours:        2.5,
		ProgressStartedAt: &resumed,
	}

	tr := TrackingFromEntry(e)
	require.NotNil(t, tr)
	assert.Equal(t, "e1", tr.EntryID)
	assert.Equal(t, "t1", tr.TaskID)
	assert.Equal(t, started, tr.SessionStartedAt)
	assert.Equal(t, resumed, tr.ProgressStartedAt)
	assert.Equal(t, 2.5, tr.AccumulatedHours)
}

func TestActiveTracking_ElapsedSeconds(t *testing.T) {
	progressStart := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	tr := &ActiveTracking{
		AccumulatedHours:  2.5,
		ProgressStartedAt: progressStart,
	}

	// 90 seconds into the running segment on top of 2.5h base.
	now := progressStart.Add(90 * time.Second)
	assert.Equal(t, 2*3600+1800+90, tr.ElapsedSeconds(now))

	// Never less than the preserved base.
	assert.GreaterOrEqual(t, tr.ElapsedSeconds(progressStart), 9000)
}

func TestActiveTracking_ElapsedSecondsFloorsFraction(t *testing.T) {
	progressStart := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	tr := &ActiveTracking{ProgressStartedAt: progressStart}

	now := progressStart.Add(1500 * time.Millisecond)
	assert.Equal(t, 1, tr.ElapsedSeconds(now))
}

func TestActiveTracking_ElapsedSecondsClampsNegative(t *testing.T) {
	// Clock drift: progress start slightly ahead of the local clock.
	progressStart := time.Now().UTC().Add(5 * time.Second)
	tr := &ActiveTracking{ProgressStartedAt: progressStart}
	assert.Equal(t, 0, tr.ElapsedSeconds(time.Now().UTC()))
}

func TestContract_HourlyRate(t *testing.T) {
	c := &Contract{DailyRate: 800, Currency: "EUR"}
	assert.Equal(t, 100.0, c.HourlyRate())
}
