package domain

import (
	"math"
	"time"
)

type TrackingState string

const (
	TrackingIdle   TrackingState = "idle"
	TrackingActive TrackingState = "tracking"
)

// TimeEntry is the durable record of time logged against a task.
//
// An entry is either closed (ProgressStartedAt is nil, TotalHours is final) or
// in progress (ProgressStartedAt set, TotalHours holds the hours accumulated
// before the currently running segment). The store owns the transition between
// the two states.
type TimeEntry struct {
	ID                string
	UserID            string
	TaskID            string
	StartedAt         time.Time
	TotalHours        float64
	ProgressStartedAt *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// InProgress reports whether the entry is currently accumulating time.
func (e *TimeEntry) InProgress() bool {
	return e.ProgressStartedAt != nil
}

// ActiveTracking is the in-memory cursor over a user's single in-progress
// entry. It is derived from the store on hydration and never persisted; at
// most one value exists per user at any time.
type ActiveTracking struct {
	EntryID           string
	TaskID            string
	SessionStartedAt  time.Time
	ProgressStartedAt time.Time
	AccumulatedHours  float64
}

// ElapsedSeconds returns the total tracked seconds at the given instant: the
// accumulated base plus the running segment, floored to an integer.
func (a *ActiveTracking) ElapsedSeconds(now time.Time) int {
	secs := a.AccumulatedHours*3600 + now.Sub(a.ProgressStartedAt).Seconds()
	if secs < 0 {
		return 0
	}
	return int(math.Floor(secs))
}

// TrackingFromEntry rebuilds the cursor from a store entry. Returns nil for
// closed entries, so hydration and nullification share one code path.
func TrackingFromEntry(e *TimeEntry) *ActiveTracking {
	if e == nil || !e.InProgress() {
		return nil
	}
	return &ActiveTracking{
		EntryID:           e.ID,
		TaskID:            e.TaskID,
		SessionStartedAt:  e.StartedAt,
		ProgressStartedAt: *e.ProgressStartedAt,
		AccumulatedHours:  e.TotalHours,
	}
}
