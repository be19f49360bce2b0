package report

import (
	"errors"
	"time"
)

// ErrInvalidRange is returned when a report window ends before it starts. It
// is rejected before any grouping work happens.
var ErrInvalidRange = errors.New("report period end date is before start date")

// Period is the inclusive [Start, End] date window of a report.
type Period struct {
	Start time.Time
	End   time.Time
}

// MonthPeriod returns the period covering one calendar month, from the first
// instant of its first day to the last instant of its last day.
func MonthPeriod(year int, month time.Month) Period {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return Period{
		Start: start,
		End:   start.AddDate(0, 1, 0).Add(-time.Second),
	}
}

func (p Period) Validate() error {
	if p.End.Before(p.Start) {
		return ErrInvalidRange
	}
	return nil
}

// TotalDays is the day-of-month of the period's end date: the calendar length
// of a month-long report, independent of how many days had entries.
func (p Period) TotalDays() int {
	return p.End.Day()
}

// Contains reports whether t falls inside the window.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && !t.After(p.End)
}
