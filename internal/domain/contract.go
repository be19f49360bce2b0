package domain

import "time"

// Contract funds work for a customer. DailyRate is the billable rate for one
// eight-hour day in the given currency. The [StartDate, EndDate) window is
// descriptive metadata for the contract itself; entries are attributed to
// whichever contract a project currently references, not by date overlap.
type Contract struct {
	ID         string
	CustomerID string
	Name       string
	DailyRate  float64
	Currency   string
	StartDate  time.Time
	EndDate    time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// HourlyRate derives the per-hour rate from the eight-hour-day convention.
func (c *Contract) HourlyRate() float64 {
	return c.DailyRate / HoursPerBillableDay
}

// HoursPerBillableDay is the day convention used to convert daily rates into
// hourly cost.
const HoursPerBillableDay = 8.0
