package repository

import "errors"

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNotInProgress is returned by Close when the entry has no running
	// segment to finish.
	ErrNotInProgress = errors.New("time entry is not in progress")

	// ErrAlreadyInProgress is returned by Resume when the entry already has a
	// running segment.
	ErrAlreadyInProgress = errors.New("time entry is already in progress")
)

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
