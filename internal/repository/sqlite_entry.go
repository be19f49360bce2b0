package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/andersvik/timetrack/internal/db"
	"github.com/andersvik/timetrack/internal/domain"
)

// SQLiteEntryRepo implements EntryRepo over a SQLite database or transaction.
type SQLiteEntryRepo struct {
	db db.DBTX
}

// NewSQLiteEntryRepo creates a new SQLiteEntryRepo.
func NewSQLiteEntryRepo(dbtx db.DBTX) *SQLiteEntryRepo {
	return &SQLiteEntryRepo{db: dbtx}
}

const entryColumns = `id, user_id, task_id, started_at, total_hours, progress_started_at, created_at, updated_at`

func (r *SQLiteEntryRepo) Create(ctx context.Context, e *domain.TimeEntry) error {
	query := `INSERT INTO time_entries (` + entryColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.UserID,
		e.TaskID,
		e.StartedAt.UTC().Format(time.RFC3339),
		e.TotalHours,
		nullableTimeToString(e.ProgressStartedAt, time.RFC3339),
		e.CreatedAt.UTC().Format(time.RFC3339),
		e.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting time entry: %w", err)
	}
	return nil
}

func (r *SQLiteEntryRepo) GetByID(ctx context.Context, id string) (*domain.TimeEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM time_entries WHERE id = ?`
	return r.scanEntry(r.db.QueryRowContext(ctx, query, id))
}

// Close folds the running segment into total_hours in a single UPDATE, so the
// arithmetic happens against the stored progress start rather than any caller
// state. julianday deltas are days; times 24 gives hours.
func (r *SQLiteEntryRepo) Close(ctx context.Context, id string, closedAt time.Time) (*domain.TimeEntry, error) {
	closed := closedAt.UTC().Format(time.RFC3339)
	query := `UPDATE time_entries
		SET total_hours = total_hours + MAX(0, (julianday(?) - julianday(progress_started_at)) * 24),
		    progress_started_at = NULL,
		    updated_at = ?
		WHERE id = ? AND progress_started_at IS NOT NULL`
	res, err := r.db.ExecContext(ctx, query, closed, nowUTC(), id)
	if err != nil {
		return nil, fmt.Errorf("closing time entry: %w", err)
	}
	if err := r.requireTransition(ctx, res, id, ErrNotInProgress); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *SQLiteEntryRepo) Resume(ctx context.Context, id string, resumedAt time.Time) (*domain.TimeEntry, error) {
	query := `UPDATE time_entries
		SET progress_started_at = ?, updated_at = ?
		WHERE id = ? AND progress_started_at IS NULL`
	res, err := r.db.ExecContext(ctx, query, resumedAt.UTC().Format(time.RFC3339), nowUTC(), id)
	if err != nil {
		return nil, fmt.Errorf("resuming time entry: %w", err)
	}
	if err := r.requireTransition(ctx, res, id, ErrAlreadyInProgress); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// requireTransition distinguishes "no such row" from "row in the wrong state"
// after a guarded UPDATE matched nothing.
func (r *SQLiteEntryRepo) requireTransition(ctx context.Context, res sql.Result, id string, stateErr error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n > 0 {
		return nil
	}
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return fmt.Errorf("time entry %s: %w", id, stateErr)
}

func (r *SQLiteEntryRepo) FindInProgress(ctx context.Context, userID string) (*domain.TimeEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM time_entries
		WHERE user_id = ? AND progress_started_at IS NOT NULL`
	e, err := r.scanEntry(r.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return e, nil
}

func (r *SQLiteEntryRepo) ListByDateRange(ctx context.Context, start, end time.Time) ([]*domain.TimeEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM time_entries
		WHERE started_at >= ? AND started_at <= ?
		ORDER BY started_at, created_at`
	rows, err := r.db.QueryContext(ctx, query,
		start.UTC().Format(time.RFC3339),
		end.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("listing time entries by date range: %w", err)
	}
	defer rows.Close()
	return r.scanEntries(rows)
}

func (r *SQLiteEntryRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM time_entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting time entry: %w", err)
	}
	return nil
}

func (r *SQLiteEntryRepo) scanEntry(row *sql.Row) (*domain.TimeEntry, error) {
	var e domain.TimeEntry
	var startedAtStr, createdAtStr, updatedAtStr string
	var progressStr sql.NullString

	err := row.Scan(
		&e.ID, &e.UserID, &e.TaskID, &startedAtStr, &e.TotalHours, &progressStr, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("time entry: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning time entry: %w", err)
	}
	return r.populateEntry(&e, startedAtStr, createdAtStr, updatedAtStr, progressStr)
}

func (r *SQLiteEntryRepo) scanEntries(rows *sql.Rows) ([]*domain.TimeEntry, error) {
	var entries []*domain.TimeEntry
	for rows.Next() {
		var e domain.TimeEntry
		var startedAtStr, createdAtStr, updatedAtStr string
		var progressStr sql.NullString

		err := rows.Scan(
			&e.ID, &e.UserID, &e.TaskID, &startedAtStr, &e.TotalHours, &progressStr, &createdAtStr, &updatedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning time entry row: %w", err)
		}

		entry, parseErr := r.populateEntry(&e, startedAtStr, createdAtStr, updatedAtStr, progressStr)
		if parseErr != nil {
			return nil, parseErr
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating time entries: %w", err)
	}
	return entries, nil
}

func (r *SQLiteEntryRepo) populateEntry(e *domain.TimeEntry, startedAtStr, createdAtStr, updatedAtStr string, progressStr sql.NullString) (*domain.TimeEntry, error) {
	var parseErr error
	e.StartedAt, parseErr = time.Parse(time.RFC3339, startedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing started_at: %w", parseErr)
	}
	e.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	e.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	e.ProgressStartedAt = parseNullableTime(progressStr, time.RFC3339)
	return e, nil
}
