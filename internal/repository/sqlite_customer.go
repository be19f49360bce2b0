package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/andersvik/timetrack/internal/db"
	"github.com/andersvik/timetrack/internal/domain"
)

// SQLiteCustomerRepo implements CustomerRepo using a SQLite database.
type SQLiteCustomerRepo struct {
	db db.DBTX
}

// NewSQLiteCustomerRepo creates a new SQLiteCustomerRepo.
func NewSQLiteCustomerRepo(dbtx db.DBTX) *SQLiteCustomerRepo {
	return &SQLiteCustomerRepo{db: dbtx}
}

func (r *SQLiteCustomerRepo) Create(ctx context.Context, c *domain.Customer) error {
	query := `INSERT INTO customers (id, name, archived_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.Name,
		nullableTimeToString(c.ArchivedAt, time.RFC3339),
		c.CreatedAt.UTC().Format(time.RFC3339),
		c.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting customer: %w", err)
	}
	return nil
}

func (r *SQLiteCustomerRepo) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	query := `SELECT id, name, archived_at, created_at, updated_at FROM customers WHERE id = ?`
	return r.scanCustomer(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteCustomerRepo) List(ctx context.Context, includeArchived bool) ([]*domain.Customer, error) {
	query := `SELECT id, name, archived_at, created_at, updated_at FROM customers`
	if !includeArchived {
		query += ` WHERE archived_at IS NULL`
	}
	query += ` ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}
	defer rows.Close()

	var customers []*domain.Customer
	for rows.Next() {
		var c domain.Customer
		var archivedStr sql.NullString
		var createdAtStr, updatedAtStr string
		if err := rows.Scan(&c.ID, &c.Name, &archivedStr, &createdAtStr, &updatedAtStr); err != nil {
			return nil, fmt.Errorf("scanning customer row: %w", err)
		}
		if err := populateCustomer(&c, archivedStr, createdAtStr, updatedAtStr); err != nil {
			return nil, err
		}
		customers = append(customers, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating customers: %w", err)
	}
	return customers, nil
}

func (r *SQLiteCustomerRepo) Update(ctx context.Context, c *domain.Customer) error {
	query := `UPDATE customers SET name = ?, archived_at = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		c.Name,
		nullableTimeToString(c.ArchivedAt, time.RFC3339),
		nowUTC(),
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating customer: %w", err)
	}
	return nil
}

func (r *SQLiteCustomerRepo) Archive(ctx context.Context, id string) error {
	query := `UPDATE customers SET archived_at = ?, updated_at = ? WHERE id = ?`
	now := nowUTC()
	_, err := r.db.ExecContext(ctx, query, now, now, id)
	if err != nil {
		return fmt.Errorf("archiving customer: %w", err)
	}
	return nil
}

func (r *SQLiteCustomerRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting customer: %w", err)
	}
	return nil
}

func (r *SQLiteCustomerRepo) scanCustomer(row *sql.Row) (*domain.Customer, error) {
	var c domain.Customer
	var archivedStr sql.NullString
	var createdAtStr, updatedAtStr string

	err := row.Scan(&c.ID, &c.Name, &archivedStr, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("customer: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning customer: %w", err)
	}
	if err := populateCustomer(&c, archivedStr, createdAtStr, updatedAtStr); err != nil {
		return nil, err
	}
	return &c, nil
}

func populateCustomer(c *domain.Customer, archivedStr sql.NullString, createdAtStr, updatedAtStr string) error {
	var err error
	c.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return fmt.Errorf("parsing created_at: %w", err)
	}
	c.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return fmt.Errorf("parsing updated_at: %w", err)
	}
	c.ArchivedAt = parseNullableTime(archivedStr, time.RFC3339)
	return nil
}
