package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/andersvik/timetrack/internal/db"
	"github.com/andersvik/timetrack/internal/domain"
)

// SQLiteContractRepo implements ContractRepo using a SQLite database.
type SQLiteContractRepo struct {
	db db.DBTX
}

// NewSQLiteContractRepo creates a new SQLiteContractRepo.
func NewSQLiteContractRepo(dbtx db.DBTX) *SQLiteContractRepo {
	return &SQLiteContractRepo{db: dbtx}
}

const contractColumns = `id, customer_id, name, daily_rate, currency, start_date, end_date, created_at, updated_at`

func (r *SQLiteContractRepo) Create(ctx context.Context, c *domain.Contract) error {
	query := `INSERT INTO contracts (` + contractColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.CustomerID,
		c.Name,
		c.DailyRate,
		c.Currency,
		c.StartDate.Format(dateLayout),
		c.EndDate.Format(dateLayout),
		c.CreatedAt.UTC().Format(time.RFC3339),
		c.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting contract: %w", err)
	}
	return nil
}

func (r *SQLiteContractRepo) GetByID(ctx context.Context, id string) (*domain.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts WHERE id = ?`
	return r.scanContract(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteContractRepo) ListByCustomer(ctx context.Context, customerID string) ([]*domain.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts WHERE customer_id = ? ORDER BY start_date`
	rows, err := r.db.QueryContext(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("listing contracts by customer: %w", err)
	}
	defer rows.Close()

	var contracts []*domain.Contract
	for rows.Next() {
		c, err := scanContractRow(rows)
		if err != nil {
			return nil, err
		}
		contracts = append(contracts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating contracts: %w", err)
	}
	return contracts, nil
}

func (r *SQLiteContractRepo) Update(ctx context.Context, c *domain.Contract) error {
	query := `UPDATE contracts
		SET name = ?, daily_rate = ?, currency = ?, start_date = ?, end_date = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		c.Name,
		c.DailyRate,
		c.Currency,
		c.StartDate.Format(dateLayout),
		c.EndDate.Format(dateLayout),
		nowUTC(),
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating contract: %w", err)
	}
	return nil
}

func (r *SQLiteContractRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM contracts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting contract: %w", err)
	}
	return nil
}

func (r *SQLiteContractRepo) scanContract(row *sql.Row) (*domain.Contract, error) {
	var c domain.Contract
	var startStr, endStr, createdAtStr, updatedAtStr string

	err := row.Scan(&c.ID, &c.CustomerID, &c.Name, &c.DailyRate, &c.Currency,
		&startStr, &endStr, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("contract: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning contract: %w", err)
	}
	if err := populateContract(&c, startStr, endStr, createdAtStr, updatedAtStr); err != nil {
		return nil, err
	}
	return &c, nil
}

func scanContractRow(rows *sql.Rows) (*domain.Contract, error) {
	var c domain.Contract
	var startStr, endStr, createdAtStr, updatedAtStr string

	err := rows.Scan(&c.ID, &c.CustomerID, &c.Name, &c.DailyRate, &c.Currency,
		&startStr, &endStr, &createdAtStr, &updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("scanning contract row: %w", err)
	}
	if err := populateContract(&c, startStr, endStr, createdAtStr, updatedAtStr); err != nil {
		return nil, err
	}
	return &c, nil
}

func populateContract(c *domain.Contract, startStr, endStr, createdAtStr, updatedAtStr string) error {
	var err error
	c.StartDate, err = time.Parse(dateLayout, startStr)
	if err != nil {
		return fmt.Errorf("parsing start_date: %w", err)
	}
	c.EndDate, err = time.Parse(dateLayout, endStr)
	if err != nil {
		return fmt.Errorf("parsing end_date: %w", err)
	}
	c.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return fmt.Errorf("parsing created_at: %w", err)
	}
	c.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return fmt.Errorf("parsing updated_at: %w", err)
	}
	return nil
}
