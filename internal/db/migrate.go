package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent; ALTER TABLE
// duplicates from re-runs are tolerated.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS customers (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		archived_at TEXT,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS contracts (
		id          TEXT PRIMARY KEY,
		customer_id TEXT NOT NULL REFERENCES customers(id) ON DELETE CASCADE,
		name        TEXT NOT NULL,
		daily_rate  REAL NOT NULL DEFAULT 0 CHECK(daily_rate >= 0),
		currency    TEXT NOT NULL DEFAULT 'EUR',
		start_date  TEXT NOT NULL,
		end_date    TEXT NOT NULL,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_contracts_customer ON contracts(customer_id)`,

	`CREATE TABLE IF NOT EXISTS projects (
		id          TEXT PRIMARY KEY,
		customer_id TEXT NOT NULL REFERENCES customers(id) ON DELETE CASCADE,
		contract_id TEXT REFERENCES contracts(id) ON DELETE SET NULL,
		name        TEXT NOT NULL,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_projects_customer ON projects(customer_id)`,
	`CREATE INDEX IF NOT EXISTS idx_projects_contract ON projects(contract_id)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id          TEXT PRIMARY KEY,
		project_id  TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		name        TEXT NOT NULL,
		archived_at TEXT,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id)`,

	`CREATE TABLE IF NOT EXISTS time_entries (
		id                  TEXT PRIMARY KEY,
		user_id             TEXT NOT NULL,
		task_id             TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		started_at          TEXT NOT NULL,
		total_hours         REAL NOT NULL DEFAULT 0 CHECK(total_hours >= 0),
		progress_started_at TEXT,
		created_at          TEXT NOT NULL,
		updated_at          TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_entries_task ON time_entries(task_id)`,
	`CREATE INDEX IF NOT EXISTS idx_entries_user ON time_entries(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_entries_started ON time_entries(started_at)`,

	// Protocol invariant: at most one in-progress entry per user. A second
	// progress-started row for the same user violates this index.
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_entries_in_progress
		ON time_entries(user_id) WHERE progress_started_at IS NOT NULL`,
}
