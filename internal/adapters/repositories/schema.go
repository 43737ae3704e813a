package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the solve-history schema. The DDL is kept portable so the same
// statements run against both SQLite and Postgres (created_at is stored as
// RFC3339 text, which also sorts chronologically).
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createSolvesQuery := `
	CREATE TABLE IF NOT EXISTS solves (
		solve_id TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		passenger_count INTEGER NOT NULL,
		total_distance_meters REAL NOT NULL,
		route TEXT NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_solves_created_at
	ON solves(created_at);
	`

	statements := []string{
		createSolvesQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
