package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ride-route-service/internal/platform/obs"
	"ride-route-service/internal/ports"
)

// SQLSolveRepository is the Postgres flavor of the SolveStore port,
// used when DATABASE_URL is configured.
type SQLSolveRepository struct{ DB *sql.DB }

func NewSQLSolveRepository(db *sql.DB) *SQLSolveRepository {
	return &SQLSolveRepository{DB: db}
}

// Persist one solve record.
func (s *SQLSolveRepository) SaveSolve(ctx context.Context, rec ports.SolveRecord) (err error) {
	defer obs.Time(ctx, "solves.store.SaveSolve")(&err)

	if s.DB == nil {
		return errors.New("sql solve repository: DB is nil")
	}

	if rec.ID == "" {
		return errors.New("save solve: record ID must not be empty")
	}

	routeJSON, err := json.Marshal(rec.Route)
	if err != nil {
		return fmt.Errorf("save solve: marshal route: %w", err)
	}

	query := `
	INSERT INTO solves (
		solve_id,
		created_at,
		passenger_count,
		total_distance_meters,
		route
	)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (solve_id) DO UPDATE
	SET created_at = EXCLUDED.created_at,
		passenger_count = EXCLUDED.passenger_count,
		total_distance_meters = EXCLUDED.total_distance_meters,
		route = EXCLUDED.route;
	`

	_, err = s.DB.ExecContext(ctx, query,
		rec.ID,
		rec.CreatedAt.UTC().Format(time.RFC3339Nano),
		rec.PassengerCount,
		rec.TotalDistanceMeters,
		string(routeJSON),
	)
	if err != nil {
		return fmt.Errorf("save solve: insert into solves table: %w", err)
	}

	return nil
}

// Return the most recent solve records, newest first.
func (s *SQLSolveRepository) ListSolves(ctx context.Context, limit int) (_ []ports.SolveRecord, err error) {
	defer obs.Time(ctx, "solves.store.ListSolves")(&err)

	if s.DB == nil {
		return nil, errors.New("sql solve repository: DB is nil")
	}

	if limit < 1 {
		limit = 20
	}

	query := `
	SELECT
		solve_id,
		created_at,
		passenger_count,
		total_distance_meters,
		route
	FROM solves
	ORDER BY created_at DESC
	LIMIT $1;
	`

	rows, err := s.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list solves: query solves table: %w", err)
	}
	defer rows.Close()

	records := make([]ports.SolveRecord, 0, limit)
	for rows.Next() {
		rec, err := scanSolveRow(rows)
		if err != nil {
			return nil, fmt.Errorf("list solves: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list solves: row iteration: %w", err)
	}

	return records, nil
}

// PruneBefore deletes solve records created before the cutoff. Used by the
// dbtool for retention housekeeping; returns the number of rows removed.
func (s *SQLSolveRepository) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if s.DB == nil {
		return 0, errors.New("sql solve repository: DB is nil")
	}

	res, err := s.DB.ExecContext(ctx,
		`DELETE FROM solves WHERE created_at < $1;`,
		cutoff.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("prune solves: delete from solves table: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune solves: rows affected: %w", err)
	}

	return n, nil
}
