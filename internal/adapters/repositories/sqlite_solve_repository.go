package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ride-route-service/internal/domain"
	"ride-route-service/internal/ports"
)

// SQLite-backed implementation of the SolveStore port.
type SqliteSolveRepository struct{ DB *sql.DB }

func NewSqliteSolveRepository(db *sql.DB) *SqliteSolveRepository {
	return &SqliteSolveRepository{DB: db}
}

// Persist one solve record. The visited route is stored as JSON.
func (s *SqliteSolveRepository) SaveSolve(ctx context.Context, rec ports.SolveRecord) error {
	if s.DB == nil {
		return errors.New("sqlite solve repository: DB is nil")
	}

	if rec.ID == "" {
		return errors.New("save solve: record ID must not be empty")
	}

	routeJSON, err := json.Marshal(rec.Route)
	if err != nil {
		return fmt.Errorf("save solve: marshal route: %w", err)
	}

	query := `
	INSERT OR REPLACE INTO solves (
		solve_id,
		created_at,
		passenger_count,
		total_distance_meters,
		route
	)
	VALUES (?, ?, ?, ?, ?);
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
func (s *SqliteSolveRepository) ListSolves(ctx context.Context, limit int) ([]ports.SolveRecord, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite solve repository: DB is nil")
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
	LIMIT ?;
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

func scanSolveRow(rows *sql.Rows) (ports.SolveRecord, error) {
	var (
		rec       ports.SolveRecord
		createdAt string
		routeJSON string
	)

	if err := rows.Scan(&rec.ID, &createdAt, &rec.PassengerCount, &rec.TotalDistanceMeters, &routeJSON); err != nil {
		return ports.SolveRecord{}, fmt.Errorf("scan row: %w", err)
	}

	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return ports.SolveRecord{}, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	rec.CreatedAt = ts

	var route []domain.Stop
	if err := json.Unmarshal([]byte(routeJSON), &route); err != nil {
		return ports.SolveRecord{}, fmt.Errorf("unmarshal route: %w", err)
	}
	rec.Route = route

	return rec, nil
}
