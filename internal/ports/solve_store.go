package ports

import (
	"context"
	"time"

	"ride-route-service/internal/domain"
)

// A persisted record of one completed solve, kept for history/inspection.
type SolveRecord struct {
	ID                  string
	CreatedAt           time.Time
	PassengerCount      int
	TotalDistanceMeters float64
	Route               []domain.Stop
}

// Port: a boundary for persisting and listing completed solves.
type SolveStore interface {
	// Persist one solve record.
	SaveSolve(ctx context.Context, rec SolveRecord) error

	// Return the most recent solve records, newest first.
	ListSolves(ctx context.Context, limit int) ([]SolveRecord, error)
}
