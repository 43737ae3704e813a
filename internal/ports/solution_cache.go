package ports

import (
	"context"

	"ride-route-service/internal/domain"
)

// Optional cache for solved routes keyed by a problem fingerprint, so
// repeated identical requests skip the search entirely.
type SolutionCache interface {
	// Return the cached solution for key, reporting whether it was present.
	Get(ctx context.Context, key string) (*domain.Solution, bool, error)

	// Store the solution under key.
	Put(ctx context.Context, key string, sol *domain.Solution) error
}
