// Package solver is the route-optimization core: it turns a pickup/dropoff
// problem into a low-cost feasible visiting order.
//
// The pipeline runs once per request: build the distance matrix, construct an
// initial feasible tour with a cheapest-feasible-arc heuristic, improve it
// with guided local search under a wall-clock budget, then extract the tagged
// route. Nothing here performs I/O and no state is shared between solves.
package solver

import (
	"context"
	"fmt"
	"time"

	"ride-route-service/internal/domain"
	"ride-route-service/internal/platform/obs"
)

// DefaultTimeBudget bounds the local-search phase of a solve.
const DefaultTimeBudget = 5 * time.Second

// DefaultMinPassengers is the smallest problem the solver accepts.
const DefaultMinPassengers = 1

// Config carries the caller-tunable solve parameters. The zero value of any
// field falls back to its default.
type Config struct {
	// TimeBudget bounds the local-search phase, not the whole solve.
	TimeBudget time.Duration

	// DistanceScale converts coordinate degrees to approximate meters.
	DistanceScale float64

	// MinPassengers rejects degenerate problems below this pair count.
	MinPassengers int
}

// DefaultConfig returns the solve parameters used when the caller supplies none.
func DefaultConfig() Config {
	return Config{
		TimeBudget:    DefaultTimeBudget,
		DistanceScale: DefaultDistanceScale,
		MinPassengers: DefaultMinPassengers,
	}
}

func (c Config) withDefaults() Config {
	if c.TimeBudget <= 0 {
		c.TimeBudget = DefaultTimeBudget
	}
	if c.DistanceScale <= 0 {
		c.DistanceScale = DefaultDistanceScale
	}
	if c.MinPassengers < 1 {
		c.MinPassengers = DefaultMinPassengers
	}
	return c
}

// Solve plans the single-vehicle route for one problem instance.
//
// A nil Solution with a nil error means the search finished without finding a
// feasible route; callers map that to a client-visible "no solution" response
// rather than an internal error. Validation and construction failures return
// wrapped sentinel errors from the domain package.
func Solve(ctx context.Context, p *domain.Problem, cfg Config) (_ *domain.Solution, err error) {
	defer obs.Time(ctx, "solver.Solve")(&err)

	cfg = cfg.withDefaults()

	if err := p.Validate(cfg.MinPassengers); err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}

	m := NewMatrix(p.Locations(), cfg.DistanceScale)

	initial, err := constructRoute(m, p.Pairs())
	if err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}

	best := optimize(ctx, m, p.Pairs(), initial, cfg.TimeBudget)
	if len(best) == 0 {
		return nil, nil
	}

	return extract(best, p.Locations(), p.Pairs(), tourCost(m, best)), nil
}
