package solver

import (
	"fmt"

	"ride-route-service/internal/domain"
)

// constructRoute builds the optimizer's starting tour with a cheapest
// feasible arc heuristic: starting at the depot, repeatedly append the
// unvisited location that adds the least distance to the tour's end.
//
// A pickup is always eligible; a dropoff only once its paired pickup has been
// placed, so every partial tour is feasible and no backtracking is needed.
// Ties break on the lowest location index, which keeps construction
// deterministic.
func constructRoute(m *Matrix, pairs []domain.Pair) ([]int, error) {
	n := m.Len()

	// pickupOf[i] is i's paired pickup when i is a dropoff, else -1.
	pickupOf := make([]int, n)
	for i := range pickupOf {
		pickupOf[i] = -1
	}
	for _, pr := range pairs {
		pickupOf[pr.Dropoff] = pr.Pickup
	}

	order := make([]int, 1, n)
	order[0] = 0
	placed := make([]bool, n)
	placed[0] = true

	for len(order) < n {
		last := order[len(order)-1]

		best := -1
		bestDist := 0.0
		for cand := 1; cand < n; cand++ {
			if placed[cand] {
				continue
			}
			if p := pickupOf[cand]; p >= 0 && !placed[p] {
				continue
			}

			d := m.Dist(last, cand)
			// Strict < keeps the lowest feasible index on ties.
			if best == -1 || d < bestDist {
				best = cand
				bestDist = d
			}
		}

		if best == -1 {
			// Unreachable for invariant-respecting input; a corrupted pairing
			// is a modeling defect, not something to retry.
			return nil, fmt.Errorf(
				"construct route: no feasible location to place after %d of %d: %w",
				len(order), n, domain.ErrConstruction,
			)
		}

		order = append(order, best)
		placed[best] = true
	}

	return order, nil
}
