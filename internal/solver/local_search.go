package solver

import (
	"context"
	"time"

	"ride-route-service/internal/domain"
)

const (
	// glsAlpha sizes the edge-penalty weight relative to the average leg cost
	// of the first local optimum.
	glsAlpha = 0.3

	// improveEps guards against accepting float-noise "improvements".
	improveEps = 1e-9

	// maxStaleCycles bounds how many penalty/descent cycles may pass without
	// the best tour improving before the search gives up early.
	maxStaleCycles = 30
)

// search holds the per-solve local-search state: the cost table, precedence
// pairing, and the guided-local-search edge penalties. Not safe for use by
// more than one solve.
type search struct {
	m      *Matrix
	lambda float64
	pen    [][]int

	// pairedWith[i] is i's partner index, kind[i] distinguishes pickup from
	// dropoff. Depot has no partner.
	pairedWith []int
	isPickup   []bool
	isDropoff  []bool

	pos []int // scratch: location index -> tour position
}

func newSearch(m *Matrix, pairs []domain.Pair) *search {
	n := m.Len()
	s := &search{
		m:          m,
		pairedWith: make([]int, n),
		isPickup:   make([]bool, n),
		isDropoff:  make([]bool, n),
		pos:        make([]int, n),
		pen:        make([][]int, n),
	}
	for i := range s.pairedWith {
		s.pairedWith[i] = -1
		s.pen[i] = make([]int, n)
	}
	for _, pr := range pairs {
		s.pairedWith[pr.Pickup] = pr.Dropoff
		s.pairedWith[pr.Dropoff] = pr.Pickup
		s.isPickup[pr.Pickup] = true
		s.isDropoff[pr.Dropoff] = true
	}
	return s
}

// optimize improves the constructed tour with guided local search: descend to
// a local optimum under the (penalty-augmented) cost, penalize the most
// "useful" edges of that optimum to push the search elsewhere, and repeat,
// always tracking the best tour under the true cost. The returned tour is
// never worse than the input.
//
// The wall-clock budget is enforced by monotonic clock checks inside the
// iteration loops, not by external cancellation; the context only lets a
// caller abandon the whole search early.
func optimize(ctx context.Context, m *Matrix, pairs []domain.Pair, initial []int, budget time.Duration) []int {
	n := len(initial)
	best := append([]int(nil), initial...)
	if n < 4 {
		// Depot plus a single pair admits exactly one feasible order.
		return best
	}

	deadline := time.Now().Add(budget)
	s := newSearch(m, pairs)

	cur := append([]int(nil), initial...)

	// First descent runs with zero penalties, i.e. under the true cost.
	s.descend(cur, deadline)
	bestCost := tourCost(m, cur)
	copy(best, cur)

	s.lambda = glsAlpha * bestCost / float64(n)

	stale := 0
	for stale < maxStaleCycles && time.Now().Before(deadline) && ctx.Err() == nil {
		s.penalizeMaxUtility(cur)
		s.descend(cur, deadline)

		c := tourCost(m, cur)
		if c+improveEps < bestCost {
			bestCost = c
			copy(best, cur)
			stale = 0
		} else {
			stale++
		}
	}

	return best
}

// augDist is the penalty-augmented edge cost used while descending.
func (s *search) augDist(a, b int) float64 {
	return s.m.Dist(a, b) + s.lambda*float64(s.pen[a][b])
}

// descend runs deterministic first-improvement local search to a local
// optimum of the augmented cost. Moves: relocating one location to another
// tour position, and reversing a segment; both filtered so a dropoff never
// precedes its pickup.
func (s *search) descend(order []int, deadline time.Time) {
	for {
		if !time.Now().Before(deadline) {
			return
		}

		for i, loc := range order {
			s.pos[loc] = i
		}

		if i, j, ok := s.findRelocate(order); ok {
			relocate(order, i, j)
			continue
		}
		if i, k, ok := s.findReverse(order); ok {
			reverse(order, i, k)
			continue
		}
		return
	}
}

// findRelocate scans for the first relocation of order[i] to position j that
// keeps precedence and lowers the augmented tour cost.
func (s *search) findRelocate(order []int) (int, int, bool) {
	n := len(order)

	for i := 1; i < n; i++ {
		x := order[i]

		// Position of x's partner once x has been pulled out of the tour.
		partnerAfter := -1
		if p := s.pairedWith[x]; p >= 0 {
			partnerAfter = s.pos[p]
			if partnerAfter > i {
				partnerAfter--
			}
		}

		prev := order[i-1]
		next := order[(i+1)%n]
		removeGain := s.augDist(prev, x) + s.augDist(x, next) - s.augDist(prev, next)

		for j := 1; j < n; j++ {
			if j == i {
				continue
			}
			if s.isPickup[x] && j > partnerAfter {
				continue
			}
			if s.isDropoff[x] && j <= partnerAfter {
				continue
			}

			a, b := insertionNeighbors(order, i, j)
			insertCost := s.augDist(a, x) + s.augDist(x, b) - s.augDist(a, b)
			if insertCost-removeGain < -improveEps {
				return i, j, true
			}
		}
	}

	return 0, 0, false
}

// findReverse scans for the first segment reversal order[i..k] that keeps
// precedence and lowers the augmented tour cost. A reversal inverts the
// relative order inside the segment, so it is rejected whenever any
// pickup/dropoff pair lies entirely within it.
func (s *search) findReverse(order []int) (int, int, bool) {
	n := len(order)

	for i := 1; i < n-1; i++ {
		for k := i + 1; k < n; k++ {
			if s.segmentContainsPair(i, k) {
				// Widening the segment cannot make it valid again.
				break
			}

			next := order[(k+1)%n]
			delta := s.augDist(order[i-1], order[k]) + s.augDist(order[i], next) -
				s.augDist(order[i-1], order[i]) - s.augDist(order[k], next)
			if delta < -improveEps {
				return i, k, true
			}
		}
	}

	return 0, 0, false
}

// segmentContainsPair reports whether some pickup and its dropoff both fall
// within tour positions [i, k].
func (s *search) segmentContainsPair(i, k int) bool {
	for loc, partner := range s.pairedWith {
		if partner < 0 || !s.isPickup[loc] {
			continue
		}
		pp, dp := s.pos[loc], s.pos[partner]
		if i <= pp && pp <= k && i <= dp && dp <= k {
			return true
		}
	}
	return false
}

// penalizeMaxUtility increments the penalty of the tour edge(s) with the
// highest utility dist/(1+penalty), the guided-local-search diversification
// step: long, rarely penalized edges are discouraged first.
func (s *search) penalizeMaxUtility(order []int) {
	n := len(order)
	if n < 2 {
		return
	}

	maxUtil := -1.0
	for i := 0; i < n; i++ {
		a, b := order[i], order[(i+1)%n]
		util := s.m.Dist(a, b) / float64(1+s.pen[a][b])
		if util > maxUtil {
			maxUtil = util
		}
	}
	if maxUtil <= 0 {
		return
	}

	for i := 0; i < n; i++ {
		a, b := order[i], order[(i+1)%n]
		util := s.m.Dist(a, b) / float64(1+s.pen[a][b])
		if util >= maxUtil-improveEps {
			s.pen[a][b]++
			s.pen[b][a]++
		}
	}
}

// insertionNeighbors returns the locations that would surround order[i] after
// relocating it to position j, with the tour closing back at the depot.
func insertionNeighbors(order []int, i, j int) (int, int) {
	n := len(order)

	// Index shift caused by first removing order[i].
	var a, b int
	if j < i {
		a = order[j-1]
		b = order[j]
	} else {
		a = order[j]
		if j+1 < n {
			b = order[j+1]
		} else {
			b = order[0]
		}
	}
	return a, b
}

// relocate moves order[i] so it ends up at position j.
func relocate(order []int, i, j int) {
	x := order[i]
	if j < i {
		copy(order[j+1:i+1], order[j:i])
	} else {
		copy(order[i:j], order[i+1:j+1])
	}
	order[j] = x
}

// reverse flips order[i..k] in place.
func reverse(order []int, i, k int) {
	for a, b := i, k; a < b; a, b = a+1, b-1 {
		order[a], order[b] = order[b], order[a]
	}
}
