package solver

import (
	"context"
	"testing"
	"time"

	"ride-route-service/internal/domain"
)

func TestRelocate(t *testing.T) {
	cases := []struct {
		i, j int
		want []int
	}{
		{i: 2, j: 4, want: []int{0, 1, 3, 4, 2}},
		{i: 3, j: 1, want: []int{0, 3, 1, 2, 4}},
		{i: 1, j: 2, want: []int{0, 2, 1, 3, 4}},
	}

	for _, c := range cases {
		order := []int{0, 1, 2, 3, 4}
		relocate(order, c.i, c.j)
		for k := range c.want {
			if order[k] != c.want[k] {
				t.Errorf("relocate(%d,%d) = %v, want %v", c.i, c.j, order, c.want)
				break
			}
		}
	}
}

func TestReverse(t *testing.T) {
	order := []int{0, 1, 2, 3, 4}
	reverse(order, 1, 3)
	want := []int{0, 3, 2, 1, 4}
	for k := range want {
		if order[k] != want[k] {
			t.Fatalf("reverse(1,3) = %v, want %v", order, want)
		}
	}
}

func TestOptimizeFindsLineOptimum(t *testing.T) {
	// Points on a line. The construction-shaped initial tour zigzags; the
	// optimum sweeps out and back for a cost of 8.
	locs := []domain.Coordinates{
		{Lon: 0, Lat: 0},
		{Lon: 0, Lat: 1}, // pickup 1
		{Lon: 0, Lat: 2}, // dropoff 1
		{Lon: 0, Lat: 3}, // pickup 2
		{Lon: 0, Lat: 4}, // dropoff 2
	}
	pairs := []domain.Pair{{Pickup: 1, Dropoff: 2}, {Pickup: 3, Dropoff: 4}}
	m := NewMatrix(locs, 1)

	initial := []int{0, 1, 3, 2, 4}

	best := optimize(context.Background(), m, pairs, initial, 200*time.Millisecond)

	assertFeasibleTour(t, best, pairs, len(locs))
	if got := tourCost(m, best); got > 8+improveEps {
		t.Fatalf("optimized cost = %v, want 8", got)
	}
}

func TestOptimizeNeverWorseThanInitial(t *testing.T) {
	// A deliberately poor but feasible start: all pickups, then all dropoffs.
	locs := []domain.Coordinates{
		{Lon: 0, Lat: 0},
		{Lon: 1, Lat: 2}, {Lon: 3, Lat: 1},
		{Lon: 4, Lat: 4}, {Lon: 0, Lat: 3},
		{Lon: 2, Lat: 5}, {Lon: 5, Lat: 2},
		{Lon: 1, Lat: 1}, {Lon: 4, Lat: 0},
	}
	pairs := []domain.Pair{
		{Pickup: 1, Dropoff: 2},
		{Pickup: 3, Dropoff: 4},
		{Pickup: 5, Dropoff: 6},
		{Pickup: 7, Dropoff: 8},
	}
	m := NewMatrix(locs, 1)

	initial := []int{0, 1, 3, 5, 7, 2, 4, 6, 8}
	initialCost := tourCost(m, initial)

	best := optimize(context.Background(), m, pairs, initial, 300*time.Millisecond)

	assertFeasibleTour(t, best, pairs, len(locs))
	if got := tourCost(m, best); got > initialCost+improveEps {
		t.Fatalf("optimized cost %v exceeds initial cost %v", got, initialCost)
	}
}

func TestOptimizeTrivialTour(t *testing.T) {
	// Depot plus one pair has a single feasible order; optimize must return
	// it untouched.
	locs := []domain.Coordinates{
		{Lon: 0, Lat: 0},
		{Lon: 0, Lat: 1},
		{Lon: 0, Lat: 2},
	}
	pairs := []domain.Pair{{Pickup: 1, Dropoff: 2}}
	m := NewMatrix(locs, 1)

	best := optimize(context.Background(), m, pairs, []int{0, 1, 2}, time.Second)

	want := []int{0, 1, 2}
	for i := range want {
		if best[i] != want[i] {
			t.Fatalf("optimize = %v, want %v", best, want)
		}
	}
}

func TestOptimizeRespectsCancelledContext(t *testing.T) {
	locs := []domain.Coordinates{
		{Lon: 0, Lat: 0},
		{Lon: 0, Lat: 1}, {Lon: 0, Lat: 2},
		{Lon: 1, Lat: 0}, {Lon: 2, Lat: 0},
	}
	pairs := []domain.Pair{{Pickup: 1, Dropoff: 2}, {Pickup: 3, Dropoff: 4}}
	m := NewMatrix(locs, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	initial := []int{0, 1, 2, 3, 4}
	best := optimize(ctx, m, pairs, initial, time.Hour)

	// A cancelled context must still yield a feasible tour promptly.
	assertFeasibleTour(t, best, pairs, len(locs))
}
