package solver

import (
	"math"

	"ride-route-service/internal/domain"
)

// DefaultDistanceScale converts degrees to approximate meters on a flat
// plane. The approximation is only valid for small extents (a city, not a
// continent); it mirrors the scaling the rest of the system assumes.
const DefaultDistanceScale = 111000.0

// Matrix is the full pairwise travel-cost table for one problem instance.
// It is symmetric with a zero diagonal, built once per solve, and owned
// exclusively by that solve. Never share a Matrix across concurrent solves.
type Matrix struct {
	n     int
	cells [][]float64
}

// NewMatrix computes the pairwise cost table for the given locations.
// Fewer than two locations yields a trivial matrix.
func NewMatrix(locations []domain.Coordinates, scale float64) *Matrix {
	if scale <= 0 {
		scale = DefaultDistanceScale
	}

	n := len(locations)
	cells := make([][]float64, n)
	for i := range cells {
		cells[i] = make([]float64, n)
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := flatDistance(locations[i], locations[j], scale)
			cells[i][j] = d
			cells[j][i] = d
		}
	}

	return &Matrix{n: n, cells: cells}
}

// Len returns the number of locations the matrix covers.
func (m *Matrix) Len() int { return m.n }

// Dist returns the travel cost between two location indices.
func (m *Matrix) Dist(i, j int) float64 { return m.cells[i][j] }

// flatDistance is the Euclidean distance between two coordinates scaled to
// approximate meters from degrees.
func flatDistance(a, b domain.Coordinates, scale float64) float64 {
	return math.Hypot(b.Lon-a.Lon, b.Lat-a.Lat) * scale
}

// tourCost sums the cost of visiting order's locations in sequence and
// returning to the depot.
func tourCost(m *Matrix, order []int) float64 {
	if len(order) < 2 {
		return 0
	}

	total := 0.0
	for i := 0; i < len(order)-1; i++ {
		total += m.Dist(order[i], order[i+1])
	}
	total += m.Dist(order[len(order)-1], order[0])
	return total
}
