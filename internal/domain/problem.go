package domain

import "fmt"

// A pickup/dropoff index pair for one passenger. Both values index into the
// problem's location list.
type Pair struct {
	Pickup  int
	Dropoff int
}

// A single-vehicle ride problem: the driver's depot at index 0 followed by
// two locations per passenger. Each incoming request builds its own Problem;
// instances are never shared or reused across solves.
//
// The location list only grows. Once handed to the solver the instance is
// treated as frozen.
type Problem struct {
	locations []Coordinates
	pairs     []Pair
}

// NewProblem starts a fresh problem with the driver's location as the depot.
func NewProblem(depot Coordinates) *Problem {
	return &Problem{locations: []Coordinates{depot}}
}

// AddPassenger appends the passenger's pickup and dropoff locations and
// records their index pair. Indices grow monotonically as passengers are added.
func (p *Problem) AddPassenger(pickup, dropoff Coordinates) {
	pickupIndex := len(p.locations)
	p.locations = append(p.locations, pickup)

	dropoffIndex := len(p.locations)
	p.locations = append(p.locations, dropoff)

	p.pairs = append(p.pairs, Pair{Pickup: pickupIndex, Dropoff: dropoffIndex})
}

// Validate checks the problem is large enough to solve: a depot plus at least
// minPassengers pickup/dropoff pairs.
func (p *Problem) Validate(minPassengers int) error {
	if minPassengers < 1 {
		minPassengers = 1
	}

	need := 1 + 2*minPassengers
	if len(p.locations) < need {
		return fmt.Errorf(
			"validate problem: need depot and at least %d passenger(s), got %d location(s): %w",
			minPassengers, len(p.locations), ErrInsufficientLocations,
		)
	}

	return nil
}

// Locations returns the location list. Index 0 is the depot. The returned
// slice is shared; callers must not mutate it.
func (p *Problem) Locations() []Coordinates { return p.locations }

// Pairs returns the pickup/dropoff index pairs in passenger order.
func (p *Problem) Pairs() []Pair { return p.pairs }

// PassengerCount reports how many pickup/dropoff pairs have been added.
func (p *Problem) PassengerCount() int { return len(p.pairs) }
