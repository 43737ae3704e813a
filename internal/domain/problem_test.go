package domain

import (
	"errors"
	"testing"
)

func TestProblemAddPassengerIndices(t *testing.T) {
	p := NewProblem(Coordinates{Lon: 77.0, Lat: 28.0})

	p.AddPassenger(Coordinates{Lon: 77.1, Lat: 28.1}, Coordinates{Lon: 77.2, Lat: 28.2})
	p.AddPassenger(Coordinates{Lon: 77.3, Lat: 28.3}, Coordinates{Lon: 77.4, Lat: 28.4})

	if got := len(p.Locations()); got != 5 {
		t.Fatalf("location count = %d, want 5", got)
	}

	pairs := p.Pairs()
	if len(pairs) != 2 {
		t.Fatalf("pair count = %d, want 2", len(pairs))
	}

	want := []Pair{{Pickup: 1, Dropoff: 2}, {Pickup: 3, Dropoff: 4}}
	for i, pr := range pairs {
		if pr != want[i] {
			t.Errorf("pair %d = %+v, want %+v", i, pr, want[i])
		}
	}

	if p.Locations()[0] != (Coordinates{Lon: 77.0, Lat: 28.0}) {
		t.Errorf("index 0 must stay the depot, got %+v", p.Locations()[0])
	}
}

func TestProblemValidate(t *testing.T) {
	depot := Coordinates{Lon: 77.0, Lat: 28.0}

	empty := NewProblem(depot)
	if err := empty.Validate(1); !errors.Is(err, ErrInsufficientLocations) {
		t.Fatalf("validate empty problem: err = %v, want ErrInsufficientLocations", err)
	}

	one := NewProblem(depot)
	one.AddPassenger(Coordinates{Lon: 77.1, Lat: 28.1}, Coordinates{Lon: 77.2, Lat: 28.2})
	if err := one.Validate(1); err != nil {
		t.Fatalf("validate one-passenger problem: unexpected error: %v", err)
	}

	// A stricter minimum still rejects small problems.
	if err := one.Validate(4); !errors.Is(err, ErrInsufficientLocations) {
		t.Fatalf("validate with min 4: err = %v, want ErrInsufficientLocations", err)
	}
}

func TestCoordinatesFromList(t *testing.T) {
	c, err := CoordinatesFromList([]float64{77.1025, 28.7041})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Lon != 77.1025 || c.Lat != 28.7041 {
		t.Fatalf("parsed coordinates = %+v", c)
	}

	for _, bad := range [][]float64{nil, {}, {1}, {1, 2, 3}} {
		if _, err := CoordinatesFromList(bad); !errors.Is(err, ErrMalformedInput) {
			t.Errorf("CoordinatesFromList(%v): err = %v, want ErrMalformedInput", bad, err)
		}
	}
}
