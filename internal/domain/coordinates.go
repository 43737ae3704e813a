package domain

import "fmt"

// Immutable geographic coordinates (longitude, latitude).
type Coordinates struct {
	Lon float64
	Lat float64
}

// Return coordinates as [lon, lat] for external API compatibility.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lon, c.Lat} }

// Parse a [lon, lat] pair as received from external callers.
// Anything other than exactly two values is malformed input.
func CoordinatesFromList(v []float64) (Coordinates, error) {
	if len(v) != 2 {
		return Coordinates{}, fmt.Errorf("parse coordinates: want [lon, lat], got %d values: %w", len(v), ErrMalformedInput)
	}
	return Coordinates{Lon: v[0], Lat: v[1]}, nil
}
