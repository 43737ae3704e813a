package domain

import "errors"

// Sentinel errors surfaced by problem validation and route construction.
// Callers classify with errors.Is and map them to HTTP statuses at the boundary.
var (
	// A passenger record is missing a coordinate or a coordinate is not a
	// well-formed [lon, lat] pair.
	ErrMalformedInput = errors.New("malformed input")

	// Fewer passengers were supplied than the configured minimum.
	ErrInsufficientLocations = errors.New("insufficient locations")

	// The feasible-route builder could not place a location. This indicates a
	// corrupted pickup/dropoff pairing, not a runtime condition to retry.
	ErrConstruction = errors.New("route construction failed")
)
