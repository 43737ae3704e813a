package domain

// Semantic tag for a visited location.
const (
	StopDriver  = "driver"
	StopPickup  = "pickup"
	StopDropoff = "dropoff"
	StopUnknown = "unknown"
)

// One visited location in a solved route: its index into the problem's
// location list, its coordinates, and its semantic tag.
type Stop struct {
	Index    int
	Location Coordinates
	Type     string
}

// The solver's final output: the visiting order (starting and ending at the
// depot) plus a flat, index-ordered listing of every location for display.
// A Solution is immutable once produced.
type Solution struct {
	Route               []Stop
	Locations           []Stop
	TotalDistanceMeters float64
}
