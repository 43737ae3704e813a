package solver

import "ride-route-service/internal/domain"

// locationTags builds the index -> tag table once per solve instead of
// rescanning the pair list for every stop.
func locationTags(n int, pairs []domain.Pair) []string {
	tags := make([]string, n)
	for i := range tags {
		tags[i] = domain.StopUnknown
	}
	if n > 0 {
		tags[0] = domain.StopDriver
	}
	for _, pr := range pairs {
		tags[pr.Pickup] = domain.StopPickup
		tags[pr.Dropoff] = domain.StopDropoff
	}
	return tags
}

// extract converts the final visiting order into the caller-facing Solution:
// the tagged route closed at the depot, plus a flat index-ordered listing of
// every location for display.
func extract(order []int, locations []domain.Coordinates, pairs []domain.Pair, total float64) *domain.Solution {
	tags := locationTags(len(locations), pairs)

	route := make([]domain.Stop, 0, len(order)+1)
	for _, idx := range order {
		route = append(route, domain.Stop{
			Index:    idx,
			Location: locations[idx],
			Type:     tags[idx],
		})
	}
	// Close the tour back at the depot.
	if len(order) > 0 {
		route = append(route, domain.Stop{
			Index:    0,
			Location: locations[0],
			Type:     domain.StopDriver,
		})
	}

	flat := make([]domain.Stop, 0, len(locations))
	for i, loc := range locations {
		flat = append(flat, domain.Stop{Index: i, Location: loc, Type: tags[i]})
	}

	return &domain.Solution{
		Route:               route,
		Locations:           flat,
		TotalDistanceMeters: total,
	}
}
