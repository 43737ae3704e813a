package handlers

import (
	"net/http"

	"ride-route-service/internal/api/dto"
)

// Center of the demo area (Delhi), matching the map the frontend shows.
const (
	demoCenterLat = 28.7041
	demoCenterLon = 77.1025
)

// RandomProblem returns a small demo problem: the driver at the area center
// and four passengers whose pickup/dropoff pairs sit on a 2x2 grid offset by
// +/-0.005 degrees. The grid is deterministic so demo solves are repeatable.
func RandomProblem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	res := dto.RandomProblemResponse{
		Driver:     []float64{demoCenterLon, demoCenterLat},
		Passengers: make([]dto.PassengerRequest, 0, 4),
	}

	for i := 0; i < 4; i++ {
		offsetLat := float64(i%2) * 0.005
		offsetLon := float64(i/2) * 0.005

		res.Passengers = append(res.Passengers, dto.PassengerRequest{
			ID: i,
			Pickup: []float64{
				demoCenterLon - 0.005 + offsetLon,
				demoCenterLat - 0.005 + offsetLat,
			},
			Dropoff: []float64{
				demoCenterLon + 0.005 + offsetLon,
				demoCenterLat + 0.005 + offsetLat,
			},
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
