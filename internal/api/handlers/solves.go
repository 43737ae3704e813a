package handlers

import (
	"log"
	"net/http"
	"strconv"

	"ride-route-service/internal/api/dto"
	"ride-route-service/internal/ports"
)

// SolveHistoryHandler exposes read-only access to persisted solve records.
type SolveHistoryHandler struct {
	Store ports.SolveStore
}

func (h *SolveHistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 100 {
			writeError(w, r, http.StatusBadRequest, "limit must be between 1 and 100")
			return
		}
		limit = n
	}

	recs, err := h.Store.ListSolves(r.Context(), limit)
	if err != nil {
		log.Printf("list solves failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListSolvesResponse{
		Solves: make([]dto.SolveRecordResponse, 0, len(recs)),
	}
	for _, rec := range recs {
		res.Solves = append(res.Solves, dto.SolveRecordResponse{
			ID:                  rec.ID,
			CreatedAt:           rec.CreatedAt,
			PassengerCount:      rec.PassengerCount,
			TotalDistanceMeters: rec.TotalDistanceMeters,
			Route:               stopsToResponse(rec.Route),
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
