package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"ride-route-service/internal/adapters/cache"
	"ride-route-service/internal/api/dto"
	"ride-route-service/internal/domain"
	"ride-route-service/internal/ports"
	"ride-route-service/internal/solver"
)

// SolveHandler runs the route-optimization core for one request.
// Store and Cache are optional; a nil Store skips history persistence and a
// nil Cache always solves from scratch.
type SolveHandler struct {
	Store  ports.SolveStore
	Cache  ports.SolutionCache
	Config solver.Config
}

// Solve validates the request, builds a fresh problem instance, and returns
// the optimized route. Each request owns its problem, matrix, and optimizer
// state; nothing is shared across in-flight solves.
func (h *SolveHandler) Solve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.SolveRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	problem, err := buildProblem(req)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()

	// Identical problems hit the cache and skip the search entirely.
	var cacheKey string
	if h.Cache != nil {
		cacheKey = cache.ProblemKey(problem)
		if sol, ok, err := h.Cache.Get(ctx, cacheKey); err != nil {
			log.Printf("solution cache get failed: %v", err)
		} else if ok {
			h.respond(w, r, problem, sol)
			return
		}
	}

	sol, err := solver.Solve(ctx, problem, h.Config)
	switch {
	case errors.Is(err, domain.ErrInsufficientLocations):
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		// Construction failures indicate corrupted pairing, a defect.
		log.Printf("solve failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	case sol == nil:
		writeError(w, r, http.StatusBadRequest, "no solution found")
		return
	}

	if h.Cache != nil {
		if err := h.Cache.Put(ctx, cacheKey, sol); err != nil {
			log.Printf("solution cache put failed: %v", err)
		}
	}

	h.respond(w, r, problem, sol)
}

// respond persists a history record (best effort) and writes the solution.
func (h *SolveHandler) respond(w http.ResponseWriter, r *http.Request, problem *domain.Problem, sol *domain.Solution) {
	id := uuid.NewString()

	if h.Store != nil {
		rec := ports.SolveRecord{
			ID:                  id,
			CreatedAt:           time.Now().UTC(),
			PassengerCount:      problem.PassengerCount(),
			TotalDistanceMeters: sol.TotalDistanceMeters,
			Route:               sol.Route,
		}
		// History is informational; a storage failure must not fail the solve.
		if err := h.Store.SaveSolve(r.Context(), rec); err != nil {
			log.Printf("save solve record failed: id=%s err=%v", id, err)
		}
	}

	res := dto.SolveResponse{
		ID:                  id,
		Route:               stopsToResponse(sol.Route),
		Locations:           stopsToResponse(sol.Locations),
		TotalDistanceMeters: sol.TotalDistanceMeters,
	}

	writeJSON(w, r, http.StatusOK, res)
}

// buildProblem turns the request DTO into a fresh, fully-populated problem
// instance, rejecting malformed coordinates before any solving starts.
func buildProblem(req dto.SolveRequest) (*domain.Problem, error) {
	depot, err := domain.CoordinatesFromList(req.Driver)
	if err != nil {
		return nil, fmt.Errorf("driver: %w", err)
	}

	problem := domain.NewProblem(depot)
	for i, p := range req.Passengers {
		if p.Pickup == nil {
			return nil, fmt.Errorf("passenger %d: missing pickup: %w", i, domain.ErrMalformedInput)
		}
		if p.Dropoff == nil {
			return nil, fmt.Errorf("passenger %d: missing dropoff: %w", i, domain.ErrMalformedInput)
		}

		pickup, err := domain.CoordinatesFromList(p.Pickup)
		if err != nil {
			return nil, fmt.Errorf("passenger %d pickup: %w", i, err)
		}
		dropoff, err := domain.CoordinatesFromList(p.Dropoff)
		if err != nil {
			return nil, fmt.Errorf("passenger %d dropoff: %w", i, err)
		}

		problem.AddPassenger(pickup, dropoff)
	}

	return problem, nil
}

func stopsToResponse(stops []domain.Stop) []dto.StopResponse {
	out := make([]dto.StopResponse, 0, len(stops))
	for _, s := range stops {
		out = append(out, dto.StopResponse{
			Index:    s.Index,
			Location: s.Location.CoordsToList(),
			Type:     s.Type,
		})
	}
	return out
}
