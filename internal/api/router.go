package api

import (
	"net/http"

	"ride-route-service/internal/api/handlers"
	"ride-route-service/internal/ports"
	"ride-route-service/internal/solver"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
// store and solutionCache may be nil; the solve endpoint degrades gracefully.
func NewRouter(store ports.SolveStore, solutionCache ports.SolutionCache, cfg solver.Config) http.Handler {
	mux := http.NewServeMux()

	solveHandler := &handlers.SolveHandler{
		Store:  store,
		Cache:  solutionCache,
		Config: cfg,
	}
	historyHandler := &handlers.SolveHistoryHandler{Store: store}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/api/solve", solveHandler.Solve)
	mux.HandleFunc("/api/random-problem", handlers.RandomProblem)
	if store != nil {
		mux.HandleFunc("/api/solves", historyHandler.List)
	}

	return loggingMiddleware(mux)
}
