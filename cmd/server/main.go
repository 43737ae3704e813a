package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"ride-route-service/internal/adapters/cache"
	"ride-route-service/internal/adapters/repositories"
	"ride-route-service/internal/api"
	"ride-route-service/internal/config"
	"ride-route-service/internal/platform/db"
	"ride-route-service/internal/ports"
	"ride-route-service/internal/solver"
)

// main is the application composition root.
// It wires concrete adapters (SQLite or Postgres, optionally Redis) behind
// ports and starts the HTTP server around the route-optimization core.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := config.Get("PORT", "8080")

	solveCfg := solver.Config{
		TimeBudget:    config.GetMillis("SOLVE_TIME_BUDGET_MS", solver.DefaultTimeBudget),
		DistanceScale: config.GetFloat("DISTANCE_SCALE", solver.DefaultDistanceScale),
		MinPassengers: config.GetInt("MIN_PASSENGERS", solver.DefaultMinPassengers),
	}

	store, closeStore, err := openStore()
	if err != nil {
		log.Fatal(err)
	}
	defer closeStore()

	// Redis is optional; without it every request solves from scratch.
	var solutionCache ports.SolutionCache
	if redisURL := os.Getenv("REDIS_URL"); strings.TrimSpace(redisURL) != "" {
		c, err := cache.NewRedisSolutionCache(redisURL, config.GetMillis("CACHE_TTL_MS", cache.DefaultTTL))
		if err != nil {
			log.Fatal(err)
		}
		solutionCache = c
		log.Println("Solution cache enabled (redis)")
	}

	router := api.NewRouter(store, solutionCache, solveCfg)

	// The write timeout leaves headroom above the solve budget so a
	// fully-used search window still produces a response.
	log.Printf("Server listening addr=:%s solve_budget=%s", port, solveCfg.TimeBudget)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      solveCfg.TimeBudget + 30*time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// openStore picks the solve-history store: Postgres when DATABASE_URL is set,
// a local SQLite file otherwise.
func openStore() (ports.SolveStore, func(), error) {
	if databaseURL := os.Getenv("DATABASE_URL"); strings.TrimSpace(databaseURL) != "" {
		pg, err := db.Open(databaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := repositories.InitSchema(pg); err != nil {
			pg.Close()
			return nil, nil, err
		}
		return repositories.NewSQLSolveRepository(pg), func() { pg.Close() }, nil
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	lite, err := openSqlite(dbPath)
	if err != nil {
		return nil, nil, err
	}
	if err := repositories.InitSchema(lite); err != nil {
		lite.Close()
		return nil, nil, err
	}
	return repositories.NewSqliteSolveRepository(lite), func() { lite.Close() }, nil
}

func openSqlite(dbPath string) (*sql.DB, error) {
	d, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	if err := d.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return d, nil
}
