package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"ride-route-service/internal/adapters/repositories"
	"ride-route-service/internal/config"
	"ride-route-service/internal/platform/db"
)

// dbtool initializes the Postgres schema and, when SOLVE_RETENTION_DAYS is
// set, prunes solve records older than the retention window.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	pg, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pg.Close()

	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(pg); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	retentionDays := config.GetInt("SOLVE_RETENTION_DAYS", 0)
	if retentionDays <= 0 {
		return
	}

	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	repo := repositories.NewSQLSolveRepository(pg)

	n, err := repo.PruneBefore(context.Background(), cutoff)
	if err != nil {
		log.Fatalf("pruning failed: %v", err)
	}
	log.Printf("Pruned %d solve record(s) older than %d day(s).", n, retentionDays)
}
