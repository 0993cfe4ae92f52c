package main

import (
	"commute-planner-service/internal/adapters/spatial"
	"commute-planner-service/internal/config"
	"commute-planner-service/internal/platform/db"
	"commute-planner-service/internal/platform/logger"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// dbtool creates the PostGIS schema and seeds transit routes from GeoJSON.
func main() {
	envErr := godotenv.Load()

	log, err := logger.New(config.Get("APP_ENV", "development"), "dbtool")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if envErr != nil {
		log.Info("no .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := db.Open(ctx, databaseURL, 2)
	if err != nil {
		log.Fatal("failed to open database", zap.Error(err))
	}
	defer pool.Close()

	log.Info("initializing database schema")
	if err := spatial.InitSchema(ctx, pool); err != nil {
		log.Fatal("schema initialization failed", zap.Error(err))
	}

	seedPath := config.Get("ROUTES_GEOJSON", "data/routes.geojson")
	routes, err := spatial.LoadRoutesFile(seedPath)
	if err != nil {
		log.Fatal("reading routes failed", zap.Error(err))
	}

	log.Info("seeding routes", zap.String("file", seedPath))
	n, err := spatial.SeedRoutes(ctx, pool, routes)
	if err != nil {
		log.Fatal("seeding failed", zap.Error(err))
	}
	log.Info("seeding complete", zap.Int("routes", n))
}
