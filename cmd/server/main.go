package main

import (
	"commute-planner-service/internal/adapters/cache"
	"commute-planner-service/internal/adapters/routing"
	"commute-planner-service/internal/adapters/spatial"
	"commute-planner-service/internal/api"
	"commute-planner-service/internal/config"
	"commute-planner-service/internal/platform/db"
	"commute-planner-service/internal/platform/logger"
	"commute-planner-service/internal/ports"
	"commute-planner-service/internal/services"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type spatialStore interface {
	ports.SpatialIndex
	Ping(ctx context.Context) error
}

// main is the application composition root.
// It wires concrete adapters (PostGIS or GeoJSON routes, OSRM/ORS, Redis/LRU)
// behind ports and starts the HTTP server.
func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.AppEnv, "commute-planner")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	if envErr != nil {
		log.Info("no .env file found (using environment variables)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to open spatial store", zap.Error(err))
	}
	defer closeStore()

	router, closeRouter, err := openRouter(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to set up road router", zap.Error(err))
	}
	defer closeRouter()

	planner := services.NewPlanner(cfg.Planner, store, router, services.NewJitter(uint64(time.Now().UnixNano())))

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Write timeout leaves room for the planner's own request deadline.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.NewRouter(planner, store, log),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.Planner.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}
	log.Info("server stopped")
}

func openStore(ctx context.Context, cfg config.Config, log *zap.Logger) (spatialStore, func(), error) {
	if cfg.DatabaseURL != "" {
		pool, err := db.Open(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
		if err != nil {
			return nil, nil, err
		}
		log.Info("using PostGIS route store")
		return spatial.NewPostGISIndex(pool), pool.Close, nil
	}

	routes, err := spatial.LoadRoutesFile(cfg.RoutesGeoJSON)
	if err != nil {
		return nil, nil, err
	}
	log.Info("using in-memory route store",
		zap.String("file", cfg.RoutesGeoJSON),
		zap.Int("routes", len(routes)),
	)
	return spatial.NewMemoryIndex(routes), func() {}, nil
}

func openRouter(ctx context.Context, cfg config.Config, log *zap.Logger) (ports.RoadRouter, func(), error) {
	client := &http.Client{Timeout: cfg.Planner.RouterTimeout}

	var (
		next ports.RoadRouter
		err  error
	)
	switch cfg.RouterProvider {
	case config.RouterNone:
		log.Info("road router disabled, legs use synthetic paths")
		return nil, func() {}, nil
	case config.RouterORS:
		next, err = routing.NewORSRouter(cfg.ORSURL, cfg.ORSAPIKey, client)
	default:
		next, err = routing.NewOSRMRouter(cfg.OSRMURL, client)
	}
	if err != nil {
		return nil, nil, err
	}

	if cfg.RedisURL != "" {
		rdb, err := cache.OpenRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		log.Info("road routes cached in redis", zap.Duration("ttl", cfg.RouteCacheTTL))
		return routing.NewCachedRouter(next, cache.NewRedisRouteCache(rdb, cfg.RouteCacheTTL)),
			func() { _ = rdb.Close() }, nil
	}

	log.Info("road routes cached in memory", zap.Int("size", cfg.RouteCacheSize))
	return routing.NewCachedRouter(next, cache.NewLRURouteCache(cfg.RouteCacheSize, cfg.RouteCacheTTL)), func() {}, nil
}
