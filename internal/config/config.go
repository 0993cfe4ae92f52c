package config

import (
	"commute-planner-service/internal/services"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Road router providers.
const (
	RouterOSRM = "osrm"
	RouterORS  = "ors"
	RouterNone = "none"
)

// Config is the process configuration read from the environment.
type Config struct {
	Port   string
	AppEnv string

	// DatabaseURL selects the PostGIS store; without it routes are loaded
	// from RoutesGeoJSON into memory.
	DatabaseURL   string
	DBMaxConns    int32
	RoutesGeoJSON string

	RouterProvider string
	OSRMURL        string
	ORSURL         string
	ORSAPIKey      string

	RedisURL       string
	RouteCacheSize int
	RouteCacheTTL  time.Duration

	Planner services.Config
}

// Load reads the environment and the optional planner YAML file.
func Load() (Config, error) {
	cfg := Config{
		Port:           Get("PORT", "8080"),
		AppEnv:         Get("APP_ENV", "production"),
		DatabaseURL:    strings.TrimSpace(os.Getenv("DATABASE_URL")),
		RoutesGeoJSON:  Get("ROUTES_GEOJSON", "data/routes.geojson"),
		RouterProvider: strings.ToLower(Get("ROUTER_PROVIDER", RouterOSRM)),
		OSRMURL:        Get("OSRM_URL", "https://router.project-osrm.org"),
		ORSURL:         Get("ORS_URL", "https://api.openrouteservice.org"),
		ORSAPIKey:      strings.TrimSpace(os.Getenv("ORS_API_KEY")),
		RedisURL:       strings.TrimSpace(os.Getenv("REDIS_URL")),
	}

	maxConns, err := strconv.ParseInt(Get("DB_MAX_CONNS", "10"), 10, 32)
	if err != nil || maxConns <= 0 {
		return Config{}, fmt.Errorf("load config: DB_MAX_CONNS must be a positive integer")
	}
	cfg.DBMaxConns = int32(maxConns)

	cfg.RouteCacheSize, err = strconv.Atoi(Get("ROUTE_CACHE_SIZE", "10000"))
	if err != nil || cfg.RouteCacheSize <= 0 {
		return Config{}, fmt.Errorf("load config: ROUTE_CACHE_SIZE must be a positive integer")
	}

	cfg.RouteCacheTTL, err = time.ParseDuration(Get("ROUTE_CACHE_TTL", "24h"))
	if err != nil {
		return Config{}, fmt.Errorf("load config: ROUTE_CACHE_TTL: %w", err)
	}

	switch cfg.RouterProvider {
	case RouterOSRM, RouterNone:
	case RouterORS:
		if cfg.ORSAPIKey == "" {
			return Config{}, errors.New("load config: ORS_API_KEY is required when ROUTER_PROVIDER=ors")
		}
	default:
		return Config{}, fmt.Errorf("load config: unknown ROUTER_PROVIDER %q", cfg.RouterProvider)
	}

	cfg.Planner, err = LoadPlanner(os.Getenv("PLANNER_CONFIG"))
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	return cfg, nil
}

// LoadPlanner overlays a YAML file on the planner defaults and validates the
// result. An empty path yields the defaults.
func LoadPlanner(path string) (services.Config, error) {
	cfg := services.DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return services.Config{}, fmt.Errorf("planner config: read %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return services.Config{}, fmt.Errorf("planner config: decode %q: %w", path, err)
		}
	}

	if err := validator.New().Struct(cfg); err != nil {
		return services.Config{}, fmt.Errorf("planner config: %w", err)
	}
	return cfg, nil
}

// Get returns the environment value for key, or fallback when unset.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
