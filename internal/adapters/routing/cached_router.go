package routing

import (
	"commute-planner-service/internal/platform/obs"
	"commute-planner-service/internal/ports"
	"context"
	"fmt"

	"go.uber.org/zap"
)

// CachedRouter serves repeated route requests from a RouteCache before
// calling the wrapped router. Cache failures are logged and bypassed.
type CachedRouter struct {
	next  ports.RoadRouter
	cache ports.RouteCache
}

func NewCachedRouter(next ports.RoadRouter, cache ports.RouteCache) *CachedRouter {
	return &CachedRouter{next: next, cache: cache}
}

func (c *CachedRouter) Route(ctx context.Context, req ports.RouteRequest) ([]ports.RoadRoute, error) {
	key := CacheKey(req)
	log := obs.Logger(ctx)

	routes, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		log.Warn("route cache read failed", zap.String("key", key), zap.Error(err))
	}
	if ok {
		return routes, nil
	}

	routes, err = c.next.Route(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Put(ctx, key, routes); err != nil {
		log.Warn("route cache write failed", zap.String("key", key), zap.Error(err))
	}
	return routes, nil
}

// CacheKey normalizes a request to about one meter of precision.
func CacheKey(req ports.RouteRequest) string {
	return fmt.Sprintf("%s|%.5f,%.5f|%.5f,%.5f|%t",
		req.Profile,
		req.From.Lat, req.From.Lon,
		req.To.Lat, req.To.Lon,
		req.Alternatives,
	)
}
