package cache

import (
	"commute-planner-service/internal/ports"
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/bluele/gcache"
)

// LRURouteCache keeps road router responses in process memory with LRU
// eviction and a per-entry TTL. Used when no Redis is configured.
type LRURouteCache struct {
	c gcache.Cache
}

func NewLRURouteCache(size int, ttl time.Duration) *LRURouteCache {
	if size <= 0 {
		size = 10_000
	}

	b := gcache.New(size).LRU()
	if ttl > 0 {
		b = b.Expiration(ttl)
	}
	return &LRURouteCache{c: b.Build()}
}

func (l *LRURouteCache) Get(_ context.Context, key string) ([]ports.RoadRoute, bool, error) {
	v, err := l.c.Get(key)
	if errors.Is(err, gcache.KeyNotFoundError) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("route cache get %q: %w", key, err)
	}

	routes, ok := v.([]ports.RoadRoute)
	if !ok {
		return nil, false, fmt.Errorf("route cache get %q: unexpected value %T", key, v)
	}
	return slices.Clone(routes), true, nil
}

func (l *LRURouteCache) Put(_ context.Context, key string, routes []ports.RoadRoute) error {
	if err := l.c.Set(key, slices.Clone(routes)); err != nil {
		return fmt.Errorf("route cache set %q: %w", key, err)
	}
	return nil
}

// Len reports the number of live entries.
func (l *LRURouteCache) Len() int {
	return l.c.Len(true)
}
