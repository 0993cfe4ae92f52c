package cache

import (
	"commute-planner-service/internal/platform/obs"
	"commute-planner-service/internal/ports"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const routeKeyPrefix = "route:"

// RedisRouteCache stores road router responses in Redis as JSON with a TTL,
// so every service instance shares them.
type RedisRouteCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisRouteCache(client *redis.Client, ttl time.Duration) *RedisRouteCache {
	return &RedisRouteCache{client: client, ttl: ttl}
}

// OpenRedis parses a redis:// URL and verifies the connection.
func OpenRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("open redis: parse url: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("open redis: ping: %w", err)
	}
	return client, nil
}

func (r *RedisRouteCache) Get(ctx context.Context, key string) (_ []ports.RoadRoute, _ bool, err error) {
	defer obs.Time(ctx, "route.cache.redis.Get")(&err)

	if r.client == nil {
		return nil, false, errors.New("route cache: redis client is nil")
	}

	b, err := r.client.Get(ctx, routeKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("route cache get %q: %w", key, err)
	}

	var routes []ports.RoadRoute
	if err := json.Unmarshal(b, &routes); err != nil {
		return nil, false, fmt.Errorf("route cache decode %q: %w", key, err)
	}
	return routes, true, nil
}

func (r *RedisRouteCache) Put(ctx context.Context, key string, routes []ports.RoadRoute) (err error) {
	defer obs.Time(ctx, "route.cache.redis.Put")(&err)

	if r.client == nil {
		return errors.New("route cache: redis client is nil")
	}

	b, err := json.Marshal(routes)
	if err != nil {
		return fmt.Errorf("route cache encode %q: %w", key, err)
	}

	if err := r.client.Set(ctx, routeKeyPrefix+key, b, r.ttl).Err(); err != nil {
		return fmt.Errorf("route cache set %q: %w", key, err)
	}
	return nil
}
