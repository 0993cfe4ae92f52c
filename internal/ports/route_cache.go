package ports

import "context"

// Storage for road router responses keyed by a normalized request key.
type RouteCache interface {
	// Return cached routes; ok is false on a miss.
	Get(ctx context.Context, key string) (routes []RoadRoute, ok bool, err error)
	Put(ctx context.Context, key string, routes []RoadRoute) error
}
