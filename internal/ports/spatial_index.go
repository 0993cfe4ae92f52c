package ports

import (
	"commute-planner-service/internal/domain"
	"context"
)

// Port: a queryable collection of transit route geometries.
// Implementations may be a spatial database or an in-process index.
type SpatialIndex interface {
	// Return up to limit routes ordered by
	// sourceWeight*distance-to-source + destWeight*distance-to-dest (meters),
	// ties broken by route ID, each annotated with its closest points.
	Nearest(ctx context.Context, q NearestQuery) ([]domain.RouteProximity, error)
	// Return the closest pair of points between two route geometries.
	MinDistance(ctx context.Context, routeA, routeB string) (RouteGap, error)
}

// Inputs of a nearest-route query.
type NearestQuery struct {
	Source       domain.Point
	Dest         domain.Point
	SourceWeight float64
	DestWeight   float64
	Limit        int
}

// Closest approach between two route geometries.
type RouteGap struct {
	PointOnA domain.Point
	PointOnB domain.Point
	Meters   float64
}
