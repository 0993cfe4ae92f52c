package ports

import (
	"commute-planner-service/internal/domain"
	"context"
)

// Travel profiles understood by road routers.
const (
	ProfileFoot    = "foot"
	ProfileDriving = "driving"
	ProfileBike    = "bike"
)

// Request for a road route between two points.
type RouteRequest struct {
	From         domain.Point
	To           domain.Point
	Profile      string
	Alternatives bool
}

// One route returned by a road router.
type RoadRoute struct {
	Path            domain.Polyline `json:"path"`
	DistanceMeters  float64         `json:"distance_meters"`
	DurationSeconds float64         `json:"duration_seconds"`
}

// Contract for an external road-routing service.
type RoadRouter interface {
	// Return one or more routes, primary first.
	Route(ctx context.Context, req RouteRequest) ([]RoadRoute, error)
}
