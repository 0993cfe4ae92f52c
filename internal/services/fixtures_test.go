package services

import (
	"commute-planner-service/internal/domain"
	"commute-planner-service/internal/geo"
	"commute-planner-service/internal/ports"
	"context"
	"errors"
	"time"

	"github.com/paulmach/orb"
)

// Quiapo, Manila.
var origin = orb.Point{120.9842, 14.5995}

func move(p orb.Point, bearing, meters float64) orb.Point {
	return geo.Offset(p, bearing, meters)
}

func line(a, b orb.Point) domain.Polyline {
	return geo.Interpolate(a, b, 12)
}

func route(id, mode string, geom domain.Polyline) domain.RouteFeature {
	return domain.RouteFeature{ID: id, Name: "Route " + id, Mode: mode, Geometry: geom}
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.RouterTimeout = time.Second
	cfg.RequestTimeout = 5 * time.Second
	return cfg
}

// candidateFixture lays out four routes around a 1.5 km trip due north:
// one passing 50 m east of both ends, one leaving 100 m west of the source,
// one leaving 120 m east of the destination and one 5 km away.
func candidateFixture() (src, dst orb.Point, routes []domain.RouteFeature) {
	src = origin
	dst = move(src, 0, 1500)

	east := move(src, 90, 50)
	eastDst := move(dst, 90, 50)
	far := move(src, 90, 5000)

	routes = []domain.RouteFeature{
		route("far", domain.ModeJeepney, line(move(far, 180, 1000), move(far, 0, 2500))),
		route("dest", domain.ModeBus, line(move(dst, 90, 120), move(dst, 90, 3120))),
		route("direct", domain.ModeJeepney, line(move(east, 180, 1000), move(eastDst, 0, 1000))),
		route("source", domain.ModeJeepney, line(move(src, 270, 100), move(src, 270, 3100))),
	}
	return src, dst, routes
}

// transferFixture is a 3 km trip with no direct route. Route "a" runs north
// from the source and ends 50 m short of route "b", which reaches the
// destination. Route "c" also reaches the destination but never comes near "a".
func transferFixture() (src, dst orb.Point, routes []domain.RouteFeature) {
	src = origin
	dst = move(src, 0, 3000)

	aEnd := move(move(src, 0, 1500), 90, 80)
	bStart := move(move(src, 0, 1550), 90, 80)

	routes = []domain.RouteFeature{
		route("a", domain.ModeJeepney, line(move(src, 90, 80), aEnd)),
		route("b", domain.ModeJeepney, line(bStart, move(dst, 90, 80))),
		route("c", domain.ModeJeepney, line(move(move(src, 0, 1600), 270, 1000), move(dst, 270, 60))),
	}
	return src, dst, routes
}

type brokenIndex struct{}

var errStoreDown = errors.New("connection refused")

func (brokenIndex) Nearest(context.Context, ports.NearestQuery) ([]domain.RouteProximity, error) {
	return nil, errStoreDown
}

func (brokenIndex) MinDistance(context.Context, string, string) (ports.RouteGap, error) {
	return ports.RouteGap{}, errStoreDown
}
