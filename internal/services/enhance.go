package services

import (
	"commute-planner-service/internal/domain"
	"commute-planner-service/internal/geo"
	"commute-planner-service/internal/platform/obs"
	"commute-planner-service/internal/ports"
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/paulmach/orb"
	"go.uber.org/zap"
)

var errNoRoute = errors.New("router returned no usable route")

// Jitter is a seedable random source shared by concurrent leg enhancement.
type Jitter struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewJitter returns a deterministic source for the given seed.
func NewJitter(seed uint64) *Jitter {
	return &Jitter{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Float64 returns a value in [0, 1).
func (j *Jitter) Float64() float64 {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.rng.Float64()
}

// EnhanceLeg replaces the straight two-point path of a walking, driving or
// bike leg with a road-following one from the router. When the router fails,
// times out or the request is cancelled, the leg gets a synthetic path
// instead. Failures are never retried.
func (r *PathResolver) EnhanceLeg(ctx context.Context, leg domain.Leg) domain.Leg {
	if leg.Type == domain.LegTransit || len(leg.Path) != 2 {
		return leg
	}
	from, to := leg.Path[0], leg.Path[1]

	if r.router != nil {
		route, err := r.route(ctx, leg.Mode, from, to)
		if err == nil {
			leg.Path = route.Path
			leg.Distance = route.DistanceMeters / 1000
			if route.DurationSeconds > 0 {
				minutes := route.DurationSeconds / 60
				leg.Duration = &minutes
			}
			return leg
		}

		obs.Logger(ctx).Warn("road router failed, using synthetic path",
			zap.String("mode", leg.Mode),
			zap.Error(err),
		)
	}

	leg.Path = r.SyntheticPath(from, to)
	leg.Distance = geo.Length(leg.Path) / 1000
	minutes := leg.Distance / r.cfg.speedFor(leg.Mode) * 60
	leg.Duration = &minutes

	return leg
}

// route asks the router for a path and picks the one to use. Driving keeps the
// primary route; other profiles prefer the first alternative, which tends to
// avoid doubling back along the main road.
func (r *PathResolver) route(ctx context.Context, mode string, from, to orb.Point) (ports.RoadRoute, error) {
	profile := profileFor(mode)

	ctx, cancel := context.WithTimeout(ctx, r.cfg.RouterTimeout)
	defer cancel()

	routes, err := r.router.Route(ctx, ports.RouteRequest{
		From:         domain.PointFromOrb(from),
		To:           domain.PointFromOrb(to),
		Profile:      profile,
		Alternatives: profile != ports.ProfileDriving,
	})
	if err != nil {
		return ports.RoadRoute{}, fmt.Errorf("route %s: %w", profile, err)
	}
	if len(routes) == 0 {
		return ports.RoadRoute{}, fmt.Errorf("route %s: %w", profile, errNoRoute)
	}

	pick := routes[0]
	if profile != ports.ProfileDriving && len(routes) >= 2 {
		pick = routes[1]
	}

	if len(pick.Path) < 2 || !geo.Finite(pick.Path) {
		return ports.RoadRoute{}, fmt.Errorf("route %s: %w", profile, errNoRoute)
	}

	// Routers snap to the road network; keep the exact requested endpoints.
	path := make(domain.Polyline, 0, len(pick.Path)+2)
	if !geo.Coincident(from, pick.Path[0]) {
		path = append(path, from)
	}
	path = append(path, pick.Path...)
	if !geo.Coincident(to, pick.Path[len(pick.Path)-1]) {
		path = append(path, to)
	}
	pick.Path = path

	if pick.DistanceMeters <= 0 {
		pick.DistanceMeters = geo.Length(path)
	}

	return pick, nil
}

// SyntheticPath builds a nearly straight path from a to b. Interior points are
// pushed sideways by at most cfg.JitterPerKm meters per km of leg length and
// the result is smoothed, which keeps it inside that envelope.
func (r *PathResolver) SyntheticPath(from, to orb.Point) domain.Polyline {
	line := geo.InterpolateByStep(from, to, r.cfg.InterpolationStep)
	if len(line) <= 2 {
		return line
	}

	bound := r.cfg.JitterPerKm * geo.Distance(from, to) / 1000
	side := geo.Bearing(from, to) + 90
	for i := 1; i < len(line)-1; i++ {
		line[i] = geo.Offset(line[i], side, (r.jitter.Float64()*2-1)*bound)
	}

	return geo.Smooth(line, r.cfg.SmoothIterations)
}

func profileFor(mode string) string {
	switch mode {
	case domain.ModeDriving:
		return ports.ProfileDriving
	case domain.ModeBike:
		return ports.ProfileBike
	default:
		return ports.ProfileFoot
	}
}
