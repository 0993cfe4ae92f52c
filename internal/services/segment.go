package services

import (
	"commute-planner-service/internal/domain"
	"commute-planner-service/internal/geo"
	"commute-planner-service/internal/platform/obs"
	"commute-planner-service/internal/ports"
	"context"
	"errors"
	"time"

	"github.com/paulmach/orb"
	"go.uber.org/zap"
)

var errDegenerateGeometry = errors.New("degenerate route geometry")

// PathResolver turns candidate routes and endpoint pairs into leg geometry.
// It is safe for concurrent use.
type PathResolver struct {
	cfg    Config
	router ports.RoadRouter
	jitter *Jitter
}

// NewPathResolver builds a resolver. A nil router means every non-transit leg
// gets synthetic geometry; a nil jitter is seeded from the clock.
func NewPathResolver(cfg Config, router ports.RoadRouter, jitter *Jitter) *PathResolver {
	if jitter == nil {
		jitter = NewJitter(uint64(time.Now().UnixNano()))
	}
	return &PathResolver{cfg: cfg, router: router, jitter: jitter}
}

// ExtractSegment returns the part of a route's geometry ridden between start
// and end. The result begins at start, ends at end and has no gap larger than
// cfg.LargeJump. Unusable geometry falls back to a straight interpolated line.
func (r *PathResolver) ExtractSegment(ctx context.Context, geometry domain.Polyline, start, end orb.Point) domain.Polyline {
	seg, err := r.extractSegment(geometry, start, end)
	if err != nil {
		obs.Logger(ctx).Warn("segment extraction fell back to straight line",
			zap.Int("vertices", len(geometry)),
			zap.Error(err),
		)
		return geo.InterpolateByStep(start, end, r.cfg.InterpolationStep)
	}
	return seg
}

func (r *PathResolver) extractSegment(geometry domain.Polyline, start, end orb.Point) (domain.Polyline, error) {
	if len(geometry) < 2 {
		return nil, errDegenerateGeometry
	}
	if !geo.Finite(geometry) || !geo.Finite(orb.LineString{start, end}) {
		return nil, errDegenerateGeometry
	}

	if geo.Coincident(start, end) {
		return domain.Polyline{start}, nil
	}

	si, startGap := geo.NearestVertex(geometry, start)
	ei, endGap := geo.NearestVertex(geometry, end)

	var body orb.LineString
	if si <= ei {
		body = append(body, geometry[si:ei+1]...)
	} else {
		body = geo.Reverse(geometry[ei : si+1])
	}

	out := make(domain.Polyline, 0, len(body)+2)
	out = append(out, start)
	out = r.splice(out, start, body[0], startGap)

	for i, v := range body {
		if i > 0 {
			out = r.bridge(out, body[i-1], v, r.cfg.LargeJump)
		}
		out = append(out, v)
	}

	out = r.splice(out, body[len(body)-1], end, endGap)
	out = append(out, end)

	// A jump can survive across splice boundaries, so check the whole result again.
	return geo.Densify(geo.Dedupe(out), r.cfg.LargeJump, r.cfg.InterpolationStep), nil
}

// splice bridges a requested boundary point and its nearest vertex when they
// are more than cfg.BoundarySplice apart.
func (r *PathResolver) splice(out domain.Polyline, from, to orb.Point, gap float64) domain.Polyline {
	if gap <= r.cfg.BoundarySplice {
		return out
	}
	return r.bridge(out, from, to, r.cfg.BoundarySplice)
}

// bridge appends the interior points of a straight line from a to b when
// they are more than limit meters apart.
func (r *PathResolver) bridge(out domain.Polyline, a, b orb.Point, limit float64) domain.Polyline {
	if geo.Distance(a, b) <= limit {
		return out
	}

	step := min(r.cfg.InterpolationStep, limit)
	if step <= 0 {
		step = r.cfg.InterpolationStep
	}
	fill := geo.InterpolateByStep(a, b, step)
	return append(out, fill[1:len(fill)-1]...)
}
