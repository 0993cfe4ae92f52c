package spatial

import (
	"cmp"
	"commute-planner-service/internal/domain"
	"commute-planner-service/internal/geo"
	"commute-planner-service/internal/platform/obs"
	"commute-planner-service/internal/ports"
	"context"
	"fmt"
	"slices"
	"strings"
)

// MemoryIndex is an in-process spatial index over route geometries.
// Routes are read-only after construction, so it is safe for concurrent use.
type MemoryIndex struct {
	routes []domain.RouteFeature
	byID   map[string]int
}

func NewMemoryIndex(routes []domain.RouteFeature) *MemoryIndex {
	byID := make(map[string]int, len(routes))
	for i, r := range routes {
		byID[r.ID] = i
	}
	return &MemoryIndex{routes: routes, byID: byID}
}

// Routes returns the indexed routes.
func (m *MemoryIndex) Routes() []domain.RouteFeature {
	return m.routes
}

func (m *MemoryIndex) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (m *MemoryIndex) Nearest(ctx context.Context, q ports.NearestQuery) (_ []domain.RouteProximity, err error) {
	defer obs.Time(ctx, "spatial.memory.Nearest")(&err)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src, dst := q.Source.Orb(), q.Dest.Orb()
	out := make([]domain.RouteProximity, 0, len(m.routes))

	for _, r := range m.routes {
		cs, ds, ok := geo.ClosestPointOnLine(r.Geometry, src)
		if !ok {
			continue
		}
		cd, dd, _ := geo.ClosestPointOnLine(r.Geometry, dst)

		out = append(out, domain.RouteProximity{
			Route:                r,
			DistanceFromSource:   ds,
			DistanceFromDest:     dd,
			ClosestPointToSource: domain.PointFromOrb(cs),
			ClosestPointToDest:   domain.PointFromOrb(cd),
		})
	}

	score := func(p domain.RouteProximity) float64 {
		return q.SourceWeight*p.DistanceFromSource + q.DestWeight*p.DistanceFromDest
	}
	slices.SortFunc(out, func(a, b domain.RouteProximity) int {
		if r := cmp.Compare(score(a), score(b)); r != 0 {
			return r
		}
		return strings.Compare(a.Route.ID, b.Route.ID)
	})

	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (m *MemoryIndex) MinDistance(ctx context.Context, routeA, routeB string) (_ ports.RouteGap, err error) {
	defer obs.Time(ctx, "spatial.memory.MinDistance")(&err)

	a, ok := m.byID[routeA]
	if !ok {
		return ports.RouteGap{}, fmt.Errorf("min distance: unknown route %q", routeA)
	}
	b, ok := m.byID[routeB]
	if !ok {
		return ports.RouteGap{}, fmt.Errorf("min distance: unknown route %q", routeB)
	}

	pa, pb, d, ok := geo.MinDistanceBetween(m.routes[a].Geometry, m.routes[b].Geometry)
	if !ok {
		return ports.RouteGap{}, fmt.Errorf("min distance: %q and %q have no geometry", routeA, routeB)
	}

	return ports.RouteGap{
		PointOnA: domain.PointFromOrb(pa),
		PointOnB: domain.PointFromOrb(pb),
		Meters:   d,
	}, nil
}
