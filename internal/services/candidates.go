package services

import (
	"commute-planner-service/internal/domain"
	"commute-planner-service/internal/platform/obs"
	"commute-planner-service/internal/ports"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// FindCandidates returns the routes nearest to the source/destination pair,
// ordered by weighted proximity (source counts double by default since
// boarding distance matters more) and classified by which ends are close.
//
// An empty store yields an empty slice. A store failure is reported as
// domain.ErrSpatialStoreUnavailable.
func FindCandidates(
	ctx context.Context,
	index ports.SpatialIndex,
	cfg Config,
	source domain.Point,
	dest domain.Point,
) (_ []domain.CandidateRoute, err error) {
	defer obs.Time(ctx, "planner.FindCandidates")(&err)

	if index == nil {
		return nil, fmt.Errorf("find candidates: %w", domain.ErrSpatialStoreUnavailable)
	}

	found, err := index.Nearest(ctx, ports.NearestQuery{
		Source:       source,
		Dest:         dest,
		SourceWeight: cfg.SourceWeight,
		DestWeight:   cfg.DestWeight,
		Limit:        cfg.CandidateLimit,
	})
	if err != nil {
		if errors.Is(err, domain.ErrSpatialStoreUnavailable) {
			return nil, fmt.Errorf("find candidates: %w", err)
		}
		return nil, fmt.Errorf("find candidates: %w: %w", domain.ErrSpatialStoreUnavailable, err)
	}

	score := func(p domain.RouteProximity) float64 {
		return cfg.SourceWeight*p.DistanceFromSource + cfg.DestWeight*p.DistanceFromDest
	}

	// Re-sort so ordering does not depend on the backing store.
	slices.SortStableFunc(found, func(a, b domain.RouteProximity) int {
		sa, sb := score(a), score(b)
		if sa < sb {
			return -1
		}
		if sa > sb {
			return 1
		}
		return strings.Compare(a.Route.ID, b.Route.ID)
	})

	if len(found) > cfg.CandidateLimit {
		found = found[:cfg.CandidateLimit]
	}

	out := make([]domain.CandidateRoute, 0, len(found))
	for _, p := range found {
		out = append(out, domain.CandidateRoute{
			RouteProximity: p,
			RouteType:      classify(p, cfg.DirectRadius),
		})
	}

	return out, nil
}

func classify(p domain.RouteProximity, radius float64) domain.RouteType {
	nearSource := p.DistanceFromSource < radius
	nearDest := p.DistanceFromDest < radius

	switch {
	case nearSource && nearDest:
		return domain.RouteDirect
	case nearSource:
		return domain.RouteSourceSide
	case nearDest:
		return domain.RouteDestSide
	default:
		return domain.RouteUnrelated
	}
}

// DirectCandidates keeps the candidates that serve both ends, in rank order.
func DirectCandidates(candidates []domain.CandidateRoute) []domain.CandidateRoute {
	out := make([]domain.CandidateRoute, 0, len(candidates))
	for _, c := range candidates {
		if c.RouteType == domain.RouteDirect {
			out = append(out, c)
		}
	}
	return out
}
