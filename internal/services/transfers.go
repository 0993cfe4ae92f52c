package services

import (
	"cmp"
	"commute-planner-service/internal/domain"
	"commute-planner-service/internal/platform/obs"
	"commute-planner-service/internal/ports"
	"context"
	"slices"
	"strings"

	"go.uber.org/zap"
)

// FindTransfers pairs routes boarded near the source with routes alighted
// near the destination and keeps the pairs whose geometries come within
// walking distance of each other, closest first.
//
// Each side is capped at cfg.SideLimit so the pairwise scan stays small.
// A failed distance lookup drops only that pair.
func FindTransfers(
	ctx context.Context,
	index ports.SpatialIndex,
	cfg Config,
	candidates []domain.CandidateRoute,
) []domain.TransferCandidate {
	var err error
	defer obs.Time(ctx, "planner.FindTransfers")(&err)

	if index == nil || cfg.TransferLimit == 0 {
		return nil
	}

	sources := sideCandidates(candidates, domain.RouteSourceSide, cfg.SideLimit,
		func(c domain.CandidateRoute) float64 { return c.DistanceFromSource })
	dests := sideCandidates(candidates, domain.RouteDestSide, cfg.SideLimit,
		func(c domain.CandidateRoute) float64 { return c.DistanceFromDest })

	log := obs.Logger(ctx)
	out := make([]domain.TransferCandidate, 0, len(sources)*len(dests))

	for _, s := range sources {
		for _, d := range dests {
			if s.Route.ID == d.Route.ID {
				continue
			}
			if err = ctx.Err(); err != nil {
				return rankTransfers(out, cfg.TransferLimit)
			}

			gap, gapErr := index.MinDistance(ctx, s.Route.ID, d.Route.ID)
			if gapErr != nil {
				log.Warn("transfer distance lookup failed",
					zap.String("source_route", s.Route.ID),
					zap.String("dest_route", d.Route.ID),
					zap.Error(gapErr),
				)
				continue
			}

			if gap.Meters >= cfg.MaxTransferDistance {
				continue
			}

			out = append(out, domain.TransferCandidate{
				SourceRoute:         s,
				DestRoute:           d,
				SourceTransferPoint: gap.PointOnA,
				DestTransferPoint:   gap.PointOnB,
				TransferDistance:    gap.Meters,
			})
		}
	}

	return rankTransfers(out, cfg.TransferLimit)
}

// sideCandidates returns the candidates close to one end (direct routes
// included), nearest first, capped at limit.
func sideCandidates(
	candidates []domain.CandidateRoute,
	side domain.RouteType,
	limit int,
	dist func(domain.CandidateRoute) float64,
) []domain.CandidateRoute {
	out := make([]domain.CandidateRoute, 0, len(candidates))
	for _, c := range candidates {
		if c.RouteType == side || c.RouteType == domain.RouteDirect {
			out = append(out, c)
		}
	}

	slices.SortStableFunc(out, func(a, b domain.CandidateRoute) int {
		if r := cmp.Compare(dist(a), dist(b)); r != 0 {
			return r
		}
		return strings.Compare(a.Route.ID, b.Route.ID)
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func rankTransfers(transfers []domain.TransferCandidate, limit int) []domain.TransferCandidate {
	slices.SortStableFunc(transfers, func(a, b domain.TransferCandidate) int {
		if r := cmp.Compare(a.TransferDistance, b.TransferDistance); r != 0 {
			return r
		}
		if r := strings.Compare(a.SourceRoute.Route.ID, b.SourceRoute.Route.ID); r != 0 {
			return r
		}
		return strings.Compare(a.DestRoute.Route.ID, b.DestRoute.Route.ID)
	})

	if len(transfers) > limit {
		transfers = transfers[:limit]
	}
	return transfers
}
