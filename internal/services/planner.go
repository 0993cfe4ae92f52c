package services

import (
	"commute-planner-service/internal/domain"
	"commute-planner-service/internal/geo"
	"commute-planner-service/internal/platform/obs"
	"commute-planner-service/internal/ports"
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Planner answers commute requests against a spatial store and an optional
// road router. It holds no per-request state.
type Planner struct {
	cfg      Config
	index    ports.SpatialIndex
	resolver *PathResolver
}

type PlanRequest struct {
	Source   domain.Point
	Dest     domain.Point
	Discount bool
}

type PlanResult struct {
	Source  domain.Point
	Dest    domain.Point
	Options []domain.CommuteOption
}

func NewPlanner(cfg Config, index ports.SpatialIndex, router ports.RoadRouter, jitter *Jitter) *Planner {
	return &Planner{
		cfg:      cfg,
		index:    index,
		resolver: NewPathResolver(cfg, router, jitter),
	}
}

// Plan runs the full pipeline: candidate search, transfer pairing, option
// assembly with concurrent leg resolution, pricing and ranking.
//
// Invalid coordinates fail with domain.ErrInvalidCoordinates before any store
// query. A store failure fails with domain.ErrSpatialStoreUnavailable. Router
// trouble never fails a plan.
func (p *Planner) Plan(ctx context.Context, req PlanRequest) (_ *PlanResult, err error) {
	defer obs.Time(ctx, "planner.Plan")(&err)

	if !geo.ValidCoordinate(req.Source.Lat, req.Source.Lon) {
		return nil, fmt.Errorf("plan: source %v: %w", req.Source, domain.ErrInvalidCoordinates)
	}
	if !geo.ValidCoordinate(req.Dest.Lat, req.Dest.Lon) {
		return nil, fmt.Errorf("plan: destination %v: %w", req.Dest, domain.ErrInvalidCoordinates)
	}

	ctx, cancel := context.WithTimeout(ctx, p.cfg.RequestTimeout)
	defer cancel()

	candidates, err := FindCandidates(ctx, p.index, p.cfg, req.Source, req.Dest)
	if err != nil {
		return nil, fmt.Errorf("plan: %w", err)
	}

	transfers := FindTransfers(ctx, p.index, p.cfg, candidates)
	direct := DirectCandidates(candidates)

	obs.Logger(ctx).Info("commute candidates",
		zap.Int("candidates", len(candidates)),
		zap.Int("direct", len(direct)),
		zap.Int("transfers", len(transfers)),
	)

	return &PlanResult{
		Source:  req.Source,
		Dest:    req.Dest,
		Options: p.Assemble(ctx, req.Source, req.Dest, direct, transfers, req.Discount),
	}, nil
}
