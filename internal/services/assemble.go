package services

import (
	"commute-planner-service/internal/domain"
	"commute-planner-service/internal/geo"
	"commute-planner-service/internal/platform/obs"
	"context"
	"sort"

	"github.com/paulmach/orb"
	"golang.org/x/sync/errgroup"
)

// Assemble turns direct candidates and transfers into priced commute options
// sorted by total distance. A walking option is always included, and driving
// plus an estimated jeepney ride are added whenever fewer than cfg.MinOptions
// options exist, so the result is never short even with zero candidates.
func (p *Planner) Assemble(
	ctx context.Context,
	source domain.Point,
	dest domain.Point,
	direct []domain.CandidateRoute,
	transfers []domain.TransferCandidate,
	discount bool,
) []domain.CommuteOption {
	var err error
	defer obs.Time(ctx, "planner.Assemble")(&err)

	src, dst := source.Orb(), dest.Orb()
	options := make([]domain.CommuteOption, 0, p.cfg.DirectOptions+p.cfg.TransferOptions+3)

	for _, c := range direct[:min(len(direct), p.cfg.DirectOptions)] {
		board := c.ClosestPointToSource.Orb()
		alight := c.ClosestPointToDest.Orb()
		options = append(options, domain.CommuteOption{
			Type: domain.OptionDirect,
			Legs: []domain.Leg{
				walkLeg("Walk to "+c.Route.Name, src, board),
				p.transitLeg(ctx, c, board, alight),
				walkLeg("Walk to destination", alight, dst),
			},
		})
	}

	for _, t := range transfers[:min(len(transfers), p.cfg.TransferOptions)] {
		board := t.SourceRoute.ClosestPointToSource.Orb()
		off := t.SourceTransferPoint.Orb()
		on := t.DestTransferPoint.Orb()
		alight := t.DestRoute.ClosestPointToDest.Orb()
		options = append(options, domain.CommuteOption{
			Type: domain.OptionTransfer,
			Legs: []domain.Leg{
				walkLeg("Walk to "+t.SourceRoute.Route.Name, src, board),
				p.transitLeg(ctx, t.SourceRoute, board, off),
				walkLeg("Transfer to "+t.DestRoute.Route.Name, off, on),
				p.transitLeg(ctx, t.DestRoute, on, alight),
				walkLeg("Walk to destination", alight, dst),
			},
		})
	}

	options = append(options, domain.CommuteOption{
		Type: domain.OptionWalking,
		Legs: []domain.Leg{walkLeg("Walk", src, dst)},
	})

	if len(options) < p.cfg.MinOptions {
		options = append(options,
			domain.CommuteOption{
				Type: domain.OptionDriving,
				Legs: []domain.Leg{{
					Type: domain.LegDriving,
					Mode: domain.ModeDriving,
					Name: "Drive",
					Path: twoPoint(src, dst),
				}},
			},
			domain.CommuteOption{
				Type: domain.OptionEstimated,
				Legs: []domain.Leg{{
					Type: domain.LegTransit,
					Mode: domain.ModeJeepney,
					Name: "Jeepney (estimated)",
					Path: geo.Dedupe(domain.Polyline{src, geo.Midpoint(src, dst), dst}),
				}},
			},
		)
	}

	p.enhanceAll(ctx, options)

	for i := range options {
		for j := range options[i].Legs {
			options[i].Legs[j] = p.finishLeg(options[i].Legs[j], discount)
		}
		options[i].Summarize()
	}

	sort.SliceStable(options, func(i, j int) bool {
		return options[i].TotalDistance < options[j].TotalDistance
	})

	return options
}

// enhanceAll resolves every leg concurrently on a bounded pool. Each task
// writes only its own leg slot, so ordering is preserved without locking.
func (p *Planner) enhanceAll(ctx context.Context, options []domain.CommuteOption) {
	var g errgroup.Group
	g.SetLimit(p.cfg.Workers)

	for i := range options {
		for j := range options[i].Legs {
			g.Go(func() error {
				options[i].Legs[j] = p.resolver.EnhanceLeg(ctx, options[i].Legs[j])
				return nil
			})
		}
	}

	_ = g.Wait()
}

// finishLeg enforces the gap limit, fills distance and duration, and prices
// the leg.
func (p *Planner) finishLeg(leg domain.Leg, discount bool) domain.Leg {
	leg.Path = geo.Densify(leg.Path, p.cfg.LargeJump, p.cfg.InterpolationStep)

	if leg.Type == domain.LegTransit || leg.Distance <= 0 {
		leg.Distance = geo.Length(leg.Path) / 1000
	}

	if leg.Duration == nil {
		minutes := leg.Distance / p.cfg.speedFor(leg.Mode) * 60
		leg.Duration = &minutes
	}

	leg.Fare = p.cfg.Fares.Fare(leg.Mode, leg.Distance, leg.SubType, discount)
	return leg
}

func (p *Planner) transitLeg(ctx context.Context, c domain.CandidateRoute, board, alight orb.Point) domain.Leg {
	return domain.Leg{
		Type:    domain.LegTransit,
		Mode:    c.Route.Mode,
		SubType: c.Route.SubType,
		Name:    c.Route.Name,
		Ref:     c.Route.Ref,
		Path:    p.resolver.ExtractSegment(ctx, c.Route.Geometry, board, alight),
	}
}

func walkLeg(name string, from, to orb.Point) domain.Leg {
	return domain.Leg{
		Type: domain.LegWalking,
		Mode: domain.ModeWalking,
		Name: name,
		Path: twoPoint(from, to),
	}
}

// twoPoint returns a single-point path when both ends coincide, which leaves
// the leg out of road routing.
func twoPoint(from, to orb.Point) domain.Polyline {
	if geo.Coincident(from, to) {
		return domain.Polyline{from}
	}
	return domain.Polyline{from, to}
}
