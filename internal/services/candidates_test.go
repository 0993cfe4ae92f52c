package services

import (
	"commute-planner-service/internal/adapters/spatial"
	"commute-planner-service/internal/domain"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindCandidatesOrdersAndClassifies(t *testing.T) {
	src, dst, routes := candidateFixture()
	index := spatial.NewMemoryIndex(routes)

	got, err := FindCandidates(context.Background(), index, testConfig(),
		domain.PointFromOrb(src), domain.PointFromOrb(dst))
	require.NoError(t, err)
	require.Len(t, got, 4)

	ids := make([]string, 0, len(got))
	types := make([]domain.RouteType, 0, len(got))
	for _, c := range got {
		ids = append(ids, c.Route.ID)
		types = append(types, c.RouteType)
	}

	assert.Equal(t, []string{"direct", "source", "dest", "far"}, ids)
	assert.Equal(t, []domain.RouteType{
		domain.RouteDirect,
		domain.RouteSourceSide,
		domain.RouteDestSide,
		domain.RouteUnrelated,
	}, types)

	assert.InDelta(t, 50, got[0].DistanceFromSource, 2)
	assert.InDelta(t, 50, got[0].DistanceFromDest, 2)
}

func TestFindCandidatesCapsResults(t *testing.T) {
	src, dst, routes := candidateFixture()
	cfg := testConfig()
	cfg.CandidateLimit = 2

	got, err := FindCandidates(context.Background(), spatial.NewMemoryIndex(routes), cfg,
		domain.PointFromOrb(src), domain.PointFromOrb(dst))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "direct", got[0].Route.ID)
	assert.Equal(t, "source", got[1].Route.ID)
}

func TestFindCandidatesIsIdempotent(t *testing.T) {
	src, dst, routes := candidateFixture()
	index := spatial.NewMemoryIndex(routes)
	s, d := domain.PointFromOrb(src), domain.PointFromOrb(dst)

	first, err := FindCandidates(context.Background(), index, testConfig(), s, d)
	require.NoError(t, err)
	second, err := FindCandidates(context.Background(), index, testConfig(), s, d)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestFindCandidatesEmptyStore(t *testing.T) {
	got, err := FindCandidates(context.Background(), spatial.NewMemoryIndex(nil), testConfig(),
		domain.PointFromOrb(origin), domain.PointFromOrb(move(origin, 0, 1000)))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFindCandidatesStoreUnavailable(t *testing.T) {
	_, err := FindCandidates(context.Background(), brokenIndex{}, testConfig(),
		domain.PointFromOrb(origin), domain.PointFromOrb(move(origin, 0, 1000)))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSpatialStoreUnavailable)
	assert.ErrorIs(t, err, errStoreDown)
}

func TestDirectCandidates(t *testing.T) {
	in := []domain.CandidateRoute{
		{RouteType: domain.RouteSourceSide},
		{RouteType: domain.RouteDirect, RouteProximity: domain.RouteProximity{Route: domain.RouteFeature{ID: "x"}}},
		{RouteType: domain.RouteUnrelated},
		{RouteType: domain.RouteDirect, RouteProximity: domain.RouteProximity{Route: domain.RouteFeature{ID: "y"}}},
	}

	got := DirectCandidates(in)
	require.Len(t, got, 2)
	assert.Equal(t, "x", got[0].Route.ID)
	assert.Equal(t, "y", got[1].Route.ID)
}
