package services

import (
	"commute-planner-service/internal/adapters/spatial"
	"commute-planner-service/internal/domain"
	"commute-planner-service/internal/ports"
	"context"
	"errors"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidatesFor(t *testing.T, index ports.SpatialIndex, fixture func() (orb.Point, orb.Point, []domain.RouteFeature)) []domain.CandidateRoute {
	t.Helper()
	src, dst, _ := fixture()
	got, err := FindCandidates(context.Background(), index, testConfig(),
		domain.PointFromOrb(src), domain.PointFromOrb(dst))
	require.NoError(t, err)
	return got
}

func TestFindTransfersPairsNearbyRoutes(t *testing.T) {
	_, _, routes := transferFixture()
	index := spatial.NewMemoryIndex(routes)
	cands := candidatesFor(t, index, transferFixture)

	got := FindTransfers(context.Background(), index, testConfig(), cands)
	require.Len(t, got, 1)

	tr := got[0]
	assert.Equal(t, "a", tr.SourceRoute.Route.ID)
	assert.Equal(t, "b", tr.DestRoute.Route.ID)
	assert.InDelta(t, 50, tr.TransferDistance, 2)
	assert.Less(t, tr.SourceTransferPoint.Lat, tr.DestTransferPoint.Lat)
}

func TestFindTransfersIncludesDirectRoutesOnBothSides(t *testing.T) {
	_, _, routes := candidateFixture()
	index := spatial.NewMemoryIndex(routes)
	cands := candidatesFor(t, index, candidateFixture)

	got := FindTransfers(context.Background(), index, testConfig(), cands)
	require.Len(t, got, 2)

	assert.Equal(t, "direct", got[0].SourceRoute.Route.ID)
	assert.Equal(t, "dest", got[0].DestRoute.Route.ID)
	assert.InDelta(t, 70, got[0].TransferDistance, 2)

	assert.Equal(t, "source", got[1].SourceRoute.Route.ID)
	assert.Equal(t, "direct", got[1].DestRoute.Route.ID)
	assert.InDelta(t, 150, got[1].TransferDistance, 2)

	for _, tr := range got {
		assert.NotEqual(t, tr.SourceRoute.Route.ID, tr.DestRoute.Route.ID)
		assert.Less(t, tr.TransferDistance, testConfig().MaxTransferDistance)
	}
}

func TestFindTransfersRespectsLimit(t *testing.T) {
	_, _, routes := candidateFixture()
	index := spatial.NewMemoryIndex(routes)
	cands := candidatesFor(t, index, candidateFixture)

	cfg := testConfig()
	cfg.TransferLimit = 1

	got := FindTransfers(context.Background(), index, cfg, cands)
	require.Len(t, got, 1)
	assert.Equal(t, "dest", got[0].DestRoute.Route.ID)
}

// flakyIndex fails the distance lookup for one route pair.
type flakyIndex struct {
	*spatial.MemoryIndex
	failA, failB string
}

func (f flakyIndex) MinDistance(ctx context.Context, a, b string) (ports.RouteGap, error) {
	if a == f.failA && b == f.failB {
		return ports.RouteGap{}, errors.New("timeout")
	}
	return f.MemoryIndex.MinDistance(ctx, a, b)
}

func TestFindTransfersSkipsFailedPairs(t *testing.T) {
	_, _, routes := candidateFixture()
	index := flakyIndex{MemoryIndex: spatial.NewMemoryIndex(routes), failA: "direct", failB: "dest"}
	cands := candidatesFor(t, index, candidateFixture)

	got := FindTransfers(context.Background(), index, testConfig(), cands)
	require.Len(t, got, 1)
	assert.Equal(t, "source", got[0].SourceRoute.Route.ID)
}

func TestFindTransfersNoCandidates(t *testing.T) {
	got := FindTransfers(context.Background(), spatial.NewMemoryIndex(nil), testConfig(), nil)
	assert.Empty(t, got)
}
