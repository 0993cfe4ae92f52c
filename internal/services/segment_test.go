package services

import (
	"commute-planner-service/internal/domain"
	"commute-planner-service/internal/geo"
	"context"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// northLine returns 10 vertices 300 m apart heading north from origin.
func northLine() domain.Polyline {
	out := make(domain.Polyline, 0, 10)
	for i := 0; i < 10; i++ {
		out = append(out, move(origin, 0, float64(i)*300))
	}
	return out
}

func TestExtractSegmentSamePointIsSinglePoint(t *testing.T) {
	r := NewPathResolver(testConfig(), nil, NewJitter(1))
	p := move(origin, 0, 400)

	seg := r.ExtractSegment(context.Background(), northLine(), p, p)
	assert.Equal(t, domain.Polyline{p}, seg)
}

func TestExtractSegmentForward(t *testing.T) {
	r := NewPathResolver(testConfig(), nil, NewJitter(1))
	geom := northLine()
	start := move(geom[2], 90, 30)
	end := move(geom[7], 90, 30)

	seg := r.ExtractSegment(context.Background(), geom, start, end)
	require.GreaterOrEqual(t, len(seg), 7)
	assert.Equal(t, start, seg[0])
	assert.Equal(t, end, seg[len(seg)-1])
	assert.Equal(t, geom[2], seg[1])
	assert.True(t, geo.ValidPath(seg, testConfig().LargeJump))
	assert.InDelta(t, 1560, geo.Length(seg), 20)
}

func TestExtractSegmentBackward(t *testing.T) {
	r := NewPathResolver(testConfig(), nil, NewJitter(1))
	geom := northLine()
	start := move(geom[7], 270, 20)
	end := move(geom[2], 270, 20)

	seg := r.ExtractSegment(context.Background(), geom, start, end)
	assert.Equal(t, start, seg[0])
	assert.Equal(t, end, seg[len(seg)-1])
	for i := 2; i < len(seg)-1; i++ {
		assert.LessOrEqual(t, seg[i].Lat(), seg[i-1].Lat(), "point %d goes north", i)
	}
}

func TestExtractSegmentRepairsLargeJumps(t *testing.T) {
	cfg := testConfig()
	r := NewPathResolver(cfg, nil, NewJitter(1))

	a := origin
	b := move(a, 0, 200)
	c := move(b, 0, 4_000)
	d := move(c, 0, 200)
	geom := domain.Polyline{a, b, c, d}

	seg := r.ExtractSegment(context.Background(), geom, a, d)
	assert.True(t, geo.ValidPath(seg, cfg.LargeJump))
	assert.LessOrEqual(t, geo.MaxGap(seg), cfg.InterpolationStep+1)
	assert.Equal(t, a, seg[0])
	assert.Equal(t, d, seg[len(seg)-1])
}

func TestExtractSegmentSplicesDistantBoundary(t *testing.T) {
	cfg := testConfig()
	r := NewPathResolver(cfg, nil, NewJitter(1))
	geom := northLine()
	start := move(geom[1], 90, 700)

	seg := r.ExtractSegment(context.Background(), geom, start, geom[6])
	require.Greater(t, len(seg), 3)
	assert.Equal(t, start, seg[0])
	assert.LessOrEqual(t, geo.Distance(seg[0], seg[1]), cfg.BoundarySplice+1)
	assert.True(t, geo.ValidPath(seg, cfg.LargeJump))
}

func TestExtractSegmentDegenerateGeometryFallsBack(t *testing.T) {
	cfg := testConfig()
	r := NewPathResolver(cfg, nil, NewJitter(1))
	start, end := origin, move(origin, 45, 2_500)

	for name, geom := range map[string]domain.Polyline{
		"empty":      nil,
		"one vertex": {origin},
		"non-finite": {origin, orb.Point{181, 0}},
	} {
		t.Run(name, func(t *testing.T) {
			seg := r.ExtractSegment(context.Background(), geom, start, end)
			require.GreaterOrEqual(t, len(seg), 2)
			assert.Equal(t, start, seg[0])
			assert.Equal(t, end, seg[len(seg)-1])
			assert.True(t, geo.ValidPath(seg, cfg.LargeJump))
		})
	}
}
