package geo

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistanceOneDegreeLatitude(t *testing.T) {
	d := Distance(orb.Point{0, 0}, orb.Point{0, 1})
	assert.InDelta(t, 111_319, d, 200)
}

func TestValidCoordinate(t *testing.T) {
	assert.True(t, ValidCoordinate(14.5995, 120.9842))
	assert.True(t, ValidCoordinate(-90, 180))
	assert.False(t, ValidCoordinate(91, 0))
	assert.False(t, ValidCoordinate(0, -181))
	assert.False(t, ValidCoordinate(math.NaN(), 0))
	assert.False(t, ValidCoordinate(0, math.Inf(1)))
}

func TestInterpolateKeepsEndpoints(t *testing.T) {
	a, b := orb.Point{120.98, 14.59}, orb.Point{121.00, 14.61}

	line := Interpolate(a, b, 5)
	require.Len(t, line, 5)
	assert.Equal(t, a, line[0])
	assert.Equal(t, b, line[4])

	assert.Len(t, Interpolate(a, b, 0), 2)
}

func TestInterpolateByStepSpacing(t *testing.T) {
	a := orb.Point{120.98, 14.59}
	b := Offset(a, 90, 3_000)

	line := InterpolateByStep(a, b, 400)
	assert.Len(t, line, 9)
	assert.LessOrEqual(t, MaxGap(line), 400.0+1)
}

func TestDensifyRemovesLargeJumps(t *testing.T) {
	a := orb.Point{120.98, 14.59}
	b := Offset(a, 0, 300)
	c := Offset(b, 45, 5_000)
	d := Offset(c, 90, 200)

	line := Densify(orb.LineString{a, b, c, d}, 1_000, 400)

	assert.Equal(t, a, line[0])
	assert.Equal(t, d, line[len(line)-1])
	assert.LessOrEqual(t, MaxGap(line), 1_000.0)
	assert.True(t, ValidPath(line, 1_000))
	assert.Greater(t, len(line), 4)
}

func TestDensifyShortLineUnchanged(t *testing.T) {
	a := orb.Point{120.98, 14.59}
	line := orb.LineString{a, Offset(a, 0, 100)}
	assert.Equal(t, line, Densify(line, 1_000, 400))
}

func TestDedupeAndReverse(t *testing.T) {
	a, b := orb.Point{1, 1}, orb.Point{1, 2}
	assert.Equal(t, orb.LineString{a, b}, Dedupe(orb.LineString{a, a, b, b}))
	assert.Equal(t, orb.LineString{b, a}, Reverse(orb.LineString{a, b}))
}

func TestNearestVertex(t *testing.T) {
	line := orb.LineString{{0, 0}, {0, 1}, {0, 2}}

	i, _ := NearestVertex(line, orb.Point{0.01, 1.1})
	assert.Equal(t, 1, i)

	i, _ = NearestVertex(nil, orb.Point{})
	assert.Equal(t, -1, i)
}

func TestClosestPointOnLineProjectsOntoSegment(t *testing.T) {
	line := orb.LineString{{120.98, 14.59}, {121.00, 14.59}}
	p := orb.Point{120.99, 14.591}

	closest, dist, ok := ClosestPointOnLine(line, p)
	require.True(t, ok)
	assert.InDelta(t, 120.99, closest.Lon(), 1e-6)
	assert.InDelta(t, 14.59, closest.Lat(), 1e-6)
	assert.InDelta(t, 111, dist, 2)

	_, _, ok = ClosestPointOnLine(nil, p)
	assert.False(t, ok)
}

func TestMinDistanceBetweenParallelLines(t *testing.T) {
	a := orb.LineString{{120.98, 14.590}, {121.00, 14.590}}
	b := orb.LineString{{120.99, 14.591}, {121.01, 14.591}}

	pa, pb, d, ok := MinDistanceBetween(a, b)
	require.True(t, ok)
	assert.InDelta(t, 111, d, 2)
	assert.InDelta(t, 14.590, pa.Lat(), 1e-6)
	assert.InDelta(t, 14.591, pb.Lat(), 1e-6)
}

func TestMinDistanceBetweenCrossingLines(t *testing.T) {
	a := orb.LineString{{120.98, 14.59}, {121.00, 14.61}}
	b := orb.LineString{{120.98, 14.61}, {121.00, 14.59}}

	pa, pb, d, ok := MinDistanceBetween(a, b)
	require.True(t, ok)
	assert.Equal(t, 0.0, d)
	assert.Equal(t, pa, pb)
	assert.InDelta(t, 120.99, pa.Lon(), 1e-6)
}

func TestSmoothKeepsEndpointsAndEnvelope(t *testing.T) {
	a := orb.Point{120.98, 14.59}
	line := orb.LineString{a, Offset(a, 80, 500), Offset(a, 100, 1_000), Offset(a, 90, 1_500)}

	out := Smooth(line, 2)
	assert.Equal(t, line[0], out[0])
	assert.Equal(t, line[len(line)-1], out[len(out)-1])
	assert.Greater(t, len(out), len(line))

	minLat, maxLat := math.Inf(1), math.Inf(-1)
	for _, p := range line {
		minLat = math.Min(minLat, p.Lat())
		maxLat = math.Max(maxLat, p.Lat())
	}
	for _, p := range out {
		assert.GreaterOrEqual(t, p.Lat(), minLat-1e-12)
		assert.LessOrEqual(t, p.Lat(), maxLat+1e-12)
	}
}
