package geo

import (
	"math"

	"github.com/paulmach/orb"
)

// ClosestPointOnLine returns the point on the line (any segment, not only
// vertices) nearest to p, together with its distance in meters.
// ok is false for an empty line.
func ClosestPointOnLine(line orb.LineString, p orb.Point) (closest orb.Point, dist float64, ok bool) {
	switch len(line) {
	case 0:
		return orb.Point{}, 0, false
	case 1:
		return line[0], Distance(line[0], p), true
	}

	proj := newProjector(p)
	best := math.Inf(1)
	for i := 1; i < len(line); i++ {
		ax, ay := proj.xy(line[i-1])
		bx, by := proj.xy(line[i])
		cx, cy := closestOnSegment(0, 0, ax, ay, bx, by)
		if d := cx*cx + cy*cy; d < best {
			best = d
			closest = proj.point(cx, cy)
		}
	}

	return closest, Distance(closest, p), true
}

// closestOnSegment returns the point of segment ab nearest to (px, py).
func closestOnSegment(px, py, ax, ay, bx, by float64) (float64, float64) {
	dx, dy := bx-ax, by-ay
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return ax, ay
	}

	t := ((px-ax)*dx + (py-ay)*dy) / l2
	t = math.Max(0, math.Min(1, t))

	return ax + t*dx, ay + t*dy
}

// MinDistanceBetween returns the closest pair of points between two lines
// (pa on a, pb on b) and the distance separating them in meters.
// Crossing lines return the crossing point twice at distance zero.
func MinDistanceBetween(a, b orb.LineString) (pa, pb orb.Point, dist float64, ok bool) {
	if len(a) == 0 || len(b) == 0 {
		return orb.Point{}, orb.Point{}, 0, false
	}
	if len(a) == 1 || len(b) == 1 {
		return minDistanceVertices(a, b)
	}

	proj := newProjector(a[0])
	best := math.Inf(1)

	consider := func(x1, y1, x2, y2 float64) {
		dx, dy := x2-x1, y2-y1
		if d := dx*dx + dy*dy; d < best {
			best = d
			pa = proj.point(x1, y1)
			pb = proj.point(x2, y2)
		}
	}

	for i := 1; i < len(a); i++ {
		ax, ay := proj.xy(a[i-1])
		bx, by := proj.xy(a[i])
		for j := 1; j < len(b); j++ {
			cx, cy := proj.xy(b[j-1])
			dx, dy := proj.xy(b[j])

			if x, y, hit := intersect(ax, ay, bx, by, cx, cy, dx, dy); hit {
				p := proj.point(x, y)
				return p, p, 0, true
			}

			// Non-crossing segments are closest at one of the four endpoints.
			qx, qy := closestOnSegment(ax, ay, cx, cy, dx, dy)
			consider(ax, ay, qx, qy)
			qx, qy = closestOnSegment(bx, by, cx, cy, dx, dy)
			consider(bx, by, qx, qy)
			qx, qy = closestOnSegment(cx, cy, ax, ay, bx, by)
			consider(qx, qy, cx, cy)
			qx, qy = closestOnSegment(dx, dy, ax, ay, bx, by)
			consider(qx, qy, dx, dy)
		}
	}

	return pa, pb, Distance(pa, pb), true
}

func minDistanceVertices(a, b orb.LineString) (orb.Point, orb.Point, float64, bool) {
	if len(a) == 1 {
		p, d, _ := ClosestPointOnLine(b, a[0])
		return a[0], p, d, true
	}
	p, d, _ := ClosestPointOnLine(a, b[0])
	return p, b[0], d, true
}

// intersect returns the crossing point of segments ab and cd, if any.
func intersect(ax, ay, bx, by, cx, cy, dx, dy float64) (float64, float64, bool) {
	rx, ry := bx-ax, by-ay
	sx, sy := dx-cx, dy-cy

	denom := rx*sy - ry*sx
	if denom == 0 {
		return 0, 0, false
	}

	t := ((cx-ax)*sy - (cy-ay)*sx) / denom
	u := ((cx-ax)*ry - (cy-ay)*rx) / denom
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return 0, 0, false
	}

	return ax + t*rx, ay + t*ry, true
}
