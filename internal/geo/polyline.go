package geo

import (
	"math"

	"github.com/paulmach/orb"
)

// minSpacing is the distance under which two consecutive points are the same.
const minSpacing = 0.01

// Interpolate returns n evenly spaced points from a to b, both included.
func Interpolate(a, b orb.Point, n int) orb.LineString {
	if n < 2 {
		n = 2
	}

	out := make(orb.LineString, 0, n)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n-1)
		out = append(out, orb.Point{
			a.Lon() + (b.Lon()-a.Lon())*t,
			a.Lat() + (b.Lat()-a.Lat())*t,
		})
	}
	out[n-1] = b

	return out
}

// InterpolateByStep returns a straight line from a to b with roughly one point
// every step meters.
func InterpolateByStep(a, b orb.Point, step float64) orb.LineString {
	return Interpolate(a, b, pointsFor(Distance(a, b), step))
}

func pointsFor(d, step float64) int {
	if step <= 0 || d <= 0 {
		return 2
	}
	return int(math.Ceil(d/step)) + 1
}

// Densify inserts interpolated points wherever two consecutive points are
// more than maxGap meters apart. Inserted points are spaced at most step
// meters (capped to maxGap).
func Densify(line orb.LineString, maxGap, step float64) orb.LineString {
	if len(line) < 2 || maxGap <= 0 {
		return line
	}
	if step <= 0 || step > maxGap {
		step = maxGap
	}

	out := make(orb.LineString, 0, len(line))
	out = append(out, line[0])
	for i := 1; i < len(line); i++ {
		prev, next := line[i-1], line[i]
		if d := Distance(prev, next); d > maxGap {
			fill := Interpolate(prev, next, pointsFor(d, step))
			out = append(out, fill[1:len(fill)-1]...)
		}
		out = append(out, next)
	}

	return out
}

// MaxGap returns the largest distance between consecutive points in meters.
func MaxGap(line orb.LineString) float64 {
	maxGap := 0.0
	for i := 1; i < len(line); i++ {
		if d := Distance(line[i-1], line[i]); d > maxGap {
			maxGap = d
		}
	}
	return maxGap
}

// ValidPath reports whether a path is usable as leg geometry: at least one
// finite point and no gap above maxGap.
func ValidPath(line orb.LineString, maxGap float64) bool {
	if len(line) == 0 || !Finite(line) {
		return false
	}
	return MaxGap(line) <= maxGap
}

// Coincident reports whether a and b are the same place.
func Coincident(a, b orb.Point) bool {
	return Distance(a, b) < minSpacing
}

// Dedupe drops consecutive points that coincide.
func Dedupe(line orb.LineString) orb.LineString {
	if len(line) < 2 {
		return line
	}

	out := make(orb.LineString, 0, len(line))
	out = append(out, line[0])
	for _, p := range line[1:] {
		if Coincident(out[len(out)-1], p) {
			continue
		}
		out = append(out, p)
	}

	return out
}

// Reverse returns a reversed copy of the line.
func Reverse(line orb.LineString) orb.LineString {
	out := make(orb.LineString, len(line))
	for i, p := range line {
		out[len(line)-1-i] = p
	}
	return out
}

// NearestVertex returns the index of the vertex closest to p and its distance.
// It returns -1 for an empty line.
func NearestVertex(line orb.LineString, p orb.Point) (int, float64) {
	best, bestDist := -1, math.Inf(1)
	for i, v := range line {
		if d := Distance(v, p); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, bestDist
}

// Smooth applies Chaikin corner cutting, keeping both endpoints. Every output
// point is a convex combination of neighbouring input points, so the result
// never strays outside the input's envelope.
func Smooth(line orb.LineString, iterations int) orb.LineString {
	out := line
	for it := 0; it < iterations && len(out) > 2; it++ {
		next := make(orb.LineString, 0, 2*len(out))
		next = append(next, out[0])
		for i := 0; i < len(out)-1; i++ {
			a, b := out[i], out[i+1]
			q := orb.Point{0.75*a.Lon() + 0.25*b.Lon(), 0.75*a.Lat() + 0.25*b.Lat()}
			r := orb.Point{0.25*a.Lon() + 0.75*b.Lon(), 0.25*a.Lat() + 0.75*b.Lat()}
			if i > 0 {
				next = append(next, q)
			}
			if i < len(out)-2 {
				next = append(next, r)
			}
		}
		next = append(next, out[len(out)-1])
		out = next
	}
	return out
}
