// Package geo holds the geometry helpers used by the planner.
//
// Distances are great-circle meters. Operations that need planar math
// (closest point on a segment, segment intersection) project into a local
// equirectangular frame, which is accurate enough at city scale.
package geo

import (
	"math"

	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
)

const metersPerDegree = 111_320.0

// Distance returns the haversine distance between two points in meters.
func Distance(a, b orb.Point) float64 {
	return orbgeo.DistanceHaversine(a, b)
}

// Length returns the haversine length of a polyline in meters.
func Length(line orb.LineString) float64 {
	if len(line) < 2 {
		return 0
	}
	return orbgeo.LengthHaversine(line)
}

// ValidCoordinate reports whether lat/lon is a finite WGS84 coordinate.
func ValidCoordinate(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) || math.IsInf(lat, 0) || math.IsInf(lon, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// Finite reports whether every point of the line is a valid coordinate.
func Finite(line orb.LineString) bool {
	for _, p := range line {
		if !ValidCoordinate(p.Lat(), p.Lon()) {
			return false
		}
	}
	return true
}

// Offset moves p by meters along bearing (degrees clockwise from north).
func Offset(p orb.Point, bearing, meters float64) orb.Point {
	if meters == 0 {
		return p
	}
	return orbgeo.PointAtBearingAndDistance(p, bearing, meters)
}

// Bearing returns the initial bearing from a to b in degrees.
func Bearing(a, b orb.Point) float64 {
	return orbgeo.Bearing(a, b)
}

// Midpoint returns the geographic midpoint of a and b.
func Midpoint(a, b orb.Point) orb.Point {
	return orbgeo.Midpoint(a, b)
}

// projector maps lon/lat into meters around an origin.
type projector struct {
	origin orb.Point
	kx     float64
}

func newProjector(origin orb.Point) projector {
	kx := math.Cos(origin.Lat()*math.Pi/180) * metersPerDegree
	if kx < 1e-6 {
		kx = 1e-6
	}
	return projector{origin: origin, kx: kx}
}

func (p projector) xy(pt orb.Point) (float64, float64) {
	return (pt.Lon() - p.origin.Lon()) * p.kx, (pt.Lat() - p.origin.Lat()) * metersPerDegree
}

func (p projector) point(x, y float64) orb.Point {
	return orb.Point{p.origin.Lon() + x/p.kx, p.origin.Lat() + y/metersPerDegree}
}
