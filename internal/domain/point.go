package domain

import "github.com/paulmach/orb"

// Immutable geographic point (latitude, longitude).
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Polyline is an ordered sequence of [lon, lat] pairs.
type Polyline = orb.LineString

// Orb returns the point as [lon, lat] for geometry and external API compatibility.
func (p Point) Orb() orb.Point { return orb.Point{p.Lon, p.Lat} }

// PointFromOrb converts an [lon, lat] pair back into a Point.
func PointFromOrb(p orb.Point) Point { return Point{Lat: p.Lat(), Lon: p.Lon()} }
