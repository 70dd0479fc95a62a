// Package geo holds the coordinate conventions and distance helpers shared by
// the assembler and the containment filter.
//
// Coordinates are orb.Point values in GeoJSON order: [lng, lat]. Rendering
// consumers want [lat, lng]; ToLatLng is the only place that swap happens.
package geo

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// SamePoint reports whether a and b coincide. A zero tolerance means exact
// equality; otherwise points closer than tol (planar) are treated as equal.
func SamePoint(a, b orb.Point, tol float64) bool {
	if tol <= 0 {
		return a == b
	}
	return planar.Distance(a, b) <= tol
}

// ToLatLng converts a [lng, lat] polyline to [lat, lng] pairs.
func ToLatLng(ls orb.LineString) [][2]float64 {
	out := make([][2]float64, len(ls))
	for i, p := range ls {
		out[i] = [2]float64{p.Lat(), p.Lon()}
	}
	return out
}

// ValidLngLat reports whether p is a finite WGS84 coordinate.
func ValidLngLat(p orb.Point) bool {
	lng, lat := p[0], p[1]
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}
