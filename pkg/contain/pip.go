// Package contain answers point-in-polygon questions against isochrone
// geometries and filters point collections by them.
//
// Only outer rings are evaluated. Holes are ignored, so a point inside an
// inner ring of a Polygon is reported as contained.
package contain

import "github.com/paulmach/orb"

// PointInPolygon reports whether p lies inside g. g must be an orb.Polygon
// or orb.MultiPolygon; any other geometry, including nil, yields false.
// A MultiPolygon contains p if the outer ring of any part does.
func PointInPolygon(p orb.Point, g orb.Geometry) bool {
	switch poly := g.(type) {
	case orb.Polygon:
		return polygonContains(poly, p)
	case orb.MultiPolygon:
		for _, part := range poly {
			if polygonContains(part, p) {
				return true
			}
		}
	}
	return false
}

func polygonContains(poly orb.Polygon, p orb.Point) bool {
	if len(poly) == 0 {
		return false
	}
	return ringContains(poly[0], p)
}

// ringContains is the even-odd ray cast: a ray from p toward increasing
// longitude crosses the ring boundary an odd number of times iff p is
// inside. The closing edge from the last vertex to the first is always
// tested, so rings may or may not repeat their first vertex. Points exactly
// on an edge may land on either side.
func ringContains(ring orb.Ring, p orb.Point) bool {
	n := len(ring)
	if n < 3 {
		return false
	}

	x, y := p[0], p[1]
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := ring[i][0], ring[i][1]
		xj, yj := ring[j][0], ring[j][1]
		if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}
	return inside
}
