package isochrone

import (
	"math"
	"slices"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Polygon is one reachability polygon and its time budget.
type Polygon struct {
	Minutes  int
	Mode     Mode
	// Geometry is normally an orb.Polygon or orb.MultiPolygon. Features
	// with any other geometry are kept so they still count as a selection;
	// they contain no point.
	Geometry orb.Geometry
}

// Set holds the isochrones for one (mode, minutes) selection. A Set is
// replaced wholesale when the selection changes; methods never modify the
// receiver.
type Set struct {
	Mode     Mode
	Minutes  []int
	Polygons []Polygon
}

// FromFeatureCollection builds a Set from an isochrone FeatureCollection.
// Every non-nil feature becomes a Polygon, whatever its geometry. Each
// feature's "minutes" and "mode" properties tag its polygon; the set's
// Mode is taken from the first tagged feature.
func FromFeatureCollection(fc *geojson.FeatureCollection) Set {
	var s Set
	if fc == nil {
		return s
	}
	for _, f := range fc.Features {
		if f == nil {
			continue
		}

		p := Polygon{Geometry: f.Geometry}
		if v, ok := f.Properties["minutes"].(float64); ok && v == math.Trunc(v) && v >= math.MinInt && v < -math.MinInt {
			p.Minutes = int(v)
			if !slices.Contains(s.Minutes, p.Minutes) {
				s.Minutes = append(s.Minutes, p.Minutes)
			}
		}
		if m, err := ParseMode(f.Properties.MustString("mode", "")); err == nil {
			p.Mode = m
			if s.Mode == "" {
				s.Mode = m
			}
		}
		s.Polygons = append(s.Polygons, p)
	}
	slices.Sort(s.Minutes)
	return s
}

// Empty reports whether the set has no polygons.
func (s Set) Empty() bool { return len(s.Polygons) == 0 }

// Geometries returns the polygon geometries, for the containment filter.
func (s Set) Geometries() []orb.Geometry {
	out := make([]orb.Geometry, len(s.Polygons))
	for i, p := range s.Polygons {
		out[i] = p.Geometry
	}
	return out
}

// Select returns a new Set holding only polygons with the given budgets.
// With no minutes the receiver's polygons are all kept.
func (s Set) Select(minutes ...int) Set {
	if len(minutes) == 0 {
		return Set{Mode: s.Mode, Minutes: slices.Clone(s.Minutes), Polygons: slices.Clone(s.Polygons)}
	}
	out := Set{Mode: s.Mode}
	for _, p := range s.Polygons {
		if slices.Contains(minutes, p.Minutes) {
			out.Polygons = append(out.Polygons, p)
			if !slices.Contains(out.Minutes, p.Minutes) {
				out.Minutes = append(out.Minutes, p.Minutes)
			}
		}
	}
	slices.Sort(out.Minutes)
	return out
}
