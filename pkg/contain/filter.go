package contain

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// FilterPointsByAnyPolygon returns the point features lying inside at least
// one of polygons, in input order. The returned slice shares the feature
// pointers of points.
//
// With no polygons the input is returned unchanged: no active region means
// nothing is filtered out. Features without a 2-D point geometry never
// survive an active filter.
func FilterPointsByAnyPolygon(points []*geojson.Feature, polygons []orb.Geometry) []*geojson.Feature {
	if len(polygons) == 0 {
		return points
	}
	return FilterByIndex(points, NewIndex(polygons))
}

// FilterByIndex keeps the point features contained by idx. A nil index
// filters nothing out.
func FilterByIndex(points []*geojson.Feature, idx *Index) []*geojson.Feature {
	if idx == nil {
		return points
	}

	kept := make([]*geojson.Feature, 0, len(points))
	for _, f := range points {
		p, ok := pointOf(f)
		if !ok {
			continue
		}
		if idx.Contains(p) {
			kept = append(kept, f)
		}
	}
	return kept
}

// FilterCollection applies FilterPointsByAnyPolygon to a FeatureCollection.
// The result is a new collection; fc is not modified.
func FilterCollection(fc *geojson.FeatureCollection, polygons []orb.Geometry) *geojson.FeatureCollection {
	return filterCollection(fc, func(fs []*geojson.Feature) []*geojson.Feature {
		return FilterPointsByAnyPolygon(fs, polygons)
	})
}

// FilterCollectionByIndex applies FilterByIndex to a FeatureCollection. An
// empty non-nil index keeps nothing.
func FilterCollectionByIndex(fc *geojson.FeatureCollection, idx *Index) *geojson.FeatureCollection {
	return filterCollection(fc, func(fs []*geojson.Feature) []*geojson.Feature {
		return FilterByIndex(fs, idx)
	})
}

func filterCollection(fc *geojson.FeatureCollection, keep func([]*geojson.Feature) []*geojson.Feature) *geojson.FeatureCollection {
	out := geojson.NewFeatureCollection()
	if fc == nil {
		return out
	}
	out.ExtraMembers = fc.ExtraMembers.Clone()
	out.Features = keep(fc.Features)
	return out
}

func pointOf(f *geojson.Feature) (orb.Point, bool) {
	if f == nil {
		return orb.Point{}, false
	}
	p, ok := f.Geometry.(orb.Point)
	return p, ok
}
