package assemble

import (
	"math"

	"github.com/paulmach/orb/geojson"

	"github.com/azybler/reachmap/pkg/geo"
)

// sequenceKeys are the property names carrying the traversal hint, in order
// of preference. The routing backend emits "seq".
var sequenceKeys = []string{"sequence", "seq"}

// FromFeatureCollection converts a route FeatureCollection to edge features.
// Nil features are skipped; features with unsupported geometry are kept and
// contribute nothing when assembled.
func FromFeatureCollection(fc *geojson.FeatureCollection) []EdgeFeature {
	if fc == nil {
		return nil
	}
	edges := make([]EdgeFeature, 0, len(fc.Features))
	for _, f := range fc.Features {
		if f == nil {
			continue
		}
		edges = append(edges, EdgeFeature{
			Geometry: f.Geometry,
			Sequence: sequenceOf(f.Properties),
		})
	}
	return edges
}

// sequenceOf reads an integer sequence hint. Non-integral, out of int range
// or non-numeric values are treated as absent.
func sequenceOf(props geojson.Properties) *int {
	for _, key := range sequenceKeys {
		v, ok := props[key]
		if !ok {
			continue
		}
		var n int
		switch x := v.(type) {
		case float64:
			if x != math.Trunc(x) || x < math.MinInt || x >= -math.MinInt {
				return nil
			}
			n = int(x)
		case int:
			n = x
		case int64:
			n = int(x)
		default:
			return nil
		}
		return &n
	}
	return nil
}

// Route is an assembled route ready for rendering.
type Route struct {
	// Path is the stitched route in [lat, lng] order.
	Path           [][2]float64
	DistanceMeters float64
	NumFeatures    int

	// Backend-reported summary, when the collection carries one in its
	// "properties" member.
	Mode            string
	BackendKm       *float64
	DurationMinutes *float64
}

// Summarize assembles a route response and collects its summary.
func (a Assembler) Summarize(fc *geojson.FeatureCollection) Route {
	edges := FromFeatureCollection(fc)
	path := a.Assemble(edges)

	r := Route{
		Path:           geo.ToLatLng(path),
		DistanceMeters: geo.PathLength(path),
		NumFeatures:    len(edges),
	}
	if fc == nil {
		return r
	}

	props, _ := fc.ExtraMembers["properties"].(map[string]interface{})
	if mode, ok := props["mode"].(string); ok {
		r.Mode = mode
	}
	if d, ok := props["distance"].(float64); ok {
		r.BackendKm = &d
	}
	if d, ok := props["duration"].(float64); ok {
		r.DurationMinutes = &d
	}
	return r
}
