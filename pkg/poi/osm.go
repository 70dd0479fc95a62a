package poi

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
)

// BBox defines a geographic bounding box for filtering.
// If non-zero, only nodes inside the box are kept.
type BBox struct {
	MinLat, MaxLat float64
	MinLng, MaxLng float64
}

// IsZero returns true if the bbox is unset.
func (b BBox) IsZero() bool {
	return b.MinLat == 0 && b.MaxLat == 0 && b.MinLng == 0 && b.MaxLng == 0
}

// Contains returns true if the point is inside the bounding box.
func (b BBox) Contains(lat, lng float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lng >= b.MinLng && lng <= b.MaxLng
}

// OSMOptions configures ExtractOSM.
type OSMOptions struct {
	BBox BBox // if non-zero, filter nodes to this bounding box
	// Unnamed keeps POIs without a name tag.
	Unnamed bool
	// Procs is the number of PBF decoding goroutines; zero means 1.
	Procs int
}

// poiKeys are the tags that make a node a point of interest, in the order
// they are consulted for its type.
var poiKeys = []string{"amenity", "shop", "tourism"}

// poiType returns the node's POI type, or "" if it is not a POI.
func poiType(tags osm.Tags) string {
	for _, k := range poiKeys {
		if v := tags.Find(k); v != "" && v != "no" {
			return v
		}
	}
	return ""
}

// ExtractOSM scans an OSM PBF stream and returns its POI nodes as Point
// features with "name", "type" and "osm_id" properties. Ways and relations
// are skipped; area POIs mapped only as ways are not extracted.
func ExtractOSM(ctx context.Context, r io.Reader, opts OSMOptions) (*geojson.FeatureCollection, error) {
	procs := opts.Procs
	if procs <= 0 {
		procs = 1
	}
	useBBox := !opts.BBox.IsZero()

	scanner := osmpbf.New(ctx, r, procs)
	defer scanner.Close()
	scanner.SkipWays = true
	scanner.SkipRelations = true

	fc := geojson.NewFeatureCollection()
	var scanned, bboxFiltered int

	for scanner.Scan() {
		n, ok := scanner.Object().(*osm.Node)
		if !ok {
			continue
		}
		scanned++

		typ := poiType(n.Tags)
		if typ == "" {
			continue
		}
		name := n.Tags.Find("name")
		if name == "" && !opts.Unnamed {
			continue
		}
		if useBBox && !opts.BBox.Contains(n.Lat, n.Lon) {
			bboxFiltered++
			continue
		}

		f := geojson.NewFeature(orb.Point{n.Lon, n.Lat})
		f.ID = int64(n.ID)
		f.Properties["name"] = name
		f.Properties["type"] = typ
		f.Properties["osm_id"] = int64(n.ID)
		fc.Append(f)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan nodes: %w", err)
	}

	if bboxFiltered > 0 {
		slog.Info("filtered POIs outside bounding box", "count", bboxFiltered)
	}
	slog.Info("extracted POIs", "nodes", scanned, "pois", len(fc.Features))

	return fc, nil
}
