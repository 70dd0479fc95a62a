// Package poi loads points of interest, either from an amenities CSV export
// or directly from an OSM PBF extract, and serves filtered GeoJSON point
// collections from them.
package poi

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/paulmach/orb"

	"github.com/azybler/reachmap/pkg/geo"
)

// ErrMissingColumn is returned when the CSV header lacks a required column.
var ErrMissingColumn = errors.New("missing column")

// ReadCSV parses an amenities export (one row per review) into a Catalog.
// Rows with unparsable or out-of-range coordinates are skipped; filtering
// and dedup happen per Query.
func ReadCSV(r io.Reader) (*Catalog, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.TrimSpace(h)] = i
	}
	for _, required := range []string{"lat", "lon"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, required)
		}
	}
	field := func(rec []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	c := &Catalog{}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if p, ok := parseRow(rec, field); ok {
			c.add(p)
		}
	}
	// A CSV source is rated even when no row carries a rating.
	c.rated = true
	return c, nil
}

func parseRow(rec []string, field func([]string, string) string) (place, bool) {
	lat, err := strconv.ParseFloat(field(rec, "lat"), 64)
	if err != nil {
		return place{}, false
	}
	lon, err := strconv.ParseFloat(field(rec, "lon"), 64)
	if err != nil || !geo.ValidLngLat(orb.Point{lon, lat}) {
		return place{}, false
	}

	p := place{
		name:    firstNonEmpty(field(rec, "place_name"), field(rec, "poi_name"), "Amenity"),
		amenity: field(rec, "poi_amenity"),
		shop:    field(rec, "poi_shop"),
		tourism: field(rec, "poi_tourism"),
		id:      field(rec, "place_id"),
		lat:     lat,
		lon:     lon,
	}
	p.primaryType = firstNonEmpty(field(rec, "place_primary_type"), p.amenity, p.shop)
	if v, err := strconv.ParseFloat(field(rec, "place_rating"), 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
		p.rating = &v
	}
	return p, true
}
