package poi

import (
	"math"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/azybler/reachmap/pkg/geo"
)

// DefaultMinRating drops low-rated places unless overridden.
const DefaultMinRating = 3.5

// relevantTypes are the keywords a place type must contain to be kept when
// no explicit type filter is given.
var relevantTypes = []string{
	"restaurant", "food", "cafe", "coffee", "fuel", "gas", "pharmacy", "health",
	"school", "university", "education", "shop", "store", "market", "supermarket",
	"bakery", "bar", "pub", "hospital", "clinic", "bus", "parking",
}

// QueryOptions selects places from a Catalog.
type QueryOptions struct {
	// Type keeps only places whose primary type, amenity, shop or tourism
	// value equals it. Empty applies the relevance keyword filter instead.
	Type string
	// MinRating drops places rated below it, and unrated places. Nil means
	// DefaultMinRating; a negative value disables the rating filter.
	// Catalogs without any rating ignore it.
	MinRating *float64
	// Limit caps the number of features; zero means no cap.
	Limit int
}

// Rating returns a MinRating value.
func Rating(v float64) *float64 { return &v }

type place struct {
	name                   string
	primaryType            string
	amenity, shop, tourism string
	id                     interface{}
	rating                 *float64
	lat, lon               float64
	osmID                  interface{}
}

// Catalog holds every parsed place. It is immutable once built and safe for
// concurrent queries.
type Catalog struct {
	places []place
	rated  bool
}

// NewCatalog builds a catalog from a Point FeatureCollection such as the one
// ExtractOSM returns. The "name", "type", "rating" and "osm_id" properties
// are read; features that are not valid points are skipped.
func NewCatalog(fc *geojson.FeatureCollection) *Catalog {
	c := &Catalog{}
	if fc == nil {
		return c
	}
	for _, f := range fc.Features {
		if f == nil {
			continue
		}
		p, ok := f.Geometry.(orb.Point)
		if !ok || !geo.ValidLngLat(p) {
			continue
		}
		pl := place{
			name:        f.Properties.MustString("name", ""),
			primaryType: f.Properties.MustString("type", ""),
			id:          f.ID,
			lat:         p.Lat(),
			lon:         p.Lon(),
			osmID:       f.Properties["osm_id"],
		}
		if r, ok := f.Properties["rating"].(float64); ok {
			pl.rating = &r
		}
		c.add(pl)
	}
	return c
}

func (c *Catalog) add(p place) {
	c.places = append(c.places, p)
	if p.rating != nil {
		c.rated = true
	}
}

// Len returns the number of parsed places, before filtering and dedup.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.places)
}

// Query returns one Point feature per distinct matching place, in catalog
// order. Places are keyed by name and coordinates rounded to 5 decimals.
// The collection carries metadata.count.
func (c *Catalog) Query(opts QueryOptions) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	if c == nil {
		fc.ExtraMembers = geojson.Properties{"metadata": map[string]interface{}{"count": 0}}
		return fc
	}

	minRating := DefaultMinRating
	if opts.MinRating != nil {
		minRating = *opts.MinRating
	}
	useRating := c.rated && minRating >= 0

	type placeKey struct {
		name     string
		lat, lon float64
	}
	seen := make(map[placeKey]struct{})

	for _, p := range c.places {
		if opts.Type != "" {
			if !p.hasType(opts.Type) {
				continue
			}
		} else if !relevant(p.normalizedType()) {
			continue
		}

		if useRating && (p.rating == nil || *p.rating < minRating) {
			continue
		}

		key := placeKey{p.name, round5(p.lat), round5(p.lon)}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		fc.Append(p.feature(c.rated))

		if opts.Limit > 0 && len(fc.Features) >= opts.Limit {
			break
		}
	}

	fc.ExtraMembers = geojson.Properties{"metadata": map[string]interface{}{"count": len(fc.Features)}}
	return fc
}

func (p place) feature(rated bool) *geojson.Feature {
	f := geojson.NewFeature(orb.Point{p.lon, p.lat})
	f.Properties["name"] = p.name
	f.Properties["type"] = p.primaryType
	if rated {
		if p.rating != nil {
			f.Properties["rating"] = *p.rating
		} else {
			f.Properties["rating"] = nil
		}
	}
	if p.osmID != nil {
		f.Properties["osm_id"] = p.osmID
	}
	if s, ok := p.id.(string); !ok || s != "" {
		f.ID = p.id
	}
	return f
}

func (p place) hasType(t string) bool {
	return t == p.primaryType || t == p.amenity || t == p.shop || t == p.tourism
}

func (p place) normalizedType() string {
	return strings.ToLower(firstNonEmpty(p.primaryType, p.amenity, p.shop, p.tourism))
}

func relevant(t string) bool {
	if t == "" {
		return false
	}
	for _, k := range relevantTypes {
		if strings.Contains(t, k) {
			return true
		}
	}
	return false
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func round5(v float64) float64 {
	return math.Round(v*1e5) / 1e5
}
