package api

import (
	"github.com/paulmach/orb/geojson"

	"github.com/azybler/reachmap/pkg/isochrone"
)

// AssembleResponse is the JSON response for POST /api/v1/route/assemble.
type AssembleResponse struct {
	// Path is [[lat, lng], ...], the order map renderers expect.
	Path            [][2]float64 `json:"path"`
	DistanceMeters  float64      `json:"distance_meters"`
	NumFeatures     int          `json:"num_features"`
	Mode            string       `json:"mode,omitempty"`
	BackendKm       *float64     `json:"backend_distance_km,omitempty"`
	DurationMinutes *float64     `json:"duration_minutes,omitempty"`
}

// FilterRequest is the JSON body for POST /api/v1/pois/filter.
// When Points is omitted the server's loaded POI collection is filtered.
type FilterRequest struct {
	Points     *geojson.FeatureCollection `json:"points,omitempty"`
	Isochrones *geojson.FeatureCollection `json:"isochrones"`
	Minutes    []int                      `json:"minutes,omitempty"`
}

// ErrorResponse is the JSON response for errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// ModesResponse is the JSON response for GET /api/v1/modes.
type ModesResponse map[isochrone.Mode]isochrone.ModeInfo

// StatsResponse is the JSON response for GET /api/v1/stats.
type StatsResponse struct {
	NumPOIs   int    `json:"num_pois"`
	POISource string `json:"poi_source,omitempty"`
}

// HealthResponse is the JSON response for GET /api/v1/health.
type HealthResponse struct {
	Status string `json:"status"`
}
