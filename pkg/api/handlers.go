package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math"
	"mime"
	"net/http"
	"net/url"
	"strconv"

	"github.com/paulmach/orb/geojson"

	"github.com/azybler/reachmap/pkg/assemble"
	"github.com/azybler/reachmap/pkg/contain"
	"github.com/azybler/reachmap/pkg/isochrone"
	"github.com/azybler/reachmap/pkg/poi"
)

// DefaultMaxBodyBytes bounds request bodies; route and isochrone
// collections for a city-sized area stay well under it.
const DefaultMaxBodyBytes = 8 << 20

// Handlers holds the HTTP handlers and their dependencies.
type Handlers struct {
	assembler assemble.Assembler
	catalog   *poi.Catalog
	defaults  poi.QueryOptions

	// pois is catalog queried with defaults. Filter requests without
	// their own points filter it.
	pois         *geojson.FeatureCollection
	stats        StatsResponse
	maxBodyBytes int64
}

// NewHandlers creates handlers. catalog may be nil when no POI source is
// configured; filter requests must then carry their own points. defaults
// apply to every POI query a request does not override.
func NewHandlers(assembler assemble.Assembler, catalog *poi.Catalog, defaults poi.QueryOptions, stats StatsResponse) *Handlers {
	if catalog == nil {
		catalog = &poi.Catalog{}
	}
	pois := catalog.Query(defaults)
	stats.NumPOIs = len(pois.Features)
	return &Handlers{
		assembler:    assembler,
		catalog:      catalog,
		defaults:     defaults,
		pois:         pois,
		stats:        stats,
		maxBodyBytes: DefaultMaxBodyBytes,
	}
}

// HandleAssemble handles POST /api/v1/route/assemble.
func (h *Handlers) HandleAssemble(w http.ResponseWriter, r *http.Request) {
	body, ok := h.readJSON(w, r)
	if !ok {
		return
	}

	fc, err := geojson.UnmarshalFeatureCollection(body)
	if err != nil {
		slog.Debug("decode route collection", "error", err)
		writeError(w, http.StatusBadRequest, "invalid_geojson", "")
		return
	}

	route := h.assembler.Summarize(fc)
	assembledPoints.Observe(float64(len(route.Path)))

	writeJSON(w, http.StatusOK, AssembleResponse{
		Path:            route.Path,
		DistanceMeters:  route.DistanceMeters,
		NumFeatures:     route.NumFeatures,
		Mode:            route.Mode,
		BackendKm:       route.BackendKm,
		DurationMinutes: route.DurationMinutes,
	})
}

// HandleFilter handles POST /api/v1/pois/filter.
func (h *Handlers) HandleFilter(w http.ResponseWriter, r *http.Request) {
	body, ok := h.readJSON(w, r)
	if !ok {
		return
	}

	var req FilterRequest
	if err := json.Unmarshal(body, &req); err != nil {
		slog.Debug("decode filter request", "error", err)
		writeError(w, http.StatusBadRequest, "invalid_geojson", "")
		return
	}
	for _, m := range req.Minutes {
		if m <= 0 {
			writeError(w, http.StatusBadRequest, "invalid_minutes", "minutes")
			return
		}
	}

	points := req.Points
	if points == nil {
		points = h.pois
	}

	// Only a request without isochrone features shows everything. Once
	// any are sent, a minutes selection matching none of them or features
	// without polygon geometry keep nothing.
	var idx *contain.Index
	if set := isochrone.FromFeatureCollection(req.Isochrones); !set.Empty() {
		if len(req.Minutes) > 0 {
			set = set.Select(req.Minutes...)
		}
		idx = contain.NewIndex(set.Geometries())
	}

	out := contain.FilterCollectionByIndex(points, idx)
	if out.ExtraMembers == nil {
		out.ExtraMembers = geojson.Properties{}
	}
	out.ExtraMembers["metadata"] = map[string]interface{}{"count": len(out.Features)}

	filteredPoints.WithLabelValues("kept").Add(float64(len(out.Features)))
	filteredPoints.WithLabelValues("dropped").Add(float64(len(points.Features) - len(out.Features)))

	writeJSON(w, http.StatusOK, out)
}

// HandlePOIs handles GET /api/v1/pois?type=&min_rating=&limit=.
func (h *Handlers) HandlePOIs(w http.ResponseWriter, r *http.Request) {
	opts, field, ok := h.queryOptions(r.URL.Query())
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_request", field)
		return
	}
	writeJSON(w, http.StatusOK, h.catalog.Query(opts))
}

// queryOptions overrides the default POI query with request parameters. On
// failure it returns the offending parameter.
func (h *Handlers) queryOptions(q url.Values) (poi.QueryOptions, string, bool) {
	opts := h.defaults
	if v := q.Get("type"); v != "" {
		opts.Type = v
	}
	if v := q.Get("min_rating"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return opts, "min_rating", false
		}
		opts.MinRating = &f
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return opts, "limit", false
		}
		opts.Limit = n
	}
	return opts, "", true
}

// HandleModes handles GET /api/v1/modes.
func (h *Handlers) HandleModes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ModesResponse(isochrone.Modes))
}

// HandleHealth handles GET /api/v1/health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// HandleStats handles GET /api/v1/stats.
func (h *Handlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.stats)
}

// readJSON enforces the JSON content type and reads a bounded body.
func (h *Handlers) readJSON(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" && mediaType != "application/geo+json" {
		writeError(w, http.StatusBadRequest, "invalid_request", "")
		return nil, false
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request_too_large", "")
			return nil, false
		}
		writeError(w, http.StatusBadRequest, "invalid_request", "")
		return nil, false
	}
	return body, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, code, field string) {
	writeJSON(w, status, ErrorResponse{Error: code, Field: field})
}
