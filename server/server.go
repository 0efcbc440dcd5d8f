// Package server exposes the geometry operations as a JSON HTTP API.
package server

import (
	"net/http"
	"slices"
	"sort"

	"kuanb/gosm-geofence/geom"
	"kuanb/gosm-geofence/osm"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/paulmach/orb/geojson"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// Options configures a Server.
type Options struct {
	// Geofences are the named polygons served under /api/v1/geofences.
	Geofences map[string][]geom.Coordinate
	// POIs are the records served under /api/v1/pois.
	POIs []geom.Record[osm.POI]
	// MaxBodyBytes limits request bodies; zero means unlimited.
	MaxBodyBytes int64
	// Registry receives the server metrics. A fresh registry is used when nil.
	Registry *prometheus.Registry
}

// Server holds the read-only data shared by all requests.
type Server struct {
	geofences    map[string][]geom.Coordinate
	catalog      *geojson.FeatureCollection
	pois         []geom.Record[osm.POI]
	maxBodyBytes int64
	registry     *prometheus.Registry
	metrics      *metrics
}

// New creates a Server. The geofences and POIs must not be modified afterwards.
func New(opts Options) *Server {
	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	return &Server{
		geofences:    opts.Geofences,
		catalog:      newCatalog(opts.Geofences),
		pois:         slices.Clip(opts.POIs),
		maxBodyBytes: opts.MaxBodyBytes,
		registry:     reg,
		metrics:      newMetrics(reg),
	}
}

// Routes builds the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(RequestLogger)
	r.Use(s.metrics.middleware)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		if s.maxBodyBytes > 0 {
			r.Use(middleware.RequestSize(s.maxBodyBytes))
		}

		r.Post("/distance", s.distance)
		r.Post("/area", s.area)
		r.Post("/within", s.within)
		r.Post("/closest", s.closest)
		r.Post("/furthest", s.furthest)
		r.Post("/contains", s.contains)
		r.Post("/near", s.near)

		r.Get("/geofences", s.listGeofences)
		r.Post("/geofences/{name}/contains", s.containsNamed)
		r.Post("/geofences/{name}/near", s.nearNamed)

		r.Post("/pois/within", s.poisWithin)
		r.Post("/pois/closest", s.poisClosest)
	})

	return r
}

// newCatalog renders the geofences as polygon features ordered by name.
func newCatalog(geofences map[string][]geom.Coordinate) *geojson.FeatureCollection {
	names := make([]string, 0, len(geofences))
	for name := range geofences {
		names = append(names, name)
	}
	sort.Strings(names)

	fc := geojson.NewFeatureCollection()
	for _, name := range names {
		vertices := geofences[name]
		props := map[string]any{"name": name}
		if area, err := geom.GeofenceArea(vertices, geom.SquareKilometers); err != nil {
			log.Warn().Err(err).Str("geofence", name).Msg("Skipping area of invalid geofence")
		} else {
			props["area_km2"] = area
		}
		fc.Append(geom.PolygonFeature(vertices, props))
	}
	return fc
}
