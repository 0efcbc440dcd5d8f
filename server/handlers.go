package server

import (
	"fmt"
	"net/http"

	"kuanb/gosm-geofence/geom"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/rs/zerolog/log"
)

func (s *Server) distance(w http.ResponseWriter, r *http.Request) {
	req := &distanceRequest{}
	if err := render.Bind(r, req); err != nil {
		s.invalid(w, r, "distance", err)
		return
	}
	d, err := geom.Distance(req.from, req.to, req.unit)
	if err != nil {
		s.invalid(w, r, "distance", err)
		return
	}
	s.ok(w, r, "distance", &distanceResponse{Distance: d, Unit: req.unit})
}

func (s *Server) area(w http.ResponseWriter, r *http.Request) {
	req := &areaRequest{}
	if err := render.Bind(r, req); err != nil {
		s.invalid(w, r, "area", err)
		return
	}
	a, err := geom.GeofenceArea(req.vertices, req.unit)
	if err != nil {
		s.invalid(w, r, "area", err)
		return
	}
	s.ok(w, r, "area", &areaResponse{Area: a, Unit: req.unit})
}

func (s *Server) within(w http.ResponseWriter, r *http.Request) {
	req := &collectionRequest{withThreshold: true}
	if err := render.Bind(r, req); err != nil {
		s.invalid(w, r, "within", err)
		return
	}
	matches, err := geom.WithinDistance(req.from, req.records, req.maxDistance, req.unit)
	if err != nil {
		s.invalid(w, r, "within", err)
		return
	}
	results := make([]map[string]any, 0, len(matches))
	for _, m := range matches {
		results = append(results, annotatedFields(m))
	}
	s.ok(w, r, "within", &listResponse{Results: results})
}

func (s *Server) closest(w http.ResponseWriter, r *http.Request) {
	s.extreme(w, r, "closest", geom.Closest[map[string]any])
}

func (s *Server) furthest(w http.ResponseWriter, r *http.Request) {
	s.extreme(w, r, "furthest", geom.Furthest[map[string]any])
}

type extremeFunc func(geom.Coordinate, []geom.Record[map[string]any], geom.DistanceUnit) (*geom.Annotated[map[string]any], error)

func (s *Server) extreme(w http.ResponseWriter, r *http.Request, operation string, query extremeFunc) {
	req := &collectionRequest{}
	if err := render.Bind(r, req); err != nil {
		s.invalid(w, r, operation, err)
		return
	}
	best, err := query(req.from, req.records, req.unit)
	if err != nil {
		s.invalid(w, r, operation, err)
		return
	}
	resp := &singleResponse{}
	if best != nil {
		resp.Result = annotatedFields(*best)
	}
	s.ok(w, r, operation, resp)
}

func (s *Server) contains(w http.ResponseWriter, r *http.Request) {
	req := &geofenceRequest{}
	if err := render.Bind(r, req); err != nil {
		s.invalid(w, r, "contains", err)
		return
	}
	s.containsIn(w, r, req.coord, req.vertices)
}

func (s *Server) containsNamed(w http.ResponseWriter, r *http.Request) {
	vertices, ok := s.lookup(w, r)
	if !ok {
		return
	}
	req := &geofenceRequest{named: true}
	if err := render.Bind(r, req); err != nil {
		s.invalid(w, r, "contains", err)
		return
	}
	s.containsIn(w, r, req.coord, vertices)
}

func (s *Server) containsIn(w http.ResponseWriter, r *http.Request, c geom.Coordinate, vertices []geom.Coordinate) {
	inside, err := geom.InGeofence(c, vertices)
	if err != nil {
		s.invalid(w, r, "contains", err)
		return
	}
	s.ok(w, r, "contains", &containsResponse{Inside: inside})
}

func (s *Server) near(w http.ResponseWriter, r *http.Request) {
	req := &geofenceRequest{withThreshold: true}
	if err := render.Bind(r, req); err != nil {
		s.invalid(w, r, "near", err)
		return
	}
	s.nearTo(w, r, req, req.vertices)
}

func (s *Server) nearNamed(w http.ResponseWriter, r *http.Request) {
	vertices, ok := s.lookup(w, r)
	if !ok {
		return
	}
	req := &geofenceRequest{withThreshold: true, named: true}
	if err := render.Bind(r, req); err != nil {
		s.invalid(w, r, "near", err)
		return
	}
	s.nearTo(w, r, req, vertices)
}

func (s *Server) nearTo(w http.ResponseWriter, r *http.Request, req *geofenceRequest, vertices []geom.Coordinate) {
	p, err := geom.NearGeofence(req.coord, vertices, req.maxDistance, req.unit)
	if err != nil {
		s.invalid(w, r, "near", err)
		return
	}
	s.ok(w, r, "near", &p)
}

func (s *Server) listGeofences(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, s.catalog)
}

// lookup resolves the {name} URL parameter, rendering a 404 when it is unknown.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) ([]geom.Coordinate, bool) {
	name := chi.URLParam(r, "name")
	vertices, ok := s.geofences[name]
	if !ok {
		render.Render(w, r, ErrNotFound(fmt.Errorf("geofence %q not found", name)))
		return nil, false
	}
	return vertices, true
}

func (s *Server) poisWithin(w http.ResponseWriter, r *http.Request) {
	req := &collectionRequest{withThreshold: true, withoutRecords: true}
	if err := render.Bind(r, req); err != nil {
		s.invalid(w, r, "pois_within", err)
		return
	}
	matches, err := geom.WithinDistance(req.from, s.pois, req.maxDistance, req.unit)
	if err != nil {
		s.invalid(w, r, "pois_within", err)
		return
	}
	results := make([]poiResult, 0, len(matches))
	for _, m := range matches {
		results = append(results, newPOIResult(m))
	}
	s.ok(w, r, "pois_within", &poiListResponse{Results: results})
}

func (s *Server) poisClosest(w http.ResponseWriter, r *http.Request) {
	req := &collectionRequest{withoutRecords: true}
	if err := render.Bind(r, req); err != nil {
		s.invalid(w, r, "pois_closest", err)
		return
	}
	best, err := geom.Closest(req.from, s.pois, req.unit)
	if err != nil {
		s.invalid(w, r, "pois_closest", err)
		return
	}
	resp := &poiSingleResponse{}
	if best != nil {
		res := newPOIResult(*best)
		resp.Result = &res
	}
	s.ok(w, r, "pois_closest", resp)
}

func (s *Server) ok(w http.ResponseWriter, r *http.Request, operation string, v any) {
	s.metrics.observe(operation, nil)
	render.Status(r, http.StatusOK)
	render.JSON(w, r, v)
}

func (s *Server) invalid(w http.ResponseWriter, r *http.Request, operation string, err error) {
	s.metrics.observe(operation, err)
	log.Debug().Err(err).Str("operation", operation).Msg("Rejected request")
	render.Render(w, r, ErrInvalidRequest(err))
}
