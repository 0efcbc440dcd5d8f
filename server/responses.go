package server

import (
	"errors"
	"maps"
	"net/http"

	"kuanb/gosm-geofence/geom"
	"kuanb/gosm-geofence/osm"

	"github.com/go-chi/render"
)

type ErrResponse struct {
	Err            error `json:"-"` // low-level runtime error
	HTTPStatusCode int   `json:"-"` // http response status code

	StatusText string `json:"status"`          // user-level status message
	Kind       string `json:"kind,omitempty"`  // machine-readable error variant
	ErrorText  string `json:"error,omitempty"` // application-level error message
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

// ErrInvalidRequest renders a 400. Geometry errors carry their kind; anything
// else is treated as an undecodable body.
func ErrInvalidRequest(err error) render.Renderer {
	kind := "malformed_request"
	var kinded interface{ Kind() string }
	if errors.As(err, &kinded) {
		kind = kinded.Kind()
	}
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusBadRequest,
		StatusText:     "Invalid request.",
		Kind:           kind,
		ErrorText:      err.Error(),
	}
}

func ErrNotFound(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusNotFound,
		StatusText:     "Resource not found.",
		Kind:           "not_found",
		ErrorText:      err.Error(),
	}
}

type distanceResponse struct {
	Distance float64           `json:"distance"`
	Unit     geom.DistanceUnit `json:"unit"`
}

type areaResponse struct {
	Area float64       `json:"area"`
	Unit geom.AreaUnit `json:"unit"`
}

type containsResponse struct {
	Inside bool `json:"inside"`
}

type listResponse struct {
	Results []map[string]any `json:"results"`
}

type singleResponse struct {
	Result map[string]any `json:"result"`
}

type poiListResponse struct {
	Results []poiResult `json:"results"`
}

type poiSingleResponse struct {
	Result *poiResult `json:"result"`
}

type poiResult struct {
	geom.Coordinate
	osm.POI
	Distance float64 `json:"distance"`
}

// annotatedFields returns a copy of the record's original fields with its distance added.
func annotatedFields(a geom.Annotated[map[string]any]) map[string]any {
	fields := maps.Clone(a.Payload)
	if fields == nil {
		fields = make(map[string]any, 3)
		fields["lat"] = a.Lat
		fields["lng"] = a.Lng
	}
	fields["distance"] = a.Distance
	return fields
}

func newPOIResult(a geom.Annotated[osm.POI]) poiResult {
	return poiResult{Coordinate: a.Coordinate, POI: a.Payload, Distance: a.Distance}
}
