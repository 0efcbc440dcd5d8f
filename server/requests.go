package server

import (
	"net/http"

	"kuanb/gosm-geofence/geom"
)

// Request bodies keep their fields untyped so that shape errors surface as
// geom validation errors rather than JSON decoding failures.

type distanceRequest struct {
	Coord1 any `json:"coord1"`
	Coord2 any `json:"coord2"`
	Unit   any `json:"unit"`

	from, to geom.Coordinate
	unit     geom.DistanceUnit
}

func (req *distanceRequest) Bind(r *http.Request) (err error) {
	if req.from, err = geom.CoordinateFromValue(req.Coord1, "coord1"); err != nil {
		return err
	}
	if req.to, err = geom.CoordinateFromValue(req.Coord2, "coord2"); err != nil {
		return err
	}
	req.unit, err = distanceUnit(req.Unit)
	return err
}

type areaRequest struct {
	Coordinates any `json:"coordinates"`
	Unit        any `json:"unit"`

	vertices []geom.Coordinate
	unit     geom.AreaUnit
}

func (req *areaRequest) Bind(r *http.Request) (err error) {
	if req.vertices, err = geom.PolygonFromValue(req.Coordinates, "coordinates"); err != nil {
		return err
	}
	s, err := geom.UnitFromValue(req.Unit)
	if err != nil {
		return err
	}
	req.unit, err = geom.ParseAreaUnit(s)
	return err
}

// collectionRequest backs the within, closest and furthest queries. MaxDistance
// is only read when withThreshold is set.
type collectionRequest struct {
	FromCoord   any `json:"fromCoord"`
	Coordinates any `json:"coordinates"`
	MaxDistance any `json:"maxDistance"`
	Unit        any `json:"unit"`

	withThreshold  bool
	withoutRecords bool

	from        geom.Coordinate
	records     []geom.Record[map[string]any]
	maxDistance float64
	unit        geom.DistanceUnit
}

func (req *collectionRequest) Bind(r *http.Request) (err error) {
	if req.from, err = geom.CoordinateFromValue(req.FromCoord, "fromCoord"); err != nil {
		return err
	}
	if !req.withoutRecords {
		if _, ok := req.Coordinates.([]any); !ok {
			return &geom.NotASequenceError{Argument: "coordinates"}
		}
	}
	if req.withThreshold {
		if req.maxDistance, err = geom.ThresholdFromValue(req.MaxDistance, "max distance"); err != nil {
			return err
		}
	}
	if req.unit, err = distanceUnit(req.Unit); err != nil {
		return err
	}
	if req.withoutRecords {
		return nil
	}
	req.records, err = geom.RecordsFromValue(req.Coordinates, "coordinates")
	return err
}

// geofenceRequest backs contains and near queries. Geofence is not read when
// the polygon comes from the URL.
type geofenceRequest struct {
	Coord       any `json:"coord"`
	Geofence    any `json:"geofence"`
	MaxDistance any `json:"maxDistance"`
	Unit        any `json:"unit"`

	withThreshold bool
	named         bool

	coord       geom.Coordinate
	vertices    []geom.Coordinate
	maxDistance float64
	unit        geom.DistanceUnit
}

func (req *geofenceRequest) Bind(r *http.Request) (err error) {
	if req.coord, err = geom.CoordinateFromValue(req.Coord, "coord"); err != nil {
		return err
	}
	if !req.named {
		if req.vertices, err = geom.PolygonFromValue(req.Geofence, "geofence"); err != nil {
			return err
		}
	}
	if !req.withThreshold {
		return nil
	}
	if req.maxDistance, err = geom.ThresholdFromValue(req.MaxDistance, "max distance"); err != nil {
		return err
	}
	req.unit, err = distanceUnit(req.Unit)
	return err
}

func distanceUnit(v any) (geom.DistanceUnit, error) {
	s, err := geom.UnitFromValue(v)
	if err != nil {
		return geom.Kilometers, err
	}
	return geom.ParseDistanceUnit(s)
}
