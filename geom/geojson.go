package geom

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Ring converts vertices to an orb ring ([lng, lat] points).
func Ring(vertices []Coordinate) orb.Ring {
	ring := make(orb.Ring, 0, len(vertices))
	for _, v := range vertices {
		ring = append(ring, orb.Point{v.Lng, v.Lat})
	}
	return ring
}

// FromRing converts an orb ring to coordinates, keeping any closing vertex.
func FromRing(ring orb.Ring) []Coordinate {
	vertices := make([]Coordinate, 0, len(ring))
	for _, p := range ring {
		vertices = append(vertices, Coordinate{Lat: p.Lat(), Lng: p.Lon()})
	}
	return vertices
}

// PolygonFeature builds a GeoJSON feature for a geofence.
func PolygonFeature(vertices []Coordinate, properties map[string]any) *geojson.Feature {
	f := geojson.NewFeature(orb.Polygon{Ring(closeRing(vertices))})
	for k, v := range properties {
		f.Properties[k] = v
	}
	return f
}

// PolygonFromGeoJSON extracts the outer ring of the first polygon found in a
// GeoJSON geometry, feature or feature collection, and validates it.
func PolygonFromGeoJSON(data []byte) ([]Coordinate, error) {
	geometries, err := geoJSONGeometries(data)
	if err != nil {
		return nil, err
	}
	for _, g := range geometries {
		var outer orb.Ring
		switch g := g.(type) {
		case orb.Polygon:
			if len(g) > 0 {
				outer = g[0]
			}
		case orb.MultiPolygon:
			if len(g) > 0 && len(g[0]) > 0 {
				outer = g[0][0]
			}
		default:
			continue
		}
		vertices := FromRing(outer)
		if err := ValidatePolygon(vertices, "geofence"); err != nil {
			return nil, err
		}
		return vertices, nil
	}
	return nil, errors.New("geojson: no polygon found")
}

// RecordsFromGeoJSON converts the Point features of a feature collection into
// records whose payload is the feature properties. Other geometries are skipped.
func RecordsFromGeoJSON(data []byte) ([]Record[map[string]any], error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("geojson: %w", err)
	}
	records := make([]Record[map[string]any], 0, len(fc.Features))
	for i, f := range fc.Features {
		p, ok := f.Geometry.(orb.Point)
		if !ok {
			continue
		}
		c := Coordinate{Lat: p.Lat(), Lng: p.Lon()}
		if err := ValidateCoordinate(c, indexLabel("features", i)); err != nil {
			return nil, err
		}
		payload := map[string]any(f.Properties.Clone())
		if payload == nil {
			payload = map[string]any{}
		}
		records = append(records, NewRecord(c, payload))
	}
	return records, nil
}

func geoJSONGeometries(data []byte) ([]orb.Geometry, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("geojson: %w", err)
	}

	switch head.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, fmt.Errorf("geojson: %w", err)
		}
		geometries := make([]orb.Geometry, 0, len(fc.Features))
		for _, f := range fc.Features {
			geometries = append(geometries, f.Geometry)
		}
		return geometries, nil
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, fmt.Errorf("geojson: %w", err)
		}
		return []orb.Geometry{f.Geometry}, nil
	default:
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, fmt.Errorf("geojson: %w", err)
		}
		return []orb.Geometry{g.Geometry()}, nil
	}
}
