package geom_test

import (
	"encoding/json"
	"testing"

	"kuanb/gosm-geofence/geom"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const squarePolygon = `{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,1],[0,0]]]}`

func TestPolygonFromGeoJSON(t *testing.T) {
	want := []geom.Coordinate{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 1}, {Lat: 1, Lng: 1}, {Lat: 1, Lng: 0}, {Lat: 0, Lng: 0}}

	inputs := map[string]string{
		"geometry": squarePolygon,
		"feature":  `{"type":"Feature","properties":{"name":"sq"},"geometry":` + squarePolygon + `}`,
		"collection": `{"type":"FeatureCollection","features":[
			{"type":"Feature","properties":{},"geometry":{"type":"Point","coordinates":[5,5]}},
			{"type":"Feature","properties":{},"geometry":` + squarePolygon + `}]}`,
		"multipolygon": `{"type":"MultiPolygon","coordinates":[[[[0,0],[1,0],[1,1],[0,1],[0,0]]]]}`,
	}
	for name, in := range inputs {
		t.Run(name, func(t *testing.T) {
			vertices, err := geom.PolygonFromGeoJSON([]byte(in))
			require.NoError(t, err)
			assert.Equal(t, want, vertices)

			area, err := geom.GeofenceArea(vertices, geom.SquareKilometers)
			require.NoError(t, err)
			assert.InDelta(t, 12363.68, area, 0.01)
		})
	}
}

func TestPolygonFromGeoJSONErrors(t *testing.T) {
	_, err := geom.PolygonFromGeoJSON([]byte(`{"type":"Point","coordinates":[1,2]}`))
	assert.EqualError(t, err, "geojson: no polygon found")

	_, err = geom.PolygonFromGeoJSON([]byte(`not json`))
	assert.Error(t, err)

	_, err = geom.PolygonFromGeoJSON([]byte(`{"type":"Polygon","coordinates":[[[0,0],[1,95],[1,1],[0,0]]]}`))
	assert.EqualError(t, err, "geofence[1] latitude must be between -90 and 90 degrees")
}

func TestRecordsFromGeoJSON(t *testing.T) {
	in := `{"type":"FeatureCollection","features":[
		{"type":"Feature","properties":{"name":"cafe","seats":12},"geometry":{"type":"Point","coordinates":[-74.0,40.7]}},
		{"type":"Feature","properties":{"name":"park"},"geometry":` + squarePolygon + `},
		{"type":"Feature","properties":null,"geometry":{"type":"Point","coordinates":[2.35,48.85]}}
	]}`

	records, err := geom.RecordsFromGeoJSON([]byte(in))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, geom.Coordinate{Lat: 40.7, Lng: -74.0}, records[0].Coordinate)
	assert.Equal(t, "cafe", records[0].Payload["name"])
	assert.Equal(t, 12.0, records[0].Payload["seats"])
	assert.NotNil(t, records[1].Payload)
}

func TestPolygonFeatureRoundTrip(t *testing.T) {
	f := geom.PolygonFeature(unitSquare, map[string]any{"name": "unit"})
	data, err := json.Marshal(f)
	require.NoError(t, err)

	vertices, err := geom.PolygonFromGeoJSON(data)
	require.NoError(t, err)
	assert.Equal(t, append(append([]geom.Coordinate{}, unitSquare...), unitSquare[0]), vertices)
	assert.Equal(t, "unit", f.Properties["name"])
	assert.Equal(t, unitSquare, geom.FromRing(geom.Ring(unitSquare)))
}
