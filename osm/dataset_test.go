package osm

import (
	"testing"

	"kuanb/gosm-geofence/geom"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderPOIs(t *testing.T) {
	b := newBuilder(Filter{POITag: "amenity"})
	b.addNode(3, 40.7, -74.0, map[string]string{"amenity": "cafe", "name": "Joe"})
	b.addNode(1, 40.8, -73.9, map[string]string{"amenity": "bar"})
	b.addNode(2, 40.9, -73.8, map[string]string{"highway": "crossing"})

	ds := b.dataset()
	require.Len(t, ds.POIs, 2)
	assert.Equal(t, int64(1), ds.POIs[0].Payload.ID)
	assert.Equal(t, int64(3), ds.POIs[1].Payload.ID)
	assert.Equal(t, "Joe", ds.POIs[1].Payload.Name)
	assert.Equal(t, geom.Coordinate{Lat: 40.7, Lng: -74.0}, ds.POIs[1].Coordinate)
	assert.Empty(t, ds.Areas)
}

func TestBuilderAreas(t *testing.T) {
	b := newBuilder(Filter{AreaTag: "landuse"})
	b.addNode(1, 0, 0, nil)
	b.addNode(2, 0, 1, nil)
	b.addNode(3, 1, 1, nil)
	b.addNode(4, 1, 0, nil)

	park := map[string]string{"landuse": "grass", "name": "Park"}
	b.addWay(10, []int64{1, 2, 3, 4, 1}, park)
	b.addWay(11, []int64{1, 2, 3, 1}, park)
	b.addWay(12, []int64{1, 2, 3}, park)                                     // open
	b.addWay(13, []int64{1, 2, 3, 1}, map[string]string{"landuse": "grass"}) // unnamed
	b.addWay(14, []int64{1, 2, 99, 1}, map[string]string{"landuse": "x", "name": "Broken"})
	b.addWay(15, []int64{1, 2, 3, 1}, map[string]string{"building": "yes", "name": "House"})

	ds := b.dataset()
	require.Len(t, ds.Areas, 2)
	assert.Len(t, ds.Areas["Park"], 5)
	assert.Len(t, ds.Areas["Park (way 11)"], 4)
	assert.Equal(t, 3, b.skippedWays)

	area, err := geom.GeofenceArea(ds.Areas["Park"], geom.SquareKilometers)
	require.NoError(t, err)
	assert.InDelta(t, 12363.68, area, 0.01)

	inside, err := geom.InGeofence(geom.Coordinate{Lat: 0.5, Lng: 0.5}, ds.Areas["Park"])
	require.NoError(t, err)
	assert.True(t, inside)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("testdata/does-not-exist.osm.pbf", Filter{POITag: "amenity"})
	assert.Error(t, err)
}
