package geom_test

import (
	"errors"
	"testing"

	"kuanb/gosm-geofence/geom"

	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	newYork    = geom.Coordinate{Lat: 40.7128, Lng: -74.0060}
	losAngeles = geom.Coordinate{Lat: 34.0522, Lng: -118.2437}
	london     = geom.Coordinate{Lat: 51.5074, Lng: -0.1278}
	paris      = geom.Coordinate{Lat: 48.8566, Lng: 2.3522}
)

func TestDistanceKnownCities(t *testing.T) {
	t.Run("new york to los angeles", func(t *testing.T) {
		d, err := geom.Distance(newYork, losAngeles, geom.Kilometers)
		require.NoError(t, err)
		assert.InDelta(t, 3935.75, d, 0.1)
	})

	t.Run("london to paris", func(t *testing.T) {
		d, err := geom.Distance(london, paris, geom.Kilometers)
		require.NoError(t, err)
		assert.InDelta(t, 343.56, d, 0.1)
	})
}

func TestDistanceProperties(t *testing.T) {
	points := []geom.Coordinate{newYork, losAngeles, london, paris, {Lat: -33.8688, Lng: 151.2093}, {Lat: 0, Lng: 0}}
	units := []geom.DistanceUnit{geom.Kilometers, geom.Miles, geom.Meters}

	for _, a := range points {
		for _, u := range units {
			d, err := geom.Distance(a, a, u)
			require.NoError(t, err)
			assert.Equal(t, 0.0, d, "distance from %v to itself in %v", a, u)
		}
		for _, b := range points {
			for _, u := range units {
				ab, err := geom.Distance(a, b, u)
				require.NoError(t, err)
				ba, err := geom.Distance(b, a, u)
				require.NoError(t, err)
				assert.InDelta(t, ab, ba, 1e-9, "symmetry %v %v %v", a, b, u)

				again, err := geom.Distance(a, b, u)
				require.NoError(t, err)
				assert.Equal(t, ab, again, "determinism %v %v %v", a, b, u)
			}
		}
	}
}

func TestDistanceUnitConversion(t *testing.T) {
	km, err := geom.Distance(newYork, losAngeles, geom.Kilometers)
	require.NoError(t, err)
	miles, err := geom.Distance(newYork, losAngeles, geom.Miles)
	require.NoError(t, err)
	meters, err := geom.Distance(newYork, losAngeles, geom.Meters)
	require.NoError(t, err)

	assert.InDelta(t, km*0.621371, miles, 1e-9)
	assert.InDelta(t, km*1000, meters, 1e-6)
}

func TestDistanceEdgeCoordinates(t *testing.T) {
	tests := []struct {
		name string
		a, b geom.Coordinate
		want float64
	}{
		{"antipodal on equator", geom.Coordinate{Lat: 0, Lng: 0}, geom.Coordinate{Lat: 0, Lng: 180}, 20015.09},
		{"pole to pole", geom.Coordinate{Lat: 90, Lng: 0}, geom.Coordinate{Lat: -90, Lng: 0}, 20015.09},
		{"across the date line", geom.Coordinate{Lat: 0, Lng: 179.5}, geom.Coordinate{Lat: 0, Lng: -179.5}, 111.19},
		{"same pole different longitude", geom.Coordinate{Lat: 90, Lng: -120}, geom.Coordinate{Lat: 90, Lng: 45}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := geom.Distance(tt.a, tt.b, geom.Kilometers)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, d, 0.01)
		})
	}
}

func TestGreatCircleDistanceMatchesS2(t *testing.T) {
	pairs := [][2]geom.Coordinate{
		{newYork, losAngeles},
		{london, paris},
		{{Lat: -45, Lng: 170}, {Lat: 60, Lng: -20}},
		{{Lat: 89.9, Lng: 0}, {Lat: 10, Lng: 179.9}},
	}
	for _, p := range pairs {
		a := s2.LatLngFromDegrees(p[0].Lat, p[0].Lng)
		b := s2.LatLngFromDegrees(p[1].Lat, p[1].Lng)
		want := a.Distance(b).Radians() * geom.EarthRadiusKm
		assert.InDelta(t, want, geom.GreatCircleDistance(p[0], p[1]), 1e-6)
	}
}

func TestGreatCircleDistanceMatchesOrb(t *testing.T) {
	// orb uses the equatorial radius, so compare after rescaling.
	scale := geom.EarthRadiusKm * 1000 / orb.EarthRadius
	got := geom.GreatCircleDistance(london, paris)
	want := geo.DistanceHaversine(orb.Point{london.Lng, london.Lat}, orb.Point{paris.Lng, paris.Lat}) * scale / 1000
	assert.InEpsilon(t, want, got, 1e-9)
}

func TestDistanceValidation(t *testing.T) {
	valid := geom.Coordinate{Lat: 10, Lng: 10}
	tests := []struct {
		name    string
		a, b    geom.Coordinate
		unit    geom.DistanceUnit
		wantMsg string
	}{
		{"coord1 latitude", geom.Coordinate{Lat: 91, Lng: 0}, valid, geom.Kilometers, "coord1 latitude must be between -90 and 90 degrees"},
		{"coord2 latitude", valid, geom.Coordinate{Lat: -91, Lng: 0}, geom.Kilometers, "coord2 latitude must be between -90 and 90 degrees"},
		{"coord1 longitude", geom.Coordinate{Lat: 0, Lng: 181}, valid, geom.Kilometers, "coord1 longitude must be between -180 and 180 degrees"},
		{"coord2 longitude", valid, geom.Coordinate{Lat: 0, Lng: -180.5}, geom.Kilometers, "coord2 longitude must be between -180 and 180 degrees"},
		{"unknown unit value", valid, valid, geom.DistanceUnit(9), `invalid unit "DistanceUnit(9)": must be one of km, miles, meters`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := geom.Distance(tt.a, tt.b, tt.unit)
			require.Error(t, err)
			assert.EqualError(t, err, tt.wantMsg)
			assert.True(t, errors.Is(err, geom.ErrInvalidArgument))
		})
	}
}

func TestDistanceOutOfRangeFields(t *testing.T) {
	_, err := geom.Distance(geom.Coordinate{Lat: 91, Lng: 0}, newYork, geom.Kilometers)

	var rangeErr *geom.OutOfRangeError
	require.ErrorAs(t, err, &rangeErr)
	assert.Equal(t, "coord1", rangeErr.Label)
	assert.Equal(t, "latitude", rangeErr.Field)
	assert.Equal(t, 91.0, rangeErr.Value)
	assert.Equal(t, -90.0, rangeErr.Min)
	assert.Equal(t, 90.0, rangeErr.Max)
}
