package geom

// InGeofence reports whether c lies inside the polygon geofence.
//
// It uses even-odd ray casting directly on lat/lng pairs, treating them as
// planar coordinates. That is fine for small geofences but is inaccurate near
// the poles and for polygons crossing the antimeridian. Points exactly on an
// edge may fall either way.
func InGeofence(c Coordinate, geofence []Coordinate) (bool, error) {
	if err := ValidateCoordinate(c, "coord"); err != nil {
		return false, err
	}
	if err := ValidatePolygon(geofence, "geofence"); err != nil {
		return false, err
	}
	return ringContains(geofence, c), nil
}

func ringContains(ring []Coordinate, p Coordinate) bool {
	inside := false
	n := len(ring)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		vi, vj := ring[i], ring[j]
		if (vi.Lat > p.Lat) != (vj.Lat > p.Lat) &&
			p.Lng < (vj.Lng-vi.Lng)*(p.Lat-vi.Lat)/(vj.Lat-vi.Lat)+vi.Lng {
			inside = !inside
		}
	}
	return inside
}

// Proximity describes how close a coordinate is to a geofence boundary.
type Proximity struct {
	IsNear       bool       `json:"isNear"`
	Distance     float64    `json:"distance"`
	ClosestPoint Coordinate `json:"closestPoint"`
}

// NearGeofence measures the distance from c to the boundary of geofence and
// reports whether it is within maxDistance (both in unit).
//
// For every edge the closest point is found on a local equirectangular plane
// centred on c; its distance is then measured with the Haversine formula. The
// distance is to the boundary, so it is non-zero for points well inside.
func NearGeofence(c Coordinate, geofence []Coordinate, maxDistance float64, unit DistanceUnit) (Proximity, error) {
	if err := ValidateCoordinate(c, "coord"); err != nil {
		return Proximity{}, err
	}
	if err := ValidatePolygon(geofence, "geofence"); err != nil {
		return Proximity{}, err
	}
	if err := validateThreshold(maxDistance); err != nil {
		return Proximity{}, err
	}
	if err := unit.check(); err != nil {
		return Proximity{}, err
	}

	ring := closeRing(geofence)
	best := -1.0
	var closest Coordinate
	for i := 0; i < len(ring)-1; i++ {
		foot := closestOnSegment(c, ring[i], ring[i+1])
		d := GreatCircleDistance(c, foot)
		if best < 0 || d < best {
			best = d
			closest = foot
		}
	}

	distance := unit.FromKilometers(best)
	return Proximity{
		IsNear:       distance <= maxDistance,
		Distance:     distance,
		ClosestPoint: closest,
	}, nil
}
