package geom

import "math"

// EarthRadiusKm is the mean Earth radius used by every calculation in this package.
const EarthRadiusKm = 6371.0

// GreatCircleDistance calculates the distance between two points in kilometers using the Haversine formula.
// The inputs are not validated.
func GreatCircleDistance(a, b Coordinate) float64 {
	dLat := toRad(b.Lat - a.Lat)
	dLng := toRad(b.Lng - a.Lng)
	lat1Rad := toRad(a.Lat)
	lat2Rad := toRad(b.Lat)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dLng/2)*math.Sin(dLng/2)
	// rounding can push h marginally outside [0, 1] for antipodal points
	h = math.Min(math.Max(h, 0), 1)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c
}

// Distance returns the great-circle distance between a and b in the given unit.
// a and b are validated as "coord1" and "coord2".
func Distance(a, b Coordinate, unit DistanceUnit) (float64, error) {
	if err := ValidateCoordinate(a, "coord1"); err != nil {
		return 0, err
	}
	if err := ValidateCoordinate(b, "coord2"); err != nil {
		return 0, err
	}
	if err := unit.check(); err != nil {
		return 0, err
	}
	return unit.FromKilometers(GreatCircleDistance(a, b)), nil
}

// closestOnSegment returns the point of segment ab closest to p.
// Uses an equirectangular projection centred on p (accurate for short distances).
func closestOnSegment(p, a, b Coordinate) Coordinate {
	cosLat := math.Cos(toRad(p.Lat))

	// plane coordinates in degrees relative to p
	ax, ay := (a.Lng-p.Lng)*cosLat, a.Lat-p.Lat
	bx, by := (b.Lng-p.Lng)*cosLat, b.Lat-p.Lat

	dx := bx - ax
	dy := by - ay
	if dx == 0 && dy == 0 {
		// a and b are the same point
		return a
	}
	t := -(ax*dx + ay*dy) / (dx*dx + dy*dy)
	if t <= 0 {
		return a
	} else if t >= 1 {
		return b
	}
	return Coordinate{
		Lat: a.Lat + t*(b.Lat-a.Lat),
		Lng: a.Lng + t*(b.Lng-a.Lng),
	}
}

func toRad(deg float64) float64 { return deg * math.Pi / 180.0 }
