package geom

import "math"

// GeofenceArea returns the area enclosed by vertices in the given unit.
//
// The ring is closed implicitly when the first and last vertices differ. The
// area is the spherical line-integral approximation
//
//	A = |Σ Δλ·(2 + sin φ1 + sin φ2)| · R² / 2
//
// which suits small to moderate polygons. Orientation does not matter.
func GeofenceArea(vertices []Coordinate, unit AreaUnit) (float64, error) {
	if err := ValidatePolygon(vertices, "coordinates"); err != nil {
		return 0, err
	}
	if err := unit.check(); err != nil {
		return 0, err
	}
	return unit.FromSquareKilometers(ringArea(closeRing(vertices))), nil
}

// ringArea expects a closed ring and returns its area in square kilometers.
func ringArea(ring []Coordinate) float64 {
	var sum float64
	for i := 0; i < len(ring)-1; i++ {
		p1, p2 := ring[i], ring[i+1]
		sum += toRad(p2.Lng-p1.Lng) * (2 + math.Sin(toRad(p1.Lat)) + math.Sin(toRad(p2.Lat)))
	}
	return math.Abs(sum) * EarthRadiusKm * EarthRadiusKm / 2
}

// closeRing returns vertices with the first vertex appended when the ring is open.
// The input slice is never modified.
func closeRing(vertices []Coordinate) []Coordinate {
	if len(vertices) == 0 || vertices[0] == vertices[len(vertices)-1] {
		return vertices
	}
	ring := make([]Coordinate, len(vertices), len(vertices)+1)
	copy(ring, vertices)
	return append(ring, vertices[0])
}
