// Package geom implements great-circle distance, polygon area, point-in-polygon
// and proximity queries over latitude/longitude coordinates on a spherical Earth.
package geom

import (
	"fmt"
	"math"
)

// Coordinate is a latitude/longitude pair in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// Record is a coordinate carrying an opaque caller payload.
type Record[T any] struct {
	Coordinate
	Payload T
}

// Annotated is a record together with its distance from a reference point.
type Annotated[T any] struct {
	Record[T]
	Distance float64
}

// NewRecord wraps a coordinate and its payload.
func NewRecord[T any](c Coordinate, payload T) Record[T] {
	return Record[T]{Coordinate: c, Payload: payload}
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%g, %g)", c.Lat, c.Lng)
}

// ValidateCoordinate checks that c holds finite values with lat in [-90, 90] and
// lng in [-180, 180]. label prefixes the error message.
func ValidateCoordinate(c Coordinate, label string) error {
	if math.IsNaN(c.Lat) || math.IsInf(c.Lat, 0) {
		return &MalformedCoordinateError{Label: label, Field: "lat", Reason: "must be a finite number"}
	}
	if math.IsNaN(c.Lng) || math.IsInf(c.Lng, 0) {
		return &MalformedCoordinateError{Label: label, Field: "lng", Reason: "must be a finite number"}
	}
	if c.Lat < -90 || c.Lat > 90 {
		return &OutOfRangeError{Label: label, Field: "latitude", Value: c.Lat, Min: -90, Max: 90}
	}
	if c.Lng < -180 || c.Lng > 180 {
		return &OutOfRangeError{Label: label, Field: "longitude", Value: c.Lng, Min: -180, Max: 180}
	}
	return nil
}

// ValidatePolygon checks that vertices holds at least three valid coordinates.
// Vertex errors are labelled "<label>[i]".
func ValidatePolygon(vertices []Coordinate, label string) error {
	if len(vertices) < minPolygonVertices {
		return &TooFewVerticesError{Label: label, Count: len(vertices), Required: minPolygonVertices}
	}
	for i, v := range vertices {
		if err := ValidateCoordinate(v, indexLabel(label, i)); err != nil {
			return err
		}
	}
	return nil
}

func validateRecords[T any](records []Record[T], label string) error {
	for i := range records {
		if err := ValidateCoordinate(records[i].Coordinate, indexLabel(label, i)); err != nil {
			return err
		}
	}
	return nil
}

func validateThreshold(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return &InvalidThresholdError{Argument: "max distance", Value: v}
	}
	return nil
}

func indexLabel(label string, i int) string {
	return fmt.Sprintf("%s[%d]", label, i)
}

const minPolygonVertices = 3
