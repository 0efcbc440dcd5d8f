package geom

import (
	"encoding/json"
	"maps"
)

// The functions below accept values shaped like decoded JSON (map[string]any,
// []any, float64, json.Number, string) and turn them into validated geometry.

// CoordinateFromValue reads an object with numeric "lat" and "lng" fields and validates it.
func CoordinateFromValue(v any, label string) (Coordinate, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return Coordinate{}, &MalformedCoordinateError{Label: label}
	}
	return coordinateFromObject(obj, label)
}

func coordinateFromObject(obj map[string]any, label string) (Coordinate, error) {
	lat, ok := number(obj["lat"])
	if !ok {
		return Coordinate{}, &MalformedCoordinateError{Label: label, Field: "lat", Reason: "must be a number"}
	}
	lng, ok := number(obj["lng"])
	if !ok {
		return Coordinate{}, &MalformedCoordinateError{Label: label, Field: "lng", Reason: "must be a number"}
	}
	c := Coordinate{Lat: lat, Lng: lng}
	if err := ValidateCoordinate(c, label); err != nil {
		return Coordinate{}, err
	}
	return c, nil
}

// RecordsFromValue reads an array of coordinate objects. Each record's payload
// is a copy of the full element object, so unknown fields survive.
func RecordsFromValue(v any, label string) ([]Record[map[string]any], error) {
	items, ok := v.([]any)
	if !ok {
		return nil, &NotASequenceError{Argument: label}
	}
	records := make([]Record[map[string]any], 0, len(items))
	for i, item := range items {
		elemLabel := indexLabel(label, i)
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, &MalformedCoordinateError{Label: elemLabel}
		}
		c, err := coordinateFromObject(obj, elemLabel)
		if err != nil {
			return nil, err
		}
		records = append(records, Record[map[string]any]{Coordinate: c, Payload: maps.Clone(obj)})
	}
	return records, nil
}

// PolygonFromValue reads an array of at least three coordinate objects.
func PolygonFromValue(v any, label string) ([]Coordinate, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, &NotASequenceError{Argument: label}
	}
	if len(items) < minPolygonVertices {
		return nil, &TooFewVerticesError{Label: label, Count: len(items), Required: minPolygonVertices}
	}
	vertices := make([]Coordinate, 0, len(items))
	for i, item := range items {
		c, err := CoordinateFromValue(item, indexLabel(label, i))
		if err != nil {
			return nil, err
		}
		vertices = append(vertices, c)
	}
	return vertices, nil
}

// UnitFromValue returns the unit string held by v, or "" when v is absent.
func UnitFromValue(v any) (string, error) {
	switch u := v.(type) {
	case nil:
		return "", nil
	case string:
		return u, nil
	default:
		return "", &UnitTypeError{Value: v}
	}
}

// ThresholdFromValue reads a non-negative finite number.
func ThresholdFromValue(v any, argument string) (float64, error) {
	f, ok := number(v)
	if !ok {
		return 0, &InvalidThresholdError{Argument: argument, Value: v}
	}
	if err := validateThreshold(f); err != nil {
		return 0, &InvalidThresholdError{Argument: argument, Value: v}
	}
	return f, nil
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
