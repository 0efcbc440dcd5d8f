package geom

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidArgument is matched by every validation error returned from this package.
var ErrInvalidArgument = errors.New("invalid argument")

// MalformedCoordinateError reports a value that does not expose numeric lat and lng fields.
type MalformedCoordinateError struct {
	Label  string
	Field  string // "lat", "lng", or empty when the value is not an object at all
	Reason string
}

func (e *MalformedCoordinateError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s must be an object with numeric lat and lng", e.Label)
	}
	return fmt.Sprintf("%s %s %s", e.Label, e.Field, e.Reason)
}

func (e *MalformedCoordinateError) Is(target error) bool { return target == ErrInvalidArgument }
func (e *MalformedCoordinateError) Kind() string         { return "malformed_coordinate" }

// OutOfRangeError reports a latitude or longitude outside its allowed bounds.
type OutOfRangeError struct {
	Label string
	Field string // "latitude" or "longitude"
	Value float64
	Min   float64
	Max   float64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s %s must be between %g and %g degrees", e.Label, e.Field, e.Min, e.Max)
}

func (e *OutOfRangeError) Is(target error) bool { return target == ErrInvalidArgument }
func (e *OutOfRangeError) Kind() string         { return "out_of_range" }

// UnsupportedUnitError reports a unit that is not a member of the allowed set.
type UnsupportedUnitError struct {
	Value   string
	Allowed []string
}

func (e *UnsupportedUnitError) Error() string {
	return fmt.Sprintf("invalid unit %q: must be one of %s", e.Value, strings.Join(e.Allowed, ", "))
}

func (e *UnsupportedUnitError) Is(target error) bool { return target == ErrInvalidArgument }
func (e *UnsupportedUnitError) Kind() string         { return "unsupported_unit" }

// UnitTypeError reports a unit given as something other than a string.
type UnitTypeError struct {
	Value any
}

func (e *UnitTypeError) Error() string { return "unit must be a string" }

func (e *UnitTypeError) Is(target error) bool { return target == ErrInvalidArgument }
func (e *UnitTypeError) Kind() string         { return "unit_type" }

// TooFewVerticesError reports a polygon with fewer vertices than required.
type TooFewVerticesError struct {
	Label    string
	Count    int
	Required int
}

func (e *TooFewVerticesError) Error() string {
	return fmt.Sprintf("%s must contain at least %d points, got %d", e.Label, e.Required, e.Count)
}

func (e *TooFewVerticesError) Is(target error) bool { return target == ErrInvalidArgument }
func (e *TooFewVerticesError) Kind() string         { return "too_few_vertices" }

// NotASequenceError reports a collection argument that is not an array.
type NotASequenceError struct {
	Argument string
}

func (e *NotASequenceError) Error() string { return e.Argument + " must be an array" }

func (e *NotASequenceError) Is(target error) bool { return target == ErrInvalidArgument }
func (e *NotASequenceError) Kind() string         { return "not_a_sequence" }

// InvalidThresholdError reports a distance threshold that is negative or not a number.
type InvalidThresholdError struct {
	Argument string
	Value    any
}

func (e *InvalidThresholdError) Error() string {
	return e.Argument + " must be a non-negative number"
}

func (e *InvalidThresholdError) Is(target error) bool { return target == ErrInvalidArgument }
func (e *InvalidThresholdError) Kind() string         { return "invalid_threshold" }
