package geom

import (
	"cmp"
	"slices"
)

// WithinDistance returns the records within maxDistance of from, sorted by
// ascending distance. Ties keep their input order. The result is never nil.
func WithinDistance[T any](from Coordinate, records []Record[T], maxDistance float64, unit DistanceUnit) ([]Annotated[T], error) {
	if err := validateQuery(from, records, unit); err != nil {
		return nil, err
	}
	if err := validateThreshold(maxDistance); err != nil {
		return nil, err
	}

	results := make([]Annotated[T], 0)
	for _, r := range records {
		d := unit.FromKilometers(GreatCircleDistance(from, r.Coordinate))
		if d <= maxDistance {
			results = append(results, Annotated[T]{Record: r, Distance: d})
		}
	}
	slices.SortStableFunc(results, func(a, b Annotated[T]) int {
		return cmp.Compare(a.Distance, b.Distance)
	})
	return results, nil
}

// Closest returns the record nearest to from, or nil when records is empty.
// The first of several equally near records wins.
func Closest[T any](from Coordinate, records []Record[T], unit DistanceUnit) (*Annotated[T], error) {
	return extreme(from, records, unit, func(d, best float64) bool { return d < best })
}

// Furthest returns the record furthest from from, or nil when records is empty.
// The first of several equally far records wins.
func Furthest[T any](from Coordinate, records []Record[T], unit DistanceUnit) (*Annotated[T], error) {
	return extreme(from, records, unit, func(d, best float64) bool { return d > best })
}

func extreme[T any](from Coordinate, records []Record[T], unit DistanceUnit, better func(d, best float64) bool) (*Annotated[T], error) {
	if err := validateQuery(from, records, unit); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	var result *Annotated[T]
	for _, r := range records {
		d := unit.FromKilometers(GreatCircleDistance(from, r.Coordinate))
		if result == nil || better(d, result.Distance) {
			result = &Annotated[T]{Record: r, Distance: d}
		}
	}
	return result, nil
}

func validateQuery[T any](from Coordinate, records []Record[T], unit DistanceUnit) error {
	if err := ValidateCoordinate(from, "fromCoord"); err != nil {
		return err
	}
	if err := unit.check(); err != nil {
		return err
	}
	return validateRecords(records, "coordinates")
}
