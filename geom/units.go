package geom

import (
	"fmt"
	"slices"
	"strings"
)

// Conversion factors from kilometers and square kilometers.
const (
	KmToMiles    = 0.621371
	KmToMeters   = 1000.0
	Km2ToMiles2  = 0.386102
	Km2ToMeters2 = 1_000_000.0
)

// DistanceUnit is a linear distance unit. The zero value is Kilometers.
type DistanceUnit int

const (
	Kilometers DistanceUnit = iota
	Miles
	Meters
)

var distanceUnitNames = []string{"km", "miles", "meters"}

// ParseDistanceUnit parses a case-insensitive unit name. An empty string yields Kilometers.
func ParseDistanceUnit(s string) (DistanceUnit, error) {
	i, err := parseUnit(s, distanceUnitNames)
	return DistanceUnit(i), err
}

func (u DistanceUnit) String() string {
	if !u.valid() {
		return fmt.Sprintf("DistanceUnit(%d)", int(u))
	}
	return distanceUnitNames[u]
}

// FromKilometers converts a distance in kilometers to u.
func (u DistanceUnit) FromKilometers(km float64) float64 {
	switch u {
	case Miles:
		return km * KmToMiles
	case Meters:
		return km * KmToMeters
	default:
		return km
	}
}

func (u DistanceUnit) MarshalText() ([]byte, error) {
	if !u.valid() {
		return nil, u.unsupported()
	}
	return []byte(u.String()), nil
}

func (u *DistanceUnit) UnmarshalText(text []byte) error {
	parsed, err := ParseDistanceUnit(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

func (u DistanceUnit) valid() bool { return u >= Kilometers && u <= Meters }

func (u DistanceUnit) check() error {
	if !u.valid() {
		return u.unsupported()
	}
	return nil
}

func (u DistanceUnit) unsupported() error {
	return &UnsupportedUnitError{Value: u.String(), Allowed: slices.Clone(distanceUnitNames)}
}

// AreaUnit is an area unit. The zero value is SquareKilometers.
type AreaUnit int

const (
	SquareKilometers AreaUnit = iota
	SquareMiles
	SquareMeters
)

var areaUnitNames = []string{"km2", "miles2", "meters2"}

// ParseAreaUnit parses a case-insensitive unit name. An empty string yields SquareKilometers.
func ParseAreaUnit(s string) (AreaUnit, error) {
	i, err := parseUnit(s, areaUnitNames)
	return AreaUnit(i), err
}

func (u AreaUnit) String() string {
	if !u.valid() {
		return fmt.Sprintf("AreaUnit(%d)", int(u))
	}
	return areaUnitNames[u]
}

// FromSquareKilometers converts an area in square kilometers to u.
func (u AreaUnit) FromSquareKilometers(km2 float64) float64 {
	switch u {
	case SquareMiles:
		return km2 * Km2ToMiles2
	case SquareMeters:
		return km2 * Km2ToMeters2
	default:
		return km2
	}
}

func (u AreaUnit) MarshalText() ([]byte, error) {
	if !u.valid() {
		return nil, u.unsupported()
	}
	return []byte(u.String()), nil
}

func (u *AreaUnit) UnmarshalText(text []byte) error {
	parsed, err := ParseAreaUnit(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

func (u AreaUnit) valid() bool { return u >= SquareKilometers && u <= SquareMeters }

func (u AreaUnit) check() error {
	if !u.valid() {
		return u.unsupported()
	}
	return nil
}

func (u AreaUnit) unsupported() error {
	return &UnsupportedUnitError{Value: u.String(), Allowed: slices.Clone(areaUnitNames)}
}

// parseUnit returns the index of s in allowed, where index 0 is the default
// used for an empty s.
func parseUnit(s string, allowed []string) (int, error) {
	if s == "" {
		return 0, nil
	}
	normalized := strings.ToLower(s)
	for i, name := range allowed {
		if name == normalized {
			return i, nil
		}
	}
	return 0, &UnsupportedUnitError{Value: s, Allowed: slices.Clone(allowed)}
}
