package orbital

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// AU is one astronomical unit in kilometers.
	AU = 1.49597870700e8
	// Day is one day in seconds.
	Day = 86400.0
)

// Units is a length and time unit system. The engine works in kilometers,
// seconds and radians; every input or output in another system goes through
// these conversions.
type Units struct {
	Name   string
	Length float64 // kilometers per length unit
	Time   float64 // seconds per time unit
}

var (
	// KilometersSeconds is the internal unit system.
	KilometersSeconds = Units{"km-s", 1, 1}
	// MetersSeconds is the SI unit system.
	MetersSeconds = Units{"m-s", 1e-3, 1}
	// AUDays is used by heliocentric ephemerides.
	AUDays = Units{"au-day", AU, Day}
)

// UnitsFromString returns the unit system from its name.
func UnitsFromString(name string) (Units, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "km-s", "km", "kms":
		return KilometersSeconds, nil
	case "m-s", "m", "si":
		return MetersSeconds, nil
	case "au-day", "au", "auday":
		return AUDays, nil
	default:
		return Units{}, fmt.Errorf("unknown unit system '%s'", name)
	}
}

// String implements the Stringer interface.
func (u Units) String() string {
	return u.Name
}

func (u Units) speed() float64 {
	return u.Length / u.Time
}

// LengthToInternal converts a length into kilometers.
func (u Units) LengthToInternal(l float64) float64 {
	return l * u.Length
}

// LengthFromInternal converts a length in kilometers into this system.
func (u Units) LengthFromInternal(l float64) float64 {
	return l / u.Length
}

// DurationToInternal converts a duration into seconds.
func (u Units) DurationToInternal(dt float64) float64 {
	return dt * u.Time
}

// DurationFromInternal converts a duration in seconds into this system.
func (u Units) DurationFromInternal(dt float64) float64 {
	return dt / u.Time
}

// MuToInternal converts a gravitational parameter into km³/s².
func (u Units) MuToInternal(μ float64) float64 {
	return μ * u.Length * u.Length * u.Length / (u.Time * u.Time)
}

// MuFromInternal converts a gravitational parameter in km³/s² into this system.
func (u Units) MuFromInternal(μ float64) float64 {
	return μ * (u.Time * u.Time) / (u.Length * u.Length * u.Length)
}

// StateToInternal converts a position and velocity into km and km/s.
func (u Units) StateToInternal(R, V r3.Vec) (r3.Vec, r3.Vec) {
	return r3.Scale(u.Length, R), r3.Scale(u.speed(), V)
}

// StateFromInternal converts a position and velocity in km and km/s into this
// system.
func (u Units) StateFromInternal(R, V r3.Vec) (r3.Vec, r3.Vec) {
	return r3.Scale(1/u.Length, R), r3.Scale(1/u.speed(), V)
}
