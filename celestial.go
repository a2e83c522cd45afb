package orbital

import (
	"fmt"
	"strings"
)

// CelestialObject defines a central body. Only its gravitational parameter
// reaches the engine.
type CelestialObject struct {
	Name   string
	Radius float64 // km
	μ      float64 // km³/s²
}

// NewCelestialObject returns a central body from its name, radius (km) and
// gravitational parameter (km³/s²).
func NewCelestialObject(name string, radius, μ float64) CelestialObject {
	return CelestialObject{name, radius, μ}
}

// GM returns μ (which is unexported because it's a lowercase letter)
func (c CelestialObject) GM() float64 {
	return c.μ
}

// String implements the Stringer interface.
func (c CelestialObject) String() string {
	return c.Name + " body"
}

// Equals returns whether the provided celestial object is the same.
func (c CelestialObject) Equals(b CelestialObject) bool {
	return c.Name == b.Name && c.Radius == b.Radius && c.μ == b.μ
}

// CelestialObjectFromString returns the object from its name
func CelestialObjectFromString(name string) (CelestialObject, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sun":
		return Sun, nil
	case "mercury":
		return Mercury, nil
	case "venus":
		return Venus, nil
	case "earth":
		return Earth, nil
	case "mars":
		return Mars, nil
	case "jupiter":
		return Jupiter, nil
	case "saturn":
		return Saturn, nil
	case "uranus":
		return Uranus, nil
	case "neptune":
		return Neptune, nil
	case "pluto":
		return Pluto, nil
	default:
		return CelestialObject{}, fmt.Errorf("undefined body '%s'", name)
	}
}

/* Definitions */

// Sun is our closest star.
var Sun = CelestialObject{"Sun", 695700, 1.32712440017987e11}

// Mercury is hot.
var Mercury = CelestialObject{"Mercury", 2439.7, 2.2031868551e4}

// Venus is poisonous.
var Venus = CelestialObject{"Venus", 6051.8, 3.24858599e5}

// Earth is home.
var Earth = CelestialObject{"Earth", 6378.1363, 3.98600433e5}

// Mars is the vacation place.
var Mars = CelestialObject{"Mars", 3396.19, 4.28283100e4}

// Jupiter is big.
var Jupiter = CelestialObject{"Jupiter", 71492.0, 1.266865361e8}

// Saturn floats and that's really cool.
var Saturn = CelestialObject{"Saturn", 60268.0, 3.7931208e7}

// Uranus is no joke.
var Uranus = CelestialObject{"Uranus", 25559.0, 5.7939513e6}

// Neptune is windy.
var Neptune = CelestialObject{"Neptune", 24764.0, 6.836529e6}

// Pluto is not a planet and had that down ranking coming.
var Pluto = CelestialObject{"Pluto", 1188.3, 8.696e2}
