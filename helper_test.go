package orbital

import (
	"fmt"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"
)

const eps = 1e-9

// vectorsEqual returns whether both vectors are equal within a relative
// tolerance of the norm of a.
func vectorsEqual(a, b r3.Vec, tol float64) bool {
	return r3.Norm(r3.Sub(a, b)) <= tol*math.Max(r3.Norm(a), 1e-300)
}

// anglesEqual returns whether two angles in Radians are equal.
func anglesEqual(a, b float64) (bool, error) {
	diff := math.Abs(a - b)
	if diff < eps || math.Abs(diff-2*math.Pi) < eps {
		return true, nil
	}
	return false, fmt.Errorf("difference of %3.10fπ", diff/math.Pi)
}

func assertWithin(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if !scalar.EqualWithinAbsOrRel(got, want, tol, tol) {
		t.Fatalf("%s=%.15g expected %.15g (tol %g)", name, got, want, tol)
	}
}

// testBody builds a body from elements around the Earth and fails the test on
// error.
func testBody(t *testing.T, a, e, i, Ω, ω, ν float64) *Body {
	t.Helper()
	b, err := NewBodyFromElements(a, e, i, Ω, ω, ν, DefaultConfig(Earth.GM()))
	if err != nil {
		t.Fatalf("could not build body: %s", err)
	}
	return b
}

// earthFixture is the heliocentric state of the Earth in km and km/s.
func earthFixture(t *testing.T) *Body {
	t.Helper()
	R := r3.Vec{X: -1.491581119145494e8, Y: -5.727627782875820e6, Z: -5.679400441655191e3}
	V := r3.Vec{X: 8.635360877981350e-1, Y: -2.985696666561909e1, Z: 1.972889032860081e-3}
	b, err := NewBody(R, V, 1.328905188132376e11)
	if err != nil {
		t.Fatalf("could not build the Earth: %s", err)
	}
	return b
}

type elements struct {
	a, e, i, Ω, ω, ν float64
}

var ellipticCases = []elements{
	{8000, 0.1, 0.5, 2.0, 1.0, 1.2},
	{26600, 0.74, 1.1, 4.0, 4.5, 3.9},
	{42164, 0.2, 0.001, 1.0, 2.0, 2.5},
	{36127.343, 0.832853, 1.5336055595497549, 3.977574996566092, 0.931742816899989, 1.6115525049958896},
}

var hyperbolicCases = []elements{
	{-12000, 1.8, 0.3, 0.7, 5.5, 0.9},
	{-12000, 1.8, 2.9, 0.7, 5.5, 5.6},
}

// allCases returns a fresh slice of every elliptic and hyperbolic case.
func allCases() []elements {
	cases := make([]elements, 0, len(ellipticCases)+len(hyperbolicCases))
	cases = append(cases, ellipticCases...)
	return append(cases, hyperbolicCases...)
}
