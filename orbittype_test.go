package orbital

import (
	"math"
	"testing"
)

func TestClassify(t *testing.T) {
	for _, tc := range []struct {
		e   float64
		exp OrbitType
	}{
		{0.0, Circular},
		{0.5, Elliptic},
		{1.0, Parabolic},
		{1.5, Hyperbolic},
		// Exact comparisons: anything off the boundaries is not circular or parabolic.
		{math.SmallestNonzeroFloat64, Elliptic},
		{math.Nextafter(1, 0), Elliptic},
		{math.Nextafter(1, 2), Hyperbolic},
	} {
		if got := Classify(tc.e); got != tc.exp {
			t.Fatalf("Classify(%g)=%s expected %s", tc.e, got, tc.exp)
		}
	}
}

func TestClassifyWithin(t *testing.T) {
	const tol = 1e-6
	for _, tc := range []struct {
		e   float64
		exp OrbitType
	}{
		{0, Circular},
		{5e-7, Circular},
		{tol, Circular},
		{2e-6, Elliptic},
		{1 - 5e-7, Parabolic},
		{1 + 5e-7, Parabolic},
		{1 - 2e-6, Elliptic},
		{1 + 2e-6, Hyperbolic},
	} {
		if got := ClassifyWithin(tc.e, tol); got != tc.exp {
			t.Fatalf("ClassifyWithin(%g, %g)=%s expected %s", tc.e, tol, got, tc.exp)
		}
	}
	if ClassifyWithin(1, 0) != Classify(1) || ClassifyWithin(0.3, 0) != Classify(0.3) {
		t.Fatal("zero tolerance should be the exact classification")
	}
}

func TestOrbitTypeGates(t *testing.T) {
	if Circular.HasKepler() || Parabolic.HasKepler() {
		t.Fatal("Kepler's equation is undefined for circular and parabolic orbits")
	}
	if !Elliptic.HasKepler() || !Hyperbolic.HasKepler() {
		t.Fatal("Kepler's equation is defined for elliptic and hyperbolic orbits")
	}
	if !Circular.Closed() || !Elliptic.Closed() || Parabolic.Closed() || Hyperbolic.Closed() {
		t.Fatal("invalid closed orbit flags")
	}
	if Elliptic.String() != "elliptic" || OrbitType(0).String() != "unknown" {
		t.Fatal("invalid orbit type names")
	}
}
