package orbital

// OrbitType is the conic section a body follows. It gates which anomaly and
// Kepler formulas are valid for that body.
type OrbitType uint8

const (
	// Circular orbits have e = 0.
	Circular OrbitType = iota + 1
	// Elliptic orbits have 0 < e < 1.
	Elliptic
	// Parabolic orbits have e = 1.
	Parabolic
	// Hyperbolic orbits have e > 1.
	Hyperbolic
)

// String implements the Stringer interface.
func (t OrbitType) String() string {
	switch t {
	case Circular:
		return "circular"
	case Elliptic:
		return "elliptic"
	case Parabolic:
		return "parabolic"
	case Hyperbolic:
		return "hyperbolic"
	default:
		return "unknown"
	}
}

// HasKepler returns whether Kepler's equation is defined for this orbit type.
func (t OrbitType) HasKepler() bool {
	return t == Elliptic || t == Hyperbolic
}

// Closed returns whether the orbit is periodic.
func (t OrbitType) Closed() bool {
	return t == Circular || t == Elliptic
}

// Classify returns the orbit type for the given eccentricity using exact
// comparisons against 0 and 1.
func Classify(e float64) OrbitType {
	return ClassifyWithin(e, 0)
}

// ClassifyWithin is Classify with a tolerance band around the circular and
// parabolic boundaries: |e| <= tol is circular and |e-1| <= tol is parabolic.
// A zero tolerance is the exact test.
func ClassifyWithin(e, tol float64) OrbitType {
	switch {
	case e <= tol:
		return Circular
	case e >= 1-tol && e <= 1+tol:
		return Parabolic
	case e < 1:
		return Elliptic
	default:
		return Hyperbolic
	}
}
