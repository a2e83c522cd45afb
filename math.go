package orbital

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	deg2rad = math.Pi / 180
	twoπ    = 2 * math.Pi
	// zeroε is the length under which a vector is treated as the zero vector.
	zeroε = 1e-12
	// acosε is how far outside [-1, 1] a cosine may drift from round-off
	// before it is reported as degenerate instead of clamped.
	acosε = 1e-9
)

// zAxis is the inertial k̂ axis.
var zAxis = r3.Vec{X: 0, Y: 0, Z: 1}

// unit returns the unit vector of a given vector, or the zero vector if its
// norm is (almost) zero.
func unit(a r3.Vec) r3.Vec {
	n := r3.Norm(a)
	if scalar.EqualWithinAbs(n, 0, zeroε) {
		return r3.Vec{}
	}
	return r3.Scale(1/n, a)
}

// isZero returns whether the vector is (almost) null relative to ref, the
// magnitude of the quantities it was computed from.
func isZero(a r3.Vec, ref float64) bool {
	if ref <= 0 {
		ref = 1
	}
	return r3.Norm(a) <= zeroε*ref
}

// finite returns whether all components are finite numbers.
func finite(a r3.Vec) bool {
	for _, c := range []float64{a.X, a.Y, a.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// sign returns the sign of a given number.
func sign(v float64) float64 {
	if scalar.EqualWithinAbs(v, 0, zeroε) {
		return 1
	}
	return v / math.Abs(v)
}

// acos is math.Acos with round-off clamping: cosines within acosε outside of
// [-1, 1] are pulled back in, anything further out is not a cosine and ok is
// false.
func acos(c float64) (θ float64, ok bool) {
	if math.IsNaN(c) {
		return math.NaN(), false
	}
	if math.Abs(c) > 1 {
		if math.Abs(c)-1 > acosε {
			return math.NaN(), false
		}
		c = sign(c)
	}
	return math.Acos(c), true
}

// normalizeAngle wraps an angle into [0, 2π).
func normalizeAngle(θ float64) float64 {
	θ = math.Mod(θ, twoπ)
	if θ < 0 {
		θ += twoπ
	}
	if θ >= twoπ {
		θ = 0
	}
	return θ
}

// wrapπ wraps an angle into (-π, π].
func wrapπ(θ float64) float64 {
	θ = normalizeAngle(θ)
	if θ > math.Pi {
		θ -= twoπ
	}
	return θ
}

// Deg2rad converts degrees to radians, and enforced only positive numbers.
func Deg2rad(a float64) float64 {
	return normalizeAngle(a * deg2rad)
}

// Rad2deg converts radians to degrees, and enforced only positive numbers.
func Rad2deg(a float64) float64 {
	return normalizeAngle(a) / deg2rad
}
