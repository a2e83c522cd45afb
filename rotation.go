package orbital

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// R1 rotation about the 1st axis.
func R1(x float64) *mat.Dense {
	s, c := math.Sincos(x)
	return mat.NewDense(3, 3, []float64{1, 0, 0, 0, c, s, 0, -s, c})
}

// R3 rotation about the 3rd axis.
func R3(x float64) *mat.Dense {
	s, c := math.Sincos(x)
	return mat.NewDense(3, 3, []float64{c, s, 0, -s, c, 0, 0, 0, 1})
}

// ThreeOneThree returns the inertial to perifocal rotation for the argument of
// periapsis ω, inclination i and longitude of the ascending node Ω: a
// rotation about z by Ω, then about x by i, then about z by ω.
func ThreeOneThree(ω, i, Ω float64) *mat.Dense {
	var m, tmp mat.Dense
	tmp.Mul(R1(i), R3(Ω))
	m.Mul(R3(ω), &tmp)
	return &m
}

// PerifocalToInertial rotates a perifocal vector into the inertial frame.
func PerifocalToInertial(ω, i, Ω float64, v r3.Vec) r3.Vec {
	// The 3-1-3 rotation is orthonormal, so its inverse is its transpose.
	return MxV33(ThreeOneThree(ω, i, Ω).T(), v)
}

// InertialToPerifocal rotates an inertial vector into the perifocal frame.
func InertialToPerifocal(ω, i, Ω float64, v r3.Vec) r3.Vec {
	return MxV33(ThreeOneThree(ω, i, Ω), v)
}

// MakeFrame returns the rotation whose rows are the radial unit vector, the
// transverse unit vector ĥ×r̂ and the angular momentum unit vector.
func MakeFrame(position, velocity r3.Vec) (*mat.Dense, error) {
	h := r3.Cross(position, velocity)
	if isZero(position, 1) {
		return nil, &GeometryError{Quantity: "radial frame", Vector: "position"}
	}
	if isZero(h, r3.Norm(position)*r3.Norm(velocity)) {
		return nil, &GeometryError{Quantity: "radial frame", Vector: "angular momentum"}
	}
	er := unit(position)
	eh := unit(h)
	eθ := r3.Cross(eh, er)
	return mat.NewDense(3, 3, []float64{
		er.X, er.Y, er.Z,
		eθ.X, eθ.Y, eθ.Z,
		eh.X, eh.Y, eh.Z,
	}), nil
}

// MxV33 multiplies a matrix with a vector. Note that there is no dimension check!
func MxV33(m mat.Matrix, v r3.Vec) r3.Vec {
	var rVec mat.VecDense
	rVec.MulVec(m, mat.NewVecDense(3, []float64{v.X, v.Y, v.Z}))
	return r3.Vec{X: rVec.AtVec(0), Y: rVec.AtVec(1), Z: rVec.AtVec(2)}
}

// IsRotation returns whether m is a proper rotation: mᵀm = I and det(m) = +1
// within tol.
func IsRotation(m mat.Matrix, tol float64) bool {
	if r, c := m.Dims(); r != 3 || c != 3 {
		return false
	}
	var mTm mat.Dense
	mTm.Mul(m.T(), m)
	if !mat.EqualApprox(&mTm, eye3(), tol) {
		return false
	}
	return scalar.EqualWithinAbs(mat.Det(m), 1, tol)
}

func eye3() *mat.Dense {
	return mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1})
}
