package orbital

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// perifocalFrame returns the inertial to perifocal rotation built directly from
// the state: its rows are P towards periapsis, Q = W × P and W along the
// angular momentum. It is ThreeOneThree(ω, i, Ω) without going through the
// angles, so it stays accurate at small angles and eccentricities and is
// defined for equatorial orbits.
func (b *Body) perifocalFrame() (*mat.Dense, error) {
	h := b.AngularMomentum()
	hNorm := r3.Norm(h)
	if hNorm == 0 {
		return nil, &GeometryError{Quantity: "perifocal frame", Vector: "angular momentum"}
	}
	W := r3.Scale(1/hNorm, h)
	// Remove the round-off out of plane component of the eccentricity vector.
	eVec := b.EccentricityVector()
	eVec = r3.Sub(eVec, r3.Scale(r3.Dot(eVec, W), W))
	eNorm := r3.Norm(eVec)
	if eNorm == 0 {
		return nil, &GeometryError{Quantity: "perifocal frame", Vector: "eccentricity"}
	}
	P := r3.Scale(1/eNorm, eVec)
	Q := r3.Cross(W, P)
	return mat.NewDense(3, 3, []float64{
		P.X, P.Y, P.Z,
		Q.X, Q.Y, Q.Z,
		W.X, W.Y, W.Z,
	}), nil
}

// planeAnomaly returns the true anomaly in [0, 2π) of the current position in
// the given perifocal frame.
func (b *Body) planeAnomaly(frame *mat.Dense) float64 {
	pf := MxV33(frame, b.position)
	return normalizeAngle(math.Atan2(pf.Y, pf.X))
}

// meanFromTrue returns the mean anomaly (hyperbolic mean anomaly for open
// orbits) at true anomaly ν.
func (b *Body) meanFromTrue(ν float64) float64 {
	e := b.Eccentricity()
	if b.orbitType == Hyperbolic {
		return MeanFromHyperbolic(TrueToHyperbolic(ν, e), e)
	}
	return MeanFromEccentric(TrueToEccentric(ν, e), e)
}

// trueAnomalyAtTime returns the true anomaly reached Δt seconds from now along
// with the perifocal frame it is measured in.
func (b *Body) trueAnomalyAtTime(Δt float64) (float64, *mat.Dense, error) {
	if !b.orbitType.HasKepler() {
		return math.NaN(), nil, invalidOrbit("propagation", b.orbitType)
	}
	frame, err := b.perifocalFrame()
	if err != nil {
		return math.NaN(), nil, err
	}
	n, err := b.MeanMotion()
	if err != nil {
		return math.NaN(), nil, err
	}
	N := b.meanFromTrue(b.planeAnomaly(frame)) + n*Δt
	e := b.Eccentricity()
	if b.orbitType == Elliptic {
		M := wrapπ(N)
		E, err := b.kepler.Elliptic(M, e, ellipticGuess(M, e))
		if err != nil {
			return math.NaN(), nil, err
		}
		return EccentricToTrue(E, e), frame, nil
	}
	F, err := b.kepler.Hyperbolic(N, e, hyperbolicGuess(N, e))
	if err != nil {
		return math.NaN(), nil, err
	}
	return HyperbolicToTrue(F, e), frame, nil
}

// TrueAnomalyAtTime returns the true anomaly in [0, 2π) reached Δt seconds
// from now (Δt may be negative).
func (b *Body) TrueAnomalyAtTime(Δt float64) (float64, error) {
	ν, _, err := b.trueAnomalyAtTime(Δt)
	return ν, err
}

// StateAtTime returns the inertial position and velocity Δt seconds from now.
// The body itself is left untouched. Circular and parabolic orbits return
// ErrInvalidOrbitOperation.
func (b *Body) StateAtTime(Δt float64) (R, V r3.Vec, err error) {
	ν, frame, err := b.trueAnomalyAtTime(Δt)
	if err != nil {
		return
	}
	// The frame is orthonormal, so its inverse is its transpose.
	R = MxV33(frame.T(), b.PositionAtAngle(ν))
	V = MxV33(frame.T(), b.VelocityAtAngle(ν))
	return R, V, nil
}

// PositionAtTime returns the inertial position Δt seconds from now.
func (b *Body) PositionAtTime(Δt float64) (r3.Vec, error) {
	R, _, err := b.StateAtTime(Δt)
	return R, err
}

// VelocityAtTime returns the inertial velocity Δt seconds from now.
func (b *Body) VelocityAtTime(Δt float64) (r3.Vec, error) {
	_, V, err := b.StateAtTime(Δt)
	return V, err
}

// Propagate returns a new body at the state reached Δt seconds from now.
func (b *Body) Propagate(Δt float64) (*Body, error) {
	R, V, err := b.StateAtTime(Δt)
	if err != nil {
		return nil, err
	}
	return b.with(R, V), nil
}
