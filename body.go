package orbital

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Body is the instantaneous two-body state of an orbiting object: a position
// and velocity in an inertial frame around a central body of gravitational
// parameter μ. All elements are computed on demand from that state, and a
// Body is never modified once built.
type Body struct {
	position, velocity r3.Vec
	μ                  float64
	eccTol             float64
	kepler             KeplerSolver
	orbitType          OrbitType
}

// NewBody returns a body from a position (km) and velocity (km/s) around a
// central body of gravitational parameter μ (km³/s²).
func NewBody(position, velocity r3.Vec, μ float64) (*Body, error) {
	return NewBodyFromConfig(position, velocity, DefaultConfig(μ))
}

// NewBodyInUnits returns a body whose position, velocity and μ are all given
// in the provided unit system.
func NewBodyInUnits(position, velocity r3.Vec, μ float64, units Units) (*Body, error) {
	conf := DefaultConfig(units.MuToInternal(μ))
	conf.Units = units
	return NewBodyFromConfig(position, velocity, conf)
}

// NewBodyFromConfig returns a body from a state expressed in conf.Units.
func NewBodyFromConfig(position, velocity r3.Vec, conf Config) (*Body, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	if !finite(position) || !finite(velocity) {
		return nil, fmt.Errorf("%w: non finite component in R=%+v V=%+v", ErrInvalidState, position, velocity)
	}
	R, V := conf.Units.StateToInternal(position, velocity)
	if isZero(R, 1) {
		return nil, fmt.Errorf("%w: zero position", ErrInvalidState)
	}
	b := &Body{position: R, velocity: V, μ: conf.Mu, eccTol: conf.EccentricityTolerance, kepler: conf.Kepler}
	e := b.Eccentricity()
	if math.IsNaN(e) || math.IsInf(e, 0) {
		return nil, fmt.Errorf("%w: eccentricity is %f", ErrInvalidState, e)
	}
	b.orbitType = ClassifyWithin(e, b.eccTol)
	return b, nil
}

// NewBodyFromElements returns a body from its classical orbital elements:
// semi-major axis (negative for hyperbolic orbits) in conf.Units, and
// inclination, ascending node longitude, argument of periapsis and true
// anomaly in radians. Parabolic orbits cannot be built from a.
// An eccentricity of exactly zero yields a circular body even though the
// rebuilt state carries a round-off eccentricity (~1e-16).
func NewBodyFromElements(a, e, i, Ω, ω, ν float64, conf Config) (*Body, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	p := conf.Units.LengthToInternal(a) * (1 - e*e)
	if !(p > 0) || e < 0 {
		return nil, fmt.Errorf("%w: a=%f and e=%f do not define a conic", ErrInvalidState, a, e)
	}
	sinν, cosν := math.Sincos(ν)
	r := p / (1 + e*cosν)
	if !(r > 0) {
		return nil, fmt.Errorf("%w: true anomaly %f is beyond the asymptote", ErrInvalidState, ν)
	}
	sqrtμp := math.Sqrt(conf.Mu / p)
	R := PerifocalToInertial(ω, i, Ω, r3.Vec{X: r * cosν, Y: r * sinν})
	V := PerifocalToInertial(ω, i, Ω, r3.Vec{X: -sqrtμp * sinν, Y: sqrtμp * (e + cosν)})
	internal := conf
	internal.Units = KilometersSeconds
	b, err := NewBodyFromConfig(R, V, internal)
	if err != nil {
		return nil, err
	}
	if e == 0 {
		b.orbitType = Circular
	}
	return b, nil
}

// with returns a new body sharing the configuration of b.
func (b *Body) with(R, V r3.Vec) *Body {
	nb := &Body{position: R, velocity: V, μ: b.μ, eccTol: b.eccTol, kepler: b.kepler}
	nb.orbitType = ClassifyWithin(nb.Eccentricity(), nb.eccTol)
	return nb
}

// Position returns the position vector in km.
func (b *Body) Position() r3.Vec {
	return b.position
}

// Velocity returns the velocity vector in km/s.
func (b *Body) Velocity() r3.Vec {
	return b.velocity
}

// StateIn returns the position and velocity in the provided unit system.
func (b *Body) StateIn(units Units) (r3.Vec, r3.Vec) {
	return units.StateFromInternal(b.position, b.velocity)
}

// GM returns the gravitational parameter of the central body.
func (b *Body) GM() float64 {
	return b.μ
}

// OrbitType returns the orbit classification computed at construction.
func (b *Body) OrbitType() OrbitType {
	return b.orbitType
}

// AngularMomentum returns the specific angular momentum h = r × v.
func (b *Body) AngularMomentum() r3.Vec {
	return r3.Cross(b.position, b.velocity)
}

// EccentricityVector returns (v × h)/μ - r̂, which points to periapsis.
func (b *Body) EccentricityVector() r3.Vec {
	vxh := r3.Cross(b.velocity, b.AngularMomentum())
	return r3.Sub(r3.Scale(1/b.μ, vxh), unit(b.position))
}

// Eccentricity returns the norm of the eccentricity vector.
func (b *Body) Eccentricity() float64 {
	return r3.Norm(b.EccentricityVector())
}

// TotalEnergy returns the specific mechanical energy ½v² - μ/r.
func (b *Body) TotalEnergy() float64 {
	return 0.5*r3.Norm2(b.velocity) - b.μ/r3.Norm(b.position)
}

// SemiMajorAxis returns h²/(μ(1-e²)). It is negative for hyperbolic orbits
// and infinite for parabolic ones.
func (b *Body) SemiMajorAxis() float64 {
	e := b.Eccentricity()
	return r3.Norm2(b.AngularMomentum()) / (b.μ * (1 - e*e))
}

// SemiParameter returns the orbital parameter p = a(1-e²), computed as h²/μ
// so that it stays finite for parabolic orbits.
func (b *Body) SemiParameter() float64 {
	return r3.Norm2(b.AngularMomentum()) / b.μ
}

// Periapsis returns the periapsis radius.
func (b *Body) Periapsis() float64 {
	return b.SemiParameter() / (1 + b.Eccentricity())
}

// Apoapsis returns the apoapsis radius, +Inf for open orbits.
func (b *Body) Apoapsis() float64 {
	e := b.Eccentricity()
	if e >= 1 {
		return math.Inf(1)
	}
	return b.SemiParameter() / (1 - e)
}

// Period returns the orbital period in seconds of a closed orbit.
func (b *Body) Period() (float64, error) {
	if !b.orbitType.Closed() {
		return math.NaN(), invalidOrbit("period", b.orbitType)
	}
	return twoπ * math.Sqrt(math.Pow(b.SemiMajorAxis(), 3)/b.μ), nil
}

// MeanMotion returns the mean motion sqrt(μ/|a|³) of an elliptic or
// hyperbolic orbit.
func (b *Body) MeanMotion() (float64, error) {
	if !b.orbitType.HasKepler() {
		return math.NaN(), invalidOrbit("mean motion", b.orbitType)
	}
	return math.Sqrt(b.μ / math.Pow(math.Abs(b.SemiMajorAxis()), 3)), nil
}

// Omega returns the instantaneous angular velocity vector h/r².
func (b *Body) Omega() r3.Vec {
	return r3.Scale(1/r3.Norm2(b.position), b.AngularMomentum())
}

// FrameRotationRate returns the norm of Omega.
func (b *Body) FrameRotationRate() float64 {
	return r3.Norm(b.Omega())
}

// RadialVelocity returns the projection of the velocity on the position.
func (b *Body) RadialVelocity() r3.Vec {
	return r3.Scale(r3.Dot(b.velocity, b.position)/r3.Norm2(b.position), b.position)
}

// TangentialVelocity returns Omega × r.
func (b *Body) TangentialVelocity() r3.Vec {
	return r3.Cross(b.Omega(), b.position)
}

// AscendingNode returns the node vector n = k̂ × h.
func (b *Body) AscendingNode() r3.Vec {
	return r3.Cross(zAxis, b.AngularMomentum())
}

// Inclination returns acos(h_z/|h|) in [0, π].
func (b *Body) Inclination() (float64, error) {
	h := b.AngularMomentum()
	if isZero(h, r3.Norm(b.position)*r3.Norm(b.velocity)) {
		return math.NaN(), &GeometryError{Quantity: "inclination", Vector: "angular momentum"}
	}
	i, ok := acos(h.Z / r3.Norm(h))
	if !ok {
		return math.NaN(), &GeometryError{Quantity: "inclination", Vector: "angular momentum"}
	}
	return i, nil
}

// ArgumentOfAscendingNode returns Ω, the angle from the x axis to the node
// vector, in [0, 2π).
func (b *Body) ArgumentOfAscendingNode() (float64, error) {
	n := b.AscendingNode()
	if isZero(n, r3.Norm(b.AngularMomentum())) {
		return math.NaN(), &GeometryError{Quantity: "ascending node longitude", Vector: "node"}
	}
	Ω, ok := acos(n.X / r3.Norm(n))
	if !ok {
		return math.NaN(), &GeometryError{Quantity: "ascending node longitude", Vector: "node"}
	}
	if n.Y < 0 {
		Ω = twoπ - Ω
	}
	return normalizeAngle(Ω), nil
}

// ArgumentOfPeriapsis returns ω, the angle from the node vector to the
// eccentricity vector, in [0, 2π).
func (b *Body) ArgumentOfPeriapsis() (float64, error) {
	n := b.AscendingNode()
	if isZero(n, r3.Norm(b.AngularMomentum())) {
		return math.NaN(), &GeometryError{Quantity: "argument of periapsis", Vector: "node"}
	}
	eVec := b.EccentricityVector()
	if isZero(eVec, 1) {
		return math.NaN(), &GeometryError{Quantity: "argument of periapsis", Vector: "eccentricity"}
	}
	ω, ok := acos(r3.Dot(n, eVec) / (r3.Norm(n) * r3.Norm(eVec)))
	if !ok {
		return math.NaN(), &GeometryError{Quantity: "argument of periapsis", Vector: "eccentricity"}
	}
	if eVec.Z < 0 {
		ω = twoπ - ω
	}
	return normalizeAngle(ω), nil
}

// TrueAnomaly returns ν, the angle from the eccentricity vector to the
// position, in [0, 2π). It is past π when the body is inbound (r̂·v̂ < 0).
func (b *Body) TrueAnomaly() (float64, error) {
	eVec := b.EccentricityVector()
	if isZero(eVec, 1) {
		return math.NaN(), &GeometryError{Quantity: "true anomaly", Vector: "eccentricity"}
	}
	rHat := unit(b.position)
	ν, ok := acos(r3.Dot(eVec, rHat) / r3.Norm(eVec))
	if !ok {
		return math.NaN(), &GeometryError{Quantity: "true anomaly", Vector: "eccentricity"}
	}
	if r3.Dot(rHat, unit(b.velocity)) < 0 {
		ν = twoπ - ν
	}
	return normalizeAngle(ν), nil
}

// EccentricAnomaly returns the eccentric anomaly in (-π, π) of an elliptic
// orbit from its true anomaly.
func (b *Body) EccentricAnomaly() (float64, error) {
	if b.orbitType != Elliptic {
		return math.NaN(), invalidOrbit("eccentric anomaly", b.orbitType)
	}
	ν, err := b.TrueAnomaly()
	if err != nil {
		return math.NaN(), err
	}
	e := b.Eccentricity()
	return 2 * math.Atan(math.Tan(ν/2)/math.Sqrt((1+e)/(1-e))), nil
}

// HyperbolicAnomaly returns the hyperbolic anomaly of a hyperbolic orbit from
// its true anomaly.
func (b *Body) HyperbolicAnomaly() (float64, error) {
	if b.orbitType != Hyperbolic {
		return math.NaN(), invalidOrbit("hyperbolic anomaly", b.orbitType)
	}
	ν, err := b.TrueAnomaly()
	if err != nil {
		return math.NaN(), err
	}
	return TrueToHyperbolic(ν, b.Eccentricity()), nil
}

// TrueToEccentric converts a true anomaly of this orbit to its eccentric
// anomaly.
func (b *Body) TrueToEccentric(ν float64) (float64, error) {
	if b.orbitType != Elliptic {
		return math.NaN(), invalidOrbit("true to eccentric anomaly", b.orbitType)
	}
	return TrueToEccentric(ν, b.Eccentricity()), nil
}

// EccentricToTrue converts an eccentric anomaly of this orbit to its true
// anomaly.
func (b *Body) EccentricToTrue(E float64) (float64, error) {
	if b.orbitType != Elliptic {
		return math.NaN(), invalidOrbit("eccentric to true anomaly", b.orbitType)
	}
	return EccentricToTrue(E, b.Eccentricity()), nil
}

// TimeSincePeriapsis returns the signed time in seconds elapsed since the
// closest periapsis passage: sqrt(a³/μ)(E - e sin E) for elliptic orbits and
// sqrt(-a³/μ)(e sinh F - F) for hyperbolic ones.
func (b *Body) TimeSincePeriapsis() (float64, error) {
	e := b.Eccentricity()
	a := b.SemiMajorAxis()
	switch b.orbitType {
	case Elliptic:
		E, err := b.EccentricAnomaly()
		if err != nil {
			return math.NaN(), err
		}
		return math.Sqrt(a*a*a/b.μ) * MeanFromEccentric(E, e), nil
	case Hyperbolic:
		F, err := b.HyperbolicAnomaly()
		if err != nil {
			return math.NaN(), err
		}
		return math.Sqrt(-a*a*a/b.μ) * MeanFromHyperbolic(F, e), nil
	default:
		return math.NaN(), invalidOrbit("time since periapsis", b.orbitType)
	}
}

// MeanAnomaly returns the mean anomaly (hyperbolic mean anomaly for open
// orbits) reached t seconds from now, n(t + TimeSincePeriapsis()). It is not
// wrapped into [0, 2π).
func (b *Body) MeanAnomaly(t float64) (float64, error) {
	n, err := b.MeanMotion()
	if err != nil {
		return math.NaN(), err
	}
	tp, err := b.TimeSincePeriapsis()
	if err != nil {
		return math.NaN(), err
	}
	return n * (t + tp), nil
}

// RadiusAtAngle returns the orbit radius at true anomaly ν.
func (b *Body) RadiusAtAngle(ν float64) float64 {
	return b.SemiParameter() / (1 + b.Eccentricity()*math.Cos(ν))
}

// PositionAtAngle returns the perifocal position at true anomaly ν.
func (b *Body) PositionAtAngle(ν float64) r3.Vec {
	r := b.RadiusAtAngle(ν)
	sinν, cosν := math.Sincos(ν)
	return r3.Vec{X: r * cosν, Y: r * sinν, Z: 0}
}

// VelocityAtAngle returns the perifocal velocity (μ/h)[-sin ν, e + cos ν, 0]
// at true anomaly ν.
func (b *Body) VelocityAtAngle(ν float64) r3.Vec {
	coeff := b.μ / r3.Norm(b.AngularMomentum())
	sinν, cosν := math.Sincos(ν)
	return r3.Vec{X: -coeff * sinν, Y: coeff * (b.Eccentricity() + cosν), Z: 0}
}

// DistanceTo returns the distance between the two bodies.
func (b *Body) DistanceTo(other *Body) float64 {
	return r3.Norm(r3.Sub(b.position, other.position))
}

// AngleTo returns the angle in [0, π] between both position vectors.
func (b *Body) AngleTo(other *Body) (float64, error) {
	θ, ok := acos(r3.Cos(b.position, other.position))
	if !ok {
		return math.NaN(), &GeometryError{Quantity: "angle between bodies", Vector: "position"}
	}
	return θ, nil
}

// MakeFrame returns the radial/transverse/normal frame of this body.
func (b *Body) MakeFrame() (*mat.Dense, error) {
	return MakeFrame(b.position, b.velocity)
}

// Elements returns the classical orbital elements. Undefined angles are
// NaN, with the first error encountered.
func (b *Body) Elements() (a, e, i, Ω, ω, ν float64, err error) {
	a = b.SemiMajorAxis()
	e = b.Eccentricity()
	var errs [4]error
	i, errs[0] = b.Inclination()
	Ω, errs[1] = b.ArgumentOfAscendingNode()
	ω, errs[2] = b.ArgumentOfPeriapsis()
	ν, errs[3] = b.TrueAnomaly()
	for _, elErr := range errs {
		if elErr != nil {
			err = elErr
			break
		}
	}
	return
}

// String implements the stringer interface. Angles are in degrees.
func (b *Body) String() string {
	a, e, i, Ω, ω, ν, _ := b.Elements()
	return fmt.Sprintf("%s a=%.1f e=%.4f i=%.3f Ω=%.3f ω=%.3f ν=%.3f", b.orbitType, a, e, Rad2deg(i), Rad2deg(Ω), Rad2deg(ω), Rad2deg(ν))
}
