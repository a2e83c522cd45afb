package orbital

import (
	"math"
)

const (
	// KeplerTolerance is the default absolute convergence criterion on
	// successive anomaly iterates.
	KeplerTolerance = 1e-12
	// KeplerMaxIterations is the default iteration cap of a Kepler solve.
	KeplerMaxIterations = 100
)

// KeplerSolver solves the elliptic and hyperbolic forms of Kepler's equation
// with Newton iterations.
type KeplerSolver struct {
	Tolerance     float64
	MaxIterations int
}

// DefaultKeplerSolver uses KeplerTolerance and KeplerMaxIterations.
var DefaultKeplerSolver = KeplerSolver{Tolerance: KeplerTolerance, MaxIterations: KeplerMaxIterations}

func (s KeplerSolver) limits() (tol float64, maxIter int) {
	tol, maxIter = s.Tolerance, s.MaxIterations
	if tol <= 0 {
		tol = KeplerTolerance
	}
	if maxIter <= 0 {
		maxIter = KeplerMaxIterations
	}
	return
}

// Solve dispatches to the Kepler form valid for the orbit type. M is the mean
// anomaly (elliptic) or hyperbolic mean anomaly N, and guess the initial
// iterate. Circular and parabolic orbits return ErrInvalidOrbitOperation.
func (s KeplerSolver) Solve(t OrbitType, M, e, guess float64) (float64, error) {
	switch t {
	case Elliptic:
		return s.Elliptic(M, e, guess)
	case Hyperbolic:
		return s.Hyperbolic(M, e, guess)
	default:
		return math.NaN(), invalidOrbit("Kepler's equation", t)
	}
}

// Elliptic solves E - e*sin(E) = M for the eccentric anomaly E, starting at E0.
func (s KeplerSolver) Elliptic(M, e, E0 float64) (float64, error) {
	if !(e >= 0 && e < 1) {
		return math.NaN(), invalidOrbit("elliptic Kepler's equation", Classify(e))
	}
	tol, maxIter := s.limits()
	E := E0
	for k := 1; k <= maxIter; k++ {
		sinE, cosE := math.Sincos(E)
		next := E - (E-e*sinE-M)/(1-e*cosE)
		Δ := math.Abs(next - E)
		if math.IsNaN(next) || math.IsInf(next, 0) {
			return math.NaN(), &ConvergenceError{Iterations: k, Last: next, Delta: Δ}
		}
		if Δ <= tol {
			return next, nil
		}
		if k == maxIter {
			return math.NaN(), &ConvergenceError{Iterations: k, Last: next, Delta: Δ}
		}
		E = next
	}
	return math.NaN(), &ConvergenceError{Iterations: maxIter, Last: E}
}

// Hyperbolic solves e*sinh(F) - F = N for the hyperbolic anomaly F, starting
// at F0.
func (s KeplerSolver) Hyperbolic(N, e, F0 float64) (float64, error) {
	if !(e > 1) {
		return math.NaN(), invalidOrbit("hyperbolic Kepler's equation", Classify(e))
	}
	tol, maxIter := s.limits()
	F := F0
	for k := 1; k <= maxIter; k++ {
		next := F - (e*math.Sinh(F)-N-F)/(e*math.Cosh(F)-1)
		if next == F {
			// Converged exactly.
			return next, nil
		}
		Δ := math.Abs(next - F)
		if math.IsNaN(next) || math.IsInf(next, 0) {
			return math.NaN(), &ConvergenceError{Iterations: k, Last: next, Delta: Δ}
		}
		if Δ <= tol {
			return next, nil
		}
		if k == maxIter {
			return math.NaN(), &ConvergenceError{Iterations: k, Last: next, Delta: Δ}
		}
		F = next
	}
	return math.NaN(), &ConvergenceError{Iterations: maxIter, Last: F}
}

// ellipticGuess is Danby's starting value for a mean anomaly in (-π, π].
func ellipticGuess(M, e float64) float64 {
	return M + 0.85*e*sign(math.Sin(M))
}

// hyperbolicGuess starts from the large |N| asymptote of e*sinh(F) ≈ N.
func hyperbolicGuess(N, e float64) float64 {
	return math.Asinh(N / e)
}
