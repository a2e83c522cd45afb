package orbital

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidOrbitOperation is returned when an operation which depends on
	// Kepler's equation is requested for a circular or parabolic orbit.
	ErrInvalidOrbitOperation = errors.New("orbital: operation undefined for this orbit type")
	// ErrNonConvergence is returned when a Kepler iteration hits its cap.
	ErrNonConvergence = errors.New("orbital: Kepler iteration did not converge")
	// ErrDegenerateGeometry is returned when an angle is requested from a zero
	// length node, eccentricity or angular momentum vector.
	ErrDegenerateGeometry = errors.New("orbital: degenerate orbit geometry")
	// ErrInvalidState is returned for non finite or zero position state vectors.
	ErrInvalidState = errors.New("orbital: invalid state vector")
)

// OrbitError records the operation refused for an orbit type.
type OrbitError struct {
	Op   string
	Type OrbitType
	Err  error
}

func (e *OrbitError) Error() string {
	return fmt.Sprintf("%s on %s orbit: %s", e.Op, e.Type, e.Err)
}

func (e *OrbitError) Unwrap() error {
	return e.Err
}

// ConvergenceError reports the last iterate of a Kepler solve that ran out of
// iterations.
type ConvergenceError struct {
	Iterations int
	Last       float64
	Delta      float64
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("%s after %d iterations (last=%g, Δ=%g)", ErrNonConvergence, e.Iterations, e.Last, e.Delta)
}

func (e *ConvergenceError) Unwrap() error {
	return ErrNonConvergence
}

// GeometryError names the vector which made an angle ill-posed.
type GeometryError struct {
	Quantity string
	Vector   string
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("%s: %s undefined, %s vector has zero length", ErrDegenerateGeometry, e.Quantity, e.Vector)
}

func (e *GeometryError) Unwrap() error {
	return ErrDegenerateGeometry
}

func invalidOrbit(op string, t OrbitType) error {
	return &OrbitError{Op: op, Type: t, Err: ErrInvalidOrbitOperation}
}
