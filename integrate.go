package orbital

import (
	"fmt"
	"math"

	"github.com/ChristopherRabotin/ode"
	"gonum.org/v1/gonum/spatial/r3"
)

// TwoBodyIntegrator numerically integrates r̈ = -μr/r³ with a fixed step RK4.
// It is the independent check of the analytic propagation.
type TwoBodyIntegrator struct {
	μ      float64
	state  []float64
	steps  int
	nSteps int
	dir    float64 // +1 forward in time, -1 backward
	failed error
}

// NewTwoBodyIntegrator returns an integrator starting at the state of b.
func NewTwoBodyIntegrator(b *Body) *TwoBodyIntegrator {
	R, V := b.position, b.velocity
	return &TwoBodyIntegrator{μ: b.μ, state: []float64{R.X, R.Y, R.Z, V.X, V.Y, V.Z}, dir: 1}
}

// GetState returns the state for the integrator.
func (ti *TwoBodyIntegrator) GetState() []float64 {
	s := make([]float64, 6)
	copy(s, ti.state)
	return s
}

// SetState sets the updated state.
func (ti *TwoBodyIntegrator) SetState(t float64, s []float64) {
	for i := 0; i < 6; i++ {
		if math.IsNaN(s[i]) || math.IsInf(s[i], 0) {
			ti.failed = fmt.Errorf("%w: state[%d]=%f after %d steps", ErrInvalidState, i, s[i], ti.steps)
		}
	}
	copy(ti.state, s)
	ti.steps++
}

// Stop implements the stop call of the integrator.
func (ti *TwoBodyIntegrator) Stop(t float64) bool {
	return ti.failed != nil || ti.steps >= ti.nSteps
}

// Func is the two-body equation of motion. The integrator always steps
// forward, so backward integrations flip the derivative instead.
func (ti *TwoBodyIntegrator) Func(t float64, f []float64) (fDot []float64) {
	fDot = make([]float64, 6)
	r := math.Sqrt(f[0]*f[0] + f[1]*f[1] + f[2]*f[2])
	bodyAcc := -ti.μ / (r * r * r)
	fDot[0] = ti.dir * f[3]
	fDot[1] = ti.dir * f[4]
	fDot[2] = ti.dir * f[5]
	fDot[3] = ti.dir * bodyAcc * f[0]
	fDot[4] = ti.dir * bodyAcc * f[1]
	fDot[5] = ti.dir * bodyAcc * f[2]
	return
}

// Integrate advances the state by Δt seconds with steps no longer than step.
func (ti *TwoBodyIntegrator) Integrate(Δt, step float64) (R, V r3.Vec, err error) {
	if !(step > 0) {
		return R, V, fmt.Errorf("integration step must be positive, got %f", step)
	}
	ti.nSteps = int(math.Ceil(math.Abs(Δt) / step))
	ti.steps = 0
	ti.dir = 1
	if Δt < 0 {
		ti.dir = -1
	}
	if ti.nSteps > 0 {
		// ode.NewRK4 requires a positive step.
		ode.NewRK4(0, math.Abs(Δt)/float64(ti.nSteps), ti).Solve() // Blocking.
	}
	if ti.failed != nil {
		return R, V, ti.failed
	}
	s := ti.state
	return r3.Vec{X: s[0], Y: s[1], Z: s[2]}, r3.Vec{X: s[3], Y: s[4], Z: s[5]}, nil
}

// IntegrateState numerically propagates the state of b by Δt seconds.
func IntegrateState(b *Body, Δt, step float64) (R, V r3.Vec, err error) {
	return NewTwoBodyIntegrator(b).Integrate(Δt, step)
}
