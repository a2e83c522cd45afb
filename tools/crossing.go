package tools

import (
	"errors"
	"fmt"
	"math"

	orbital "github.com/AgentMacklin/Orbital"
	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"gonum.org/v1/gonum/spatial/r3"
)

// ErrNoCrossing is returned when the radii ordering did not change within the
// search limit.
var ErrNoCrossing = errors.New("no orbit crossing within search limit")

// reportEvery is the number of steps between two progress log lines.
const reportEvery = 10000

// CrossingSearch scans forward in time for the epochs at which the
// heliocentric distances of two bodies swap order, e.g. when Pluto passes
// inside Neptune's orbit. Times are seconds from the epoch of both bodies.
type CrossingSearch struct {
	A, B   *orbital.Body
	Start  float64 // first offset checked
	Step   float64 // scan step (positive)
	Limit  float64 // largest offset checked
	Logger kitlog.Logger
}

// Crossing is one change of the radii ordering.
type Crossing struct {
	T          float64 // first offset at which the new ordering holds
	RA, RB     float64 // radii at T
	AOutsideB  bool    // ordering after the crossing
	StepsTaken int
}

// String implements the Stringer interface.
func (c Crossing) String() string {
	return fmt.Sprintf("t=%.0fs rA=%.1f rB=%.1f A outside B=%v", c.T, c.RA, c.RB, c.AOutsideB)
}

func (s *CrossingSearch) logger() kitlog.Logger {
	if s.Logger == nil {
		return kitlog.NewNopLogger()
	}
	return kitlog.With(s.Logger, "subsys", "crossing")
}

func (s *CrossingSearch) radii(t float64) (rA, rB float64, err error) {
	var RA, RB r3.Vec
	if RA, err = s.A.PositionAtTime(t); err != nil {
		return
	}
	if RB, err = s.B.PositionAtTime(t); err != nil {
		return
	}
	return r3.Norm(RA), r3.Norm(RB), nil
}

// Next returns the first crossing after Start. Start is then moved to the
// crossing so that successive calls walk through all of them.
func (s *CrossingSearch) Next() (Crossing, error) {
	logger := s.logger()
	if !(s.Step > 0) || math.IsInf(s.Step, 0) {
		return Crossing{}, fmt.Errorf("scan step must be positive, got %f", s.Step)
	}
	if s.A == nil || s.B == nil {
		return Crossing{}, errors.New("both bodies must be set")
	}
	rA, rB, err := s.radii(s.Start)
	if err != nil {
		return Crossing{}, err
	}
	outside := rA > rB
	level.Info(logger).Log("status", "started", "t", s.Start, "rA", rA, "rB", rB, "A_outside", outside)
	steps := 0
	for t := s.Start; ; {
		next := t + s.Step
		if next == t {
			return Crossing{}, fmt.Errorf("scan step %g is below the float resolution at t=%g", s.Step, t)
		}
		if t = next; t > s.Limit {
			break
		}
		steps++
		if rA, rB, err = s.radii(t); err != nil {
			level.Error(logger).Log("t", t, "err", err)
			return Crossing{}, err
		}
		if steps%reportEvery == 0 {
			level.Debug(logger).Log("t", t, "rA", rA, "rB", rB)
		}
		if (rA > rB) != outside {
			c := Crossing{T: t, RA: rA, RB: rB, AOutsideB: rA > rB, StepsTaken: steps}
			level.Info(logger).Log("status", "crossed", "t", t, "rA", rA, "rB", rB, "steps", steps)
			s.Start = t
			return c, nil
		}
	}
	level.Warn(logger).Log("status", "exhausted", "limit", s.Limit, "steps", steps)
	return Crossing{}, ErrNoCrossing
}

// Crossings returns up to n successive crossings. It stops early without
// error once the limit is reached and at least one crossing was found.
func (s *CrossingSearch) Crossings(n int) ([]Crossing, error) {
	var found []Crossing
	for len(found) < n {
		c, err := s.Next()
		if err != nil {
			if errors.Is(err, ErrNoCrossing) && len(found) > 0 {
				return found, nil
			}
			return found, err
		}
		found = append(found, c)
	}
	return found, nil
}
