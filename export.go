package orbital

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r3"
)

// EphemerisState is one record of an interpolated states (xyzv) file.
type EphemerisState struct {
	JD       float64
	Position r3.Vec // km
	Velocity r3.Vec // km/s
}

// FromText initializes from text.
// The `record` parameter must be an array of seven items.
func (s *EphemerisState) FromText(record []string) error {
	if len(record) != 7 {
		return errors.Errorf("expected seven fields, got %d", len(record))
	}
	var vals [7]float64
	for i, field := range record {
		val, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return errors.Wrapf(err, "field %d", i)
		}
		vals[i] = val
	}
	s.JD = vals[0]
	s.Position = r3.Vec{X: vals[1], Y: vals[2], Z: vals[3]}
	s.Velocity = r3.Vec{X: vals[4], Y: vals[5], Z: vals[6]}
	return nil
}

// ToText converts to text for written output.
func (s EphemerisState) ToText() string {
	return fmt.Sprintf("%.9f %.15e %.15e %.15e %.15e %.15e %.15e", s.JD, s.Position.X, s.Position.Y, s.Position.Z, s.Velocity.X, s.Velocity.Y, s.Velocity.Z)
}

// Ephemeris propagates b to each offset (seconds) from the Julian date epoch.
func Ephemeris(b *Body, epoch float64, offsets []float64) ([]EphemerisState, error) {
	states := make([]EphemerisState, 0, len(offsets))
	for _, Δt := range offsets {
		R, V, err := b.StateAtTime(Δt)
		if err != nil {
			return nil, errors.Wrapf(err, "offset %g s", Δt)
		}
		states = append(states, EphemerisState{JD: epoch + Δt/Day, Position: R, Velocity: V})
	}
	return states, nil
}

// WriteInterpolatedStates writes the states in the interpolated states format
// read by Cosmographia.
func WriteInterpolatedStates(w io.Writer, states []EphemerisState, created time.Time) error {
	if _, err := fmt.Fprintf(w, `# Creation date (UTC): %s
# Records are <jd> <x> <y> <z> <vel x> <vel y> <vel z>
#   Time is a Julian date
#   Position in km
#   Velocity in km/sec
`, created.UTC()); err != nil {
		return err
	}
	for _, s := range states {
		if _, err := fmt.Fprintln(w, s.ToText()); err != nil {
			return err
		}
	}
	return nil
}

// ParseInterpolatedStates reads the records written by WriteInterpolatedStates.
func ParseInterpolatedStates(rd io.Reader) ([]EphemerisState, error) {
	var states []EphemerisState
	r := csv.NewReader(rd)
	r.Comma = ' '
	r.Comment = '#'
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		var s EphemerisState
		if err := s.FromText(record); err != nil {
			line, _ := r.FieldPos(0)
			return nil, errors.Wrapf(err, "line %d", line)
		}
		states = append(states, s)
	}
	return states, nil
}
