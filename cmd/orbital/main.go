package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	orbital "github.com/AgentMacklin/Orbital"
	"github.com/AgentMacklin/Orbital/tools"
	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/spf13/viper"
	"gonum.org/v1/gonum/spatial/r3"
)

// This command reads a scenario, prints the elements of each body and their
// propagated states.

const (
	defaultScenario = "~~unset~~"
	dateFormat      = "2006-01-02 15:04:05"
)

var (
	scenario   string
	verbose    bool
	verify     bool
	verifyStep float64
	exportDir  string
)

type bodyConf struct {
	Name     string    `mapstructure:"name"`
	Position []float64 `mapstructure:"position"`
	Velocity []float64 `mapstructure:"velocity"`
}

func init() {
	flag.StringVar(&scenario, "scenario", defaultScenario, "scenario TOML file")
	flag.BoolVar(&verbose, "verbose", false, "log debug information")
	flag.BoolVar(&verify, "verify", false, "cross check each propagation with an RK4 integration")
	flag.Float64Var(&verifyStep, "step", 60, "RK4 step in seconds for -verify")
	flag.StringVar(&exportDir, "export", "", "directory where to write the propagated states as xyzv files")
}

func main() {
	flag.Parse()
	logger := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stderr))
	if verbose {
		logger = level.NewFilter(logger, level.AllowDebug())
	} else {
		logger = level.NewFilter(logger, level.AllowInfo())
	}
	logger = kitlog.With(logger, "ts", kitlog.DefaultTimestampUTC)
	if err := run(logger); err != nil {
		level.Error(logger).Log("err", err)
		os.Exit(1)
	}
}

func run(logger kitlog.Logger) error {
	if scenario == defaultScenario {
		return errors.New("no scenario provided")
	}
	scenario = strings.Replace(scenario, ".toml", "", 1)
	viper.AddConfigPath(".")
	viper.SetConfigName(scenario)
	if err := viper.ReadInConfig(); err != nil {
		return errors.Wrapf(err, "./%s.toml", scenario)
	}
	conf, err := orbital.ConfigFromViper(viper.GetViper())
	if err != nil {
		return err
	}
	level.Debug(logger).Log("subsys", "conf", "mu", conf.Mu, "units", conf.Units, "tol", conf.Kepler.Tolerance, "maxIter", conf.Kepler.MaxIterations)

	epoch := viper.GetFloat64("epoch.jd")
	var confs []bodyConf
	if err := viper.UnmarshalKey("bodies", &confs); err != nil {
		return errors.Wrap(err, "bodies")
	}
	if len(confs) == 0 {
		return errors.New("no [[bodies]] defined")
	}
	bodies := make(map[string]*orbital.Body, len(confs))
	for _, bc := range confs {
		b, err := newBody(bc, conf)
		if err != nil {
			return errors.Wrapf(err, "body %s", bc.Name)
		}
		bodies[strings.ToLower(bc.Name)] = b
		printElements(bc.Name, b)
	}

	var offsets []float64
	if err := viper.UnmarshalKey("propagate.offsets", &offsets); err != nil {
		return errors.Wrap(err, "propagate.offsets")
	}
	for _, bc := range confs {
		b := bodies[strings.ToLower(bc.Name)]
		for _, off := range offsets {
			Δt := conf.Units.DurationToInternal(off)
			R, V, err := b.StateAtTime(Δt)
			if err != nil {
				level.Warn(logger).Log("subsys", "prop", "body", bc.Name, "offset", off, "err", err)
				continue
			}
			uR, uV := conf.Units.StateFromInternal(R, V)
			fmt.Printf("%s @ %s (%+g %s)\n\tR=%s\n\tV=%s\n", bc.Name, dateLabel(epoch, Δt), off, conf.Units, vecString(uR), vecString(uV))
			if verify {
				iR, iV, err := orbital.IntegrateState(b, Δt, verifyStep)
				if err != nil {
					level.Warn(logger).Log("subsys", "verify", "body", bc.Name, "err", err)
					continue
				}
				level.Info(logger).Log("subsys", "verify", "body", bc.Name, "offset", off,
					"ΔR(km)", r3.Norm(r3.Sub(iR, R)), "ΔV(km/s)", r3.Norm(r3.Sub(iV, V)))
			}
		}
	}

	if exportDir != "" {
		for _, bc := range confs {
			if err := export(logger, bc.Name, bodies[strings.ToLower(bc.Name)], conf, epoch, offsets); err != nil {
				return err
			}
		}
	}

	if viper.IsSet("crossing.a") {
		return crossings(logger, conf, bodies, epoch)
	}
	return nil
}

func newBody(bc bodyConf, conf orbital.Config) (*orbital.Body, error) {
	if len(bc.Position) != 3 || len(bc.Velocity) != 3 {
		return nil, errors.New("position and velocity must have three components")
	}
	R := r3.Vec{X: bc.Position[0], Y: bc.Position[1], Z: bc.Position[2]}
	V := r3.Vec{X: bc.Velocity[0], Y: bc.Velocity[1], Z: bc.Velocity[2]}
	return orbital.NewBodyFromConfig(R, V, conf)
}

// export writes the propagated states of one body into <dir>/prop-<name>.xyzv.
func export(logger kitlog.Logger, name string, b *orbital.Body, conf orbital.Config, epoch float64, offsets []float64) error {
	internal := make([]float64, len(offsets))
	for i, off := range offsets {
		internal[i] = conf.Units.DurationToInternal(off)
	}
	states, err := orbital.Ephemeris(b, epoch, internal)
	if err != nil {
		return errors.Wrapf(err, "body %s", name)
	}
	filename := filepath.Join(exportDir, fmt.Sprintf("prop-%s.xyzv", strings.ToLower(name)))
	if err := writeStates(filename, states, time.Now()); err != nil {
		return err
	}
	level.Info(logger).Log("subsys", "export", "body", name, "file", filename, "states", len(states))
	return nil
}

// writeStates writes the states into filename, including the error from
// closing the file.
func writeStates(filename string, states []orbital.EphemerisState, created time.Time) (err error) {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if cErr := f.Close(); err == nil && cErr != nil {
			err = errors.Wrap(cErr, filename)
		}
	}()
	return errors.Wrap(orbital.WriteInterpolatedStates(f, states, created), filename)
}

func crossings(logger kitlog.Logger, conf orbital.Config, bodies map[string]*orbital.Body, epoch float64) error {
	nameA, nameB := viper.GetString("crossing.a"), viper.GetString("crossing.b")
	a, okA := bodies[strings.ToLower(nameA)]
	b, okB := bodies[strings.ToLower(nameB)]
	if !okA || !okB {
		return errors.Errorf("crossing bodies %s and %s must both be defined", nameA, nameB)
	}
	viper.SetDefault("crossing.count", 2)
	search := tools.CrossingSearch{
		A:      a,
		B:      b,
		Start:  conf.Units.DurationToInternal(viper.GetFloat64("crossing.start")),
		Step:   conf.Units.DurationToInternal(viper.GetFloat64("crossing.step")),
		Limit:  conf.Units.DurationToInternal(viper.GetFloat64("crossing.limit")),
		Logger: logger,
	}
	found, err := search.Crossings(viper.GetInt("crossing.count"))
	if err != nil {
		return err
	}
	for _, c := range found {
		inner := nameA
		if c.AOutsideB {
			inner = nameB
		}
		fmt.Printf("%s passes inside the orbit of the other body on %s\n", inner, dateLabel(epoch, c.T))
	}
	return nil
}

func printElements(name string, b *orbital.Body) {
	a, e, i, Ω, ω, ν, err := b.Elements()
	fmt.Printf("%s (%s)\n", name, b.OrbitType())
	fmt.Printf("\ta=%.6e km e=%.6f i=%.6f° Ω=%.6f° ω=%.6f° ν=%.6f°\n", a, e, orbital.Rad2deg(i), orbital.Rad2deg(Ω), orbital.Rad2deg(ω), orbital.Rad2deg(ν))
	fmt.Printf("\tξ=%.6e km²/s² h=%s\n", b.TotalEnergy(), vecString(b.AngularMomentum()))
	if err != nil {
		fmt.Printf("\twarning: %s\n", err)
	}
}

// dateLabel converts an offset in seconds from a Julian date epoch into a
// calendar label. Without an epoch the offset is printed in days.
func dateLabel(epoch, Δt float64) string {
	if epoch == 0 {
		return fmt.Sprintf("t0%+.3fd", Δt/orbital.Day)
	}
	jd := epoch + Δt/orbital.Day
	return fmt.Sprintf("%s (JD %.5f)", julian.JDToTime(jd).UTC().Format(dateFormat), jd)
}

func vecString(v r3.Vec) string {
	return fmt.Sprintf("[%.15e %.15e %.15e]", v.X, v.Y, v.Z)
}

