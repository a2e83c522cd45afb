package orbital

import (
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// ConfigEnv is the environment variable holding the directory of orbital.toml
// when LoadConfig is called with an empty path.
const ConfigEnv = "ORBITAL_CONFIG"

// Config carries everything the engine needs besides the state vectors. Mu is
// always stored in km³/s², Units only describe the caller's state vectors.
type Config struct {
	Mu                    float64
	Units                 Units
	EccentricityTolerance float64 // zero means exact classification
	Kepler                KeplerSolver
}

// DefaultConfig returns a km/s configuration for the given μ (km³/s²) with
// exact classification and the default Kepler solver.
func DefaultConfig(μ float64) Config {
	return Config{Mu: μ, Units: KilometersSeconds, Kepler: DefaultKeplerSolver}
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if !(c.Mu > 0) || math.IsInf(c.Mu, 0) {
		return errors.Errorf("gravitational parameter must be positive and finite, got %g", c.Mu)
	}
	if !(c.Units.Length > 0) || !(c.Units.Time > 0) {
		return errors.Errorf("invalid unit system %+v", c.Units)
	}
	if c.EccentricityTolerance < 0 || math.IsNaN(c.EccentricityTolerance) {
		return errors.Errorf("eccentricity tolerance must be positive, got %g", c.EccentricityTolerance)
	}
	if c.Kepler.Tolerance < 0 || math.IsNaN(c.Kepler.Tolerance) {
		return errors.Errorf("Kepler tolerance must be positive, got %g", c.Kepler.Tolerance)
	}
	if c.Kepler.MaxIterations < 0 {
		return errors.Errorf("Kepler iteration cap must be positive, got %d", c.Kepler.MaxIterations)
	}
	return nil
}

// Classify returns the orbit type of e under this configuration's tolerance.
func (c Config) Classify(e float64) OrbitType {
	return ClassifyWithin(e, c.EccentricityTolerance)
}

// LoadConfig reads an orbital TOML configuration. An empty path reads
// orbital.toml from the directory in $ORBITAL_CONFIG. Any key may be
// overridden by an ORBITAL_ prefixed environment variable, e.g.
// ORBITAL_KEPLER_MAX_ITERATIONS.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		dir := os.Getenv(ConfigEnv)
		if dir == "" {
			return Config{}, errors.Errorf("environment variable `%s` is missing or empty", ConfigEnv)
		}
		path = filepath.Join(dir, "orbital.toml")
	}
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Config{}, errors.Wrapf(err, "reading %s", path)
	}
	return ConfigFromViper(v)
}

// ConfigFromViper builds the configuration from an already loaded viper
// instance. The central body is given either by name (central.body) or by μ
// (central.mu) expressed in the configured unit system.
func ConfigFromViper(v *viper.Viper) (Config, error) {
	v.SetEnvPrefix("ORBITAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault("units.system", KilometersSeconds.Name)
	v.SetDefault("kepler.tolerance", KeplerTolerance)
	v.SetDefault("kepler.max_iterations", KeplerMaxIterations)
	v.SetDefault("classify.eccentricity_tolerance", 0.0)

	units, err := UnitsFromString(v.GetString("units.system"))
	if err != nil {
		return Config{}, errors.Wrap(err, "units.system")
	}
	conf := Config{
		Units:                 units,
		EccentricityTolerance: v.GetFloat64("classify.eccentricity_tolerance"),
		Kepler: KeplerSolver{
			Tolerance:     v.GetFloat64("kepler.tolerance"),
			MaxIterations: v.GetInt("kepler.max_iterations"),
		},
	}
	switch {
	case v.IsSet("central.mu"):
		conf.Mu = units.MuToInternal(v.GetFloat64("central.mu"))
	case v.IsSet("central.body"):
		body, err := CelestialObjectFromString(v.GetString("central.body"))
		if err != nil {
			return Config{}, errors.Wrap(err, "central.body")
		}
		conf.Mu = body.GM()
	default:
		return Config{}, errors.New("either central.body or central.mu must be set")
	}
	if err := conf.Validate(); err != nil {
		return Config{}, err
	}
	return conf, nil
}
