package orbital

import "math"

// TrueToEccentric returns the eccentric anomaly in (-π, π] of an elliptic
// orbit of eccentricity e at true anomaly ν.
func TrueToEccentric(ν, e float64) float64 {
	sinν, cosν := math.Sincos(ν)
	return math.Atan2(math.Sqrt(1-e*e)*sinν, e+cosν)
}

// EccentricToTrue returns the true anomaly in [0, 2π) of an elliptic orbit of
// eccentricity e at eccentric anomaly E. The half angle form keeps the
// quadrant, unlike inverting cos ν = (cos E - e)/(1 - e cos E).
func EccentricToTrue(E, e float64) float64 {
	sinE2, cosE2 := math.Sincos(E / 2)
	return normalizeAngle(2 * math.Atan2(math.Sqrt(1+e)*sinE2, math.Sqrt(1-e)*cosE2))
}

// TrueToHyperbolic returns the hyperbolic anomaly of a hyperbolic orbit of
// eccentricity e at true anomaly ν.
func TrueToHyperbolic(ν, e float64) float64 {
	return 2 * math.Atanh(math.Sqrt((e-1)/(e+1))*math.Tan(ν/2))
}

// HyperbolicToTrue returns the true anomaly in [0, 2π) of a hyperbolic orbit
// of eccentricity e at hyperbolic anomaly F.
func HyperbolicToTrue(F, e float64) float64 {
	return normalizeAngle(2 * math.Atan(math.Sqrt((e+1)/(e-1))*math.Tanh(F/2)))
}

// MeanFromEccentric is Kepler's equation, M = E - e sin E.
func MeanFromEccentric(E, e float64) float64 {
	return E - e*math.Sin(E)
}

// MeanFromHyperbolic is the hyperbolic Kepler's equation, N = e sinh F - F.
func MeanFromHyperbolic(F, e float64) float64 {
	return e*math.Sinh(F) - F
}
