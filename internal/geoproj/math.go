package geoproj

import "math"

const (
	epsilon  = 1e-6
	epsilon2 = 1e-12

	halfPi    = math.Pi / 2
	quarterPi = math.Pi / 4
	tau       = math.Pi * 2

	degrees = 180 / math.Pi
	radians = math.Pi / 180
)

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

// asin and acos clamp their input so rounding noise just outside [-1, 1]
// does not turn into NaN.
func asin(x float64) float64 {
	if x > 1 {
		return halfPi
	}
	if x < -1 {
		return -halfPi
	}
	return math.Asin(x)
}

func acos(x float64) float64 {
	if x > 1 {
		return 0
	}
	if x < -1 {
		return math.Pi
	}
	return math.Acos(x)
}

func haversin(x float64) float64 {
	s := math.Sin(x / 2)
	return s * s
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// wrapLongitude brings a longitude in radians back into [-pi, pi].
func wrapLongitude(lambda float64) float64 {
	if math.Abs(lambda) > math.Pi {
		lambda -= math.Floor(lambda/tau+0.5) * tau
	}
	return lambda
}
