package geoproj

import "math"

func EquirectangularRaw() Raw {
	id := func(a, b float64) (float64, float64) { return a, b }
	return rawFuncs{forward: id, inverse: id}
}

func MercatorRaw() Raw {
	return rawFuncs{
		forward: func(lambda, phi float64) (float64, float64) {
			return lambda, math.Log(math.Tan((halfPi + phi) / 2))
		},
		inverse: func(x, y float64) (float64, float64) {
			return x, 2*math.Atan(math.Exp(y)) - halfPi
		},
	}
}

func TransverseMercatorRaw() Raw {
	return rawFuncs{
		forward: func(lambda, phi float64) (float64, float64) {
			return math.Log(math.Tan((halfPi + phi) / 2)), -lambda
		},
		inverse: func(x, y float64) (float64, float64) {
			return -y, 2*math.Atan(math.Exp(x)) - halfPi
		},
	}
}

func cylindricalEqualAreaRaw(phi0 float64) Raw {
	cosPhi0 := math.Cos(phi0)
	return rawFuncs{
		forward: func(lambda, phi float64) (float64, float64) {
			return lambda * cosPhi0, math.Sin(phi) / cosPhi0
		},
		inverse: func(x, y float64) (float64, float64) {
			return x / cosPhi0, asin(y * cosPhi0)
		},
	}
}

// Equal Earth polynomial coefficients.
const (
	eeA1 = 1.340264
	eeA2 = -0.081106
	eeA3 = 0.000893
	eeA4 = 0.003796
)

var eeM = math.Sqrt(3) / 2

func EqualEarthRaw() Raw {
	return rawFuncs{
		forward: func(lambda, phi float64) (float64, float64) {
			l := math.Asin(eeM * math.Sin(phi))
			l2 := l * l
			l6 := l2 * l2 * l2
			return lambda * math.Cos(l) / (eeM * (eeA1 + 3*eeA2*l2 + l6*(7*eeA3+9*eeA4*l2))),
				l * (eeA1 + eeA2*l2 + l6*(eeA3+eeA4*l2))
		},
		inverse: func(x, y float64) (float64, float64) {
			l := y
			l2 := l * l
			l6 := l2 * l2 * l2
			for i := 0; i < 12; i++ {
				fy := l*(eeA1+eeA2*l2+l6*(eeA3+eeA4*l2)) - y
				fpy := eeA1 + 3*eeA2*l2 + l6*(7*eeA3+9*eeA4*l2)
				delta := fy / fpy
				l -= delta
				l2 = l * l
				l6 = l2 * l2 * l2
				if math.Abs(delta) < epsilon2 {
					break
				}
			}
			return eeM * x * (eeA1 + 3*eeA2*l2 + l6*(7*eeA3+9*eeA4*l2)) / math.Cos(l),
				asin(math.Sin(l) / eeM)
		},
	}
}

func NaturalEarth1Raw() Raw {
	return rawFuncs{
		forward: func(lambda, phi float64) (float64, float64) {
			phi2 := phi * phi
			phi4 := phi2 * phi2
			return lambda * (0.8707 - 0.131979*phi2 + phi4*(-0.013791+phi4*(0.003971*phi2-0.001529*phi4))),
				phi * (1.007226 + phi2*(0.015085+phi4*(-0.044475+0.028874*phi2-0.005916*phi4)))
		},
		inverse: func(x, y float64) (float64, float64) {
			phi := y
			for i := 25; i > 0; i-- {
				phi2 := phi * phi
				phi4 := phi2 * phi2
				delta := (phi*(1.007226+phi2*(0.015085+phi4*(-0.044475+0.028874*phi2-0.005916*phi4))) - y) /
					(1.007226 + phi2*(0.015085*3+phi4*(-0.044475*7+0.028874*9*phi2-0.005916*11*phi4)))
				phi -= delta
				if math.Abs(delta) <= epsilon {
					break
				}
			}
			phi2 := phi * phi
			return x / (0.8707 + phi2*(-0.131979+phi2*(-0.013791+phi2*phi2*phi2*(0.003971-0.001529*phi2)))), phi
		},
	}
}

func Equirectangular() *Basic {
	b := NewBasic(EquirectangularRaw())
	b.SetScale(152.63)
	return b
}

func Mercator() *Basic {
	b := NewBasic(MercatorRaw())
	b.SetScale(961 / tau)
	return b
}

func TransverseMercator() *Basic {
	b := NewBasic(TransverseMercatorRaw())
	b.SetRotate([3]float64{0, 0, 90})
	b.SetScale(159.155)
	return b
}

func EqualEarth() *Basic {
	b := NewBasic(EqualEarthRaw())
	b.SetScale(177.158)
	return b
}

func NaturalEarth1() *Basic {
	b := NewBasic(NaturalEarth1Raw())
	b.SetScale(175.295)
	return b
}
