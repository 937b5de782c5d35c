package geoproj

import "math"

func azimuthalForward(scale func(cxcy float64) float64) func(float64, float64) (float64, float64) {
	return func(lambda, phi float64) (float64, float64) {
		cx, cy := math.Cos(lambda), math.Cos(phi)
		k := scale(cx * cy)
		if math.IsInf(k, 0) {
			return 2, 0
		}
		return k * cy * math.Sin(lambda), k * math.Sin(phi)
	}
}

func azimuthalInverse(angle func(z float64) float64) func(float64, float64) (float64, float64) {
	return func(x, y float64) (float64, float64) {
		z := math.Hypot(x, y)
		c := angle(z)
		sc, cc := math.Sin(c), math.Cos(c)
		var phi float64
		if z != 0 {
			phi = asin(y * sc / z)
		}
		return math.Atan2(x*sc, z*cc), phi
	}
}

// AzimuthalEqualAreaRaw is the Lambert azimuthal equal-area projection.
func AzimuthalEqualAreaRaw() Raw {
	return rawFuncs{
		forward: azimuthalForward(func(cxcy float64) float64 { return math.Sqrt(2 / (1 + cxcy)) }),
		inverse: azimuthalInverse(func(z float64) float64 { return 2 * asin(z/2) }),
	}
}

// AzimuthalEquidistantRaw preserves distances from the center.
func AzimuthalEquidistantRaw() Raw {
	return rawFuncs{
		forward: azimuthalForward(func(cxcy float64) float64 {
			c := acos(cxcy)
			if c == 0 {
				return 0
			}
			return c / math.Sin(c)
		}),
		inverse: azimuthalInverse(func(z float64) float64 { return z }),
	}
}

func GnomonicRaw() Raw {
	return rawFuncs{
		forward: func(lambda, phi float64) (float64, float64) {
			cy := math.Cos(phi)
			k := math.Cos(lambda) * cy
			return cy * math.Sin(lambda) / k, math.Sin(phi) / k
		},
		inverse: azimuthalInverse(math.Atan),
	}
}

func OrthographicRaw() Raw {
	return rawFuncs{
		forward: func(lambda, phi float64) (float64, float64) {
			return math.Cos(phi) * math.Sin(lambda), math.Sin(phi)
		},
		inverse: azimuthalInverse(asin),
	}
}

func StereographicRaw() Raw {
	return rawFuncs{
		forward: func(lambda, phi float64) (float64, float64) {
			cy := math.Cos(phi)
			k := 1 + math.Cos(lambda)*cy
			return cy * math.Sin(lambda) / k, math.Sin(phi) / k
		},
		inverse: azimuthalInverse(func(z float64) float64 { return 2 * math.Atan(z) }),
	}
}

func AzimuthalEqualArea() *Basic {
	b := NewBasic(AzimuthalEqualAreaRaw())
	b.SetScale(124.75)
	b.SetClipAngle(180 - 1e-3)
	return b
}

func AzimuthalEquidistant() *Basic {
	b := NewBasic(AzimuthalEquidistantRaw())
	b.SetScale(79.4188)
	b.SetClipAngle(180 - 1e-3)
	return b
}

func Gnomonic() *Basic {
	b := NewBasic(GnomonicRaw())
	b.SetScale(144.049)
	b.SetClipAngle(60)
	return b
}

// Orthographic shows one hemisphere; points on the far side are not
// projected.
func Orthographic() *Basic {
	b := NewBasic(OrthographicRaw())
	b.SetScale(249.5)
	b.SetClipAngle(90 + epsilon)
	return b
}

func Stereographic() *Basic {
	b := NewBasic(StereographicRaw())
	b.SetScale(250)
	b.SetClipAngle(142)
	return b
}
