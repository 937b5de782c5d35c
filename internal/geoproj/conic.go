package geoproj

import "math"

func ConicEqualAreaRaw(y0, y1 float64) Raw {
	sy0 := math.Sin(y0)
	n := (sy0 + math.Sin(y1)) / 2
	if math.Abs(n) < epsilon {
		return cylindricalEqualAreaRaw(y0)
	}
	c := 1 + sy0*(2*n-sy0)
	r0 := math.Sqrt(c) / n
	return rawFuncs{
		forward: func(x, y float64) (float64, float64) {
			r := math.Sqrt(c-2*n*math.Sin(y)) / n
			x *= n
			return r * math.Sin(x), r0 - r*math.Cos(x)
		},
		inverse: func(x, y float64) (float64, float64) {
			r0y := r0 - y
			l := math.Atan2(x, math.Abs(r0y)) * sign(r0y)
			if r0y*n < 0 {
				l -= math.Pi * sign(x) * sign(r0y)
			}
			return l / n, asin((c - (x*x+r0y*r0y)*n*n) / (2 * n))
		},
	}
}

func ConicConformalRaw(y0, y1 float64) Raw {
	tany := func(y float64) float64 { return math.Tan((halfPi + y) / 2) }
	cy0 := math.Cos(y0)
	var n float64
	if y0 == y1 {
		n = math.Sin(y0)
	} else {
		n = math.Log(cy0/math.Cos(y1)) / math.Log(tany(y1)/tany(y0))
	}
	if n == 0 {
		return MercatorRaw()
	}
	f := cy0 * math.Pow(tany(y0), n) / n
	return rawFuncs{
		forward: func(x, y float64) (float64, float64) {
			if f > 0 {
				if y < -halfPi+epsilon {
					y = -halfPi + epsilon
				}
			} else if y > halfPi-epsilon {
				y = halfPi - epsilon
			}
			r := f / math.Pow(tany(y), n)
			return r * math.Sin(n*x), f - r*math.Cos(n*x)
		},
		inverse: func(x, y float64) (float64, float64) {
			fy := f - y
			r := sign(n) * math.Hypot(x, fy)
			l := math.Atan2(x, math.Abs(fy)) * sign(fy)
			if fy*n < 0 {
				l -= math.Pi * sign(x) * sign(fy)
			}
			return l / n, 2*math.Atan(math.Pow(f/r, 1/n)) - halfPi
		},
	}
}

func ConicEquidistantRaw(y0, y1 float64) Raw {
	cy0 := math.Cos(y0)
	var n float64
	if y0 == y1 {
		n = math.Sin(y0)
	} else {
		n = (cy0 - math.Cos(y1)) / (y1 - y0)
	}
	if math.Abs(n) < epsilon {
		return EquirectangularRaw()
	}
	g := cy0/n + y0
	return rawFuncs{
		forward: func(x, y float64) (float64, float64) {
			gy := g - y
			nx := n * x
			return gy * math.Sin(nx), g - gy*math.Cos(nx)
		},
		inverse: func(x, y float64) (float64, float64) {
			gy := g - y
			l := math.Atan2(x, math.Abs(gy)) * sign(gy)
			if gy*n < 0 {
				l -= math.Pi * sign(x) * sign(gy)
			}
			return l / n, g - sign(n)*math.Hypot(x, gy)
		},
	}
}

// Conic is a Basic projection whose raw projection depends on two
// standard parallels.
type Conic struct {
	Basic
	build      func(phi0, phi1 float64) Raw
	phi0, phi1 float64
}

func newConic(build func(phi0, phi1 float64) Raw) *Conic {
	c := &Conic{build: build, phi1: math.Pi / 3}
	c.raw = build(c.phi0, c.phi1)
	c.k, c.tx, c.ty = 150, 480, 250
	c.recenter()
	return c
}

// Parallels returns the standard parallels in degrees.
func (c *Conic) Parallels() [2]float64 {
	return [2]float64{c.phi0 * degrees, c.phi1 * degrees}
}

func (c *Conic) SetParallels(p [2]float64) {
	c.phi0, c.phi1 = p[0]*radians, p[1]*radians
	c.raw = c.build(c.phi0, c.phi1)
	c.recenter()
}

func (c *Conic) Clone() Projection {
	cc := *c
	return &cc
}

func ConicEqualArea() *Conic {
	c := newConic(ConicEqualAreaRaw)
	c.SetScale(155.424)
	c.SetCenter([2]float64{0, 33.6442})
	return c
}

func ConicConformal() *Conic {
	c := newConic(ConicConformalRaw)
	c.SetScale(109.5)
	c.SetParallels([2]float64{30, 30})
	return c
}

func ConicEquidistant() *Conic {
	c := newConic(ConicEquidistantRaw)
	c.SetScale(131.154)
	c.SetCenter([2]float64{0, 13.9389})
	return c
}

// Albers is the conic equal-area projection centered on the contiguous
// United States.
func Albers() *Conic {
	c := ConicEqualArea()
	c.SetParallels([2]float64{29.5, 45.5})
	c.SetScale(1070)
	c.SetTranslate([2]float64{480, 250})
	c.SetRotate([3]float64{96, 0, 0})
	c.SetCenter([2]float64{-0.6, 38.7})
	return c
}
