package geoproj

type extent struct {
	x0, y0, x1, y1 float64
}

func (e extent) contains(x, y float64) bool {
	return e.x0 <= x && x <= e.x1 && e.y0 <= y && y <= e.y1
}

// AlbersUSA is a composite of three conic equal-area projections: the
// lower 48 states, with Alaska and Hawaii inset beneath. A point is
// projected by the first part whose inset rectangle contains it; points
// outside all three are not projected.
type AlbersUSA struct {
	lower48, alaska, hawaii *Conic

	lower48Ext, alaskaExt, hawaiiExt extent
}

func NewAlbersUSA() *AlbersUSA {
	a := &AlbersUSA{lower48: Albers()}

	a.alaska = ConicEqualArea()
	a.alaska.SetRotate([3]float64{154, 0, 0})
	a.alaska.SetCenter([2]float64{-2, 58.5})
	a.alaska.SetParallels([2]float64{55, 65})

	a.hawaii = ConicEqualArea()
	a.hawaii.SetRotate([3]float64{157, 0, 0})
	a.hawaii.SetCenter([2]float64{-3, 19.9})
	a.hawaii.SetParallels([2]float64{8, 18})

	a.SetScale(1070)
	return a
}

func (a *AlbersUSA) Scale() float64 { return a.lower48.Scale() }

func (a *AlbersUSA) SetScale(k float64) {
	a.lower48.SetScale(k)
	a.alaska.SetScale(k * 0.35)
	a.hawaii.SetScale(k)
	a.SetTranslate(a.lower48.Translate())
}

func (a *AlbersUSA) Translate() [2]float64 { return a.lower48.Translate() }

func (a *AlbersUSA) SetTranslate(t [2]float64) {
	k := a.lower48.Scale()
	x, y := t[0], t[1]

	a.lower48.SetTranslate(t)
	a.lower48Ext = extent{x - 0.455*k, y - 0.238*k, x + 0.455*k, y + 0.238*k}

	a.alaska.SetTranslate([2]float64{x - 0.307*k, y + 0.201*k})
	a.alaskaExt = extent{x - 0.425*k + epsilon, y + 0.120*k + epsilon, x - 0.214*k - epsilon, y + 0.234*k - epsilon}

	a.hawaii.SetTranslate([2]float64{x - 0.205*k, y + 0.212*k})
	a.hawaiiExt = extent{x - 0.214*k + epsilon, y + 0.166*k + epsilon, x - 0.115*k - epsilon, y + 0.234*k - epsilon}
}

func (a *AlbersUSA) Project(lon, lat float64) (float64, float64, bool) {
	parts := [...]struct {
		p   *Conic
		ext extent
	}{
		{a.lower48, a.lower48Ext},
		{a.alaska, a.alaskaExt},
		{a.hawaii, a.hawaiiExt},
	}
	for _, part := range parts {
		if x, y, ok := part.p.Project(lon, lat); ok && part.ext.contains(x, y) {
			return x, y, true
		}
	}
	return 0, 0, false
}

func (a *AlbersUSA) Invert(x, y float64) (float64, float64, bool) {
	k := a.lower48.Scale()
	t := a.lower48.Translate()
	u, v := (x-t[0])/k, (y-t[1])/k
	switch {
	case v >= 0.120 && v < 0.234 && u >= -0.425 && u < -0.214:
		return a.alaska.Invert(x, y)
	case v >= 0.166 && v < 0.234 && u >= -0.214 && u < -0.115:
		return a.hawaii.Invert(x, y)
	}
	return a.lower48.Invert(x, y)
}

func (a *AlbersUSA) Clone() Projection {
	return &AlbersUSA{
		lower48:    a.lower48.Clone().(*Conic),
		alaska:     a.alaska.Clone().(*Conic),
		hawaii:     a.hawaii.Clone().(*Conic),
		lower48Ext: a.lower48Ext,
		alaskaExt:  a.alaskaExt,
		hawaiiExt:  a.hawaiiExt,
	}
}
