// Package geoproj implements spherical cartographic projections with a
// mutable scale and translate, in the style of the d3-geo projection
// pipeline: rotate, clip, raw projection, then scale and translate into
// planar coordinates with y growing downward.
package geoproj

import "math"

// Projection maps longitude/latitude in degrees to planar coordinates.
//
// Implementations are stateful: SetScale and SetTranslate mutate the
// instance in place, so an instance must not be shared between owners.
// Clone returns an independent copy.
type Projection interface {
	// Project returns ok=false when the point cannot be represented,
	// for example when it lies outside the visible hemisphere.
	Project(lon, lat float64) (x, y float64, ok bool)
	Invert(x, y float64) (lon, lat float64, ok bool)
	Scale() float64
	SetScale(k float64)
	Translate() [2]float64
	SetTranslate(t [2]float64)
	Clone() Projection
}

// Raw is a projection of the unit sphere. Angles are in radians and y
// grows northward.
type Raw interface {
	Forward(lambda, phi float64) (x, y float64)
	Inverse(x, y float64) (lambda, phi float64)
}

type rawFuncs struct {
	forward func(lambda, phi float64) (float64, float64)
	inverse func(x, y float64) (float64, float64)
}

func (r rawFuncs) Forward(lambda, phi float64) (float64, float64) { return r.forward(lambda, phi) }

func (r rawFuncs) Inverse(x, y float64) (float64, float64) { return r.inverse(x, y) }

// Basic applies rotation, an optional small-circle clip, a raw projection,
// scale and translate.
type Basic struct {
	raw Raw

	k        float64
	tx, ty   float64
	lambda   float64 // center, radians
	phi      float64
	rotation [3]float64 // degrees
	clip     float64    // clip angle in degrees, 0 disables
	cr       float64

	rot    rotation
	dx, dy float64
}

// NewBasic returns a projection of raw with the default scale of 150 and
// translate of [480, 250].
func NewBasic(raw Raw) *Basic {
	b := &Basic{raw: raw, k: 150, tx: 480, ty: 250}
	b.recenter()
	return b
}

func (b *Basic) recenter() {
	cx, cy := b.raw.Forward(b.lambda, b.phi)
	b.dx = b.tx - b.k*cx
	b.dy = b.ty + b.k*cy
	b.rot = newRotation(b.rotation[0]*radians, b.rotation[1]*radians, b.rotation[2]*radians)
}

// Project implements Projection.
func (b *Basic) Project(lon, lat float64) (float64, float64, bool) {
	lambda, phi := b.rot.forward(lon*radians, lat*radians)
	if b.clip > 0 && math.Cos(lambda)*math.Cos(phi) <= b.cr {
		return 0, 0, false
	}
	rx, ry := b.raw.Forward(lambda, phi)
	x, y := b.dx+b.k*rx, b.dy-b.k*ry
	if !finite(x, y) {
		return 0, 0, false
	}
	return x, y, true
}

// Invert implements Projection.
func (b *Basic) Invert(x, y float64) (float64, float64, bool) {
	if b.k == 0 {
		return 0, 0, false
	}
	lambda, phi := b.raw.Inverse((x-b.dx)/b.k, (b.dy-y)/b.k)
	if !finite(lambda, phi) {
		return 0, 0, false
	}
	lambda, phi = b.rot.inverse(lambda, phi)
	return lambda * degrees, phi * degrees, true
}

func (b *Basic) Scale() float64 { return b.k }

func (b *Basic) SetScale(k float64) {
	b.k = k
	b.recenter()
}

func (b *Basic) Translate() [2]float64 { return [2]float64{b.tx, b.ty} }

func (b *Basic) SetTranslate(t [2]float64) {
	b.tx, b.ty = t[0], t[1]
	b.recenter()
}

// Center returns the longitude/latitude that maps to the translate point.
func (b *Basic) Center() [2]float64 {
	return [2]float64{b.lambda * degrees, b.phi * degrees}
}

func (b *Basic) SetCenter(c [2]float64) {
	b.lambda = math.Mod(c[0], 360) * radians
	b.phi = math.Mod(c[1], 360) * radians
	b.recenter()
}

// Rotate returns the three-axis rotation in degrees.
func (b *Basic) Rotate() [3]float64 { return b.rotation }

func (b *Basic) SetRotate(r [3]float64) {
	b.rotation = [3]float64{math.Mod(r[0], 360), math.Mod(r[1], 360), math.Mod(r[2], 360)}
	b.recenter()
}

// ClipAngle returns the radius in degrees of the visible small circle
// around the projection center, or 0 when points are never clipped.
func (b *Basic) ClipAngle() float64 { return b.clip }

func (b *Basic) SetClipAngle(deg float64) {
	b.clip = deg
	b.cr = math.Cos(deg * radians)
}

func (b *Basic) Clone() Projection {
	c := *b
	return &c
}
