package geoproj

import (
	"errors"
	"math"

	"github.com/paulmach/orb"
)

// ErrNoExtent is returned by FitWidth when the projected geometry has no
// horizontal extent to fit.
var ErrNoExtent = errors.New("geoproj: projected geometry has no extent")

// maxSegment bounds the angular length of the pieces a segment is cut
// into before its vertices are projected, so curved edges of conic and
// azimuthal projections contribute to the bounds.
const maxSegment = 1 * radians

// Bounds returns the planar bounding box of g under p. Vertices p cannot
// project are skipped. ok is false when no vertex could be projected.
func Bounds(p Projection, g orb.Geometry) (b orb.Bound, ok bool) {
	s := boundsStream{p: p}
	s.geometry(g)
	return s.b, s.any
}

// FitWidth sets the scale and translate of p so that g spans [0, width]
// horizontally with its top edge at y=0.
func FitWidth(p Projection, width float64, g orb.Geometry) error {
	p.SetScale(150)
	p.SetTranslate([2]float64{0, 0})
	b, ok := Bounds(p, g)
	if !ok || !(b.Max[0] > b.Min[0]) {
		return ErrNoExtent
	}
	k := width / (b.Max[0] - b.Min[0])
	x := (width - k*(b.Max[0]+b.Min[0])) / 2
	y := -k * b.Min[1]
	p.SetScale(150 * k)
	p.SetTranslate([2]float64{x, y})
	return nil
}

type boundsStream struct {
	p   Projection
	b   orb.Bound
	any bool
}

func (s *boundsStream) point(pt orb.Point) {
	x, y, ok := s.p.Project(pt[0], pt[1])
	if !ok {
		return
	}
	if !s.any {
		s.b = orb.Bound{Min: orb.Point{x, y}, Max: orb.Point{x, y}}
		s.any = true
		return
	}
	s.b = s.b.Extend(orb.Point{x, y})
}

func (s *boundsStream) line(pts []orb.Point) {
	for i, pt := range pts {
		if i > 0 {
			s.densify(pts[i-1], pt)
		}
		s.point(pt)
	}
}

// densify feeds the interior points of the great-circle arc from a to b.
func (s *boundsStream) densify(a, b orb.Point) {
	arc := newArc(a, b)
	n := arc.steps()
	for i := 1; i < n; i++ {
		s.point(arc.at(float64(i) / float64(n)))
	}
}

// Densify returns line with great-circle points inserted so that no
// segment spans more than a degree.
func Densify(line orb.LineString) orb.LineString {
	if len(line) < 2 {
		return line
	}
	out := orb.LineString{line[0]}
	for i := 1; i < len(line); i++ {
		arc := newArc(line[i-1], line[i])
		n := arc.steps()
		for k := 1; k < n; k++ {
			out = append(out, arc.at(float64(k)/float64(n)))
		}
		out = append(out, line[i])
	}
	return out
}

func (s *boundsStream) geometry(g orb.Geometry) {
	switch g := g.(type) {
	case orb.Point:
		s.point(g)
	case orb.MultiPoint:
		for _, p := range g {
			s.point(p)
		}
	case orb.LineString:
		s.line(g)
	case orb.MultiLineString:
		for _, ls := range g {
			s.line(ls)
		}
	case orb.Ring:
		s.line(g)
	case orb.Polygon:
		for _, r := range g {
			s.line(r)
		}
	case orb.MultiPolygon:
		for _, p := range g {
			s.geometry(p)
		}
	case orb.Collection:
		for _, c := range g {
			s.geometry(c)
		}
	case orb.Bound:
		s.line(g.ToRing())
	}
}

// arc interpolates along the great circle between two lon/lat points.
type arc struct {
	a                  orb.Point
	d, k               float64
	kx0, ky0, kx1, ky1 float64
	sy0, sy1           float64
}

func newArc(a, b orb.Point) arc {
	x0, y0 := a[0]*radians, a[1]*radians
	x1, y1 := b[0]*radians, b[1]*radians
	cy0, cy1 := math.Cos(y0), math.Cos(y1)
	r := arc{
		a:   a,
		kx0: cy0 * math.Cos(x0), ky0: cy0 * math.Sin(x0),
		kx1: cy1 * math.Cos(x1), ky1: cy1 * math.Sin(x1),
		sy0: math.Sin(y0), sy1: math.Sin(y1),
	}
	r.d = 2 * asin(math.Sqrt(haversin(y1-y0)+cy0*cy1*haversin(x1-x0)))
	r.k = math.Sin(r.d)
	return r
}

// steps is the number of pieces of at most maxSegment the arc is cut
// into. Float noise on an exact multiple does not add a piece.
func (r arc) steps() int {
	return int(math.Ceil(r.d/maxSegment - 1e-9))
}

func (r arc) at(t float64) orb.Point {
	if r.d == 0 || r.k == 0 {
		return r.a
	}
	t *= r.d
	B := math.Sin(t) / r.k
	A := math.Sin(r.d-t) / r.k
	x := A*r.kx0 + B*r.kx1
	y := A*r.ky0 + B*r.ky1
	z := A*r.sy0 + B*r.sy1
	return orb.Point{math.Atan2(y, x) * degrees, math.Atan2(z, math.Hypot(x, y)) * degrees}
}

// Interpolate returns the point at fraction t along the great circle from
// a to b.
func Interpolate(a, b orb.Point, t float64) orb.Point {
	return newArc(a, b).at(t)
}
