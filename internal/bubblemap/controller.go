// Package bubblemap places data records on a projected map as sized,
// coloured circles.
package bubblemap

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"bubblemap/internal/geom"
	"bubblemap/internal/scale"
)

// Mode selects how Update sizes elements. ModeReset collapses every
// bubble to zero radius, the starting frame of a grow-in animation.
type Mode int

const (
	ModeDefault Mode = iota
	ModeReset
)

// Parsed is a record reduced to what the element stage needs: X is the
// longitude, Y the latitude and R the value.
type Parsed struct {
	X, Y, R float64
	Label   string
}

// Element is one drawable bubble in pixel space.
type Element struct {
	Index  int
	Label  string
	X, Y   float64
	Radius float64
	Value  float64
	Skip   bool
	Color  string
}

type Controller struct {
	proj *scale.ProjectionScale
	size *scale.SizeScale

	low, high, missing colorful.Color

	parsed []Parsed
}

type Option func(*Controller)

// WithRamp sets the colours for the smallest and largest values. Bad hex
// strings leave the default in place.
func WithRamp(low, high string) Option {
	return func(c *Controller) {
		if l, err := colorful.Hex(low); err == nil {
			c.low = l
		}
		if h, err := colorful.Hex(high); err == nil {
			c.high = h
		}
	}
}

func New(proj *scale.ProjectionScale, size *scale.SizeScale, opts ...Option) *Controller {
	if size == nil {
		size = scale.NewSizeScale(scale.DefaultSizeOptions())
	}
	c := &Controller{
		proj:    proj,
		size:    size,
		low:     colorful.Color{R: 0.99, G: 0.85, B: 0.46},
		high:    colorful.Color{R: 0.49, G: 0.23, B: 0.93},
		missing: colorful.Color{R: 0.5, G: 0.5, B: 0.5},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Controller) Projection() *scale.ProjectionScale { return c.proj }

func (c *Controller) Size() *scale.SizeScale { return c.size }

// Parse converts records and fits the size scale to their values.
func (c *Controller) Parse(records []geom.Record) []Parsed {
	out := make([]Parsed, len(records))
	values := make([]float64, len(records))
	for i, r := range records {
		out[i] = Parsed{X: r.Longitude, Y: r.Latitude, R: r.Value, Label: r.Label}
		values[i] = r.Value
	}
	c.size.Fit(values)
	c.parsed = out
	return out
}

// Update projects parsed points into elements. Points without a position
// or outside what the projection can show are marked Skip.
func (c *Controller) Update(parsed []Parsed, mode Mode) []Element {
	elems := make([]Element, len(parsed))
	for i, p := range parsed {
		e := Element{Index: i, Label: p.Label, Value: p.R}
		if math.IsNaN(p.X) || math.IsNaN(p.Y) {
			e.Skip = true
		} else if x, y, ok := c.proj.Project(p.X, p.Y); ok {
			e.X, e.Y = x, y
		} else {
			e.Skip = true
		}
		if mode != ModeReset {
			e.Radius = c.size.SizeForValue(p.R)
		}
		e.Color = c.colorFor(p.R).Hex()
		elems[i] = e
	}
	return elems
}

func (c *Controller) colorFor(v float64) colorful.Color {
	t := c.size.Normalize(v)
	if math.IsNaN(t) {
		return c.missing
	}
	return c.low.BlendLab(c.high, t).Clamped()
}

// IndexToRadius is the radius of the i-th parsed point, 0 when out of
// range.
func (c *Controller) IndexToRadius(i int) float64 {
	if i < 0 || i >= len(c.parsed) {
		return 0
	}
	return c.size.SizeForValue(c.parsed[i].R)
}

// Nearest returns the index into elems of the visible element closest to
// (x, y), or -1 when there is none.
func Nearest(x, y float64, elems []Element) int {
	best, bestD := -1, math.Inf(1)
	for i, e := range elems {
		if e.Skip {
			continue
		}
		if d := math.Hypot(e.X-x, e.Y-y); d < bestD {
			best, bestD = i, d
		}
	}
	return best
}
