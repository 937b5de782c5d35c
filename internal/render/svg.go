// Package render draws a laid out bubble map as SVG.
package render

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/paulmach/orb"

	"bubblemap/internal/bubblemap"
	"bubblemap/internal/geom"
	"bubblemap/internal/geoproj"
	"bubblemap/internal/scale"
)

// Projector is the part of a projection scale the renderer needs.
type Projector interface {
	Project(lon, lat float64) (x, y float64, ok bool)
}

type Options struct {
	Width, Height int
	Padding       float64
	Background    string
	Stroke        string
	Title         string
}

// Rect is the drawable area inside the padding.
func (o Options) Rect() scale.DrawableRect {
	return scale.DrawableRect{
		Left:   o.Padding,
		Top:    o.Padding,
		Right:  float64(o.Width) - o.Padding,
		Bottom: float64(o.Height) - o.Padding,
	}
}

// errWriter keeps the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return len(p), nil
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, nil
}

// SVG writes the outline and the visible elements.
func SVG(w io.Writer, opts Options, proj Projector, outline orb.Geometry, elems []bubblemap.Element) error {
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(opts.Width, opts.Height)
	if opts.Title != "" {
		canvas.Title(opts.Title)
	}
	if opts.Background != "" {
		canvas.Rect(0, 0, opts.Width, opts.Height, attr("fill", opts.Background))
	}

	stroke := opts.Stroke
	if stroke == "" {
		stroke = "#9ca3af"
	}
	d := geom.Flatten(outline)
	// longer steps wrap around the map edge
	maxJump := float64(max(opts.Width, opts.Height)) / 2
	canvas.Group(`class="outline"`, attr("fill", "none"), attr("stroke", stroke), `stroke-width="1"`)
	for _, line := range d.Lines {
		if p := pathData(proj, line, maxJump); p != "" {
			canvas.Path(p)
		}
	}
	for _, pt := range d.Points {
		if x, y, ok := proj.Project(pt[0], pt[1]); ok {
			canvas.Path(circlePath(x, y, 1.5), attr("fill", stroke))
		}
	}
	canvas.Gend()

	canvas.Group(`class="bubbles"`)
	for _, e := range elems {
		if e.Skip || e.Radius <= 0 {
			continue
		}
		canvas.Group(`class="bubble"`)
		canvas.Title(label(e))
		canvas.Path(circlePath(e.X, e.Y, e.Radius),
			attr("fill", e.Color), `fill-opacity="0.6"`,
			attr("stroke", darken(e.Color)), `stroke-width="1"`)
		canvas.Gend()
	}
	canvas.Gend()
	canvas.End()
	if ew.err != nil {
		return fmt.Errorf("render svg: %w", ew.err)
	}
	return nil
}

func attr(name, value string) string {
	return name + `="` + strings.ReplaceAll(value, `"`, "&quot;") + `"`
}

func label(e bubblemap.Element) string {
	v := "n/a"
	if !math.IsNaN(e.Value) {
		v = strconv.FormatFloat(e.Value, 'g', -1, 64)
	}
	if e.Label == "" {
		return v
	}
	return e.Label + ": " + v
}

func darken(hex string) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	h, s, l := c.Hsl()
	return colorful.Hsl(h, s, l*0.7).Clamped().Hex()
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func circlePath(x, y, r float64) string {
	return fmt.Sprintf("M%s %sa%s %s 0 1 0 %s 0a%s %s 0 1 0 %s 0Z",
		num(x-r), num(y), num(r), num(r), num(2*r), num(r), num(r), num(-2*r))
}

// pathData follows each segment along its great circle. Points the
// projection cannot show break the path, and so do steps of maxJump or
// more, which are wraps across the map edge.
func pathData(proj Projector, line orb.LineString, maxJump float64) string {
	var b strings.Builder
	pen := false
	var px, py float64
	for _, p := range geoproj.Densify(line) {
		x, y, ok := proj.Project(p[0], p[1])
		if !ok {
			pen = false
			continue
		}
		if pen && (math.Abs(x-px) >= maxJump || math.Abs(y-py) >= maxJump) {
			pen = false
		}
		px, py = x, y
		if pen {
			b.WriteString("L")
		} else {
			b.WriteString("M")
			pen = true
		}
		b.WriteString(num(x) + " " + num(y))
	}
	return b.String()
}
