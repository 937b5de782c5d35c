package scale

import (
	"errors"
	"fmt"
	"math"

	"github.com/paulmach/orb"

	"bubblemap/internal/geoproj"
)

// ErrDegenerateGeometry is returned for outlines with no projectable
// vertex or with zero projected width or height.
var ErrDegenerateGeometry = errors.New("scale: degenerate outline geometry")

const (
	referenceWidth = 1000

	// snapTolerance keeps float noise on an exact edge from snapping up a
	// whole pixel.
	snapTolerance = 1e-6
)

// ReferenceBounds is an outline fitted to the 1000-unit reference width,
// together with the projection parameters that achieve the fit.
type ReferenceBounds struct {
	Width, Height float64
	AspectRatio   float64
	RefScale      float64
	RefX, RefY    float64
}

// ComputeBounds fits p to g at the reference width and records the
// resulting bounding box and projection parameters. p is mutated.
func ComputeBounds(p geoproj.Projection, g orb.Geometry) (ReferenceBounds, error) {
	if g == nil {
		return ReferenceBounds{}, fmt.Errorf("%w: no geometry", ErrDegenerateGeometry)
	}
	if err := geoproj.FitWidth(p, referenceWidth, g); err != nil {
		return ReferenceBounds{}, fmt.Errorf("%w: %v", ErrDegenerateGeometry, err)
	}
	bb, ok := geoproj.Bounds(p, g)
	if !ok {
		return ReferenceBounds{}, fmt.Errorf("%w: nothing projectable", ErrDegenerateGeometry)
	}
	w := snapCeil(bb.Max[0] - bb.Min[0])
	h := snapCeil(bb.Max[1] - bb.Min[1])
	if !(w > 0 && h > 0) {
		return ReferenceBounds{}, fmt.Errorf("%w: extent %gx%g", ErrDegenerateGeometry, w, h)
	}
	t := p.Translate()
	return ReferenceBounds{
		Width:       w,
		Height:      h,
		AspectRatio: w / h,
		RefScale:    p.Scale(),
		RefX:        t[0],
		RefY:        t[1],
	}, nil
}

func snapCeil(v float64) float64 {
	return math.Ceil(v - snapTolerance)
}
