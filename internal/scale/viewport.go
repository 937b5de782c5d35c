package scale

import "math"

// DrawableRect is the pixel area available to the map.
type DrawableRect struct {
	Left, Top, Right, Bottom float64
}

func (r DrawableRect) Width() float64  { return r.Right - r.Left }
func (r DrawableRect) Height() float64 { return r.Bottom - r.Top }

// ProjectionState is the scale and translate that place the reference
// bounds inside a drawable rectangle.
type ProjectionState struct {
	Scale     float64
	Translate [2]float64

	// Factor is the uniform scale applied to the reference frame and
	// OffsetX, OffsetY the centring margins inside the rectangle.
	Factor           float64
	OffsetX, OffsetY float64
}

// LastDrawableRect remembers the size of the previous layout. The zero
// value means no layout has happened yet.
type LastDrawableRect struct {
	Width, Height float64
	valid         bool
}

// UpdateBounds letterboxes ref into rect: one uniform factor, whichever
// dimension binds, with the slack split evenly on the other axis. The
// returned bool reports whether the rectangle size differs from the one
// cached in last, which is updated.
func UpdateBounds(ref ReferenceBounds, rect DrawableRect, last *LastDrawableRect) (ProjectionState, bool) {
	chartWidth := rect.Width()
	chartHeight := rect.Height()

	changed := true
	if last != nil {
		changed = !last.valid || last.Width != chartWidth || last.Height != chartHeight
		*last = LastDrawableRect{Width: chartWidth, Height: chartHeight, valid: true}
	}

	s := math.Min(chartWidth/ref.Width, chartHeight/ref.Height)
	viewWidth := ref.Width * s
	viewHeight := ref.Height * s

	x := (chartWidth - viewWidth) * 0.5
	y := (chartHeight - viewHeight) * 0.5

	return ProjectionState{
		Scale:     ref.RefScale * s,
		Translate: [2]float64{s*ref.RefX + x + rect.Left, s*ref.RefY + y + rect.Top},
		Factor:    s,
		OffsetX:   x,
		OffsetY:   y,
	}, changed
}
