package scale

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var wideRef = ReferenceBounds{Width: 1000, Height: 500, AspectRatio: 2, RefScale: 2000, RefX: 480, RefY: 260}

func TestUpdateBoundsLetterbox(t *testing.T) {
	var last LastDrawableRect
	st, changed := UpdateBounds(wideRef, DrawableRect{Right: 400, Bottom: 300}, &last)
	assert.True(t, changed)
	assert.InDelta(t, 0.4, st.Factor, 1e-12)
	assert.InDelta(t, 0.0, st.OffsetX, 1e-12)
	assert.InDelta(t, 50.0, st.OffsetY, 1e-12)
	assert.InDelta(t, 800.0, st.Scale, 1e-9)
	assert.InDelta(t, 0.4*480, st.Translate[0], 1e-9)
	assert.InDelta(t, 0.4*260+50, st.Translate[1], 1e-9)
}

func TestUpdateBoundsPreservesAspect(t *testing.T) {
	rects := []DrawableRect{
		{Right: 400, Bottom: 300},
		{Right: 300, Bottom: 800},
		{Left: 10, Top: 20, Right: 1930, Bottom: 1100},
		{Right: 1, Bottom: 1},
	}
	for _, r := range rects {
		st, _ := UpdateBounds(wideRef, r, nil)
		vw := wideRef.Width * st.Factor
		vh := wideRef.Height * st.Factor
		assert.InDelta(t, wideRef.AspectRatio, vw/vh, 1e-9)
		assert.LessOrEqual(t, vw, r.Width()+1e-9)
		assert.LessOrEqual(t, vh, r.Height()+1e-9)
		// one axis binds
		assert.True(t, st.OffsetX < 1e-9 || st.OffsetY < 1e-9, "%+v", st)
		assert.InDelta(t, r.Width(), vw+2*st.OffsetX, 1e-9)
		assert.InDelta(t, r.Height(), vh+2*st.OffsetY, 1e-9)
	}
}

func TestUpdateBoundsAddsRectOrigin(t *testing.T) {
	at0, _ := UpdateBounds(wideRef, DrawableRect{Right: 400, Bottom: 300}, nil)
	moved, _ := UpdateBounds(wideRef, DrawableRect{Left: 100, Top: 40, Right: 500, Bottom: 340}, nil)
	assert.Equal(t, at0.Scale, moved.Scale)
	assert.InDelta(t, at0.Translate[0]+100, moved.Translate[0], 1e-9)
	assert.InDelta(t, at0.Translate[1]+40, moved.Translate[1], 1e-9)
}

func TestUpdateBoundsChangedFlag(t *testing.T) {
	var last LastDrawableRect
	r := DrawableRect{Right: 400, Bottom: 300}

	first, changed := UpdateBounds(wideRef, r, &last)
	assert.True(t, changed)

	again, changed := UpdateBounds(wideRef, r, &last)
	assert.False(t, changed)
	assert.Equal(t, first, again)

	_, changed = UpdateBounds(wideRef, DrawableRect{Right: 500, Bottom: 300}, &last)
	assert.True(t, changed, "width-only change")

	_, changed = UpdateBounds(wideRef, DrawableRect{Left: 7, Right: 507, Bottom: 300}, &last)
	assert.False(t, changed, "moved, same size")
}
