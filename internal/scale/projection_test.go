package scale

import (
	"bytes"
	"testing"

	"github.com/paulmach/orb"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bubblemap/internal/geoproj"
)

func newEquirect(t *testing.T) *ProjectionScale {
	t.Helper()
	s := New(NewRegistry(), WithProjection(Name("equirectangular")))
	require.NoError(t, s.SetGeometry(orb.MultiPoint{{0, 0}, {20, 10}}))
	return s
}

func TestProjectionScaleLifecycle(t *testing.T) {
	s := New(NewRegistry(), WithProjection(Name("equirectangular")))
	assert.Equal(t, Unconfigured, s.Phase())
	assert.Equal(t, ID, "projection")

	assert.False(t, s.OnLayout(DrawableRect{Right: 400, Bottom: 300}))
	_, _, ok := s.Project(0, 0)
	assert.False(t, ok)

	require.NoError(t, s.SetGeometry(orb.MultiPoint{{0, 0}, {20, 10}}))
	assert.Equal(t, Fitted, s.Phase())
	_, ok = s.State()
	assert.False(t, ok)
	_, _, ok = s.Project(0, 0)
	assert.False(t, ok)

	assert.True(t, s.OnLayout(DrawableRect{Right: 400, Bottom: 300}))
	assert.Equal(t, Adapted, s.Phase())

	st, ok := s.State()
	require.True(t, ok)
	assert.InDelta(t, 0.4, st.Factor, 1e-12)
	assert.InDelta(t, 50, st.OffsetY, 1e-9)

	x, y, ok := s.Project(0, 0)
	require.True(t, ok)
	assert.InDelta(t, 0, x, 1e-9)
	assert.InDelta(t, 250, y, 1e-9)

	x, y, ok = s.Project(20, 10)
	require.True(t, ok)
	assert.InDelta(t, 400, x, 1e-9)
	assert.InDelta(t, 50, y, 1e-9)

	lon, lat, ok := s.Invert(200, 150)
	require.True(t, ok)
	assert.InDelta(t, 10, lon, 1e-9)
	assert.InDelta(t, 5, lat, 1e-9)
}

func TestProjectionScaleIdempotentLayout(t *testing.T) {
	s := newEquirect(t)
	r := DrawableRect{Left: 5, Top: 5, Right: 305, Bottom: 205}
	assert.True(t, s.OnLayout(r))
	x1, y1, _ := s.Project(7, 3)
	assert.False(t, s.OnLayout(r))
	x2, y2, _ := s.Project(7, 3)
	assert.Equal(t, x1, x2)
	assert.Equal(t, y1, y2)

	assert.True(t, s.OnLayout(DrawableRect{Left: 5, Top: 5, Right: 405, Bottom: 205}))
}

func TestProjectionScaleMovedRectShiftsPixels(t *testing.T) {
	s := newEquirect(t)
	s.OnLayout(DrawableRect{Right: 400, Bottom: 300})
	x0, y0, _ := s.Project(7, 3)

	assert.False(t, s.OnLayout(DrawableRect{Left: 30, Top: -10, Right: 430, Bottom: 290}))
	x1, y1, _ := s.Project(7, 3)
	assert.InDelta(t, x0+30, x1, 1e-9)
	assert.InDelta(t, y0-10, y1, 1e-9)
}

func TestProjectionScaleInscribesOutline(t *testing.T) {
	outline := square(-10, 35, 30, 60)
	for _, name := range []string{"mercator", "albers", "conicConformal", "equalEarth", "orthographic", "naturalEarth1"} {
		s := New(NewRegistry(), WithProjection(Name(name)))
		require.NoError(t, s.SetGeometry(outline), name)
		for _, r := range []DrawableRect{{Right: 800, Bottom: 200}, {Left: 50, Top: 50, Right: 250, Bottom: 650}} {
			s.OnLayout(r)
			st, _ := s.State()
			b, ok := geoproj.Bounds(liveProjection(s), outline)
			require.True(t, ok)
			// ceil rounding of the reference frame leaves at most a pixel of slack per side
			slack := st.Factor + 1e-6
			assert.GreaterOrEqual(t, b.Min[0], r.Left-1e-6, name)
			assert.GreaterOrEqual(t, b.Min[1], r.Top-1e-6, name)
			assert.LessOrEqual(t, b.Max[0], r.Right+1e-6, name)
			assert.LessOrEqual(t, b.Max[1], r.Bottom+1e-6, name)
			assert.InDelta(t, r.Left+st.OffsetX, b.Min[0], slack, name)
			assert.InDelta(t, r.Top+st.OffsetY, b.Min[1], slack, name)
			assert.InDelta(t, st.OffsetX, r.Right-b.Max[0], slack, name)
			assert.InDelta(t, st.OffsetY, r.Bottom-b.Max[1], slack, name)
		}
	}
}

func liveProjection(s *ProjectionScale) geoproj.Projection { return s.live }

func TestProjectionScaleOrthographicAntipode(t *testing.T) {
	s := New(NewRegistry(), WithProjection(Name("orthographic")))
	require.NoError(t, s.SetGeometry(square(-10, -10, 10, 10)))
	s.OnLayout(DrawableRect{Right: 500, Bottom: 500})

	_, _, ok := s.Project(0, 0)
	assert.True(t, ok)
	_, _, ok = s.Project(180, 0)
	assert.False(t, ok)
}

func TestProjectionScaleSetProjectionInvalidates(t *testing.T) {
	s := newEquirect(t)
	s.OnLayout(DrawableRect{Right: 400, Bottom: 300})
	require.Equal(t, Adapted, s.Phase())

	s.SetProjection(Name("mercator"))
	assert.Equal(t, Unconfigured, s.Phase())
	_, ok := s.Bounds()
	assert.False(t, ok)
	_, _, ok = s.Project(0, 0)
	assert.False(t, ok)
	assert.False(t, s.OnLayout(DrawableRect{Right: 400, Bottom: 300}))
}

func TestProjectionScaleRejectsDegenerate(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)

	s := New(NewRegistry(), WithLogger(log), WithProjection(Name("mercator")))
	err := s.SetGeometry(orb.Point{1, 2})
	assert.ErrorIs(t, err, ErrDegenerateGeometry)
	assert.Equal(t, Unconfigured, s.Phase())
	assert.Contains(t, buf.String(), "outline rejected")
}

func TestProjectionScaleUnknownName(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetLevel(logrus.DebugLevel)

	s := New(NewRegistry(), WithLogger(log), WithProjection(Name("nope")))
	assert.Contains(t, buf.String(), "unknown projection")
	assert.IsType(t, &geoproj.AlbersUSA{}, s.proj)
}

func TestProjectionScaleCustom(t *testing.T) {
	p := geoproj.Stereographic()
	s := New(NewRegistry(), WithProjection(Custom(p)))
	require.NoError(t, s.SetGeometry(square(0, 0, 10, 10)))
	s.OnLayout(DrawableRect{Right: 100, Bottom: 100})

	// the caller's instance is never adapted in place
	assert.Equal(t, 250.0, p.Scale())
	assert.Equal(t, [2]float64{480, 250}, p.Translate())
}

func TestProjectionScaleZeroRegistry(t *testing.T) {
	s := New(&Registry{})
	require.NoError(t, s.SetGeometry(square(-100, 30, -80, 45)))
	assert.True(t, s.OnLayout(DrawableRect{Right: 400, Bottom: 300}))
	_, _, ok := s.Project(-90, 38)
	assert.True(t, ok)
}

func TestProjectionScaleIgnoresEmptyRect(t *testing.T) {
	s := newEquirect(t)
	assert.False(t, s.OnLayout(DrawableRect{Left: 400, Top: 300}))
	assert.Equal(t, Fitted, s.Phase())

	r := DrawableRect{Right: 400, Bottom: 300}
	require.True(t, s.OnLayout(r))
	before, _ := s.State()
	assert.False(t, s.OnLayout(DrawableRect{Left: 400, Top: 300}))
	assert.False(t, s.OnLayout(DrawableRect{Right: 400}))
	after, _ := s.State()
	assert.Equal(t, before, after)

	x, y, ok := s.Project(20, 10)
	require.True(t, ok)
	assert.InDelta(t, 400, x, 1e-9)
	assert.InDelta(t, 50, y, 1e-9)
	assert.False(t, s.OnLayout(r), "size unchanged since the last accepted layout")
}
