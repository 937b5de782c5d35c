// Package scale turns a geographic outline and a pixel rectangle into a
// configured map projection.
//
// A ProjectionScale moves through three phases. It starts Unconfigured,
// becomes Fitted once an outline has been measured at the reference
// width, and Adapted after the first layout has placed that reference
// frame inside a drawable rectangle. Every later layout recomputes the
// projection from the cached reference bounds, so the same rectangle
// always yields the same pixel coordinates.
package scale

import (
	"io"

	"github.com/paulmach/orb"
	"github.com/sirupsen/logrus"

	"bubblemap/internal/geoproj"
)

// ID is the axis identifier hosts use for the projection scale.
const ID = "projection"

type Phase int

const (
	Unconfigured Phase = iota
	Fitted
	Adapted
)

func (p Phase) String() string {
	switch p {
	case Fitted:
		return "fitted"
	case Adapted:
		return "adapted"
	default:
		return "unconfigured"
	}
}

// ProjectionScale owns the active projection and the state derived from
// the outline and the current layout. It is not safe for concurrent use.
type ProjectionScale struct {
	reg *Registry
	log logrus.FieldLogger

	source Source
	proj   geoproj.Projection // template, never adapted in place

	bounds ReferenceBounds
	last   LastDrawableRect
	state  ProjectionState
	live   geoproj.Projection
	phase  Phase
}

type Option func(*ProjectionScale)

func WithLogger(l logrus.FieldLogger) Option {
	return func(s *ProjectionScale) { s.log = l }
}

func WithProjection(src Source) Option {
	return func(s *ProjectionScale) { s.source = src }
}

// New builds a scale bound to reg. Without WithProjection the default
// projection is used.
func New(reg *Registry, opts ...Option) *ProjectionScale {
	if reg == nil {
		reg = NewRegistry()
	}
	s := &ProjectionScale{reg: reg, source: Name(DefaultProjection)}
	for _, o := range opts {
		o(s)
	}
	if s.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		s.log = l
	}
	s.SetProjection(s.source)
	return s
}

// SetProjection replaces the active projection. Reference bounds and
// layout state are dropped until the next SetGeometry.
func (s *ProjectionScale) SetProjection(src Source) {
	if n, ok := src.(Name); ok {
		if _, known := s.reg.Lookup(string(n)); !known {
			s.log.WithField("name", string(n)).Debug("unknown projection, using default")
		}
	}
	s.source = src
	s.proj = s.reg.Resolve(src)
	s.bounds = ReferenceBounds{}
	s.last = LastDrawableRect{}
	s.state = ProjectionState{}
	s.live = nil
	s.phase = Unconfigured
}

// Source reports the selector last passed to SetProjection.
func (s *ProjectionScale) Source() Source { return s.source }

// SetGeometry measures g at the reference width. On error the scale is
// left Unconfigured.
func (s *ProjectionScale) SetGeometry(g orb.Geometry) error {
	s.last = LastDrawableRect{}
	s.state = ProjectionState{}
	s.live = nil
	s.phase = Unconfigured

	rb, err := ComputeBounds(s.proj.Clone(), g)
	if err != nil {
		s.log.WithError(err).Warn("outline rejected")
		return err
	}
	s.bounds = rb
	s.phase = Fitted
	s.log.WithFields(logrus.Fields{
		"width":  rb.Width,
		"height": rb.Height,
		"aspect": rb.AspectRatio,
		"scale":  rb.RefScale,
	}).Debug("reference bounds computed")
	return nil
}

// OnLayout places the reference frame inside rect and reports whether
// the rectangle size changed since the previous layout. It does nothing
// before SetGeometry has succeeded, and an empty or inverted rect keeps
// the previous layout.
func (s *ProjectionScale) OnLayout(rect DrawableRect) bool {
	if s.phase == Unconfigured {
		return false
	}
	if !(rect.Width() > 0) || !(rect.Height() > 0) {
		s.log.WithFields(logrus.Fields{"width": rect.Width(), "height": rect.Height()}).Debug("empty layout ignored")
		return false
	}
	state, changed := UpdateBounds(s.bounds, rect, &s.last)
	if s.phase == Adapted && state == s.state {
		return changed
	}

	live := s.proj.Clone()
	live.SetScale(state.Scale)
	live.SetTranslate(state.Translate)

	s.state = state
	s.live = live
	s.phase = Adapted
	if changed {
		s.log.WithFields(logrus.Fields{
			"width":  rect.Width(),
			"height": rect.Height(),
			"scale":  state.Scale,
			"factor": state.Factor,
		}).Debug("projection adapted")
	}
	return changed
}

// Project maps lon/lat degrees to pixels. ok is false for points the
// projection cannot show and before the first layout.
func (s *ProjectionScale) Project(lon, lat float64) (x, y float64, ok bool) {
	if s.live == nil {
		return 0, 0, false
	}
	return s.live.Project(lon, lat)
}

// Invert maps pixels back to lon/lat degrees.
func (s *ProjectionScale) Invert(x, y float64) (lon, lat float64, ok bool) {
	if s.live == nil {
		return 0, 0, false
	}
	return s.live.Invert(x, y)
}

func (s *ProjectionScale) Bounds() (ReferenceBounds, bool) {
	return s.bounds, s.phase != Unconfigured
}

func (s *ProjectionScale) State() (ProjectionState, bool) {
	return s.state, s.phase == Adapted
}

func (s *ProjectionScale) Phase() Phase { return s.phase }
