package scale

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

type SizeMode string

const (
	ModeArea   SizeMode = "area"
	ModeRadius SizeMode = "radius"
)

// SizeOptions configures how values become bubble radii.
type SizeOptions struct {
	Range   [2]float64 // radius range in pixels
	Mode    SizeMode
	Missing float64 // radius for missing values
}

func DefaultSizeOptions() SizeOptions {
	return SizeOptions{Range: [2]float64{2, 20}, Mode: ModeArea, Missing: 1}
}

func (o SizeOptions) Validate() error {
	if o.Range[0] < 0 || o.Range[1] < o.Range[0] {
		return fmt.Errorf("scale: invalid radius range %v", o.Range)
	}
	switch o.Mode {
	case ModeArea, ModeRadius:
	default:
		return fmt.Errorf("scale: unknown size mode %q", o.Mode)
	}
	if o.Missing < 0 || math.IsNaN(o.Missing) {
		return fmt.Errorf("scale: invalid missing radius %v", o.Missing)
	}
	return nil
}

// SizeScale maps data values to bubble radii over a fitted domain.
type SizeScale struct {
	opts     SizeOptions
	min, max float64
	fitted   bool
}

func NewSizeScale(opts SizeOptions) *SizeScale {
	if opts.Mode == "" {
		opts.Mode = ModeArea
	}
	return &SizeScale{opts: opts}
}

func (s *SizeScale) Options() SizeOptions { return s.opts }

// Fit sets the domain to the extent of the finite values. Missing values
// are ignored; with none left the scale is unfitted.
func (s *SizeScale) Fit(values []float64) {
	finite := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			finite = append(finite, v)
		}
	}
	if len(finite) == 0 {
		s.min, s.max, s.fitted = 0, 0, false
		return
	}
	s.min = floats.Min(finite)
	s.max = floats.Max(finite)
	s.fitted = true
}

func (s *SizeScale) Domain() (min, max float64, ok bool) {
	return s.min, s.max, s.fitted
}

// Normalize maps v into [0, 1] over the domain. Missing values give NaN;
// a zero-width or unfitted domain gives 1.
func (s *SizeScale) Normalize(v float64) float64 {
	if math.IsNaN(v) {
		return math.NaN()
	}
	if !s.fitted || s.max == s.min {
		return 1
	}
	t := (v - s.min) / (s.max - s.min)
	return math.Max(0, math.Min(1, t))
}

func (s *SizeScale) SizeForValue(v float64) float64 {
	t := s.Normalize(v)
	if math.IsNaN(t) {
		return s.opts.Missing
	}
	r0, r1 := s.opts.Range[0], s.opts.Range[1]
	if s.opts.Mode == ModeRadius {
		return r0 + t*(r1-r0)
	}
	a0, a1 := r0*r0, r1*r1
	return math.Sqrt(a0 + t*(a1-a0))
}
