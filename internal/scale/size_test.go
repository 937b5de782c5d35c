package scale

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSizeScaleArea(t *testing.T) {
	s := NewSizeScale(DefaultSizeOptions())
	s.Fit([]float64{0, math.NaN(), 100, 50})

	min, max, ok := s.Domain()
	assert.True(t, ok)
	assert.Equal(t, 0.0, min)
	assert.Equal(t, 100.0, max)

	assert.InDelta(t, 2, s.SizeForValue(0), 1e-12)
	assert.InDelta(t, 20, s.SizeForValue(100), 1e-12)
	assert.InDelta(t, math.Sqrt(202), s.SizeForValue(50), 1e-12)
	assert.InDelta(t, 20, s.SizeForValue(1000), 1e-12)
	assert.Equal(t, 1.0, s.SizeForValue(math.NaN()))
}

func TestSizeScaleRadius(t *testing.T) {
	s := NewSizeScale(SizeOptions{Range: [2]float64{0, 10}, Mode: ModeRadius, Missing: 0.5})
	s.Fit([]float64{10, 20})
	assert.InDelta(t, 5, s.SizeForValue(15), 1e-12)
	assert.Equal(t, 0.5, s.SizeForValue(math.NaN()))
}

func TestSizeScaleFlatDomain(t *testing.T) {
	s := NewSizeScale(DefaultSizeOptions())
	s.Fit([]float64{7, 7})
	assert.Equal(t, 20.0, s.SizeForValue(7))

	s.Fit([]float64{math.NaN(), math.Inf(1)})
	_, _, ok := s.Domain()
	assert.False(t, ok)
	assert.Equal(t, 20.0, s.SizeForValue(3))
}

func TestSizeOptionsValidate(t *testing.T) {
	assert.NoError(t, DefaultSizeOptions().Validate())
	assert.Error(t, SizeOptions{Range: [2]float64{5, 1}, Mode: ModeArea}.Validate())
	assert.Error(t, SizeOptions{Range: [2]float64{1, 5}, Mode: "log"}.Validate())
	assert.Error(t, SizeOptions{Range: [2]float64{1, 5}, Mode: ModeArea, Missing: -1}.Validate())
}
