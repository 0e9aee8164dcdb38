package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScaleRejectsDegenerateDomain(t *testing.T) {
	for _, domainMax := range []float64{0, -3, math.NaN(), math.Inf(1)} {
		_, err := NewScale(domainMax, 100, ScaleLinear)
		assert.ErrorIs(t, err, ErrDegenerateDomain, "domain max %v", domainMax)
	}
}

func TestScaleToPixels(t *testing.T) {
	linear, err := NewScale(200, 100, ScaleLinear)
	require.NoError(t, err)
	assert.InDelta(t, 25, linear.ToPixels(50), 1e-9)
	assert.InDelta(t, 100, linear.ToPixels(200), 1e-9)
	assert.InDelta(t, 0, linear.ToPixels(0), 1e-9)
	assert.Less(t, linear.ToPixels(-10), 0.0)

	log, err := NewScale(99, 100, ScaleLog)
	require.NoError(t, err)
	assert.InDelta(t, 50, log.ToPixels(9), 1e-9)
	assert.InDelta(t, 100, log.ToPixels(99), 1e-9)
	assert.Equal(t, 0.0, log.ToPixels(0))
	assert.Equal(t, 0.0, log.ToPixels(-5))
}

func TestScaleMonotonic(t *testing.T) {
	values := []float64{0.001, 0.01, 0.5, 1, 4.8, 24, 48, 240, 1200, 12000, 60000, 1.32e6}
	for _, mode := range []ScaleMode{ScaleLinear, ScaleLog} {
		t.Run(mode.String(), func(t *testing.T) {
			s, err := NewScale(1.32e6, 270, mode)
			require.NoError(t, err)
			for i := 1; i < len(values); i++ {
				assert.Less(t, s.ToPixels(values[i-1]), s.ToPixels(values[i]),
					"toPixels(%v) should be below toPixels(%v)", values[i-1], values[i])
			}
		})
	}
}

func TestScaleTicks(t *testing.T) {
	linear, err := NewScale(60, 100, ScaleLinear)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 10, 20, 30, 40, 50, 60}, linear.Ticks(DefaultTickCount(ScaleLinear)), 1e-9)

	log, err := NewScale(1000, 100, ScaleLog)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 10, 100, 1000}, log.Ticks(3), 1e-9)
	assert.Len(t, log.Ticks(0), DefaultTickCount(ScaleLog)+1)
}

func TestFlatScale(t *testing.T) {
	flat := flatScale(270, ScaleLinear)
	assert.True(t, flat.Flat())
	assert.Equal(t, 0.0, flat.ToPixels(123))
	assert.Equal(t, make([]float64, 7), flat.Ticks(6))

	flatLog := flatScale(270, ScaleLog)
	assert.Equal(t, 0.0, flatLog.ToPixels(123))
	assert.Nil(t, flatLog.Ticks(5))
}
