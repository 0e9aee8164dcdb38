package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testArea is a 100x100 plot whose baseline sits at y=200.
var testArea = plotArea{left: 0, top: 100, width: 100, height: 100}

func testScale(t *testing.T) Scale {
	t.Helper()
	s, err := NewScale(100, 100, ScaleLinear)
	require.NoError(t, err)
	return s
}

func TestBarGeometryShortBarIsPlainRect(t *testing.T) {
	bar := BarRecord{Label: "tiny", RangeStart: 10, RangeEnd: 16, Magnitude: 6, Kind: KindExposure}
	g := BuildBarGeometry(bar, 0, 70, 15, testScale(t), testArea, 0)

	assert.InDelta(t, 6, g.H, 1e-9)
	assert.Equal(t, barCornerRadius, g.CornerRadius)
	assert.False(t, g.Rounded)

	cmds := g.commands()
	require.Len(t, cmds, 2)
	assert.IsType(t, RectCmd{}, cmds[0])
}

func TestBarGeometryTallBarIsRounded(t *testing.T) {
	bar := BarRecord{Label: "tall", RangeStart: 10, RangeEnd: 19, Magnitude: 9, Kind: KindIntervention}
	g := BuildBarGeometry(bar, 0, 70, 15, testScale(t), testArea, 0)

	assert.True(t, g.Rounded)
	cmds := g.commands()
	rr, ok := cmds[0].(RoundRectCmd)
	require.True(t, ok, "want RoundRectCmd, got %T", cmds[0])
	assert.Equal(t, barCornerRadius, rr.Radius)
	assert.Equal(t, colors.green, rr.Fill.Color)
}

func TestBarGeometryShortTotalIsPlainRect(t *testing.T) {
	bar := BarRecord{Label: "Final Total", RangeEnd: 8, Magnitude: 8, Kind: KindTotal}
	g := BuildBarGeometry(bar, 0, 70, 15, testScale(t), testArea, 0)

	assert.InDelta(t, 8, g.H, 1e-9)
	assert.False(t, g.Rounded)
}

func TestBarGeometryPlacement(t *testing.T) {
	bar := BarRecord{Label: "Activity", RangeStart: 15, RangeEnd: 25, Magnitude: 10, Kind: KindExposure}
	g := BuildBarGeometry(bar, 2, 70, 15, testScale(t), testArea, 1)

	assert.InDelta(t, 15+2*100, g.X, 1e-9)
	assert.InDelta(t, 175, g.Y, 1e-9)
	assert.InDelta(t, 70, g.W, 1e-9)
	assert.InDelta(t, 10, g.H, 1e-9)
	assert.Equal(t, colors.red, g.Color)
	assert.Equal(t, "10.0", g.ValueLabel)
	assert.InDelta(t, g.X+35, g.LabelX, 1e-9)
	assert.InDelta(t, 170, g.LabelY, 1e-9)
}

func TestBarGeometryTotalsAnchorToBaseline(t *testing.T) {
	s := testScale(t)

	positive := BuildBarGeometry(BarRecord{RangeStart: 40, RangeEnd: 30, Magnitude: 30, Kind: KindTotal}, 0, 70, 15, s, testArea, 0)
	assert.InDelta(t, 170, positive.Y, 1e-9)
	assert.InDelta(t, 30, positive.H, 1e-9)
	assert.Equal(t, colors.neutral, positive.Color)

	negative := BuildBarGeometry(BarRecord{RangeEnd: -20, Magnitude: -20, Kind: KindTotal}, 0, 70, 15, s, testArea, 0)
	assert.InDelta(t, 200, negative.Y, 1e-9, "negative totals hang from the baseline")
	assert.InDelta(t, 20, negative.H, 1e-9)
	assert.Equal(t, "-20", negative.ValueLabel)
}

func TestBarSlots(t *testing.T) {
	width, spacing := barSlots(5, 750)
	assert.InDelta(t, 105, width, 1e-9)
	assert.InDelta(t, 22.5, spacing, 1e-9)

	width, spacing = barSlots(0, 750)
	assert.Zero(t, width)
	assert.Zero(t, spacing)
}
