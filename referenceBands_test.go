package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bandArea = plotArea{left: 210, top: 100, width: 500, height: 100}

func TestLayoutBandsSingleLineLabel(t *testing.T) {
	bands := []ReferenceBand{{Name: "Good", Value: 20, Color: "#879A39", Enabled: true}}
	layout := LayoutBands(bands, testScale(t), bandArea, 160, estimatedMeasurer{})

	require.Len(t, layout.Labels, 1)
	label := layout.Labels[0]
	assert.Equal(t, []string{"Good (20)"}, label.Lines)
	assert.InDelta(t, 180, label.Y, 1e-9)
	assert.InDelta(t, 95.2, label.Box.X, 1e-9)
	assert.InDelta(t, 167, label.Box.Y, 1e-9)
	assert.InDelta(t, 74.8, label.Box.W, 1e-9)
	assert.InDelta(t, 26, label.Box.H, 1e-9)
	assert.InDelta(t, 100.2, label.TextX, 1e-9)
	assert.InDeltaSlice(t, []float64{180}, label.LineYs, 1e-9)
	assert.Equal(t, "#879A39", label.Color)
}

func TestLayoutBandsWrapsLongLabels(t *testing.T) {
	bands := []ReferenceBand{{Name: "Unhealthy for Sensitive Groups", Value: 60000, Enabled: true}}
	s, err := NewScale(100000, 100, ScaleLinear)
	require.NoError(t, err)

	layout := LayoutBands(bands, s, bandArea, 160, estimatedMeasurer{})
	require.Len(t, layout.Labels, 1)
	label := layout.Labels[0]

	assert.Equal(t, []string{"Unhealthy for", "Sensitive Groups", "(60,000)"}, label.Lines)
	assert.InDelta(t, 3*16+10, label.Box.H, 1e-9)
	assert.LessOrEqual(t, label.Box.W, 160.0)
	assert.InDelta(t, label.Y, label.Box.Y+label.Box.H/2, 1e-9, "box is centred on the line")
	require.Len(t, label.LineYs, 3)
	assert.InDelta(t, 16, label.LineYs[1]-label.LineYs[0], 1e-9)
	assert.Equal(t, colors.purple, label.Color)
}

func TestLayoutBandsKeepsInputOrder(t *testing.T) {
	bands := []ReferenceBand{
		{Name: "High", Value: 80, Enabled: true},
		{Name: "Low", Value: 10, Enabled: true},
		{Name: "Mid", Value: 40, Enabled: true},
	}
	layout := LayoutBands(bands, testScale(t), bandArea, 160, estimatedMeasurer{})

	require.Len(t, layout.Labels, 3)
	for i, label := range layout.Labels {
		assert.Equal(t, bands[i].Name, label.Band.Name)
	}
}

func TestMinimumLabelSpacing(t *testing.T) {
	s := testScale(t)
	assert.Equal(t, minBandSpacing, minimumLabelSpacing(nil, s))
	assert.Equal(t, minBandSpacing, minimumLabelSpacing([]ReferenceBand{{Value: 10}, {Value: 20}}, s))
	// 10 -> 90 is 80px apart, giving 48; unsorted input is sorted first.
	assert.InDelta(t, 48, minimumLabelSpacing([]ReferenceBand{{Value: 90}, {Value: 10}}, s), 1e-9)
}

func TestBandsCommands(t *testing.T) {
	bands := []ReferenceBand{{Name: "Good", Value: 20, Color: "#879A39", Enabled: true}}
	layout := LayoutBands(bands, testScale(t), bandArea, 160, estimatedMeasurer{})

	cmds := layout.commands(bandArea)
	require.Len(t, cmds, 3)

	line, ok := cmds[0].(LineCmd)
	require.True(t, ok)
	assert.Equal(t, []float64{5, 3}, line.Dash)
	assert.Equal(t, 210.0, line.X1)
	assert.Equal(t, 710.0, line.X2)

	box, ok := cmds[1].(RoundRectCmd)
	require.True(t, ok)
	require.NotNil(t, box.Stroke)
	assert.InDelta(t, 0x40/255.0, box.Fill.Opacity, 1e-9)
	assert.InDelta(t, 0x90/255.0, box.Stroke.Opacity, 1e-9)

	text, ok := cmds[2].(TextCmd)
	require.True(t, ok)
	assert.Equal(t, "Good (20)", text.Content)
	assert.Equal(t, BaselineMiddle, text.Baseline)
}
