package main

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"go.uber.org/zap"
)

// Band label geometry, in logical pixels.
const (
	bandColumnInset   = 50.0 // label column width is marginLeft minus this
	bandLineHeight    = 16.0
	bandPadding       = 5.0
	bandBoxGap        = 40.0 // between the label box and the y axis
	bandBoxRadius     = 4.0
	bandFillOpacity   = float64(0x40) / 255
	bandStrokeOpacity = float64(0x90) / 255
	minBandSpacing    = 40.0
)

var (
	bandDash = []float64{5, 3}
	bandFont = FontSpec{Size: 12, Bold: true}
)

// BandLabel is the laid-out line, box and wrapped text of one enabled band.
type BandLabel struct {
	Band  ReferenceBand
	Color string
	Y     float64 // pixel y of the dashed line

	Lines  []string
	Box    Rect
	TextX  float64
	LineYs []float64 // middle of every text line
}

// BandsLayout holds one label per enabled band in input order.
// MinLabelSpacing is a soft budget derived from adjacent band separation; no
// block is moved because of it.
type BandsLayout struct {
	Labels          []BandLabel
	MinLabelSpacing float64
}

func bandColor(band ReferenceBand) string {
	if band.Color == "" {
		return colors.purple
	}
	return band.Color
}

func bandLabelText(band ReferenceBand) string {
	return fmt.Sprintf("%s (%s)", band.Name, formatBandValue(band.Value))
}

// minimumLabelSpacing walks the bands in value order and returns
// max(40, 0.6 * separation) over adjacent pairs.
func minimumLabelSpacing(enabled []ReferenceBand, scale Scale) float64 {
	sorted := slices.Clone(enabled)
	slices.SortStableFunc(sorted, func(a, b ReferenceBand) int { return cmp.Compare(a.Value, b.Value) })

	spacing := minBandSpacing
	for i := 0; i+1 < len(sorted); i++ {
		separation := math.Abs(scale.ToPixels(sorted[i+1].Value) - scale.ToPixels(sorted[i].Value))
		spacing = math.Max(spacing, separation*0.6)
	}
	return spacing
}

// LayoutBands positions the enabled bands. Each label is wrapped to fit
// columnWidth, boxed, and vertically centred on its line. Overlapping labels
// are left where they fall.
func LayoutBands(enabled []ReferenceBand, scale Scale, area plotArea, columnWidth float64, m TextMeasurer) BandsLayout {
	layout := BandsLayout{
		Labels:          make([]BandLabel, 0, len(enabled)),
		MinLabelSpacing: minimumLabelSpacing(enabled, scale),
	}
	logger.Debug("reference band spacing",
		zap.Int("bands", len(enabled)),
		zap.Float64("min_label_spacing", layout.MinLabelSpacing),
	)

	baseline := area.baseline()
	for _, band := range enabled {
		y := baseline - scale.ToPixels(band.Value)
		lines := wrapToWidth(m, bandLabelText(band), columnWidth-2*bandPadding, bandFont)

		boxHeight := float64(len(lines))*bandLineHeight + 2*bandPadding
		boxWidth := math.Min(widestLine(m, lines, bandFont)+2*bandPadding, columnWidth)
		boxX := area.left - boxWidth - bandBoxGap
		boxY := y - boxHeight/2

		lineYs := make([]float64, len(lines))
		for i := range lines {
			lineYs[i] = boxY + bandPadding + float64(i)*bandLineHeight + bandLineHeight/2
		}

		layout.Labels = append(layout.Labels, BandLabel{
			Band:   band,
			Color:  bandColor(band),
			Y:      y,
			Lines:  lines,
			Box:    Rect{X: boxX, Y: boxY, W: boxWidth, H: boxHeight},
			TextX:  boxX + bandPadding,
			LineYs: lineYs,
		})
	}
	return layout
}

// commands draws every band as line, box, then text.
func (l BandsLayout) commands(area plotArea) []DrawCommand {
	var cmds []DrawCommand
	for _, label := range l.Labels {
		stroke := translucent(label.Color, bandStrokeOpacity)
		cmds = append(cmds,
			LineCmd{
				X1: area.left, Y1: label.Y,
				X2: area.right(), Y2: label.Y,
				Stroke: solid(label.Color),
				Width:  1,
				Dash:   bandDash,
			},
			RoundRectCmd{
				Rect:        label.Box,
				Radius:      bandBoxRadius,
				Fill:        translucent(label.Color, bandFillOpacity),
				Stroke:      &stroke,
				StrokeWidth: 1,
			},
		)
		for i, line := range label.Lines {
			cmds = append(cmds, TextCmd{
				X:        label.TextX,
				Y:        label.LineYs[i],
				Content:  line,
				Font:     bandFont,
				Fill:     solid(label.Color),
				Align:    AlignLeft,
				Baseline: BaselineMiddle,
			})
		}
	}
	return cmds
}
