package main

import "math"

// Bar slot proportions relative to the per-bar x step.
const (
	barWidthFraction   = 0.7
	barSpacingFraction = 0.15
	barCornerRadius    = 4.0
	valueLabelOffset   = 5.0
)

var valueLabelFont = FontSpec{Size: 12, Bold: true}

// BarGeometry is the pixel-space description of one bar and its value label.
type BarGeometry struct {
	Rect
	CornerRadius float64
	Rounded      bool // false when the bar is too short for its corners
	Color        string
	Kind         BarKind

	ValueLabel string
	LabelX     float64 // horizontal centre of the bar
	LabelY     float64 // bottom of the value label
}

// barSlots splits the plot width into count equal steps and returns the bar
// width and the spacing on each side of a bar.
func barSlots(count int, plotWidth float64) (width, spacing float64) {
	if count <= 0 {
		return 0, 0
	}
	step := plotWidth / float64(count)
	return step * barWidthFraction, step * barSpacingFraction
}

func barColor(kind BarKind) string {
	switch kind {
	case KindExposure:
		return colors.red
	case KindIntervention:
		return colors.green
	default:
		return colors.neutral
	}
}

// BuildBarGeometry places bar number index inside the plot area. Totals always
// grow from the baseline up to RangeEnd; exposures and interventions float
// between their two range endpoints.
func BuildBarGeometry(bar BarRecord, index int, barWidth, barSpacing float64, scale Scale, area plotArea, decimals int) BarGeometry {
	step := barWidth + 2*barSpacing
	x := area.left + barSpacing + float64(index)*step
	baseline := area.baseline()

	var top, height float64
	if bar.Kind == KindTotal {
		endPx := scale.ToPixels(bar.RangeEnd)
		top = baseline - math.Max(endPx, 0)
		height = math.Abs(endPx)
	} else {
		startY := baseline - scale.ToPixels(bar.RangeStart)
		endY := baseline - scale.ToPixels(bar.RangeEnd)
		top = math.Min(startY, endY)
		height = math.Abs(startY - endY)
	}

	return BarGeometry{
		Rect:         Rect{X: x, Y: top, W: barWidth, H: height},
		CornerRadius: barCornerRadius,
		Rounded:      height > 2*barCornerRadius,
		Color:        barColor(bar.Kind),
		Kind:         bar.Kind,
		ValueLabel:   formatValue(bar.Magnitude, decimals),
		LabelX:       x + barWidth/2,
		LabelY:       top - valueLabelOffset,
	}
}

// commands returns the bar shape followed by its value label.
func (g BarGeometry) commands() []DrawCommand {
	var shape DrawCommand = RectCmd{Rect: g.Rect, Fill: solid(g.Color)}
	if g.Rounded {
		shape = RoundRectCmd{Rect: g.Rect, Radius: g.CornerRadius, Fill: solid(g.Color)}
	}
	return []DrawCommand{
		shape,
		TextCmd{
			X:        g.LabelX,
			Y:        g.LabelY,
			Content:  g.ValueLabel,
			Font:     valueLabelFont,
			Fill:     solid(colors.text),
			Align:    AlignCenter,
			Baseline: BaselineBottom,
		},
	}
}
