package main

// Legend geometry, in logical pixels.
const (
	legendItemEstimate = 100.0 // assumed width per item when sizing the box
	legendBoxHeight    = 30.0
	legendBoxRadius    = 5.0
	legendOffsetTop    = 30.0 // legend row sits this far above the plot
	legendSwatchSize   = 15.0
	legendSwatchGap    = 5.0
	legendItemPadding  = 20.0
	legendBackground   = "#FFFCF0"
)

var legendFont = FontSpec{Size: 12}

type LegendItem struct {
	Label string
	Color string
}

// legendItems returns the entries shown for a variant, in display order.
func legendItems(v Variant) []LegendItem {
	exposures := LegendItem{Label: "Exposures", Color: colors.red}
	interventions := LegendItem{Label: "Interventions", Color: colors.green}
	totals := LegendItem{Label: "Totals", Color: colors.neutral}

	switch v {
	case VariantExposures:
		return []LegendItem{exposures, totals}
	case VariantInterventions:
		return []LegendItem{interventions, totals}
	default:
		return []LegendItem{exposures, interventions, totals}
	}
}

type LegendEntry struct {
	Item      LegendItem
	Swatch    Rect
	TextX     float64
	TextY     float64
	TextWidth float64
}

// LegendLayout is the boxed row of legend entries. The box is sized from a
// per-item estimate, so FlowWidth (the measured extent of the entries) may
// be wider or narrower than Box.
type LegendLayout struct {
	Box       Rect
	Entries   []LegendEntry
	FlowWidth float64
}

// LayoutLegend flows items left to right from an anchor right-aligned to the
// plot's right edge.
func LayoutLegend(items []LegendItem, area plotArea, m TextMeasurer) LegendLayout {
	estimatedWidth := float64(len(items)) * legendItemEstimate
	startX := area.right() - estimatedWidth
	rowY := area.top - legendOffsetTop

	layout := LegendLayout{
		Box:     Rect{X: startX - 10, Y: rowY - 5, W: estimatedWidth + 10, H: legendBoxHeight},
		Entries: make([]LegendEntry, 0, len(items)),
	}
	center := rowY - 5 + legendBoxHeight/2

	x := startX
	for _, item := range items {
		textWidth := m.MeasureText(item.Label, legendFont)
		layout.Entries = append(layout.Entries, LegendEntry{
			Item:      item,
			Swatch:    Rect{X: x, Y: center - 7, W: legendSwatchSize, H: legendSwatchSize},
			TextX:     x + legendSwatchSize + legendSwatchGap,
			TextY:     center,
			TextWidth: textWidth,
		})
		x += legendSwatchSize + legendSwatchGap + textWidth + legendItemPadding
	}
	layout.FlowWidth = x - startX
	return layout
}

func (l LegendLayout) commands() []DrawCommand {
	border := solid(colors.border)
	cmds := []DrawCommand{RoundRectCmd{
		Rect:        l.Box,
		Radius:      legendBoxRadius,
		Fill:        solid(legendBackground),
		Stroke:      &border,
		StrokeWidth: 1,
	}}
	for _, entry := range l.Entries {
		cmds = append(cmds,
			RectCmd{Rect: entry.Swatch, Fill: solid(entry.Item.Color)},
			TextCmd{
				X:        entry.TextX,
				Y:        entry.TextY,
				Content:  entry.Item.Label,
				Font:     legendFont,
				Fill:     solid(colors.text),
				Align:    AlignLeft,
				Baseline: BaselineMiddle,
			},
		)
	}
	return cmds
}
