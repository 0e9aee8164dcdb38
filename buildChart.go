package main

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// plotArea is the rectangle inside the margins. Bars grow upward from its
// bottom edge.
type plotArea struct {
	left, top, width, height float64
}

func (a plotArea) baseline() float64 { return a.top + a.height }
func (a plotArea) right() float64    { return a.left + a.width }

// plotAreaFor subtracts the fixed margins from the surface.
func plotAreaFor(surface Surface) (plotArea, error) {
	area := plotArea{
		left:   chartMargins.left,
		top:    chartMargins.top,
		width:  surface.Width - chartMargins.left - chartMargins.right,
		height: surface.Height - chartMargins.top - chartMargins.bottom,
	}
	if area.width <= 0 || area.height <= 0 {
		return plotArea{}, fmt.Errorf("%w: %.0fx%.0f", ErrSurfaceTooSmall, surface.Width, surface.Height)
	}
	return area, nil
}

// Text styles shared by the chart frame.
var (
	titleFont    = FontSpec{Size: 18, Bold: true}
	tickFont     = FontSpec{Size: 10}
	categoryFont = FontSpec{Size: 12}
)

const (
	titleOffset       = 60.0 // title top sits this far above the plot
	tickLength        = 5.0
	tickLabelGap      = 8.0
	categoryOffset    = 15.0
	categoryRotation  = 45.0
	categoryLineStep  = 14.4
	categoryLineChars = 30
)

// Tick is one y-axis tick with its formatted label.
type Tick struct {
	Value float64
	Y     float64
	Label string
}

// CategoryLabel is the rotated multi-line name under a bar.
type CategoryLabel struct {
	X, Y  float64
	Lines []string
}

// Chart is everything computed for one variant. DrawList is the only part a
// renderer needs; the rest is kept for callers that inspect the layout.
type Chart struct {
	Variant   Variant
	Surface   Surface
	Area      plotArea
	Bars      []BarRecord
	DomainMax float64
	Scale     Scale

	Geometry       []BarGeometry
	Ticks          []Tick
	CategoryLabels []CategoryLabel
	Bands          BandsLayout
	Legend         LegendLayout

	DrawList *DrawList
}

// BuildChart lays out one variant on a surface of the given logical size and
// returns the chart with its ordered draw commands. Nothing is cached between
// calls. A domain without signal collapses every bar onto the baseline.
func BuildChart(in ChartInput, variant Variant, surface Surface, m TextMeasurer) (*Chart, error) {
	area, err := plotAreaFor(surface)
	if err != nil {
		return nil, err
	}
	if m == nil {
		m = estimatedMeasurer{}
	}

	levels := in.enabledLevels()
	bars := BuildSeries(in.Exposures, in.Interventions, variant)
	domainMax := domainMaximum(bars, levels)
	mode := scaleModeFor(in.Display)

	scale, err := NewScale(domainMax, area.height, mode)
	if err != nil {
		if !errors.Is(err, ErrDegenerateDomain) {
			return nil, fmt.Errorf("building scale: %w", err)
		}
		logger.Debug("degenerate domain, drawing flat chart",
			zap.Stringer("variant", variant),
			zap.Float64("domain_max", domainMax),
		)
		scale = flatScale(area.height, mode)
	}

	chart := &Chart{
		Variant:   variant,
		Surface:   surface,
		Area:      area,
		Bars:      bars,
		DomainMax: domainMax,
		Scale:     scale,
		DrawList:  &DrawList{Variant: variant, Surface: surface},
	}

	barWidth, barSpacing := barSlots(len(bars), area.width)
	for i, bar := range bars {
		chart.Geometry = append(chart.Geometry,
			BuildBarGeometry(bar, i, barWidth, barSpacing, scale, area, in.Display.DecimalPlaces))
	}
	for i, bar := range bars {
		chart.CategoryLabels = append(chart.CategoryLabels, CategoryLabel{
			X:     area.left + barSpacing + float64(i)*(barWidth+2*barSpacing) + barWidth/2,
			Y:     area.baseline() + categoryOffset,
			Lines: wrapByLength(bar.Label, categoryLineChars),
		})
	}
	for _, value := range scale.Ticks(DefaultTickCount(mode)) {
		chart.Ticks = append(chart.Ticks, Tick{
			Value: value,
			Y:     area.baseline() - scale.ToPixels(value),
			Label: formatTickLabel(value),
		})
	}
	chart.Bands = LayoutBands(levels, scale, area, chartMargins.left-bandColumnInset, m)
	chart.Legend = LayoutLegend(legendItems(variant), area, m)

	chart.DrawList.Title = variant.title(in.Display)
	chart.emit()

	logger.Debug("chart built",
		zap.Stringer("variant", variant),
		zap.Int("bars", len(bars)),
		zap.Int("bands", len(levels)),
		zap.Stringer("scale", mode),
		zap.Int("commands", len(chart.DrawList.Commands)),
	)
	return chart, nil
}

// emit appends the draw commands in paint order: background, title, y axis
// with ticks, x axis, bars, category labels, bands, legend.
func (c *Chart) emit() {
	list := c.DrawList
	area := c.Area
	textPaint := solid(colors.text)
	borderPaint := solid(colors.border)

	list.add(ClearCmd{Fill: solid(colors.paper)})

	list.add(TextCmd{
		X:        c.Surface.Width / 2,
		Y:        area.top - titleOffset,
		Content:  list.Title,
		Font:     titleFont,
		Fill:     textPaint,
		Align:    AlignCenter,
		Baseline: BaselineTop,
	})

	// --- Axes ---
	list.add(LineCmd{X1: area.left, Y1: area.top, X2: area.left, Y2: area.baseline(), Stroke: borderPaint, Width: 1})
	for _, tick := range c.Ticks {
		list.add(
			LineCmd{X1: area.left - tickLength, Y1: tick.Y, X2: area.left, Y2: tick.Y, Stroke: textPaint, Width: 1},
			TextCmd{
				X:        area.left - tickLabelGap,
				Y:        tick.Y,
				Content:  tick.Label,
				Font:     tickFont,
				Fill:     textPaint,
				Align:    AlignRight,
				Baseline: BaselineMiddle,
			},
		)
	}
	list.add(LineCmd{X1: area.left, Y1: area.baseline(), X2: area.right(), Y2: area.baseline(), Stroke: borderPaint, Width: 1})

	// --- Bars ---
	for _, g := range c.Geometry {
		list.add(g.commands()...)
	}
	for _, label := range c.CategoryLabels {
		for i, line := range label.Lines {
			list.add(TextCmd{
				X:        label.X,
				Y:        label.Y,
				DY:       float64(i) * categoryLineStep,
				Rotation: categoryRotation,
				Content:  line,
				Font:     categoryFont,
				Fill:     textPaint,
				Align:    AlignLeft,
				Baseline: BaselineTop,
			})
		}
	}

	list.add(c.Bands.commands(area)...)
	list.add(c.Legend.commands()...)
}
