package main

import (
	"fmt"
	"strings"
)

// --- Input Structs ---

// Contribution is one exposure or intervention entry. Whether it adds to or
// subtracts from the running total depends on the list it appears in.
type Contribution struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// ReferenceBand is a horizontal threshold line drawn across the chart.
type ReferenceBand struct {
	Name    string  `json:"name"`
	Value   float64 `json:"value"`
	Color   string  `json:"color,omitempty"` // Empty falls back to purple
	Enabled bool    `json:"enabled"`
}

// DisplayConfig holds presentation-only parameters.
type DisplayConfig struct {
	ExposureType  string `json:"exposureType"`
	ExposureUnits string `json:"exposureUnits"`
	IsLogScale    bool   `json:"isLogScale"`
	DecimalPlaces int    `json:"decimalPlaces"`
}

// ChartInput bundles the three input collections and the display config
// consumed by one render pass. It is read-only for the layout code.
type ChartInput struct {
	Exposures     []Contribution
	Interventions []Contribution
	Levels        []ReferenceBand
	Display       DisplayConfig
}

// enabledLevels returns the bands that participate in layout, in input order.
func (in ChartInput) enabledLevels() []ReferenceBand {
	enabled := make([]ReferenceBand, 0, len(in.Levels))
	for _, level := range in.Levels {
		if level.Enabled {
			enabled = append(enabled, level)
		}
	}
	return enabled
}

// --- Chart Variants ---

// Variant selects which of the three waterfall views is built.
type Variant int

const (
	VariantFull Variant = iota
	VariantExposures
	VariantInterventions
)

// allVariants lists the variants in page order.
var allVariants = []Variant{VariantFull, VariantExposures, VariantInterventions}

func (v Variant) String() string {
	switch v {
	case VariantFull:
		return "full"
	case VariantExposures:
		return "exposures"
	case VariantInterventions:
		return "interventions"
	default:
		return fmt.Sprintf("variant(%d)", int(v))
	}
}

// showsExposures reports whether individual exposure bars are emitted.
func (v Variant) showsExposures() bool {
	return v == VariantFull || v == VariantExposures
}

// showsInterventions reports whether interventions and the final total are emitted.
func (v Variant) showsInterventions() bool {
	return v == VariantFull || v == VariantInterventions
}

// title builds the chart heading for this variant.
func (v Variant) title(display DisplayConfig) string {
	switch v {
	case VariantExposures:
		return fmt.Sprintf("Current %s (%s)", display.ExposureType, display.ExposureUnits)
	case VariantInterventions:
		return fmt.Sprintf("%s Interventions (%s)", display.ExposureType, display.ExposureUnits)
	default:
		return fmt.Sprintf("Total %s (%s)", display.ExposureType, display.ExposureUnits)
	}
}

// ParseVariant accepts the variant names used on the command line and in config files.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "full", "total":
		return VariantFull, nil
	case "exposures", "exposures-only", "exposuresonly":
		return VariantExposures, nil
	case "interventions", "interventions-only", "interventionsonly":
		return VariantInterventions, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownVariant, s)
}

// --- Derived Structs ---

// BarKind classifies a bar and decides its color.
type BarKind int

const (
	KindExposure BarKind = iota
	KindIntervention
	KindTotal
)

func (k BarKind) String() string {
	switch k {
	case KindExposure:
		return "exposure"
	case KindIntervention:
		return "intervention"
	case KindTotal:
		return "total"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// BarRecord is one bar of the waterfall, produced fresh per render.
type BarRecord struct {
	Label      string
	RangeStart float64
	RangeEnd   float64
	Magnitude  float64 // Value shown in the bar's label
	Kind       BarKind
}

// Surface describes the drawing target in device-independent pixels.
type Surface struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	PixelRatio float64 `yaml:"pixel_ratio"`
}

// backingSize is the size of the pixel buffer needed for this surface.
func (s Surface) backingSize() (int, int) {
	ratio := s.PixelRatio
	if ratio <= 0 {
		ratio = 1
	}
	return int(s.Width*ratio + 0.5), int(s.Height*ratio + 0.5)
}

// margins around the plotting area, in logical pixels
type margins struct {
	top, right, bottom, left float64
}

var chartMargins = margins{top: 70, right: 40, bottom: 160, left: 210}

// palette used by every chart
var colors = struct {
	background string
	paper      string
	border     string
	text       string
	red        string // exposures
	green      string // interventions
	neutral    string // totals
	purple     string // reference bands without a color
}{
	background: "#fffcf0",
	paper:      "#f2f0e5",
	border:     "#cecdc3",
	text:       "#100f0f",
	red:        "#D14D41",
	green:      "#879A39",
	neutral:    "#878580",
	purple:     "#8b7ec8",
}
