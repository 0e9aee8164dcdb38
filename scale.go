package main

import (
	"fmt"
	"math"
)

// ScaleMode selects linear or logarithmic value mapping.
type ScaleMode int

const (
	ScaleLinear ScaleMode = iota
	ScaleLog
)

func (m ScaleMode) String() string {
	if m == ScaleLog {
		return "log"
	}
	return "linear"
}

func scaleModeFor(display DisplayConfig) ScaleMode {
	if display.IsLogScale {
		return ScaleLog
	}
	return ScaleLinear
}

// Default tick counts; the log axis gets fewer ticks.
const (
	linearTickCount = 6
	logTickCount    = 5
)

// DefaultTickCount returns the number of tick intervals for a mode.
func DefaultTickCount(mode ScaleMode) int {
	if mode == ScaleLog {
		return logTickCount
	}
	return linearTickCount
}

// Scale maps domain values in [0, DomainMax] to pixel offsets in [0, Height]
// measured upwards from the baseline.
type Scale struct {
	DomainMax float64
	Height    float64
	Mode      ScaleMode
	flat      bool // degenerate domain: everything sits on the baseline
}

// NewScale validates the domain and builds a scale. A domainMax <= 0 is an
// input-validation failure reported as ErrDegenerateDomain.
func NewScale(domainMax, height float64, mode ScaleMode) (Scale, error) {
	if !(domainMax > 0) || math.IsInf(domainMax, 1) {
		return Scale{}, fmt.Errorf("%w: max %v", ErrDegenerateDomain, domainMax)
	}
	return Scale{DomainMax: domainMax, Height: height, Mode: mode}, nil
}

// flatScale is the fallback for a degenerate domain: every value maps to 0.
func flatScale(height float64, mode ScaleMode) Scale {
	return Scale{Height: height, Mode: mode, flat: true}
}

// Flat reports whether the scale collapsed to the baseline.
func (s Scale) Flat() bool { return s.flat }

// ToPixels maps a domain value to a pixel offset above the baseline.
func (s Scale) ToPixels(value float64) float64 {
	if s.flat {
		return 0
	}
	if s.Mode == ScaleLog {
		if value <= 0 {
			return 0
		}
		return math.Log10(value+1) / math.Log10(s.DomainMax+1) * s.Height
	}
	return value / s.DomainMax * s.Height
}

// Ticks returns count+1 domain values for the axis. Linear ticks are evenly
// spaced from 0 to DomainMax; log ticks are 10^(log10(DomainMax)*i/count).
// A flat linear scale yields ticks at zero; a flat log scale yields none.
func (s Scale) Ticks(count int) []float64 {
	if count <= 0 {
		count = DefaultTickCount(s.Mode)
	}
	if s.flat && s.Mode == ScaleLog {
		return nil
	}
	ticks := make([]float64, 0, count+1)
	for i := 0; i <= count; i++ {
		fraction := float64(i) / float64(count)
		switch {
		case s.flat:
			ticks = append(ticks, 0)
		case s.Mode == ScaleLog:
			ticks = append(ticks, math.Pow(10, math.Log10(s.DomainMax)*fraction))
		default:
			ticks = append(ticks, fraction*s.DomainMax)
		}
	}
	return ticks
}
