package main

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// CustomPreset is the sentinel name for hand-edited band lists.
const CustomPreset = "Custom"

// ExposurePreset is a named exposure type with its units and reference bands.
type ExposurePreset struct {
	Name   string
	Units  string
	Levels []ReferenceBand
}

// Tier colors shared by the built-in presets.
const (
	tierOptimal   = "#87d3c3"
	tierGood      = "#879A39"
	tierModerate  = "#D0A215"
	tierSensitive = "#DA702C"
	tierUnhealthy = "#D14D41"
	tierVeryBad   = "#a02f6f"
)

// tiers builds the six standard bands from their threshold values.
func tiers(optimal, good, moderate, sensitive, unhealthy, veryUnhealthy float64) []ReferenceBand {
	return []ReferenceBand{
		{Name: "Optimal", Value: optimal, Color: tierOptimal, Enabled: true},
		{Name: "Good", Value: good, Color: tierGood, Enabled: true},
		{Name: "Moderate", Value: moderate, Color: tierModerate, Enabled: true},
		{Name: "Unhealthy for Sensitive Groups", Value: sensitive, Color: tierSensitive, Enabled: true},
		{Name: "Unhealthy", Value: unhealthy, Color: tierUnhealthy, Enabled: true},
		{Name: "Very Unhealthy", Value: veryUnhealthy, Color: tierVeryBad, Enabled: true},
	}
}

var exposurePresets = []ExposurePreset{
	{Name: "ELF Magnetic Fields", Units: "mG-h", Levels: tiers(0, 4.8, 24, 48, 240, 1200)},
	{Name: "Radiofrequency Radiation", Units: "µW-h/m²", Levels: tiers(0, 720, 12000, 60000, 240000, 1200000)},
	{Name: "AC Electrical Fields", Units: "V-h", Levels: tiers(0, 0.48, 4.8, 9.6, 24, 48)},
	{Name: CustomPreset},
}

const defaultPreset = "Radiofrequency Radiation"

// findPreset looks a preset up by exact name. The returned levels are a copy.
func findPreset(name string) (ExposurePreset, error) {
	for _, p := range exposurePresets {
		if p.Name == name {
			p.Levels = slices.Clone(p.Levels)
			return p, nil
		}
	}
	return ExposurePreset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
}

// --- Level Set State Machine ---

// LevelSet is an immutable band list tagged with where it came from: a named
// preset, or Custom once any band has been added, removed or edited.
// Every method returns a new value and leaves the receiver untouched.
type LevelSet struct {
	preset string
	levels []ReferenceBand
}

// NewLevelSet wraps a band list under the given preset tag. An empty tag
// means Custom.
func NewLevelSet(preset string, levels []ReferenceBand) LevelSet {
	if preset == "" {
		preset = CustomPreset
	}
	return LevelSet{preset: preset, levels: slices.Clone(levels)}
}

// Preset returns the current tag: a preset name or CustomPreset.
func (s LevelSet) Preset() string { return s.preset }

// IsCustom reports whether the set has left its named preset.
func (s LevelSet) IsCustom() bool { return s.preset == CustomPreset }

// Levels returns a copy of the bands.
func (s LevelSet) Levels() []ReferenceBand { return slices.Clone(s.levels) }

// SelectPreset switches to a named preset's bands. Selecting Custom keeps the
// current bands and only changes the tag.
func (s LevelSet) SelectPreset(name string) (LevelSet, error) {
	if name == CustomPreset {
		return LevelSet{preset: CustomPreset, levels: slices.Clone(s.levels)}, nil
	}
	p, err := findPreset(name)
	if err != nil {
		return s, err
	}
	return LevelSet{preset: p.Name, levels: p.Levels}, nil
}

// WithAdded appends an enabled band.
func (s LevelSet) WithAdded(band ReferenceBand) LevelSet {
	band.Enabled = true
	return LevelSet{preset: CustomPreset, levels: append(slices.Clone(s.levels), band)}
}

// WithRemoved drops the band at index.
func (s LevelSet) WithRemoved(index int) (LevelSet, error) {
	if index < 0 || index >= len(s.levels) {
		return s, fmt.Errorf("%w: %d of %d", ErrBandIndexOutOfRange, index, len(s.levels))
	}
	levels := slices.Delete(slices.Clone(s.levels), index, index+1)
	return LevelSet{preset: CustomPreset, levels: levels}, nil
}

// WithEdited replaces the band at index.
func (s LevelSet) WithEdited(index int, band ReferenceBand) (LevelSet, error) {
	if index < 0 || index >= len(s.levels) {
		return s, fmt.Errorf("%w: %d of %d", ErrBandIndexOutOfRange, index, len(s.levels))
	}
	levels := slices.Clone(s.levels)
	levels[index] = band
	return LevelSet{preset: CustomPreset, levels: levels}, nil
}

// WithToggled flips the enabled flag of one band. Toggling is not an edit:
// the preset tag is kept.
func (s LevelSet) WithToggled(index int) (LevelSet, error) {
	if index < 0 || index >= len(s.levels) {
		return s, fmt.Errorf("%w: %d of %d", ErrBandIndexOutOfRange, index, len(s.levels))
	}
	levels := slices.Clone(s.levels)
	levels[index].Enabled = !levels[index].Enabled
	return LevelSet{preset: s.preset, levels: levels}, nil
}

// --- Band Specs ---

// parseLevelSpec reads a band written as "Name=Value" or "Name=Value:color".
// The last '=' separates the name, so names may contain one.
func parseLevelSpec(spec string) (ReferenceBand, error) {
	eq := strings.LastIndex(spec, "=")
	if eq < 0 {
		return ReferenceBand{}, fmt.Errorf("%w: %q has no '='", ErrInvalidLevelSpec, spec)
	}
	name := strings.TrimSpace(spec[:eq])
	if name == "" {
		return ReferenceBand{}, fmt.Errorf("%w: %q has no name", ErrInvalidLevelSpec, spec)
	}
	valueText, color, _ := strings.Cut(spec[eq+1:], ":")
	value, err := strconv.ParseFloat(strings.TrimSpace(valueText), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return ReferenceBand{}, fmt.Errorf("%w: %q needs a finite value", ErrInvalidLevelSpec, spec)
	}
	return ReferenceBand{Name: name, Value: value, Color: strings.TrimSpace(color), Enabled: true}, nil
}

// parseLevelEdit reads "index:Name=Value[:color]".
func parseLevelEdit(spec string) (int, ReferenceBand, error) {
	indexText, rest, ok := strings.Cut(spec, ":")
	if !ok {
		return 0, ReferenceBand{}, fmt.Errorf("%w: %q has no index", ErrInvalidLevelSpec, spec)
	}
	index, err := strconv.Atoi(strings.TrimSpace(indexText))
	if err != nil {
		return 0, ReferenceBand{}, fmt.Errorf("%w: bad index in %q", ErrInvalidLevelSpec, spec)
	}
	band, err := parseLevelSpec(rest)
	if err != nil {
		return 0, ReferenceBand{}, err
	}
	return index, band, nil
}
