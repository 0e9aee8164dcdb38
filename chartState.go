package main

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"slices"

	"go.uber.org/zap"
)

const maxDecimalPlaces = 3

// ChartState is the exported application state: what to draw plus the preset
// the bands came from.
type ChartState struct {
	SelectedPreset string          `json:"selectedPreset"`
	ExposureType   string          `json:"exposureType"`
	ExposureUnits  string          `json:"exposureUnits"`
	IsLogScale     bool            `json:"isLogScale"`
	DecimalPlaces  int             `json:"decimalPlaces"`
	Exposures      []Contribution  `json:"exposures"`
	Interventions  []Contribution  `json:"interventions"`
	Levels         []ReferenceBand `json:"levels"`
}

// stateDocument distinguishes missing fields from empty ones.
type stateDocument struct {
	SelectedPreset string           `json:"selectedPreset"`
	ExposureType   string           `json:"exposureType"`
	ExposureUnits  string           `json:"exposureUnits"`
	IsLogScale     bool             `json:"isLogScale"`
	DecimalPlaces  int              `json:"decimalPlaces"`
	Exposures      *[]Contribution  `json:"exposures"`
	Interventions  *[]Contribution  `json:"interventions"`
	Levels         *[]ReferenceBand `json:"levels"`
}

// defaultChartState is the demo data a fresh session starts with.
func defaultChartState() ChartState {
	preset, _ := findPreset(defaultPreset)
	return ChartState{
		SelectedPreset: preset.Name,
		ExposureType:   preset.Name,
		ExposureUnits:  preset.Units,
		Exposures: []Contribution{
			{Name: "Baseline", Value: 15},
			{Name: "Activity 1", Value: 10},
			{Name: "Activity 2", Value: 25},
		},
		Interventions: []Contribution{
			{Name: "Control 1", Value: 12},
			{Name: "Control 2", Value: 18},
		},
		Levels: preset.Levels,
	}
}

// parseChartState decodes and validates a state document. Exposures and
// interventions must be present (they may be empty). Missing levels fall back
// to the selected preset's bands, missing type and units to the preset's
// name and units.
func parseChartState(data []byte) (ChartState, error) {
	var doc stateDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return ChartState{}, fmt.Errorf("%w: %v", ErrInvalidChartState, err)
	}
	if doc.Exposures == nil || doc.Interventions == nil {
		return ChartState{}, fmt.Errorf("%w: missing exposures or interventions", ErrInvalidChartState)
	}

	state := ChartState{
		SelectedPreset: doc.SelectedPreset,
		ExposureType:   doc.ExposureType,
		ExposureUnits:  doc.ExposureUnits,
		IsLogScale:     doc.IsLogScale,
		DecimalPlaces:  min(max(doc.DecimalPlaces, 0), maxDecimalPlaces),
		Exposures:      *doc.Exposures,
		Interventions:  *doc.Interventions,
	}
	if state.SelectedPreset == "" {
		state.SelectedPreset = CustomPreset
	}

	var preset ExposurePreset
	if state.SelectedPreset != CustomPreset {
		var err error
		if preset, err = findPreset(state.SelectedPreset); err != nil {
			return ChartState{}, err
		}
	}
	if doc.Levels != nil {
		state.Levels = *doc.Levels
	} else {
		state.Levels = preset.Levels
	}
	if state.ExposureType == "" {
		state.ExposureType = preset.Name
	}
	if state.ExposureUnits == "" {
		state.ExposureUnits = preset.Units
	}

	if err := state.validate(); err != nil {
		return ChartState{}, err
	}
	return state, nil
}

// validate checks the numeric precondition of the layout code: every value is finite.
func (s ChartState) validate() error {
	check := func(kind, name string, v float64) error {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s %q has non-finite value", ErrInvalidChartState, kind, name)
		}
		return nil
	}
	for _, c := range s.Exposures {
		if err := check("exposure", c.Name, c.Value); err != nil {
			return err
		}
	}
	for _, c := range s.Interventions {
		if err := check("intervention", c.Name, c.Value); err != nil {
			return err
		}
	}
	for _, l := range s.Levels {
		if err := check("level", l.Name, l.Value); err != nil {
			return err
		}
	}
	return nil
}

// loadChartState reads a state file from disk.
func loadChartState(path string) (ChartState, error) {
	logger.Info("reading chart state", zap.String("path", path))
	data, err := os.ReadFile(path)
	if err != nil {
		return ChartState{}, fmt.Errorf("reading state file '%s': %w", path, err)
	}
	state, err := parseChartState(data)
	if err != nil {
		return ChartState{}, fmt.Errorf("state file '%s': %w", path, err)
	}
	return state, nil
}

// levelSet returns the bands tagged with the selected preset.
func (s ChartState) levelSet() LevelSet {
	return NewLevelSet(s.SelectedPreset, s.Levels)
}

// withLevelSet returns a copy of the state carrying the set's bands and tag.
func (s ChartState) withLevelSet(set LevelSet) ChartState {
	s.SelectedPreset = set.Preset()
	s.Levels = set.Levels()
	return s
}

// selectPreset switches the state to a preset: bands, type and units follow
// the preset and the scale resets to linear. Custom only changes the tag.
func (s ChartState) selectPreset(name string) (ChartState, error) {
	set, err := s.levelSet().SelectPreset(name)
	if err != nil {
		return s, err
	}
	s = s.withLevelSet(set)
	if set.IsCustom() {
		return s, nil
	}
	preset, err := findPreset(name)
	if err != nil {
		return s, err
	}
	s.ExposureType = preset.Name
	s.ExposureUnits = preset.Units
	s.IsLogScale = false
	return s, nil
}

// chartInput is the read-only view handed to the layout code.
func (s ChartState) chartInput() ChartInput {
	return ChartInput{
		Exposures:     slices.Clone(s.Exposures),
		Interventions: slices.Clone(s.Interventions),
		Levels:        slices.Clone(s.Levels),
		Display: DisplayConfig{
			ExposureType:  s.ExposureType,
			ExposureUnits: s.ExposureUnits,
			IsLogScale:    s.IsLogScale,
			DecimalPlaces: s.DecimalPlaces,
		},
	}
}

// marshalChartState produces the indented export form.
func marshalChartState(s ChartState) ([]byte, error) {
	if s.Exposures == nil {
		s.Exposures = []Contribution{}
	}
	if s.Interventions == nil {
		s.Interventions = []Contribution{}
	}
	if s.Levels == nil {
		s.Levels = []ReferenceBand{}
	}
	return json.MarshalIndent(s, "", "  ")
}
