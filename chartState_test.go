package main

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChartStateFillsFromPreset(t *testing.T) {
	state, err := parseChartState([]byte(`{
		"selectedPreset": "ELF Magnetic Fields",
		"decimalPlaces": 7,
		"exposures": [{"name": "Bed", "value": 3}],
		"interventions": []
	}`))
	require.NoError(t, err)

	assert.Equal(t, "ELF Magnetic Fields", state.ExposureType)
	assert.Equal(t, "mG-h", state.ExposureUnits)
	assert.Equal(t, maxDecimalPlaces, state.DecimalPlaces)
	require.Len(t, state.Levels, 6)
	assert.Equal(t, []Contribution{{Name: "Bed", Value: 3}}, state.Exposures)
	assert.Empty(t, state.Interventions)
}

func TestParseChartStateKeepsExplicitLevels(t *testing.T) {
	state, err := parseChartState([]byte(`{
		"exposureType": "Noise",
		"exposureUnits": "dB",
		"exposures": [],
		"interventions": [],
		"levels": [{"name": "Loud", "value": 85, "enabled": false}]
	}`))
	require.NoError(t, err)

	assert.Equal(t, CustomPreset, state.SelectedPreset)
	assert.Equal(t, "Noise", state.ExposureType)
	assert.Equal(t, []ReferenceBand{{Name: "Loud", Value: 85}}, state.Levels)
}

func TestParseChartStateRejects(t *testing.T) {
	tests := map[string]string{
		"not json":              `{`,
		"missing exposures":     `{"interventions": []}`,
		"missing interventions": `{"exposures": []}`,
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := parseChartState([]byte(doc))
			assert.ErrorIs(t, err, ErrInvalidChartState)
		})
	}

	_, err := parseChartState([]byte(`{"selectedPreset": "Sound", "exposures": [], "interventions": []}`))
	assert.ErrorIs(t, err, ErrUnknownPreset)
}

func TestChartStateValidate(t *testing.T) {
	state := defaultChartState()
	require.NoError(t, state.validate())

	state.Interventions = append(state.Interventions, Contribution{Name: "bad", Value: math.Inf(1)})
	assert.ErrorIs(t, state.validate(), ErrInvalidChartState)
}

func TestChartStateRoundTrip(t *testing.T) {
	original := defaultChartState()
	original.IsLogScale = true
	original.DecimalPlaces = 2

	data, err := marshalChartState(original)
	require.NoError(t, err)
	back, err := parseChartState(data)
	require.NoError(t, err)

	if diff := cmp.Diff(original, back); diff != "" {
		t.Errorf("state changed across export (-want +got):\n%s", diff)
	}
}

func TestMarshalChartStateEmptyLists(t *testing.T) {
	data, err := marshalChartState(ChartState{SelectedPreset: CustomPreset})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"exposures": []`)
	assert.Contains(t, string(data), `"levels": []`)

	_, err = parseChartState(data)
	assert.NoError(t, err)
}

func TestChartStateSelectPreset(t *testing.T) {
	state := defaultChartState()
	state.IsLogScale = true

	switched, err := state.selectPreset("AC Electrical Fields")
	require.NoError(t, err)
	assert.Equal(t, "AC Electrical Fields", switched.SelectedPreset)
	assert.Equal(t, "V-h", switched.ExposureUnits)
	assert.False(t, switched.IsLogScale)
	assert.Equal(t, 0.48, switched.Levels[1].Value)
	assert.Equal(t, state.Exposures, switched.Exposures)

	custom, err := switched.selectPreset(CustomPreset)
	require.NoError(t, err)
	assert.Equal(t, CustomPreset, custom.SelectedPreset)
	assert.Equal(t, "V-h", custom.ExposureUnits)
	assert.Equal(t, switched.Levels, custom.Levels)

	_, err = state.selectPreset("Sound")
	assert.ErrorIs(t, err, ErrUnknownPreset)
}

func TestChartInputIsDetached(t *testing.T) {
	state := defaultChartState()
	in := state.chartInput()
	in.Exposures[0].Value = 1000
	in.Levels[0].Enabled = false

	assert.Equal(t, 15.0, state.Exposures[0].Value)
	assert.True(t, state.Levels[0].Enabled)
	assert.Equal(t, state.ExposureUnits, in.Display.ExposureUnits)
}

func TestLoadChartState(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.json")
	data, err := marshalChartState(defaultChartState())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	state, err := loadChartState(path)
	require.NoError(t, err)
	assert.Equal(t, defaultPreset, state.SelectedPreset)

	_, err = loadChartState(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
