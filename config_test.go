package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)

	assert.Equal(t, Surface{Width: 1000, Height: 500, PixelRatio: 1}, cfg.Surface)
	assert.Equal(t, "svg", cfg.Format)
	assert.Equal(t, engineNative, cfg.Engine)
	assert.Equal(t, 90, cfg.JPEGQuality)
	assert.Equal(t, ".", cfg.OutDir)
	assert.Equal(t, []string{"full", "exposures", "interventions"}, cfg.Variants)
	assert.Equal(t, defaultBrowserTimeout, cfg.BrowserTimeout)
	assert.Equal(t, 300*time.Millisecond, cfg.WatchDebounce)
	assert.NoError(t, cfg.validate())
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "waterfall.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
surface:
  width: 1200
  pixel_ratio: 2
format: PNG
jpeg_quality: 75
out_dir: charts
variants: [exposures, total, exposures]
browser_timeout: 5s
watch_debounce: 1s
`), 0o644))

	cfg, err := loadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, Surface{Width: 1200, Height: 500, PixelRatio: 2}, cfg.Surface)
	assert.Equal(t, "png", cfg.Format)
	assert.Equal(t, 75, cfg.JPEGQuality)
	assert.Equal(t, "charts", cfg.OutDir)
	assert.Equal(t, 5*time.Second, cfg.BrowserTimeout)
	assert.Equal(t, time.Second, cfg.WatchDebounce)

	variants, err := cfg.variants()
	require.NoError(t, err)
	assert.Equal(t, []Variant{VariantExposures, VariantFull}, variants)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("surface: [1, 2"), 0o644))
	_, err = loadConfig(path)
	assert.Error(t, err)
}

func TestConfigValidateCollectsErrors(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	cfg.Format = "gif"
	cfg.Engine = "gpu"
	cfg.Variants = []string{"sideways"}
	cfg.Surface.Width = 100

	err = cfg.validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.ErrorIs(t, err, ErrUnknownVariant)
	assert.ErrorIs(t, err, ErrSurfaceTooSmall)
	assert.Contains(t, err.Error(), `unknown engine "gpu"`)
}

func TestConfigOverrides(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)

	width, format, quality := 800.0, "JPG", 60
	got := configOverrides{
		Width:       &width,
		Format:      &format,
		JPEGQuality: &quality,
		Variants:    []string{"interventions"},
	}.apply(cfg)

	assert.Equal(t, 800.0, got.Surface.Width)
	assert.Equal(t, 500.0, got.Surface.Height)
	assert.Equal(t, "jpg", got.Format)
	assert.Equal(t, 60, got.JPEGQuality)
	assert.Equal(t, []string{"interventions"}, got.Variants)
	assert.Equal(t, engineNative, got.Engine)
	assert.Equal(t, []string{"full", "exposures", "interventions"}, cfg.Variants, "input config untouched")
}
