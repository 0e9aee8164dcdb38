package main

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Rendering engines for raster output.
const (
	engineNative  = "native"
	engineBrowser = "browser"
)

const (
	defaultWidth         = 1000.0
	defaultHeight        = 500.0
	defaultFormat        = "svg"
	defaultJPEGQuality   = 90
	defaultOutDir        = "."
	defaultWatchDebounce = 300 * time.Millisecond
)

var supportedFormats = []string{"svg", "png", "jpg", "jpeg", "html"}

// Config is the optional YAML render configuration.
type Config struct {
	Surface        Surface       `yaml:"surface"`
	Format         string        `yaml:"format"`
	Engine         string        `yaml:"engine"`
	JPEGQuality    int           `yaml:"jpeg_quality"`
	OutDir         string        `yaml:"out_dir"`
	Variants       []string      `yaml:"variants"`
	BrowserTimeout time.Duration `yaml:"browser_timeout"`
	WatchDebounce  time.Duration `yaml:"watch_debounce"`
}

// loadConfig reads path (if any) and fills in defaults. An empty path yields
// the defaults alone.
func loadConfig(path string) (Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config file '%s': %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config file '%s': %w", path, err)
		}
	}
	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults fills every zero field with its default.
func (c *Config) applyDefaults() {
	if c.Surface.Width <= 0 {
		c.Surface.Width = defaultWidth
	}
	if c.Surface.Height <= 0 {
		c.Surface.Height = defaultHeight
	}
	if c.Surface.PixelRatio <= 0 {
		c.Surface.PixelRatio = 1
	}
	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	if c.Format == "" {
		c.Format = defaultFormat
	}
	c.Engine = strings.ToLower(strings.TrimSpace(c.Engine))
	if c.Engine == "" {
		c.Engine = engineNative
	}
	if c.JPEGQuality <= 0 || c.JPEGQuality > 100 {
		c.JPEGQuality = defaultJPEGQuality
	}
	if c.OutDir == "" {
		c.OutDir = defaultOutDir
	}
	if len(c.Variants) == 0 {
		for _, v := range allVariants {
			c.Variants = append(c.Variants, v.String())
		}
	}
	if c.BrowserTimeout <= 0 {
		c.BrowserTimeout = defaultBrowserTimeout
	}
	if c.WatchDebounce <= 0 {
		c.WatchDebounce = defaultWatchDebounce
	}
}

// validate reports every invalid field at once.
func (c Config) validate() error {
	var errs []error
	if !slices.Contains(supportedFormats, c.Format) {
		errs = append(errs, fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedFormat, c.Format, strings.Join(supportedFormats, ", ")))
	}
	if c.Engine != engineNative && c.Engine != engineBrowser {
		errs = append(errs, fmt.Errorf("unknown engine %q (native or browser)", c.Engine))
	}
	if _, err := c.variants(); err != nil {
		errs = append(errs, err)
	}
	if _, err := plotAreaFor(c.Surface); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// variants parses the configured variant names, dropping duplicates.
func (c Config) variants() ([]Variant, error) {
	out := make([]Variant, 0, len(c.Variants))
	for _, name := range c.Variants {
		v, err := ParseVariant(name)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out, nil
}

// configOverrides carries the command-line values that were explicitly set.
type configOverrides struct {
	Width       *float64
	Height      *float64
	PixelRatio  *float64
	Format      *string
	Engine      *string
	JPEGQuality *int
	OutDir      *string
	Variants    []string
}

// apply layers the overrides on top of cfg.
func (o configOverrides) apply(cfg Config) Config {
	cfg.Surface.Width = getFloat64(o.Width, cfg.Surface.Width)
	cfg.Surface.Height = getFloat64(o.Height, cfg.Surface.Height)
	cfg.Surface.PixelRatio = getFloat64(o.PixelRatio, cfg.Surface.PixelRatio)
	cfg.Format = strings.ToLower(getString(o.Format, cfg.Format))
	cfg.Engine = strings.ToLower(getString(o.Engine, cfg.Engine))
	cfg.JPEGQuality = getInt(o.JPEGQuality, cfg.JPEGQuality)
	cfg.OutDir = getString(o.OutDir, cfg.OutDir)
	if len(o.Variants) > 0 {
		cfg.Variants = slices.Clone(o.Variants)
	}
	return cfg
}
