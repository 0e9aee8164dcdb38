package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// VariantResult is the outcome of one variant. A failed variant carries its
// error and leaves the others untouched.
type VariantResult struct {
	Variant Variant
	Chart   *Chart
	Path    string // empty for html, which is written once for all variants
	Err     error
}

// RenderAll builds the configured variants concurrently and writes their
// outputs under cfg.OutDir. Variants share only the read-only input. The
// returned error joins every variant failure.
func RenderAll(ctx context.Context, state ChartState, cfg Config) ([]VariantResult, string, error) {
	variants, err := cfg.variants()
	if err != nil {
		return nil, "", err
	}
	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return nil, "", fmt.Errorf("creating output directory '%s': %w", cfg.OutDir, err)
	}

	input := state.chartInput()
	results := make([]VariantResult, len(variants))
	start := time.Now()

	var g errgroup.Group
	for i, variant := range variants {
		i, variant := i, variant
		g.Go(func() error {
			results[i] = renderVariant(ctx, input, variant, cfg)
			return nil
		})
	}
	_ = g.Wait()

	var errs []error
	for _, r := range results {
		if r.Err != nil {
			logger.Error("variant failed", zap.Stringer("variant", r.Variant), zap.Error(r.Err))
			errs = append(errs, fmt.Errorf("variant %s: %w", r.Variant, r.Err))
			continue
		}
		if r.Path != "" {
			logger.Info("chart written", zap.Stringer("variant", r.Variant), zap.String("path", r.Path))
		}
	}

	var pagePath string
	if cfg.Format == "html" {
		pagePath, err = writeHTMLPage(state, cfg, results)
		if err != nil {
			errs = append(errs, err)
		}
	}

	logger.Info("render finished",
		zap.Int("variants", len(variants)),
		zap.Int("failed", len(errs)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return results, pagePath, errors.Join(errs...)
}

// renderVariant lays out and encodes one variant. Each call owns its font
// book because faces must not be shared between goroutines.
func renderVariant(ctx context.Context, input ChartInput, variant Variant, cfg Config) VariantResult {
	result := VariantResult{Variant: variant}

	fonts, err := newFontBook()
	if err != nil {
		result.Err = err
		return result
	}
	defer fonts.Close()

	chart, err := BuildChart(input, variant, cfg.Surface, fonts)
	if err != nil {
		result.Err = err
		return result
	}
	result.Chart = chart

	if cfg.Format == "html" {
		return result
	}

	var buf bytes.Buffer
	switch cfg.Format {
	case "svg":
		svgString, errSvg := GenerateSVG(chart.DrawList)
		if errSvg != nil {
			result.Err = fmt.Errorf("SVG generation failed: %w", errSvg)
			return result
		}
		buf.WriteString(svgString)
	case "png", "jpg", "jpeg":
		if cfg.Engine == engineBrowser {
			rasterizer := browserRasterizer{timeout: cfg.BrowserTimeout}
			err = rasterizer.rasterize(ctx, chart.DrawList, cfg.Format, cfg.JPEGQuality, &buf)
		} else {
			err = encodeNative(chart.DrawList, fonts, cfg, &buf)
		}
		if err != nil {
			result.Err = err
			return result
		}
	default:
		result.Err = fmt.Errorf("%w: %q", ErrUnsupportedFormat, cfg.Format)
		return result
	}

	result.Path = filepath.Join(cfg.OutDir, outputName(variant, cfg.Format))
	if err := os.WriteFile(result.Path, buf.Bytes(), 0o644); err != nil {
		result.Err = fmt.Errorf("writing '%s': %w", result.Path, err)
	}
	return result
}

func encodeNative(list *DrawList, fonts *fontBook, cfg Config, buf *bytes.Buffer) error {
	img, err := newCanvasRenderer(fonts).Render(list)
	if err != nil {
		return err
	}
	return encodeImage(buf, img, cfg.Format, cfg.JPEGQuality)
}

// writeHTMLPage places every successful chart on one page, in variant order.
func writeHTMLPage(state ChartState, cfg Config, results []VariantResult) (string, error) {
	var lists []*DrawList
	for _, r := range results {
		if r.Err == nil && r.Chart != nil {
			lists = append(lists, r.Chart.DrawList)
		}
	}
	title := fmt.Sprintf("%s (%s)", state.ExposureType, state.ExposureUnits)
	page, err := generateHTML(title, lists)
	if err != nil {
		return "", fmt.Errorf("HTML generation failed: %w", err)
	}
	path := filepath.Join(cfg.OutDir, "waterfall.html")
	if err := os.WriteFile(path, []byte(page), 0o644); err != nil {
		return "", fmt.Errorf("writing '%s': %w", path, err)
	}
	logger.Info("page written", zap.String("path", path), zap.Int("charts", len(lists)))
	return path, nil
}

func outputName(v Variant, format string) string {
	return fmt.Sprintf("waterfall-%s.%s", v, format)
}
