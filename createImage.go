// createImage.go
package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image/png"
	"io"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

const defaultBrowserTimeout = 30 * time.Second

// browserRasterizer renders the SVG form of a chart in headless Chrome and
// screenshots the svg element at the surface's pixel ratio.
type browserRasterizer struct {
	timeout time.Duration
}

// rasterize writes list as PNG or JPEG by way of its SVG serialisation.
func (b browserRasterizer) rasterize(ctx context.Context, list *DrawList, format string, quality int, outputWriter io.Writer) error {
	// 1. Generate SVG string first
	svgString, err := GenerateSVG(list)
	if err != nil {
		return fmt.Errorf("failed to generate intermediate SVG: %w", err)
	}

	// 2. Create a base64 data URI for the SVG
	dataURI := "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(svgString))
	logger.Debug("created data URI for SVG", zap.Stringer("variant", list.Variant), zap.Int("bytes", len(dataURI)))

	// 3. Setup chromedp
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Headless,
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelCtx := chromedp.NewContext(allocCtx)
	defer cancelCtx()

	timeout := b.timeout
	if timeout <= 0 {
		timeout = defaultBrowserTimeout
	}
	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, timeout)
	defer cancelTimeout()

	ratio := list.Surface.PixelRatio
	if ratio <= 0 {
		ratio = 1
	}

	// 4. Emulate the logical viewport at the device pixel ratio, then
	// screenshot the svg element
	var screenshotBuf []byte
	tasks := chromedp.Tasks{
		chromedp.EmulateViewport(int64(list.Surface.Width+0.5), int64(list.Surface.Height+0.5), chromedp.EmulateScale(ratio)),
		chromedp.Navigate(dataURI),
		chromedp.WaitVisible(`svg`, chromedp.ByQuery),
		chromedp.Screenshot(`svg`, &screenshotBuf, chromedp.ByQuery),
	}

	// 5. Run the tasks
	logger.Debug("running chromedp tasks", zap.Stringer("variant", list.Variant), zap.Float64("pixel_ratio", ratio))
	if err := chromedp.Run(browserCtx, tasks); err != nil {
		return fmt.Errorf("chromedp execution failed: %w", err)
	}
	if len(screenshotBuf) == 0 {
		return fmt.Errorf("screenshot buffer is empty, screenshot failed")
	}

	// 6. Process output
	switch format {
	case "png":
		// Screenshot is already PNG, just copy it
		if _, err := io.Copy(outputWriter, bytes.NewReader(screenshotBuf)); err != nil {
			return fmt.Errorf("failed to write PNG screenshot data: %w", err)
		}
	case "jpg", "jpeg":
		img, errPng := png.Decode(bytes.NewReader(screenshotBuf))
		if errPng != nil {
			return fmt.Errorf("failed to decode PNG screenshot: %w", errPng)
		}
		if err := encodeImage(outputWriter, img, format, quality); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %q with chromedp", ErrUnsupportedFormat, format)
	}

	logger.Debug("encoded image using chromedp", zap.String("format", strings.ToUpper(format)))
	return nil
}
