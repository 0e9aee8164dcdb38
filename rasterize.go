package main

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/fogleman/gg"
	"go.uber.org/zap"
)

// --- Native Raster Surface ---

// canvasRenderer replays a draw list onto a gg context. The backing image is
// the logical size times the pixel ratio; every operation is scaled
// uniformly so layout stays in logical pixels.
type canvasRenderer struct {
	fonts *fontBook
}

func newCanvasRenderer(fonts *fontBook) *canvasRenderer {
	return &canvasRenderer{fonts: fonts}
}

// Render draws the list and returns the backing image.
func (r *canvasRenderer) Render(list *DrawList) (image.Image, error) {
	w, h := list.Surface.backingSize()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: backing %dx%d", ErrSurfaceTooSmall, w, h)
	}
	ratio := list.Surface.PixelRatio
	if ratio <= 0 {
		ratio = 1
	}

	dc := gg.NewContext(w, h)
	dc.Scale(ratio, ratio)

	for _, cmd := range list.Commands {
		if err := r.draw(dc, ratio, cmd); err != nil {
			return nil, fmt.Errorf("rendering %s command: %w", cmd.commandName(), err)
		}
	}
	logger.Debug("raster surface painted",
		zap.Stringer("variant", list.Variant),
		zap.Int("width", w),
		zap.Int("height", h),
		zap.Float64("pixel_ratio", ratio),
	)
	return dc.Image(), nil
}

// draw applies one command. gg transforms path points but not stroke widths
// or dash lengths, so those are multiplied by the ratio here.
func (r *canvasRenderer) draw(dc *gg.Context, ratio float64, cmd DrawCommand) error {
	switch c := cmd.(type) {
	case ClearCmd:
		setPaint(dc, c.Fill)
		dc.Clear()
	case RectCmd:
		setPaint(dc, c.Fill)
		dc.DrawRectangle(c.Rect.X, c.Rect.Y, c.Rect.W, c.Rect.H)
		dc.Fill()
	case RoundRectCmd:
		radius := min(c.Radius, c.Rect.W/2, c.Rect.H/2)
		if radius > 0 {
			dc.DrawRoundedRectangle(c.Rect.X, c.Rect.Y, c.Rect.W, c.Rect.H, radius)
		} else {
			dc.DrawRectangle(c.Rect.X, c.Rect.Y, c.Rect.W, c.Rect.H)
		}
		setPaint(dc, c.Fill)
		if c.Stroke == nil {
			dc.Fill()
			break
		}
		dc.FillPreserve()
		setPaint(dc, *c.Stroke)
		dc.SetLineWidth(c.StrokeWidth * ratio)
		dc.Stroke()
	case LineCmd:
		setPaint(dc, c.Stroke)
		dc.SetLineWidth(c.Width * ratio)
		dash := make([]float64, len(c.Dash))
		for i, d := range c.Dash {
			dash[i] = d * ratio
		}
		dc.SetDash(dash...)
		dc.DrawLine(c.X1, c.Y1, c.X2, c.Y2)
		dc.Stroke()
		dc.SetDash()
	case TextCmd:
		return r.drawText(dc, c)
	default:
		return fmt.Errorf("unknown draw command %T", cmd)
	}
	return nil
}

func (r *canvasRenderer) drawText(dc *gg.Context, t TextCmd) error {
	face, err := r.fonts.face(t.Font)
	if err != nil {
		return err
	}
	setPaint(dc, t.Fill)
	dc.SetFontFace(face)

	ax := 0.0
	switch t.Align {
	case AlignCenter:
		ax = 0.5
	case AlignRight:
		ax = 1
	}
	ay := 0.0
	switch t.Baseline {
	case BaselineTop:
		ay = 1
	case BaselineMiddle:
		ay = 0.5
	}

	dc.Push()
	dc.Translate(t.X, t.Y)
	if t.Rotation != 0 {
		dc.Rotate(gg.Radians(t.Rotation))
	}
	dc.DrawStringAnchored(t.Content, t.DX, t.DY, ax, ay)
	dc.Pop()
	return nil
}

// setPaint selects the paint's color. Colors that cannot be read fall back to
// the default band color.
func setPaint(dc *gg.Context, p Paint) {
	c, err := parseColor(p.Color, p.Opacity)
	if err != nil {
		logger.Debug("unreadable color, using default", zap.String("color", p.Color), zap.Error(err))
		c, _ = parseHexColor(colors.purple, p.Opacity)
	}
	dc.SetColor(c)
}

// --- Image Encoding ---

// encodeImage writes img as PNG or JPEG.
func encodeImage(w io.Writer, img image.Image, format string, quality int) error {
	switch format {
	case "png":
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("failed to encode PNG: %w", err)
		}
	case "jpg", "jpeg":
		if quality <= 0 || quality > 100 {
			quality = defaultJPEGQuality
		}
		if err := jpeg.Encode(w, img, &jpeg.Options{Quality: quality}); err != nil {
			return fmt.Errorf("failed to encode JPEG: %w", err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return nil
}
