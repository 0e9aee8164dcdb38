package main

import (
	"bytes"
	"fmt"
	"strings"

	svg "github.com/ajstarks/svgo"
)

// --- SVG Renderer ---
//
// Shapes are written as paths so fractional coordinates survive; text runs are
// placed through a transform group because svgo positions text on integers.

// GenerateSVG serialises a draw list as a standalone SVG document sized to the
// list's logical surface.
func GenerateSVG(list *DrawList) (string, error) {
	if list == nil {
		return "", fmt.Errorf("no draw list to render")
	}
	var buf bytes.Buffer
	canvas := svg.New(&buf)

	w, h := int(list.Surface.Width+0.5), int(list.Surface.Height+0.5)
	canvas.Start(w, h,
		fmt.Sprintf(`viewBox="0 0 %s %s"`, svgNumber(list.Surface.Width), svgNumber(list.Surface.Height)),
		fmt.Sprintf(`font-family='%s'`, fontFamily),
	)
	if list.Title != "" {
		canvas.Title(list.Title)
	}

	for _, cmd := range list.Commands {
		if err := drawSVGCommand(canvas, list.Surface, cmd); err != nil {
			return "", fmt.Errorf("rendering %s command: %w", cmd.commandName(), err)
		}
	}

	canvas.End()
	return buf.String(), nil
}

func drawSVGCommand(canvas *svg.SVG, surface Surface, cmd DrawCommand) error {
	switch c := cmd.(type) {
	case ClearCmd:
		canvas.Path(rectPath(Rect{W: surface.Width, H: surface.Height}), fillAttrs(c.Fill)...)
	case RectCmd:
		canvas.Path(rectPath(c.Rect), fillAttrs(c.Fill)...)
	case RoundRectCmd:
		attrs := fillAttrs(c.Fill)
		if c.Stroke != nil {
			attrs = append(attrs, strokeAttrs(*c.Stroke, c.StrokeWidth, nil)...)
		}
		canvas.Path(roundRectPath(c.Rect, c.Radius), attrs...)
	case LineCmd:
		d := fmt.Sprintf("M%s %s L%s %s", svgNumber(c.X1), svgNumber(c.Y1), svgNumber(c.X2), svgNumber(c.Y2))
		canvas.Path(d, append([]string{`fill="none"`}, strokeAttrs(c.Stroke, c.Width, c.Dash)...)...)
	case TextCmd:
		drawSVGText(canvas, c)
	default:
		return fmt.Errorf("unknown draw command %T", cmd)
	}
	return nil
}

// drawSVGText mirrors the canvas text model: translate to the anchor, rotate,
// then offset the run.
func drawSVGText(canvas *svg.SVG, t TextCmd) {
	transform := fmt.Sprintf("translate(%s %s)", svgNumber(t.X), svgNumber(t.Y))
	if t.Rotation != 0 {
		transform += fmt.Sprintf(" rotate(%s)", svgNumber(t.Rotation))
	}
	if t.DX != 0 || t.DY != 0 {
		transform += fmt.Sprintf(" translate(%s %s)", svgNumber(t.DX), svgNumber(t.DY))
	}

	attrs := []string{
		fmt.Sprintf(`font-size="%s"`, svgNumber(t.Font.Size)),
		fmt.Sprintf(`text-anchor="%s"`, svgTextAnchor(t.Align)),
		fmt.Sprintf(`dominant-baseline="%s"`, svgBaseline(t.Baseline)),
	}
	if t.Font.Bold {
		attrs = append(attrs, `font-weight="bold"`)
	}
	attrs = append(attrs, fillAttrs(t.Fill)...)

	canvas.Gtransform(transform)
	canvas.Text(0, 0, t.Content, attrs...)
	canvas.Gend()
}

// --- Path Builders ---

func rectPath(r Rect) string {
	return fmt.Sprintf("M%s %s H%s V%s H%s Z",
		svgNumber(r.X), svgNumber(r.Y),
		svgNumber(r.X+r.W), svgNumber(r.Y+r.H),
		svgNumber(r.X))
}

// roundRectPath draws quadratic corners. The radius is clamped to half the
// shorter side so the curve never folds back on itself.
func roundRectPath(r Rect, radius float64) string {
	radius = min(radius, r.W/2, r.H/2)
	if radius <= 0 {
		return rectPath(r)
	}
	x0, y0, x1, y1 := r.X, r.Y, r.X+r.W, r.Y+r.H
	n := svgNumber
	var b strings.Builder
	fmt.Fprintf(&b, "M%s %s H%s ", n(x0+radius), n(y0), n(x1-radius))
	fmt.Fprintf(&b, "Q%s %s %s %s V%s ", n(x1), n(y0), n(x1), n(y0+radius), n(y1-radius))
	fmt.Fprintf(&b, "Q%s %s %s %s H%s ", n(x1), n(y1), n(x1-radius), n(y1), n(x0+radius))
	fmt.Fprintf(&b, "Q%s %s %s %s V%s ", n(x0), n(y1), n(x0), n(y1-radius), n(y0+radius))
	fmt.Fprintf(&b, "Q%s %s %s %s Z", n(x0), n(y0), n(x0+radius), n(y0))
	return b.String()
}

// --- Attribute Helpers ---

func fillAttrs(p Paint) []string {
	attrs := []string{fmt.Sprintf(`fill="%s"`, escapeXML(p.Color))}
	if p.Opacity < 1 {
		attrs = append(attrs, fmt.Sprintf(`fill-opacity="%s"`, svgNumber(p.Opacity)))
	}
	return attrs
}

func strokeAttrs(p Paint, width float64, dash []float64) []string {
	if width <= 0 {
		width = 1
	}
	attrs := []string{
		fmt.Sprintf(`stroke="%s"`, escapeXML(p.Color)),
		fmt.Sprintf(`stroke-width="%s"`, svgNumber(width)),
	}
	if p.Opacity < 1 {
		attrs = append(attrs, fmt.Sprintf(`stroke-opacity="%s"`, svgNumber(p.Opacity)))
	}
	if da := getStrokeDashArray(dash); da != "" {
		attrs = append(attrs, da)
	}
	return attrs
}

func svgTextAnchor(a TextAlign) string {
	switch a {
	case AlignCenter:
		return "middle"
	case AlignRight:
		return "end"
	default:
		return "start"
	}
}

func svgBaseline(b TextBaseline) string {
	switch b {
	case BaselineTop:
		return "text-before-edge"
	case BaselineBottom:
		return "text-after-edge"
	default:
		return "middle"
	}
}
