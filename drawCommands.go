package main

// --- Draw Command Model ---
//
// Layout code builds an ordered list of immutable commands; renderers
// (SVG, gg surface, browser) replay them. Coordinates are logical pixels.

const fontFamily = `"Instrument Sans", sans-serif`

// Paint is a fill or stroke color with an opacity in [0,1].
type Paint struct {
	Color   string
	Opacity float64
}

func solid(color string) Paint {
	return Paint{Color: color, Opacity: 1}
}

func translucent(color string, opacity float64) Paint {
	return Paint{Color: color, Opacity: opacity}
}

// FontSpec selects a face from the font book.
type FontSpec struct {
	Size float64
	Bold bool
}

// TextAlign is the horizontal anchor of a text run.
type TextAlign int

const (
	AlignLeft TextAlign = iota
	AlignCenter
	AlignRight
)

// TextBaseline is the vertical anchor of a text run.
type TextBaseline int

const (
	BaselineTop TextBaseline = iota
	BaselineMiddle
	BaselineBottom
)

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y, W, H float64
}

// DrawCommand is implemented by every command type below.
type DrawCommand interface {
	commandName() string
}

// ClearCmd overwrites the whole surface.
type ClearCmd struct {
	Fill Paint
}

// RectCmd fills a plain rectangle.
type RectCmd struct {
	Rect Rect
	Fill Paint
}

// RoundRectCmd fills (and optionally strokes) a rectangle with rounded corners.
// A zero Radius draws square corners.
type RoundRectCmd struct {
	Rect        Rect
	Radius      float64
	Fill        Paint
	Stroke      *Paint
	StrokeWidth float64
}

// LineCmd strokes a straight segment, dashed when Dash is non-empty.
type LineCmd struct {
	X1, Y1, X2, Y2 float64
	Stroke         Paint
	Width          float64
	Dash           []float64
}

// TextCmd draws one line of text. The frame is translated to (X, Y) and
// rotated by Rotation degrees; the run is then placed at (DX, DY).
type TextCmd struct {
	X, Y     float64
	DX, DY   float64
	Rotation float64
	Content  string
	Font     FontSpec
	Fill     Paint
	Align    TextAlign
	Baseline TextBaseline
}

func (ClearCmd) commandName() string     { return "clear" }
func (RectCmd) commandName() string      { return "rect" }
func (RoundRectCmd) commandName() string { return "roundrect" }
func (LineCmd) commandName() string      { return "line" }
func (TextCmd) commandName() string      { return "text" }

// DrawList is the complete output of one chart build.
type DrawList struct {
	Variant  Variant
	Title    string
	Surface  Surface
	Commands []DrawCommand
}

func (l *DrawList) add(cmds ...DrawCommand) {
	l.Commands = append(l.Commands, cmds...)
}
