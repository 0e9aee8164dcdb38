package main

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// TextMeasurer reports the advance width of a string in logical pixels.
type TextMeasurer interface {
	MeasureText(text string, spec FontSpec) float64
}

// --- Font Book ---

// fontBook measures text with the embedded Go fonts and hands out faces to
// the raster surface. Faces are not safe for concurrent use, so every render
// pass owns its own book.
type fontBook struct {
	regular *opentype.Font
	bold    *opentype.Font
	faces   map[FontSpec]font.Face
}

func newFontBook() (*fontBook, error) {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing regular font: %w", err)
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing bold font: %w", err)
	}
	return &fontBook{regular: regular, bold: bold, faces: make(map[FontSpec]font.Face)}, nil
}

// face returns (and memoises) the face for a spec.
func (b *fontBook) face(spec FontSpec) (font.Face, error) {
	if f, ok := b.faces[spec]; ok {
		return f, nil
	}
	src := b.regular
	if spec.Bold {
		src = b.bold
	}
	f, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    spec.Size,
		DPI:     72, // 1pt == 1 logical px
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("creating %.0fpx face: %w", spec.Size, err)
	}
	b.faces[spec] = f
	return f, nil
}

func (b *fontBook) MeasureText(text string, spec FontSpec) float64 {
	f, err := b.face(spec)
	if err != nil {
		return estimatedMeasurer{}.MeasureText(text, spec)
	}
	return float64(font.MeasureString(f, text)) / 64
}

// Close releases every face created by the book.
func (b *fontBook) Close() error {
	var firstErr error
	for spec, f := range b.faces {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(b.faces, spec)
	}
	return firstErr
}

// estimatedMeasurer is a font-free heuristic: the average glyph is roughly
// 0.6 of the font size wide.
type estimatedMeasurer struct{}

func (estimatedMeasurer) MeasureText(text string, spec FontSpec) float64 {
	if spec.Size <= 0 || text == "" {
		return 0
	}
	return float64(utf8.RuneCountInString(text)) * spec.Size * 0.6
}

// --- Word Wrapping ---

// wrapToWidth greedily packs words into lines narrower than maxWidth. A word
// that alone exceeds the budget gets its own line and overflows; it is never
// split or truncated. Words are separated by any run of whitespace, so tabs
// and newlines act as spaces and repeated spaces collapse to one.
func wrapToWidth(m TextMeasurer, text string, maxWidth float64, spec FontSpec) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{text}
	}
	lines := make([]string, 0, 2)
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if m.MeasureText(candidate, spec) < maxWidth {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = word
	}
	return append(lines, current)
}

// wrapByLength breaks text on whitespace runs, like wrapToWidth, so that no
// line exceeds maxChars characters, except for single words longer than that.
func wrapByLength(text string, maxChars int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{text}
	}
	lines := make([]string, 0, 2)
	current := words[0]
	for _, word := range words[1:] {
		if utf8.RuneCountInString(current)+utf8.RuneCountInString(word)+1 <= maxChars {
			current += " " + word
			continue
		}
		lines = append(lines, current)
		current = word
	}
	return append(lines, current)
}

// widestLine returns the largest measured width among lines.
func widestLine(m TextMeasurer, lines []string, spec FontSpec) float64 {
	widest := 0.0
	for _, line := range lines {
		if w := m.MeasureText(line, spec); w > widest {
			widest = w
		}
	}
	return widest
}
