package main

import (
	"encoding/xml"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSVGIsWellFormed(t *testing.T) {
	chart, err := BuildChart(defaultChartState().chartInput(), VariantFull, defaultSurface, nil)
	require.NoError(t, err)

	doc, err := GenerateSVG(chart.DrawList)
	require.NoError(t, err)

	assert.Contains(t, doc, `viewBox="0 0 1000 500"`)
	assert.Contains(t, doc, `stroke-dasharray="5 3"`)
	assert.Contains(t, doc, `rotate(45)`)

	dec := xml.NewDecoder(strings.NewReader(doc))
	for {
		_, err := dec.Token()
		if err != nil {
			assert.ErrorIs(t, err, io.EOF)
			break
		}
	}
}

func TestGenerateSVGEscapesText(t *testing.T) {
	list := &DrawList{
		Surface: defaultSurface,
		Commands: []DrawCommand{
			TextCmd{X: 10, Y: 20, Content: `Fridge & "Router" <2.4GHz>`, Font: FontSpec{Size: 12}, Fill: solid(colors.text)},
		},
	}
	doc, err := GenerateSVG(list)
	require.NoError(t, err)
	assert.NotContains(t, doc, "<2.4GHz>")
	assert.Contains(t, doc, "&amp;")
}

func TestGenerateSVGEscapesColors(t *testing.T) {
	in := sampleInput()
	in.Levels[0].Color = `red" onload="alert(1)`
	chart, err := BuildChart(in, VariantFull, defaultSurface, nil)
	require.NoError(t, err)
	doc, err := GenerateSVG(chart.DrawList)
	require.NoError(t, err)

	assert.NotContains(t, doc, `onload="alert(1)"`)
	assert.Contains(t, doc, `stroke="red&quot; onload=&quot;alert(1)"`)

	dec := xml.NewDecoder(strings.NewReader(doc))
	for {
		tok, err := dec.Token()
		if err != nil {
			assert.ErrorIs(t, err, io.EOF)
			break
		}
		if el, ok := tok.(xml.StartElement); ok {
			for _, attr := range el.Attr {
				assert.NotEqual(t, "onload", attr.Name.Local)
			}
		}
	}
}

func TestGenerateSVGRejectsNil(t *testing.T) {
	_, err := GenerateSVG(nil)
	assert.Error(t, err)
}

func TestRectPaths(t *testing.T) {
	assert.Equal(t, "M1 2 H11 V22 H1 Z", rectPath(Rect{X: 1, Y: 2, W: 10, H: 20}))
	assert.Equal(t,
		"M4 0 H6 Q10 0 10 4 V16 Q10 20 6 20 H4 Q0 20 0 16 V4 Q0 0 4 0 Z",
		roundRectPath(Rect{W: 10, H: 20}, 4))
	// A radius larger than half the short side is clamped.
	assert.Equal(t,
		"M2 0 H2 Q4 0 4 2 V18 Q4 20 2 20 H2 Q0 20 0 18 V2 Q0 0 2 0 Z",
		roundRectPath(Rect{W: 4, H: 20}, 4))
	assert.Equal(t, rectPath(Rect{W: 4, H: 20}), roundRectPath(Rect{W: 4, H: 20}, 0))
}

func TestSVGTextAttributes(t *testing.T) {
	list := &DrawList{
		Surface: defaultSurface,
		Commands: []DrawCommand{TextCmd{
			X: 10, Y: 20, DY: 14.4, Rotation: 45,
			Content:  "label",
			Font:     FontSpec{Size: 12, Bold: true},
			Fill:     translucent(colors.text, 0.5),
			Align:    AlignRight,
			Baseline: BaselineTop,
		}},
	}
	doc, err := GenerateSVG(list)
	require.NoError(t, err)

	assert.Contains(t, doc, `transform="translate(10 20) rotate(45) translate(0 14.4)"`)
	assert.Contains(t, doc, `text-anchor="end"`)
	assert.Contains(t, doc, `dominant-baseline="text-before-edge"`)
	assert.Contains(t, doc, `font-weight="bold"`)
	assert.Contains(t, doc, `fill-opacity="0.5"`)
}
