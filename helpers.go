package main

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// --- Helper Functions for Overrides ---

// Helper to get value from pointer or default
func getString(ptr *string, def string) string {
	if ptr != nil {
		return *ptr
	}
	return def
}
func getInt(ptr *int, def int) int {
	if ptr != nil {
		return *ptr
	}
	return def
}
func getFloat64(ptr *float64, def float64) float64 {
	if ptr != nil {
		return *ptr
	}
	return def
}
func getBool(ptr *bool, def bool) bool {
	if ptr != nil {
		return *ptr
	}
	return def
}

// --- Number Formatting ---

// Labels always group with the English separators so output does not depend
// on the host locale.
var numberPrinter = message.NewPrinter(language.English)

// formatValue renders a bar value with thousands separators and exactly
// decimals fractional digits.
func formatValue(v float64, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	// Halves round away from zero, not to even.
	p := math.Pow(10, float64(decimals))
	if rounded := math.Round(v*p) / p; !math.IsInf(rounded, 0) {
		v = rounded
	}
	return numberPrinter.Sprint(number.Decimal(v, number.Scale(decimals)))
}

// formatBandValue groups values of 1000 and above (up to three decimals) and
// prints smaller values in their shortest form.
func formatBandValue(v float64) string {
	if v >= 1000 {
		return numberPrinter.Sprint(number.Decimal(v, number.MaxFractionDigits(3)))
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatTickLabel is the compact y-axis format: 1.5k, 5.0e-3, 12.5.
func formatTickLabel(v float64) string {
	switch {
	case v >= 1000:
		return fmt.Sprintf("%.1fk", v/1000)
	case v > 0 && v < 0.01:
		mantissa, exponent, _ := strings.Cut(strconv.FormatFloat(v, 'e', 1, 64), "e")
		exp, err := strconv.Atoi(exponent)
		if err != nil {
			return mantissa
		}
		return fmt.Sprintf("%se%d", mantissa, exp)
	default:
		return fmt.Sprintf("%.1f", v)
	}
}

// --- Colors ---

// parseColor reads a CSS color keyword such as "red", or a hex color.
func parseColor(s string, opacity float64) (color.NRGBA, error) {
	if named, ok := colornames.Map[strings.ToLower(strings.TrimSpace(s))]; ok {
		c := color.NRGBA(named)
		c.A = uint8(float64(c.A)*min(max(opacity, 0), 1) + 0.5)
		return c, nil
	}
	return parseHexColor(s, opacity)
}

// parseHexColor accepts #rgb, #rrggbb and #rrggbbaa. The opacity multiplies
// the alpha channel.
func parseHexColor(s string, opacity float64) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if hex == "" || strings.Trim(hex, "0123456789abcdefABCDEF") != "" {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	opacity = min(max(opacity, 0), 1)
	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(float64(uint8(v))*opacity + 0.5),
	}, nil
}

// --- SVG Attribute Helpers ---

// getStrokeDashArray renders a dash pattern as an SVG attribute, or "" when solid.
func getStrokeDashArray(dash []float64) string {
	if len(dash) == 0 {
		return ""
	}
	parts := make([]string, len(dash))
	for i, d := range dash {
		parts[i] = svgNumber(d)
	}
	return fmt.Sprintf(`stroke-dasharray="%s"`, strings.Join(parts, " "))
}

// svgNumber prints a coordinate with at most two decimals and no trailing zeros.
func svgNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	if s == "-0" || s == "" {
		return "0"
	}
	return s
}

// --- XML/HTML Escaping ---
func escapeXML(s string) string {
	var buf strings.Builder
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&#39;") // &apos; is not valid in HTML4
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}

var escapeHTML = escapeXML
