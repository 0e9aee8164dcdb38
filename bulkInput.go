package main

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// bulkEntryPattern matches "Name123" pairs: a run of non-numeric characters
// followed by digits, dots and thousands commas.
var (
	bulkEntryPattern = regexp.MustCompile(`([^\d.,]+)([\d.,]+)`)
	leadingNumber    = regexp.MustCompile(`^\d*\.?\d*`)
)

// parseBulkEntries extracts contributions from free text such as
// "Bedroom 12.5\nOffice 1,200". Entries whose number cannot be read are
// skipped; text with no usable entry yields ErrNoBulkEntries.
func parseBulkEntries(text string) ([]Contribution, error) {
	matches := bulkEntryPattern.FindAllStringSubmatch(text, -1)
	entries := make([]Contribution, 0, len(matches))
	for _, m := range matches {
		name := strings.TrimSpace(m[1])
		value, err := parseBulkNumber(m[2])
		if err != nil {
			logger.Debug("skipping bulk entry", zap.String("name", name), zap.String("value", m[2]), zap.Error(err))
			continue
		}
		entries = append(entries, Contribution{Name: name, Value: value})
	}
	if len(entries) == 0 {
		return nil, ErrNoBulkEntries
	}
	return entries, nil
}

// parseBulkNumber drops thousands commas and reads the longest leading
// decimal, so "1.2.3" reads as 1.2.
func parseBulkNumber(s string) (float64, error) {
	digits := leadingNumber.FindString(strings.ReplaceAll(s, ",", ""))
	if digits == "" || digits == "." {
		return 0, fmt.Errorf("no digits in %q", s)
	}
	v, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %q: %w", s, err)
	}
	if math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is out of range", s)
	}
	return v, nil
}

// formatBulkEntries renders contributions back into the bulk text form, one
// per line.
func formatBulkEntries(entries []Contribution) string {
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = e.Name + strconv.FormatFloat(e.Value, 'f', -1, 64)
	}
	return strings.Join(lines, "\n")
}
