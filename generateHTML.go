// generateHTML.go
package main

import (
	"fmt"
	"strings"
)

// generateHTML builds one page that stacks the given charts inline, in the
// order they are passed.
func generateHTML(pageTitle string, lists []*DrawList) (string, error) {
	if len(lists) == 0 {
		return "", fmt.Errorf("no charts to place on the page")
	}
	var htmlBuilder strings.Builder

	// --- Basic HTML Structure ---
	htmlBuilder.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&htmlBuilder, "<title>%s</title>\n", escapeHTML(pageTitle))
	htmlBuilder.WriteString("<style>\n")
	fmt.Fprintf(&htmlBuilder, "body { margin: 0; padding: 40px; background: %s; color: %s; font-family: %s; }\n",
		colors.background, colors.text, escapeCSS(fontFamily))
	fmt.Fprintf(&htmlBuilder, "h1 { font-size: 24px; margin: 0 0 24px; }\n")
	fmt.Fprintf(&htmlBuilder, ".chart { margin: 0 auto 32px; background: %s; border: 1px solid %s; border-radius: 8px; padding: 16px; }\n",
		colors.paper, colors.border)
	htmlBuilder.WriteString(".chart svg { display: block; max-width: 100%; height: auto; }\n")
	htmlBuilder.WriteString("</style>\n</head>\n<body>\n")
	fmt.Fprintf(&htmlBuilder, "<h1>%s</h1>\n", escapeHTML(pageTitle))

	// --- Charts ---
	for _, list := range lists {
		svgString, err := GenerateSVG(list)
		if err != nil {
			return "", fmt.Errorf("chart %s: %w", list.Variant, err)
		}
		fmt.Fprintf(&htmlBuilder, "<div class=\"chart\" id=\"chart-%s\" style=\"width: %.0fpx;\">\n",
			list.Variant, list.Surface.Width)
		htmlBuilder.WriteString(inlineSVG(svgString))
		htmlBuilder.WriteString("\n</div>\n")
	}

	htmlBuilder.WriteString("</body>\n</html>\n")
	return htmlBuilder.String(), nil
}

// inlineSVG drops the XML prolog so the document can be embedded in HTML.
func inlineSVG(doc string) string {
	if i := strings.Index(doc, "<svg"); i >= 0 {
		return doc[i:]
	}
	return doc
}

// Simple CSS Escaping (basic)
func escapeCSS(s string) string {
	s = strings.ReplaceAll(s, `'`, `\'`)
	s = strings.ReplaceAll(s, `<`, `\3c `)
	return s
}
