package site

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/pamout/devlog/core/agg"
	"github.com/pamout/devlog/schema"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Raw HTML inside documents is dropped by goldmark's default renderer.
var markdownRenderer = goldmark.New(goldmark.WithExtensions(extension.GFM))

var numberPrinter = message.NewPrinter(language.English)

// markdownHTML converts a document body to HTML. Conversion failures fall back
// to the escaped source inside a pre block.
func markdownHTML(src string) template.HTML {
	var buf bytes.Buffer
	if err := markdownRenderer.Convert([]byte(src), &buf); err != nil {
		return template.HTML("<pre>" + template.HTMLEscapeString(src) + "</pre>")
	}
	return template.HTML(buf.String())
}

func hourLabel(h int) string {
	return fmt.Sprintf("%02d:00", h)
}

func formatNumber(n int) string {
	return numberPrinter.Sprintf("%d", n)
}

func formatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// cssWidth renders a bar width as a CSS percentage.
func cssWidth(v float64) template.CSS {
	return template.CSS(fmt.Sprintf("%.1f%%", v))
}

// cssColor passes a color from the built-in tables through as CSS.
func cssColor(c string) template.CSS {
	return template.CSS(c)
}

func sizeLabel(b schema.SizeBucket) string {
	switch b {
	case schema.SmallSize:
		return "Small"
	case schema.MediumSize:
		return "Medium"
	case schema.LargeSize:
		return "Large"
	case schema.XLargeSize:
		return "X-Large"
	}
	return string(b)
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"typeInfo":    schema.LookupType,
		"formatDate":  agg.FormatDate,
		"cardDetails": agg.CardDetails,
		"markdown":    markdownHTML,
		"hour":        hourLabel,
		"number":      formatNumber,
		"pct":         formatPercent,
		"width":       cssWidth,
		"color":       cssColor,
		"sizeLabel":   sizeLabel,
		"valueOr": func(v, fallback string) string {
			if v == "" {
				return fallback
			}
			return v
		},
		"add": func(a, b int) int { return a + b },
	}
}
