package mcp

import (
	"context"
	"encoding/json"

	"github.com/lvillar/gridpdf/doctpl"
)

// RegisterDefaultResources adds the template reference resources to s.
func RegisterDefaultResources(s *Server) {
	s.AddResource(Resource{
		URI:         "gridpdf://elements",
		Name:        "Template Elements",
		Description: "Reference of the element types and style fields a template may use",
		MIMEType:    "text/plain",
		Handler:     staticText("gridpdf://elements", "text/plain", elementsReference),
	})
	s.AddResource(Resource{
		URI:         "gridpdf://example",
		Name:        "Example Template",
		Description: "An invoice template with a paginated item grid",
		MIMEType:    "application/json",
		Handler:     handleExampleResource,
	})
}

func staticText(uri, mime, text string) ResourceHandler {
	return func(context.Context, string) ([]ResourceContent, error) {
		return []ResourceContent{{URI: uri, MIMEType: mime, Text: text}}, nil
	}
}

func handleExampleResource(_ context.Context, uri string) ([]ResourceContent, error) {
	// Round trip so the published example always parses.
	doc, err := doctpl.Parse([]byte(exampleTemplate))
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return []ResourceContent{{URI: uri, MIMEType: "application/json", Text: string(data)}}, nil
}

const elementsReference = `Pages are divided into a grid of rows x columns cells ("grid").
Every element occupies a rectangle of whole cells.

Containers:
  vstack, hstack   children stacked; style relativeHeight/relativeWidth
                   gives a child a fraction of the space, others share the rest
  layer            children all get the same bounds
  header           a band with "text" above exactly one child

Content:
  text, wrap       single line or wrapped "text"
  keyvalue         "pairs" of label/value, "labelWidth" fraction
  lines            "lines", empty lines skipped
  grid             "columns" of {header, field, format, weight, align};
                   rows come from data.items and flow over pages
  signature        "text" label, "caption" under the rule
  pageHeader       "text", "subtitle", "logo"
  pageFooter       "text", "pageFormat" (default "Page %d of %d")
  barcode          "text" data, "symbology": code128, code39, ean, qr,
                   datamatrix, pdf417
  image            "src"

Common fields: key, style, styles (part styles), showOn (all, first, last,
notFirst, notLast, middle), if (data field that must be non-empty),
watermark.

Texts may use {field}, {a.b}, {page} and {pages} placeholders.

Styles: name, basedOn, font {family, style, size}, color, background,
borderColor, border, margin, padding, cellPadding, align (e.g. "CM"),
paragraphAlign, lineSpacing, relativeHeight, relativeWidth, relativeWidths.
`

const exampleTemplate = `{
	"title": "Invoice",
	"grid": {"rows": 100, "columns": 60},
	"styles": [
		{"name": "Header", "relativeHeight": 0.1},
		{"name": "Box", "margin": {"top": 1, "right": 1, "bottom": 1, "left": 1}, "border": 0.2},
		{"name": "Band", "background": {"r": 41, "g": 128, "b": 185}, "color": {"r": 255, "g": 255, "b": 255}, "align": "LM"},
		{"name": "GridHeader", "font": {"style": "B"}, "background": {"r": 230, "g": 230, "b": 230}},
		{"name": "Footer", "relativeHeight": 0.04}
	],
	"itemsPerPage": {"first": 30, "middle": 60, "last": 40},
	"root": {"type": "vstack", "children": [
		{"type": "pageHeader", "style": "Header", "text": "Invoice {number}", "subtitle": "{date}"},
		{"type": "header", "style": "Box", "styles": ["Band"], "text": "Bill to", "showOn": "first", "children": [
			{"type": "lines", "lines": ["{customer.name}", "{customer.street}", "{customer.city}"]}
		]},
		{"type": "grid", "styles": ["GridHeader"], "columns": [
			{"header": "Item", "field": "name", "weight": 0.6},
			{"header": "Qty", "field": "qty", "format": "%d", "align": "R"},
			{"header": "Price", "field": "price", "format": "%.2f", "align": "R"}
		]},
		{"type": "keyvalue", "showOn": "last", "pairs": [{"label": "Total", "value": "{total}"}]},
		{"type": "pageFooter", "style": "Footer", "text": "ACME Corp"}
	]}
}`
