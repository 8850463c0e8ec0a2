package doctpl

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/lvillar/gridpdf"
	"github.com/lvillar/gridpdf/canvas/canvastest"
	"github.com/lvillar/gridpdf/render"
	"github.com/lvillar/gridpdf/section"
)

const invoiceTemplate = `{
	"title": "Invoice",
	"author": "ACME Corp",
	"pageSize": "A4",
	"grid": {"rows": 60, "columns": 40},
	"styles": [
		{"name": "Header", "relativeHeight": 0.1},
		{"name": "Footer", "relativeHeight": 0.05},
		{"name": "Box", "margin": {"top": 1, "right": 1, "bottom": 1, "left": 1}, "border": 0.3},
		{"name": "Band", "basedOn": "Box", "background": {"r": 41, "g": 128, "b": 185}, "color": {"r": 255, "g": 255, "b": 255}, "align": "LM"},
		{"name": "GridHeader", "font": {"style": "B"}, "background": {"r": 230, "g": 230, "b": 230}}
	],
	"itemsPerPage": {"first": 20, "middle": 30, "last": 20},
	"root": {"type": "vstack", "children": [
		{"type": "pageHeader", "style": "Header", "text": "Invoice {number}", "subtitle": "{customer.name}"},
		{"type": "header", "text": "Bill to", "styles": ["Band"], "style": "Box", "showOn": "first", "children": [
			{"type": "lines", "lines": ["{customer.name}", "{customer.street}", "{customer.city}"]}
		]},
		{"type": "grid", "key": "lines", "styles": ["GridHeader"], "columns": [
			{"header": "Item", "field": "name", "weight": 0.5},
			{"header": "Qty", "field": "qty", "format": "%d", "align": "R"},
			{"header": "Price", "field": "price", "format": "%.2f", "align": "R"}
		]},
		{"type": "keyvalue", "showOn": "last", "pairs": [{"label": "Total", "value": "{total}"}]},
		{"type": "pageFooter", "style": "Footer", "text": "ACME Corp"}
	]}
}`

func invoiceModel(lines int) map[string]any {
	items := make([]any, lines)
	for i := range items {
		items[i] = map[string]any{"name": fmt.Sprintf("item-%02d", i), "qty": float64(i%3 + 1), "price": "4.5"}
	}
	return map[string]any{
		"number":   "2024-001",
		"customer": map[string]any{"name": "John Doe", "street": "Main St 1", "city": ""},
		"total":    "123.45",
		"items":    items,
	}
}

func TestRenderFromJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, []byte(invoiceTemplate), invoiceModel(10)); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("expected non-empty PDF output")
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatal("output does not start with %PDF header")
	}
}

func renderRecorded(t *testing.T, jsonTemplate string, model map[string]any) *canvastest.Document {
	t.Helper()
	doc, err := Parse([]byte(jsonTemplate))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	tpl, err := Compile(doc)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	out := canvastest.NewDocument(210, 297)
	if _, err := gridpdf.New(tpl).Render(out, model); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	return out
}

func TestTemplatePagination(t *testing.T) {
	out := renderRecorded(t, invoiceTemplate, invoiceModel(55))
	if len(out.Pages) != 3 {
		t.Fatalf("pages = %d, want 3", len(out.Pages))
	}
	for i, p := range out.Pages {
		texts := strings.Join(p.Texts(), "|")
		if !strings.Contains(texts, "Invoice 2024-001") {
			t.Errorf("page %d: header missing in %s", i+1, texts)
		}
		if want := fmt.Sprintf("Page %d of 3", i+1); !strings.Contains(texts, want) {
			t.Errorf("page %d: %q missing", i+1, want)
		}
		billTo := strings.Contains(texts, "BILL TO")
		if billTo != (i == 0) {
			t.Errorf("page %d: bill-to shown = %v", i+1, billTo)
		}
		total := strings.Contains(texts, "123.45")
		if total != (i == 2) {
			t.Errorf("page %d: total shown = %v", i+1, total)
		}
	}
	first := strings.Join(out.Pages[0].Texts(), "|")
	if !strings.Contains(first, "item-00|1|4.50") {
		t.Errorf("first row not formatted: %s", first)
	}
	if !strings.Contains(first, "John Doe|Main St 1|Item") {
		t.Errorf("empty address line not skipped: %s", first)
	}
}

func TestTemplateEmptyItems(t *testing.T) {
	out := renderRecorded(t, invoiceTemplate, map[string]any{"number": "1"})
	if len(out.Pages) != 1 {
		t.Fatalf("pages = %d, want 1", len(out.Pages))
	}
}

func TestConditionalField(t *testing.T) {
	tpl := `{"grid": {"rows": 10, "columns": 20}, "root": {"type": "layer", "children": [
		{"type": "text", "text": "Paid on {paidOn}", "if": "paidOn"},
		{"type": "text", "text": "Unpaid", "if": "unpaid"}
	]}}`
	out := renderRecorded(t, tpl, map[string]any{"paidOn": "2024-02-01", "unpaid": false})
	if got := strings.Join(out.Pages[0].Texts(), "|"); got != "Paid on 2024-02-01" {
		t.Errorf("texts = %s", got)
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name string
		json string
		want error
	}{
		{"unknown element", `{"root": {"type": "table"}}`, ErrUnknownElement},
		{"unknown style", `{"root": {"type": "text", "style": "Nope"}}`, ErrUnknownStyle},
		{"unknown base style", `{"styles": [{"name": "A", "basedOn": "B"}], "root": {"type": "text"}}`, ErrUnknownStyle},
		{"bad align", `{"styles": [{"name": "A", "align": "X"}], "root": {"type": "text"}}`, ErrInvalidValue},
		{"bad showOn", `{"root": {"type": "text", "showOn": "sometimes"}}`, ErrInvalidValue},
		{"header without child", `{"root": {"type": "header", "text": "x"}}`, section.ErrChildCount},
		{"header with two children", `{"root": {"type": "header", "children": [{"type": "text"}, {"type": "text"}]}}`, section.ErrChildCount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]byte(tt.json))
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if _, err := Compile(doc); !errors.Is(err, tt.want) {
				t.Errorf("Compile err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseRejectsUnknownFields(t *testing.T) {
	if _, err := Parse([]byte(`{"root": {"type": "text", "txt": "typo"}}`)); err == nil {
		t.Error("expected error for unknown field")
	}
}

func TestStyleInheritance(t *testing.T) {
	doc, err := Parse([]byte(`{
		"font": {"family": "Times", "size": 12},
		"styles": [
			{"name": "Base", "padding": {"top": 1, "right": 2, "bottom": 1, "left": 2}, "font": {"style": "B"}},
			{"name": "Child", "basedOn": "Base", "font": {"size": 8}, "align": "RB"}
		],
		"root": {"type": "text"}
	}`))
	if err != nil {
		t.Fatal(err)
	}
	tpl, err := Compile(doc)
	if err != nil {
		t.Fatal(err)
	}
	styles, _ := tpl.Styles()
	r := styles.Get("Child").Resolve(nil, nil)
	if r.Font.Family != "Times" || r.Font.Style != "B" || r.Font.Size != 8 {
		t.Errorf("font = %+v", r.Font)
	}
	if r.Padding.Left != 2 || r.Padding.Top != 1 {
		t.Errorf("padding = %+v", r.Padding)
	}
	if r.TextAlign.H != 2 || r.TextAlign.V != 2 {
		t.Errorf("align = %+v", r.TextAlign)
	}
	if got := strings.Join(tpl.StyleNames(), ","); got != "Base,Child,Default" {
		t.Errorf("style names = %s", got)
	}
}

func TestExpand(t *testing.T) {
	ctx := render.NewContext(1, 4, nil, nil, nil, 0)
	model := map[string]any{"a": map[string]any{"b": 3.5}, "s": "x"}
	tests := map[string]string{
		"plain":               "plain",
		"{page}/{pages}":      "2/4",
		"{a.b} {s} {missing}": "3.5 x ",
		"open { brace":        "open { brace",
	}
	for in, want := range tests {
		if got := text(in).Eval(ctx, model); got != want {
			t.Errorf("text(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		format string
		v      any
		want   string
	}{
		{"", "abc", "abc"},
		{"%.2f", 3.14159, "3.14"},
		{"%.2f", "2.5", "2.50"},
		{"%d", 4.0, "4"},
		{"%05d", "42", "00042"},
		{"%.1f%%", 12.34, "12.3%"},
		{"%.2f", "n/a", "n/a"},
		{"[%s]", "x", "[x]"},
		{"%v", nil, ""},
	}
	for _, tt := range tests {
		if got := formatValue(tt.format, tt.v); got != tt.want {
			t.Errorf("formatValue(%q, %v) = %q, want %q", tt.format, tt.v, got, tt.want)
		}
	}
}
