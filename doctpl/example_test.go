package doctpl_test

import (
	"bytes"
	"fmt"

	"github.com/lvillar/gridpdf/doctpl"
)

func ExampleRender() {
	template := `{
		"title": "Invoice #1234",
		"author": "Acme Corp",
		"pageSize": "Letter",
		"grid": {"rows": 80, "columns": 50},
		"font": {"family": "Helvetica", "size": 11},
		"styles": [
			{"name": "Title", "font": {"size": 18, "style": "B"}, "relativeHeight": 0.1, "align": "CM"},
			{"name": "Head", "font": {"style": "B"}, "background": {"r": 220, "g": 220, "b": 220}}
		],
		"root": {"type": "vstack", "children": [
			{"type": "text", "style": "Title", "text": "Invoice #{number}"},
			{"type": "keyvalue", "pairs": [
				{"label": "Date", "value": "{date}"},
				{"label": "Bill to", "value": "{customer}"}
			]},
			{"type": "grid", "styles": ["Head"], "columns": [
				{"header": "Item", "field": "name", "weight": 0.6},
				{"header": "Qty", "field": "qty", "format": "%d", "align": "C"},
				{"header": "Price", "field": "price", "format": "%.2f", "align": "R"}
			]},
			{"type": "pageFooter", "text": "Acme Corp"}
		]}
	}`

	model := map[string]any{
		"number":   "1234",
		"date":     "2024-01-15",
		"customer": "John Doe",
		"items": []any{
			map[string]any{"name": "Widget A", "qty": 2, "price": 10.5},
			map[string]any{"name": "Widget B", "qty": 1, "price": 25.0},
		},
	}

	var buf bytes.Buffer
	if err := doctpl.Render(&buf, []byte(template), model); err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
	// Output: true
}
