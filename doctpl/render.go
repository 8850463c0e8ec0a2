package doctpl

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/lvillar/gridpdf"
)

// Parse decodes a JSON template. Unknown fields are rejected so typos in
// templates surface early.
func Parse(jsonTemplate []byte) (*Document, error) {
	var doc Document
	dec := json.NewDecoder(bytes.NewReader(jsonTemplate))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("doctpl: parsing template: %w", err)
	}
	return &doc, nil
}

// Render parses a JSON template and writes the PDF for model to w. Options
// are applied after the ones the template sets.
func Render(w io.Writer, jsonTemplate []byte, model map[string]any, opts ...gridpdf.Option) error {
	doc, err := Parse(jsonTemplate)
	if err != nil {
		return err
	}
	return RenderDocument(w, doc, model, opts...)
}

// RenderDocument renders a Document struct to a PDF written to w.
func RenderDocument(w io.Writer, doc *Document, model map[string]any, opts ...gridpdf.Option) error {
	tpl, err := Compile(doc)
	if err != nil {
		return err
	}
	gen := gridpdf.New(tpl, append(tpl.Options(), opts...)...)
	if err := gen.BuildTo(w, model); err != nil {
		return fmt.Errorf("doctpl: %w", err)
	}
	return nil
}
