package mcp

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/lvillar/gridpdf"
	"github.com/lvillar/gridpdf/doctpl"
	"github.com/lvillar/gridpdf/render"
)

// ErrMissingArgument is returned when a required tool argument is absent.
var ErrMissingArgument = errors.New("mcp: missing argument")

// RegisterDefaultTools adds the template tools to s.
func RegisterDefaultTools(s *Server) {
	s.AddTool(renderPDFTool())
	s.AddTool(checkTemplateTool())
	s.AddTool(pageCountTool())
}

var templateSchema = map[string]any{
	"description": "Grid layout template (see gridpdf://elements), as a JSON object or string",
}

var dataSchema = map[string]any{
	"type":        "object",
	"description": "Data model. {field} placeholders read from it; the grid element reads its rows from \"items\".",
}

var itemsXLSXSchema = map[string]any{
	"type":        "string",
	"description": "Optional .xlsx file whose rows (first row = field names) replace data.items",
}

func renderPDFTool() Tool {
	return Tool{
		Name:        "render_pdf",
		Description: "Render a grid layout template with a data model into a PDF. Returns the PDF as base64 unless outputPath is set.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"template":  templateSchema,
				"data":      dataSchema,
				"itemsXlsx": itemsXLSXSchema,
				"sheet":     map[string]any{"type": "string", "description": "Worksheet of itemsXlsx (default: first)"},
				"debug": map[string]any{
					"type":        "string",
					"description": "Comma separated debug overlays: grid, layout, hide, fonts, text",
				},
				"outputPath": map[string]any{
					"type":        "string",
					"description": "Optional file path to save the PDF",
				},
			},
			"required": []string{"template"},
		},
		Handler: handleRenderPDF,
	}
}

func handleRenderPDF(_ context.Context, args map[string]any) (ToolResult, error) {
	tpl, err := compileArg(args)
	if err != nil {
		return ToolResult{}, err
	}
	model, err := modelArg(args)
	if err != nil {
		return ToolResult{}, err
	}

	opts := tpl.Options()
	if s, ok := args["debug"].(string); ok && s != "" {
		mode, unknown := render.ParseDebugMode(s)
		if len(unknown) > 0 {
			return ToolResult{}, fmt.Errorf("unknown debug flags: %s", strings.Join(unknown, ", "))
		}
		opts = append(opts, gridpdf.WithDebug(mode))
	}

	var buf bytes.Buffer
	if err := gridpdf.New(tpl, opts...).BuildTo(&buf, model); err != nil {
		return ToolResult{}, fmt.Errorf("rendering PDF: %w", err)
	}
	pages, _ := tpl.PageCount(model)

	if outputPath, ok := args["outputPath"].(string); ok && outputPath != "" {
		if err := os.WriteFile(outputPath, buf.Bytes(), 0644); err != nil {
			return ToolResult{}, fmt.Errorf("writing file: %w", err)
		}
		return TextResult("PDF created: %s (%d pages, %d bytes)", outputPath, pages, buf.Len()), nil
	}
	return ToolResult{Content: []ContentBlock{
		{Type: "text", Text: fmt.Sprintf("PDF created (%d pages, %d bytes)", pages, buf.Len())},
		{Type: "resource", MIMEType: "application/pdf", Data: base64.StdEncoding.EncodeToString(buf.Bytes())},
	}}, nil
}

func checkTemplateTool() Tool {
	return Tool{
		Name:        "check_template",
		Description: "Validate a grid layout template and list the styles it defines.",
		InputSchema: map[string]any{
			"type":       "object",
			"properties": map[string]any{"template": templateSchema},
			"required":   []string{"template"},
		},
		Handler: handleCheckTemplate,
	}
}

func handleCheckTemplate(_ context.Context, args map[string]any) (ToolResult, error) {
	tpl, err := compileArg(args)
	if err != nil {
		return ToolResult{}, err
	}
	rows, cols := tpl.GridSize()
	return TextResult("Template OK: grid %dx%d, styles: %s", rows, cols, strings.Join(tpl.StyleNames(), ", ")), nil
}

func pageCountTool() Tool {
	return Tool{
		Name:        "page_count",
		Description: "Report how many pages a template produces for a data model without rendering it.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"template":  templateSchema,
				"data":      dataSchema,
				"itemsXlsx": itemsXLSXSchema,
				"sheet":     map[string]any{"type": "string"},
			},
			"required": []string{"template"},
		},
		Handler: handlePageCount,
	}
}

func handlePageCount(_ context.Context, args map[string]any) (ToolResult, error) {
	tpl, err := compileArg(args)
	if err != nil {
		return ToolResult{}, err
	}
	model, err := modelArg(args)
	if err != nil {
		return ToolResult{}, err
	}
	n, err := tpl.PageCount(model)
	if err != nil {
		return ToolResult{}, err
	}
	return TextResult("%d", n), nil
}

// compileArg parses and compiles the "template" argument, which may be an
// object or a JSON string.
func compileArg(args map[string]any) (*doctpl.Template, error) {
	raw, ok := args["template"]
	if !ok {
		return nil, fmt.Errorf("%w: template", ErrMissingArgument)
	}
	var data []byte
	if s, ok := raw.(string); ok {
		data = []byte(s)
	} else {
		var err error
		if data, err = json.Marshal(raw); err != nil {
			return nil, fmt.Errorf("encoding template: %w", err)
		}
	}
	doc, err := doctpl.Parse(data)
	if err != nil {
		return nil, err
	}
	return doctpl.Compile(doc)
}

// modelArg returns the "data" argument, with items loaded from itemsXlsx
// when given.
func modelArg(args map[string]any) (map[string]any, error) {
	model := map[string]any{}
	if d, ok := args["data"].(map[string]any); ok {
		for k, v := range d {
			model[k] = v
		}
	}
	path, _ := args["itemsXlsx"].(string)
	if path == "" {
		return model, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	sheet, _ := args["sheet"].(string)
	items, err := doctpl.ItemsFromXLSX(f, sheet)
	if err != nil {
		return nil, err
	}
	model["items"] = items
	return model, nil
}
