package doctpl

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/lvillar/gridpdf/render"
)

// text binds a template string. Strings without placeholders are constant.
func text(s string) render.Text {
	if !strings.Contains(s, "{") {
		return render.Const(s)
	}
	return render.Func(func(ctx *render.Context, model any) string {
		return expand(s, ctx, model)
	})
}

// expand replaces {page}, {pages} and {field} placeholders. Unknown fields
// expand to the empty string; unbalanced braces are kept.
func expand(s string, ctx *render.Context, model any) string {
	var b strings.Builder
	for {
		open := strings.IndexByte(s, '{')
		if open < 0 {
			break
		}
		end := strings.IndexByte(s[open:], '}')
		if end < 0 {
			break
		}
		b.WriteString(s[:open])
		name := strings.TrimSpace(s[open+1 : open+end])
		switch name {
		case "page":
			b.WriteString(strconv.Itoa(ctx.PageNumber()))
		case "pages":
			b.WriteString(strconv.Itoa(ctx.PageCount))
		default:
			if v, ok := lookup(model, name); ok && v != nil {
				b.WriteString(fmt.Sprint(v))
			}
		}
		s = s[open+end+1:]
	}
	b.WriteString(s)
	return b.String()
}

// lookup resolves a dotted path in nested maps.
func lookup(v any, path string) (any, bool) {
	if path == "" {
		return nil, false
	}
	for _, part := range strings.Split(path, ".") {
		m, ok := v.(map[string]any)
		if !ok {
			return nil, false
		}
		if v, ok = m[part]; !ok {
			return nil, false
		}
	}
	return v, true
}

// items returns the "items" list of the model.
func items(model any) []any {
	v, _ := lookup(model, "items")
	switch list := v.(type) {
	case []any:
		return list
	case []map[string]any:
		out := make([]any, len(list))
		for i, m := range list {
			out[i] = m
		}
		return out
	}
	return nil
}

func isEmpty(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case bool:
		return !x
	case []any:
		return len(x) == 0
	case map[string]any:
		return len(x) == 0
	}
	return false
}

// formatValue formats v with format, converting numeric strings for
// numeric verbs so spreadsheet and JSON data format alike.
func formatValue(format string, v any) string {
	if v == nil {
		return ""
	}
	if format == "" {
		return fmt.Sprint(v)
	}
	switch verb(format) {
	case 'd':
		if f, ok := number(v); ok {
			return fmt.Sprintf(format, int64(f))
		}
	case 'f', 'F', 'e', 'E', 'g', 'G':
		if f, ok := number(v); ok {
			return fmt.Sprintf(format, f)
		}
	default:
		return fmt.Sprintf(format, v)
	}
	return fmt.Sprint(v)
}

// verb returns the first formatting verb of format, or 0.
func verb(format string) byte {
	for i := 0; i < len(format); i++ {
		if format[i] != '%' {
			continue
		}
		j := i + 1
		for j < len(format) && strings.IndexByte("+-# 0123456789.", format[j]) >= 0 {
			j++
		}
		if j >= len(format) {
			return 0
		}
		if format[j] == '%' {
			i = j
			continue
		}
		return format[j]
	}
	return 0
}

func number(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		return f, err == nil
	}
	return 0, false
}
