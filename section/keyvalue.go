package section

import (
	"math"

	"github.com/lvillar/gridpdf/grid"
	"github.com/lvillar/gridpdf/render"
)

// Pair is one labeled value of a KeyValue section.
type Pair struct {
	Label render.Text
	Value render.Text
}

// KV returns a Pair with a constant label.
func KV(label string, value render.Text) Pair {
	return Pair{Label: render.Const(label), Value: value}
}

// KeyValue lists label/value pairs top to bottom. Labels take LabelWidth of
// the columns, values reflow in the rest; each pair is as tall as its
// taller half. Style 1 is the labels, style 2 the values.
type KeyValue struct {
	Base
	Pairs      []Pair
	LabelWidth float64 // fraction of the columns, default 0.4
	SkipEmpty  bool    // leave out pairs whose value is empty
}

// NewKeyValue returns a KeyValue.
func NewKeyValue(key string, pairs ...Pair) *KeyValue {
	kv := &KeyValue{Pairs: pairs, LabelWidth: 0.4}
	kv.Init(kv, key)
	return kv
}

// OnRender implements Section.
func (kv *KeyValue) OnRender(ctx *render.Context, model any, content grid.Bounds) error {
	st := kv.style(ctx, model, 0)
	inner, err := ctx.Clamp(kv.key, content, st.Padding)
	if err != nil {
		return err
	}
	ls := kv.style(ctx, model, 1)
	vs := kv.style(ctx, model, 2)

	frac := kv.LabelWidth
	if frac <= 0 || frac >= 1 {
		frac = 0.4
	}
	labelCols := int(math.Round(frac * float64(inner.Columns)))
	labelCols = min(max(labelCols, 1), inner.Columns)
	if inner.Columns > 1 {
		// keep at least one column for the values
		labelCols = min(labelCols, inner.Columns-1)
	}
	valueCols := max(inner.Columns-labelCols, 1)

	row := inner.TopRow
	bottom := inner.TopRow + inner.Rows
	for i, p := range kv.Pairs {
		label := p.Label.Eval(ctx, model)
		value := p.Value.Eval(ctx, model)
		if kv.SkipEmpty && value == "" {
			continue
		}
		lrows, _ := ctx.Canvas.MeasureText(ls.Font, label)
		vrows := ctx.Canvas.MeasureWrapped(vs.Font, value, valueCols, vs.LineSpacing)
		rows := max(lrows, vrows, 1)
		if row+rows > bottom {
			return ctx.ReportOverflow(kv.key, len(kv.Pairs)-i)
		}
		lb := grid.Bounds{LeftColumn: inner.LeftColumn, TopRow: row, Columns: labelCols, Rows: rows}
		vb := grid.Bounds{LeftColumn: inner.LeftColumn + labelCols, TopRow: row, Columns: valueCols, Rows: rows}
		drawText(ctx, label, ls.Font, lb, ls.TextAlign, ls.Foreground)
		if value != "" {
			ctx.Canvas.DrawWrapped(value, vs.Font, vb, vs.ParagraphAlign, vs.LineSpacing, vs.Foreground)
		}
		row += rows
	}
	return nil
}

// StackedText draws its Lines top to bottom, each reflowed to the width of
// the section. Empty lines are skipped, so optional address lines collapse.
type StackedText struct {
	Base
	Lines []render.Text
}

// NewStackedText returns a StackedText.
func NewStackedText(key string, lines ...render.Text) *StackedText {
	s := &StackedText{Lines: lines}
	s.Init(s, key)
	return s
}

// Lines is a convenience for constant StackedText lines.
func Lines(lines ...string) []render.Text {
	out := make([]render.Text, len(lines))
	for i, l := range lines {
		out[i] = render.Const(l)
	}
	return out
}

// OnRender implements Section.
func (s *StackedText) OnRender(ctx *render.Context, model any, content grid.Bounds) error {
	st := s.style(ctx, model, 0)
	inner, err := ctx.Clamp(s.key, content, st.Padding)
	if err != nil {
		return err
	}
	row := inner.TopRow
	bottom := inner.TopRow + inner.Rows
	for i, l := range s.Lines {
		text := l.Eval(ctx, model)
		if text == "" {
			continue
		}
		rows := max(ctx.Canvas.MeasureWrapped(st.Font, text, inner.Columns, st.LineSpacing), 1)
		if row+rows > bottom {
			return ctx.ReportOverflow(s.key, len(s.Lines)-i)
		}
		b := grid.Bounds{LeftColumn: inner.LeftColumn, TopRow: row, Columns: inner.Columns, Rows: rows}
		if rows == 1 {
			drawText(ctx, text, st.Font, b, st.TextAlign, st.Foreground)
		} else {
			ctx.Canvas.DrawWrapped(text, st.Font, b, st.ParagraphAlign, st.LineSpacing, st.Foreground)
		}
		row += rows
	}
	return nil
}
