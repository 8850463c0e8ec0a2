package section

import (
	"github.com/lvillar/gridpdf/canvas"
	"github.com/lvillar/gridpdf/grid"
	"github.com/lvillar/gridpdf/render"
)

// Signature draws a signature box: the label (Text) at the top, a rule
// near the bottom and the caption below the rule. Style 1 is the caption.
type Signature struct {
	Base
	Caption    render.Text
	RuleWeight float64
}

// NewSignature returns a Signature.
func NewSignature(key string, label, caption render.Text) *Signature {
	s := &Signature{Caption: caption, RuleWeight: 0.3}
	s.Init(s, key)
	s.Text = label
	return s
}

// OnRender implements Section.
func (s *Signature) OnRender(ctx *render.Context, model any, content grid.Bounds) error {
	st := s.style(ctx, model, 0)
	inner, err := ctx.Clamp(s.key, content, st.Padding)
	if err != nil {
		return err
	}
	cs := s.style(ctx, model, 1)

	if label := s.text(ctx, model); label != "" {
		rows := min(lineRows(ctx, st.Font), inner.Rows)
		b := inner
		b.Rows = rows
		drawText(ctx, label, st.Font, b, st.TextAlign, st.Foreground)
	}

	caption := s.Caption.Eval(ctx, model)
	captionRows := 0
	if caption != "" {
		captionRows = min(lineRows(ctx, cs.Font), inner.Rows)
	}
	ruleRow := inner.TopRow + inner.Rows - captionRows
	ctx.Canvas.DrawLine(
		canvas.Point{Column: inner.LeftColumn, Row: ruleRow},
		canvas.Point{Column: inner.LeftColumn + inner.Columns, Row: ruleRow},
		s.RuleWeight, st.BorderColor)
	if caption != "" {
		b := grid.Bounds{LeftColumn: inner.LeftColumn, TopRow: ruleRow, Columns: inner.Columns, Rows: captionRows}
		drawText(ctx, caption, cs.Font, b, cs.TextAlign, cs.Foreground)
	}
	return nil
}
