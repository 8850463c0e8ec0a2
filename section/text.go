package section

import (
	"github.com/lvillar/gridpdf/canvas"
	"github.com/lvillar/gridpdf/grid"
	"github.com/lvillar/gridpdf/render"
)

var (
	debugFont  = canvas.Font{Family: "Helvetica", Size: 5}
	debugColor = canvas.Red
)

// TextBlock draws its Text on a single line, aligned inside the padded
// content bounds and clipped to them.
type TextBlock struct {
	Base
}

// NewTextBlock returns a TextBlock.
func NewTextBlock(key string, text render.Text) *TextBlock {
	t := &TextBlock{}
	t.Init(t, key)
	t.Text = text
	return t
}

// OnRender implements Section.
func (t *TextBlock) OnRender(ctx *render.Context, model any, content grid.Bounds) error {
	text := t.text(ctx, model)
	if text == "" {
		return nil
	}
	st := t.style(ctx, model, 0)
	inner, err := ctx.Clamp(t.key, content, st.Padding)
	if err != nil {
		return err
	}
	drawText(ctx, text, st.Font, inner, st.TextAlign, st.Foreground)
	return nil
}

// WrapText reflows its Text over as many lines as the padded content bounds
// hold, using the style's paragraph alignment and line spacing.
type WrapText struct {
	Base
}

// NewWrapText returns a WrapText.
func NewWrapText(key string, text render.Text) *WrapText {
	w := &WrapText{}
	w.Init(w, key)
	w.Text = text
	return w
}

// OnRender implements Section.
func (w *WrapText) OnRender(ctx *render.Context, model any, content grid.Bounds) error {
	text := w.text(ctx, model)
	if text == "" {
		return nil
	}
	st := w.style(ctx, model, 0)
	inner, err := ctx.Clamp(w.key, content, st.Padding)
	if err != nil {
		return err
	}
	need := ctx.Canvas.MeasureWrapped(st.Font, text, inner.Columns, st.LineSpacing)
	if need > inner.Rows {
		if err := ctx.ReportOverflow(w.key, need-inner.Rows); err != nil {
			return err
		}
	}
	ctx.Canvas.DrawWrapped(text, st.Font, inner, st.ParagraphAlign, st.LineSpacing, st.Foreground)
	if ctx.Debug.Has(render.OutlineText) {
		ctx.Canvas.DrawRectangle(inner, 0.1, debugColor)
	}
	if ctx.Debug.Has(render.RevealFontDetails) {
		ctx.Canvas.DrawText(st.Font.String(), debugFont, inner, canvas.TopRight, debugColor)
	}
	return nil
}

// drawText draws one line of text and the text debug overlays.
func drawText(ctx *render.Context, text string, font canvas.Font, b grid.Bounds, align canvas.Align, color canvas.Color) {
	ctx.Canvas.DrawText(text, font, b, align, color)
	if ctx.Debug.Has(render.OutlineText) {
		rows, cols := ctx.Canvas.MeasureText(font, text)
		ctx.Canvas.DrawRectangle(place(b, rows, cols, align), 0.1, debugColor)
	}
	if ctx.Debug.Has(render.RevealFontDetails) {
		ctx.Canvas.DrawText(font.String(), debugFont, b, canvas.TopRight, debugColor)
	}
}

// place returns a rows x cols rectangle aligned inside b, cut to b.
func place(b grid.Bounds, rows, cols int, align canvas.Align) grid.Bounds {
	rows = min(max(rows, 1), b.Rows)
	cols = min(max(cols, 1), b.Columns)
	r := grid.Bounds{LeftColumn: b.LeftColumn, TopRow: b.TopRow, Columns: cols, Rows: rows}
	switch align.H {
	case canvas.Center:
		r.LeftColumn += (b.Columns - cols) / 2
	case canvas.Right:
		r.LeftColumn += b.Columns - cols
	}
	switch align.V {
	case canvas.Middle:
		r.TopRow += (b.Rows - rows) / 2
	case canvas.Bottom:
		r.TopRow += b.Rows - rows
	}
	return r
}

// lineRows returns the rows one line of font needs, at least 1.
func lineRows(ctx *render.Context, font canvas.Font) int {
	rows, _ := ctx.Canvas.MeasureText(font, "Ag")
	return max(rows, 1)
}
