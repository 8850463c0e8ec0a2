package section

import (
	"fmt"
	"math"

	"github.com/lvillar/gridpdf/canvas"
	"github.com/lvillar/gridpdf/grid"
	"github.com/lvillar/gridpdf/render"
)

// PageHeader draws the running header of a page: an optional logo on the
// left, the title (Text) and subtitle on the right of it and a rule along
// the bottom edge. Style 1 is the title, style 2 the subtitle.
type PageHeader struct {
	Base
	Subtitle   render.Text
	LogoPath   render.Text
	LogoWidth  float64 // fraction of the columns reserved for the logo, default 0.25
	RuleWeight float64 // 0 draws no rule
}

// NewPageHeader returns a PageHeader.
func NewPageHeader(key string, title render.Text) *PageHeader {
	h := &PageHeader{LogoWidth: 0.25, RuleWeight: 0.4}
	h.Init(h, key)
	h.Text = title
	return h
}

// OnRender implements Section.
func (h *PageHeader) OnRender(ctx *render.Context, model any, content grid.Bounds) error {
	st := h.style(ctx, model, 0)
	inner, err := ctx.Clamp(h.key, content, st.Padding)
	if err != nil {
		return err
	}

	text := inner
	if path := h.LogoPath.Eval(ctx, model); path != "" {
		frac := h.LogoWidth
		if frac <= 0 || frac >= 1 {
			frac = 0.25
		}
		cols := min(max(int(math.Round(frac*float64(inner.Columns))), 1), inner.Columns)
		logo := inner
		logo.Columns = cols
		// missing logos leave the space empty
		if ctx.Canvas.DrawImage(path, logo, canvas.Left, canvas.Middle) && cols < inner.Columns {
			text.LeftColumn += cols
			text.Columns -= cols
		}
	}

	ts := h.style(ctx, model, 1)
	ss := h.style(ctx, model, 2)
	title := h.text(ctx, model)
	subtitle := h.Subtitle.Eval(ctx, model)
	titleRows := 0
	if title != "" {
		titleRows = min(lineRows(ctx, ts.Font), text.Rows)
	}
	subRows := 0
	if subtitle != "" {
		subRows = min(lineRows(ctx, ss.Font), text.Rows-titleRows)
	}
	// the block is centered vertically in the header
	row := text.TopRow + max(text.Rows-titleRows-subRows, 0)/2
	if titleRows > 0 {
		drawText(ctx, title, ts.Font, grid.Bounds{LeftColumn: text.LeftColumn, TopRow: row, Columns: text.Columns, Rows: titleRows}, ts.TextAlign, ts.Foreground)
		row += titleRows
	}
	if subRows > 0 {
		drawText(ctx, subtitle, ss.Font, grid.Bounds{LeftColumn: text.LeftColumn, TopRow: row, Columns: text.Columns, Rows: subRows}, ss.TextAlign, ss.Foreground)
	}

	if h.RuleWeight > 0 {
		bottom := inner.TopRow + inner.Rows
		ctx.Canvas.DrawLine(
			canvas.Point{Column: inner.LeftColumn, Row: bottom},
			canvas.Point{Column: inner.LeftColumn + inner.Columns, Row: bottom},
			h.RuleWeight, st.BorderColor)
	}
	return nil
}

// DefaultPageFormat is the page label of a PageFooter.
const DefaultPageFormat = "Page %d of %d"

// PageFooter draws the running footer of a page: a rule along the top
// edge, the footer text (Text) on the left and the page label on the
// right. Style 1 is the page label.
type PageFooter struct {
	Base
	// PageFormat receives the page number and the page count. Empty hides
	// the page label.
	PageFormat string
	RuleWeight float64
}

// NewPageFooter returns a PageFooter.
func NewPageFooter(key string, text render.Text) *PageFooter {
	f := &PageFooter{PageFormat: DefaultPageFormat, RuleWeight: 0.4}
	f.Init(f, key)
	f.Text = text
	return f
}

// PageLabel returns the page label for the current page.
func (f *PageFooter) PageLabel(ctx *render.Context) string {
	if f.PageFormat == "" {
		return ""
	}
	return fmt.Sprintf(f.PageFormat, ctx.PageNumber(), ctx.PageCount)
}

// OnRender implements Section.
func (f *PageFooter) OnRender(ctx *render.Context, model any, content grid.Bounds) error {
	st := f.style(ctx, model, 0)
	inner, err := ctx.Clamp(f.key, content, st.Padding)
	if err != nil {
		return err
	}
	if f.RuleWeight > 0 {
		ctx.Canvas.DrawLine(
			canvas.Point{Column: inner.LeftColumn, Row: inner.TopRow},
			canvas.Point{Column: inner.LeftColumn + inner.Columns, Row: inner.TopRow},
			f.RuleWeight, st.BorderColor)
	}

	label := f.PageLabel(ctx)
	ps := f.style(ctx, model, 1)
	text := inner
	if label != "" {
		_, cols := ctx.Canvas.MeasureText(ps.Font, label)
		cols = min(max(cols, 1), inner.Columns)
		text.Columns -= cols
		lb := inner
		lb.LeftColumn += inner.Columns - cols
		lb.Columns = cols
		drawText(ctx, label, ps.Font, lb, canvas.MiddleRight, ps.Foreground)
	}
	if s := f.text(ctx, model); s != "" && text.Columns > 0 {
		drawText(ctx, s, st.Font, text, canvas.Align{H: st.TextAlign.H, V: canvas.Middle}, st.Foreground)
	}
	return nil
}
