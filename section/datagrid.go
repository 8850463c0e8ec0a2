package section

import (
	"fmt"
	"math"

	"github.com/lvillar/gridpdf/canvas"
	"github.com/lvillar/gridpdf/grid"
	"github.com/lvillar/gridpdf/render"
)

// Column describes one column of a DataGrid.
type Column[T any] struct {
	Header string
	// Value extracts the cell value from an item.
	Value func(item T) any
	// Format is the fmt verb used for the value; empty means "%v".
	Format string
	// Weight is the relative width of the column; without it the column
	// uses the grid style's RelativeWidths entry. When every column is
	// weighted the weights are proportions, otherwise fractions of the
	// width, and the unweighted columns share what is left.
	Weight float64
	Align  canvas.HAlign
}

func (c Column[T]) cell(item T) string {
	if c.Value == nil {
		return ""
	}
	v := c.Value(item)
	if v == nil {
		return ""
	}
	f := c.Format
	if f == "" {
		f = "%v"
	}
	return fmt.Sprintf(f, v)
}

// DataGrid draws a table: a header row followed by one row per item. Rows
// are as tall as their tallest cell. Items that do not fit are dropped and
// reported to the context's overflow hook; split long collections over
// pages with a paginate.Calculator and bind Items to the current page.
//
// Style 1 is the header row, style 2 the item rows and style 3, when set,
// every other item row. The cell padding of each style insets the cell
// text; a border width on style 2 rules the rows and columns.
type DataGrid[T any] struct {
	Base
	Items   render.Property[[]T]
	Columns []Column[T]
	// EmptyText is drawn below the header when there are no items.
	EmptyText render.Text
}

// NewDataGrid returns a DataGrid.
func NewDataGrid[T any](key string, items render.Property[[]T], columns ...Column[T]) *DataGrid[T] {
	g := &DataGrid[T]{Items: items, Columns: columns}
	g.Init(g, key)
	return g
}

// widths splits total grid columns between the columns. A column without
// Weight takes its weight from rel, the RelativeWidths of the grid's style.
// When every column is weighted the weights are normalized to their sum;
// otherwise they are fractions of total and the unweighted columns share
// what is left.
func (g *DataGrid[T]) widths(total int, rel []float64) []int {
	weights := make([]float64, len(g.Columns))
	sum := 0.0
	all := true
	for i, c := range g.Columns {
		w := c.Weight
		if w <= 0 && i < len(rel) {
			w = rel[i]
		}
		if w > 0 && !math.IsInf(w, 1) {
			weights[i] = w
			sum += w
		} else {
			all = false
		}
	}
	if all || sum > 1 {
		for i := range weights {
			weights[i] /= sum
		}
	}
	return distribute(total, weights)
}

func (g *DataGrid[T]) hasHeader() bool {
	for _, c := range g.Columns {
		if c.Header != "" {
			return true
		}
	}
	return false
}

// rowHeight measures a row of cell texts.
func rowHeight(ctx *render.Context, st render.Resolved, cells []string, widths []int) int {
	rows := 1
	for i, text := range cells {
		cols := max(widths[i]-st.CellPadding.Horizontal(), 1)
		rows = max(rows, ctx.Canvas.MeasureWrapped(st.Font, text, cols, st.LineSpacing))
	}
	return rows + st.CellPadding.Vertical()
}

// OnRender implements Section.
func (g *DataGrid[T]) OnRender(ctx *render.Context, model any, content grid.Bounds) error {
	if len(g.Columns) == 0 {
		return nil
	}
	st := g.style(ctx, model, 0)
	inner, err := ctx.Clamp(g.key, content, st.Padding)
	if err != nil {
		return err
	}
	widths := g.widths(inner.Columns, st.RelativeWidths)
	hs := g.style(ctx, model, 1)
	cs := g.style(ctx, model, 2)
	alt := cs
	if len(g.styleNames) > 3 && g.styleNames[3] != "" {
		alt = g.style(ctx, model, 3)
	}

	row := inner.TopRow
	bottom := inner.TopRow + inner.Rows
	cells := make([]string, len(g.Columns))

	if g.hasHeader() {
		for i, c := range g.Columns {
			cells[i] = c.Header
		}
		rows := min(rowHeight(ctx, hs, cells, widths), inner.Rows)
		g.drawRow(ctx, hs, cells, widths, inner.LeftColumn, row, rows)
		row += rows
	}

	items := g.Items.Eval(ctx, model)
	if len(items) == 0 {
		if text := g.EmptyText.Eval(ctx, model); text != "" && row < bottom {
			b := grid.Bounds{LeftColumn: inner.LeftColumn, TopRow: row, Columns: inner.Columns, Rows: bottom - row}
			drawText(ctx, text, cs.Font, b.Subtract(cs.CellPadding), canvas.TopCenter, cs.Foreground)
		}
		return nil
	}
	for n, item := range items {
		for i, c := range g.Columns {
			cells[i] = c.cell(item)
		}
		rs := cs
		if n%2 == 1 {
			rs = alt
		}
		rows := rowHeight(ctx, rs, cells, widths)
		if row+rows > bottom {
			return ctx.ReportOverflow(g.key, len(items)-n)
		}
		g.drawRow(ctx, rs, cells, widths, inner.LeftColumn, row, rows)
		row += rows
	}
	return nil
}

func (g *DataGrid[T]) drawRow(ctx *render.Context, st render.Resolved, cells []string, widths []int, left, top, rows int) {
	total := 0
	for _, w := range widths {
		total += w
	}
	rb := grid.Bounds{LeftColumn: left, TopRow: top, Columns: total, Rows: rows}
	if !st.Background.IsTransparent() {
		ctx.Canvas.DrawFilledRectangle(rb, st.Background)
	}
	col := left
	for i, text := range cells {
		w := widths[i]
		if w <= 0 {
			continue
		}
		cb := grid.Bounds{LeftColumn: col, TopRow: top, Columns: w, Rows: rows}.Subtract(st.CellPadding)
		align := canvas.Align{H: g.Columns[i].Align, V: st.TextAlign.V}
		if text != "" {
			if rows-st.CellPadding.Vertical() > lineRows(ctx, st.Font) {
				ctx.Canvas.DrawWrapped(text, st.Font, cb, align, st.LineSpacing, st.Foreground)
			} else {
				drawText(ctx, text, st.Font, cb, align, st.Foreground)
			}
		}
		if st.BorderWidth > 0 && col > left {
			ctx.Canvas.DrawLine(canvas.Point{Column: col, Row: top}, canvas.Point{Column: col, Row: top + rows}, st.BorderWidth, st.BorderColor)
		}
		col += w
	}
	if st.BorderWidth > 0 {
		ctx.Canvas.DrawLine(canvas.Point{Column: left, Row: top + rows}, canvas.Point{Column: left + total, Row: top + rows}, st.BorderWidth, st.BorderColor)
	}
}
