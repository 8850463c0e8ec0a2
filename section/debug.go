package section

import (
	"github.com/lvillar/gridpdf/canvas"
	"github.com/lvillar/gridpdf/render"
)

var layoutColors = []canvas.Color{
	canvas.RGB(220, 40, 40),
	canvas.RGB(40, 160, 60),
	canvas.RGB(41, 128, 185),
	canvas.RGB(200, 120, 0),
	canvas.RGB(140, 60, 170),
}

// RenderDebug outlines every visible section of the tree that was laid out
// on this page and labels it with its key. Colors cycle with the depth.
func RenderDebug(ctx *render.Context, s Section, model any) {
	Walk(s, func(s Section, depth int) bool {
		if !Visible(ctx, s, model) {
			return false
		}
		b, ok := ctx.Bounds(s)
		if !ok {
			return false
		}
		c := layoutColors[depth%len(layoutColors)]
		ctx.Canvas.DrawRectangle(b, 0.2, c)
		if key := s.base().key; key != "" {
			ctx.Canvas.DrawText(key, debugFont, b, canvas.TopLeft, c)
		}
		return true
	})
}

// RenderGrid draws the grid lines of the page.
func RenderGrid(ctx *render.Context) {
	g := ctx.Grid
	c := canvas.RGB(200, 200, 235)
	for col := 1; col <= g.Columns()+1; col++ {
		ctx.Canvas.DrawLine(canvas.Point{Column: col, Row: 1}, canvas.Point{Column: col, Row: g.Rows() + 1}, 0.05, c)
	}
	for row := 1; row <= g.Rows()+1; row++ {
		ctx.Canvas.DrawLine(canvas.Point{Column: 1, Row: row}, canvas.Point{Column: g.Columns() + 1, Row: row}, 0.05, c)
	}
}
