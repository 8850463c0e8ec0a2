package section

import (
	"fmt"
	"hash/fnv"
	"math"

	"github.com/lvillar/gridpdf/barcode"
	"github.com/lvillar/gridpdf/canvas"
	"github.com/lvillar/gridpdf/grid"
	"github.com/lvillar/gridpdf/render"
)

// Barcode draws its Text as a barcode image, optionally with the human
// readable text below it. Bars use the style foreground; the background
// is the style background or white when transparent.
type Barcode struct {
	Base
	Symbology barcode.Symbology
	Generator barcode.Generator
	// PixelsPerUnit is the image resolution per physical page unit.
	PixelsPerUnit float64
	ShowText      bool
}

// NewBarcode returns a Barcode using the default encoder.
func NewBarcode(key string, data render.Text, sym barcode.Symbology) *Barcode {
	b := &Barcode{Symbology: sym, Generator: barcode.New(), PixelsPerUnit: 8}
	b.Init(b, key)
	b.Text = data
	return b
}

// OnRender implements Section.
func (b *Barcode) OnRender(ctx *render.Context, model any, content grid.Bounds) error {
	data := b.text(ctx, model)
	if data == "" {
		return nil
	}
	st := b.style(ctx, model, 0)
	inner, err := ctx.Clamp(b.key, content, st.Padding)
	if err != nil {
		return err
	}

	bars := inner
	if b.ShowText {
		rows := lineRows(ctx, st.Font)
		if rows < inner.Rows {
			bars.Rows -= rows
			tb := grid.Bounds{LeftColumn: inner.LeftColumn, TopRow: inner.TopRow + bars.Rows, Columns: inner.Columns, Rows: rows}
			drawText(ctx, data, st.Font, tb, canvas.Align{H: canvas.Center, V: canvas.Top}, st.Foreground)
		}
	}

	ppu := b.PixelsPerUnit
	if ppu <= 0 {
		ppu = 8
	}
	w := int(math.Round(ctx.Grid.ColumnsWidth(bars.Columns) * ppu))
	h := int(math.Round(ctx.Grid.RowsHeight(bars.Rows) * ppu))
	bg := st.Background
	if bg.IsTransparent() {
		bg = canvas.White
	}
	gen := b.Generator
	if gen == nil {
		gen = barcode.New()
	}
	img, err := gen.Create(data, max(w, 1), max(h, 1), b.Symbology, st.Foreground, bg)
	if err != nil {
		return err
	}
	return ctx.Canvas.DrawImageData(b.imageName(data, img.Bounds().Dx(), img.Bounds().Dy()), img, bars, canvas.Center, canvas.Middle)
}

// imageName identifies a rendered barcode so identical codes on several
// pages are embedded once.
func (b *Barcode) imageName(data string, w, h int) string {
	f := fnv.New64a()
	f.Write([]byte(data))
	return fmt.Sprintf("barcode-%s-%x-%dx%d", b.Symbology, f.Sum64(), w, h)
}

// Image draws the image file named by Text fitted into the padded content
// bounds, aligned by the style text alignment. Empty or missing paths draw
// nothing.
type Image struct {
	Base
}

// NewImage returns an Image.
func NewImage(key string, path render.Text) *Image {
	i := &Image{}
	i.Init(i, key)
	i.Text = path
	return i
}

// OnRender implements Section.
func (i *Image) OnRender(ctx *render.Context, model any, content grid.Bounds) error {
	path := i.text(ctx, model)
	if path == "" {
		return nil
	}
	st := i.style(ctx, model, 0)
	inner, err := ctx.Clamp(i.key, content, st.Padding)
	if err != nil {
		return err
	}
	ctx.Canvas.DrawImage(path, inner, st.TextAlign.H, st.TextAlign.V)
	return nil
}
