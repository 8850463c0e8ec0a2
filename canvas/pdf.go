package canvas

import (
	"image"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/lvillar/gridpdf/grid"
)

// lineHeight is the height of a text line relative to the font size.
const lineHeight = 1.2

// PDF is a Canvas drawing on the current page of an FPDF document.
type PDF struct {
	pdf    *fpdf.Fpdf
	g      grid.Grid
	images *Images
	tr     func(string) string
}

// Grid implements Canvas.
func (c *PDF) Grid() grid.Grid { return c.g }

func (c *PDF) setFont(f Font) {
	if f.IsZero() {
		f = DefaultFont
	}
	if f.Family == "" {
		f.Family = DefaultFont.Family
	}
	if f.Size <= 0 {
		f.Size = DefaultFont.Size
	}
	c.pdf.SetFont(f.Family, f.Style, f.Size)
}

// lineHeight returns the physical height of one text line in the current font.
func (c *PDF) lineHeight(spacing float64) float64 {
	if spacing <= 0 {
		spacing = 1
	}
	_, unitSize := c.pdf.GetFontSize()
	return unitSize * lineHeight * spacing
}

// MeasureText implements Canvas.
func (c *PDF) MeasureText(font Font, text string) (rows, columns int) {
	c.setFont(font)
	rows = c.g.RowsFor(c.lineHeight(1))
	if rows < 1 {
		rows = 1
	}
	columns = c.g.ColumnsFor(c.pdf.GetStringWidth(c.tr(text)))
	return rows, columns
}

// wrap splits text into lines no wider than width, honoring explicit breaks.
func (c *PDF) wrap(text string, width float64) []string {
	var lines []string
	for _, para := range strings.Split(c.tr(text), "\n") {
		if para == "" {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, c.pdf.SplitText(para, width)...)
	}
	return lines
}

// MeasureWrapped implements Canvas.
func (c *PDF) MeasureWrapped(font Font, text string, columns int, lineSpacing float64) int {
	if text == "" {
		return 0
	}
	c.setFont(font)
	lines := c.wrap(text, c.g.ColumnsWidth(columns))
	rows := c.g.RowsFor(float64(len(lines)) * c.lineHeight(lineSpacing))
	if rows < 1 {
		rows = 1
	}
	return rows
}

func alignStr(a Align) string {
	var s string
	switch a.H {
	case Center:
		s = "C"
	case Right:
		s = "R"
	default:
		s = "L"
	}
	switch a.V {
	case Middle:
		s += "M"
	case Bottom:
		s += "B"
	default:
		s += "T"
	}
	return s
}

func (c *PDF) setTextColor(color Color) {
	if color.IsTransparent() {
		color = Black
	}
	c.pdf.SetTextColor(int(color.R), int(color.G), int(color.B))
}

// DrawText implements Canvas.
func (c *PDF) DrawText(text string, font Font, bounds grid.Bounds, align Align, color Color) {
	if text == "" {
		return
	}
	c.setFont(font)
	c.setTextColor(color)
	x, y, w, h := c.g.Rect(bounds)
	c.pdf.ClipRect(x, y, w, h, false)
	c.pdf.SetXY(x, y)
	c.pdf.CellFormat(w, h, c.tr(text), "", 0, alignStr(align), false, 0, "")
	c.pdf.ClipEnd()
}

// DrawWrapped implements Canvas.
func (c *PDF) DrawWrapped(text string, font Font, bounds grid.Bounds, align Align, lineSpacing float64, color Color) {
	if text == "" {
		return
	}
	c.setFont(font)
	c.setTextColor(color)
	x, y, w, h := c.g.Rect(bounds)
	lh := c.lineHeight(lineSpacing)

	c.pdf.ClipRect(x, y, w, h, false)
	defer c.pdf.ClipEnd()

	if align.H == Justify {
		c.pdf.SetXY(x, y)
		c.pdf.MultiCell(w, lh, c.tr(text), "", "J", false)
		return
	}

	lines := c.wrap(text, w)
	block := float64(len(lines)) * lh
	switch align.V {
	case Middle:
		y += (h - block) / 2
	case Bottom:
		y += h - block
	}
	hs := alignStr(Align{H: align.H, V: Middle})
	for i, line := range lines {
		c.pdf.SetXY(x, y+float64(i)*lh)
		c.pdf.CellFormat(w, lh, line, "", 0, hs, false, 0, "")
	}
}

// DrawFilledRectangle implements Canvas.
func (c *PDF) DrawFilledRectangle(bounds grid.Bounds, color Color) {
	if color.IsTransparent() {
		return
	}
	c.pdf.SetFillColor(int(color.R), int(color.G), int(color.B))
	x, y, w, h := c.g.Rect(bounds)
	c.pdf.Rect(x, y, w, h, "F")
}

// DrawRectangle implements Canvas.
func (c *PDF) DrawRectangle(bounds grid.Bounds, weight float64, color Color) {
	if color.IsTransparent() || weight <= 0 {
		return
	}
	c.pdf.SetDrawColor(int(color.R), int(color.G), int(color.B))
	c.pdf.SetLineWidth(weight)
	x, y, w, h := c.g.Rect(bounds)
	c.pdf.Rect(x, y, w, h, "D")
}

// DrawLine implements Canvas.
func (c *PDF) DrawLine(from, to Point, weight float64, color Color) {
	if color.IsTransparent() || weight <= 0 {
		return
	}
	c.pdf.SetDrawColor(int(color.R), int(color.G), int(color.B))
	c.pdf.SetLineWidth(weight)
	c.pdf.Line(c.g.Left(from.Column), c.g.Top(from.Row), c.g.Left(to.Column), c.g.Top(to.Row))
}

// fit scales an iw×ih image into w×h preserving the aspect ratio and returns
// the placement for the given alignment.
func fit(x, y, w, h, iw, ih float64, ha HAlign, va VAlign) (float64, float64, float64, float64) {
	if iw <= 0 || ih <= 0 {
		return x, y, w, h
	}
	scale := w / iw
	if s := h / ih; s < scale {
		scale = s
	}
	fw, fh := iw*scale, ih*scale
	switch ha {
	case Center, Justify:
		x += (w - fw) / 2
	case Right:
		x += w - fw
	}
	switch va {
	case Middle:
		y += (h - fh) / 2
	case Bottom:
		y += h - fh
	}
	return x, y, fw, fh
}

// DrawImage implements Canvas. Missing or unreadable files are skipped.
func (c *PDF) DrawImage(path string, bounds grid.Bounds, ha HAlign, va VAlign) bool {
	info, ok := c.images.Load(path)
	if !ok {
		return false
	}
	c.place(info, bounds, ha, va)
	return true
}

// DrawImageData implements Canvas.
func (c *PDF) DrawImageData(name string, img image.Image, bounds grid.Bounds, ha HAlign, va VAlign) error {
	info, err := c.images.Register(name, img)
	if err != nil {
		return err
	}
	c.place(info, bounds, ha, va)
	return nil
}

func (c *PDF) place(info ImageInfo, bounds grid.Bounds, ha HAlign, va VAlign) {
	x, y, w, h := c.g.Rect(bounds)
	x, y, w, h = fit(x, y, w, h, info.Width, info.Height, ha, va)
	c.pdf.ImageOptions(info.Name, x, y, w, h, false, fpdf.ImageOptions{ImageType: info.Type}, 0, "")
}
