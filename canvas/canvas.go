// Package canvas defines the drawing and document collaborators used by the
// layout engine, and provides implementations backed by FPDF.
//
// All Canvas coordinates are grid bounds; implementations translate them to
// physical units with the grid.Grid they were created for.
package canvas

import (
	"fmt"
	"image"
	"image/color"

	"github.com/lvillar/gridpdf/grid"
)

// Font describes a font face. Style is "", "B", "I" or "BI"; Size is in points.
type Font struct {
	Family string
	Style  string
	Size   float64
}

// DefaultFont is used when a style does not bind a font.
var DefaultFont = Font{Family: "Helvetica", Size: 10}

// IsZero reports whether f is unset.
func (f Font) IsZero() bool { return f == Font{} }

// Bold returns a copy of f with the bold style added.
func (f Font) Bold() Font {
	if f.Style == "" || f.Style == "I" {
		f.Style = "B" + f.Style
	}
	return f
}

// Resize returns a copy of f with the given point size.
func (f Font) Resize(size float64) Font {
	f.Size = size
	return f
}

func (f Font) String() string {
	if f.Style == "" {
		return fmt.Sprintf("%s %gpt", f.Family, f.Size)
	}
	return fmt.Sprintf("%s-%s %gpt", f.Family, f.Style, f.Size)
}

// Color is an RGB color with an opacity flag. The zero value is Transparent.
type Color struct {
	R, G, B uint8
	Opaque  bool
}

// Transparent is the sentinel for "do not paint".
var Transparent = Color{}

// Common colors.
var (
	Black     = RGB(0, 0, 0)
	White     = RGB(255, 255, 255)
	LightGray = RGB(230, 230, 230)
	Gray      = RGB(128, 128, 128)
	Red       = RGB(220, 40, 40)
	Blue      = RGB(41, 128, 185)
)

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, Opaque: true}
}

// Hex parses "#rrggbb" or "rrggbb". It returns Transparent and an error for
// any other input.
func Hex(s string) (Color, error) {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	var r, g, b uint8
	if len(s) != 6 {
		return Transparent, fmt.Errorf("canvas: invalid hex color %q", s)
	}
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return Transparent, fmt.Errorf("canvas: invalid hex color %q: %w", s, err)
	}
	return RGB(r, g, b), nil
}

// RGBA implements color.Color. Transparent has zero alpha.
func (c Color) RGBA() (r, g, b, a uint32) {
	if !c.Opaque {
		return 0, 0, 0, 0
	}
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}.RGBA()
}

// IsTransparent reports whether c is the Transparent sentinel.
func (c Color) IsTransparent() bool { return !c.Opaque }

// HAlign is a horizontal alignment.
type HAlign int

const (
	Left HAlign = iota
	Center
	Right
	Justify
)

// VAlign is a vertical alignment.
type VAlign int

const (
	Top VAlign = iota
	Middle
	Bottom
)

// Align combines horizontal and vertical alignment.
type Align struct {
	H HAlign
	V VAlign
}

// Common alignments.
var (
	TopLeft      = Align{Left, Top}
	MiddleLeft   = Align{Left, Middle}
	MiddleCenter = Align{Center, Middle}
	MiddleRight  = Align{Right, Middle}
	TopCenter    = Align{Center, Top}
	TopRight     = Align{Right, Top}
)

// Canvas is the drawing capability the section tree renders into.
type Canvas interface {
	// Grid returns the grid used to translate bounds to physical units.
	Grid() grid.Grid

	// MeasureText returns the size of a single line of text in grid units.
	MeasureText(font Font, text string) (rows, columns int)

	// MeasureWrapped returns the number of rows needed to reflow text into
	// the given number of columns.
	MeasureWrapped(font Font, text string, columns int, lineSpacing float64) int

	// DrawText draws a single line aligned inside bounds, clipped to them.
	DrawText(text string, font Font, bounds grid.Bounds, align Align, color Color)

	// DrawWrapped reflows text inside bounds.
	DrawWrapped(text string, font Font, bounds grid.Bounds, align Align, lineSpacing float64, color Color)

	DrawFilledRectangle(bounds grid.Bounds, color Color)
	DrawRectangle(bounds grid.Bounds, weight float64, color Color)

	// DrawLine draws a line between the top-left corners of the two cells.
	DrawLine(from, to Point, weight float64, color Color)

	// DrawImage draws the image file at path fitted into bounds. It reports
	// false when the file cannot be used.
	DrawImage(path string, bounds grid.Bounds, h HAlign, v VAlign) bool

	// DrawImageData draws an in-memory image registered under name.
	DrawImageData(name string, img image.Image, bounds grid.Bounds, h HAlign, v VAlign) error
}

// Point is a position on the grid lines, in grid units. Column 1 row 1 is
// the top-left corner of the page; column n+1 is the right edge of column n.
type Point struct {
	Column int
	Row    int
}

// Document is the output sink: it owns the pages and serializes them.
type Document interface {
	AddPage() error
	PageCount() int
	// PageSize returns the physical size of the current page.
	PageSize() (width, height float64)
	// Canvas returns a canvas drawing on the current page with g.
	Canvas(g grid.Grid) Canvas
	Save() ([]byte, error)
}
