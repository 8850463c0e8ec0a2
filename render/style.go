package render

import (
	"github.com/lvillar/gridpdf/canvas"
	"github.com/lvillar/gridpdf/grid"
)

// Style is a named bundle of visual properties. A Style is a value: the
// With and Bind methods return modified copies, so a style derived with
// Copy never affects the style it was copied from.
type Style struct {
	name           string
	font           Property[canvas.Font]
	foreground     Property[canvas.Color]
	background     Property[canvas.Color]
	borderColor    Property[canvas.Color]
	borderWidth    Property[float64]
	margin         Property[grid.Spacing]
	padding        Property[grid.Spacing]
	cellPadding    Property[grid.Spacing]
	textAlign      Property[canvas.Align]
	paragraphAlign Property[canvas.Align]
	relativeHeight Property[float64]
	relativeWidth  Property[float64]
	relativeWidths Property[[]float64]
	lineSpacing    Property[float64]
}

// NewStyle returns an empty style. Unset properties resolve to the
// defaults documented on Resolved.
func NewStyle(name string) Style {
	return Style{name: name}
}

// Name returns the style name.
func (s Style) Name() string { return s.name }

// Copy returns a copy of s under a new name.
func (s Style) Copy(name string) Style {
	s.name = name
	if s.relativeWidths.IsConst() {
		// the constant closure shares its slice; rebind a private copy
		w := append([]float64(nil), s.relativeWidths.Eval(nil, nil)...)
		s.relativeWidths = Const(w)
	}
	return s
}

// WithFont sets the text font.
func (s Style) WithFont(f canvas.Font) Style {
	s.font = Const(f)
	return s
}

// BindFont binds the text font to a Property.
func (s Style) BindFont(p Property[canvas.Font]) Style {
	s.font = p
	return s
}

// WithForeground sets the text and line color.
func (s Style) WithForeground(c canvas.Color) Style {
	s.foreground = Const(c)
	return s
}

// BindForeground binds the text and line color to a Property.
func (s Style) BindForeground(p Property[canvas.Color]) Style {
	s.foreground = p
	return s
}

// WithBackground sets the fill color drawn under the section.
func (s Style) WithBackground(c canvas.Color) Style {
	s.background = Const(c)
	return s
}

// BindBackground binds the fill color drawn under the section to a Property.
func (s Style) BindBackground(p Property[canvas.Color]) Style {
	s.background = p
	return s
}

// WithBorderColor sets the border color.
func (s Style) WithBorderColor(c canvas.Color) Style {
	s.borderColor = Const(c)
	return s
}

// BindBorderColor binds the border color to a Property.
func (s Style) BindBorderColor(p Property[canvas.Color]) Style {
	s.borderColor = p
	return s
}

// WithBorderWidth sets the border line width in points.
func (s Style) WithBorderWidth(w float64) Style {
	s.borderWidth = Const(w)
	return s
}

// BindBorderWidth binds the border line width in points to a Property.
func (s Style) BindBorderWidth(p Property[float64]) Style {
	s.borderWidth = p
	return s
}

// WithMargin sets the cells left empty outside the border.
func (s Style) WithMargin(m grid.Spacing) Style {
	s.margin = Const(m)
	return s
}

// BindMargin binds the cells left empty outside the border to a Property.
func (s Style) BindMargin(p Property[grid.Spacing]) Style {
	s.margin = p
	return s
}

// WithPadding sets the cells left empty inside the border.
func (s Style) WithPadding(p grid.Spacing) Style {
	s.padding = Const(p)
	return s
}

// BindPadding binds the cells left empty inside the border to a Property.
func (s Style) BindPadding(p Property[grid.Spacing]) Style {
	s.padding = p
	return s
}

// WithCellPadding sets the padding of each data grid cell.
func (s Style) WithCellPadding(p grid.Spacing) Style {
	s.cellPadding = Const(p)
	return s
}

// BindCellPadding binds the padding of each data grid cell to a Property.
func (s Style) BindCellPadding(p Property[grid.Spacing]) Style {
	s.cellPadding = p
	return s
}

// WithTextAlign sets the alignment of single line text.
func (s Style) WithTextAlign(a canvas.Align) Style {
	s.textAlign = Const(a)
	return s
}

// BindTextAlign binds the alignment of single line text to a Property.
func (s Style) BindTextAlign(p Property[canvas.Align]) Style {
	s.textAlign = p
	return s
}

// WithParagraphAlign sets the alignment of wrapped text.
func (s Style) WithParagraphAlign(a canvas.Align) Style {
	s.paragraphAlign = Const(a)
	return s
}

// BindParagraphAlign binds the alignment of wrapped text to a Property.
func (s Style) BindParagraphAlign(p Property[canvas.Align]) Style {
	s.paragraphAlign = p
	return s
}

// WithRelativeHeight sets the fraction of a vertical stack the section takes.
func (s Style) WithRelativeHeight(h float64) Style {
	s.relativeHeight = Const(h)
	return s
}

// BindRelativeHeight binds the fraction of a vertical stack the section takes to a Property.
func (s Style) BindRelativeHeight(p Property[float64]) Style {
	s.relativeHeight = p
	return s
}

// WithRelativeWidth sets the fraction of a horizontal stack the section takes.
func (s Style) WithRelativeWidth(w float64) Style {
	s.relativeWidth = Const(w)
	return s
}

// BindRelativeWidth binds the fraction of a horizontal stack the section takes to a Property.
func (s Style) BindRelativeWidth(p Property[float64]) Style {
	s.relativeWidth = p
	return s
}

// WithLineSpacing sets the line spacing factor of wrapped text.
func (s Style) WithLineSpacing(f float64) Style {
	s.lineSpacing = Const(f)
	return s
}

// WithRelativeWidths sets per-column weights used by data grids for
// columns without a Weight of their own.
func (s Style) WithRelativeWidths(w ...float64) Style {
	s.relativeWidths = Const(append([]float64(nil), w...))
	return s
}

// BindRelativeWidths binds per-column weights.
func (s Style) BindRelativeWidths(p Property[[]float64]) Style {
	s.relativeWidths = p
	return s
}

// Resolved holds the evaluated properties of a style.
//
// Defaults for unset properties: Font is canvas.DefaultFont, Foreground
// and BorderColor are black, Background is transparent, LineSpacing is 1,
// ParagraphAlign follows TextAlign, everything else is zero.
type Resolved struct {
	Name           string
	Font           canvas.Font
	Foreground     canvas.Color
	Background     canvas.Color
	BorderColor    canvas.Color
	BorderWidth    float64
	Margin         grid.Spacing
	Padding        grid.Spacing
	CellPadding    grid.Spacing
	TextAlign      canvas.Align
	ParagraphAlign canvas.Align
	RelativeHeight float64
	RelativeWidth  float64
	RelativeWidths []float64
	LineSpacing    float64
}

// Resolve evaluates every property of s.
func (s Style) Resolve(ctx *Context, model any) Resolved {
	r := Resolved{
		Name:           s.name,
		Font:           s.font.Eval(ctx, model),
		Foreground:     s.foreground.Eval(ctx, model),
		Background:     s.background.Eval(ctx, model),
		BorderColor:    s.borderColor.Eval(ctx, model),
		BorderWidth:    s.borderWidth.Eval(ctx, model),
		Margin:         s.margin.Eval(ctx, model),
		Padding:        s.padding.Eval(ctx, model),
		CellPadding:    s.cellPadding.Eval(ctx, model),
		TextAlign:      s.textAlign.Eval(ctx, model),
		ParagraphAlign: s.paragraphAlign.Eval(ctx, model),
		RelativeHeight: s.relativeHeight.Eval(ctx, model),
		RelativeWidth:  s.relativeWidth.Eval(ctx, model),
		RelativeWidths: s.relativeWidths.Eval(ctx, model),
		LineSpacing:    s.lineSpacing.Eval(ctx, model),
	}
	if r.Font.IsZero() {
		r.Font = canvas.DefaultFont
	}
	if !s.foreground.IsSet() {
		r.Foreground = canvas.Black
	}
	if !s.borderColor.IsSet() {
		r.BorderColor = canvas.Black
	}
	if !s.paragraphAlign.IsSet() {
		r.ParagraphAlign = r.TextAlign
	}
	if r.LineSpacing <= 0 {
		r.LineSpacing = 1
	}
	return r
}
