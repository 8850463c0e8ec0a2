package section

import (
	"strings"

	"github.com/lvillar/gridpdf/grid"
	"github.com/lvillar/gridpdf/render"
)

// HeaderContent draws a titled band on top of exactly one child, which gets
// the rest of the bounds. Style 0 is the section, style 1 the band.
type HeaderContent struct {
	Base
}

// NewHeaderContent returns a HeaderContent titled header around child. It
// fails with a *ConfigError wrapping ErrChildCount when child is nil.
func NewHeaderContent(key string, header render.Text, child Section) (*HeaderContent, error) {
	if child == nil {
		return nil, &ConfigError{Key: key, Kind: "HeaderContent", Err: ErrChildCount}
	}
	h := &HeaderContent{}
	h.Init(h, key, child)
	h.Text = header
	return h, nil
}

// MustHeaderContent is like NewHeaderContent but panics on error. It is
// meant for section trees written as literals.
func MustHeaderContent(key string, header render.Text, child Section) *HeaderContent {
	h, err := NewHeaderContent(key, header, child)
	if err != nil {
		panic(err)
	}
	return h
}

// bandRows returns the height of the header band inside content.
func (h *HeaderContent) bandRows(ctx *render.Context, model any, content grid.Bounds) int {
	hs := h.style(ctx, model, 1)
	rows, _ := ctx.Canvas.MeasureText(hs.Font, strings.ToUpper(h.text(ctx, model)))
	rows = max(rows, 1) + hs.Padding.Vertical()
	return min(rows, content.Rows)
}

// OnLayout implements Section.
func (h *HeaderContent) OnLayout(ctx *render.Context, model any, content grid.Bounds) error {
	if len(h.children) != 1 {
		return &ConfigError{Key: h.key, Kind: "HeaderContent", Err: ErrChildCount}
	}
	body, err := ctx.Clamp(h.key, content, grid.Spacing{Top: h.bandRows(ctx, model, content)})
	if err != nil {
		return err
	}
	if Visible(ctx, h.children[0], model) {
		ctx.SetBounds(h.children[0], body)
	}
	return nil
}

// OnRender implements Section.
func (h *HeaderContent) OnRender(ctx *render.Context, model any, content grid.Bounds) error {
	// degenerate bodies were already reported by OnLayout
	band := content
	band.Rows = h.bandRows(ctx, model, content)
	hs := h.style(ctx, model, 1)
	if !hs.Background.IsTransparent() {
		ctx.Canvas.DrawFilledRectangle(band, hs.Background)
	}
	text := strings.ToUpper(h.text(ctx, model))
	if text == "" {
		return nil
	}
	drawText(ctx, text, hs.Font, band.Subtract(hs.Padding), hs.TextAlign, hs.Foreground)
	return nil
}
