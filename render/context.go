// Package render holds the per-page rendering state shared by all sections:
// the render Context, deferred-evaluation Properties, and Styles.
package render

import (
	"strings"

	"github.com/lvillar/gridpdf/canvas"
	"github.com/lvillar/gridpdf/grid"
)

// DebugMode is a set of debug overlay flags.
type DebugMode uint8

const (
	// RevealGrid draws the layout grid lines over the page.
	RevealGrid DebugMode = 1 << iota
	// RevealLayout outlines every section and labels it with its key.
	RevealLayout
	// HideDetails skips the render pass; only debug overlays are drawn.
	HideDetails
	// RevealFontDetails prints the font next to every text.
	RevealFontDetails
	// OutlineText strokes the bounds of every drawn text.
	OutlineText
)

var debugNames = []struct {
	flag DebugMode
	name string
}{
	{RevealGrid, "grid"},
	{RevealLayout, "layout"},
	{HideDetails, "hide"},
	{RevealFontDetails, "fonts"},
	{OutlineText, "text"},
}

// Has reports whether all flags in f are set.
func (d DebugMode) Has(f DebugMode) bool { return d&f == f && f != 0 }

func (d DebugMode) String() string {
	var parts []string
	for _, n := range debugNames {
		if d.Has(n.flag) {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ",")
}

// ParseDebugMode parses a comma separated list of flag names
// ("grid,layout,hide,fonts,text"). Unknown names are reported in unknown.
func ParseDebugMode(s string) (mode DebugMode, unknown []string) {
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		found := false
		for _, n := range debugNames {
			if n.name == part {
				mode |= n.flag
				found = true
				break
			}
		}
		if !found {
			unknown = append(unknown, part)
		}
	}
	return mode, unknown
}

// Context is the state of one page render. It is created fresh for every
// page and must not be shared between pages rendered concurrently.
//
// The bounds assigned to sections during layout are stored here, keyed by
// section identity, rather than on the sections themselves, so one section
// tree can serve any number of pages.
type Context struct {
	PageIndex int // zero-based
	PageCount int
	Document  canvas.Document
	Canvas    canvas.Canvas
	Grid      grid.Grid
	Debug     DebugMode
	Styles    *Styles

	// Degenerate, when set, is called whenever a margin or padding did not
	// fit and bounds had to be clamped. Returning an error aborts the pass.
	Degenerate func(key string, b grid.Bounds) error

	// Overflow, when set, is called when a section had more content than
	// fits its bounds and dropped rows. Returning an error aborts the pass.
	Overflow func(key string, dropped int) error

	bounds map[any]grid.Bounds
}

// NewContext creates the context for page pageIndex (zero-based) of
// pageCount pages.
func NewContext(pageIndex, pageCount int, doc canvas.Document, cv canvas.Canvas, styles *Styles, debug DebugMode) *Context {
	if styles == nil {
		styles = NewStyles(NewStyle(DefaultStyleName))
	}
	ctx := &Context{
		PageIndex: pageIndex,
		PageCount: pageCount,
		Document:  doc,
		Canvas:    cv,
		Debug:     debug,
		Styles:    styles,
		bounds:    make(map[any]grid.Bounds),
	}
	if cv != nil {
		ctx.Grid = cv.Grid()
	}
	return ctx
}

// PageNumber returns the one-based page number.
func (c *Context) PageNumber() int { return c.PageIndex + 1 }

// IsFirstPage reports whether this is the first page.
func (c *Context) IsFirstPage() bool { return c.PageIndex == 0 }

// IsLastPage reports whether this is the last page.
func (c *Context) IsLastPage() bool { return c.PageIndex == c.PageCount-1 }

// Bounds returns the bounds assigned to key on this page. ok is false when
// key has not been laid out.
func (c *Context) Bounds(key any) (b grid.Bounds, ok bool) {
	b, ok = c.bounds[key]
	return b, ok
}

// SetBounds assigns bounds to key for this page.
func (c *Context) SetBounds(key any, b grid.Bounds) {
	c.bounds[key] = b
}

// LaidOut returns the number of keys that have bounds on this page.
func (c *Context) LaidOut() int { return len(c.bounds) }

// Clamp subtracts s from b and reports clamping to the Degenerate hook.
func (c *Context) Clamp(key string, b grid.Bounds, s grid.Spacing) (grid.Bounds, error) {
	r, clamped := b.SubtractChecked(s)
	if clamped && c.Degenerate != nil {
		if err := c.Degenerate(key, b); err != nil {
			return r, err
		}
	}
	return r, nil
}

// ReportOverflow reports dropped content rows to the Overflow hook.
func (c *Context) ReportOverflow(key string, dropped int) error {
	if dropped > 0 && c.Overflow != nil {
		return c.Overflow(key, dropped)
	}
	return nil
}
