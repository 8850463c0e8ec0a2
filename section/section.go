// Package section implements the section tree: composable layout nodes
// that are sized against a grid and drawn onto a canvas.
//
// Every page goes through two passes over the same tree. Layout walks the
// tree top-down: each section subtracts its margin from the bounds its
// parent assigned and positions its children inside the rest. Render then
// walks it again and draws background, content, children, border and
// watermark, in that order. Render relies on the bounds Layout stored in the
// render.Context, so Layout must complete for a page before Render starts.
//
// Section kinds embed Base, which carries the key, style names, children
// and the bound Text, ShouldRender and WatermarkImagePath properties, and
// override OnLayout and OnRender.
package section

import (
	"github.com/lvillar/gridpdf/canvas"
	"github.com/lvillar/gridpdf/grid"
	"github.com/lvillar/gridpdf/render"
)

// Section is a node of the section tree. Implementations embed Base.
type Section interface {
	base() *Base

	// OnLayout positions the children of the section inside content, the
	// section bounds without margin.
	OnLayout(ctx *render.Context, model any, content grid.Bounds) error

	// OnRender draws the section's own content inside content.
	OnRender(ctx *render.Context, model any, content grid.Bounds) error
}

// Base holds the state shared by every section kind.
type Base struct {
	// Text is the section text; its meaning depends on the kind.
	Text render.Text
	// ShouldRender hides the section and its subtree when it evaluates to
	// false. An unset ShouldRender renders.
	ShouldRender render.Flag
	// WatermarkImagePath is drawn centered over the section when it names
	// an existing image file.
	WatermarkImagePath render.Text

	key          string
	styleNames   []string
	self         Section
	parent       Section
	children     []Section
	noBackground bool
	noBorder     bool
}

func (b *Base) base() *Base { return b }

// Init wires the base to the section embedding it. Constructors of section
// kinds call it once; children added before Init have no parent.
func (b *Base) Init(self Section, key string, children ...Section) {
	b.self = self
	b.key = key
	b.Add(children...)
}

// OnLayout is the default layout hook: visible children share the content
// bounds of their parent.
func (b *Base) OnLayout(ctx *render.Context, model any, content grid.Bounds) error {
	for _, c := range b.visibleChildren(ctx, model) {
		ctx.SetBounds(c, content)
	}
	return nil
}

// OnRender is the default render hook; it draws nothing.
func (b *Base) OnRender(*render.Context, any, grid.Bounds) error { return nil }

// Key returns the section key, used to label the section in debug output.
// Keys need not be unique.
func (b *Base) Key() string { return b.key }

// Parent returns the parent section, or nil for the root.
func (b *Base) Parent() Section { return b.parent }

// Children returns the child sections in layout order.
func (b *Base) Children() []Section { return b.children }

// Add appends children. Nil children are ignored.
func (b *Base) Add(children ...Section) {
	for _, c := range children {
		if c == nil {
			continue
		}
		c.base().parent = b.self
		b.children = append(b.children, c)
	}
}

// SetStyles sets the style names. Index 0 is the section's own style;
// composite kinds use further indices for their parts.
func (b *Base) SetStyles(names ...string) {
	b.styleNames = append([]string(nil), names...)
}

// StyleNames returns the style names.
func (b *Base) StyleNames() []string { return b.styleNames }

// StyleName returns style name i, falling back to the section's own style
// and then to the default style.
func (b *Base) StyleName(i int) string {
	if i < len(b.styleNames) && b.styleNames[i] != "" {
		return b.styleNames[i]
	}
	if len(b.styleNames) > 0 && b.styleNames[0] != "" {
		return b.styleNames[0]
	}
	return render.DefaultStyleName
}

// SetDrawBackground controls whether the generic render pass fills the
// content bounds with the style background.
func (b *Base) SetDrawBackground(v bool) { b.noBackground = !v }

// SetDrawBorder controls whether the generic render pass strokes the
// style border around the content bounds.
func (b *Base) SetDrawBorder(v bool) { b.noBorder = !v }

// style resolves style name i.
func (b *Base) style(ctx *render.Context, model any, i int) render.Resolved {
	return ctx.Styles.Get(b.StyleName(i)).Resolve(ctx, model)
}

func (b *Base) text(ctx *render.Context, model any) string {
	return b.Text.Eval(ctx, model)
}

// Styled sets the style names of s and returns it, for use in tree literals.
func Styled[S Section](s S, names ...string) S {
	s.base().SetStyles(names...)
	return s
}

// When sets the ShouldRender property of s and returns it.
func When[S Section](s S, flag render.Flag) S {
	s.base().ShouldRender = flag
	return s
}

// Watermark sets the watermark image path of s and returns it.
func Watermark[S Section](s S, path render.Text) S {
	s.base().WatermarkImagePath = path
	return s
}

// Key returns the key of s.
func Key(s Section) string { return s.base().key }

// Children returns the children of s.
func Children(s Section) []Section { return s.base().children }

// Parent returns the parent of s.
func Parent(s Section) Section { return s.base().parent }

// Visible reports whether s renders for model on the current page.
func Visible(ctx *render.Context, s Section, model any) bool {
	b := s.base()
	if !b.ShouldRender.IsSet() {
		return true
	}
	return b.ShouldRender.Eval(ctx, model)
}

// visibleChildren returns the children of b that render.
func (b *Base) visibleChildren(ctx *render.Context, model any) []Section {
	out := make([]Section, 0, len(b.children))
	for _, c := range b.children {
		if Visible(ctx, c, model) {
			out = append(out, c)
		}
	}
	return out
}

// Layout lays out s and its visible subtree. The bounds of s must have been
// assigned with ctx.SetBounds, by the caller for the root and by the
// parent's OnLayout for every other section.
func Layout(ctx *render.Context, s Section, model any) error {
	b := s.base()
	bounds, ok := ctx.Bounds(s)
	if !ok {
		return wrap("layout", b.key, ErrNotLaidOut)
	}
	st := b.style(ctx, model, 0)
	content, err := ctx.Clamp(b.key, bounds, st.Margin)
	if err != nil {
		return wrap("layout", b.key, err)
	}
	if err := s.OnLayout(ctx, model, content); err != nil {
		return wrap("layout", b.key, err)
	}
	for _, c := range b.children {
		if !Visible(ctx, c, model) {
			continue
		}
		if err := Layout(ctx, c, model); err != nil {
			return err
		}
	}
	return nil
}

// Render draws s and its visible subtree. Layout must have completed for
// the current page.
func Render(ctx *render.Context, s Section, model any) error {
	b := s.base()
	bounds, ok := ctx.Bounds(s)
	if !ok {
		return wrap("render", b.key, ErrNotLaidOut)
	}
	st := b.style(ctx, model, 0)
	content := bounds.Subtract(st.Margin)

	if !b.noBackground && !st.Background.IsTransparent() {
		ctx.Canvas.DrawFilledRectangle(content, st.Background)
	}
	if err := s.OnRender(ctx, model, content); err != nil {
		return wrap("render", b.key, err)
	}
	for _, c := range b.children {
		if !Visible(ctx, c, model) {
			continue
		}
		if err := Render(ctx, c, model); err != nil {
			return err
		}
	}
	if !b.noBorder && st.BorderWidth > 0 {
		ctx.Canvas.DrawRectangle(content, st.BorderWidth, st.BorderColor)
	}
	if path := b.WatermarkImagePath.Eval(ctx, model); path != "" {
		ctx.Canvas.DrawImage(path, bounds, canvas.Center, canvas.Middle)
	}
	return nil
}

// Walk calls fn for s and every descendant in depth-first order. Returning
// false from fn skips the subtree of that section.
func Walk(s Section, fn func(s Section, depth int) bool) {
	walk(s, 0, fn)
}

func walk(s Section, depth int, fn func(Section, int) bool) {
	if !fn(s, depth) {
		return
	}
	for _, c := range s.base().children {
		walk(c, depth+1, fn)
	}
}

// Find returns the first section with the given key, or nil.
func Find(root Section, key string) Section {
	var found Section
	Walk(root, func(s Section, _ int) bool {
		if found != nil {
			return false
		}
		if s.base().key == key {
			found = s
			return false
		}
		return true
	})
	return found
}
