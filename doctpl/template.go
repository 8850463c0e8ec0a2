package doctpl

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lvillar/gridpdf"
	"github.com/lvillar/gridpdf/barcode"
	"github.com/lvillar/gridpdf/canvas"
	"github.com/lvillar/gridpdf/grid"
	"github.com/lvillar/gridpdf/paginate"
	"github.com/lvillar/gridpdf/render"
	"github.com/lvillar/gridpdf/section"
)

// Sentinel errors for invalid templates.
var (
	ErrUnknownElement = errors.New("doctpl: unknown element type")
	ErrUnknownStyle   = errors.New("doctpl: unknown style")
	ErrInvalidValue   = errors.New("doctpl: invalid value")
)

const (
	defaultRows    = 100
	defaultColumns = 60
	defaultBudget  = 30
)

// Template is a compiled Document. It implements gridpdf.Template and
// gridpdf.Paginated for models of type map[string]any.
type Template struct {
	doc    *Document
	styles *render.Styles
}

// Compile checks doc and compiles its styles. Element errors, such as an
// unknown type or a header without exactly one child, are reported here
// rather than at build time.
func Compile(doc *Document) (*Template, error) {
	styles, err := compileStyles(doc)
	if err != nil {
		return nil, err
	}
	t := &Template{doc: doc, styles: styles}
	if _, err := t.build(nil); err != nil {
		return nil, err
	}
	return t, nil
}

// Options returns the generator options the document asks for.
func (t *Template) Options() []gridpdf.Option {
	d := t.doc
	var opts []gridpdf.Option
	if d.PageSize != "" {
		opts = append(opts, gridpdf.WithPageSize(d.PageSize))
	}
	if d.Orientation != "" {
		opts = append(opts, gridpdf.WithOrientation(d.Orientation))
	}
	if d.Unit != "" {
		opts = append(opts, gridpdf.WithUnit(d.Unit))
	}
	if d.Title != "" || d.Author != "" || d.Subject != "" {
		opts = append(opts, gridpdf.WithMetadata(d.Title, d.Author, d.Subject))
	}
	return opts
}

// Styles implements gridpdf.Template.
func (t *Template) Styles() (*render.Styles, error) { return t.styles, nil }

// GridSize implements gridpdf.Template.
func (t *Template) GridSize() (rows, columns int) {
	rows, columns = defaultRows, defaultColumns
	if g := t.doc.Grid; g != nil {
		if g.Rows > 0 {
			rows = g.Rows
		}
		if g.Columns > 0 {
			columns = g.Columns
		}
	}
	return rows, columns
}

// PageCount implements gridpdf.Template.
func (t *Template) PageCount(model any) (int, error) {
	return t.paginator(model).PageCount(), nil
}

// Paginators implements gridpdf.Paginated.
func (t *Template) Paginators(model any) []gridpdf.Paginator {
	return []gridpdf.Paginator{t.paginator(model)}
}

// Content implements gridpdf.Template.
func (t *Template) Content(model any) (section.Section, error) {
	return t.build(t.paginator(model))
}

// StyleNames returns the names of the compiled styles.
func (t *Template) StyleNames() []string { return t.styles.Names() }

func (t *Template) paginator(model any) *paginate.Calculator[any] {
	b := paginate.Budget{First: defaultBudget}
	if p := t.doc.ItemsPerPage; p != nil {
		b = paginate.Budget{First: p.First, Middle: p.Middle, Last: p.Last, Single: p.Single}
	}
	return paginate.New(items(model), b)
}

// build turns the element tree into sections. pages may be nil when only
// validating.
func (t *Template) build(pages *paginate.Calculator[any]) (section.Section, error) {
	b := &builder{styles: t.styles, pages: pages}
	return b.element(t.doc.Root, "root")
}

type builder struct {
	styles *render.Styles
	pages  *paginate.Calculator[any]
}

func (b *builder) element(e Element, path string) (section.Section, error) {
	key := e.Key
	if key == "" {
		key = path
	}
	s, err := b.kind(e, key, path)
	if err != nil {
		return nil, err
	}
	names := append([]string{e.Style}, e.Styles...)
	for _, n := range names {
		if n != "" && !b.styles.Has(n) {
			return nil, fmt.Errorf("%w %q in %s", ErrUnknownStyle, n, key)
		}
	}
	section.Styled(s, names...)

	show, err := b.visibility(e)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	if show.IsSet() {
		section.When(s, show)
	}
	if e.Watermark != "" {
		section.Watermark(s, text(e.Watermark))
	}
	return s, nil
}

func (b *builder) children(e Element, path string) ([]section.Section, error) {
	out := make([]section.Section, 0, len(e.Children))
	for i, c := range e.Children {
		s, err := b.element(c, fmt.Sprintf("%s.%d", path, i))
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (b *builder) kind(e Element, key, path string) (section.Section, error) {
	switch e.Type {
	case "vstack", "hstack", "layer":
		children, err := b.children(e, path)
		if err != nil {
			return nil, err
		}
		switch e.Type {
		case "vstack":
			return section.NewVStack(key, children...), nil
		case "hstack":
			return section.NewHStack(key, children...), nil
		}
		return section.NewLayer(key, children...), nil
	case "header":
		if len(e.Children) != 1 {
			return nil, &section.ConfigError{Key: key, Kind: "HeaderContent", Err: section.ErrChildCount}
		}
		children, err := b.children(e, path)
		if err != nil {
			return nil, err
		}
		return section.NewHeaderContent(key, text(e.Text), children[0])
	case "text":
		return section.NewTextBlock(key, text(e.Text)), nil
	case "wrap":
		return section.NewWrapText(key, text(e.Text)), nil
	case "keyvalue":
		pairs := make([]section.Pair, len(e.Pairs))
		for i, p := range e.Pairs {
			pairs[i] = section.Pair{Label: text(p.Label), Value: text(p.Value)}
		}
		kv := section.NewKeyValue(key, pairs...)
		if e.LabelWidth > 0 {
			kv.LabelWidth = e.LabelWidth
		}
		kv.SkipEmpty = e.SkipEmpty
		return kv, nil
	case "lines":
		lines := make([]render.Text, len(e.Lines))
		for i, l := range e.Lines {
			lines[i] = text(l)
		}
		return section.NewStackedText(key, lines...), nil
	case "grid":
		return b.grid(e, key)
	case "signature":
		s := section.NewSignature(key, text(e.Text), text(e.Caption))
		if e.Rule > 0 {
			s.RuleWeight = e.Rule
		}
		return s, nil
	case "pageHeader":
		h := section.NewPageHeader(key, text(e.Text))
		h.Subtitle = text(e.Subtitle)
		h.LogoPath = text(e.Logo)
		if e.LogoWidth > 0 {
			h.LogoWidth = e.LogoWidth
		}
		if e.Rule > 0 {
			h.RuleWeight = e.Rule
		}
		return h, nil
	case "pageFooter":
		f := section.NewPageFooter(key, text(e.Text))
		if e.PageFormat != "" {
			f.PageFormat = e.PageFormat
		}
		if e.Rule > 0 {
			f.RuleWeight = e.Rule
		}
		return f, nil
	case "barcode":
		name := e.Symbology
		if name == "" {
			name = "code128"
		}
		sym, err := barcode.ParseSymbology(name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		bc := section.NewBarcode(key, text(e.Text), sym)
		bc.ShowText = e.ShowText
		return bc, nil
	case "image":
		src := e.Src
		if src == "" {
			src = e.Text
		}
		return section.NewImage(key, text(src)), nil
	default:
		return nil, fmt.Errorf("%w %q at %s", ErrUnknownElement, e.Type, path)
	}
}

func (b *builder) grid(e Element, key string) (section.Section, error) {
	cols := make([]section.Column[any], len(e.Columns))
	for i, c := range e.Columns {
		h, err := parseHAlign(c.Align)
		if err != nil {
			return nil, fmt.Errorf("%s column %d: %w", key, i, err)
		}
		field, format := c.Field, c.Format
		cols[i] = section.Column[any]{
			Header: c.Header,
			Weight: c.Weight,
			Align:  h,
			Value: func(item any) any {
				v, _ := lookup(item, field)
				return formatValue(format, v)
			},
		}
	}
	pages := b.pages
	items := render.Func(func(ctx *render.Context, _ any) []any {
		if pages == nil {
			return nil
		}
		return pages.Page(ctx.PageIndex)
	})
	g := section.NewDataGrid(key, items, cols...)
	g.EmptyText = text(e.EmptyText)
	return g, nil
}

func (b *builder) visibility(e Element) (render.Flag, error) {
	var page render.Flag
	switch strings.ToLower(e.ShowOn) {
	case "", "all":
	case "first":
		page = render.OnFirstPage
	case "last":
		page = render.OnLastPage
	case "notlast":
		page = render.NotOnLastPage
	case "notfirst":
		page = render.Func(func(ctx *render.Context, _ any) bool { return !ctx.IsFirstPage() })
	case "middle":
		page = render.Func(func(ctx *render.Context, _ any) bool { return !ctx.IsFirstPage() && !ctx.IsLastPage() })
	default:
		return render.Flag{}, fmt.Errorf("%w: showOn %q", ErrInvalidValue, e.ShowOn)
	}
	if e.If == "" {
		return page, nil
	}
	field := e.If
	return render.Func(func(ctx *render.Context, model any) bool {
		if page.IsSet() && !page.Eval(ctx, model) {
			return false
		}
		v, ok := lookup(model, field)
		return ok && !isEmpty(v)
	}), nil
}

func compileStyles(doc *Document) (*render.Styles, error) {
	def := render.NewStyle(render.DefaultStyleName).WithFont(canvas.DefaultFont)
	if doc.Font != nil {
		def = def.WithFont(font(canvas.DefaultFont, doc.Font))
	}
	styles := render.NewStyles(def)
	for _, s := range doc.Styles {
		if s.Name == "" {
			return nil, fmt.Errorf("%w: style without name", ErrInvalidValue)
		}
		base := styles.Default()
		if s.BasedOn != "" {
			if !styles.Has(s.BasedOn) {
				return nil, fmt.Errorf("%w %q (basedOn of %q)", ErrUnknownStyle, s.BasedOn, s.Name)
			}
			base = styles.Get(s.BasedOn)
		}
		st, err := applyStyle(base, s)
		if err != nil {
			return nil, err
		}
		styles = styles.With(st)
	}
	return styles, nil
}

func applyStyle(base render.Style, s Style) (render.Style, error) {
	st := base.Copy(s.Name)
	if s.Font != nil {
		st = st.WithFont(font(base.Resolve(nil, nil).Font, s.Font))
	}
	if s.Color != nil {
		st = st.WithForeground(color(s.Color))
	}
	if s.Background != nil {
		st = st.WithBackground(color(s.Background))
	}
	if s.BorderColor != nil {
		st = st.WithBorderColor(color(s.BorderColor))
	}
	if s.Border > 0 {
		st = st.WithBorderWidth(s.Border)
	}
	if s.Margin != nil {
		st = st.WithMargin(spacing(s.Margin))
	}
	if s.Padding != nil {
		st = st.WithPadding(spacing(s.Padding))
	}
	if s.CellPadding != nil {
		st = st.WithCellPadding(spacing(s.CellPadding))
	}
	if s.Align != "" {
		a, err := parseAlign(s.Align)
		if err != nil {
			return st, fmt.Errorf("style %q: %w", s.Name, err)
		}
		st = st.WithTextAlign(a)
	}
	if s.ParagraphAlign != "" {
		a, err := parseAlign(s.ParagraphAlign)
		if err != nil {
			return st, fmt.Errorf("style %q: %w", s.Name, err)
		}
		st = st.WithParagraphAlign(a)
	}
	if s.LineSpacing > 0 {
		st = st.WithLineSpacing(s.LineSpacing)
	}
	if s.RelativeHeight > 0 {
		st = st.WithRelativeHeight(s.RelativeHeight)
	}
	if s.RelativeWidth > 0 {
		st = st.WithRelativeWidth(s.RelativeWidth)
	}
	if len(s.RelativeWidths) > 0 {
		st = st.WithRelativeWidths(s.RelativeWidths...)
	}
	return st, nil
}

func font(base canvas.Font, f *Font) canvas.Font {
	if f.Family != "" {
		base.Family = f.Family
	}
	if f.Style != "" {
		base.Style = strings.ToUpper(f.Style)
	}
	if f.Size > 0 {
		base.Size = f.Size
	}
	return base
}

func color(c *Color) canvas.Color {
	clamp := func(v int) uint8 { return uint8(min(max(v, 0), 255)) }
	return canvas.RGB(clamp(c.R), clamp(c.G), clamp(c.B))
}

func spacing(s *Spacing) grid.Spacing {
	return grid.Spacing{Left: s.Left, Top: s.Top, Right: s.Right, Bottom: s.Bottom}
}

func parseHAlign(s string) (canvas.HAlign, error) {
	switch strings.ToUpper(s) {
	case "", "L":
		return canvas.Left, nil
	case "C":
		return canvas.Center, nil
	case "R":
		return canvas.Right, nil
	case "J":
		return canvas.Justify, nil
	}
	return canvas.Left, fmt.Errorf("%w: align %q", ErrInvalidValue, s)
}

func parseAlign(s string) (canvas.Align, error) {
	s = strings.ToUpper(s)
	h, err := parseHAlign(s[:1])
	if err != nil {
		return canvas.Align{}, err
	}
	a := canvas.Align{H: h, V: canvas.Top}
	if len(s) > 1 {
		switch s[1:] {
		case "T":
		case "M":
			a.V = canvas.Middle
		case "B":
			a.V = canvas.Bottom
		default:
			return canvas.Align{}, fmt.Errorf("%w: align %q", ErrInvalidValue, s)
		}
	}
	return a, nil
}
