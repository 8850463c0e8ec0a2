// Package gridpdf generates paginated PDF documents from a tree of layout
// sections measured against a fixed row/column grid.
//
// A Template supplies the styles, the grid resolution, the page count and
// the section tree for a model. The Generator creates the pages, lays the
// tree out and renders it once per page, and serializes the document:
//
//	gen := gridpdf.New(invoiceTemplate{}, gridpdf.WithPageSize(gridpdf.PageSizeA4))
//	data, err := gen.Build(invoice)
//
// The section tree is never mutated during a build; the bounds computed for
// each page live in that page's render.Context.
package gridpdf

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/lvillar/gridpdf/canvas"
	"github.com/lvillar/gridpdf/grid"
	"github.com/lvillar/gridpdf/render"
	"github.com/lvillar/gridpdf/section"
)

// Template describes one kind of document.
type Template interface {
	// Styles returns the styles of the document. It is called once per
	// Generator.
	Styles() (*render.Styles, error)

	// GridSize returns the grid resolution laid over every page.
	GridSize() (rows, columns int)

	// PageCount returns the number of pages the model needs.
	PageCount(model any) (int, error)

	// Content returns the section tree rendered on every page.
	Content(model any) (section.Section, error)
}

// Paginator is anything that splits items over pages, such as a
// *paginate.Calculator.
type Paginator interface {
	PageCount() int
}

// Paginated is implemented by templates whose page count derives from
// paginated items. Build checks that every paginator agrees with
// Template.PageCount.
type Paginated interface {
	Paginators(model any) []Paginator
}

// Generator builds documents from a Template. It is safe for concurrent use.
type Generator struct {
	tpl Template
	cfg generatorConfig

	stylesOnce sync.Once
	styles     *render.Styles
	stylesErr  error
}

// New creates a Generator for tpl. Without options pages are portrait A4
// measured in millimeters.
func New(tpl Template, opts ...Option) *Generator {
	g := &Generator{tpl: tpl, cfg: defaultConfig()}
	for _, opt := range opts {
		opt(&g.cfg)
	}
	return g
}

// Styles returns the template styles, initializing them on first use.
func (g *Generator) Styles() (*render.Styles, error) {
	g.stylesOnce.Do(func() {
		g.styles, g.stylesErr = g.tpl.Styles()
		if g.stylesErr == nil && g.styles == nil {
			g.styles = render.NewStyles(render.NewStyle(render.DefaultStyleName))
		}
	})
	return g.styles, g.stylesErr
}

// NewDocument returns an empty PDF document configured from the options.
func (g *Generator) NewDocument() *canvas.PDFDocument {
	c := g.cfg
	return canvas.NewPDFDocument(canvas.PDFConfig{
		Orientation:    c.orientation,
		Unit:           c.unit,
		Size:           c.size,
		Width:          c.width,
		Height:         c.height,
		FontDir:        c.fontDir,
		Title:          c.title,
		Author:         c.author,
		Subject:        c.subject,
		Creator:        "gridpdf",
		CreationDate:   c.creationDate,
		Stationery:     c.stationery,
		StationeryPage: c.stationeryPage,
	})
}

// Build generates the PDF document for model. On failure it returns a nil
// slice; a partial document is never returned.
func (g *Generator) Build(model any) ([]byte, error) {
	return g.Render(g.NewDocument(), model)
}

// BuildTo generates the PDF document for model and writes it to w.
func (g *Generator) BuildTo(w io.Writer, model any) error {
	data, err := g.Build(model)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Render lays out and renders every page of model into doc and returns
// the saved document.
func (g *Generator) Render(doc canvas.Document, model any) ([]byte, error) {
	styles, err := g.Styles()
	if err != nil {
		return nil, newBuildError("Styles", 0, err)
	}
	rows, cols := g.tpl.GridSize()
	if rows < 1 || cols < 1 {
		return nil, newBuildError("GridSize", 0, fmt.Errorf("%w: %dx%d", ErrInvalidGrid, rows, cols))
	}
	pages, err := g.pageCount(model)
	if err != nil {
		return nil, err
	}
	root, err := g.tpl.Content(model)
	if err != nil {
		return nil, newBuildError("Content", 0, err)
	}
	if root == nil {
		return nil, newBuildError("Content", 0, ErrNoContent)
	}

	log := g.cfg.logger
	log.Debug("build started", "pages", pages, "rows", rows, "columns", cols, "debug", g.cfg.debug.String())
	for i := 0; i < pages; i++ {
		if err := g.renderPage(doc, root, styles, model, i, pages, rows, cols); err != nil {
			log.Error("build failed", "page", i+1, "error", err)
			return nil, err
		}
	}
	data, err := doc.Save()
	if err != nil {
		return nil, newBuildError("Save", 0, err)
	}
	log.Debug("build finished", "pages", pages, "bytes", len(data))
	return data, nil
}

func (g *Generator) pageCount(model any) (int, error) {
	pages, err := g.tpl.PageCount(model)
	if err != nil {
		return 0, newBuildError("PageCount", 0, err)
	}
	if pages < 1 {
		return 0, newBuildError("PageCount", 0, fmt.Errorf("%w: got %d", ErrInvalidPageCount, pages))
	}
	if p, ok := g.tpl.(Paginated); ok {
		for _, pg := range p.Paginators(model) {
			if n := pg.PageCount(); n != pages {
				return 0, newBuildError("PageCount", 0, fmt.Errorf("%w: template says %d, paginator %d", ErrPageCountMismatch, pages, n))
			}
		}
	}
	return pages, nil
}

func (g *Generator) renderPage(doc canvas.Document, root section.Section, styles *render.Styles, model any, index, pages, rows, cols int) error {
	page := index + 1
	if err := doc.AddPage(); err != nil {
		return newBuildError("AddPage", page, err)
	}
	w, h := doc.PageSize()
	gr := grid.New(w, h, rows, cols)
	ctx := render.NewContext(index, pages, doc, doc.Canvas(gr), styles, g.cfg.debug)
	ctx.Degenerate = g.degenerate(page)
	ctx.Overflow = g.overflow(page)

	log := g.cfg.logger
	log.Debug("page started", "page", page)
	if section.Visible(ctx, root, model) {
		ctx.SetBounds(root, gr.Extent())
		if err := section.Layout(ctx, root, model); err != nil {
			return newBuildError("Layout", page, err)
		}
		if !g.cfg.debug.Has(render.HideDetails) {
			if err := section.Render(ctx, root, model); err != nil {
				return newBuildError("Render", page, err)
			}
		}
		if g.cfg.debug.Has(render.RevealLayout) {
			section.RenderDebug(ctx, root, model)
		}
	}
	if g.cfg.debug.Has(render.RevealGrid) {
		section.RenderGrid(ctx)
	}
	log.Debug("page finished", "page", page, "sections", ctx.LaidOut())
	return nil
}

func (g *Generator) degenerate(page int) func(string, grid.Bounds) error {
	return func(key string, b grid.Bounds) error {
		if g.cfg.strict {
			return fmt.Errorf("%w: %q at %v", section.ErrDegenerateBounds, key, b)
		}
		g.cfg.logger.LogAttrs(context.Background(), slog.LevelWarn, "bounds clamped",
			slog.Int("page", page), slog.String("section", key), slog.String("bounds", b.String()))
		return nil
	}
}

func (g *Generator) overflow(page int) func(string, int) error {
	return func(key string, dropped int) error {
		if g.cfg.strict {
			return fmt.Errorf("%w: %q dropped %d rows", section.ErrOverflow, key, dropped)
		}
		g.cfg.logger.LogAttrs(context.Background(), slog.LevelWarn, "content dropped",
			slog.Int("page", page), slog.String("section", key), slog.Int("dropped", dropped))
		return nil
	}
}
