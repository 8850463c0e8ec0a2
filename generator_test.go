package gridpdf_test

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lvillar/gridpdf"
	"github.com/lvillar/gridpdf/barcode"
	"github.com/lvillar/gridpdf/canvas"
	"github.com/lvillar/gridpdf/canvas/canvastest"
	"github.com/lvillar/gridpdf/grid"
	"github.com/lvillar/gridpdf/paginate"
	"github.com/lvillar/gridpdf/render"
	"github.com/lvillar/gridpdf/section"
)

// simpleTemplate renders one section on a fixed number of pages.
type simpleTemplate struct {
	rows, cols int
	pages      int
	styles     *render.Styles
	content    func() section.Section
	styleCalls atomic.Int32
}

func (t *simpleTemplate) Styles() (*render.Styles, error) {
	t.styleCalls.Add(1)
	return t.styles, nil
}

func (t *simpleTemplate) GridSize() (int, int) { return t.rows, t.cols }

func (t *simpleTemplate) PageCount(any) (int, error) { return t.pages, nil }

func (t *simpleTemplate) Content(any) (section.Section, error) {
	if t.content == nil {
		return nil, nil
	}
	return t.content(), nil
}

func hello() *simpleTemplate {
	return &simpleTemplate{
		rows: 200, cols: 80, pages: 1,
		content: func() section.Section {
			return section.NewTextBlock("hello", render.Const("Hello World"))
		},
	}
}

func TestBuildHelloWorld(t *testing.T) {
	data, err := gridpdf.New(hello()).Build(nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected non-empty PDF output")
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatal("output does not start with %PDF header")
	}
}

func TestBuildTo(t *testing.T) {
	var buf bytes.Buffer
	if err := gridpdf.New(hello(), gridpdf.WithPageSize(gridpdf.PageSizeLetter),
		gridpdf.WithOrientation(gridpdf.OrientationLandscape)).BuildTo(&buf, nil); err != nil {
		t.Fatalf("BuildTo failed: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatal("output does not start with %PDF header")
	}
}

func TestBuildIsReproducible(t *testing.T) {
	opts := []gridpdf.Option{
		gridpdf.WithCreationDate(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)),
		gridpdf.WithMetadata("Hello", "gridpdf", "test"),
	}
	a, err := gridpdf.New(hello(), opts...).Build(nil)
	if err != nil {
		t.Fatal(err)
	}
	b, err := gridpdf.New(hello(), opts...).Build(nil)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("two builds with a pinned creation date differ")
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		tpl  *simpleTemplate
		op   string
		want error
	}{
		{"no content", &simpleTemplate{rows: 10, cols: 10, pages: 1}, "Content", gridpdf.ErrNoContent},
		{"zero rows", &simpleTemplate{rows: 0, cols: 10, pages: 1}, "GridSize", gridpdf.ErrInvalidGrid},
		{"zero pages", &simpleTemplate{rows: 10, cols: 10, pages: 0}, "PageCount", gridpdf.ErrInvalidPageCount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := gridpdf.New(tt.tpl).Build(nil)
			if data != nil {
				t.Error("failed build returned data")
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			var berr *gridpdf.BuildError
			if !errors.As(err, &berr) || berr.Op != tt.op {
				t.Errorf("err = %#v, want BuildError op %s", err, tt.op)
			}
		})
	}
}

func TestRenderFailureAbortsBuild(t *testing.T) {
	tpl := &simpleTemplate{rows: 10, cols: 10, pages: 2, content: func() section.Section {
		return section.NewBarcode("code", render.Const("not digits"), barcode.EAN)
	}}
	doc := canvastest.NewDocument(100, 100)
	data, err := gridpdf.New(tpl).Render(doc, nil)
	if err == nil || data != nil {
		t.Fatalf("Render = %d bytes, %v; want error", len(data), err)
	}
	var berr *gridpdf.BuildError
	if !errors.As(err, &berr) || berr.Op != "Render" || berr.Page != 1 {
		t.Errorf("err = %v", err)
	}
	if doc.Saved {
		t.Error("document saved after a failed page")
	}
}

func TestStylesInitializedOnce(t *testing.T) {
	tpl := hello()
	gen := gridpdf.New(tpl)
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := gen.Render(canvastest.NewDocument(210, 297), nil); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()
	if n := tpl.styleCalls.Load(); n != 1 {
		t.Errorf("Styles called %d times", n)
	}
}

func TestDegenerateGeometry(t *testing.T) {
	styles := render.NewStyles(render.NewStyle("Default"),
		render.NewStyle("fat").WithMargin(grid.Uniform(20)),
	)
	tpl := &simpleTemplate{rows: 10, cols: 10, pages: 1, styles: styles, content: func() section.Section {
		return section.Styled(section.NewTextBlock("tiny", render.Const("x")), "fat")
	}}

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelWarn}))
	if _, err := gridpdf.New(tpl, gridpdf.WithLogger(logger)).Render(canvastest.NewDocument(100, 100), nil); err != nil {
		t.Fatalf("lenient build failed: %v", err)
	}
	if !strings.Contains(logs.String(), "bounds clamped") || !strings.Contains(logs.String(), "section=tiny") {
		t.Errorf("log = %q", logs.String())
	}

	_, err := gridpdf.New(tpl, gridpdf.WithStrictGeometry()).Render(canvastest.NewDocument(100, 100), nil)
	if !errors.Is(err, section.ErrDegenerateBounds) {
		t.Fatalf("strict err = %v, want ErrDegenerateBounds", err)
	}
	var berr *gridpdf.BuildError
	if !errors.As(err, &berr) || berr.Op != "Layout" || berr.Page != 1 {
		t.Errorf("strict err = %v", err)
	}
}

func TestDebugModes(t *testing.T) {
	tpl := hello()
	tpl.rows, tpl.cols = 4, 3

	doc := canvastest.NewDocument(100, 100)
	if _, err := gridpdf.New(tpl, gridpdf.WithDebug(render.HideDetails|render.RevealGrid)).Render(doc, nil); err != nil {
		t.Fatal(err)
	}
	page := doc.Pages[0]
	if texts := page.Texts(); len(texts) != 0 {
		t.Errorf("HideDetails drew %q", texts)
	}
	if n := len(page.OpsOfKind("line")); n != (3+1)+(4+1) {
		t.Errorf("grid lines = %d, want 9", n)
	}

	doc = canvastest.NewDocument(100, 100)
	if _, err := gridpdf.New(tpl, gridpdf.WithDebug(render.RevealLayout)).Render(doc, nil); err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(doc.Pages[0].Texts(), ","); got != "Hello World,hello" {
		t.Errorf("texts = %s", got)
	}
}

// invoice is a model whose lines are paginated over as many pages as needed.
type invoice struct {
	Number string
	Lines  []invoiceLine
}

type invoiceLine struct {
	Item  string
	Qty   int
	Price float64
}

type invoiceTemplate struct {
	budget paginate.Budget
	drift  int
}

func (t invoiceTemplate) calculator(m invoice) *paginate.Calculator[invoiceLine] {
	return paginate.New(m.Lines, t.budget)
}

func (invoiceTemplate) Styles() (*render.Styles, error) {
	def := render.NewStyle("Default").WithFont(canvas.Font{Family: "Helvetica", Size: 10})
	return render.NewStyles(def,
		def.Copy("Header").WithRelativeHeight(0.1),
		def.Copy("Footer").WithRelativeHeight(0.05),
		def.Copy("GridHeader").WithFont(canvas.Font{Family: "Helvetica", Style: "B", Size: 10}).WithBackground(canvas.LightGray),
	), nil
}

func (invoiceTemplate) GridSize() (int, int) { return 60, 40 }

func (t invoiceTemplate) PageCount(model any) (int, error) {
	m, ok := model.(invoice)
	if !ok {
		return 0, fmt.Errorf("unexpected model %T", model)
	}
	return t.calculator(m).PageCount() + t.drift, nil
}

func (t invoiceTemplate) Paginators(model any) []gridpdf.Paginator {
	return []gridpdf.Paginator{t.calculator(model.(invoice))}
}

func (t invoiceTemplate) Content(model any) (section.Section, error) {
	pages := t.calculator(model.(invoice))
	items := render.Func(func(ctx *render.Context, _ any) []invoiceLine {
		return pages.Page(ctx.PageIndex)
	})
	lines := section.Styled(section.NewDataGrid("lines", items,
		section.Column[invoiceLine]{Header: "Item", Value: func(l invoiceLine) any { return l.Item }, Weight: 0.5},
		section.Column[invoiceLine]{Header: "Qty", Value: func(l invoiceLine) any { return l.Qty }, Align: canvas.Right},
		section.Column[invoiceLine]{Header: "Price", Value: func(l invoiceLine) any { return l.Price }, Format: "%.2f", Align: canvas.Right},
	), "", "GridHeader")
	header := section.Styled(section.NewPageHeader("header", render.Model(func(_ *render.Context, m invoice) string {
		return "Invoice " + m.Number
	})), "Header")
	footer := section.Styled(section.NewPageFooter("footer", render.Const("ACME Corp")), "Footer")
	return section.NewVStack("page", header, lines, footer), nil
}

func newInvoice(lines int) invoice {
	m := invoice{Number: "2024-001"}
	for i := 0; i < lines; i++ {
		m.Lines = append(m.Lines, invoiceLine{Item: fmt.Sprintf("item-%03d", i), Qty: i%5 + 1, Price: 9.5})
	}
	return m
}

func TestInvoicePagination(t *testing.T) {
	tpl := invoiceTemplate{budget: paginate.Budget{First: 40, Middle: 40, Last: 40}}
	m := newInvoice(100)
	doc := canvastest.NewDocument(210, 297)
	if _, err := gridpdf.New(tpl).Render(doc, m); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if len(doc.Pages) != 3 {
		t.Fatalf("pages = %d, want 3", len(doc.Pages))
	}
	seen := 0
	for i, p := range doc.Pages {
		texts := strings.Join(p.Texts(), "|")
		if !strings.Contains(texts, "Invoice 2024-001") {
			t.Errorf("page %d misses the header", i+1)
		}
		if want := fmt.Sprintf("Page %d of 3", i+1); !strings.Contains(texts, want) {
			t.Errorf("page %d misses %q", i+1, want)
		}
		for _, s := range p.Texts() {
			if strings.HasPrefix(s, "item-") {
				seen++
			}
		}
	}
	if seen != 100 {
		t.Errorf("rendered %d lines, want 100", seen)
	}
}

func TestInvoicePageCountMismatch(t *testing.T) {
	tpl := invoiceTemplate{budget: paginate.Budget{First: 40}, drift: 1}
	_, err := gridpdf.New(tpl).Build(newInvoice(100))
	if !errors.Is(err, gridpdf.ErrPageCountMismatch) {
		t.Fatalf("err = %v, want ErrPageCountMismatch", err)
	}
}

func TestInvoicePDF(t *testing.T) {
	tpl := invoiceTemplate{budget: paginate.Budget{First: 40, Middle: 40, Last: 40}}
	data, err := gridpdf.New(tpl, gridpdf.WithDebug(render.RevealLayout)).Build(newInvoice(60))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatal("output does not start with %PDF header")
	}
}
