package canvas_test

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/image/bmp"

	"github.com/lvillar/gridpdf/canvas"
	"github.com/lvillar/gridpdf/grid"
)

func newDoc(t *testing.T) *canvas.PDFDocument {
	t.Helper()
	doc := canvas.NewPDFDocument(canvas.PDFConfig{
		Title:        "canvas test",
		CreationDate: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	})
	if err := doc.AddPage(); err != nil {
		t.Fatalf("add page: %v", err)
	}
	return doc
}

func TestHex(t *testing.T) {
	tests := []struct {
		in      string
		want    canvas.Color
		wantErr bool
	}{
		{"#ff8000", canvas.RGB(255, 128, 0), false},
		{"2980b9", canvas.RGB(41, 128, 185), false},
		{"#fff", canvas.Transparent, true},
		{"zzzzzz", canvas.Transparent, true},
	}
	for _, tt := range tests {
		got, err := canvas.Hex(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("Hex(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("Hex(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestTransparentIsZero(t *testing.T) {
	var c canvas.Color
	if !c.IsTransparent() || !canvas.Transparent.IsTransparent() {
		t.Error("zero color must be transparent")
	}
	if canvas.Black.IsTransparent() {
		t.Error("black must be opaque")
	}
}

func TestFontHelpers(t *testing.T) {
	f := canvas.Font{Family: "Times", Style: "I", Size: 9}
	if got := f.Bold(); got.Style != "BI" {
		t.Errorf("bold italic style = %q", got.Style)
	}
	if got := f.Resize(14); got.Size != 14 || got.Family != "Times" {
		t.Errorf("resize = %+v", got)
	}
	if canvas.DefaultFont.String() != "Helvetica 10pt" {
		t.Errorf("default font string = %q", canvas.DefaultFont.String())
	}
}

func TestPDFDocumentSave(t *testing.T) {
	doc := newDoc(t)
	w, h := doc.PageSize()
	g := grid.New(w, h, 200, 80)
	c := doc.Canvas(g)

	c.DrawFilledRectangle(grid.Bounds{LeftColumn: 1, TopRow: 1, Columns: 80, Rows: 10}, canvas.LightGray)
	c.DrawText("Hello World", canvas.DefaultFont, grid.Bounds{LeftColumn: 2, TopRow: 2, Columns: 40, Rows: 5}, canvas.MiddleLeft, canvas.Black)
	c.DrawWrapped("a long paragraph that needs to wrap over several lines of the grid", canvas.DefaultFont,
		grid.Bounds{LeftColumn: 2, TopRow: 12, Columns: 20, Rows: 30}, canvas.TopLeft, 1, canvas.Black)
	c.DrawRectangle(grid.Bounds{LeftColumn: 1, TopRow: 1, Columns: 80, Rows: 200}, 0.3, canvas.Gray)
	c.DrawLine(canvas.Point{Column: 1, Row: 50}, canvas.Point{Column: 81, Row: 50}, 0.2, canvas.Black)

	data, err := doc.Save()
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("output does not start with %%PDF: %q", data[:min(8, len(data))])
	}
	if _, err := doc.Save(); err != canvas.ErrClosed {
		t.Errorf("second save error = %v, want ErrClosed", err)
	}
	t.Logf("canvas PDF: %d bytes", len(data))
}

func TestSaveWithoutPages(t *testing.T) {
	doc := canvas.NewPDFDocument(canvas.PDFConfig{})
	if _, err := doc.Save(); err != canvas.ErrNoPage {
		t.Errorf("error = %v, want ErrNoPage", err)
	}
}

func TestMeasureText(t *testing.T) {
	doc := newDoc(t)
	w, h := doc.PageSize()
	c := doc.Canvas(grid.New(w, h, 200, 80))

	rows, cols := c.MeasureText(canvas.DefaultFont, "Hello World")
	if rows < 1 || cols < 1 {
		t.Fatalf("measure = %d rows, %d cols", rows, cols)
	}
	_, longer := c.MeasureText(canvas.DefaultFont, "Hello World, Hello World")
	if longer <= cols {
		t.Errorf("longer text measured %d columns, not more than %d", longer, cols)
	}
	bigRows, _ := c.MeasureText(canvas.DefaultFont.Resize(30), "Hello")
	if bigRows <= rows {
		t.Errorf("30pt text measured %d rows, not more than %d", bigRows, rows)
	}

	one := c.MeasureWrapped(canvas.DefaultFont, "short", 80, 1)
	many := c.MeasureWrapped(canvas.DefaultFont, "this sentence is long enough to wrap several times in a narrow box", 10, 1)
	if many <= one {
		t.Errorf("wrapped rows = %d, single line rows = %d", many, one)
	}
	if c.MeasureWrapped(canvas.DefaultFont, "", 10, 1) != 0 {
		t.Error("empty text must measure zero rows")
	}
}

func TestDrawImageMissingFile(t *testing.T) {
	doc := newDoc(t)
	w, h := doc.PageSize()
	c := doc.Canvas(grid.New(w, h, 100, 100))
	b := grid.Bounds{LeftColumn: 1, TopRow: 1, Columns: 10, Rows: 10}

	if c.DrawImage("", b, canvas.Center, canvas.Middle) {
		t.Error("empty path must be skipped")
	}
	if c.DrawImage(filepath.Join(t.TempDir(), "missing.png"), b, canvas.Center, canvas.Middle) {
		t.Error("missing file must be skipped")
	}
	if _, err := doc.Save(); err != nil {
		t.Fatalf("missing images must not fail the document: %v", err)
	}
}

func checker() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 40; x++ {
			if (x/5+y/5)%2 == 0 {
				img.Set(x, y, color.Black)
			} else {
				img.Set(x, y, color.White)
			}
		}
	}
	return img
}

func TestDrawConvertedImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logo.bmp")
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, checker()); err != nil {
		t.Fatalf("encode bmp: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	doc := newDoc(t)
	w, h := doc.PageSize()
	c := doc.Canvas(grid.New(w, h, 100, 100))
	if !c.DrawImage(path, grid.Bounds{LeftColumn: 1, TopRow: 1, Columns: 20, Rows: 20}, canvas.Center, canvas.Middle) {
		t.Fatal("BMP image was not drawn")
	}
	if err := c.DrawImageData("checker", checker(), grid.Bounds{LeftColumn: 30, TopRow: 1, Columns: 20, Rows: 10}, canvas.Left, canvas.Top); err != nil {
		t.Fatalf("draw image data: %v", err)
	}
	if _, err := doc.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}
}

func TestImagesDownscale(t *testing.T) {
	doc := newDoc(t)
	im := canvas.NewImages(doc.Fpdf())
	im.MaxPixels = 10
	info, err := im.Register("big", checker())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if info.Width <= 0 || info.Height <= 0 {
		t.Fatalf("info = %+v", info)
	}
	if r := info.Width / info.Height; r < 1.9 || r > 2.1 {
		t.Errorf("aspect ratio = %v, want ~2", r)
	}
	again, err := im.Register("big", checker())
	if err != nil || again != info {
		t.Errorf("second registration = %+v, %v", again, err)
	}
}

func TestStationeryMissingFile(t *testing.T) {
	doc := canvas.NewPDFDocument(canvas.PDFConfig{Stationery: filepath.Join(t.TempDir(), "nope.pdf")})
	if err := doc.AddPage(); err == nil {
		t.Error("expected error for missing stationery")
	}
}

func TestStationery(t *testing.T) {
	src := newDoc(t)
	w, h := src.PageSize()
	src.Canvas(grid.New(w, h, 10, 10)).DrawText("LETTERHEAD", canvas.DefaultFont,
		grid.Bounds{LeftColumn: 1, TopRow: 1, Columns: 10, Rows: 1}, canvas.TopCenter, canvas.Blue)
	data, err := src.Save()
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "letterhead.pdf")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	doc := canvas.NewPDFDocument(canvas.PDFConfig{Stationery: path})
	for i := 0; i < 2; i++ {
		if err := doc.AddPage(); err != nil {
			t.Fatalf("add page %d: %v", i+1, err)
		}
	}
	out, err := doc.Save()
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if doc.PageCount() != 2 || len(out) == 0 {
		t.Errorf("pages = %d, bytes = %d", doc.PageCount(), len(out))
	}
}
