// Package canvastest provides canvas and document doubles for tests.
package canvastest

import (
	"fmt"
	"image"
	"strings"
	"sync"

	"github.com/lvillar/gridpdf/canvas"
	"github.com/lvillar/gridpdf/grid"
)

// Op is one recorded drawing call.
type Op struct {
	Kind   string // "text", "wrapped", "fill", "rect", "line", "image", "imagedata"
	Text   string
	Font   canvas.Font
	Bounds grid.Bounds
	Color  canvas.Color
	From   canvas.Point
	To     canvas.Point
	Path   string
}

func (o Op) String() string {
	return fmt.Sprintf("%s %q %v", o.Kind, o.Text, o.Bounds)
}

// Recorder is a Canvas that records calls instead of drawing. Text
// measurement is deterministic: one row per line, one column per rune,
// scaled by the font size relative to 10pt.
type Recorder struct {
	G      grid.Grid
	Images map[string]bool // paths DrawImage accepts

	mu  sync.Mutex
	ops []Op
}

// NewRecorder returns a Recorder for g.
func NewRecorder(g grid.Grid) *Recorder {
	return &Recorder{G: g, Images: make(map[string]bool)}
}

// Ops returns a copy of the recorded calls.
func (r *Recorder) Ops() []Op {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Op(nil), r.ops...)
}

// OpsOfKind returns the recorded calls of the given kind.
func (r *Recorder) OpsOfKind(kind string) []Op {
	var out []Op
	for _, op := range r.Ops() {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// Texts returns the text of every text and wrapped call, in order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.Ops() {
		if op.Kind == "text" || op.Kind == "wrapped" {
			out = append(out, op.Text)
		}
	}
	return out
}

// Reset forgets the recorded calls.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.ops = nil
	r.mu.Unlock()
}

func (r *Recorder) record(op Op) {
	r.mu.Lock()
	r.ops = append(r.ops, op)
	r.mu.Unlock()
}

// Grid implements canvas.Canvas.
func (r *Recorder) Grid() grid.Grid { return r.G }

func scale(f canvas.Font) float64 {
	if f.Size <= 0 {
		return 1
	}
	return f.Size / 10
}

// MeasureText implements canvas.Canvas.
func (r *Recorder) MeasureText(font canvas.Font, text string) (rows, columns int) {
	s := scale(font)
	rows = int(s + 0.5)
	if rows < 1 {
		rows = 1
	}
	return rows, int(float64(len([]rune(text)))*s + 0.5)
}

// MeasureWrapped implements canvas.Canvas.
func (r *Recorder) MeasureWrapped(font canvas.Font, text string, columns int, lineSpacing float64) int {
	if text == "" {
		return 0
	}
	if columns < 1 {
		columns = 1
	}
	lineRows, _ := r.MeasureText(font, "")
	lines := 0
	for _, para := range strings.Split(text, "\n") {
		_, w := r.MeasureText(font, para)
		n := (w + columns - 1) / columns
		if n < 1 {
			n = 1
		}
		lines += n
	}
	if lineSpacing <= 0 {
		lineSpacing = 1
	}
	return int(float64(lines*lineRows)*lineSpacing + 0.5)
}

// DrawText implements canvas.Canvas.
func (r *Recorder) DrawText(text string, font canvas.Font, bounds grid.Bounds, _ canvas.Align, color canvas.Color) {
	r.record(Op{Kind: "text", Text: text, Font: font, Bounds: bounds, Color: color})
}

// DrawWrapped implements canvas.Canvas.
func (r *Recorder) DrawWrapped(text string, font canvas.Font, bounds grid.Bounds, _ canvas.Align, _ float64, color canvas.Color) {
	r.record(Op{Kind: "wrapped", Text: text, Font: font, Bounds: bounds, Color: color})
}

// DrawFilledRectangle implements canvas.Canvas.
func (r *Recorder) DrawFilledRectangle(bounds grid.Bounds, color canvas.Color) {
	r.record(Op{Kind: "fill", Bounds: bounds, Color: color})
}

// DrawRectangle implements canvas.Canvas.
func (r *Recorder) DrawRectangle(bounds grid.Bounds, _ float64, color canvas.Color) {
	r.record(Op{Kind: "rect", Bounds: bounds, Color: color})
}

// DrawLine implements canvas.Canvas.
func (r *Recorder) DrawLine(from, to canvas.Point, _ float64, color canvas.Color) {
	r.record(Op{Kind: "line", From: from, To: to, Color: color})
}

// DrawImage implements canvas.Canvas.
func (r *Recorder) DrawImage(path string, bounds grid.Bounds, _ canvas.HAlign, _ canvas.VAlign) bool {
	if path == "" || !r.Images[path] {
		return false
	}
	r.record(Op{Kind: "image", Path: path, Bounds: bounds})
	return true
}

// DrawImageData implements canvas.Canvas.
func (r *Recorder) DrawImageData(name string, img image.Image, bounds grid.Bounds, _ canvas.HAlign, _ canvas.VAlign) error {
	if img == nil {
		return fmt.Errorf("canvastest: nil image %q", name)
	}
	r.record(Op{Kind: "imagedata", Path: name, Bounds: bounds})
	return nil
}

// Document is an in-memory canvas.Document whose pages are Recorders.
type Document struct {
	Width, Height float64
	Pages         []*Recorder
	Saved         bool
	Images        map[string]bool
}

// NewDocument returns a Document with pages of the given physical size.
func NewDocument(width, height float64) *Document {
	return &Document{Width: width, Height: height, Images: make(map[string]bool)}
}

// AddPage implements canvas.Document.
func (d *Document) AddPage() error {
	if d.Saved {
		return canvas.ErrClosed
	}
	d.Pages = append(d.Pages, nil)
	return nil
}

// PageCount implements canvas.Document.
func (d *Document) PageCount() int { return len(d.Pages) }

// PageSize implements canvas.Document.
func (d *Document) PageSize() (float64, float64) { return d.Width, d.Height }

// Canvas implements canvas.Document. It returns the Recorder of the current
// page, creating it on first use.
func (d *Document) Canvas(g grid.Grid) canvas.Canvas {
	i := len(d.Pages) - 1
	if d.Pages[i] == nil {
		rec := NewRecorder(g)
		for p := range d.Images {
			rec.Images[p] = true
		}
		d.Pages[i] = rec
	}
	return d.Pages[i]
}

// Save implements canvas.Document. The payload lists the recorded texts.
func (d *Document) Save() ([]byte, error) {
	if d.Saved {
		return nil, canvas.ErrClosed
	}
	if len(d.Pages) == 0 {
		return nil, canvas.ErrNoPage
	}
	d.Saved = true
	var b strings.Builder
	for i, p := range d.Pages {
		fmt.Fprintf(&b, "page %d\n", i+1)
		if p == nil {
			continue
		}
		for _, t := range p.Texts() {
			fmt.Fprintf(&b, "  %s\n", t)
		}
	}
	return []byte(b.String()), nil
}
