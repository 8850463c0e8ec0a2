package canvas

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/lvillar/gridpdf/grid"
)

// Sentinel errors for document output.
var (
	ErrClosed = errors.New("canvas: document is closed")
	ErrNoPage = errors.New("canvas: no page has been added")
)

// PDFConfig configures a PDFDocument. The zero value produces portrait A4
// pages measured in millimeters.
type PDFConfig struct {
	Orientation string  // "portrait" or "landscape"
	Unit        string  // "pt", "mm", "cm" or "inch"
	Size        string  // "A3", "A4", "A5", "Letter", "Legal", "Tabloid"
	Width       float64 // custom page width in Unit, overrides Size
	Height      float64 // custom page height in Unit, overrides Size
	FontDir     string

	Title, Author, Subject, Creator string

	// CreationDate pins the document timestamps, which makes the output
	// byte-for-byte reproducible.
	CreationDate time.Time

	// Stationery is an optional PDF whose page StationeryPage (1-based) is
	// drawn as the background of every page.
	Stationery     string
	StationeryPage int
}

// PDFDocument is a Document writing PDF through FPDF.
type PDFDocument struct {
	pdf        *fpdf.Fpdf
	images     *Images
	tr         func(string) string
	stationery *Stationery
	closed     bool
}

// NewPDFDocument creates an empty PDF document.
func NewPDFDocument(cfg PDFConfig) *PDFDocument {
	if cfg.Orientation == "" {
		cfg.Orientation = "portrait"
	}
	if cfg.Unit == "" {
		cfg.Unit = "mm"
	}
	if cfg.Size == "" {
		cfg.Size = "A4"
	}
	init := &fpdf.InitType{
		OrientationStr: cfg.Orientation,
		UnitStr:        cfg.Unit,
		SizeStr:        cfg.Size,
		FontDirStr:     cfg.FontDir,
	}
	if cfg.Width > 0 && cfg.Height > 0 {
		init.Size = fpdf.SizeType{Wd: cfg.Width, Ht: cfg.Height}
	}
	pdf := fpdf.NewCustom(init)
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCellMargin(0)

	if cfg.Title != "" {
		pdf.SetTitle(cfg.Title, true)
	}
	if cfg.Author != "" {
		pdf.SetAuthor(cfg.Author, true)
	}
	if cfg.Subject != "" {
		pdf.SetSubject(cfg.Subject, true)
	}
	if cfg.Creator != "" {
		pdf.SetCreator(cfg.Creator, true)
	}
	if !cfg.CreationDate.IsZero() {
		pdf.SetCreationDate(cfg.CreationDate)
		pdf.SetModificationDate(cfg.CreationDate)
		pdf.SetCatalogSort(true)
	}

	d := &PDFDocument{
		pdf:    pdf,
		images: NewImages(pdf),
		tr:     pdf.UnicodeTranslatorFromDescriptor(""),
	}
	if cfg.Stationery != "" {
		d.stationery = NewStationery(cfg.Stationery, cfg.StationeryPage)
	}
	return d
}

// AddPage starts a new page and draws the stationery background, if any.
func (d *PDFDocument) AddPage() error {
	if d.closed {
		return ErrClosed
	}
	d.pdf.AddPage()
	if d.stationery != nil {
		w, h := d.pdf.GetPageSize()
		if err := d.stationery.Apply(d.pdf, w, h); err != nil {
			return err
		}
	}
	if d.pdf.Err() {
		return fmt.Errorf("canvas: add page: %w", d.pdf.Error())
	}
	return nil
}

// PageCount returns the number of pages added so far.
func (d *PDFDocument) PageCount() int { return d.pdf.PageCount() }

// PageSize returns the size of the current page in document units.
func (d *PDFDocument) PageSize() (width, height float64) {
	return d.pdf.GetPageSize()
}

// Canvas returns a canvas drawing on the current page.
func (d *PDFDocument) Canvas(g grid.Grid) Canvas {
	return &PDF{pdf: d.pdf, g: g, images: d.images, tr: d.tr}
}

// Save serializes the document. The document cannot be used afterwards.
func (d *PDFDocument) Save() ([]byte, error) {
	if d.closed {
		return nil, ErrClosed
	}
	if d.pdf.PageCount() == 0 {
		return nil, ErrNoPage
	}
	d.closed = true
	if d.pdf.Err() {
		return nil, fmt.Errorf("canvas: save: %w", d.pdf.Error())
	}
	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("canvas: save: %w", err)
	}
	return buf.Bytes(), nil
}

// Fpdf exposes the underlying FPDF document for drawing that the Canvas
// interface does not cover.
func (d *PDFDocument) Fpdf() *fpdf.Fpdf { return d.pdf }
