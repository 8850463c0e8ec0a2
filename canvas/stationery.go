package canvas

import (
	"fmt"
	"os"

	"github.com/go-pdf/fpdf"
	"github.com/go-pdf/fpdf/contrib/gofpdi"
)

// Stationery draws a page of an existing PDF (a letterhead, a pre-printed
// form) as the background of each new page.
type Stationery struct {
	path     string
	page     int
	imp      *gofpdi.Importer
	tplID    int
	imported bool
}

// NewStationery returns a Stationery using page (1-based) of the PDF at path.
func NewStationery(path string, page int) *Stationery {
	if page < 1 {
		page = 1
	}
	return &Stationery{path: path, page: page, imp: gofpdi.NewImporter()}
}

// Apply draws the stationery page scaled to w×h on the current page of pdf.
// The source page is imported the first time Apply is called.
func (s *Stationery) Apply(pdf *fpdf.Fpdf, w, h float64) (err error) {
	if !s.imported {
		if _, err := os.Stat(s.path); err != nil {
			return fmt.Errorf("canvas: stationery: %w", err)
		}
		// the importer panics on malformed input
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("canvas: stationery %s: %v", s.path, r)
			}
		}()
		s.tplID = s.imp.ImportPage(pdf, s.path, s.page, "/MediaBox")
		s.imported = true
	}
	s.imp.UseImportedTemplate(pdf, s.tplID, 0, 0, w, h)
	return nil
}

// PageSize returns the size of the imported page in points, or zeros when
// it has not been imported yet.
func (s *Stationery) PageSize() (w, h float64) {
	if !s.imported {
		return 0, 0
	}
	if dims, ok := s.imp.GetPageSizes()[s.page]; ok {
		if mb, ok := dims["/MediaBox"]; ok {
			return mb["w"], mb["h"]
		}
	}
	return 0, 0
}
