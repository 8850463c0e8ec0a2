// Package doctpl provides a JSON-based document template DSL for grid
// layouts.
//
// A template declares the page, the grid resolution, named styles and a
// tree of elements that maps one to one onto the section kinds of the
// section package. Texts may reference the data model with {field}
// placeholders (dotted paths reach into nested objects) and the page with
// {page} and {pages}. The items of a "grid" element come from the "items"
// list of the model and are split over as many pages as needed.
//
// Example JSON:
//
//	{
//	  "title": "Invoice",
//	  "grid": {"rows": 100, "columns": 60},
//	  "styles": [
//	    {"name": "Title", "font": {"size": 18, "style": "B"}, "relativeHeight": 0.1}
//	  ],
//	  "root": {"type": "vstack", "children": [
//	    {"type": "text", "style": "Title", "text": "Invoice {number}"},
//	    {"type": "grid", "columns": [
//	      {"header": "Item", "field": "name", "weight": 0.6},
//	      {"header": "Price", "field": "price", "format": "%.2f", "align": "R"}
//	    ]},
//	    {"type": "pageFooter", "text": "ACME Corp"}
//	  ]}
//	}
package doctpl

// Document is the top-level template that describes an entire PDF.
type Document struct {
	Title       string `json:"title,omitempty"`
	Author      string `json:"author,omitempty"`
	Subject     string `json:"subject,omitempty"`
	PageSize    string `json:"pageSize,omitempty"`    // A3, A4, A5, Letter, Legal (default: A4)
	Orientation string `json:"orientation,omitempty"` // portrait, landscape (default: portrait)
	Unit        string `json:"unit,omitempty"`        // mm, cm, inch, pt (default: mm)

	Grid *Grid `json:"grid,omitempty"`
	Font *Font `json:"font,omitempty"` // font of the Default style

	Styles []Style `json:"styles,omitempty"`

	// ItemsPerPage is the row budget of the grid element per page type.
	ItemsPerPage *Budget `json:"itemsPerPage,omitempty"`

	Root Element `json:"root"`
}

// Grid is the grid resolution of every page.
type Grid struct {
	Rows    int `json:"rows"`
	Columns int `json:"columns"`
}

// Budget is the number of grid rows available to items on each page type.
type Budget struct {
	First  int `json:"first"`
	Middle int `json:"middle,omitempty"`
	Last   int `json:"last,omitempty"`
	Single int `json:"single,omitempty"`
}

// Font specifies a font face.
type Font struct {
	Family string  `json:"family"` // Helvetica, Courier, Times
	Style  string  `json:"style"`  // "" (regular), "B" (bold), "I" (italic), "BI"
	Size   float64 `json:"size"`
}

// Color is an RGB color.
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// Spacing is an inset in grid cells.
type Spacing struct {
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
}

// Style is a named style. Unset fields are inherited from BasedOn, or from
// the Default style.
type Style struct {
	Name    string `json:"name"`
	BasedOn string `json:"basedOn,omitempty"`

	Font        *Font    `json:"font,omitempty"`
	Color       *Color   `json:"color,omitempty"`
	Background  *Color   `json:"background,omitempty"`
	BorderColor *Color   `json:"borderColor,omitempty"`
	Border      float64  `json:"border,omitempty"` // border width in page units
	Margin      *Spacing `json:"margin,omitempty"`
	Padding     *Spacing `json:"padding,omitempty"`
	CellPadding *Spacing `json:"cellPadding,omitempty"`

	// Align is a horizontal letter (L, C, R, J) optionally followed by a
	// vertical one (T, M, B), e.g. "CM".
	Align          string `json:"align,omitempty"`
	ParagraphAlign string `json:"paragraphAlign,omitempty"`

	LineSpacing    float64   `json:"lineSpacing,omitempty"`
	RelativeHeight float64   `json:"relativeHeight,omitempty"`
	RelativeWidth  float64   `json:"relativeWidth,omitempty"`
	RelativeWidths []float64 `json:"relativeWidths,omitempty"`
}

// Element is a node of the section tree.
// The Type field determines which other fields are relevant.
type Element struct {
	Type string `json:"type"` // vstack, hstack, layer, header, text, wrap, keyvalue, lines, grid, signature, pageHeader, pageFooter, barcode, image
	Key  string `json:"key,omitempty"`

	// Style is the element's own style; Styles names the styles of its
	// parts (header band, labels, grid header...) in order.
	Style  string   `json:"style,omitempty"`
	Styles []string `json:"styles,omitempty"`

	// ShowOn restricts the element to some pages: all, first, last,
	// notFirst, notLast or middle.
	ShowOn string `json:"showOn,omitempty"`
	// If hides the element when the model field it names is empty.
	If        string `json:"if,omitempty"`
	Watermark string `json:"watermark,omitempty"`

	Text     string    `json:"text,omitempty"`
	Children []Element `json:"children,omitempty"`

	// KeyValue
	Pairs      []Pair  `json:"pairs,omitempty"`
	LabelWidth float64 `json:"labelWidth,omitempty"`
	SkipEmpty  bool    `json:"skipEmpty,omitempty"`

	// Lines
	Lines []string `json:"lines,omitempty"`

	// Grid
	Columns   []Column `json:"columns,omitempty"`
	EmptyText string   `json:"emptyText,omitempty"`

	// Signature
	Caption string `json:"caption,omitempty"`

	// Page header and footer
	Subtitle   string  `json:"subtitle,omitempty"`
	Logo       string  `json:"logo,omitempty"`
	LogoWidth  float64 `json:"logoWidth,omitempty"`
	PageFormat string  `json:"pageFormat,omitempty"`
	Rule       float64 `json:"rule,omitempty"`

	// Barcode
	Symbology string `json:"symbology,omitempty"` // code128, code39, ean, qr, datamatrix, pdf417
	ShowText  bool   `json:"showText,omitempty"`

	// Image
	Src string `json:"src,omitempty"`
}

// Pair is a label/value line of a keyvalue element.
type Pair struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Column defines a column of a grid element.
type Column struct {
	Header string  `json:"header"`
	Field  string  `json:"field"`            // item field, dotted paths allowed
	Format string  `json:"format,omitempty"` // fmt verb, e.g. "%.2f"
	Weight float64 `json:"weight,omitempty"` // relative width, 0 = share the rest
	Align  string  `json:"align,omitempty"`  // L, C, R
}
