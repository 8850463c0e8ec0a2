package gridpdf

import (
	"log/slog"
	"time"

	"github.com/lvillar/gridpdf/render"
)

// Page orientations.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Measurement units.
const (
	UnitPoint      = "pt"
	UnitMillimeter = "mm"
	UnitCentimeter = "cm"
	UnitInch       = "inch"
)

// Page sizes.
const (
	PageSizeA3     = "A3"
	PageSizeA4     = "A4"
	PageSizeA5     = "A5"
	PageSizeLetter = "Letter"
	PageSizeLegal  = "Legal"
)

// Option is a functional option for configuring a Generator via New.
type Option func(*generatorConfig)

type generatorConfig struct {
	orientation string
	unit        string
	size        string
	width       float64
	height      float64
	fontDir     string

	title, author, subject string
	creationDate           time.Time

	stationery     string
	stationeryPage int

	debug  render.DebugMode
	strict bool
	logger *slog.Logger
}

func defaultConfig() generatorConfig {
	return generatorConfig{
		orientation: OrientationPortrait,
		unit:        UnitMillimeter,
		size:        PageSizeA4,
		logger:      slog.New(slog.DiscardHandler),
	}
}

// WithOrientation sets the page orientation.
// Use OrientationPortrait ("portrait") or OrientationLandscape ("landscape").
func WithOrientation(orientation string) Option {
	return func(c *generatorConfig) {
		c.orientation = orientation
	}
}

// WithUnit sets the physical unit of the page, which is also the unit the
// grid is computed in.
// Use UnitPoint ("pt"), UnitMillimeter ("mm"), UnitCentimeter ("cm"), or UnitInch ("inch").
func WithUnit(unit string) Option {
	return func(c *generatorConfig) {
		c.unit = unit
	}
}

// WithPageSize sets the page size by name.
// Use PageSizeA3, PageSizeA4, PageSizeA5, PageSizeLetter, PageSizeLegal, or "Tabloid".
func WithPageSize(size string) Option {
	return func(c *generatorConfig) {
		c.size = size
	}
}

// WithPageSizeCustom sets a custom page size in the configured unit.
func WithPageSizeCustom(width, height float64) Option {
	return func(c *generatorConfig) {
		c.width, c.height = width, height
	}
}

// WithFontDir sets the directory where font files are located.
func WithFontDir(dir string) Option {
	return func(c *generatorConfig) {
		c.fontDir = dir
	}
}

// WithMetadata sets the document title, author and subject.
func WithMetadata(title, author, subject string) Option {
	return func(c *generatorConfig) {
		c.title, c.author, c.subject = title, author, subject
	}
}

// WithCreationDate pins the document timestamps so repeated builds of the
// same model produce identical bytes.
func WithCreationDate(t time.Time) Option {
	return func(c *generatorConfig) {
		c.creationDate = t
	}
}

// WithStationery draws page (1-based) of the PDF at path as the background
// of every page.
func WithStationery(path string, page int) Option {
	return func(c *generatorConfig) {
		c.stationery, c.stationeryPage = path, page
	}
}

// WithDebug enables debug overlays.
func WithDebug(mode render.DebugMode) Option {
	return func(c *generatorConfig) {
		c.debug = mode
	}
}

// WithLogger sets the logger. By default nothing is logged.
func WithLogger(l *slog.Logger) Option {
	return func(c *generatorConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithStrictGeometry makes Build fail when a margin or padding does not fit
// its section, or when a section drops content that does not fit, instead
// of clamping and logging a warning.
func WithStrictGeometry() Option {
	return func(c *generatorConfig) {
		c.strict = true
	}
}
