// Package barcode produces barcode images for the barcode section.
package barcode

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"

	bc "github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/boombuler/barcode/code39"
	"github.com/boombuler/barcode/datamatrix"
	"github.com/boombuler/barcode/ean"
	"github.com/boombuler/barcode/pdf417"
	"github.com/boombuler/barcode/qr"
)

// ErrUnsupportedSymbology is returned for unknown symbologies.
var ErrUnsupportedSymbology = errors.New("barcode: unsupported symbology")

// Symbology selects the barcode encoding.
type Symbology int

const (
	Code128 Symbology = iota
	Code39
	EAN
	QR
	DataMatrix
	PDF417
)

var symbologyNames = map[Symbology]string{
	Code128:    "code128",
	Code39:     "code39",
	EAN:        "ean",
	QR:         "qr",
	DataMatrix: "datamatrix",
	PDF417:     "pdf417",
}

func (s Symbology) String() string {
	if n, ok := symbologyNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Symbology(%d)", int(s))
}

// ParseSymbology returns the symbology with the given name (case-insensitive).
func ParseSymbology(name string) (Symbology, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for s, n := range symbologyNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedSymbology, name)
}

// TwoDimensional reports whether s is a matrix symbology.
func (s Symbology) TwoDimensional() bool {
	return s == QR || s == DataMatrix || s == PDF417
}

// Generator creates barcode images.
type Generator interface {
	Create(data string, width, height int, sym Symbology, fg, bg color.Color) (image.Image, error)
}

// Encoder is the Generator backed by github.com/boombuler/barcode.
type Encoder struct {
	QRLevel        qr.ErrorCorrectionLevel
	PDF417Security byte
	// Code39Checksum appends the optional mod 43 check digit.
	Code39Checksum bool
}

// New returns an Encoder with medium QR error correction and PDF417
// security level 2.
func New() *Encoder {
	return &Encoder{QRLevel: qr.M, PDF417Security: 2}
}

func (e *Encoder) encode(data string, sym Symbology) (bc.Barcode, error) {
	switch sym {
	case Code128:
		return code128.Encode(data)
	case Code39:
		return code39.Encode(data, e.Code39Checksum, true)
	case EAN:
		return ean.Encode(data)
	case QR:
		return qr.Encode(data, e.QRLevel, qr.Auto)
	case DataMatrix:
		return datamatrix.Encode(data)
	case PDF417:
		return pdf417.Encode(data, e.PDF417Security)
	}
	return nil, fmt.Errorf("%w: %v", ErrUnsupportedSymbology, sym)
}

// Create encodes data and scales it to at least width×height pixels,
// painting bars with fg and spaces with bg. The image is never narrower or
// shorter than the symbol's natural module size.
func (e *Encoder) Create(data string, width, height int, sym Symbology, fg, bg color.Color) (image.Image, error) {
	if data == "" {
		return nil, errors.New("barcode: empty data")
	}
	code, err := e.encode(data, sym)
	if err != nil {
		return nil, fmt.Errorf("barcode: encoding %s: %w", sym, err)
	}
	nb := code.Bounds()
	if width < nb.Dx() {
		width = nb.Dx()
	}
	if height < nb.Dy() {
		height = nb.Dy()
	}
	if sym == QR || sym == DataMatrix {
		// square symbols only scale uniformly
		if width < height {
			height = width
		} else {
			width = height
		}
	}
	scaled, err := bc.Scale(code, width, height)
	if err != nil {
		return nil, fmt.Errorf("barcode: scaling %s: %w", sym, err)
	}
	return colorize(scaled, fg, bg), nil
}

// colorize repaints a black-on-white image with fg on bg.
func colorize(img image.Image, fg, bg color.Color) image.Image {
	if fg == nil {
		fg = color.Black
	}
	if bg == nil {
		bg = color.White
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			g := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
			if g.Y < 128 {
				out.Set(x-b.Min.X, y-b.Min.Y, fg)
			} else {
				out.Set(x-b.Min.X, y-b.Min.Y, bg)
			}
		}
	}
	return out
}
