package canvas

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/jpeg"

	"github.com/go-pdf/fpdf"
	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DefaultMaxPixels bounds the longest side of images that are converted
// before embedding.
const DefaultMaxPixels = 2048

// ImageInfo describes an image registered with the document.
type ImageInfo struct {
	Name   string
	Type   string
	Width  float64
	Height float64
}

// Images registers image files and in-memory images with an FPDF document
// once, keyed by path or name.
//
// JPEG, PNG and GIF files are embedded as is. Other formats the image
// package can decode (BMP, TIFF, WebP) are converted to PNG, downscaled to
// MaxPixels on their longest side.
type Images struct {
	pdf       *fpdf.Fpdf
	store     map[string]ImageInfo
	failed    map[string]bool
	MaxPixels int
}

// NewImages creates an empty registry for pdf.
func NewImages(pdf *fpdf.Fpdf) *Images {
	return &Images{
		pdf:       pdf,
		store:     make(map[string]ImageInfo),
		failed:    make(map[string]bool),
		MaxPixels: DefaultMaxPixels,
	}
}

func nativeType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "JPG"
	case ".png":
		return "PNG"
	case ".gif":
		return "GIF"
	}
	return ""
}

// Load registers the image file at path. It reports false when the path is
// empty, does not exist or cannot be decoded; such failures are remembered
// and do not affect the document.
func (im *Images) Load(path string) (ImageInfo, bool) {
	if path == "" || im.failed[path] {
		return ImageInfo{}, false
	}
	if info, ok := im.store[path]; ok {
		return info, true
	}
	if st, err := os.Stat(path); err != nil || st.IsDir() {
		im.failed[path] = true
		return ImageInfo{}, false
	}
	if im.pdf.Err() {
		return ImageInfo{}, false
	}

	if tp := nativeType(path); tp != "" {
		reg := im.pdf.RegisterImageOptions(path, fpdf.ImageOptions{ImageType: tp, ReadDpi: true})
		if im.pdf.Err() || reg == nil {
			im.pdf.ClearError()
			im.failed[path] = true
			return ImageInfo{}, false
		}
		info := ImageInfo{Name: path, Type: tp, Width: reg.Width(), Height: reg.Height()}
		im.store[path] = info
		return info, true
	}

	f, err := os.Open(path)
	if err != nil {
		im.failed[path] = true
		return ImageInfo{}, false
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		im.failed[path] = true
		return ImageInfo{}, false
	}
	info, err := im.Register(path, img)
	if err != nil {
		im.failed[path] = true
		return ImageInfo{}, false
	}
	return info, true
}

// Register embeds img under name. Registering the same name twice returns
// the first registration.
func (im *Images) Register(name string, img image.Image) (ImageInfo, error) {
	if info, ok := im.store[name]; ok {
		return info, nil
	}
	if im.pdf.Err() {
		return ImageInfo{}, im.pdf.Error()
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, im.downscale(img)); err != nil {
		return ImageInfo{}, fmt.Errorf("canvas: encoding image %q: %w", name, err)
	}
	reg := im.pdf.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: "PNG"}, &buf)
	if im.pdf.Err() || reg == nil {
		err := im.pdf.Error()
		im.pdf.ClearError()
		return ImageInfo{}, fmt.Errorf("canvas: registering image %q: %w", name, err)
	}
	info := ImageInfo{Name: name, Type: "PNG", Width: reg.Width(), Height: reg.Height()}
	im.store[name] = info
	return info, nil
}

func (im *Images) downscale(img image.Image) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	longest := w
	if h > longest {
		longest = h
	}
	if im.MaxPixels <= 0 || longest <= im.MaxPixels {
		return img
	}
	scale := float64(im.MaxPixels) / float64(longest)
	dw, dh := int(float64(w)*scale), int(float64(h)*scale)
	if dw < 1 {
		dw = 1
	}
	if dh < 1 {
		dh = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
