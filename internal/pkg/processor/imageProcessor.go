package processor

import (
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"

	"github.com/ds124wfegd/iconify/internal/entity"
)

// Options control normalization and placement.
type Options struct {
	Placement    entity.Placement
	MaxDimension int
	Grayscale    bool
	Filter       imaging.ResampleFilter
	Compression  png.CompressionLevel
}

// DefaultMaxDimension caps the larger side of the profile picture.
const DefaultMaxDimension = 500

func DefaultOptions() Options {
	return Options{
		Placement:    entity.PlacementPadded,
		MaxDimension: DefaultMaxDimension,
		Filter:       imaging.Lanczos,
		Compression:  png.DefaultCompression,
	}
}

type ImageProcessor interface {
	// Normalize downscales and optionally grays the profile picture, keeping its layout.
	Normalize(img image.Image) (image.Image, error)
	// Compose overlays icon onto a fresh copy of template and reports where it went.
	Compose(template, icon image.Image) (image.Image, entity.Rect, error)
	Options() Options
}

type imageProcessor struct {
	opts Options
}

func NewImageProcessor(opts Options) ImageProcessor {
	return &imageProcessor{opts: opts}
}

func (p *imageProcessor) Options() Options {
	return p.opts
}

func (p *imageProcessor) Normalize(img image.Image) (image.Image, error) {
	switch src := img.(type) {
	case *image.Gray:
		return normalize(src, p.opts), nil
	case *image.Gray16:
		return normalize(src, p.opts), nil
	case *image.RGBA:
		return normalize(src, p.opts), nil
	case *image.RGBA64:
		return normalize(src, p.opts), nil
	case *image.NRGBA:
		return normalize(src, p.opts), nil
	case *image.NRGBA64:
		return normalize(src, p.opts), nil
	default:
		return nil, fmt.Errorf("%w: %T", entity.ErrUnsupportedFormat, img)
	}
}

func (p *imageProcessor) Compose(template, icon image.Image) (image.Image, entity.Rect, error) {
	canvas, err := Clone(template)
	if err != nil {
		return nil, entity.Rect{}, err
	}

	b := canvas.Bounds()
	rect := p.opts.Placement.Rect(b.Dx(), b.Dy())
	resized := ResizeIcon(icon, rect, p.opts.Filter)
	Overlay(canvas, resized, b.Min.Add(rect.Min()))

	return canvas, rect, nil
}

// Overlay alpha-composites icon onto dst with its top-left corner at at.
// Transparent icon pixels leave dst untouched, opaque ones replace it.
func Overlay(dst draw.Image, icon image.Image, at image.Point) {
	ib := icon.Bounds()
	r := image.Rectangle{Min: at, Max: at.Add(ib.Size())}.Intersect(dst.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(dst, r, icon, ib.Min.Add(r.Min.Sub(at)), draw.Over)
}
