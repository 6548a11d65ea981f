package processor

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"

	"github.com/ds124wfegd/iconify/internal/entity"
)

// Canvas is the closed set of pixel layouts the compositor normalizes and draws onto.
// Gray with alpha lives in NRGBA.
type Canvas interface {
	*image.Gray | *image.Gray16 | *image.RGBA | *image.RGBA64 | *image.NRGBA | *image.NRGBA64
	draw.Image
}

func newCanvas[T Canvas](r image.Rectangle) T {
	var (
		zero T
		img  draw.Image
	)
	switch any(zero).(type) {
	case *image.Gray:
		img = image.NewGray(r)
	case *image.Gray16:
		img = image.NewGray16(r)
	case *image.RGBA:
		img = image.NewRGBA(r)
	case *image.RGBA64:
		img = image.NewRGBA64(r)
	case *image.NRGBA:
		img = image.NewNRGBA(r)
	case *image.NRGBA64:
		img = image.NewNRGBA64(r)
	}
	return img.(T)
}

// convert re-encodes src into layout T with a zero origin.
func convert[T Canvas](src image.Image) T {
	b := src.Bounds()
	dst := newCanvas[T](image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

func cloneCanvas[T Canvas](src T) T {
	dst := newCanvas[T](src.Bounds())
	draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
	return dst
}

// grayscale writes the luma of every pixel back into the same layout, alpha untouched.
func grayscale[T Canvas](src T) T {
	b := src.Bounds()
	dst := newCanvas[T](b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := src.At(x, y).RGBA()
			// Same weights as color.Gray16Model; premultiplied input keeps l <= a.
			l := uint16((19595*r + 38470*g + 7471*bl + 1<<15) >> 16)
			dst.Set(x, y, color.RGBA64{R: l, G: l, B: l, A: uint16(a)})
		}
	}
	return dst
}

// FormatOf names the layout of img, or fails with ErrUnsupportedFormat.
func FormatOf(img image.Image) (string, error) {
	switch img.(type) {
	case *image.Gray:
		return "gray8", nil
	case *image.Gray16:
		return "gray16", nil
	case *image.RGBA:
		return "rgba8", nil
	case *image.RGBA64:
		return "rgba16", nil
	case *image.NRGBA:
		return "nrgba8", nil
	case *image.NRGBA64:
		return "nrgba16", nil
	default:
		return "", fmt.Errorf("%w: %T", entity.ErrUnsupportedFormat, img)
	}
}

// Clone returns a copy of img in the same layout that shares no pixel memory with it.
func Clone(img image.Image) (draw.Image, error) {
	switch src := img.(type) {
	case *image.Gray:
		return cloneCanvas(src), nil
	case *image.Gray16:
		return cloneCanvas(src), nil
	case *image.RGBA:
		return cloneCanvas(src), nil
	case *image.RGBA64:
		return cloneCanvas(src), nil
	case *image.NRGBA:
		return cloneCanvas(src), nil
	case *image.NRGBA64:
		return cloneCanvas(src), nil
	default:
		return nil, fmt.Errorf("%w: %T", entity.ErrUnsupportedFormat, img)
	}
}

// Grayscale converts img to gray while keeping its layout and bit depth.
func Grayscale(img image.Image) (image.Image, error) {
	switch src := img.(type) {
	case *image.Gray:
		return grayscale(src), nil
	case *image.Gray16:
		return grayscale(src), nil
	case *image.RGBA:
		return grayscale(src), nil
	case *image.RGBA64:
		return grayscale(src), nil
	case *image.NRGBA:
		return grayscale(src), nil
	case *image.NRGBA64:
		return grayscale(src), nil
	default:
		return nil, fmt.Errorf("%w: %T", entity.ErrUnsupportedFormat, img)
	}
}

// promote maps layouts that only decoders produce onto NRGBA.
func promote(img image.Image) image.Image {
	switch img.(type) {
	case *image.YCbCr, *image.NYCbCrA, *image.CMYK, *image.Paletted:
		return imaging.Clone(img)
	}
	return img
}
