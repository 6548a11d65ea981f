package processor

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"github.com/ds124wfegd/iconify/internal/entity"
)

// Decode reads one raster image (PNG, JPEG, GIF, BMP, TIFF, WebP).
func Decode(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrDecode, err)
	}
	return promote(img), nil
}

// Open decodes the image stored at path.
func Open(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", entity.ErrDecode, path, err)
	}
	return promote(img), nil
}

// EncodePNG writes img as PNG without changing its layout.
func EncodePNG(w io.Writer, img image.Image, level png.CompressionLevel) error {
	return imaging.Encode(w, img, imaging.PNG, imaging.PNGCompressionLevel(level))
}

var filters = map[string]imaging.ResampleFilter{
	"lanczos":    imaging.Lanczos,
	"catmullrom": imaging.CatmullRom,
	"linear":     imaging.Linear,
	"box":        imaging.Box,
	"nearest":    imaging.NearestNeighbor,
}

func ParseFilter(name string) (imaging.ResampleFilter, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return imaging.Lanczos, nil
	}
	f, ok := filters[name]
	if !ok {
		return imaging.ResampleFilter{}, fmt.Errorf("%w: filter %q", entity.ErrInvalidConfig, name)
	}
	return f, nil
}

var compressionLevels = map[string]png.CompressionLevel{
	"default": png.DefaultCompression,
	"none":    png.NoCompression,
	"speed":   png.BestSpeed,
	"best":    png.BestCompression,
}

func ParseCompression(name string) (png.CompressionLevel, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return png.DefaultCompression, nil
	}
	l, ok := compressionLevels[name]
	if !ok {
		return 0, fmt.Errorf("%w: png compression %q", entity.ErrInvalidConfig, name)
	}
	return l, nil
}
