package processor

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/ds124wfegd/iconify/internal/entity"
)

// FitSize scales (srcW, srcH) to fit inside (boxW, boxH) keeping the aspect ratio.
// One side of the result always equals the box side; zero sizes yield (0, 0).
func FitSize(srcW, srcH, boxW, boxH int) (int, int) {
	if srcW <= 0 || srcH <= 0 || boxW <= 0 || boxH <= 0 {
		return 0, 0
	}
	if srcW*boxH >= srcH*boxW {
		h := (2*srcH*boxW + srcW) / (2 * srcW)
		return boxW, max(h, 1)
	}
	w := (2*srcW*boxH + srcH) / (2 * srcH)
	return max(w, 1), boxH
}

// ResizeIcon scales icon to fit rect. An empty rect gives an empty image.
func ResizeIcon(icon image.Image, rect entity.Rect, filter imaging.ResampleFilter) *image.NRGBA {
	b := icon.Bounds()
	w, h := FitSize(b.Dx(), b.Dy(), rect.Dx(), rect.Dy())
	if w == 0 || h == 0 {
		return &image.NRGBA{}
	}
	return imaging.Resize(icon, w, h, filter)
}

func downscale[T Canvas](src T, limit int, filter imaging.ResampleFilter) T {
	b := src.Bounds()
	if limit <= 0 || (b.Dx() <= limit && b.Dy() <= limit) {
		return cloneCanvas(src)
	}
	w, h := FitSize(b.Dx(), b.Dy(), limit, limit)
	return convert[T](imaging.Resize(src, w, h, filter))
}

func normalize[T Canvas](src T, opts Options) T {
	out := downscale(src, opts.MaxDimension, opts.Filter)
	if opts.Grayscale {
		out = grayscale(out)
	}
	return out
}
