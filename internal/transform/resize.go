package transform

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// Resize scales the source to scale percent of its natural size. Output
// dimensions are round(naturalW*scale/100) x round(naturalH*scale/100),
// clamped to at least 1x1. Scale 100 keeps the raster as is.
func Resize(src image.Image, scale float64) (*image.NRGBA, error) {
	if src == nil {
		return nil, ErrNilSource
	}
	if scale <= 0 {
		return nil, fmt.Errorf("%w: %g", ErrInvalidScale, scale)
	}

	bounds := src.Bounds()
	if scale == 100 {
		return imaging.Clone(src), nil
	}

	w := int(math.Round(float64(bounds.Dx()) * scale / 100))
	h := int(math.Round(float64(bounds.Dy()) * scale / 100))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	return imaging.Resize(src, w, h, imaging.Lanczos), nil
}
