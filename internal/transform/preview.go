package transform

import (
	"fmt"
	"image"
	"math"

	"golang.org/x/image/draw"
)

// Preview renders the display raster for a zoom factor of the source,
// scale in percent (the UI offers 10-300). It trades resampling quality
// for speed since previews are redrawn on every parameter change; exports
// never go through here.
func Preview(src image.Image, zoom float64) (*image.RGBA, error) {
	if src == nil {
		return nil, ErrNilSource
	}
	if zoom <= 0 {
		return nil, fmt.Errorf("%w: %g", ErrInvalidScale, zoom)
	}

	bounds := src.Bounds()
	w := int(math.Round(float64(bounds.Dx()) * zoom / 100))
	h := int(math.Round(float64(bounds.Dy()) * zoom / 100))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Rect, src, bounds, draw.Over, nil)
	return dst, nil
}
