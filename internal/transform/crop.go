package transform

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
)

var (
	// ErrEmptyRegion reports a crop with no selected area, the state
	// before the user completes a drag.
	ErrEmptyRegion = errors.New("empty crop region")

	// ErrInvalidScale reports a non-positive scale factor.
	ErrInvalidScale = errors.New("invalid scale")

	// ErrNilSource reports a transform invoked without a source raster.
	ErrNilSource = errors.New("nil source image")
)

// CropRegion is a selection rectangle in display pixel coordinates,
// relative to the on-screen scaled rendering of the source image. It is
// invalid (zero width or height) until the user completes a drag.
type CropRegion struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Valid reports whether the region selects a positive area.
func (r CropRegion) Valid() bool {
	return r.Width > 0 && r.Height > 0
}

// Crop extracts the natural-resolution equivalent of a display-space
// selection. Display coordinates are mapped through the ratio of natural
// to display size, so the output dimensions are exactly
// round(Width*scaleX) x round(Height*scaleY) regardless of how the image
// is zoomed on screen.
func Crop(src image.Image, region CropRegion, displayW, displayH float64) (*image.NRGBA, error) {
	if src == nil {
		return nil, ErrNilSource
	}
	if !region.Valid() {
		return nil, ErrEmptyRegion
	}
	if displayW <= 0 || displayH <= 0 {
		return nil, fmt.Errorf("invalid display size %gx%g", displayW, displayH)
	}

	bounds := src.Bounds()
	scaleX := float64(bounds.Dx()) / displayW
	scaleY := float64(bounds.Dy()) / displayH

	x := int(math.Round(region.X * scaleX))
	y := int(math.Round(region.Y * scaleY))
	w := int(math.Round(region.Width * scaleX))
	h := int(math.Round(region.Height * scaleY))

	if w < 1 || h < 1 {
		return nil, ErrEmptyRegion
	}
	if w > bounds.Dx() || h > bounds.Dy() {
		return nil, fmt.Errorf("crop %dx%d exceeds image bounds %dx%d",
			w, h, bounds.Dx(), bounds.Dy())
	}

	// Rounding the origin can push the rectangle a pixel past the edge;
	// shift it back in rather than shrinking the selection.
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	if x+w > bounds.Dx() {
		x = bounds.Dx() - w
	}
	if y+h > bounds.Dy() {
		y = bounds.Dy() - h
	}

	rect := image.Rect(bounds.Min.X+x, bounds.Min.Y+y, bounds.Min.X+x+w, bounds.Min.Y+y+h)
	return imaging.Crop(src, rect), nil
}
