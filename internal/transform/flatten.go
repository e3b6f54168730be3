package transform

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/anthonynsimon/bild/clone"

	"github.com/snipedit/snipedit/internal/canvas"
)

// Flatten composites the drawing overlay over the source image at natural
// resolution, the draw transform's output. A nil or untouched overlay
// yields a plain copy of the source.
func Flatten(src image.Image, overlay *canvas.Canvas) (*image.RGBA, error) {
	if src == nil {
		return nil, ErrNilSource
	}

	dst := clone.AsRGBA(src)
	if overlay == nil || overlay.Empty() {
		return dst, nil
	}

	bounds := dst.Bounds()
	if overlay.Width() != bounds.Dx() || overlay.Height() != bounds.Dy() {
		return nil, fmt.Errorf("overlay size %dx%d does not match source %dx%d",
			overlay.Width(), overlay.Height(), bounds.Dx(), bounds.Dy())
	}

	draw.Draw(dst, bounds, overlay.Image(), image.Point{}, draw.Over)
	return dst, nil
}
