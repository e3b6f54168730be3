package canvas

import (
	"fmt"
	"image"

	"github.com/gogpu/gg"
	"github.com/lucasb-eyer/go-colorful"
)

// Point is a position on the canvas in natural-resolution pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Stroke describes the pen for the duration of one stroke: color, width,
// and eraser mode are fixed from pointer-down to pointer-up.
type Stroke struct {
	Color   string  `json:"color"` // hex, "#RRGGBB"
	WidthPx float64 `json:"stroke_width_px"`
	Eraser  bool    `json:"is_eraser"`
}

// Canvas is the mutable drawing overlay: a transparent raster at the
// natural resolution of the source image that accumulates composited
// strokes.
type Canvas struct {
	width  int
	height int
	pm     *gg.Pixmap
	dc     *gg.Context

	// scratch receives one eraser segment at a time so its coverage can
	// be subtracted from the overlay's alpha. Allocated on first erase.
	scratch   *gg.Pixmap
	scratchDC *gg.Context
}

// New creates a transparent canvas with the given natural dimensions.
func New(width, height int) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", width, height)
	}
	pm := gg.NewPixmap(width, height)
	return &Canvas{
		width:  width,
		height: height,
		pm:     pm,
		dc:     gg.NewContext(width, height, gg.WithPixmap(pm)),
	}, nil
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.width }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.height }

// StrokeSegment composites one stroke segment, a line from the previous
// cursor position to the current one, onto the overlay.
func (c *Canvas) StrokeSegment(s Stroke, from, to Point) error {
	if s.Eraser {
		return c.eraseSegment(s, from, to)
	}

	col, err := colorful.Hex(s.Color)
	if err != nil {
		return fmt.Errorf("invalid stroke color %q: %w", s.Color, err)
	}

	c.dc.SetRGBA(col.R, col.G, col.B, 1)
	c.dc.SetLineWidth(s.WidthPx)
	c.dc.SetLineCap(gg.LineCapRound)
	c.dc.SetLineJoin(gg.LineJoinRound)
	c.dc.DrawLine(from.X, from.Y, to.X, to.Y)
	if err := c.dc.Stroke(); err != nil {
		return fmt.Errorf("failed to composite stroke segment: %w", err)
	}
	return nil
}

// eraseSegment renders the segment's coverage on a scratch layer, then
// scales the overlay's alpha down by that coverage (destination-out).
func (c *Canvas) eraseSegment(s Stroke, from, to Point) error {
	if c.scratch == nil {
		c.scratch = gg.NewPixmap(c.width, c.height)
		c.scratchDC = gg.NewContext(c.width, c.height, gg.WithPixmap(c.scratch))
	}
	c.scratch.Clear(gg.Transparent)

	c.scratchDC.SetRGBA(1, 1, 1, 1)
	c.scratchDC.SetLineWidth(s.WidthPx)
	c.scratchDC.SetLineCap(gg.LineCapRound)
	c.scratchDC.SetLineJoin(gg.LineJoinRound)
	c.scratchDC.DrawLine(from.X, from.Y, to.X, to.Y)
	if err := c.scratchDC.Stroke(); err != nil {
		return fmt.Errorf("failed to composite eraser segment: %w", err)
	}

	dst := c.pm.Data()
	cov := c.scratch.Data()
	for i := 3; i < len(dst); i += 4 {
		a := cov[i]
		if a == 0 {
			continue
		}
		dst[i] = uint8(uint16(dst[i]) * uint16(255-a) / 255)
	}
	return nil
}

// Image returns a straight-alpha copy of the overlay for compositing.
func (c *Canvas) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, c.width, c.height))
	copy(img.Pix, c.pm.Data())
	return img
}

// Empty reports whether the overlay is fully transparent.
func (c *Canvas) Empty() bool {
	data := c.pm.Data()
	for i := 3; i < len(data); i += 4 {
		if data[i] != 0 {
			return false
		}
	}
	return true
}

// Clear resets the overlay to fully transparent.
func (c *Canvas) Clear() {
	c.pm.Clear(gg.Transparent)
}

// Snapshot returns a deep copy of the overlay's pixels.
func (c *Canvas) Snapshot() *Snapshot {
	pix := make([]uint8, len(c.pm.Data()))
	copy(pix, c.pm.Data())
	return &Snapshot{width: c.width, height: c.height, pix: pix}
}

// Restore overwrites the overlay with a previously taken snapshot.
func (c *Canvas) Restore(snap *Snapshot) error {
	if snap == nil {
		return fmt.Errorf("nil snapshot")
	}
	if snap.width != c.width || snap.height != c.height {
		return fmt.Errorf("snapshot size %dx%d does not match canvas %dx%d",
			snap.width, snap.height, c.width, c.height)
	}
	copy(c.pm.Data(), snap.pix)
	return nil
}
