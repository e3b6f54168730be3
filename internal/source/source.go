package source

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"os"

	"github.com/disintegration/imaging"
)

// MinDimension is the smallest accepted width or height in pixels.
// Payloads that decode below this threshold are rejected.
const MinDimension = 10

var (
	// ErrNoImageFound reports that a paste or file payload carried no
	// decodable image. Surfaced to the user, non-fatal, no state change.
	ErrNoImageFound = errors.New("no image found")

	// ErrImageTooSmall reports decoded dimensions below MinDimension.
	ErrImageTooSmall = errors.New("image too small")

	// ErrReleased reports use of a handle after Release.
	ErrReleased = errors.New("source image released")
)

// Image is an immutable decoded raster handle.
type Image struct {
	raster   image.Image
	width    int
	height   int
	byteSize int64
	mime     string
	hasAlpha bool
	released bool
}

// FromBytes decodes an image payload into a handle. JPEG payloads are
// auto-oriented from their EXIF data so the raster matches what the user
// saw. Undecodable payloads fail with ErrNoImageFound; decoded dimensions
// below MinDimension fail with ErrImageTooSmall.
func FromBytes(data []byte) (*Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrNoImageFound)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoImageFound, err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w < MinDimension || h < MinDimension {
		return nil, fmt.Errorf("%w: %dx%d is below the %dx%d minimum",
			ErrImageTooSmall, w, h, MinDimension, MinDimension)
	}

	hasAlpha := false
	switch img.(type) {
	case *image.RGBA, *image.NRGBA, *image.RGBA64, *image.NRGBA64:
		hasAlpha = true
	}

	return &Image{
		raster:   img,
		width:    w,
		height:   h,
		byteSize: int64(len(data)),
		mime:     DetectMIME(data),
		hasAlpha: hasAlpha,
	}, nil
}

// FromFile reads and decodes an image file, the file-upload path.
func FromFile(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image file: %w", err)
	}
	return FromBytes(data)
}

// Raster returns the decoded pixels, or nil after Release.
func (img *Image) Raster() image.Image {
	if img.released {
		return nil
	}
	return img.raster
}

// Width returns the natural width in pixels.
func (img *Image) Width() int { return img.width }

// Height returns the natural height in pixels.
func (img *Image) Height() int { return img.height }

// ByteSize returns the size of the original encoded payload in bytes.
func (img *Image) ByteSize() int64 { return img.byteSize }

// MIME returns the sniffed MIME type of the original payload, or "" when
// the payload matched no known signature.
func (img *Image) MIME() string { return img.mime }

// Released reports whether the handle's pixels have been released.
func (img *Image) Released() bool { return img.released }

// Release drops the pixel reference so the backing buffer can be
// collected. Release is idempotent; a released handle keeps its metadata
// but refuses raster access.
func (img *Image) Release() {
	img.raster = nil
	img.released = true
}

// ImageInfo contains metadata about a decoded image handle.
type ImageInfo struct {
	// Width is the natural image width in pixels.
	Width int `json:"width"`

	// Height is the natural image height in pixels.
	Height int `json:"height"`

	// MIME is the sniffed MIME type of the original payload.
	MIME string `json:"mime_type"`

	// HasAlpha indicates whether the decoded raster carries an alpha channel.
	HasAlpha bool `json:"has_alpha"`

	// ByteSizeBytes is the size of the original encoded payload.
	ByteSizeBytes int64 `json:"byte_size_bytes"`

	// Megapixels is the natural pixel count in millions.
	Megapixels float64 `json:"megapixels"`
}

// Info returns metadata for the handle. It works on released handles too,
// since metadata is captured at decode time and survives Release.
func (img *Image) Info() ImageInfo {
	return ImageInfo{
		Width:         img.width,
		Height:        img.height,
		MIME:          img.mime,
		HasAlpha:      img.hasAlpha,
		ByteSizeBytes: img.byteSize,
		Megapixels:    float64(img.width) * float64(img.height) / 1e6,
	}
}
