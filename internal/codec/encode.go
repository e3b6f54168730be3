package codec

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"math"

	"github.com/disintegration/imaging"
)

var (
	// ErrEncodeFailed reports that the codec could not produce a byte buffer.
	ErrEncodeFailed = errors.New("encode failed")

	// ErrNilRaster reports an encode or estimate attempt with no raster.
	// Callers treat this as a guarded no-op, not a fatal condition.
	ErrNilRaster = errors.New("no raster to encode")
)

// DefaultQuality is used when a JPEG encode is requested with a
// non-positive quality value.
const DefaultQuality = 0.92

// Settings selects the export format and, for JPEG, the quality.
type Settings struct {
	Format  Format  `json:"format"`
	Quality float64 `json:"quality"` // 0..1, JPEG only
}

// Encode encodes the raster with the given settings and returns the bytes.
// A nil raster returns ErrNilRaster so export paths can no-op gracefully.
func Encode(raster image.Image, s Settings) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeTo(&buf, raster, s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeTo(w io.Writer, raster image.Image, s Settings) error {
	if raster == nil {
		return ErrNilRaster
	}

	var err error
	switch s.Format {
	case FormatJPEG:
		err = imaging.Encode(w, raster, imaging.JPEG, imaging.JPEGQuality(jpegQuality(s.Quality)))
	default:
		err = imaging.Encode(w, raster, imaging.PNG)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrEncodeFailed, s.Format, err)
	}
	return nil
}

// jpegQuality maps a 0..1 quality to the encoder's 1..100 scale.
// Non-positive values fall back to DefaultQuality; values above 1 clamp.
func jpegQuality(q float64) int {
	if q <= 0 {
		q = DefaultQuality
	}
	if q > 1 {
		q = 1
	}
	n := int(math.Round(q * 100))
	if n < 1 {
		n = 1
	}
	return n
}
