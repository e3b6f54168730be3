package codec

import (
	"context"
	"image"

	"github.com/sourcegraph/conc/pool"
)

const bytesPerMB = 1 << 20

// SizeEstimate reports the projected output size of the current raster in
// both export formats. It is derived state: recomputed on every parameter
// change and never authoritative until an actual export happens.
type SizeEstimate struct {
	PNGBytes   int64   `json:"png_bytes"`
	JPEGBytes  int64   `json:"jpg_bytes"`
	PNGSizeMB  float64 `json:"png_size_mb"`
	JPEGSizeMB float64 `json:"jpg_size_mb"`
}

// EstimateSize encodes the raster without side effects and returns the byte
// count the encode would produce. Identical raster, format, and quality
// always yield the same count.
func EstimateSize(ctx context.Context, raster image.Image, s Settings) (int64, error) {
	if raster == nil {
		return 0, ErrNilRaster
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var cw countingWriter
	if err := encodeTo(&cw, raster, s); err != nil {
		return 0, err
	}
	return cw.n, nil
}

// EstimateBoth computes the PNG and JPEG size estimates concurrently.
// The quality argument applies to the JPEG estimate only.
func EstimateBoth(ctx context.Context, raster image.Image, quality float64) (*SizeEstimate, error) {
	if raster == nil {
		return nil, ErrNilRaster
	}

	var pngBytes, jpegBytes int64
	p := pool.New().WithErrors().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		n, err := EstimateSize(ctx, raster, Settings{Format: FormatPNG})
		pngBytes = n
		return err
	})
	p.Go(func(ctx context.Context) error {
		n, err := EstimateSize(ctx, raster, Settings{Format: FormatJPEG, Quality: quality})
		jpegBytes = n
		return err
	})
	if err := p.Wait(); err != nil {
		return nil, err
	}

	return NewSizeEstimate(pngBytes, jpegBytes), nil
}

// NewSizeEstimate builds a SizeEstimate from raw byte counts.
func NewSizeEstimate(pngBytes, jpegBytes int64) *SizeEstimate {
	return &SizeEstimate{
		PNGBytes:   pngBytes,
		JPEGBytes:  jpegBytes,
		PNGSizeMB:  toMB(pngBytes),
		JPEGSizeMB: toMB(jpegBytes),
	}
}

func toMB(n int64) float64 {
	return float64(n) / bytesPerMB
}

// countingWriter discards encoded bytes and keeps only their count.
type countingWriter struct {
	n int64
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.n += int64(len(p))
	return len(p), nil
}
