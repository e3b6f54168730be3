package export

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/snipedit/snipedit/internal/codec"
)

// ErrDownloadFailed reports a failed save-to-file action.
var ErrDownloadFailed = errors.New("download failed")

// Filename returns the download name for a format: "{prefix}-image.{ext}",
// or "image.{ext}" when no prefix is given.
func Filename(prefix string, f codec.Format) string {
	if prefix == "" {
		return "image." + f.Ext()
	}
	return fmt.Sprintf("%s-image.%s", prefix, f.Ext())
}

// ToFile encodes the raster and saves it under dir as Filename(prefix,
// format), returning the written path. A nil raster returns
// codec.ErrNilRaster so callers can treat it as a guarded no-op.
func ToFile(raster image.Image, s codec.Settings, dir, prefix string) (string, error) {
	if raster == nil {
		return "", codec.ErrNilRaster
	}

	data, err := codec.Encode(raster, s)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, Filename(prefix, s.Format))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}
	return path, nil
}
