package export

import (
	"errors"
	"fmt"
	"image"

	"github.com/snipedit/snipedit/internal/clip"
	"github.com/snipedit/snipedit/internal/codec"
)

// ErrClipboardWrite reports that the platform rejected or failed a
// clipboard write. Recoverable: the user can retry or switch to PNG.
var ErrClipboardWrite = errors.New("clipboard write failed")

// ToClipboard encodes the raster with the given settings and places it on
// the system clipboard as an image payload.
//
// The platform clipboard accepts PNG image payloads only. A JPEG request
// still encodes, proving the raster and settings are exportable, but then
// surfaces ErrClipboardWrite instead of handing the clipboard bytes it
// would misrepresent. A nil raster returns codec.ErrNilRaster so callers
// can treat it as a guarded no-op.
func ToClipboard(raster image.Image, s codec.Settings) error {
	if raster == nil {
		return codec.ErrNilRaster
	}

	data, err := codec.Encode(raster, s)
	if err != nil {
		return err
	}

	if s.Format != codec.FormatPNG {
		return fmt.Errorf("%w: clipboard accepts %s, not %s",
			ErrClipboardWrite, codec.FormatPNG.MIME(), s.Format.MIME())
	}

	if err := clip.WriteImage(data); err != nil {
		return fmt.Errorf("%w: %v", ErrClipboardWrite, err)
	}
	return nil
}
