package session

import (
	"errors"
	"fmt"
	"image"

	"github.com/snipedit/snipedit/internal/codec"
	"github.com/snipedit/snipedit/internal/export"
	"github.com/snipedit/snipedit/internal/transform"
)

// errNoExportable marks states with no raster to export: nothing loaded,
// the source released, or a crop with no selected area. Export actions
// treat it as a silent no-op, since the UI disables them in those states
// and losing that race is not an error.
var errNoExportable = errors.New("no exportable raster")

// CopyToClipboard encodes the current output raster and places it on the
// system clipboard. Without an exportable raster it is a silent no-op.
func (s *Session) CopyToClipboard() error {
	out, settings, err := s.exportable()
	if err != nil {
		if errors.Is(err, errNoExportable) {
			s.log.Debug().Err(err).Msg("copy skipped")
			return nil
		}
		return err
	}
	if err := export.ToClipboard(out, settings); err != nil {
		s.log.Warn().Err(err).Str("format", settings.Format.String()).Msg("clipboard export failed")
		return err
	}
	s.log.Info().Str("format", settings.Format.String()).Msg("copied image to clipboard")
	return nil
}

// SaveToFile encodes the current output raster into dir using the
// mode-derived download name, "cropped-image.png" and friends. It returns
// the written path. Without an exportable raster it is a silent no-op
// returning an empty path.
func (s *Session) SaveToFile(dir string) (string, error) {
	s.mu.Lock()
	prefix := s.mode.filenamePrefix()
	s.mu.Unlock()

	out, settings, err := s.exportable()
	if err != nil {
		if errors.Is(err, errNoExportable) {
			s.log.Debug().Err(err).Msg("save skipped")
			return "", nil
		}
		return "", err
	}
	path, err := export.ToFile(out, settings, dir, prefix)
	if err != nil {
		s.log.Warn().Err(err).Str("dir", dir).Msg("file export failed")
		return "", err
	}
	s.log.Info().Str("path", path).Msg("saved image")
	return path, nil
}

// exportable snapshots the output raster and settings for an export
// action. Transforms run under the lock so exports see a consistent
// parameter set even while setters race.
func (s *Session) exportable() (image.Image, codec.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.src == nil || s.src.Released() {
		return nil, codec.Settings{}, errNoExportable
	}
	out, err := s.outputLocked(false)
	if err != nil {
		if errors.Is(err, transform.ErrEmptyRegion) {
			return nil, codec.Settings{}, fmt.Errorf("%w: %v", errNoExportable, err)
		}
		return nil, codec.Settings{}, err
	}
	return out, s.settings, nil
}
