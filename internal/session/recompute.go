package session

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/sourcegraph/conc/pool"

	"github.com/snipedit/snipedit/internal/codec"
	"github.com/snipedit/snipedit/internal/transform"
)

// DerivedState is the product of one recomputation pass: the preview
// raster rendered at the current zoom plus size estimates for the
// exportable raster. Estimates always describe export output at natural
// resolution, never the on-screen scale.
type DerivedState struct {
	Raster   *image.RGBA
	Estimate *codec.SizeEstimate
	Revision uint64
}

// scheduleRecompute queues a debounced recomputation. Bursts of parameter
// changes inside the quiet period collapse into one pass.
func (s *Session) scheduleRecompute() {
	s.debounce.Schedule(func() {
		if _, err := s.recompute(); err != nil {
			s.log.Debug().Err(err).Msg("recompute failed")
		}
	})
}

// RecomputeNow bypasses the debounce window: any pending recomputation is
// withdrawn and one runs synchronously. It returns the freshly applied
// derived state; nil without error means there was nothing to compute or
// the result was superseded while computing.
func (s *Session) RecomputeNow() (*DerivedState, error) {
	s.debounce.Cancel()
	return s.recompute()
}

func (s *Session) recompute() (*DerivedState, error) {
	s.mu.Lock()
	if s.src == nil || s.src.Released() {
		s.mu.Unlock()
		return nil, nil
	}
	rev := s.revision.Load()
	zoom := s.zoom
	quality := s.settings.Quality

	out, err := s.outputLocked(true)
	if err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("failed to produce output raster: %w", err)
	}
	preview, err := transform.Preview(out, zoom)
	if err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("failed to render preview: %w", err)
	}

	// Encoding dominates the cost of a pass, so it runs outside the lock
	// under a cancellable context. A newer pass or Reset cancels us here.
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.mu.Unlock()
	defer cancel()

	var pngBytes, jpegBytes int64
	p := pool.New().WithErrors().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		n, err := s.cache.EstimateSize(ctx, out, rev, codec.Settings{Format: codec.FormatPNG})
		pngBytes = n
		return err
	})
	p.Go(func(ctx context.Context) error {
		n, err := s.cache.EstimateSize(ctx, out, rev, codec.Settings{Format: codec.FormatJPEG, Quality: quality})
		jpegBytes = n
		return err
	})
	if err := p.Wait(); err != nil {
		if errors.Is(err, context.Canceled) {
			s.log.Debug().Uint64("revision", rev).Msg("recompute cancelled")
			return nil, nil
		}
		return nil, fmt.Errorf("failed to estimate export sizes: %w", err)
	}

	return s.apply(&DerivedState{
		Raster:   preview,
		Estimate: codec.NewSizeEstimate(pngBytes, jpegBytes),
		Revision: rev,
	})
}

// apply installs d unless a newer parameter revision superseded it while
// estimates were computing. Last write wins by revision, not by arrival
// order.
func (s *Session) apply(d *DerivedState) (*DerivedState, error) {
	s.mu.Lock()
	if s.revision.Load() != d.Revision {
		current := s.revision.Load()
		s.mu.Unlock()
		s.log.Debug().
			Uint64("computed", d.Revision).
			Uint64("current", current).
			Msg("discarding stale derived state")
		return nil, nil
	}
	s.derived = d
	handler := s.onUpdate
	s.mu.Unlock()

	if handler != nil {
		handler(d)
	}
	return d, nil
}

// outputLocked produces the raster the active mode would export. With
// fallback, a crop that has no valid selection yet yields the full source
// instead of failing, which keeps the preview and estimates live before
// the first drag completes. Callers must hold s.mu with a loaded source.
func (s *Session) outputLocked(fallback bool) (image.Image, error) {
	raster := s.src.Raster()
	switch s.mode {
	case ModeCrop:
		if !s.crop.Valid() {
			if fallback {
				return raster, nil
			}
			return nil, transform.ErrEmptyRegion
		}
		return transform.Crop(raster, s.crop, s.displayW, s.displayH)
	case ModeResize:
		return transform.Resize(raster, s.resize)
	case ModeDraw:
		return transform.Flatten(raster, s.cv)
	default:
		return nil, fmt.Errorf("unknown editor mode %d", s.mode)
	}
}
