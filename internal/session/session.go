package session

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/snipedit/snipedit/internal/canvas"
	"github.com/snipedit/snipedit/internal/codec"
	"github.com/snipedit/snipedit/internal/source"
	"github.com/snipedit/snipedit/internal/transform"
)

// Session is the single owner of editor state. Zero value is not usable;
// construct with New.
type Session struct {
	log      zerolog.Logger
	debounce *Debouncer
	cache    *codec.EstimateCache
	onUpdate func(*DerivedState)

	revision atomic.Uint64

	mu       sync.Mutex
	src      *source.Image
	mode     Mode
	crop     transform.CropRegion
	displayW float64
	displayH float64
	resize   float64 // percent of natural size
	zoom     float64 // percent, preview scale only
	settings codec.Settings

	cv      *canvas.Canvas
	hist    *canvas.History
	stroke  canvas.Stroke
	drawing bool
	dirty   bool // at least one segment composited since BeginStroke
	last    canvas.Point

	derived *DerivedState
	cancel  context.CancelFunc
}

// Option configures a Session at construction time.
type Option func(*Session)

// WithDebounce overrides the quiet period before derived state is
// recomputed after a parameter change.
func WithDebounce(d time.Duration) Option {
	return func(s *Session) { s.debounce = NewDebouncer(d) }
}

// WithUpdateHandler registers fn to receive each freshly applied derived
// state. The handler runs outside the session lock and may call back into
// the session.
func WithUpdateHandler(fn func(*DerivedState)) Option {
	return func(s *Session) { s.onUpdate = fn }
}

// New returns an idle session. Parameters start at their defaults: crop
// mode, 100% zoom, 100% resize scale, PNG output at default quality.
// Parameter setters are silent no-ops until an image is loaded.
func New(log zerolog.Logger, opts ...Option) *Session {
	s := &Session{
		log:      log.With().Str("component", "session").Logger(),
		debounce: NewDebouncer(DefaultDebounce),
		cache:    codec.NewEstimateCache(),
		zoom:     100,
		resize:   100,
		settings: codec.Settings{Format: codec.FormatPNG, Quality: codec.DefaultQuality},
		stroke:   canvas.Stroke{Color: canvas.DefaultColor, WidthPx: canvas.DefaultStrokeWidth},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadBytes decodes an image payload and installs it as the session
// source, replacing any previous image. The previous source is released
// and all parameters return to their defaults.
func (s *Session) LoadBytes(data []byte) (source.ImageInfo, error) {
	img, err := source.FromBytes(data)
	if err != nil {
		return source.ImageInfo{}, err
	}
	return s.install(img)
}

// LoadFile reads and installs an image from disk, the file-upload path.
func (s *Session) LoadFile(path string) (source.ImageInfo, error) {
	img, err := source.FromFile(path)
	if err != nil {
		return source.ImageInfo{}, err
	}
	return s.install(img)
}

// LoadClipboard installs the image currently on the system clipboard,
// the paste path. Fails with source.ErrNoImageFound when the clipboard
// holds no image.
func (s *Session) LoadClipboard() (source.ImageInfo, error) {
	img, err := source.FromClipboard()
	if err != nil {
		return source.ImageInfo{}, err
	}
	return s.install(img)
}

func (s *Session) install(img *source.Image) (source.ImageInfo, error) {
	cv, err := canvas.New(img.Width(), img.Height())
	if err != nil {
		return source.ImageInfo{}, fmt.Errorf("failed to allocate annotation canvas: %w", err)
	}

	s.debounce.Cancel()
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	if s.src != nil {
		s.src.Release()
	}
	s.src = img
	s.cv = cv
	s.hist = canvas.NewHistory(cv.Snapshot())
	s.crop = transform.CropRegion{}
	s.displayW = float64(img.Width())
	s.displayH = float64(img.Height())
	s.zoom = 100
	s.resize = 100
	s.derived = nil
	s.drawing = false
	s.dirty = false
	s.revision.Add(1)
	s.mu.Unlock()
	s.cache.Clear()

	info := img.Info()
	s.log.Info().
		Int("width", info.Width).
		Int("height", info.Height).
		Str("mime", info.MIME).
		Msg("image loaded")
	s.scheduleRecompute()
	return info, nil
}

// SetMode switches the active editor. The annotation canvas persists
// across switches, so returning to draw mode keeps prior strokes.
func (s *Session) SetMode(m Mode) {
	s.mu.Lock()
	if s.src == nil || s.mode == m {
		s.mu.Unlock()
		return
	}
	s.mode = m
	s.revision.Add(1)
	s.mu.Unlock()
	s.scheduleRecompute()
}

// SetCrop records the selection rectangle together with the display
// dimensions it was dragged on. Not-yet-valid regions are accepted since
// they are the normal state mid-drag.
func (s *Session) SetCrop(region transform.CropRegion, displayW, displayH float64) {
	s.mu.Lock()
	if s.src == nil {
		s.mu.Unlock()
		return
	}
	s.crop = region
	s.displayW = displayW
	s.displayH = displayH
	s.revision.Add(1)
	s.mu.Unlock()
	s.scheduleRecompute()
}

// SetResizeScale sets the resize percentage. Non-positive values are
// ignored; 100 reproduces the source dimensions exactly.
func (s *Session) SetResizeScale(pct float64) {
	s.mu.Lock()
	if s.src == nil || pct <= 0 {
		s.mu.Unlock()
		return
	}
	s.resize = pct
	s.revision.Add(1)
	s.mu.Unlock()
	s.scheduleRecompute()
}

// SetZoom sets the preview scale percentage. Zoom affects only what the
// viewport shows; exports always use natural resolution.
func (s *Session) SetZoom(pct float64) {
	s.mu.Lock()
	if s.src == nil || pct <= 0 {
		s.mu.Unlock()
		return
	}
	s.zoom = pct
	s.revision.Add(1)
	s.mu.Unlock()
	s.scheduleRecompute()
}

// SetQuality sets the JPEG quality in [0, 1]. Values outside the range
// are normalized at encode time.
func (s *Session) SetQuality(q float64) {
	s.mu.Lock()
	if s.src == nil {
		s.mu.Unlock()
		return
	}
	s.settings.Quality = q
	s.revision.Add(1)
	s.mu.Unlock()
	s.scheduleRecompute()
}

// SetFormat selects the export encoding.
func (s *Session) SetFormat(f codec.Format) {
	s.mu.Lock()
	if s.src == nil || s.settings.Format == f {
		s.mu.Unlock()
		return
	}
	s.settings.Format = f
	s.revision.Add(1)
	s.mu.Unlock()
	s.scheduleRecompute()
}

// Reset returns the session to the idle state. Pending and in-flight
// recomputation is cancelled, the source raster is released, the
// annotation canvas and history are dropped, and parameters return to
// their defaults. Reset runs synchronously so callers can rely on the
// buffers being unreferenced when it returns.
func (s *Session) Reset() {
	s.debounce.Cancel()

	s.mu.Lock()
	s.revision.Add(1)
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	if s.src != nil {
		s.src.Release()
		s.src = nil
	}
	s.cv = nil
	s.hist = nil
	s.derived = nil
	s.mode = ModeCrop
	s.crop = transform.CropRegion{}
	s.displayW, s.displayH = 0, 0
	s.zoom = 100
	s.resize = 100
	s.settings = codec.Settings{Format: codec.FormatPNG, Quality: codec.DefaultQuality}
	s.stroke = canvas.Stroke{Color: canvas.DefaultColor, WidthPx: canvas.DefaultStrokeWidth}
	s.drawing = false
	s.dirty = false
	s.mu.Unlock()

	s.cache.Clear()
	s.log.Debug().Msg("session reset")
}

// Source returns the loaded image handle, or nil when idle.
func (s *Session) Source() *source.Image {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src
}

// Canvas returns the annotation overlay for live rendering, or nil when
// no image is loaded.
func (s *Session) Canvas() *canvas.Canvas {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cv
}

// Mode returns the active editor mode.
func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Settings returns the active export settings.
func (s *Session) Settings() codec.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// Derived returns the most recently applied derived state, or nil when no
// recomputation has completed since the last load or reset.
func (s *Session) Derived() *DerivedState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.derived
}

// Revision returns the current parameter version.
func (s *Session) Revision() uint64 {
	return s.revision.Load()
}
