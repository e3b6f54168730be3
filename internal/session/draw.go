package session

import (
	"fmt"

	"github.com/snipedit/snipedit/internal/canvas"
)

// SetStrokeColor sets the pen color as a "#RRGGBB" hex string. The value
// is validated when the next segment is composited.
func (s *Session) SetStrokeColor(hex string) {
	s.mu.Lock()
	s.stroke.Color = hex
	s.mu.Unlock()
}

// SetStrokeWidth sets the pen width in pixels, clamped to the supported
// range.
func (s *Session) SetStrokeWidth(px float64) {
	s.mu.Lock()
	s.stroke.WidthPx = canvas.ClampStrokeWidth(px)
	s.mu.Unlock()
}

// SetEraser toggles between pen and eraser for subsequent strokes.
func (s *Session) SetEraser(on bool) {
	s.mu.Lock()
	s.stroke.Eraser = on
	s.mu.Unlock()
}

// StrokeSettings returns the active pen configuration.
func (s *Session) StrokeSettings() canvas.Stroke {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stroke
}

// BeginStroke starts a stroke at p, in natural pixel coordinates. Points
// arrive already mapped from display space by the view layer. A stroke
// begun while another is active is ignored.
func (s *Session) BeginStroke(p canvas.Point) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cv == nil || s.drawing {
		return
	}
	s.drawing = true
	s.dirty = false
	s.last = p
}

// ExtendStroke composites a segment from the previous point to p using
// the active pen configuration. No-op unless a stroke is active.
func (s *Session) ExtendStroke(p canvas.Point) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cv == nil || !s.drawing {
		return nil
	}
	if err := s.cv.StrokeSegment(s.stroke, s.last, p); err != nil {
		return fmt.Errorf("failed to composite stroke segment: %w", err)
	}
	s.last = p
	s.dirty = true
	return nil
}

// EndStroke finalizes the active stroke. Pointer-up and pointer-leave
// both land here. A stroke that composited at least one segment commits
// a history snapshot and triggers recomputation; an empty stroke leaves
// history untouched.
func (s *Session) EndStroke() {
	s.mu.Lock()
	if s.cv == nil || !s.drawing {
		s.mu.Unlock()
		return
	}
	s.drawing = false
	if !s.dirty {
		s.mu.Unlock()
		return
	}
	s.dirty = false
	s.hist.Push(s.cv.Snapshot())
	s.revision.Add(1)
	s.mu.Unlock()
	s.scheduleRecompute()
}

// Undo restores the canvas to the previous history snapshot and reports
// whether a step was taken. At the oldest snapshot it is a no-op.
func (s *Session) Undo() bool {
	s.mu.Lock()
	if s.cv == nil || s.hist == nil {
		s.mu.Unlock()
		return false
	}
	snap, ok := s.hist.Undo()
	if !ok {
		s.mu.Unlock()
		return false
	}
	if err := s.cv.Restore(snap); err != nil {
		s.mu.Unlock()
		s.log.Error().Err(err).Msg("failed to restore history snapshot")
		return false
	}
	s.revision.Add(1)
	s.mu.Unlock()
	s.scheduleRecompute()
	return true
}

// Redo reapplies the next history snapshot after an undo and reports
// whether a step was taken.
func (s *Session) Redo() bool {
	s.mu.Lock()
	if s.cv == nil || s.hist == nil {
		s.mu.Unlock()
		return false
	}
	snap, ok := s.hist.Redo()
	if !ok {
		s.mu.Unlock()
		return false
	}
	if err := s.cv.Restore(snap); err != nil {
		s.mu.Unlock()
		s.log.Error().Err(err).Msg("failed to restore history snapshot")
		return false
	}
	s.revision.Add(1)
	s.mu.Unlock()
	s.scheduleRecompute()
	return true
}
