package canvas

// Snapshot is a full copy of the overlay's pixels at a point in time.
// Snapshots are immutable once taken; Restore copies out of them.
type Snapshot struct {
	width  int
	height int
	pix    []uint8
}

// Width returns the snapshot width in pixels.
func (s *Snapshot) Width() int { return s.width }

// Height returns the snapshot height in pixels.
func (s *Snapshot) Height() int { return s.height }

// Equal reports whether two snapshots hold identical pixels.
func (s *Snapshot) Equal(other *Snapshot) bool {
	if s == nil || other == nil {
		return s == other
	}
	if s.width != other.width || s.height != other.height {
		return false
	}
	if len(s.pix) != len(other.pix) {
		return false
	}
	for i := range s.pix {
		if s.pix[i] != other.pix[i] {
			return false
		}
	}
	return true
}

// History is a linear undo stack of canvas snapshots. The entry at the
// current index is the active state; entries above it are undone states
// that a new push discards.
//
// Invariant: history is never empty and 0 <= index < len(entries). The
// first entry is the blank canvas taken when drawing begins, so undoing
// every stroke lands back on it.
type History struct {
	entries []*Snapshot
	index   int
}

// NewHistory creates a history whose first entry is the given snapshot,
// typically the blank canvas at draw-mode entry.
func NewHistory(initial *Snapshot) *History {
	return &History{entries: []*Snapshot{initial}}
}

// Push records a new snapshot as the active state, discarding any undone
// entries beyond the current index.
func (h *History) Push(snap *Snapshot) {
	h.entries = append(h.entries[:h.index+1], snap)
	h.index = len(h.entries) - 1
}

// Undo steps back one entry and returns the snapshot to restore.
// At the oldest entry it returns (nil, false) and changes nothing.
func (h *History) Undo() (*Snapshot, bool) {
	if h.index == 0 {
		return nil, false
	}
	h.index--
	return h.entries[h.index], true
}

// Redo steps forward one entry and returns the snapshot to restore.
// At the newest entry it returns (nil, false) and changes nothing.
func (h *History) Redo() (*Snapshot, bool) {
	if h.index >= len(h.entries)-1 {
		return nil, false
	}
	h.index++
	return h.entries[h.index], true
}

// Current returns the active snapshot.
func (h *History) Current() *Snapshot {
	return h.entries[h.index]
}

// Len returns the number of recorded snapshots.
func (h *History) Len() int { return len(h.entries) }

// Index returns the position of the active snapshot.
func (h *History) Index() int { return h.index }
