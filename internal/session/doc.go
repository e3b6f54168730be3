// Package session coordinates editor state and its derived products.
//
// A Session owns the loaded source image, the active editor mode and its
// parameters, the annotation canvas with its undo history, and the export
// settings. Every parameter mutation bumps a revision counter and schedules
// a debounced recomputation of derived state: the zoomed preview raster and
// the estimated export sizes. Results are applied last-write-wins by
// revision, so a recomputation that raced with a newer parameter change can
// never clobber fresher state.
//
// All methods are safe for concurrent use. Export actions defend themselves
// against absent rasters instead of trusting callers to gate availability.
package session
