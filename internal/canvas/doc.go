// Package canvas maintains the freehand drawing overlay and its undo
// history.
//
// The overlay is a transparent raster at the natural resolution of the
// source image. Strokes arrive as line segments (previous cursor position
// to current) and are composited onto the overlay with round caps; color
// and width are fixed for a stroke's duration. Eraser segments clear the
// overlay's alpha where they pass (destination-out) rather than painting a
// background color, so erased regions show the source image through again
// no matter what it contains.
//
// # History
//
// History is a linear undo stack of full-canvas snapshots. A stroke begins
// on pointer-down, accumulates segments on pointer-move, and commits one
// snapshot on pointer-up or pointer-leave. Pushing a snapshot discards any
// entries beyond the current index, the standard discard-redo-on-new-action
// rule. Snapshots are deep copies: restoring one reproduces the overlay
// bit for bit.
package canvas
