// Package transform holds the pure image transforms: crop, uniform-scale
// resize, and draw-compositing, plus the zoomed preview render.
//
// Every transform maps {source image, parameters} to a new raster at the
// natural resolution implied by the parameters, never the display
// resolution. Crop parameters arrive in display coordinates and are mapped
// to natural coordinates here, so callers hand over selection rectangles
// exactly as the user dragged them.
package transform
