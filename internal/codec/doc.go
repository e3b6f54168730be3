// Package codec encodes raster buffers into PNG or JPEG byte streams and
// estimates the resulting output size for preview display.
//
// Encoding is pure: the same raster, format, and quality always produce the
// same byte count, which makes size estimates safe to cache and recompute.
// PNG output is always lossless; the quality setting only affects JPEG.
//
// EstimateBoth runs the PNG and JPEG estimates concurrently, since the UI
// shows both numbers side by side and neither depends on the other.
package codec
