package session

// Mode selects which transform produces the exportable raster.
type Mode int

const (
	// ModeCrop exports the region selected on the displayed image.
	ModeCrop Mode = iota
	// ModeResize exports the source scaled by the resize percentage.
	ModeResize
	// ModeDraw exports the source flattened with the annotation overlay.
	ModeDraw
)

// String returns the mode name used in logs and download filenames.
func (m Mode) String() string {
	switch m {
	case ModeCrop:
		return "crop"
	case ModeResize:
		return "resize"
	case ModeDraw:
		return "draw"
	default:
		return "unknown"
	}
}

// filenamePrefix is the download name prefix for rasters produced in this
// mode, following the "{prefix}-image.{ext}" convention.
func (m Mode) filenamePrefix() string {
	switch m {
	case ModeCrop:
		return "cropped"
	case ModeResize:
		return "resized"
	case ModeDraw:
		return "edited"
	default:
		return ""
	}
}
