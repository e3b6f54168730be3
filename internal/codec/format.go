package codec

import "fmt"

// Format identifies an export image format.
type Format int

const (
	// FormatPNG is lossless PNG output.
	FormatPNG Format = iota
	// FormatJPEG is lossy JPEG output at a configurable quality.
	FormatJPEG
)

// String returns the canonical lowercase format name.
func (f Format) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatJPEG:
		return "jpeg"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Ext returns the filename extension for the format, without a dot.
func (f Format) Ext() string {
	if f == FormatJPEG {
		return "jpg"
	}
	return "png"
}

// MIME returns the format's MIME type.
func (f Format) MIME() string {
	if f == FormatJPEG {
		return "image/jpeg"
	}
	return "image/png"
}

// ParseFormat converts a user-supplied format name into a Format.
// It accepts "png", "jpeg", and "jpg".
func ParseFormat(name string) (Format, error) {
	switch name {
	case "png":
		return FormatPNG, nil
	case "jpeg", "jpg":
		return FormatJPEG, nil
	default:
		return FormatPNG, fmt.Errorf("unknown format: %q", name)
	}
}
