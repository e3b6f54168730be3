package source

// DetectMIME returns a MIME type based on the magic bytes of an image
// payload, or "" when no known signature matches. Detection is
// informational: decode success, not the sniffed type, decides whether a
// payload is accepted.
func DetectMIME(data []byte) string {
	if len(data) < 4 {
		return ""
	}
	switch {
	case data[0] == 0x89 && data[1] == 'P' && data[2] == 'N' && data[3] == 'G':
		return "image/png"
	case data[0] == 0xFF && data[1] == 0xD8:
		return "image/jpeg"
	case data[0] == 'G' && data[1] == 'I' && data[2] == 'F':
		return "image/gif"
	case len(data) >= 12 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WEBP":
		return "image/webp"
	case data[0] == 'B' && data[1] == 'M':
		return "image/bmp"
	default:
		return ""
	}
}
