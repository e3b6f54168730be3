package canvas

// Stroke width limits exposed by the editor UI.
const (
	MinStrokeWidth     = 1.0
	MaxStrokeWidth     = 50.0
	DefaultStrokeWidth = 4.0
)

// DefaultColor is the stroke color before the user picks one.
const DefaultColor = "#FF0000"

// DefaultPalette is the stock color panel offered next to the free color
// picker.
var DefaultPalette = []string{
	"#FF0000", // red
	"#00B400", // green
	"#0078FF", // blue
	"#FFC800", // yellow
	"#FF8000", // orange
	"#B400FF", // purple
	"#FFFFFF", // white
	"#000000", // black
}

// DefaultStrokeWidths are the preset pen widths.
var DefaultStrokeWidths = []float64{2, 4, 8, 16}

// ClampStrokeWidth forces a width into the supported range.
func ClampStrokeWidth(w float64) float64 {
	if w < MinStrokeWidth {
		return MinStrokeWidth
	}
	if w > MaxStrokeWidth {
		return MaxStrokeWidth
	}
	return w
}
