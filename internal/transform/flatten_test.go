package transform

import (
	"errors"
	"image/color"
	"testing"

	"github.com/snipedit/snipedit/internal/canvas"
)

func TestFlatten_NoOverlay(t *testing.T) {
	img := createPatternImage(60, 60)

	out, err := Flatten(img, nil)
	if err != nil {
		t.Fatalf("Flatten failed: %v", err)
	}

	if out.Bounds() != img.Bounds() {
		t.Fatalf("bounds: got %v, want %v", out.Bounds(), img.Bounds())
	}
	wr, wg, wb, _ := img.At(15, 15).RGBA()
	gr, gg, gb, _ := out.At(15, 15).RGBA()
	if wr != gr || wg != gg || wb != gb {
		t.Error("flatten without overlay should copy the source unchanged")
	}
}

func TestFlatten_EmptyOverlay(t *testing.T) {
	img := createInMemoryImage(40, 40, color.RGBA{200, 100, 50, 255})
	cv, err := canvas.New(40, 40)
	if err != nil {
		t.Fatalf("canvas.New failed: %v", err)
	}

	out, err := Flatten(img, cv)
	if err != nil {
		t.Fatalf("Flatten failed: %v", err)
	}

	r, g, b, _ := out.At(20, 20).RGBA()
	if uint8(r>>8) != 200 || uint8(g>>8) != 100 || uint8(b>>8) != 50 {
		t.Error("flatten with an untouched overlay should copy the source unchanged")
	}
}

func TestFlatten_CompositesStroke(t *testing.T) {
	img := createInMemoryImage(60, 40, color.RGBA{255, 0, 0, 255})
	cv, err := canvas.New(60, 40)
	if err != nil {
		t.Fatalf("canvas.New failed: %v", err)
	}

	s := canvas.Stroke{Color: "#0078FF", WidthPx: 8}
	if err := cv.StrokeSegment(s, canvas.Point{X: 10, Y: 20}, canvas.Point{X: 50, Y: 20}); err != nil {
		t.Fatalf("StrokeSegment failed: %v", err)
	}

	out, err := Flatten(img, cv)
	if err != nil {
		t.Fatalf("Flatten failed: %v", err)
	}

	// On the stroke: the pen color wins.
	r, g, b, _ := out.At(30, 20).RGBA()
	r8, g8, b8 := int(r>>8), int(g>>8), int(b>>8)
	if r8 > 10 || g8 < 110 || g8 > 130 || b8 < 245 {
		t.Errorf("stroke color: got (%d,%d,%d), want ~(0,120,255)", r8, g8, b8)
	}

	// Off the stroke: the source shows through.
	r, g, b, _ = out.At(30, 5).RGBA()
	if uint8(r>>8) != 255 || uint8(g>>8) != 0 || uint8(b>>8) != 0 {
		t.Error("source should show through away from the stroke")
	}
}

func TestFlatten_ErasedRegionShowsSource(t *testing.T) {
	img := createInMemoryImage(60, 40, color.RGBA{255, 0, 0, 255})
	cv, err := canvas.New(60, 40)
	if err != nil {
		t.Fatalf("canvas.New failed: %v", err)
	}

	paint := canvas.Stroke{Color: "#000000", WidthPx: 10}
	if err := cv.StrokeSegment(paint, canvas.Point{X: 10, Y: 20}, canvas.Point{X: 50, Y: 20}); err != nil {
		t.Fatalf("paint segment failed: %v", err)
	}
	erase := canvas.Stroke{Eraser: true, WidthPx: 12}
	if err := cv.StrokeSegment(erase, canvas.Point{X: 30, Y: 5}, canvas.Point{X: 30, Y: 35}); err != nil {
		t.Fatalf("erase segment failed: %v", err)
	}

	out, err := Flatten(img, cv)
	if err != nil {
		t.Fatalf("Flatten failed: %v", err)
	}

	// Where the eraser crossed the stroke the source is visible again.
	r, g, b, _ := out.At(30, 20).RGBA()
	r8, g8, b8 := int(r>>8), int(g>>8), int(b>>8)
	if r8 < 245 || g8 > 10 || b8 > 10 {
		t.Errorf("erased region: got (%d,%d,%d), want ~(255,0,0)", r8, g8, b8)
	}

	// The stroke is still there outside the erased band.
	r, g, b, _ = out.At(15, 20).RGBA()
	if int(r>>8) > 10 || int(g>>8) > 10 || int(b>>8) > 10 {
		t.Error("stroke should survive outside the eraser's path")
	}
}

func TestFlatten_SizeMismatch(t *testing.T) {
	img := createInMemoryImage(60, 40, color.RGBA{255, 0, 0, 255})
	cv, err := canvas.New(30, 30)
	if err != nil {
		t.Fatalf("canvas.New failed: %v", err)
	}

	// Force the overlay to be non-empty so the size check is reached.
	if err := cv.StrokeSegment(canvas.Stroke{Color: "#FF0000", WidthPx: 4},
		canvas.Point{X: 5, Y: 5}, canvas.Point{X: 25, Y: 25}); err != nil {
		t.Fatalf("StrokeSegment failed: %v", err)
	}

	if _, err := Flatten(img, cv); err == nil {
		t.Error("Flatten should fail for a mismatched overlay size")
	}
}

func TestFlatten_NilSource(t *testing.T) {
	_, err := Flatten(nil, nil)
	if !errors.Is(err, ErrNilSource) {
		t.Errorf("error: got %v, want ErrNilSource", err)
	}
}
