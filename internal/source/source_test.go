package source

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// createInMemoryImage creates a solid-color in-memory test image
func createInMemoryImage(width, height int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// encodePNG encodes a test image to PNG bytes
func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test PNG: %v", err)
	}
	return buf.Bytes()
}

func TestFromBytes_PNG(t *testing.T) {
	data := encodePNG(t, createInMemoryImage(200, 100, color.RGBA{255, 0, 0, 255}))

	img, err := FromBytes(data)
	if err != nil {
		t.Fatalf("FromBytes failed: %v", err)
	}

	if img.Width() != 200 || img.Height() != 100 {
		t.Errorf("dimensions: got %dx%d, want 200x100", img.Width(), img.Height())
	}
	if img.ByteSize() != int64(len(data)) {
		t.Errorf("byte size: got %d, want %d", img.ByteSize(), len(data))
	}
	if img.MIME() != "image/png" {
		t.Errorf("MIME: got %q, want image/png", img.MIME())
	}
	if img.Raster() == nil {
		t.Error("Raster should not be nil before Release")
	}
}

func TestFromBytes_JPEG(t *testing.T) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, createInMemoryImage(64, 64, color.RGBA{0, 128, 255, 255}), nil); err != nil {
		t.Fatalf("failed to encode test JPEG: %v", err)
	}

	img, err := FromBytes(buf.Bytes())
	if err != nil {
		t.Fatalf("FromBytes failed: %v", err)
	}
	if img.MIME() != "image/jpeg" {
		t.Errorf("MIME: got %q, want image/jpeg", img.MIME())
	}
}

func TestFromBytes_NoImage(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"text payload", []byte("not an image at all")},
		{"truncated header", []byte{0x89, 0x50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromBytes(tt.data)
			if !errors.Is(err, ErrNoImageFound) {
				t.Errorf("error: got %v, want ErrNoImageFound", err)
			}
		})
	}
}

func TestFromBytes_TooSmall(t *testing.T) {
	tests := []struct {
		name   string
		w, h   int
		wantOK bool
	}{
		{"9x9 rejected", 9, 9, false},
		{"9x100 rejected", 9, 100, false},
		{"100x9 rejected", 100, 9, false},
		{"10x10 boundary accepted", 10, 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := encodePNG(t, createInMemoryImage(tt.w, tt.h, color.RGBA{0, 0, 0, 255}))
			_, err := FromBytes(data)
			if tt.wantOK {
				if err != nil {
					t.Errorf("FromBytes failed: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrImageTooSmall) {
				t.Errorf("error: got %v, want ErrImageTooSmall", err)
			}
		})
	}
}

func TestFromFile(t *testing.T) {
	data := encodePNG(t, createInMemoryImage(40, 30, color.RGBA{10, 20, 30, 255}))
	path := filepath.Join(t.TempDir(), "test.png")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	img, err := FromFile(path)
	if err != nil {
		t.Fatalf("FromFile failed: %v", err)
	}
	if img.Width() != 40 || img.Height() != 30 {
		t.Errorf("dimensions: got %dx%d, want 40x30", img.Width(), img.Height())
	}
	if img.ByteSize() != int64(len(data)) {
		t.Errorf("byte size: got %d, want %d", img.ByteSize(), len(data))
	}
}

func TestFromFile_Missing(t *testing.T) {
	_, err := FromFile(filepath.Join(t.TempDir(), "nope.png"))
	if err == nil {
		t.Error("FromFile should fail for a missing file")
	}
}

func TestRelease(t *testing.T) {
	data := encodePNG(t, createInMemoryImage(20, 20, color.RGBA{1, 2, 3, 255}))
	img, err := FromBytes(data)
	if err != nil {
		t.Fatalf("FromBytes failed: %v", err)
	}

	img.Release()

	if !img.Released() {
		t.Error("Released should report true after Release")
	}
	if img.Raster() != nil {
		t.Error("Raster should be nil after Release")
	}
	if img.Width() != 20 || img.Height() != 20 {
		t.Error("dimensions should survive Release")
	}

	// Idempotent.
	img.Release()
	if !img.Released() {
		t.Error("second Release should keep the handle released")
	}
}

func TestInfo(t *testing.T) {
	data := encodePNG(t, createInMemoryImage(100, 50, color.RGBA{255, 255, 255, 255}))
	img, err := FromBytes(data)
	if err != nil {
		t.Fatalf("FromBytes failed: %v", err)
	}

	info := img.Info()
	if info.Width != 100 || info.Height != 50 {
		t.Errorf("info dimensions: got %dx%d, want 100x50", info.Width, info.Height)
	}
	if info.MIME != "image/png" {
		t.Errorf("info MIME: got %q, want image/png", info.MIME)
	}
	if info.ByteSizeBytes != int64(len(data)) {
		t.Errorf("info byte size: got %d, want %d", info.ByteSizeBytes, len(data))
	}
	if info.Megapixels != 0.005 {
		t.Errorf("megapixels: got %v, want 0.005", info.Megapixels)
	}

	// Metadata survives Release.
	img.Release()
	after := img.Info()
	if after != info {
		t.Errorf("info after Release: got %+v, want %+v", after, info)
	}
}
