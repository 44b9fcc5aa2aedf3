package field

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestGridBrightnessNearest(t *testing.T) {
	g, err := NewGrid(3, 2, []uint8{
		0, 100, 200,
		10, 110, 255,
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	tests := []struct {
		u, v float64
		want float64
	}{
		{0, 0, 0},
		{1, 0, 200},
		{1, 1, 255},
		{0.5, 1, 110},
		{-3, 7, 10},  // clamped
		{0.49, 0, 0}, // floor(0.49*2) = 0
	}
	for _, tt := range tests {
		if got := g.Brightness(tt.u, tt.v); got != tt.want {
			t.Errorf("Brightness(%v,%v): expected %v, got %v", tt.u, tt.v, tt.want, got)
		}
	}
}

func TestNewGridValidation(t *testing.T) {
	if _, err := NewGrid(0, 4, nil); !errors.Is(err, ErrEmptyImage) {
		t.Errorf("Expected ErrEmptyImage, got %v", err)
	}
	if _, err := NewGrid(2, 2, []uint8{1, 2, 3}); err == nil {
		t.Error("Expected size mismatch error")
	}
}

func TestFromImageAveragesChannels(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.RGBA{R: 30, G: 60, B: 90, A: 255})
	img.Set(1, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})

	g, err := FromImage(img)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if g.Pix[0] != 60 {
		t.Errorf("Expected mean 60, got %d", g.Pix[0])
	}
	if g.Pix[1] != 255 {
		t.Errorf("Expected mean 255, got %d", g.Pix[1])
	}
}

func TestResampleBoundsLongestSide(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 400, 100))
	out := Resample(img, 100)
	if out.Bounds().Dx() != 100 || out.Bounds().Dy() != 25 {
		t.Errorf("Expected 100x25, got %v", out.Bounds())
	}

	if Resample(img, 0) != image.Image(img) {
		t.Error("Expected maxSide 0 to return the source image")
	}
}

func TestLoadPNG(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 4, 4))
	for i := range img.Pix {
		img.Pix[i] = 40
	}

	path := filepath.Join(t.TempDir(), "field.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	g, err := Load(path, 0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if g.Width != 4 || g.Height != 4 {
		t.Errorf("Expected 4x4 grid, got %dx%d", g.Width, g.Height)
	}
	if b := g.Brightness(0.5, 0.5); b != 40 {
		t.Errorf("Expected brightness 40, got %v", b)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.png"), 0); err == nil {
		t.Error("Expected error for missing file")
	}
}
