// Package field provides grayscale displacement fields sampled from images
package field

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrEmptyImage is returned for images with no pixels
var ErrEmptyImage = errors.New("field: empty image")

// Field answers brightness lookups by normalized position
type Field interface {
	// Brightness returns the mean channel value in [0, 255] nearest to (u, v),
	// both clamped to [0, 1]
	Brightness(u, v float64) float64
}

// Grid is a row-major brightness raster
type Grid struct {
	Width, Height int
	Pix           []uint8
}

// NewGrid wraps raw brightness values
func NewGrid(width, height int, pix []uint8) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrEmptyImage
	}
	if len(pix) != width*height {
		return nil, fmt.Errorf("field: %d values for %dx%d grid", len(pix), width, height)
	}
	return &Grid{Width: width, Height: height, Pix: pix}, nil
}

func (g *Grid) Brightness(u, v float64) float64 {
	x := int(math.Floor(clamp01(u) * float64(g.Width-1)))
	y := int(math.Floor(clamp01(v) * float64(g.Height-1)))
	return float64(g.Pix[y*g.Width+x])
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// FromImage averages the RGB channels of every pixel
func FromImage(img image.Image) (*Grid, error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, ErrEmptyImage
	}

	g := &Grid{Width: b.Dx(), Height: b.Dy(), Pix: make([]uint8, b.Dx()*b.Dy())}
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			r, gr, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			// 16-bit channels down to 8-bit before averaging
			sum := (r >> 8) + (gr >> 8) + (bl >> 8)
			g.Pix[y*g.Width+x] = uint8(sum / 3)
		}
	}
	return g, nil
}

// Resample scales img so its longer side is at most maxSide
// Field lookups are nearest-pixel, so a coarse raster only changes
// the shimmer's granularity
func Resample(img image.Image, maxSide int) image.Image {
	b := img.Bounds()
	longest := max(b.Dx(), b.Dy())
	if maxSide <= 0 || longest <= maxSide {
		return img
	}

	scale := float64(maxSide) / float64(longest)
	w := max(1, int(float64(b.Dx())*scale))
	h := max(1, int(float64(b.Dy())*scale))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Load decodes an image file (png, jpeg, gif, bmp, tiff, webp) into a Grid
func Load(path string, maxSide int) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("field: open: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("field: decode %s: %w", path, err)
	}

	return FromImage(Resample(img, maxSide))
}
