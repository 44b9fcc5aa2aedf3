package render

// Braille cells hold a 2x4 dot matrix; bit layout follows the Unicode block
var brailleBits = [4][2]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

const brailleBase = 0x2800

// DotCanvas is a monochrome bitmap addressed in braille dots
type DotCanvas struct {
	cols, rows int
	bits       []uint8
}

// NewDotCanvas creates a canvas covering cols x rows terminal cells
func NewDotCanvas(cols, rows int) *DotCanvas {
	cols, rows = max(cols, 0), max(rows, 0)
	return &DotCanvas{cols: cols, rows: rows, bits: make([]uint8, cols*rows)}
}

// Width returns the horizontal dot count
func (d *DotCanvas) Width() int { return d.cols * 2 }

// Height returns the vertical dot count
func (d *DotCanvas) Height() int { return d.rows * 4 }

func (d *DotCanvas) Clear() {
	clear(d.bits)
}

// Set lights one dot, ignoring out-of-range coordinates
func (d *DotCanvas) Set(x, y int) {
	if x < 0 || y < 0 || x >= d.Width() || y >= d.Height() {
		return
	}
	d.bits[(y/4)*d.cols+x/2] |= brailleBits[y%4][x%2]
}

// Get reports whether a dot is lit
func (d *DotCanvas) Get(x, y int) bool {
	if x < 0 || y < 0 || x >= d.Width() || y >= d.Height() {
		return false
	}
	return d.bits[(y/4)*d.cols+x/2]&brailleBits[y%4][x%2] != 0
}

// Line lights the dots between two points using Bresenham stepping
func (d *DotCanvas) Line(x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		d.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// Rune returns the braille glyph for a terminal cell, 0 when no dot is lit
func (d *DotCanvas) Rune(col, row int) rune {
	if col < 0 || row < 0 || col >= d.cols || row >= d.rows {
		return 0
	}
	b := d.bits[row*d.cols+col]
	if b == 0 {
		return 0
	}
	return rune(brailleBase + int(b))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
