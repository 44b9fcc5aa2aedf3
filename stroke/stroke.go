// Package stroke turns raw pen-stroke drawings into timed point sequences
package stroke

import "github.com/lixenwraith/trough/vmath"

// InputMax is the upper bound of the fixed drawing coordinate range
const InputMax = 255.0

// Stroke is one pen movement: [xs, ys] plus any extra arrays the source
// carries (e.g. timestamps), which are ignored
type Stroke [][]float64

// Drawing is an ordered list of strokes in the [0, InputMax] input range
type Drawing struct {
	Strokes []Stroke
}

// usable reports whether the stroke has x and y arrays of equal length
func (s Stroke) usable() bool {
	return len(s) >= 2 && len(s[0]) == len(s[1])
}

// PointCount returns the number of points in usable strokes
func (d Drawing) PointCount() int {
	total := 0
	for _, s := range d.Strokes {
		if s.usable() {
			total += len(s[0])
		}
	}
	return total
}

// SampledPoint is a drawing point remapped into target space with its reveal timing
type SampledPoint struct {
	X, Y        float64
	StrokeIndex int
	PointIndex  int // Position within its stroke
	GlobalIndex int
	Timing      float64 // GlobalIndex / total, in [0, 1)
}

func (p SampledPoint) Pos() vmath.Point {
	return vmath.Point{X: p.X, Y: p.Y}
}

// Sample flattens a drawing into target, inset by padding on every side
// Strokes without equal-length x/y arrays are skipped; a drawing with no
// usable points yields nil
func Sample(d Drawing, target vmath.Rect, padding float64) []SampledPoint {
	total := d.PointCount()
	if total == 0 {
		return nil
	}

	area := target.Inset(padding)
	out := make([]SampledPoint, 0, total)
	strokeIndex := -1

	for _, s := range d.Strokes {
		if !s.usable() || len(s[0]) == 0 {
			continue
		}
		strokeIndex++

		xs, ys := s[0], s[1]
		for i := range xs {
			global := len(out)
			out = append(out, SampledPoint{
				X:           vmath.Map(xs[i], 0, InputMax, area.X, area.Right()),
				Y:           vmath.Map(ys[i], 0, InputMax, area.Y, area.Bottom()),
				StrokeIndex: strokeIndex,
				PointIndex:  i,
				GlobalIndex: global,
				Timing:      float64(global) / float64(total),
			})
		}
	}
	return out
}
