package vmath

import "math"

// Rect is an axis-aligned rectangle with top-left origin
type Rect struct {
	X, Y, W, H float64
}

// RectFromCorners builds a rectangle from two opposite corners in any order
func RectFromCorners(a, b Point) Rect {
	return Rect{
		X: math.Min(a.X, b.X),
		Y: math.Min(a.Y, b.Y),
		W: math.Abs(b.X - a.X),
		H: math.Abs(b.Y - a.Y),
	}
}

// Normalize flips negative extents so width and height are non-negative
func (r Rect) Normalize() Rect {
	if r.W < 0 {
		r.X += r.W
		r.W = -r.W
	}
	if r.H < 0 {
		r.Y += r.H
		r.H = -r.H
	}
	return r
}

// Inset shrinks the rectangle by pad on every side, never below zero size
func (r Rect) Inset(pad float64) Rect {
	out := Rect{X: r.X + pad, Y: r.Y + pad, W: r.W - 2*pad, H: r.H - 2*pad}
	if out.W < 0 {
		out.X = r.X + r.W/2
		out.W = 0
	}
	if out.H < 0 {
		out.Y = r.Y + r.H/2
		out.H = 0
	}
	return out
}

func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }
func (r Rect) Area() float64   { return r.W * r.H }

func (r Rect) Center() Point {
	return Point{r.X + r.W/2, r.Y + r.H/2}
}

// Contains checks if point is within the rectangle, edges inclusive
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}

// ClosestPoint clamps p onto the rectangle's extent
// Points inside the rectangle return themselves
func (r Rect) ClosestPoint(p Point) Point {
	return Point{
		X: Clamp(p.X, r.X, r.Right()),
		Y: Clamp(p.Y, r.Y, r.Bottom()),
	}
}

// Intersect returns the overlapping region, ok false when disjoint
func (r Rect) Intersect(o Rect) (Rect, bool) {
	x0 := math.Max(r.X, o.X)
	y0 := math.Max(r.Y, o.Y)
	x1 := math.Min(r.Right(), o.Right())
	y1 := math.Min(r.Bottom(), o.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Rect{}, false
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}, true
}

// IntersectionArea returns the area shared by two rectangles
func IntersectionArea(a, b Rect) float64 {
	in, ok := a.Intersect(b)
	if !ok {
		return 0
	}
	return in.Area()
}

// FitAspect returns the largest rectangle of the given width/height ratio
// centered inside bounds
func FitAspect(bounds Rect, ratio float64) Rect {
	if ratio <= 0 || bounds.W <= 0 || bounds.H <= 0 {
		return bounds
	}
	w, h := bounds.W, bounds.W/ratio
	if h > bounds.H {
		h = bounds.H
		w = h * ratio
	}
	return Rect{
		X: bounds.X + (bounds.W-w)/2,
		Y: bounds.Y + (bounds.H-h)/2,
		W: w,
		H: h,
	}
}
