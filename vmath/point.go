package vmath

import "math"

// Point is a float64 2D position or offset in canvas pixels
type Point struct {
	X, Y float64
}

func PAdd(a, b Point) Point {
	return Point{a.X + b.X, a.Y + b.Y}
}

func PSub(a, b Point) Point {
	return Point{a.X - b.X, a.Y - b.Y}
}

func PScale(p Point, s float64) Point {
	return Point{p.X * s, p.Y * s}
}

// Dist returns the Euclidean distance between two points
func Dist(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Angle returns the direction from a to b in radians
func Angle(a, b Point) float64 {
	return math.Atan2(b.Y-a.Y, b.X-a.X)
}

// Polar returns the offset of length mag along angle
func Polar(angle, mag float64) Point {
	return Point{math.Cos(angle) * mag, math.Sin(angle) * mag}
}

// PLerp interpolates between a and b, t in [0,1]
func PLerp(a, b Point, t float64) Point {
	return Point{Lerp(a.X, b.X, t), Lerp(a.Y, b.Y, t)}
}
