package vmath

// CatmullRom smooths a polyline through its vertices with a uniform
// Catmull-Rom spline, emitting steps points per segment
// End points are duplicated as phantom controls so the curve passes through
// the first and last vertex
func CatmullRom(pts []Point, steps int) []Point {
	if len(pts) < 3 || steps < 2 {
		out := make([]Point, len(pts))
		copy(out, pts)
		return out
	}

	out := make([]Point, 0, (len(pts)-1)*steps+1)
	for i := 0; i < len(pts)-1; i++ {
		p0 := pts[max(i-1, 0)]
		p1 := pts[i]
		p2 := pts[i+1]
		p3 := pts[min(i+2, len(pts)-1)]

		for s := 0; s < steps; s++ {
			t := float64(s) / float64(steps)
			out = append(out, catmullRomAt(p0, p1, p2, p3, t))
		}
	}
	return append(out, pts[len(pts)-1])
}

func catmullRomAt(p0, p1, p2, p3 Point, t float64) Point {
	t2 := t * t
	t3 := t2 * t
	f := func(a, b, c, d float64) float64 {
		return 0.5 * (2*b + (-a+c)*t + (2*a-5*b+4*c-d)*t2 + (-a+3*b-3*c+d)*t3)
	}
	return Point{
		X: f(p0.X, p1.X, p2.X, p3.X),
		Y: f(p0.Y, p1.Y, p2.Y, p3.Y),
	}
}
