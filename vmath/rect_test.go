package vmath

import (
	"math"
	"testing"
)

const eps = 1e-9

func TestRectFromCornersNormalizes(t *testing.T) {
	r := RectFromCorners(Point{30, 40}, Point{10, 5})
	want := Rect{X: 10, Y: 5, W: 20, H: 35}
	if r != want {
		t.Errorf("Expected %+v, got %+v", want, r)
	}

	n := Rect{X: 30, Y: 40, W: -20, H: -35}.Normalize()
	if n != want {
		t.Errorf("Expected normalized %+v, got %+v", want, n)
	}
}

func TestClosestPoint(t *testing.T) {
	r := Rect{X: 50, Y: 50, W: 20, H: 20}

	tests := []struct {
		name string
		p    Point
		want Point
	}{
		{"left", Point{48, 60}, Point{50, 60}},
		{"corner", Point{40, 40}, Point{50, 50}},
		{"below right", Point{80, 90}, Point{70, 70}},
		{"inside", Point{55, 65}, Point{55, 65}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.ClosestPoint(tt.p)
			if got != tt.want {
				t.Errorf("Expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestIntersectionArea(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 10}

	if got := IntersectionArea(a, Rect{X: 5, Y: 5, W: 10, H: 10}); got != 25 {
		t.Errorf("Expected overlap 25, got %f", got)
	}
	if got := IntersectionArea(a, Rect{X: 10, Y: 0, W: 5, H: 5}); got != 0 {
		t.Errorf("Expected touching edges to share no area, got %f", got)
	}
	if got := IntersectionArea(a, Rect{X: -5, Y: -5, W: 30, H: 30}); got != 100 {
		t.Errorf("Expected full cover 100, got %f", got)
	}
}

func TestInset(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: 100, H: 50}.Inset(10)
	if r != (Rect{X: 10, Y: 10, W: 80, H: 30}) {
		t.Errorf("Unexpected inset %+v", r)
	}

	collapsed := Rect{X: 0, Y: 0, W: 10, H: 10}.Inset(20)
	if collapsed.W != 0 || collapsed.H != 0 {
		t.Errorf("Expected collapsed inset to have zero size, got %+v", collapsed)
	}
}

func TestFitAspect(t *testing.T) {
	// Wide bounds: height limits
	r := FitAspect(Rect{W: 1000, H: 500}, 4.0/5.0)
	if math.Abs(r.H-500) > eps || math.Abs(r.W-400) > eps {
		t.Errorf("Expected 400x500, got %fx%f", r.W, r.H)
	}
	if math.Abs(r.X-300) > eps {
		t.Errorf("Expected centered X 300, got %f", r.X)
	}

	// Tall bounds: width limits
	r = FitAspect(Rect{W: 400, H: 1000}, 4.0/5.0)
	if math.Abs(r.W-400) > eps || math.Abs(r.H-500) > eps {
		t.Errorf("Expected 400x500, got %fx%f", r.W, r.H)
	}
}

func TestMap(t *testing.T) {
	if got := Map(255, 0, 255, 10, 90); math.Abs(got-90) > eps {
		t.Errorf("Expected 90, got %f", got)
	}
	if got := Map(0, 0, 255, 10, 90); math.Abs(got-10) > eps {
		t.Errorf("Expected 10, got %f", got)
	}
	if got := Map(3, 2, 2, 7, 9); got != 7 {
		t.Errorf("Expected zero-width input to map to 7, got %f", got)
	}
}

func TestCatmullRomPassesThroughVertices(t *testing.T) {
	pts := []Point{{0, 0}, {10, 0}, {20, 10}, {30, 10}}
	out := CatmullRom(pts, 8)

	if len(out) != 3*8+1 {
		t.Fatalf("Expected %d points, got %d", 3*8+1, len(out))
	}
	for i, p := range pts {
		got := out[i*8]
		if math.Abs(got.X-p.X) > eps || math.Abs(got.Y-p.Y) > eps {
			t.Errorf("Expected vertex %d at %+v, got %+v", i, p, got)
		}
	}

	short := CatmullRom(pts[:2], 8)
	if len(short) != 2 {
		t.Errorf("Expected two-point path unchanged, got %d points", len(short))
	}
}
