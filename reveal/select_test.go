package reveal

import (
	"math/rand"
	"testing"

	"github.com/lixenwraith/trough/vmath"
)

func grid(n int) []*Cell {
	cells := make([]*Cell, n)
	for i := range cells {
		cells[i] = NewCell(i, 0, i, vmath.Rect{X: float64(i) * 10, W: 10, H: 10})
	}
	return cells
}

func blockedSet(idx ...int) func(int) bool {
	set := make(map[int]bool)
	for _, i := range idx {
		set[i] = true
	}
	return func(i int) bool { return set[i] }
}

func TestSequentialSkipsBlocked(t *testing.T) {
	s := NewSelector(Sequential, nil)
	cells := grid(4)
	blocked := blockedSet(1, 2)

	want := []int{0, 3, 0, 3}
	for i, w := range want {
		got, ok := s.Next(cells, blocked)
		if !ok || got != w {
			t.Errorf("Step %d: expected %d, got %d (ok=%v)", i, w, got, ok)
		}
	}
}

func TestSequentialAllBlocked(t *testing.T) {
	s := NewSelector(Sequential, nil)
	if _, ok := s.Next(grid(3), blockedSet(0, 1, 2)); ok {
		t.Error("Expected no selection when every cell is blocked")
	}
	if _, ok := s.Next(nil, nil); ok {
		t.Error("Expected no selection without cells")
	}
}

func TestSequentialRewind(t *testing.T) {
	s := NewSelector(Sequential, nil)
	cells := grid(3)
	s.Next(cells, nil)
	s.Next(cells, nil)
	s.Rewind()
	if got, _ := s.Next(cells, nil); got != 0 {
		t.Errorf("Expected rewind to restart at 0, got %d", got)
	}
}

func TestRandomPrefersEmpty(t *testing.T) {
	m := newTestMachine()
	cells := grid(4)
	for _, i := range []int{0, 1, 3} {
		m.Assign(cells[i], tenPoints(), epoch)
	}

	s := NewSelector(Random, rand.New(rand.NewSource(42)))
	for i := 0; i < 20; i++ {
		got, ok := s.Next(cells, nil)
		if !ok || got != 2 {
			t.Fatalf("Expected only empty cell 2, got %d (ok=%v)", got, ok)
		}
	}

	// Empty cell blocked: fall back to any unblocked cell
	for i := 0; i < 20; i++ {
		got, ok := s.Next(cells, blockedSet(2, 3))
		if !ok || (got != 0 && got != 1) {
			t.Fatalf("Expected fallback to 0 or 1, got %d (ok=%v)", got, ok)
		}
	}

	if _, ok := s.Next(cells, blockedSet(0, 1, 2, 3)); ok {
		t.Error("Expected no selection when every cell is blocked")
	}
}

func TestPickDrawing(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	rec := []string{"r"}
	unrec := []string{"u"}

	if got, _ := PickDrawing(rng, 1, rec, unrec); got != "r" {
		t.Errorf("Expected recognized with p=1, got %q", got)
	}
	if got, _ := PickDrawing(rng, 0, rec, unrec); got != "u" {
		t.Errorf("Expected unrecognized with p=0, got %q", got)
	}

	// Chosen subset empty: fall back to the full set
	if got, ok := PickDrawing(rng, 1, nil, unrec); !ok || got != "u" {
		t.Errorf("Expected fallback to unrecognized, got %q", got)
	}
	if got, ok := PickDrawing(rng, 0, rec, nil); !ok || got != "r" {
		t.Errorf("Expected fallback to recognized, got %q", got)
	}
	if _, ok := PickDrawing[string](rng, 0.5, nil, nil); ok {
		t.Error("Expected no drawing from empty sets")
	}
}

func TestPickDrawingBias(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	rec := []int{1}
	unrec := []int{0}

	hits := 0
	const n = 4000
	for i := 0; i < n; i++ {
		v, _ := PickDrawing(rng, 0.8, rec, unrec)
		hits += v
	}
	ratio := float64(hits) / n
	if ratio < 0.75 || ratio > 0.85 {
		t.Errorf("Expected about 80%% recognized, got %.3f", ratio)
	}
}

func TestStrokeRuns(t *testing.T) {
	live := []LivePoint{
		{StrokeIndex: 0}, {StrokeIndex: 0},
		{StrokeIndex: 1},
		{StrokeIndex: 2}, {StrokeIndex: 2}, {StrokeIndex: 2},
	}
	runs := StrokeRuns(live)
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}
	if len(runs[0]) != 2 || len(runs[1]) != 1 || len(runs[2]) != 3 {
		t.Errorf("Unexpected run lengths %d %d %d", len(runs[0]), len(runs[1]), len(runs[2]))
	}
	if StrokeRuns(nil) != nil {
		t.Error("Expected no runs for no points")
	}
}
