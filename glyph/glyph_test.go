package glyph

import (
	"math"
	"testing"

	"github.com/lixenwraith/trough/perturb"
	"github.com/lixenwraith/trough/reveal"
	"github.com/lixenwraith/trough/vmath"
)

// line builds live points along y=0 starting at global index start
func line(stroke, start int, xs ...float64) []reveal.LivePoint {
	out := make([]reveal.LivePoint, len(xs))
	for i, x := range xs {
		out[i] = reveal.LivePoint{OriginalX: x, X: x, StrokeIndex: stroke, GlobalIndex: start + i}
	}
	return out
}

type shiftJiggler struct {
	seeds  []int
	scales []float64
}

func (j *shiftJiggler) Jiggle(base vmath.Point, seed int, scale float64, env *perturb.Env) vmath.Point {
	j.seeds = append(j.seeds, seed)
	j.scales = append(j.scales, scale)
	return vmath.Point{X: base.X + 1, Y: base.Y + 1}
}

func TestPlaceStraightLine(t *testing.T) {
	p := NewPlacer(Config{Phrase: "AB C", LetterSpacing: 20, WordSpacing: 10}, nil)
	live := line(0, 0, 0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100)

	got := p.Place(live, 1, nil)
	want := []struct {
		g rune
		x float64
	}{{'A', 0}, {'B', 20}, {'C', 50}}

	if len(got) != len(want) {
		t.Fatalf("Expected %d glyphs, got %d: %+v", len(want), len(got), got)
	}
	for i, w := range want {
		if got[i].Glyph != w.g || math.Abs(got[i].X-w.x) > 1e-9 || got[i].Y != 0 {
			t.Errorf("Glyph %d: expected %c at %f, got %c at (%f,%f)", i, w.g, w.x, got[i].Glyph, got[i].X, got[i].Y)
		}
		if got[i].Angle != 0 {
			t.Errorf("Glyph %d: expected angle 0, got %f", i, got[i].Angle)
		}
	}
	if got[2].Word != 1 || got[2].Letter != 0 {
		t.Errorf("Expected C to be word 1 letter 0, got word %d letter %d", got[2].Word, got[2].Letter)
	}
}

func TestPlaceRespectsDelay(t *testing.T) {
	p := NewPlacer(Config{Phrase: "AB C", LetterSpacing: 20, WordSpacing: 10, Delay: 0.1}, nil)
	live := line(0, 0, 0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100)

	if got := p.Place(live, 0.1, nil); len(got) != 0 {
		t.Errorf("Expected no text at the delay point, got %d glyphs", len(got))
	}
	// (0.5-0.1)/0.9 = 0.444 -> 44.4 units unlocked, C sits at 50
	if got := p.Place(live, 0.5, nil); len(got) != 2 {
		t.Errorf("Expected 2 glyphs at 44.4 units, got %d", len(got))
	}
	if got := p.Place(live, 1, nil); len(got) != 3 {
		t.Errorf("Expected the whole phrase at full progress, got %d", len(got))
	}
}

func TestPlaceStopsAtUnlockedDistance(t *testing.T) {
	p := NewPlacer(Config{Phrase: "AB C", LetterSpacing: 20, WordSpacing: 10}, nil)
	live := line(0, 0, 0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100)

	// 0.5 * 100 = 50 exactly; a glyph at the limit is not placed
	if got := p.Place(live, 0.5, nil); len(got) != 2 {
		t.Errorf("Expected 2 glyphs with C exactly at the limit, got %d", len(got))
	}
	// 0.5078125 * 100 = 50.78125 exactly
	got := p.Place(live, 0.5078125, nil)
	if len(got) != 3 {
		t.Fatalf("Expected 3 glyphs just past the limit, got %d", len(got))
	}
	if got[2].Glyph != 'C' || got[2].X != 50 {
		t.Errorf("Expected C at x=50, got %q at %f", got[2].Glyph, got[2].X)
	}
}

func TestTextProgress(t *testing.T) {
	p := NewPlacer(Config{Delay: 0.1}, nil)
	tests := []struct{ in, want float64 }{
		{0, 0}, {0.1, 0}, {0.55, 0.5}, {1, 1}, {3, 1},
	}
	for _, tt := range tests {
		if got := p.TextProgress(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("TextProgress(%f): expected %f, got %f", tt.in, tt.want, got)
		}
	}
}

func TestPlaceTooShortOrTooFew(t *testing.T) {
	p := NewPlacer(Config{Phrase: "A", LetterSpacing: 20}, nil)

	if got := p.Place(line(0, 0, 0, 10), 1, nil); got != nil {
		t.Errorf("Expected nothing on a path shorter than letter spacing, got %d", len(got))
	}
	if got := p.Place(line(0, 0, 0), 1, nil); got != nil {
		t.Error("Expected nothing with one live point")
	}

	// Two single-point runs never form a path
	live := append(line(0, 0, 0), line(1, 1, 50)...)
	if got := p.Place(live, 1, nil); got != nil {
		t.Error("Expected single-point runs to be dropped")
	}
}

func TestPathModes(t *testing.T) {
	live := append(line(0, 0, 0, 10, 20, 30), line(1, 4, 100, 110, 120, 130)...)
	cfg := Config{Phrase: "ABCD", LetterSpacing: 20}

	cont := NewPlacer(cfg, nil)
	_, dist := cont.Path(live)
	if dist[len(dist)-1] != 130 {
		t.Errorf("Expected continuous length 130, got %f", dist[len(dist)-1])
	}
	got := cont.Place(live, 1, nil)
	if len(got) != 4 || math.Abs(got[2].X-40) > 1e-9 {
		t.Errorf("Expected third glyph in the gap at x=40, got %+v", got)
	}

	cfg.PathMode = PerStroke
	split := NewPlacer(cfg, nil)
	_, dist = split.Path(live)
	if dist[len(dist)-1] != 60 {
		t.Errorf("Expected per-stroke length 60, got %f", dist[len(dist)-1])
	}
	got = split.Place(live, 1, nil)
	if len(got) != 3 {
		t.Fatalf("Expected 3 glyphs over 60 units, got %d", len(got))
	}
	if math.Abs(got[2].X-110) > 1e-9 {
		t.Errorf("Expected third glyph on the second stroke at x=110, got %f", got[2].X)
	}
	for _, g := range got {
		if g.X > 30 && g.X < 100 {
			t.Errorf("Glyph %c landed in the gap at %f", g.Glyph, g.X)
		}
	}
}

func TestPlaceOffsetAndJiggle(t *testing.T) {
	j := &shiftJiggler{}
	p := NewPlacer(Config{Phrase: "AB", LetterSpacing: 20, Offset: 5, JiggleScale: 0.01}, j)

	got := p.Place(line(0, 0, 0, 50), 1, &perturb.Env{})
	if len(got) != 2 {
		t.Fatalf("Expected 2 glyphs, got %d", len(got))
	}
	// angle 0: perpendicular offset is (0, -5), jiggler adds (1, 1)
	if math.Abs(got[1].X-21) > 1e-9 || math.Abs(got[1].Y+4) > 1e-9 {
		t.Errorf("Expected (21,-4), got (%f,%f)", got[1].X, got[1].Y)
	}
	if len(j.seeds) != 2 || j.seeds[0] != 0 || j.seeds[1] != 1 {
		t.Errorf("Expected letter indices as seeds, got %v", j.seeds)
	}
	if j.scales[0] != 0.01 {
		t.Errorf("Expected attenuated jiggle scale, got %f", j.scales[0])
	}
}

func TestPointAtSkipsZeroLengthSegments(t *testing.T) {
	path := []vmath.Point{{X: 0, Y: 0}, {X: 0, Y: 0}, {X: 0, Y: 10}}
	dist := []float64{0, 0, 10}

	pos, angle, ok := PointAt(path, dist, 0)
	if !ok || pos != (vmath.Point{}) {
		t.Errorf("Expected origin, got %+v ok=%v", pos, ok)
	}
	if math.Abs(angle-math.Pi/2) > 1e-9 {
		t.Errorf("Expected angle pi/2, got %f", angle)
	}

	if _, _, ok := PointAt(path[:2], dist[:2], 0); ok {
		t.Error("Expected no position on a zero-length path")
	}
	if _, _, ok := PointAt(path, dist, 11); ok {
		t.Error("Expected no position beyond the path")
	}
}

func TestPlaceAtPointsCycles(t *testing.T) {
	p := NewPlacer(Config{Phrase: "T R O"}, nil)
	labels := p.PlaceAtPoints(line(0, 0, 0, 1, 2, 3, 4))

	want := []string{"T", "R", "O", "T", "R"}
	for i, w := range want {
		if labels[i].Text != w {
			t.Errorf("Label %d: expected %q, got %q", i, w, labels[i].Text)
		}
	}
	if labels[3].X != 3 {
		t.Errorf("Expected label at the point position, got %f", labels[3].X)
	}
}

func TestPhraseNormalized(t *testing.T) {
	p := NewPlacer(Config{Phrase: "  cafe\u0301   ok "}, nil)
	if len(p.words) != 2 {
		t.Fatalf("Expected 2 words, got %q", p.words)
	}
	if string(p.words[0]) != "caf\u00e9" || len(p.words[0]) != 4 {
		t.Errorf("Expected composed form, got %q", string(p.words[0]))
	}
}
