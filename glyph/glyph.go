// Package glyph lays a phrase out along revealed stroke paths by arc length
package glyph

import (
	"math"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/lixenwraith/trough/perturb"
	"github.com/lixenwraith/trough/reveal"
	"github.com/lixenwraith/trough/vmath"
)

// PathMode selects how separate stroke runs join into one text path
type PathMode int

const (
	// Continuous treats the gap between runs as part of the path
	Continuous PathMode = iota
	// PerStroke gives the gap between runs zero length
	PerStroke
)

// ParsePathMode accepts "continuous" or "per_stroke"
func ParsePathMode(s string) (PathMode, bool) {
	switch s {
	case "continuous":
		return Continuous, true
	case "per_stroke":
		return PerStroke, true
	}
	return Continuous, false
}

type Config struct {
	Phrase        string
	LetterSpacing float64 // Arc length between glyphs
	WordSpacing   float64 // Extra arc length between words
	Offset        float64 // Perpendicular distance from the path
	Delay         float64 // Reveal progress before text starts, in [0, 1)
	JiggleScale   float64
	PathMode      PathMode
}

// Placement is one glyph positioned for the current frame
type Placement struct {
	Glyph  rune
	X, Y   float64
	Angle  float64 // Radians, local path direction
	Word   int
	Letter int
}

// Label is a whole word drawn at a live point
type Label struct {
	Text string
	X, Y float64
}

// Jiggler perturbs a glyph position; *perturb.Engine implements it
type Jiggler interface {
	Jiggle(base vmath.Point, seed int, scale float64, env *perturb.Env) vmath.Point
}

// Placer is reusable across frames; placements are computed fresh per call
type Placer struct {
	cfg   Config
	words [][]rune
	jig   Jiggler
}

// NewPlacer splits the NFC-normalized phrase on whitespace
// jig may be nil for unperturbed placement
func NewPlacer(cfg Config, jig Jiggler) *Placer {
	fields := strings.Fields(norm.NFC.String(cfg.Phrase))
	words := make([][]rune, len(fields))
	for i, f := range fields {
		words[i] = []rune(f)
	}
	return &Placer{cfg: cfg, words: words, jig: jig}
}

// Path flattens stroke runs of at least two points into one polyline and
// returns the cumulative arc length at each vertex
func (p *Placer) Path(live []reveal.LivePoint) ([]vmath.Point, []float64) {
	var path []vmath.Point
	var dist []float64
	total := 0.0

	for _, run := range reveal.StrokeRuns(live) {
		if len(run) < 2 {
			continue
		}
		for i, lp := range run {
			pt := lp.Pos()
			if len(path) > 0 {
				joint := i == 0
				if !joint || p.cfg.PathMode == Continuous {
					total += vmath.Dist(path[len(path)-1], pt)
				}
			}
			path = append(path, pt)
			dist = append(dist, total)
		}
	}
	return path, dist
}

// TextProgress rescales reveal progress so text starts after the delay
func (p *Placer) TextProgress(progress float64) float64 {
	if p.cfg.Delay >= 1 {
		if progress >= 1 {
			return 1
		}
		return 0
	}
	return vmath.Clamp((progress-p.cfg.Delay)/(1-p.cfg.Delay), 0, 1)
}

// Place walks the phrase along the live path up to the arc length unlocked
// by progress; the phrase does not repeat within one call
func (p *Placer) Place(live []reveal.LivePoint, progress float64, env *perturb.Env) []Placement {
	if len(live) < 2 || len(p.words) == 0 || p.cfg.LetterSpacing <= 0 {
		return nil
	}

	path, dist := p.Path(live)
	if len(path) < 2 {
		return nil
	}
	total := dist[len(dist)-1]
	if total < p.cfg.LetterSpacing {
		return nil
	}

	maxDistance := total * p.TextProgress(progress)
	var out []Placement
	cursor := 0.0
	word, letter := 0, 0

	for cursor < maxDistance && word < len(p.words) {
		if letter >= len(p.words[word]) {
			word++
			letter = 0
			cursor += p.cfg.WordSpacing
			continue
		}

		if pos, angle, ok := PointAt(path, dist, cursor); ok {
			off := vmath.Point{
				X: math.Sin(angle) * p.cfg.Offset,
				Y: -math.Cos(angle) * p.cfg.Offset,
			}
			if p.jig != nil && env != nil {
				pos = p.jig.Jiggle(pos, letter, p.cfg.JiggleScale, env)
			}
			pos = vmath.PAdd(pos, off)
			out = append(out, Placement{
				Glyph:  p.words[word][letter],
				X:      pos.X,
				Y:      pos.Y,
				Angle:  angle,
				Word:   word,
				Letter: letter,
			})
		}

		letter++
		cursor += p.cfg.LetterSpacing
	}
	return out
}

// PointAt interpolates the position at arc length d
// Zero-length segments are skipped; ok is false when no segment brackets d
func PointAt(path []vmath.Point, dist []float64, d float64) (vmath.Point, float64, bool) {
	for i := 1; i < len(dist); i++ {
		if dist[i] < d {
			continue
		}
		seg := dist[i] - dist[i-1]
		if seg == 0 {
			continue
		}
		t := (d - dist[i-1]) / seg
		a, b := path[i-1], path[i]
		return vmath.PLerp(a, b, t), vmath.Angle(a, b), true
	}
	return vmath.Point{}, 0, false
}

// PlaceAtPoints labels every live point with a word, cycling through the phrase
func (p *Placer) PlaceAtPoints(live []reveal.LivePoint) []Label {
	if len(p.words) == 0 {
		return nil
	}
	out := make([]Label, len(live))
	for i, lp := range live {
		out[i] = Label{Text: string(p.words[i%len(p.words)]), X: lp.X, Y: lp.Y}
	}
	return out
}
