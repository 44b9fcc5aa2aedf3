package render

import (
	"fmt"
	"math"
	"slices"

	"github.com/gogpu/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// outlineFont turns runes into vector paths so glyphs can be drawn at any angle
type outlineFont struct {
	f      *sfnt.Font
	buf    sfnt.Buffer
	ppem   fixed.Int26_6
	middle float64 // Baseline shift that centers the em box vertically
	cache  map[rune]glyphOutline
}

type glyphOutline struct {
	segs    sfnt.Segments
	advance float64
}

func newOutlineFont(size float64) (*outlineFont, error) {
	f, err := sfnt.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	o := &outlineFont{
		f:     f,
		ppem:  fixed.Int26_6(math.Round(size * 64)),
		cache: make(map[rune]glyphOutline),
	}
	m, err := f.Metrics(&o.buf, o.ppem, font.HintingNone)
	if err != nil {
		return nil, fmt.Errorf("font metrics: %w", err)
	}
	o.middle = (fix(m.Ascent) - fix(m.Descent)) / 2
	return o, nil
}

func fix(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func (o *outlineFont) outline(r rune) (glyphOutline, error) {
	if g, ok := o.cache[r]; ok {
		return g, nil
	}
	idx, err := o.f.GlyphIndex(&o.buf, r)
	if err != nil {
		return glyphOutline{}, err
	}
	segs, err := o.f.LoadGlyph(&o.buf, idx, o.ppem, nil)
	if err != nil {
		return glyphOutline{}, err
	}
	adv, err := o.f.GlyphAdvance(&o.buf, idx, o.ppem, font.HintingNone)
	if err != nil {
		return glyphOutline{}, err
	}
	// LoadGlyph reuses the buffer between calls
	g := glyphOutline{segs: slices.Clone(segs), advance: fix(adv)}
	o.cache[r] = g
	return g, nil
}

// appendGlyph adds the glyph's contours to the current path, centered on (x,y) and rotated by angle
// Runes missing from the font are skipped
func (o *outlineFont) appendGlyph(dc *gg.Context, r rune, x, y, angle float64) {
	g, err := o.outline(r)
	if err != nil {
		return
	}
	sin, cos := math.Sincos(angle)
	pt := func(p fixed.Point26_6) (float64, float64) {
		px := fix(p.X) - g.advance/2
		py := fix(p.Y) + o.middle
		return x + px*cos - py*sin, y + px*sin + py*cos
	}

	open := false
	for _, s := range g.segs {
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				dc.ClosePath()
			}
			dc.MoveTo(pt(s.Args[0]))
			open = true
		case sfnt.SegmentOpLineTo:
			dc.LineTo(pt(s.Args[0]))
		case sfnt.SegmentOpQuadTo:
			cx, cy := pt(s.Args[0])
			ex, ey := pt(s.Args[1])
			dc.QuadraticTo(cx, cy, ex, ey)
		case sfnt.SegmentOpCubeTo:
			c1x, c1y := pt(s.Args[0])
			c2x, c2y := pt(s.Args[1])
			ex, ey := pt(s.Args[2])
			dc.CubicTo(c1x, c1y, c2x, c2y, ex, ey)
		}
	}
	if open {
		dc.ClosePath()
	}
}
