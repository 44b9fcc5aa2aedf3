package render

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
	"github.com/lixenwraith/trough/engine"
	"github.com/lixenwraith/trough/vmath"
)

// svgSmoothingCap bounds interpolated vertices per segment to keep documents small
const svgSmoothingCap = 8

// SVGRenderer writes each frame as a standalone SVG document
type SVGRenderer struct {
	w      io.Writer
	width  int
	height int
	style  Style
}

// NewSVGRenderer targets w with a width x height viewport
func NewSVGRenderer(w io.Writer, width, height int, style Style) *SVGRenderer {
	return &SVGRenderer{w: w, width: width, height: height, style: style}
}

// errWriter remembers the first write failure so svgo calls need no checks
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

// Render emits one frame
func (r *SVGRenderer) Render(f engine.Frame) error {
	ew := &errWriter{w: r.w}
	canvas := svg.New(ew)
	s := r.style

	canvas.Start(r.width, r.height)
	canvas.Title("trough")
	canvas.Rect(0, 0, r.width, r.height, "fill:"+s.Background.Hex())

	for _, b := range f.Blocked {
		rect(canvas, b, "fill:"+s.BlockedFill().Hex())
	}
	if f.ShowExclusions {
		for _, e := range f.Exclusions {
			rect(canvas, e, fmt.Sprintf("fill:%s;fill-opacity:%.2f", s.Exclusion.Hex(), ExclusionAlpha))
		}
	}
	if s.ShowBorders {
		for _, b := range f.Grid {
			rect(canvas, b, "fill:none;stroke-width:1;stroke:"+s.Border.Hex())
		}
	}

	strokeStyle := fmt.Sprintf("fill:none;stroke:%s;stroke-width:%g;stroke-linecap:round;stroke-linejoin:round",
		s.Drawing.Hex(), s.StrokeWeight)
	textStyle := fmt.Sprintf("fill:%s;fill-opacity:%.2f;font-family:sans-serif;font-size:%gpx;text-anchor:middle;dominant-baseline:central",
		s.Text.Hex(), s.TextOpacity, s.FontSize)

	for _, cv := range f.Cells {
		canvas.Gid(fmt.Sprintf("cell-%d", cv.Index))
		for _, path := range cv.Paths {
			smooth := vmath.CatmullRom(path, min(s.SmoothingSteps, svgSmoothingCap))
			if len(smooth) < 2 {
				continue
			}
			xs, ys := make([]int, len(smooth)), make([]int, len(smooth))
			for i, p := range smooth {
				xs[i], ys[i] = round(p.X), round(p.Y)
			}
			canvas.Polyline(xs, ys, strokeStyle)
		}
		if s.PointSize > 0 {
			for _, p := range cv.Points {
				canvas.Circle(round(p.X), round(p.Y), max(round(s.PointSize/2), 1), "fill:"+s.Points.Hex())
			}
		}
		for _, g := range cv.Glyphs {
			canvas.TranslateRotate(round(g.X), round(g.Y), g.Angle*180/math.Pi)
			canvas.Text(0, 0, string(g.Glyph), textStyle)
			canvas.Gend()
		}
		for _, l := range cv.Labels {
			canvas.Text(round(l.X), round(l.Y), l.Text, textStyle)
		}
		canvas.Gend()
	}

	if f.HasDraft {
		rect(canvas, f.Draft, fmt.Sprintf("fill:%s;fill-opacity:%.2f", s.Exclusion.Hex(), DraftAlpha))
	}
	canvas.End()
	return ew.err
}

func rect(canvas *svg.SVG, r vmath.Rect, style string) {
	canvas.Rect(round(r.X), round(r.Y), round(r.W), round(r.H), style)
}

func round(v float64) int {
	return int(math.Round(v))
}
