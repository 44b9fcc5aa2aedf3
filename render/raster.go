package render

import (
	"fmt"
	"image"
	"io"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"github.com/lixenwraith/trough/engine"
	"github.com/lixenwraith/trough/vmath"
	"golang.org/x/image/font/gofont/goregular"
)

// RasterRenderer draws frames into an in-memory image with smoothed strokes
type RasterRenderer struct {
	dc      *gg.Context
	style   Style
	face    text.Face
	outline *outlineFont
}

// NewRasterRenderer creates a width x height raster target
func NewRasterRenderer(width, height int, style Style) (*RasterRenderer, error) {
	source, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	outline, err := newOutlineFont(style.FontSize)
	if err != nil {
		return nil, err
	}
	return &RasterRenderer{
		dc:      gg.NewContext(width, height),
		style:   style,
		face:    source.Face(style.FontSize),
		outline: outline,
	}, nil
}

// Render draws one frame over a cleared background
func (r *RasterRenderer) Render(f engine.Frame) error {
	dc := r.dc
	s := r.style
	dc.ClearWithColor(s.Background.GG(1))

	for _, b := range f.Blocked {
		r.setColor(s.BlockedFill(), 1)
		dc.DrawRectangle(b.X, b.Y, b.W, b.H)
		if err := dc.Fill(); err != nil {
			return err
		}
	}
	if f.ShowExclusions {
		for _, e := range f.Exclusions {
			if err := r.fillRect(e, s.Exclusion, ExclusionAlpha); err != nil {
				return err
			}
		}
	}

	if s.ShowBorders {
		dc.SetLineWidth(1)
		r.setColor(s.Border, 1)
		for _, b := range f.Grid {
			dc.DrawRectangle(b.X, b.Y, b.W, b.H)
		}
		if err := dc.Stroke(); err != nil {
			return err
		}
	}

	for _, cv := range f.Cells {
		if err := r.cell(cv); err != nil {
			return err
		}
	}

	if f.HasDraft {
		if err := r.fillRect(f.Draft, s.Exclusion, DraftAlpha); err != nil {
			return err
		}
	}
	return nil
}

func (r *RasterRenderer) setColor(c RGB, alpha float64) {
	g := c.GG(alpha)
	r.dc.SetRGBA(g.R, g.G, g.B, g.A)
}

func (r *RasterRenderer) fillRect(rect vmath.Rect, c RGB, alpha float64) error {
	r.setColor(c, alpha)
	r.dc.DrawRectangle(rect.X, rect.Y, rect.W, rect.H)
	return r.dc.Fill()
}

func (r *RasterRenderer) cell(cv engine.CellView) error {
	dc := r.dc
	s := r.style

	dc.SetLineWidth(s.StrokeWeight)
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)
	r.setColor(s.Drawing, 1)
	for _, path := range cv.Paths {
		smooth := vmath.CatmullRom(path, s.SmoothingSteps)
		if len(smooth) < 2 {
			continue
		}
		dc.MoveTo(smooth[0].X, smooth[0].Y)
		for _, p := range smooth[1:] {
			dc.LineTo(p.X, p.Y)
		}
	}
	if err := dc.Stroke(); err != nil {
		return err
	}

	if s.PointSize > 0 && len(cv.Points) > 0 {
		r.setColor(s.Points, 1)
		for _, p := range cv.Points {
			dc.DrawCircle(p.X, p.Y, s.PointSize/2)
		}
		if err := dc.Fill(); err != nil {
			return err
		}
	}

	if len(cv.Glyphs) == 0 && len(cv.Labels) == 0 {
		return nil
	}
	r.setColor(s.Text, s.TextOpacity)
	if len(cv.Glyphs) > 0 {
		for _, g := range cv.Glyphs {
			r.outline.appendGlyph(dc, g.Glyph, g.X, g.Y, g.Angle)
		}
		if err := dc.Fill(); err != nil {
			return err
		}
	}
	dc.SetFont(r.face)
	for _, l := range cv.Labels {
		dc.DrawStringAnchored(l.Text, l.X, l.Y, 0.5, 0.5)
	}
	return nil
}

// Image returns the current raster
func (r *RasterRenderer) Image() image.Image { return r.dc.Image() }

// EncodePNG writes the current raster as PNG
func (r *RasterRenderer) EncodePNG(w io.Writer) error { return r.dc.EncodePNG(w) }

// SavePNG writes the current raster to a PNG file
func (r *RasterRenderer) SavePNG(path string) error { return r.dc.SavePNG(path) }

// Close releases the drawing context
func (r *RasterRenderer) Close() error { return r.dc.Close() }
