package render

import (
	"github.com/lixenwraith/trough/config"
	"github.com/lixenwraith/trough/engine"
)

// blockedTint is the share of the exclusion color mixed into blocked cells
const blockedTint = 0.18

// Overlay opacities for committed rectangles and the rectangle being dragged
const (
	ExclusionAlpha = 0.55
	DraftAlpha     = 0.3
)

// Style carries the resolved visual settings shared by all renderers
type Style struct {
	Background RGB
	Drawing    RGB
	Border     RGB
	Points     RGB
	Text       RGB
	Exclusion  RGB

	StrokeWeight   float64
	PointSize      float64
	FontSize       float64
	TextOpacity    float64 // 0-1
	SmoothingSteps int

	ShowBorders bool
	ShowFPS     bool
}

// StyleFromConfig resolves colors and sizes from a validated config
func StyleFromConfig(cfg *config.Config) Style {
	c := cfg.Colors
	return Style{
		Background:     RGBFromColor(config.HexColor(c.Background)),
		Drawing:        RGBFromColor(config.HexColor(c.Drawing)),
		Border:         RGBFromColor(config.HexColor(c.Border)),
		Points:         RGBFromColor(config.HexColor(c.Points)),
		Text:           RGBFromColor(config.HexColor(c.Text)),
		Exclusion:      RGBFromColor(config.HexColor(c.Exclusion)),
		StrokeWeight:   cfg.Animation.StrokeWeight,
		PointSize:      cfg.Animation.PointSize,
		FontSize:       cfg.Text.FontSize,
		TextOpacity:    float64(cfg.Text.Opacity) / 255,
		SmoothingSteps: cfg.Animation.CurveSmoothingSteps,
		ShowBorders:    cfg.Debug.ShowCellBorders,
		ShowFPS:        cfg.Debug.ShowFPS,
	}
}

// BlockedFill is the background used for cells the exclusions have taken over
func (s Style) BlockedFill() RGB {
	return s.Background.Blend(s.Exclusion, blockedTint)
}

// Renderer draws installation frames to some output
type Renderer interface {
	Render(f engine.Frame) error
}
