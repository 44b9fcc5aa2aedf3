package render

import (
	"testing"

	"github.com/lixenwraith/trough/config"
)

func TestRGBHex(t *testing.T) {
	c := RGB{R: 0xef, G: 0x6f, B: 0x26}
	if got := c.Hex(); got != "#ef6f26" {
		t.Errorf("Expected #ef6f26, got %s", got)
	}
	if got := (RGB{}).Hex(); got != "#000000" {
		t.Errorf("Expected #000000, got %s", got)
	}
}

func TestRGBBlend(t *testing.T) {
	black := RGB{}
	white := RGB{255, 255, 255}
	if got := black.Blend(white, 0); got != black {
		t.Errorf("Expected alpha 0 to keep destination, got %v", got)
	}
	if got := black.Blend(white, 1); got != white {
		t.Errorf("Expected alpha 1 to take source, got %v", got)
	}
	if got := black.Blend(white, 0.5); got.R != 127 {
		t.Errorf("Expected half blend 127, got %d", got.R)
	}
}

func TestStyleFromConfig(t *testing.T) {
	cfg := config.Default()
	s := StyleFromConfig(cfg)
	if s.Background != (RGB{0xf4, 0xf1, 0xea}) {
		t.Errorf("Expected default background, got %v", s.Background)
	}
	if s.TextOpacity != 1 {
		t.Errorf("Expected opacity 255 to map to 1, got %v", s.TextOpacity)
	}
	if s.StrokeWeight != cfg.Animation.StrokeWeight || s.FontSize != cfg.Text.FontSize {
		t.Error("Expected sizes copied from config")
	}
	if s.BlockedFill() == s.Background {
		t.Error("Expected blocked fill to differ from background")
	}
}
