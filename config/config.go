// Package config holds installation settings loaded from TOML and the environment
package config

import (
	"errors"
	"fmt"
	"image/color"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/trough/core"
)

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("config: invalid")

type Config struct {
	Animation     AnimationConfig     `toml:"animation"`
	Jiggle        JiggleConfig        `toml:"jiggle"`
	Text          TextConfig          `toml:"text"`
	Grid          GridConfig          `toml:"grid"`
	Selection     SelectionConfig     `toml:"selection"`
	Interactivity InteractivityConfig `toml:"interactivity"`
	Exclusion     ExclusionConfig     `toml:"exclusion"`
	BlockedCells  RepulsionConfig     `toml:"blocked_cell_repulsion"`
	Displacement  DisplacementConfig  `toml:"displacement"`
	Colors        ColorConfig         `toml:"colors"`
	Canvas        CanvasConfig        `toml:"canvas"`
	Debug         DebugConfig         `toml:"debug"`
	Audio         AudioConfig         `toml:"audio"`
	Modes         ModesConfig         `toml:"modes"`
	Terminal      TerminalConfig      `toml:"terminal"`
}

type AnimationConfig struct {
	DurationMS          int     `toml:"duration_ms"`
	StrokeWeight        float64 `toml:"stroke_weight"`
	PointSize           float64 `toml:"point_size"`
	PauseMS             int     `toml:"pause_ms"` // Between one reveal completing and the next starting
	CurveSmoothingSteps int     `toml:"curve_smoothing_steps"`
}

func (a AnimationConfig) Duration() time.Duration {
	return time.Duration(a.DurationMS) * time.Millisecond
}

func (a AnimationConfig) Pause() time.Duration {
	return time.Duration(a.PauseMS) * time.Millisecond
}

type JiggleConfig struct {
	Amplitude    float64 `toml:"amplitude"`
	Speed        float64 `toml:"speed"`
	XPhaseOffset float64 `toml:"x_phase_offset"`
	YPhaseOffset float64 `toml:"y_phase_offset"`
	XFrequency2  float64 `toml:"x_frequency_2"`
	YFrequency2  float64 `toml:"y_frequency_2"`
	TextScale    float64 `toml:"text_scale"`
}

type TextConfig struct {
	Content       string  `toml:"content"`
	FontSize      float64 `toml:"font_size"`
	LetterSpacing float64 `toml:"letter_spacing"`
	WordSpacing   float64 `toml:"word_spacing"`
	Opacity       int     `toml:"opacity"` // 0-255
	Offset        float64 `toml:"offset"`
	Delay         float64 `toml:"delay"`
	Mode          string  `toml:"mode"`      // path, points, off
	PathMode      string  `toml:"path_mode"` // continuous, per_stroke
}

type GridConfig struct {
	Rows          int     `toml:"rows"`
	Cols          int     `toml:"cols"`
	CellPadding   float64 `toml:"cell_padding"`   // Fraction of cell width
	TopPadding    float64 `toml:"top_padding"`    // Fraction of canvas height
	BottomPadding float64 `toml:"bottom_padding"` // Fraction of canvas height
	Prefill       bool    `toml:"prefill"`
}

type SelectionConfig struct {
	RecognizedProbability float64 `toml:"recognized_probability"`
	CellOrder             string  `toml:"cell_order"` // sequential, random
	Seed                  int64   `toml:"seed"`       // 0 seeds from the clock
}

type InteractivityConfig struct {
	PointerRepel bool    `toml:"pointer_repel"`
	RepelRadius  float64 `toml:"repel_radius"`
	RepelForce   float64 `toml:"repel_force"`
}

type ExclusionConfig struct {
	Enabled           bool    `toml:"enabled"`
	RepelRadius       float64 `toml:"repel_radius"`
	RepelStrength     float64 `toml:"repel_strength"`
	CoverageThreshold float64 `toml:"coverage_threshold"`
	MinSize           float64 `toml:"min_size"`
}

type RepulsionConfig struct {
	Enabled       bool    `toml:"enabled"`
	RepelRadius   float64 `toml:"repel_radius"`
	RepelStrength float64 `toml:"repel_strength"`
	RepelDecay    float64 `toml:"repel_decay"`
}

type DisplacementConfig struct {
	Enabled        bool    `toml:"enabled"`
	Image          string  `toml:"image"`
	BlackThreshold float64 `toml:"black_threshold"`
	Strength       float64 `toml:"strength"`
	Invert         bool    `toml:"invert"`
	MaxSide        int     `toml:"max_side"`
}

type ColorConfig struct {
	Background string `toml:"background"`
	Drawing    string `toml:"drawing"`
	Border     string `toml:"border"`
	Points     string `toml:"points"`
	Text       string `toml:"text"`
	Exclusion  string `toml:"exclusion"`
}

type CanvasConfig struct {
	AspectWidth  float64 `toml:"aspect_width"`
	AspectHeight float64 `toml:"aspect_height"`
	Width        int     `toml:"width"` // Raster output and window size
	Height       int     `toml:"height"`
}

func (c CanvasConfig) Aspect() float64 {
	return c.AspectWidth / c.AspectHeight
}

type DebugConfig struct {
	ShowCellBorders bool `toml:"show_cell_borders"`
	LogDrawings     bool `toml:"log_drawings"`
	ShowFPS         bool `toml:"show_fps"`
}

type AudioConfig struct {
	Enabled      bool    `toml:"enabled"`
	MasterVolume float64 `toml:"master_volume"`
	SampleRate   int     `toml:"sample_rate"`
}

type ModesConfig struct {
	CustomCells bool `toml:"custom_cells"`
}

type TerminalConfig struct {
	FrameMS         int     `toml:"frame_ms"`
	PixelsPerDot    float64 `toml:"pixels_per_dot"` // 0 fits the canvas to the terminal
	PointerSpring   bool    `toml:"pointer_spring"`
	SpringFrequency float64 `toml:"spring_frequency"`
	SpringDamping   float64 `toml:"spring_damping"`
}

func (t TerminalConfig) Frame() time.Duration {
	return time.Duration(t.FrameMS) * time.Millisecond
}

// Default returns the stock installation settings
func Default() *Config {
	return &Config{
		Animation: AnimationConfig{
			DurationMS:          10000,
			StrokeWeight:        2,
			PointSize:           10,
			PauseMS:             100,
			CurveSmoothingSteps: 70,
		},
		Jiggle: JiggleConfig{
			Amplitude:    0.5,
			Speed:        0.004,
			XPhaseOffset: 0.5,
			YPhaseOffset: 0.5,
			XFrequency2:  1.3,
			YFrequency2:  0.8,
			TextScale:    0.01,
		},
		Text: TextConfig{
			Content:       "T R O U G H 0 3",
			FontSize:      8,
			LetterSpacing: 80,
			WordSpacing:   40,
			Opacity:       255,
			Offset:        0,
			Delay:         0.1,
			Mode:          "path",
			PathMode:      "continuous",
		},
		Grid: GridConfig{
			Rows:          4,
			Cols:          4,
			CellPadding:   0.1,
			TopPadding:    0.05,
			BottomPadding: 0.05,
		},
		Selection: SelectionConfig{
			RecognizedProbability: 0.8,
			CellOrder:             "sequential",
		},
		Interactivity: InteractivityConfig{
			PointerRepel: true,
			RepelRadius:  100,
			RepelForce:   20,
		},
		Exclusion: ExclusionConfig{
			Enabled:           true,
			RepelRadius:       40,
			RepelStrength:     30,
			CoverageThreshold: 0.5,
			MinSize:           10,
		},
		BlockedCells: RepulsionConfig{
			Enabled:       false,
			RepelRadius:   40,
			RepelStrength: 30,
			RepelDecay:    2,
		},
		Displacement: DisplacementConfig{
			BlackThreshold: 60,
			Strength:       4,
			MaxSide:        512,
		},
		Colors: ColorConfig{
			Background: "#f4f1ea",
			Drawing:    "#1b1b1b",
			Border:     "#000000",
			Points:     "#1b1b1b",
			Text:       "#f4f1ea",
			Exclusion:  "#ef6f26",
		},
		Canvas: CanvasConfig{
			AspectWidth:  4,
			AspectHeight: 5,
			Width:        800,
			Height:       1000,
		},
		Debug: DebugConfig{
			LogDrawings: true,
		},
		Audio: AudioConfig{
			Enabled:      false,
			MasterVolume: 0.5,
			SampleRate:   44100,
		},
		Terminal: TerminalConfig{
			FrameMS:         16,
			PointerSpring:   true,
			SpringFrequency: 6,
			SpringDamping:   0.9,
		},
	}
}

// Load decodes a TOML file over the defaults
// Keys the file sets but Config does not know are logged, not rejected
func Load(path string) (*Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	for _, key := range md.Undecoded() {
		core.Logger().Warn("config: unknown key", "key", key.String())
	}
	return cfg, nil
}

// Parse decodes TOML text over the defaults
func Parse(data string) (*Config, error) {
	cfg := Default()
	if _, err := toml.Decode(data, cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Validate reports the first setting outside its allowed range
func (c *Config) Validate() error {
	switch {
	case c.Animation.DurationMS <= 0:
		return invalid("animation.duration_ms must be positive, got %d", c.Animation.DurationMS)
	case c.Animation.PauseMS < 0:
		return invalid("animation.pause_ms must not be negative, got %d", c.Animation.PauseMS)
	case c.Grid.Rows < 1 || c.Grid.Cols < 1:
		return invalid("grid must have at least one row and column, got %dx%d", c.Grid.Rows, c.Grid.Cols)
	case c.Grid.CellPadding < 0 || c.Grid.CellPadding >= 0.5:
		return invalid("grid.cell_padding must be in [0, 0.5), got %g", c.Grid.CellPadding)
	case c.Grid.TopPadding < 0 || c.Grid.BottomPadding < 0 || c.Grid.TopPadding+c.Grid.BottomPadding >= 1:
		return invalid("grid paddings must be non-negative and sum below 1")
	case c.Text.LetterSpacing <= 0:
		return invalid("text.letter_spacing must be positive, got %g", c.Text.LetterSpacing)
	case c.Text.WordSpacing < 0:
		return invalid("text.word_spacing must not be negative, got %g", c.Text.WordSpacing)
	case c.Text.Delay < 0 || c.Text.Delay >= 1:
		return invalid("text.delay must be in [0, 1), got %g", c.Text.Delay)
	case c.Text.Opacity < 0 || c.Text.Opacity > 255:
		return invalid("text.opacity must be in [0, 255], got %d", c.Text.Opacity)
	case !oneOf(c.Text.Mode, "path", "points", "off"):
		return invalid("text.mode %q is not path, points or off", c.Text.Mode)
	case !oneOf(c.Text.PathMode, "continuous", "per_stroke"):
		return invalid("text.path_mode %q is not continuous or per_stroke", c.Text.PathMode)
	case c.Selection.RecognizedProbability < 0 || c.Selection.RecognizedProbability > 1:
		return invalid("selection.recognized_probability must be in [0, 1], got %g", c.Selection.RecognizedProbability)
	case !oneOf(c.Selection.CellOrder, "sequential", "random"):
		return invalid("selection.cell_order %q is not sequential or random", c.Selection.CellOrder)
	case c.Exclusion.CoverageThreshold <= 0 || c.Exclusion.CoverageThreshold > 1:
		return invalid("exclusion.coverage_threshold must be in (0, 1], got %g", c.Exclusion.CoverageThreshold)
	case c.Exclusion.MinSize < 0:
		return invalid("exclusion.min_size must not be negative, got %g", c.Exclusion.MinSize)
	case c.Interactivity.RepelRadius < 0 || c.Exclusion.RepelRadius < 0 || c.BlockedCells.RepelRadius < 0:
		return invalid("repulsion radii must not be negative")
	case c.BlockedCells.RepelDecay < 0:
		return invalid("blocked_cell_repulsion.repel_decay must not be negative, got %g", c.BlockedCells.RepelDecay)
	case c.Displacement.Enabled && c.Displacement.Image == "":
		return invalid("displacement.image is required when displacement is enabled")
	case c.Displacement.BlackThreshold < 0 || c.Displacement.BlackThreshold > 255:
		return invalid("displacement.black_threshold must be in [0, 255], got %g", c.Displacement.BlackThreshold)
	case c.Canvas.AspectWidth <= 0 || c.Canvas.AspectHeight <= 0:
		return invalid("canvas aspect must be positive")
	case c.Canvas.Width <= 0 || c.Canvas.Height <= 0:
		return invalid("canvas size must be positive, got %dx%d", c.Canvas.Width, c.Canvas.Height)
	case c.Audio.MasterVolume < 0 || c.Audio.MasterVolume > 1:
		return invalid("audio.master_volume must be in [0, 1], got %g", c.Audio.MasterVolume)
	case c.Audio.SampleRate <= 0:
		return invalid("audio.sample_rate must be positive, got %d", c.Audio.SampleRate)
	case c.Terminal.FrameMS <= 0:
		return invalid("terminal.frame_ms must be positive, got %d", c.Terminal.FrameMS)
	}

	for name, hex := range map[string]string{
		"background": c.Colors.Background,
		"drawing":    c.Colors.Drawing,
		"border":     c.Colors.Border,
		"points":     c.Colors.Points,
		"text":       c.Colors.Text,
		"exclusion":  c.Colors.Exclusion,
	} {
		if _, err := ParseHex(hex); err != nil {
			return invalid("colors.%s: %v", name, err)
		}
	}
	return nil
}

func oneOf(v string, opts ...string) bool {
	for _, o := range opts {
		if v == o {
			return true
		}
	}
	return false
}

// ParseHex parses #rrggbb or #rgb into an opaque color
func ParseHex(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return color.RGBA{}, fmt.Errorf("bad hex color %q", s)
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(h, "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{}, fmt.Errorf("bad hex color %q: %w", s, err)
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// HexColor is ParseHex for validated values, falling back to opaque black
func HexColor(s string) color.RGBA {
	c, err := ParseHex(s)
	if err != nil {
		return color.RGBA{A: 255}
	}
	return c
}
