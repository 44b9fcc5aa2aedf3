// Package perturb computes the per-frame positional offset of revealed points
package perturb

import (
	"math"
	"math/rand"

	"github.com/lixenwraith/trough/field"
	"github.com/lixenwraith/trough/vmath"
)

// WobbleConfig shapes the dual-frequency periodic motion
type WobbleConfig struct {
	Amplitude    float64 // Peak offset in pixels
	Speed        float64 // Radians per millisecond
	XPhaseOffset float64 // Phase per seed unit on x
	YPhaseOffset float64 // Phase per seed unit on y
	XFreq2       float64 // Secondary x frequency multiplier
	YFreq2       float64 // Secondary y frequency multiplier
}

// RepelConfig is a radius-bounded repulsion
// Pointer repulsion falls off linearly; rectangle repulsion uses Decay as the
// distance exponent
type RepelConfig struct {
	Enabled  bool
	Radius   float64
	Strength float64
	Decay    float64
}

// FieldConfig maps dark field regions to displacement
type FieldConfig struct {
	Enabled   bool
	Threshold float64 // Brightness at or below which displacement applies
	Strength  float64 // Displacement at brightness 0
	Invert    bool
}

type Config struct {
	Wobble  WobbleConfig
	Pointer RepelConfig
	Rect    RepelConfig
	Blocked RepelConfig
	Field   FieldConfig
}

// Env is the per-frame input shared by every point of a frame
// All points of one frame must see the same Env
type Env struct {
	Time       float64 // Milliseconds
	Pointer    vmath.Point
	HasPointer bool
	Rects      []vmath.Rect // Exclusion rectangles
	Blocked    []vmath.Rect // Bounds of blocked cells
	Field      field.Field  // Optional
	Bounds     vmath.Rect   // Canvas, for field normalization
	Rand       *rand.Rand   // Direction source for field displacement; nil uses the global source
}

// Engine is stateless apart from its configuration
type Engine struct {
	cfg Config
}

func New(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

func (e *Engine) Config() Config {
	return e.cfg
}

// Wobble returns the periodic offset of the point identified by seed at time t
// scale attenuates the whole offset linearly
func (e *Engine) Wobble(seed int, t, scale float64) vmath.Point {
	w := e.cfg.Wobble
	xOff := float64(seed) * w.XPhaseOffset
	yOff := float64(seed) * w.YPhaseOffset
	phase := t * w.Speed

	return vmath.Point{
		X: scale * (math.Sin(phase+xOff)*w.Amplitude*0.7 +
			math.Cos(phase*w.XFreq2+xOff*2)*w.Amplitude*0.3),
		Y: scale * (math.Cos(phase+yOff)*w.Amplitude*0.6 +
			math.Sin(phase*w.YFreq2+yOff*1.5)*w.Amplitude*0.4),
	}
}

// Jiggle applies wobble then field displacement, the motion shared by
// points and glyphs
func (e *Engine) Jiggle(base vmath.Point, seed int, scale float64, env *Env) vmath.Point {
	p := vmath.PAdd(base, e.Wobble(seed, env.Time, scale))
	return vmath.PAdd(p, e.FieldOffset(p, env))
}

// Perturb returns the on-screen position of base for this frame
// Contributions are added in order: wobble, field, pointer, rectangles, blocked cells
// Each repulsion samples the position produced by the steps before it
func (e *Engine) Perturb(base vmath.Point, seed int, env *Env) vmath.Point {
	p := e.Jiggle(base, seed, 1, env)

	if e.cfg.Pointer.Enabled && env.HasPointer {
		p = vmath.PAdd(p, PointerForce(p, env.Pointer, e.cfg.Pointer))
	}
	if e.cfg.Rect.Enabled && len(env.Rects) > 0 {
		p = vmath.PAdd(p, RectsForce(p, env.Rects, e.cfg.Rect))
	}
	if e.cfg.Blocked.Enabled && len(env.Blocked) > 0 {
		p = vmath.PAdd(p, RectsForce(p, env.Blocked, e.cfg.Blocked))
	}
	return p
}

// PointerForce pushes p away from ptr with magnitude falling linearly
// from Strength at distance 0 to nothing at Radius
func PointerForce(p, ptr vmath.Point, cfg RepelConfig) vmath.Point {
	if cfg.Radius <= 0 {
		return vmath.Point{}
	}
	d := vmath.Dist(ptr, p)
	if d >= cfg.Radius {
		return vmath.Point{}
	}
	return vmath.Polar(vmath.Angle(ptr, p), cfg.Strength*(1-d/cfg.Radius))
}

// RectForce pushes p away from the closest point of r
// Magnitude is Strength/d^Decay (Decay 0 is treated as 2) capped at Strength;
// points inside r or beyond Radius are unaffected
func RectForce(p vmath.Point, r vmath.Rect, cfg RepelConfig) vmath.Point {
	closest := r.ClosestPoint(p)
	d := vmath.Dist(closest, p)
	if d <= 0 || d >= cfg.Radius {
		return vmath.Point{}
	}

	decay := cfg.Decay
	if decay == 0 {
		decay = 2
	}
	mag := math.Min(cfg.Strength/math.Pow(d, decay), cfg.Strength)
	return vmath.Polar(vmath.Angle(closest, p), mag)
}

// RectsForce superposes RectForce over every rectangle
func RectsForce(p vmath.Point, rects []vmath.Rect, cfg RepelConfig) vmath.Point {
	var total vmath.Point
	for _, r := range rects {
		total = vmath.PAdd(total, RectForce(p, r, cfg))
	}
	return total
}

// FieldMagnitude converts a brightness sample to a signed displacement length
func FieldMagnitude(brightness float64, cfg FieldConfig) float64 {
	if brightness > cfg.Threshold {
		return 0
	}
	mag := vmath.Map(brightness, 0, cfg.Threshold, cfg.Strength, 0)
	if cfg.Threshold == 0 {
		mag = cfg.Strength
	}
	if cfg.Invert {
		mag = -mag
	}
	return mag
}

// FieldOffset samples the field under p and returns a displacement in a
// random direction, which makes dark regions shimmer
func (e *Engine) FieldOffset(p vmath.Point, env *Env) vmath.Point {
	if !e.cfg.Field.Enabled || env.Field == nil || env.Bounds.W <= 0 || env.Bounds.H <= 0 {
		return vmath.Point{}
	}

	u := (p.X - env.Bounds.X) / env.Bounds.W
	v := (p.Y - env.Bounds.Y) / env.Bounds.H
	mag := FieldMagnitude(env.Field.Brightness(u, v), e.cfg.Field)
	if mag == 0 {
		return vmath.Point{}
	}

	var angle float64
	if env.Rand != nil {
		angle = env.Rand.Float64() * 2 * math.Pi
	} else {
		angle = rand.Float64() * 2 * math.Pi
	}
	return vmath.Polar(angle, mag)
}
