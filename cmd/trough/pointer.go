package main

import (
	"github.com/charmbracelet/harmonica"
	"github.com/lixenwraith/trough/config"
	"github.com/lixenwraith/trough/vmath"
)

// pointerSpring eases the pointer the installation sees toward the raw mouse cell
// Terminal mouse positions jump a whole character at a time
type pointerSpring struct {
	spring  harmonica.Spring
	enabled bool
	primed  bool

	pos    vmath.Point
	vel    vmath.Point
	target vmath.Point
}

func newPointerSpring(cfg config.TerminalConfig) *pointerSpring {
	fps := 1000 / max(cfg.FrameMS, 1)
	return &pointerSpring{
		spring:  harmonica.NewSpring(harmonica.FPS(fps), cfg.SpringFrequency, cfg.SpringDamping),
		enabled: cfg.PointerSpring,
	}
}

// Target sets the raw position; the first target snaps
func (p *pointerSpring) Target(t vmath.Point) {
	p.target = t
	if !p.primed || !p.enabled {
		p.pos = t
		p.vel = vmath.Point{}
		p.primed = true
	}
}

// Step advances one frame and returns the smoothed position
func (p *pointerSpring) Step() vmath.Point {
	if p.enabled && p.primed {
		p.pos.X, p.vel.X = p.spring.Update(p.pos.X, p.vel.X, p.target.X)
		p.pos.Y, p.vel.Y = p.spring.Update(p.pos.Y, p.vel.Y, p.target.Y)
	}
	return p.pos
}

// Reset forgets the pointer so the next target snaps
func (p *pointerSpring) Reset() {
	p.primed = false
	p.vel = vmath.Point{}
}
