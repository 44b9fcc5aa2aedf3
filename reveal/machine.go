package reveal

import (
	"time"

	"github.com/lixenwraith/trough/perturb"
	"github.com/lixenwraith/trough/stroke"
)

// Machine drives cell transitions; it is the only writer of Cell assignment data
type Machine struct {
	duration time.Duration
	padding  float64 // Sampling inset as a fraction of cell width
	engine   *perturb.Engine
}

// NewMachine creates a machine revealing each drawing over duration
func NewMachine(duration time.Duration, padding float64, engine *perturb.Engine) *Machine {
	return &Machine{duration: duration, padding: padding, engine: engine}
}

func (m *Machine) Duration() time.Duration { return m.duration }

// Assign samples d into the cell and starts its reveal at now
func (m *Machine) Assign(c *Cell, d stroke.Drawing, now time.Time) {
	pad := c.Bounds.W * m.padding
	c.run = &assignment{
		drawing: d,
		all:     stroke.Sample(d, c.Bounds, pad),
		start:   now,
	}
	c.run.live = make([]LivePoint, 0, len(c.run.all))
	c.state = Animating
}

// Progress returns elapsed reveal time over duration, unclamped
// Empty cells report 0 and Complete cells at least 1
func (m *Machine) Progress(c *Cell, now time.Time) float64 {
	switch c.state {
	case Empty:
		return 0
	case Complete:
		return max(1, m.rawProgress(c, now))
	}
	return m.rawProgress(c, now)
}

func (m *Machine) rawProgress(c *Cell, now time.Time) float64 {
	if m.duration <= 0 {
		return 1
	}
	return float64(now.Sub(c.run.start)) / float64(m.duration)
}

// Tick reveals points due at now and repositions every live point for this frame
// Returns true when the cell transitioned to Complete during this call
func (m *Machine) Tick(c *Cell, now time.Time, env *perturb.Env) bool {
	if c.state == Empty {
		return false
	}

	completed := false
	if c.state == Animating {
		progress := m.rawProgress(c, now)
		if progress >= 1 {
			m.promote(c, len(c.run.all))
			c.state = Complete
			completed = true
		} else if progress > 0 {
			m.promote(c, int(progress*float64(len(c.run.all))))
		}
	}

	m.perturb(c, env)
	return completed
}

// Complete reveals every point at once
func (m *Machine) Complete(c *Cell, env *perturb.Env) {
	if c.state == Empty {
		return
	}
	m.promote(c, len(c.run.all))
	c.state = Complete
	m.perturb(c, env)
}

// Reset returns the cell to Empty
func (m *Machine) Reset(c *Cell) {
	c.run = nil
	c.state = Empty
}

// promote appends sampled points until target are live; never shrinks
func (m *Machine) promote(c *Cell, target int) {
	run := c.run
	target = min(target, len(run.all))
	for len(run.live) < target {
		sp := run.all[len(run.live)]
		run.live = append(run.live, LivePoint{
			OriginalX:   sp.X,
			OriginalY:   sp.Y,
			StrokeIndex: sp.StrokeIndex,
			GlobalIndex: sp.GlobalIndex,
			X:           sp.X,
			Y:           sp.Y,
		})
	}
}

func (m *Machine) perturb(c *Cell, env *perturb.Env) {
	if m.engine == nil || env == nil {
		return
	}
	for i := range c.run.live {
		lp := &c.run.live[i]
		p := m.engine.Perturb(lp.Original(), lp.GlobalIndex, env)
		lp.X, lp.Y = p.X, p.Y
	}
}
