// Package exclusion manages user-drawn exclusion rectangles and the cells they block
package exclusion

import (
	"slices"

	"github.com/lixenwraith/trough/vmath"
)

type Config struct {
	MinSize           float64 // Rectangles must exceed this on both axes
	CoverageThreshold float64 // Covered fraction at which a cell is blocked
}

// Drag tracks a press-drag-release gesture
type Drag struct {
	start, current vmath.Point
	active         bool
}

func (d *Drag) Begin(p vmath.Point) {
	d.start, d.current, d.active = p, p, true
}

func (d *Drag) Update(p vmath.Point) {
	if d.active {
		d.current = p
	}
}

// End finishes the gesture and returns its normalized rectangle
func (d *Drag) End(p vmath.Point) (vmath.Rect, bool) {
	if !d.active {
		return vmath.Rect{}, false
	}
	d.current = p
	d.active = false
	return vmath.RectFromCorners(d.start, d.current), true
}

func (d *Drag) Cancel() { d.active = false }

func (d *Drag) Active() bool { return d.active }

// Rect returns the in-progress rectangle
func (d *Drag) Rect() (vmath.Rect, bool) {
	if !d.active {
		return vmath.Rect{}, false
	}
	return vmath.RectFromCorners(d.start, d.current), true
}

// LargeEnough reports whether r exceeds minSize on both axes
func LargeEnough(r vmath.Rect, minSize float64) bool {
	return r.W > minSize && r.H > minSize
}

// Set is the list of exclusion rectangles
type Set struct {
	cfg     Config
	rects   []vmath.Rect
	drag    Drag
	visible bool
}

func NewSet(cfg Config) *Set {
	return &Set{cfg: cfg, visible: true}
}

func (s *Set) Config() Config { return s.cfg }

func (s *Set) Begin(p vmath.Point)  { s.drag.Begin(p) }
func (s *Set) Update(p vmath.Point) { s.drag.Update(p) }

// Draft returns the rectangle being dragged
func (s *Set) Draft() (vmath.Rect, bool) { return s.drag.Rect() }

// CancelDraft drops the rectangle being dragged without adding it
func (s *Set) CancelDraft() { s.drag.Cancel() }

// Finish ends the drag, keeping the rectangle if it is large enough
func (s *Set) Finish(p vmath.Point) (vmath.Rect, bool) {
	r, ok := s.drag.End(p)
	if !ok {
		return vmath.Rect{}, false
	}
	return r, s.Add(r)
}

// Add appends r after normalizing; undersized rectangles are discarded
func (s *Set) Add(r vmath.Rect) bool {
	r = r.Normalize()
	if !LargeEnough(r, s.cfg.MinSize) {
		return false
	}
	s.rects = append(s.rects, r)
	return true
}

func (s *Set) Clear() {
	s.rects = nil
	s.CancelDraft()
}

func (s *Set) Len() int { return len(s.rects) }

// Rects returns a copy of the rectangles
func (s *Set) Rects() []vmath.Rect { return slices.Clone(s.rects) }

func (s *Set) Visible() bool { return s.visible }

func (s *Set) ToggleVisible() bool {
	s.visible = !s.visible
	return s.visible
}

// Coverage returns the fraction of cell covered by all rectangles, capped at 1
// Overlapping rectangles are counted once each
func (s *Set) Coverage(cell vmath.Rect) float64 {
	area := cell.Area()
	if area <= 0 {
		return 0
	}
	covered := 0.0
	for _, r := range s.rects {
		covered += vmath.IntersectionArea(cell, r)
	}
	return min(covered/area, 1)
}

// Blocked returns the positions in cells whose coverage reaches the threshold
func (s *Set) Blocked(cells []vmath.Rect) []int {
	if len(s.rects) == 0 {
		return nil
	}
	var out []int
	for i, c := range cells {
		if s.Coverage(c) >= s.cfg.CoverageThreshold {
			out = append(out, i)
		}
	}
	return out
}
