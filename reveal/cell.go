// Package reveal owns the per-cell progressive reveal of sampled drawings
package reveal

import (
	"slices"
	"time"

	"github.com/lixenwraith/trough/stroke"
	"github.com/lixenwraith/trough/vmath"
)

// State is the lifecycle stage of a cell
type State int

const (
	Empty State = iota
	Animating
	Complete
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case Animating:
		return "animating"
	case Complete:
		return "complete"
	default:
		return "unknown"
	}
}

// LivePoint is a revealed point: its frozen sampled position and its
// position for the current frame
type LivePoint struct {
	OriginalX, OriginalY float64
	StrokeIndex          int
	GlobalIndex          int
	X, Y                 float64
}

func (p LivePoint) Pos() vmath.Point {
	return vmath.Point{X: p.X, Y: p.Y}
}

func (p LivePoint) Original() vmath.Point {
	return vmath.Point{X: p.OriginalX, Y: p.OriginalY}
}

// Cell is one region of the canvas
// Assignment data lives in run and exists only while the cell is not Empty
type Cell struct {
	Index    int
	Row, Col int // -1 for custom cells
	Bounds   vmath.Rect

	state State
	run   *assignment
}

type assignment struct {
	drawing stroke.Drawing
	all     []stroke.SampledPoint
	live    []LivePoint
	start   time.Time
}

// NewCell creates an Empty grid cell
func NewCell(index, row, col int, bounds vmath.Rect) *Cell {
	return &Cell{Index: index, Row: row, Col: col, Bounds: bounds}
}

// NewCustomCell creates an Empty cell outside the regular grid
func NewCustomCell(index int, bounds vmath.Rect) *Cell {
	return &Cell{Index: index, Row: -1, Col: -1, Bounds: bounds}
}

func (c *Cell) State() State { return c.state }

// Custom reports whether the cell was drawn by hand rather than laid out by the grid
func (c *Cell) Custom() bool { return c.Row < 0 }

// Drawing returns the assigned drawing, ok false when Empty
func (c *Cell) Drawing() (stroke.Drawing, bool) {
	if c.run == nil {
		return stroke.Drawing{}, false
	}
	return c.run.drawing, true
}

// StartedAt returns when the current reveal began
func (c *Cell) StartedAt() time.Time {
	if c.run == nil {
		return time.Time{}
	}
	return c.run.start
}

// TotalCount returns the number of sampled points of the assignment
func (c *Cell) TotalCount() int {
	if c.run == nil {
		return 0
	}
	return len(c.run.all)
}

// LiveCount returns the number of revealed points
func (c *Cell) LiveCount() int {
	if c.run == nil {
		return 0
	}
	return len(c.run.live)
}

// AllPoints returns a copy of the sampled sequence
func (c *Cell) AllPoints() []stroke.SampledPoint {
	if c.run == nil {
		return nil
	}
	return slices.Clone(c.run.all)
}

// LivePoints returns a copy of the revealed points in reveal order
func (c *Cell) LivePoints() []LivePoint {
	if c.run == nil {
		return nil
	}
	return slices.Clone(c.run.live)
}
