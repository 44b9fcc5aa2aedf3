package engine

import (
	"github.com/lixenwraith/trough/glyph"
	"github.com/lixenwraith/trough/reveal"
	"github.com/lixenwraith/trough/vmath"
)

// CellView is the renderable state of one non-empty cell
type CellView struct {
	Index    int
	Bounds   vmath.Rect
	State    reveal.State
	Progress float64
	Custom   bool
	Word     string

	Paths  [][]vmath.Point // One polyline per stroke run
	Points []vmath.Point
	Glyphs []glyph.Placement
	Labels []glyph.Label
}

// Frame is an immutable snapshot handed to renderers
type Frame struct {
	Canvas vmath.Rect
	Time   float64 // Milliseconds since start

	Cells []CellView
	Grid  []vmath.Rect

	Exclusions     []vmath.Rect
	ShowExclusions bool
	Draft          vmath.Rect
	HasDraft       bool
	Blocked        []vmath.Rect

	Pointer    vmath.Point
	HasPointer bool

	CustomMode bool
	Paused     bool
	FPS        float64
}

// Frame builds the view of the state produced by the last Tick
func (in *Installation) Frame() Frame {
	st := &in.state
	env := in.lastEnv

	f := Frame{
		Canvas:         st.canvas,
		Time:           env.Time,
		Exclusions:     st.exclusions.Rects(),
		ShowExclusions: st.exclusions.Visible(),
		Pointer:        st.pointer,
		HasPointer:     st.hasPointer,
		CustomMode:     st.customMode,
		Paused:         in.Paused(),
		FPS:            in.fps,
	}
	if r, ok := st.customDrag.Rect(); ok {
		f.Draft, f.HasDraft = r, true
	} else if r, ok := st.exclusions.Draft(); ok {
		f.Draft, f.HasDraft = r, true
	}

	for _, c := range in.gridCells() {
		f.Grid = append(f.Grid, c.Bounds)
		if st.blocked[c.Index] {
			f.Blocked = append(f.Blocked, c.Bounds)
		}
	}

	for _, c := range st.cells {
		if c.State() == reveal.Empty || st.blocked[c.Index] {
			continue
		}
		live := c.LivePoints()
		progress := in.machine.Progress(c, in.lastNow)

		view := CellView{
			Index:    c.Index,
			Bounds:   c.Bounds,
			State:    c.State(),
			Progress: progress,
			Custom:   c.Custom(),
			Paths:    reveal.RunPaths(live),
			Points:   make([]vmath.Point, len(live)),
		}
		for i, lp := range live {
			view.Points[i] = lp.Pos()
		}
		if sk := st.sketches[c.Index]; sk != nil {
			view.Word = sk.Word
		}

		switch in.textMode {
		case TextPath:
			view.Glyphs = in.placer.Place(live, progress, &env)
		case TextPoints:
			view.Labels = in.placer.PlaceAtPoints(live)
		}
		f.Cells = append(f.Cells, view)
	}
	return f
}
