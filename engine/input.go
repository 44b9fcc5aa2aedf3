package engine

import (
	"github.com/lixenwraith/trough/core"
	"github.com/lixenwraith/trough/exclusion"
	"github.com/lixenwraith/trough/reveal"
	"github.com/lixenwraith/trough/vmath"
)

// SetPointer records the pointer position in canvas pixels
func (in *Installation) SetPointer(p vmath.Point) {
	in.state.pointer = p
	in.state.hasPointer = true
}

// ClearPointer marks the pointer absent
func (in *Installation) ClearPointer() {
	in.state.hasPointer = false
}

// PointerDown starts a custom cell in custom-cell mode, otherwise an exclusion rectangle
func (in *Installation) PointerDown(p vmath.Point) {
	if in.state.customMode {
		in.state.customDrag.Begin(p)
		return
	}
	if in.cfg.Exclusion.Enabled {
		in.state.exclusions.Begin(p)
	}
}

func (in *Installation) PointerDrag(p vmath.Point) {
	in.SetPointer(p)
	in.state.customDrag.Update(p)
	in.state.exclusions.Update(p)
}

// PointerUp finishes the current drag
// Undersized rectangles and cells are discarded
func (in *Installation) PointerUp(p vmath.Point) {
	st := &in.state
	now := in.clock.Now()

	if st.customDrag.Active() {
		r, _ := st.customDrag.End(p)
		if !exclusion.LargeEnough(r, in.cfg.Exclusion.MinSize) {
			return
		}
		c := reveal.NewCustomCell(len(st.cells), r)
		st.cells = append(st.cells, c)
		in.assign(c, now)
		return
	}

	if _, kept := st.exclusions.Finish(p); kept {
		core.Logger().Debug("exclusion added", "count", st.exclusions.Len())
		in.recomputeBlocked(now)
	}
}

// ToggleMode switches between the grid cycle and custom-cell drawing
// Every cell is cleared; pending starts and drags in progress are dropped
func (in *Installation) ToggleMode() bool {
	st := &in.state
	now := in.clock.Now()

	st.customMode = !st.customMode
	st.customDrag.Cancel()
	st.exclusions.CancelDraft()
	st.scheduler.Cancel()
	st.active = -1

	for _, c := range st.cells {
		in.machine.Reset(c)
	}
	st.cells = st.cells[:st.gridCount]
	clear(st.sketches)
	in.selector.Rewind()

	core.Logger().Info("mode switched", "custom_cells", st.customMode)
	in.restart(now)
	return st.customMode
}

// ClearExclusions removes every rectangle and unblocks all cells
func (in *Installation) ClearExclusions() {
	in.state.exclusions.Clear()
	in.recomputeBlocked(in.clock.Now())
}

// ToggleExclusionVisibility shows or hides the rectangles
func (in *Installation) ToggleExclusionVisibility() bool {
	return in.state.exclusions.ToggleVisible()
}

// TogglePause freezes installation time when the clock supports it
func (in *Installation) TogglePause() bool {
	p, ok := in.clock.(Pauser)
	if !ok {
		return false
	}
	if p.IsPaused() {
		p.Resume()
	} else {
		p.Pause()
	}
	return p.IsPaused()
}

// Paused reports whether installation time is frozen
func (in *Installation) Paused() bool {
	p, ok := in.clock.(Pauser)
	return ok && p.IsPaused()
}
