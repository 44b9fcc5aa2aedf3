package engine

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/lixenwraith/trough/config"
	"github.com/lixenwraith/trough/core"
	"github.com/lixenwraith/trough/dataset"
	"github.com/lixenwraith/trough/exclusion"
	"github.com/lixenwraith/trough/field"
	"github.com/lixenwraith/trough/glyph"
	"github.com/lixenwraith/trough/perturb"
	"github.com/lixenwraith/trough/reveal"
	"github.com/lixenwraith/trough/vmath"
)

// TextMode selects how the phrase is drawn over a cell
type TextMode int

const (
	TextPath TextMode = iota
	TextPoints
	TextOff
)

// Options wires an installation to its collaborators
type Options struct {
	Config   *config.Config
	Drawings *dataset.Collection
	Clock    TimeProvider // Defaults to a PausableClock over system time
	Field    field.Field  // Optional displacement field
	Rand     *rand.Rand   // Defaults to one seeded from Config.Selection.Seed or the clock
}

// AnimationState is everything the installation mutates between frames
type AnimationState struct {
	cells     []*reveal.Cell // Grid cells first, then custom cells
	gridCount int
	sketches  map[int]*dataset.Sketch // Keyed by cell index

	active     int // Grid cell currently animating in the primary flow, -1 for none
	scheduler  startScheduler
	blocked    map[int]bool
	exclusions *exclusion.Set
	customDrag exclusion.Drag

	pointer    vmath.Point
	hasPointer bool
	customMode bool
	canvas     vmath.Rect
}

// Installation runs the reveal cycle over a grid of cells
// All methods must be called from a single goroutine
type Installation struct {
	cfg      *config.Config
	clock    TimeProvider
	epoch    time.Time
	rng      *rand.Rand
	drawings *dataset.Collection
	field    field.Field

	engine   *perturb.Engine
	machine  *reveal.Machine
	selector *reveal.Selector
	placer   *glyph.Placer
	textMode TextMode

	state     AnimationState
	listeners []func(Event)

	lastNow time.Time
	lastEnv perturb.Env
	fps     float64
}

// New builds an installation; the canvas is empty until Resize
func New(opts Options) (*Installation, error) {
	if opts.Drawings == nil || opts.Drawings.Len() == 0 {
		return nil, dataset.ErrNoDrawings
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	clock := opts.Clock
	if clock == nil {
		clock = NewPausableClock(nil)
	}
	rng := opts.Rand
	if rng == nil {
		seed := cfg.Selection.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}

	order, ok := reveal.ParseSelectMode(cfg.Selection.CellOrder)
	if !ok {
		return nil, fmt.Errorf("%w: cell order %q", config.ErrInvalid, cfg.Selection.CellOrder)
	}
	pathMode, _ := glyph.ParsePathMode(cfg.Text.PathMode)

	eng := perturb.New(PerturbConfig(cfg))
	in := &Installation{
		cfg:      cfg,
		clock:    clock,
		epoch:    clock.Now(),
		rng:      rng,
		drawings: opts.Drawings,
		field:    opts.Field,
		engine:   eng,
		machine:  reveal.NewMachine(cfg.Animation.Duration(), cfg.Grid.CellPadding, eng),
		selector: reveal.NewSelector(order, rng),
		placer: glyph.NewPlacer(glyph.Config{
			Phrase:        cfg.Text.Content,
			LetterSpacing: cfg.Text.LetterSpacing,
			WordSpacing:   cfg.Text.WordSpacing,
			Offset:        cfg.Text.Offset,
			Delay:         cfg.Text.Delay,
			JiggleScale:   cfg.Jiggle.TextScale,
			PathMode:      pathMode,
		}, eng),
		textMode: parseTextMode(cfg.Text.Mode),
		state: AnimationState{
			active:   -1,
			blocked:  make(map[int]bool),
			sketches: make(map[int]*dataset.Sketch),
			exclusions: exclusion.NewSet(exclusion.Config{
				MinSize:           cfg.Exclusion.MinSize,
				CoverageThreshold: cfg.Exclusion.CoverageThreshold,
			}),
			customMode: cfg.Modes.CustomCells,
		},
	}
	in.lastNow = in.epoch
	return in, nil
}

// PerturbConfig maps installation settings onto the perturbation engine
func PerturbConfig(cfg *config.Config) perturb.Config {
	return perturb.Config{
		Wobble: perturb.WobbleConfig{
			Amplitude:    cfg.Jiggle.Amplitude,
			Speed:        cfg.Jiggle.Speed,
			XPhaseOffset: cfg.Jiggle.XPhaseOffset,
			YPhaseOffset: cfg.Jiggle.YPhaseOffset,
			XFreq2:       cfg.Jiggle.XFrequency2,
			YFreq2:       cfg.Jiggle.YFrequency2,
		},
		Pointer: perturb.RepelConfig{
			Enabled:  cfg.Interactivity.PointerRepel,
			Radius:   cfg.Interactivity.RepelRadius,
			Strength: cfg.Interactivity.RepelForce,
		},
		Rect: perturb.RepelConfig{
			Enabled:  cfg.Exclusion.Enabled,
			Radius:   cfg.Exclusion.RepelRadius,
			Strength: cfg.Exclusion.RepelStrength,
			Decay:    2,
		},
		Blocked: perturb.RepelConfig{
			Enabled:  cfg.BlockedCells.Enabled,
			Radius:   cfg.BlockedCells.RepelRadius,
			Strength: cfg.BlockedCells.RepelStrength,
			Decay:    cfg.BlockedCells.RepelDecay,
		},
		Field: perturb.FieldConfig{
			Enabled:   cfg.Displacement.Enabled,
			Threshold: cfg.Displacement.BlackThreshold,
			Strength:  cfg.Displacement.Strength,
			Invert:    cfg.Displacement.Invert,
		},
	}
}

func parseTextMode(s string) TextMode {
	switch s {
	case "points":
		return TextPoints
	case "off":
		return TextOff
	}
	return TextPath
}

func (in *Installation) Config() *config.Config { return in.cfg }
func (in *Installation) Clock() TimeProvider    { return in.clock }
func (in *Installation) Canvas() vmath.Rect     { return in.state.canvas }
func (in *Installation) CustomMode() bool       { return in.state.customMode }

// Subscribe registers fn for reveal events
func (in *Installation) Subscribe(fn func(Event)) {
	in.listeners = append(in.listeners, fn)
}

func (in *Installation) emit(ev Event) {
	for _, fn := range in.listeners {
		fn(ev)
	}
}

// Resize fits the canvas into width x height at the configured aspect,
// rebuilds the grid and restarts the cycle
func (in *Installation) Resize(width, height float64) {
	now := in.clock.Now()
	st := &in.state
	st.canvas = vmath.FitAspect(vmath.Rect{W: width, H: height}, in.cfg.Canvas.Aspect())

	g := in.cfg.Grid
	top := st.canvas.H * g.TopPadding
	drawable := st.canvas.H - top - st.canvas.H*g.BottomPadding
	cw := st.canvas.W / float64(g.Cols)
	ch := drawable / float64(g.Rows)

	st.cells = st.cells[:0]
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			idx := row*g.Cols + col
			st.cells = append(st.cells, reveal.NewCell(idx, row, col, vmath.Rect{
				X: st.canvas.X + float64(col)*cw,
				Y: st.canvas.Y + top + float64(row)*ch,
				W: cw,
				H: ch,
			}))
		}
	}
	st.gridCount = len(st.cells)
	clear(st.sketches)
	st.active = -1
	st.scheduler.Cancel()
	in.selector.Rewind()

	in.recomputeBlocked(now)
	in.restart(now)
	core.Logger().Debug("grid rebuilt", "rows", g.Rows, "cols", g.Cols, "canvas_w", st.canvas.W, "canvas_h", st.canvas.H)
}

// restart fills the grid when prefill is on and arms the first start
func (in *Installation) restart(now time.Time) {
	if in.state.customMode {
		return
	}
	if in.cfg.Grid.Prefill {
		env := in.env(now)
		for _, c := range in.gridCells() {
			if in.state.blocked[c.Index] {
				continue
			}
			if in.assign(c, now) {
				in.machine.Complete(c, &env)
			}
		}
		in.state.scheduler.Arm(now.Add(in.cfg.Animation.Pause()))
		return
	}
	in.state.scheduler.Arm(now)
}

func (in *Installation) gridCells() []*reveal.Cell {
	return in.state.cells[:in.state.gridCount]
}

// Tick advances every cell to the current clock reading
func (in *Installation) Tick() {
	now := in.clock.Now()
	if dt := now.Sub(in.lastNow); dt > 0 {
		inst := float64(time.Second) / float64(dt)
		if in.fps == 0 {
			in.fps = inst
		} else {
			in.fps = in.fps*0.9 + inst*0.1
		}
	}
	in.lastNow = now
	in.lastEnv = in.env(now)

	if in.state.scheduler.Due(now) {
		in.startNext(now)
	}

	for _, c := range in.state.cells {
		if !in.machine.Tick(c, now, &in.lastEnv) {
			continue
		}
		core.Logger().Debug("reveal complete",
			"cell", c.Index, "custom", c.Custom(),
			"elapsed_ms", now.Sub(c.StartedAt()).Milliseconds())
		in.emit(in.event(EventRevealComplete, c))
		if c.Index == in.state.active {
			in.state.active = -1
			if !in.state.customMode {
				in.state.scheduler.Arm(now.Add(in.cfg.Animation.Pause()))
			}
		}
	}
}

// startNext assigns a drawing to the next selectable grid cell
// With every cell blocked nothing starts until the geometry changes
func (in *Installation) startNext(now time.Time) {
	st := &in.state
	if st.customMode || st.active >= 0 {
		return
	}

	idx, ok := in.selector.Next(in.gridCells(), func(i int) bool { return st.blocked[i] })
	if !ok {
		core.Logger().Info("all cells blocked, waiting for exclusion change")
		return
	}

	c := st.cells[idx]
	if c.State() != reveal.Empty {
		in.machine.Reset(c)
	}
	if in.assign(c, now) {
		st.active = c.Index
	}
}

// assign picks a drawing for c and starts its reveal
func (in *Installation) assign(c *reveal.Cell, now time.Time) bool {
	sk, ok := reveal.PickDrawing(in.rng, in.cfg.Selection.RecognizedProbability,
		in.drawings.Recognized(), in.drawings.Unrecognized())
	if !ok {
		return false
	}
	in.machine.Assign(c, sk.Drawing, now)
	in.state.sketches[c.Index] = sk

	if in.cfg.Debug.LogDrawings {
		core.Logger().Info("drawing assigned",
			"cell", c.Index, "row", c.Row, "col", c.Col,
			"word", sk.Word, "key_id", sk.KeyID,
			"recognized", sk.Recognized, "points", c.TotalCount())
	}
	in.emit(in.event(EventRevealStart, c))
	return true
}

// env snapshots the per-frame perturbation inputs
func (in *Installation) env(now time.Time) perturb.Env {
	st := &in.state
	env := perturb.Env{
		Time:       float64(now.Sub(in.epoch)) / float64(time.Millisecond),
		Pointer:    st.pointer,
		HasPointer: st.hasPointer,
		Field:      in.field,
		Bounds:     st.canvas,
		Rand:       in.rng,
	}
	if in.cfg.Exclusion.Enabled {
		env.Rects = st.exclusions.Rects()
	}
	for _, c := range in.gridCells() {
		if st.blocked[c.Index] {
			env.Blocked = append(env.Blocked, c.Bounds)
		}
	}
	return env
}

// recomputeBlocked derives blocked grid cells from exclusion coverage and
// clears any cell that just became blocked
func (in *Installation) recomputeBlocked(now time.Time) {
	st := &in.state
	bounds := make([]vmath.Rect, st.gridCount)
	for i, c := range in.gridCells() {
		bounds[i] = c.Bounds
	}

	next := make(map[int]bool)
	if in.cfg.Exclusion.Enabled {
		for _, i := range st.exclusions.Blocked(bounds) {
			next[i] = true
		}
	}

	for i := range next {
		if st.blocked[i] {
			continue
		}
		in.machine.Reset(st.cells[i])
		delete(st.sketches, i)
		if st.active == i {
			st.active = -1
		}
	}
	st.blocked = next
	core.Logger().Debug("blocked cells recomputed", "blocked", len(next))

	if !st.customMode && st.active < 0 {
		if _, armed := st.scheduler.Pending(); !armed {
			st.scheduler.Arm(now)
		}
	}
}

// Blocked reports whether a grid cell is blocked by exclusion coverage
func (in *Installation) Blocked(index int) bool {
	return in.state.blocked[index]
}

// Cells exposes the cells read-only for inspection
func (in *Installation) Cells() []*reveal.Cell {
	return in.state.cells
}

// Active returns the grid cell animating in the primary flow
func (in *Installation) Active() (int, bool) {
	return in.state.active, in.state.active >= 0
}

// NextStart returns the pending start deadline
func (in *Installation) NextStart() (time.Time, bool) {
	return in.state.scheduler.Pending()
}

// Progress returns the reveal progress of the cell with the given index
func (in *Installation) Progress(index int) (float64, error) {
	for _, c := range in.state.cells {
		if c.Index == index {
			return in.machine.Progress(c, in.lastNow), nil
		}
	}
	return 0, errors.New("engine: no such cell")
}
