package render

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/trough/engine"
	"github.com/lixenwraith/trough/vmath"
)

// referenceHeight is the canvas height in pixels a fitted terminal maps to
const referenceHeight = 1000

// TerminalRenderer draws frames as braille dots, one status row at the bottom
type TerminalRenderer struct {
	screen tcell.Screen
	style  Style

	fixedPPD float64
	ppd      float64
	cols     int
	rows     int

	strokes *DotCanvas
	borders *DotCanvas
	fill    []RGB
}

// NewTerminalRenderer creates a renderer; pixelsPerDot 0 fits the canvas to the terminal height
func NewTerminalRenderer(screen tcell.Screen, style Style, pixelsPerDot float64) *TerminalRenderer {
	r := &TerminalRenderer{screen: screen, style: style, fixedPPD: pixelsPerDot}
	r.Resize()
	return r
}

// Resize recomputes the layout from the screen size and returns the pixel area available to the installation
func (r *TerminalRenderer) Resize() (width, height float64) {
	w, h := r.screen.Size()
	r.cols, r.rows = max(w, 0), max(h-1, 0)
	r.strokes = NewDotCanvas(r.cols, r.rows)
	r.borders = NewDotCanvas(r.cols, r.rows)
	r.fill = make([]RGB, r.cols*r.rows)

	r.ppd = r.fixedPPD
	if r.ppd <= 0 {
		r.ppd = 1
		if r.rows > 0 {
			r.ppd = referenceHeight / float64(r.strokes.Height())
		}
	}
	return float64(r.strokes.Width()) * r.ppd, float64(r.strokes.Height()) * r.ppd
}

// ToggleDebug flips cell borders and the fps readout together
func (r *TerminalRenderer) ToggleDebug() bool {
	on := !(r.style.ShowBorders && r.style.ShowFPS)
	r.style.ShowBorders, r.style.ShowFPS = on, on
	return on
}

// PixelsPerDot returns the current canvas-to-dot scale
func (r *TerminalRenderer) PixelsPerDot() float64 { return r.ppd }

// ScreenToCanvas maps a terminal cell to the canvas point at its center
func (r *TerminalRenderer) ScreenToCanvas(col, row int) vmath.Point {
	return vmath.Point{
		X: (float64(col) + 0.5) * 2 * r.ppd,
		Y: (float64(row) + 0.5) * 4 * r.ppd,
	}
}

func (r *TerminalRenderer) dot(p vmath.Point) (int, int) {
	return int(math.Floor(p.X / r.ppd)), int(math.Floor(p.Y / r.ppd))
}

func (r *TerminalRenderer) cell(p vmath.Point) (int, int) {
	x, y := r.dot(p)
	return floorDiv(x, 2), floorDiv(y, 4)
}

// Render draws one frame and presents it
func (r *TerminalRenderer) Render(f engine.Frame) error {
	r.screen.Clear()
	base := tcell.StyleDefault.Background(r.style.Background.Tcell()).Foreground(r.style.Drawing.Tcell())
	r.screen.Fill(' ', base)

	r.shade(f)
	r.strokes.Clear()
	r.borders.Clear()

	if r.style.ShowBorders {
		for _, b := range f.Grid {
			r.outline(r.borders, b)
		}
	}
	if f.HasDraft {
		r.outline(r.borders, f.Draft)
	}

	for _, cv := range f.Cells {
		for _, path := range cv.Paths {
			for i := 1; i < len(path); i++ {
				x0, y0 := r.dot(path[i-1])
				x1, y1 := r.dot(path[i])
				r.strokes.Line(x0, y0, x1, y1)
			}
		}
		for _, p := range cv.Points {
			r.strokes.Set(r.dot(p))
		}
	}

	r.blit()

	textStyle := tcell.StyleDefault.Foreground(r.style.Text.Tcell()).Background(r.style.Drawing.Tcell())
	for _, cv := range f.Cells {
		for _, g := range cv.Glyphs {
			col, row := r.cell(vmath.Point{X: g.X, Y: g.Y})
			r.put(col, row, g.Glyph, textStyle)
		}
		for _, l := range cv.Labels {
			col, row := r.cell(vmath.Point{X: l.X, Y: l.Y})
			for _, ch := range l.Text {
				r.put(col, row, ch, textStyle)
				col++
			}
		}
	}

	r.status(f, base)
	r.screen.Show()
	return nil
}

// shade fills per-cell backgrounds for blocked cells, exclusions and the drag draft
func (r *TerminalRenderer) shade(f engine.Frame) {
	for i := range r.fill {
		r.fill[i] = r.style.Background
	}
	for _, b := range f.Blocked {
		r.paint(b, r.style.BlockedFill(), 1)
	}
	if f.ShowExclusions {
		for _, e := range f.Exclusions {
			r.paint(e, r.style.Exclusion, ExclusionAlpha)
		}
	}
	if f.HasDraft {
		r.paint(f.Draft, r.style.Exclusion, DraftAlpha)
	}
}

func (r *TerminalRenderer) paint(rect vmath.Rect, c RGB, alpha float64) {
	c0, r0 := r.cell(vmath.Point{X: rect.X, Y: rect.Y})
	c1, r1 := r.cell(vmath.Point{X: rect.Right(), Y: rect.Bottom()})
	for row := max(r0, 0); row <= min(r1, r.rows-1); row++ {
		for col := max(c0, 0); col <= min(c1, r.cols-1); col++ {
			i := row*r.cols + col
			r.fill[i] = r.fill[i].Blend(c, alpha)
		}
	}
}

func (r *TerminalRenderer) outline(d *DotCanvas, rect vmath.Rect) {
	x0, y0 := r.dot(vmath.Point{X: rect.X, Y: rect.Y})
	x1, y1 := r.dot(vmath.Point{X: rect.Right(), Y: rect.Bottom()})
	d.Line(x0, y0, x1, y0)
	d.Line(x1, y0, x1, y1)
	d.Line(x1, y1, x0, y1)
	d.Line(x0, y1, x0, y0)
}

// blit writes the dot layers to the screen; stroke dots take the drawing color over borders
func (r *TerminalRenderer) blit() {
	for row := 0; row < r.rows; row++ {
		for col := 0; col < r.cols; col++ {
			i := row*r.cols + col
			bits := r.strokes.bits[i] | r.borders.bits[i]
			bg := r.fill[i].Tcell()
			if bits == 0 {
				r.screen.SetContent(col, row, ' ', nil, tcell.StyleDefault.Background(bg))
				continue
			}
			fg := r.style.Border
			if r.strokes.bits[i] != 0 {
				fg = r.style.Drawing
			}
			st := tcell.StyleDefault.Background(bg).Foreground(fg.Tcell())
			r.screen.SetContent(col, row, rune(brailleBase+int(bits)), nil, st)
		}
	}
}

func (r *TerminalRenderer) put(col, row int, ch rune, st tcell.Style) {
	if col < 0 || row < 0 || col >= r.cols || row >= r.rows {
		return
	}
	r.screen.SetContent(col, row, ch, nil, st)
}

func (r *TerminalRenderer) status(f engine.Frame, base tcell.Style) {
	mode := "auto"
	if f.CustomMode {
		mode = "custom"
	}
	left := fmt.Sprintf(" %s | %d cells | %d exclusions", mode, len(f.Cells), len(f.Exclusions))
	if f.Paused {
		left += " | paused"
	}
	st := base.Foreground(r.style.Background.Tcell()).Background(r.style.Drawing.Tcell())
	for col := 0; col < r.cols; col++ {
		r.screen.SetContent(col, r.rows, ' ', nil, st)
	}
	drawText(r.screen, 0, r.rows, left, st)
	if r.style.ShowFPS {
		right := fmt.Sprintf("%.1f fps ", f.FPS)
		drawText(r.screen, r.cols-len(right), r.rows, right, st)
	}
}

func drawText(s tcell.Screen, x, y int, text string, st tcell.Style) {
	for _, ch := range text {
		s.SetContent(x, y, ch, nil, st)
		x++
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}
