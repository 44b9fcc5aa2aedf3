package main

import (
	"bytes"
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lixenwraith/trough/audio"
	"github.com/lixenwraith/trough/config"
	"github.com/lixenwraith/trough/core"
	"github.com/lixenwraith/trough/engine"
	"github.com/lixenwraith/trough/render"
	"github.com/lixenwraith/trough/vmath"
	"golang.org/x/image/font/gofont/goregular"
)

// windowSmoothingCap bounds spline vertices per segment; every vertex is a vector draw call
const windowSmoothingCap = 4

var (
	configPath  = flag.String("config", "", "TOML settings file")
	datasetPath = flag.String("dataset", "", "Quick, Draw! NDJSON file")
	debug       = flag.Bool("debug", false, "Log to stderr at debug level")
)

func main() {
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	core.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "trough-window: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Resolve(*configPath)
	if err != nil {
		return err
	}
	opts, err := engine.LoadOptions(cfg, *datasetPath, engine.NewPausableClock(engine.NewMonotonicTimeProvider()))
	if err != nil {
		return err
	}
	inst, err := engine.New(opts)
	if err != nil {
		return err
	}

	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return fmt.Errorf("load font: %w", err)
	}

	sound := audio.NewSoundManager(cfg.Audio)
	if err := sound.Initialize(); err != nil {
		core.Logger().Warn("audio unavailable, continuing silently", "error", err)
	}
	defer sound.Cleanup()
	inst.Subscribe(sound.HandleEvent)

	g := &game{
		inst:  inst,
		style: render.StyleFromConfig(cfg),
		face:  &text.GoTextFace{Source: src, Size: cfg.Text.FontSize},
	}

	ebiten.SetWindowTitle("trough")
	ebiten.SetWindowSize(cfg.Canvas.Width, cfg.Canvas.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil && err != ebiten.Termination {
		return err
	}
	return nil
}

// game adapts the installation to ebiten's update/draw cycle
type game struct {
	inst  *engine.Installation
	style render.Style
	face  *text.GoTextFace

	width, height int
	pressed       bool
	frame         engine.Frame
}

func (g *game) Update() error {
	if quit := g.keys(); quit {
		return ebiten.Termination
	}
	g.mouse()
	g.inst.Tick()
	g.frame = g.inst.Frame()
	return nil
}

func (g *game) keys() bool {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape), inpututil.IsKeyJustPressed(ebiten.KeyQ):
		return true
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.inst.ToggleMode()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.inst.ClearExclusions()
	case inpututil.IsKeyJustPressed(ebiten.KeyV):
		g.inst.ToggleExclusionVisibility()
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		g.inst.TogglePause()
	case inpututil.IsKeyJustPressed(ebiten.KeyD):
		on := !(g.style.ShowBorders && g.style.ShowFPS)
		g.style.ShowBorders, g.style.ShowFPS = on, on
	}
	return false
}

func (g *game) mouse() {
	mx, my := ebiten.CursorPosition()
	p := vmath.Point{X: float64(mx), Y: float64(my)}
	inside := mx >= 0 && my >= 0 && mx < g.width && my < g.height
	if inside {
		g.inst.SetPointer(p)
	} else {
		g.inst.ClearPointer()
	}

	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		g.pressed = true
		g.inst.PointerDown(p)
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) && g.pressed:
		g.pressed = false
		g.inst.PointerUp(p)
	case g.pressed:
		g.inst.PointerDrag(p)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.inst.Resize(float64(outsideWidth), float64(outsideHeight))
	}
	return outsideWidth, outsideHeight
}

func rgba(c render.RGB, alpha float64) color.Color {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(alpha * 255))}
}

func fillRect(dst *ebiten.Image, r vmath.Rect, clr color.Color) {
	vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), clr, false)
}

func (g *game) Draw(screen *ebiten.Image) {
	s := g.style
	f := g.frame
	screen.Fill(rgba(s.Background, 1))

	for _, b := range f.Blocked {
		fillRect(screen, b, rgba(s.BlockedFill(), 1))
	}
	if f.ShowExclusions {
		for _, e := range f.Exclusions {
			fillRect(screen, e, rgba(s.Exclusion, render.ExclusionAlpha))
		}
	}
	if s.ShowBorders {
		for _, b := range f.Grid {
			vector.StrokeRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), 1, rgba(s.Border, 1), false)
		}
	}

	drawing := rgba(s.Drawing, 1)
	points := rgba(s.Points, 1)
	for _, cv := range f.Cells {
		for _, path := range cv.Paths {
			smooth := vmath.CatmullRom(path, min(s.SmoothingSteps, windowSmoothingCap))
			for i := 1; i < len(smooth); i++ {
				a, b := smooth[i-1], smooth[i]
				vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), float32(s.StrokeWeight), drawing, true)
			}
		}
		if s.PointSize > 0 {
			for _, p := range cv.Points {
				vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), float32(s.PointSize/2), points, true)
			}
		}
		for _, gl := range cv.Glyphs {
			op := &text.DrawOptions{}
			op.PrimaryAlign = text.AlignCenter
			op.SecondaryAlign = text.AlignCenter
			op.GeoM.Rotate(gl.Angle)
			op.GeoM.Translate(gl.X, gl.Y)
			op.ColorScale.ScaleWithColor(rgba(s.Text, s.TextOpacity))
			text.Draw(screen, string(gl.Glyph), g.face, op)
		}
		for _, l := range cv.Labels {
			op := &text.DrawOptions{}
			op.PrimaryAlign = text.AlignCenter
			op.SecondaryAlign = text.AlignCenter
			op.GeoM.Translate(l.X, l.Y)
			op.ColorScale.ScaleWithColor(rgba(s.Text, s.TextOpacity))
			text.Draw(screen, l.Text, g.face, op)
		}
	}

	if f.HasDraft {
		fillRect(screen, f.Draft, rgba(s.Exclusion, render.DraftAlpha))
	}
	if s.ShowFPS {
		op := &text.DrawOptions{}
		op.GeoM.Translate(8, 8)
		op.ColorScale.ScaleWithColor(rgba(s.Drawing, 1))
		text.Draw(screen, fmt.Sprintf("%.1f fps  %.1f tps", f.FPS, ebiten.ActualTPS()), g.face, op)
	}
}
