package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/trough/audio"
	"github.com/lixenwraith/trough/config"
	"github.com/lixenwraith/trough/core"
	"github.com/lixenwraith/trough/engine"
	"github.com/lixenwraith/trough/render"
)

var (
	configPath  = flag.String("config", "", "TOML settings file")
	datasetPath = flag.String("dataset", "", "Quick, Draw! NDJSON file")
	logPath     = flag.String("log-file", "", "Log file, logging is off when empty")
	logLevel    = flag.String("log-level", "info", "Log level: debug, info, warn, error")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "trough: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Resolve(*configPath)
	if err != nil {
		return err
	}

	logFile, err := setupLogging(*logPath, parseLevel(*logLevel))
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	opts, err := engine.LoadOptions(cfg, *datasetPath, engine.NewPausableClock(engine.NewMonotonicTimeProvider()))
	if err != nil {
		return err
	}
	inst, err := engine.New(opts)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()
	core.SetCrashReset(screen.Fini)

	sound := audio.NewSoundManager(cfg.Audio)
	if err := sound.Initialize(); err != nil {
		core.Logger().Warn("audio unavailable, continuing silently", "error", err)
	}
	defer sound.Cleanup()
	inst.Subscribe(sound.HandleEvent)

	renderer := render.NewTerminalRenderer(screen, render.StyleFromConfig(cfg), cfg.Terminal.PixelsPerDot)
	inst.Resize(renderer.Resize())

	app := &terminalApp{
		screen:   screen,
		inst:     inst,
		renderer: renderer,
		pointer:  newPointerSpring(cfg.Terminal),
	}
	app.loop(cfg.Terminal.Frame())
	return nil
}

// terminalApp routes tcell input to the installation and paces frames
type terminalApp struct {
	screen   tcell.Screen
	inst     *engine.Installation
	renderer *render.TerminalRenderer
	pointer  *pointerSpring

	hasMouse bool
	pressed  bool
}

func (a *terminalApp) loop(frame time.Duration) {
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	events := make(chan tcell.Event, 256)
	quit := make(chan struct{})
	defer close(quit)
	core.Go(func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	})

	for {
		select {
		case ev := <-events:
			if !a.handle(ev) {
				return
			}
		case <-ticker.C:
			if a.hasMouse {
				a.inst.SetPointer(a.pointer.Step())
			}
			a.inst.Tick()
			if err := a.renderer.Render(a.inst.Frame()); err != nil {
				core.Logger().Error("render failed", "error", err)
			}
		}
	}
}

// handle applies one terminal event and reports whether to keep running
func (a *terminalApp) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.key(ev)
	case *tcell.EventMouse:
		a.mouse(ev)
	case *tcell.EventResize:
		a.screen.Sync()
		a.inst.Resize(a.renderer.Resize())
		a.pointer.Reset()
	}
	return true
}

func (a *terminalApp) key(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
	default:
		return true
	}

	switch ev.Rune() {
	case 'q':
		return false
	case ' ':
		a.inst.ToggleMode()
	case 'r':
		a.inst.ClearExclusions()
	case 'v':
		a.inst.ToggleExclusionVisibility()
	case 'p':
		paused := a.inst.TogglePause()
		core.Logger().Info("pause toggled", "paused", paused)
	case 'd':
		a.renderer.ToggleDebug()
	}
	return true
}

// mouse tracks the primary button edge so press, drag and release map to pointer calls
func (a *terminalApp) mouse(ev *tcell.EventMouse) {
	col, row := ev.Position()
	p := a.renderer.ScreenToCanvas(col, row)
	a.pointer.Target(p)
	a.hasMouse = true

	down := ev.Buttons()&tcell.Button1 != 0
	switch {
	case down && !a.pressed:
		a.pressed = true
		a.inst.PointerDown(p)
	case down:
		a.inst.PointerDrag(p)
	case a.pressed:
		a.pressed = false
		a.inst.PointerUp(p)
	}
}
