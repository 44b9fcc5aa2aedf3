package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/gogpu/gg"
	"github.com/lixenwraith/trough/config"
	"github.com/lixenwraith/trough/core"
	"github.com/lixenwraith/trough/engine"
	"github.com/lixenwraith/trough/render"
)

var (
	configPath  = flag.String("config", "", "TOML settings file")
	datasetPath = flag.String("dataset", "", "Quick, Draw! NDJSON file")
	pngPath     = flag.String("png", "", "PNG output path")
	svgPath     = flag.String("svg", "", "SVG output path")
	at          = flag.Duration("at", 25*time.Second, "Simulated time of the snapshot")
	step        = flag.Duration("step", 16*time.Millisecond, "Simulation frame interval")
	seed        = flag.Int64("seed", 1, "Selection and displacement seed")
	verbose     = flag.Bool("v", false, "Log progress to stderr")
)

// epoch fixes simulated time so equal seeds give equal images
var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func main() {
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelInfo
	}
	l := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	core.SetLogger(l)
	gg.SetLogger(l)

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "trough-snapshot: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if *pngPath == "" && *svgPath == "" {
		return fmt.Errorf("at least one of -png or -svg is required")
	}

	cfg, err := config.Resolve(*configPath)
	if err != nil {
		return err
	}
	clock := engine.NewMockTimeProvider(epoch)
	opts, err := engine.LoadOptions(cfg, *datasetPath, clock)
	if err != nil {
		return err
	}
	opts.Rand = rand.New(rand.NewSource(*seed))

	inst, err := engine.New(opts)
	if err != nil {
		return err
	}
	f := simulate(inst, clock, cfg.Canvas.Width, cfg.Canvas.Height, *at, *step)
	return export(f, render.StyleFromConfig(cfg), cfg.Canvas.Width, cfg.Canvas.Height)
}

// simulate advances a mock clock frame by frame and returns the final view
func simulate(inst *engine.Installation, clock *engine.MockTimeProvider, width, height int, until, step time.Duration) engine.Frame {
	inst.Resize(float64(width), float64(height))
	if step <= 0 {
		step = 16 * time.Millisecond
	}
	for start := clock.Elapsed(); clock.Elapsed()-start < until; clock.Advance(step) {
		inst.Tick()
	}
	inst.Tick()
	return inst.Frame()
}

func export(f engine.Frame, style render.Style, width, height int) error {
	if *pngPath != "" {
		r, err := render.NewRasterRenderer(width, height, style)
		if err != nil {
			return err
		}
		defer r.Close()
		if err := r.Render(f); err != nil {
			return err
		}
		if err := r.SavePNG(*pngPath); err != nil {
			return fmt.Errorf("write png: %w", err)
		}
		core.Logger().Info("png written", "path", *pngPath)
	}

	if *svgPath != "" {
		out, err := os.Create(*svgPath)
		if err != nil {
			return fmt.Errorf("create svg: %w", err)
		}
		if err := render.NewSVGRenderer(out, width, height, style).Render(f); err != nil {
			out.Close()
			return fmt.Errorf("write svg: %w", err)
		}
		if err := out.Close(); err != nil {
			return fmt.Errorf("close svg: %w", err)
		}
		core.Logger().Info("svg written", "path", *svgPath)
	}
	return nil
}
