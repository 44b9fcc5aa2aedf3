package engine

import (
	"errors"

	"github.com/lixenwraith/trough/config"
	"github.com/lixenwraith/trough/dataset"
	"github.com/lixenwraith/trough/field"
)

// ErrNoDataset is returned when no drawing source path is given
var ErrNoDataset = errors.New("engine: dataset path is required")

// LoadOptions validates cfg, then loads the drawing source and the optional
// displacement image; Rand is left for the caller
func LoadOptions(cfg *config.Config, datasetPath string, clock TimeProvider) (Options, error) {
	if err := cfg.Validate(); err != nil {
		return Options{}, err
	}
	if datasetPath == "" {
		return Options{}, ErrNoDataset
	}

	drawings, err := dataset.Load(datasetPath)
	if err != nil {
		return Options{}, err
	}
	opts := Options{Config: cfg, Drawings: drawings, Clock: clock}
	if cfg.Displacement.Enabled {
		grid, err := field.Load(cfg.Displacement.Image, cfg.Displacement.MaxSide)
		if err != nil {
			return Options{}, err
		}
		opts.Field = grid
	}
	return opts, nil
}
