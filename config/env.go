package config

import (
	"os"
	"strconv"
)

// ApplyEnv overrides settings from TROUGH_* environment variables
// Unparseable values are ignored
func (c *Config) ApplyEnv() {
	if v := os.Getenv("TROUGH_AUDIO_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Audio.Enabled = b
		}
	}

	// Master volume 0-100 converted to 0.0-1.0
	if v := os.Getenv("TROUGH_MASTER_VOLUME"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Audio.MasterVolume = min(max(float64(n)/100.0, 0), 1)
		}
	}

	if v := os.Getenv("TROUGH_TEXT"); v != "" {
		c.Text.Content = v
	}

	if v := os.Getenv("TROUGH_CELL_ORDER"); v != "" {
		c.Selection.CellOrder = v
	}

	if v := os.Getenv("TROUGH_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Selection.Seed = n
		}
	}

	if v := os.Getenv("TROUGH_DURATION_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Animation.DurationMS = n
		}
	}

	if v := os.Getenv("TROUGH_CUSTOM_CELLS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Modes.CustomCells = b
		}
	}
}

// Resolve builds the effective settings: defaults, then the optional file,
// then environment overrides, then validation
func Resolve(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = Load(path); err != nil {
			return nil, err
		}
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
