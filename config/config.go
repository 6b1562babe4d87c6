// Package config loads and validates generator settings from YAML.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"topo/core"
	"topo/export"
	"topo/field"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all generator configuration.
type Config struct {
	Canvas    CanvasConfig    `yaml:"canvas"`
	Contours  ContoursConfig  `yaml:"contours"`
	Noise     NoiseConfig     `yaml:"noise"`
	Generator GeneratorConfig `yaml:"generator"`
	Export    ExportConfig    `yaml:"export"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// CanvasConfig sizes the output and the sampling lattice.
type CanvasConfig struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	GridSize float64 `yaml:"grid_size"`
}

// ContoursConfig selects the iso-levels. An explicit list wins over
// start/step/count.
type ContoursConfig struct {
	Thresholds []float64 `yaml:"thresholds,omitempty"`
	Start      float64   `yaml:"start"`
	Step       float64   `yaml:"step"`
	Count      int       `yaml:"count"`
	River      float64   `yaml:"river"`
}

// NoiseConfig configures field synthesis. Seed -1 draws a random seed.
type NoiseConfig struct {
	Kind  string  `yaml:"kind"` // simplex, perlin
	Seed  int64   `yaml:"seed"`
	Scale float64 `yaml:"scale"`
}

// GeneratorConfig tunes the pipeline. CacheSize bounds the memoized
// results; generate runs the pipeline once, so it mostly pays off in preview.
type GeneratorConfig struct {
	Workers           int     `yaml:"workers"`
	CacheSize         int     `yaml:"cache_size"`
	SimplifyTolerance float64 `yaml:"simplify_tolerance"`
}

// ExportConfig selects the default output.
type ExportConfig struct {
	Format string `yaml:"format"` // svg, png, json, ascii
	Output string `yaml:"output"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Canvas: CanvasConfig{
			Width:    1920,
			Height:   1080,
			GridSize: 5,
		},
		Contours: ContoursConfig{
			Start: 0.25,
			Step:  0.05,
			Count: 12,
			River: 0.22,
		},
		Noise: NoiseConfig{
			Kind:  string(core.NoiseSimplex),
			Seed:  -1,
			Scale: field.DefaultScale,
		},
		Generator: GeneratorConfig{
			Workers:   1,
			CacheSize: 0,
		},
		Export: ExportConfig{
			Format: string(export.FormatSVG),
			Output: "terrain.svg",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := c.YAML()
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// YAML renders the configuration as written by Save.
func (c *Config) YAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// applyEnvOverrides applies TOPO_* environment variables.
func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("TOPO_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("TOPO_SEED: %w", err)
		}
		c.Noise.Seed = seed
	}
	floats := []struct {
		name string
		dst  *float64
	}{
		{"TOPO_WIDTH", &c.Canvas.Width},
		{"TOPO_HEIGHT", &c.Canvas.Height},
		{"TOPO_GRID_SIZE", &c.Canvas.GridSize},
	}
	for _, f := range floats {
		v := os.Getenv(f.name)
		if v == "" {
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = n
	}
	if v := os.Getenv("TOPO_NOISE"); v != "" {
		c.Noise.Kind = v
	}
	if v := os.Getenv("TOPO_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	return nil
}

// Thresholds returns the contour levels in ascending configuration order.
func (c *Config) Thresholds() []float64 {
	if len(c.Contours.Thresholds) > 0 {
		out := make([]float64, len(c.Contours.Thresholds))
		copy(out, c.Contours.Thresholds)
		return out
	}
	return core.DefaultThresholds(c.Contours.Start, c.Contours.Step, c.Contours.Count)
}

// Params converts the configuration into generator parameters. The seed
// is passed through unchanged, including -1.
func (c *Config) Params() core.Params {
	kind, err := field.ParseNoiseKind(c.Noise.Kind)
	if err != nil {
		kind = core.NoiseSimplex
	}
	return core.Params{
		Width:             c.Canvas.Width,
		Height:            c.Canvas.Height,
		GridSize:          c.Canvas.GridSize,
		Seed:              c.Noise.Seed,
		ContourThresholds: c.Thresholds(),
		RiverThreshold:    c.Contours.River,
		NoiseScale:        c.Noise.Scale,
		Noise:             kind,
		SimplifyTolerance: c.Generator.SimplifyTolerance,
	}
}

// Validate checks the configuration and returns the first problem found.
func (c *Config) Validate() error {
	if !positiveFinite(c.Canvas.Width) || !positiveFinite(c.Canvas.Height) {
		return fmt.Errorf("%w: canvas must be positive and finite, got %gx%g", ErrInvalid, c.Canvas.Width, c.Canvas.Height)
	}
	if !positiveFinite(c.Canvas.GridSize) {
		return fmt.Errorf("%w: grid_size must be positive and finite, got %g", ErrInvalid, c.Canvas.GridSize)
	}
	if cols, _ := field.Dimensions(c.Canvas.Width, c.Canvas.Height, c.Canvas.GridSize); cols == 0 {
		return fmt.Errorf("%w: %gx%g at grid_size %g exceeds %d samples", ErrInvalid,
			c.Canvas.Width, c.Canvas.Height, c.Canvas.GridSize, field.MaxCells)
	}
	if len(c.Contours.Thresholds) == 0 && c.Contours.Count < 0 {
		return fmt.Errorf("%w: contour count must not be negative, got %d", ErrInvalid, c.Contours.Count)
	}
	for _, t := range c.Thresholds() {
		if !inUnitRange(t) {
			return fmt.Errorf("%w: contour threshold %g outside [0,1]", ErrInvalid, t)
		}
	}
	if !inUnitRange(c.Contours.River) {
		return fmt.Errorf("%w: river threshold %g outside [0,1]", ErrInvalid, c.Contours.River)
	}
	if _, err := field.ParseNoiseKind(c.Noise.Kind); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if !(c.Noise.Scale >= 0) || math.IsInf(c.Noise.Scale, 1) {
		return fmt.Errorf("%w: noise scale must be finite and not negative, got %g", ErrInvalid, c.Noise.Scale)
	}
	if c.Generator.Workers < 0 || c.Generator.CacheSize < 0 || !(c.Generator.SimplifyTolerance >= 0) {
		return fmt.Errorf("%w: generator settings must not be negative", ErrInvalid)
	}
	if _, err := export.ParseFormat(c.Export.Format); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	switch c.Logging.Format {
	case "json", "console", "":
	default:
		return fmt.Errorf("%w: unknown log format %q", ErrInvalid, c.Logging.Format)
	}
	return nil
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// inUnitRange is false for NaN.
func inUnitRange(v float64) bool {
	return v >= 0 && v <= 1
}
