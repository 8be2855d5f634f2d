// Package sdfaux provides host collaborators for the sdfpix render pipeline:
// configuration, color conversions, PNG output, a text HUD and a GLFW window presenter.
package sdfaux

import (
	"errors"
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/soypat/sdfpix"
	"github.com/soypat/sdfpix/glrender"
	"github.com/soypat/sdfpix/scene"
)

// EnvPrefix is the prefix of all environment variables read by [LoadConfig].
const EnvPrefix = "SDFPIX"

// Config holds everything needed to run the render pipeline from a host program.
type Config struct {
	Width   uint32          `envconfig:"WIDTH" default:"512"`
	Height  uint32          `envconfig:"HEIGHT" default:"512"`
	Workers int             `envconfig:"WORKERS" default:"0"`
	Filter  glrender.Filter `envconfig:"FILTER" default:"nearest"`
	// Surface size of presented frames. Zero tracks the render resolution.
	SurfaceWidth  uint32 `envconfig:"SURFACE_WIDTH" default:"0"`
	SurfaceHeight uint32 `envconfig:"SURFACE_HEIGHT" default:"0"`

	CellSize   float32       `envconfig:"CELL_SIZE" default:"40"`
	SmoothK    float32       `envconfig:"SMOOTH_K" default:"24"`
	RingMetric sdfpix.Metric `envconfig:"RING_METRIC" default:"euclidean"`
	MinkowskiP float32       `envconfig:"MINKOWSKI_P" default:"3"`
	NoiseSeed  int64         `envconfig:"NOISE_SEED" default:"1"`

	// Frames is the number of frames rendered by headless programs.
	Frames int     `envconfig:"FRAMES" default:"60"`
	FPS    float32 `envconfig:"FPS" default:"30"`
	OutDir string  `envconfig:"OUT_DIR" default:"frames"`
	HUD    bool    `envconfig:"HUD" default:"true"`
}

// LoadConfig reads the configuration from SDFPIX_* environment variables,
// applying defaults for unset ones, and validates it.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the pipeline or scenes reject.
func (cfg Config) Validate() error {
	var errs []error
	if cfg.Width == 0 || cfg.Height == 0 {
		errs = append(errs, fmt.Errorf("invalid resolution %dx%d", cfg.Width, cfg.Height))
	}
	if (cfg.SurfaceWidth == 0) != (cfg.SurfaceHeight == 0) {
		errs = append(errs, fmt.Errorf("invalid surface %dx%d", cfg.SurfaceWidth, cfg.SurfaceHeight))
	}
	if cfg.Workers < 0 {
		errs = append(errs, errors.New("negative worker count"))
	}
	if cfg.Frames < 0 {
		errs = append(errs, errors.New("negative frame count"))
	}
	if !(cfg.FPS > 0) {
		errs = append(errs, errors.New("FPS must be positive"))
	}
	if err := cfg.SceneConfig().Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Resolution returns the configured output resolution.
func (cfg Config) Resolution() sdfpix.Resolution {
	return sdfpix.Resolution{Width: cfg.Width, Height: cfg.Height}
}

// PipelineConfig returns the pipeline part of the configuration.
func (cfg Config) PipelineConfig() glrender.PipelineConfig {
	return glrender.PipelineConfig{
		Resolution: cfg.Resolution(),
		Surface:    sdfpix.Resolution{Width: cfg.SurfaceWidth, Height: cfg.SurfaceHeight},
		Workers:    cfg.Workers,
		Filter:     cfg.Filter,
	}
}

// SceneConfig returns the scene part of the configuration.
func (cfg Config) SceneConfig() scene.Config {
	return scene.Config{
		CellSize:   cfg.CellSize,
		SmoothK:    cfg.SmoothK,
		RingMetric: cfg.RingMetric,
		MinkowskiP: cfg.MinkowskiP,
		NoiseSeed:  cfg.NoiseSeed,
	}
}
