// Package scene implements the per-pixel compositor that partitions the output
// image into four quadrants, each shaded by its own distance-field scene.
package scene

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms2"
	"github.com/soypat/sdfpix"
)

// Scene shades one region of the output. local is the pixel center in region
// pixel units with the origin at the region's bottom-left corner and Y pointing
// up. size is the region size in pixels. Shade must be a pure function of its
// arguments and the scene's immutable configuration.
type Scene interface {
	Shade(local, size ms2.Vec, fc sdfpix.FrameContext) sdfpix.Color
}

// Region identifies a screen quadrant.
type Region uint8

const (
	RegionTopLeft Region = iota
	RegionTopRight
	RegionBottomLeft
	RegionBottomRight
	numRegions
)

func (r Region) String() string {
	switch r {
	case RegionTopLeft:
		return "top-left"
	case RegionTopRight:
		return "top-right"
	case RegionBottomLeft:
		return "bottom-left"
	case RegionBottomRight:
		return "bottom-right"
	}
	return fmt.Sprintf("Region(%d)", r)
}

// Config holds the scene parameters exposed to configuration.
type Config struct {
	// CellSize is the Voronoi cell side in pixels.
	CellSize float32
	// SmoothK is the smooth union blend radius in pixels.
	SmoothK float32
	// RingMetric is the metric used to measure ring distance.
	RingMetric sdfpix.Metric
	// MinkowskiP is the exponent used when RingMetric is [sdfpix.MetricMinkowski].
	MinkowskiP float32
	// NoiseSeed seeds the simplex noise that warps the ripple scene.
	NoiseSeed int64
}

// DefaultConfig returns the reference scene parameters.
func DefaultConfig() Config {
	return Config{
		CellSize:   40,
		SmoothK:    24,
		RingMetric: sdfpix.MetricEuclidean,
		MinkowskiP: 3,
		NoiseSeed:  1,
	}
}

// Validate checks the configuration is usable.
func (cfg Config) Validate() error {
	var errs []error
	if !(cfg.CellSize > 0) {
		errs = append(errs, errors.New("cell size must be positive"))
	}
	if !(cfg.SmoothK > 0) {
		errs = append(errs, errors.New("smooth union radius must be positive"))
	}
	if _, err := cfg.RingMetric.MarshalText(); err != nil {
		errs = append(errs, err)
	}
	if cfg.RingMetric == sdfpix.MetricMinkowski && !(cfg.MinkowskiP > 0) {
		errs = append(errs, errors.New("minkowski exponent must be positive"))
	}
	return errors.Join(errs...)
}

// Compositor is the Stage A kernel: it selects the scene for a pixel's region
// and shades it. A Compositor is immutable after construction.
type Compositor struct {
	scenes [numRegions]Scene
}

// NewCompositor builds the four reference scenes from cfg.
func NewCompositor(cfg Config) (*Compositor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	shapes, err := NewShapes()
	if err != nil {
		return nil, err
	}
	return NewCompositorScenes(
		NewRipples(cfg.SmoothK, sdfpix.NewSmoothNoise(cfg.NoiseSeed)),
		NewRings(cfg.RingMetric, cfg.MinkowskiP),
		NewCells(cfg.CellSize),
		shapes,
	)
}

// NewCompositorScenes creates a compositor from explicit scenes in
// top-left, top-right, bottom-left, bottom-right order.
func NewCompositorScenes(topLeft, topRight, bottomLeft, bottomRight Scene) (*Compositor, error) {
	c := &Compositor{scenes: [numRegions]Scene{topLeft, topRight, bottomLeft, bottomRight}}
	for i, s := range c.scenes {
		if s == nil {
			return nil, fmt.Errorf("nil %s scene", Region(i))
		}
	}
	return c, nil
}

// Scene returns the scene that shades region r.
func (c *Compositor) Scene(r Region) Scene {
	return c.scenes[r]
}

// RegionOf returns the quadrant of pixel (x,y) in image coordinates, origin top-left.
// Selection compares the normalized pixel center against 0.5 so every pixel
// belongs to exactly one region.
func RegionOf(x, y int, res sdfpix.Resolution) Region {
	u := (float32(x) + 0.5) / float32(res.Width)
	v := (float32(y) + 0.5) / float32(res.Height)
	var r Region
	if u >= 0.5 {
		r |= 1
	}
	if v >= 0.5 {
		r |= 2
	}
	return r
}

// ShadePixel implements the pipeline's pixel shader.
func (c *Compositor) ShadePixel(x, y int, fc sdfpix.FrameContext) sdfpix.Color {
	res := fc.Resolution
	w, h := float32(res.Width), float32(res.Height)
	size := ms2.Vec{X: w / 2, Y: h / 2}
	r := RegionOf(x, y, res)
	// Pixel center relative to the region's top-left corner.
	px := float32(x) + 0.5
	py := float32(y) + 0.5
	if r&1 != 0 {
		px -= size.X
	}
	if r&2 != 0 {
		py -= size.Y
	}
	local := ms2.Vec{X: px, Y: size.Y - py}
	return c.scenes[r].Shade(local, size, fc)
}

// minDim returns the smaller region dimension, never less than 1.
func minDim(size ms2.Vec) float32 {
	return math32.Max(math32.Min(size.X, size.Y), 1)
}
