package scene

import (
	"github.com/soypat/geometry/ms2"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/sdfpix"
)

const (
	ringSpacing = 24 // pixels
	ringSpeed   = 30 // pixels per second
)

// Rings draws concentric bands expanding from the region center, measured
// under a configurable metric and darkened toward the edges.
type Rings struct {
	metric sdfpix.Metric
	p      float32
}

// NewRings returns the ring scene. p is the Minkowski exponent, ignored by other metrics.
func NewRings(metric sdfpix.Metric, p float32) *Rings {
	return &Rings{metric: metric, p: p}
}

// Distance returns the ring distance from the region center in pixels.
// Squared euclidean distance is rescaled by the region size to stay in pixel range.
func (r *Rings) Distance(p, size ms2.Vec) float32 {
	c := ms2.Scale(0.5, size)
	d := r.metric.Distance(p, c, r.p)
	if r.metric == sdfpix.MetricSquaredEuclidean {
		d /= 0.5 * minDim(size)
	}
	return d
}

// Shade implements [Scene].
func (r *Rings) Shade(p, size ms2.Vec, fc sdfpix.FrameContext) sdfpix.Color {
	t := fc.Elapsed
	m := minDim(size)
	d := r.Distance(p, size)
	phase := d - ringSpeed*t
	band := sdfpix.Rings(phase, ringSpacing, 0.3, 0.5) * (1 - sdfpix.Step(0.92, sdfpix.Fract(phase/ringSpacing)))
	hue := sdfpix.Fract(phase/(8*ringSpacing) + 0.05*t)
	col := ms3.Scale(0.15+0.85*band, sdfpix.HSV(hue, 0.6, 0.95))
	vignette := sdfpix.RadialGradient(sdfpix.Euclidean(p, ms2.Scale(0.5, size)), 0.3*m, 0.75*m)
	return sdfpix.Opaque(ms3.Scale(1-vignette, col))
}
