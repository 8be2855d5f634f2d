package scene

import (
	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms2"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/sdfpix"
)

var (
	ripplesBackground = ms3.Vec{X: 0.03, Y: 0.05, Z: 0.12}
	ripplesWave       = ms3.Vec{X: 0.2, Y: 0.7, Z: 1.0}
	ripplesBlob       = ms3.Vec{X: 1.0, Y: 0.55, Z: 0.2}
)

// Ripples is a smooth union of two orbiting circles and a bar whose distance
// is warped by simplex noise and radiates attenuated waves outward.
type Ripples struct {
	k     float32
	noise *sdfpix.SmoothNoise
}

// NewRipples returns the ripple scene with smooth union radius k in pixels.
func NewRipples(k float32, noise *sdfpix.SmoothNoise) *Ripples {
	return &Ripples{k: k, noise: noise}
}

// Distance returns the warped signed distance of the blob at p.
func (r *Ripples) Distance(p, size ms2.Vec, t float32) float32 {
	m := minDim(size)
	c := ms2.Scale(0.5, size)
	c1 := ms2.Add(c, ms2.Vec{X: math32.Cos(t) * 0.25 * m, Y: math32.Sin(t) * 0.25 * m})
	a2 := math32.Pi - 1.3*t
	c2 := ms2.Add(c, ms2.Vec{X: math32.Cos(a2) * 0.2 * m, Y: math32.Sin(a2) * 0.2 * m})
	d := sdfpix.SmoothUnionN(r.k,
		sdfpix.SDFCircle(p, c1, 0.12*m),
		sdfpix.SDFCircle(p, c2, 0.09*m),
		sdfpix.SDFRect(p, c, ms2.Vec{X: 0.18 * m, Y: 0.04 * m}),
	)
	if r.noise != nil {
		d += r.noise.EvalAt(ms2.Scale(4/m, p), 0.3*t) * 0.04 * m
	}
	return d
}

// Shade implements [Scene].
func (r *Ripples) Shade(p, size ms2.Vec, fc sdfpix.FrameContext) sdfpix.Color {
	t := fc.Elapsed
	d := r.Distance(p, size, t)
	// Grain only outside so the blob edge stays crisp.
	outside := math32.Max(sdfpix.Perturb(d, p, 1.5), 0)
	wave := sdfpix.Ripple(outside, 0.35, -4*t, 0.5, 0.01)
	glow := sdfpix.ExpFalloff(outside, 0.02)
	col := ms3.Add(ripplesBackground, ms3.Scale((0.5+wave)*glow, ripplesWave))
	inside := 1 - sdfpix.SmoothStep(-1, 1, d)
	col = ms3.Vec{
		X: sdfpix.Mix(col.X, ripplesBlob.X, inside),
		Y: sdfpix.Mix(col.Y, ripplesBlob.Y, inside),
		Z: sdfpix.Mix(col.Z, ripplesBlob.Z, inside),
	}
	return sdfpix.Opaque(col)
}
