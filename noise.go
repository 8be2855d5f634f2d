package sdfpix

import (
	"github.com/ojrac/opensimplex-go"
	"github.com/soypat/geometry/ms2"
)

// SmoothNoise is gradient (simplex) noise used to warp distances smoothly over
// space and time. It is built once from a seed and is read-only afterwards, so a
// single SmoothNoise may be shared by all goroutines evaluating pixels.
type SmoothNoise struct {
	noise opensimplex.Noise32
}

// NewSmoothNoise creates simplex noise from seed.
func NewSmoothNoise(seed int64) *SmoothNoise {
	return &SmoothNoise{noise: opensimplex.New32(seed)}
}

// Eval returns the noise value at p in the range [-1, 1].
func (sn *SmoothNoise) Eval(p ms2.Vec) float32 {
	return sn.noise.Eval2(p.X, p.Y)
}

// EvalAt returns the noise value at p for time t in the range [-1, 1].
// Time is the third noise dimension so values drift continuously.
func (sn *SmoothNoise) EvalAt(p ms2.Vec, t float32) float32 {
	return sn.noise.Eval3(p.X, p.Y, t)
}

// FBM sums octaves of noise at doubling frequency and persistence-scaled amplitude,
// normalized to the range [-1, 1].
func (sn *SmoothNoise) FBM(p ms2.Vec, t float32, octaves int, persistence float32) float32 {
	var total, maxValue float32
	var frequency, amplitude float32 = 1, 1
	for i := 0; i < octaves; i++ {
		total += sn.noise.Eval3(p.X*frequency, p.Y*frequency, t) * amplitude
		maxValue += amplitude
		amplitude *= persistence
		frequency *= 2
	}
	if maxValue == 0 {
		return 0
	}
	return total / maxValue
}

// Perturb offsets the distance d by a hash of p scaled to [-amount/2, amount/2).
// The result is deterministic for equal arguments.
func Perturb(d float32, p ms2.Vec, amount float32) float32 {
	return d + (Hash(p)-0.5)*amount
}
