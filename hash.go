package sdfpix

import (
	"math"

	"github.com/soypat/geometry/ms2"
	"github.com/soypat/geometry/ms3"
)

// Classic shader hash constants. The dot product is taken in float64 so that
// large coordinates keep enough precision to avoid visible banding.
const (
	hashKX    = 12.9898
	hashKY    = 78.233
	hashKZ    = 37.719
	hashScale = 43758.5453
)

// Hash returns a deterministic pseudo random number in [0,1) computed only from the bits of p.
// It is fract(sin(dot(p, k)) * 43758.5453). It is not a cryptographic hash.
func Hash(p ms2.Vec) float32 {
	s := math.Sin(float64(p.X)*hashKX + float64(p.Y)*hashKY)
	return fract64(s * hashScale)
}

// Hash3 is the 3D version of [Hash].
func Hash3(p ms3.Vec) float32 {
	s := math.Sin(float64(p.X)*hashKX + float64(p.Y)*hashKY + float64(p.Z)*hashKZ)
	return fract64(s * hashScale)
}

// fract64 returns the fractional part of x as a float32 strictly less than 1.
func fract64(x float64) float32 {
	f := float32(x - math.Floor(x))
	if f >= 1 {
		// Rounding of values just below 1 to float32.
		return oneMinusUlp
	}
	return f
}
