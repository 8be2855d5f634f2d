package sdfpix

import (
	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms1"
)

// Ripple returns a sinusoid phased by distance and attenuated exponentially with it:
//
//	sin(d*frequency + phase) * amplitude * exp(-d*attenuation)
func Ripple(d, frequency, phase, amplitude, attenuation float32) float32 {
	return math32.Sin(d*frequency+phase) * amplitude * math32.Exp(-d*attenuation)
}

// Rings returns concentric bands of width spacing: the fractional position of d
// within its band passed through a smoothstep between lo and hi.
func Rings(d, spacing, lo, hi float32) float32 {
	return SmoothStep(lo, hi, Fract(d/spacing))
}

// RadialGradient maps d linearly from 0 at inner to 1 at outer, clamped.
// Caller must ensure outer != inner.
func RadialGradient(d, inner, outer float32) float32 {
	return ms1.Clamp((d-inner)/(outer-inner), 0, 1)
}

// ExpFalloff returns exp(-d*rate).
func ExpFalloff(d, rate float32) float32 {
	return math32.Exp(-d * rate)
}

// Fract returns x - floor(x), always in [0,1) for finite x.
func Fract(x float32) float32 {
	f := x - math32.Floor(x)
	if f >= 1 {
		return oneMinusUlp
	}
	return f
}

// SmoothStep is the Hermite interpolation between 0 at edge0 and 1 at edge1.
func SmoothStep(edge0, edge1, x float32) float32 {
	return ms1.SmoothStep(edge0, edge1, x)
}

// Step returns 0 if x < edge and 1 otherwise.
func Step(edge, x float32) float32 {
	if x < edge {
		return 0
	}
	return 1
}

// Mix linearly interpolates from x to y by a.
func Mix(x, y, a float32) float32 {
	return ms1.Interp(x, y, a)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	return ms1.Clamp(v, lo, hi)
}
