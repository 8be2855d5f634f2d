package sdfpix

import (
	"image/color"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"
)

// Color is a non-premultiplied RGBA color with float components nominally in [0,1].
// Components outside the range are allowed during shading and are clamped on quantization.
type Color struct {
	R, G, B, A float32
}

var _ color.Color = Color{}

// Opaque returns the color with RGB components taken from rgb and alpha 1.
func Opaque(rgb ms3.Vec) Color {
	return Color{R: rgb.X, G: rgb.Y, B: rgb.Z, A: 1}
}

// RGB returns the color components as a vector.
func (c Color) RGB() ms3.Vec {
	return ms3.Vec{X: c.R, Y: c.G, Z: c.B}
}

// MixColor linearly interpolates all four components from a to b by t.
func MixColor(a, b Color, t float32) Color {
	return Color{
		R: mixf(a.R, b.R, t),
		G: mixf(a.G, b.G, t),
		B: mixf(a.B, b.B, t),
		A: mixf(a.A, b.A, t),
	}
}

// RGBA8 clamps the components to [0,1] and quantizes them to an 8 bit
// alpha-premultiplied color. NaN components quantize to 0.
func (c Color) RGBA8() color.RGBA {
	a := clamp01(c.A)
	return color.RGBA{
		R: quantize(clamp01(c.R) * a),
		G: quantize(clamp01(c.G) * a),
		B: quantize(clamp01(c.B) * a),
		A: quantize(a),
	}
}

// RGBA implements [color.Color].
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.RGBA8().RGBA()
}

func clamp01(v float32) float32 {
	if !(v > 0) {
		return 0 // Also catches NaN.
	} else if v > 1 {
		return 1
	}
	return v
}

func quantize(v float32) uint8 {
	return uint8(v*255 + 0.5)
}

// HSV converts hue, saturation and value in [0,1] to RGB components in [0,1].
func HSV(h, s, v float32) ms3.Vec {
	var (
		c = s * v
		x = c * (1 - math32.Abs(math32.Mod(h*6, 2)-1))
		m = v - c
	)
	var r, g, b float32
	switch {
	case h >= 0 && h <= 1.0/6:
		r, g, b = c, x, 0
	case h > 1.0/6 && h <= 2.0/6:
		r, g, b = x, c, 0
	case h > 2.0/6 && h <= 3.0/6:
		r, g, b = 0, c, x
	case h > 3.0/6 && h <= 4.0/6:
		r, g, b = 0, x, c
	case h > 4.0/6 && h <= 5.0/6:
		r, g, b = x, 0, c
	case h > 5.0/6 && h <= 1.0:
		r, g, b = c, 0, x
	}
	return ms3.Vec{X: r + m, Y: g + m, Z: b + m}
}
