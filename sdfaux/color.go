package sdfaux

import (
	"image/color"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms1"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/sdfpix"
)

// A great portion of logic in this file taken from Esme Lamb's (@dedelala)
// excellent color manipulation work presented at Gophercon AU 2024.
// https://github.com/dedelala/disco/tree/main/color

var red = color.RGBA{R: 255, A: 255}

// ColorConversionInigoQuilez creates a distance to color conversion in [Inigo Quilez]'s style:
// warm outside, cool inside, banded by distance and white at the boundary.
// A good characteristic distance is the shape's bounding box diagonal divided by 3.
// NaN distances are red.
//
// [Inigo Quilez]: https://iquilezles.org/articles/distfunctions2d/
func ColorConversionInigoQuilez(characteristicDistance float32) func(float32) color.Color {
	inv := 1 / characteristicDistance
	white := sdfpix.Color{R: 1, G: 1, B: 1, A: 1}
	return func(d float32) color.Color {
		if math32.IsNaN(d) {
			return red
		}
		d *= inv
		var c ms3.Vec
		if d > 0 {
			c = ms3.Vec{X: 0.9, Y: 0.6, Z: 0.3}
		} else {
			c = ms3.Vec{X: 0.65, Y: 0.85, Z: 1.0}
		}
		c = ms3.Scale(1-math32.Exp(-6*math32.Abs(d)), c)
		c = ms3.Scale(0.8+0.2*math32.Cos(150*d), c)
		edge := 1 - ms1.SmoothStep(0, 0.01, math32.Abs(d))
		return sdfpix.MixColor(sdfpix.Opaque(c), white, edge).RGBA8()
	}
}

// ColorConversionLinearGradient creates a conversion that blends from c0 to c1
// in HSV space over gradientLength centered at d=0.
func ColorConversionLinearGradient(gradientLength float32, c0, c1 color.Color) func(d float32) color.Color {
	if gradientLength == 0 {
		return func(d float32) color.Color {
			if d < 0 {
				return c0
			}
			return c1
		}
	}
	h0, s0, v0 := colorToHSV(c0)
	h1, s1, v1 := colorToHSV(c1)
	return func(d float32) color.Color {
		blend := d/gradientLength + 0.5
		if blend <= 0 {
			return c0
		} else if blend >= 1 {
			return c1
		}
		h, s, v := interpHSV(h0, s0, v0, h1, s1, v1, blend)
		return sdfpix.Opaque(sdfpix.HSV(h, s, v)).RGBA8()
	}
}

// interpHSV interpolates along the shortest way around the hue circle.
func interpHSV(h0, s0, v0, h1, s1, v1, t float32) (h, s, v float32) {
	switch {
	case h1-h0 > 0.5:
		h0 += 1.0
	case h1-h0 < -0.5:
		h1 += 1.0
	}
	h = sdfpix.Fract(ms1.Interp(h0, h1, t))
	s = ms1.Interp(s0, s1, t)
	v = ms1.Interp(v0, v1, t)
	return h, s, v
}

func colorToHSV(c color.Color) (h, s, v float32) {
	r0, g0, b0, _ := c.RGBA()
	return rgbToHSV(float32(r0)/0xffff, float32(g0)/0xffff, float32(b0)/0xffff)
}

// rgbToHSV converts RGB components in [0,1] to hue, saturation and value in [0,1].
func rgbToHSV(r, g, b float32) (h, s, v float32) {
	var (
		xmax = max(r, g, b)
		xmin = min(r, g, b)
		c    = xmax - xmin
	)
	v = xmax
	switch {
	case c == 0:
		h = 0
	case v == r:
		h = (g - b) / (c * 6)
	case v == g:
		h = 1.0/3 + (b-r)/(c*6)
	case v == b:
		h = 2.0/3 + (r-g)/(c*6)
	}
	if h < 0 {
		h += 1
	}
	if xmax > 0 {
		s = c / xmax
	}
	return h, s, v
}
