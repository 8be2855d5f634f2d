package sdfaux

import (
	"image"
	"image/color"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// HUD draws lines of status text over the top-left corner of a frame.
// A HUD is not safe for concurrent use.
type HUD struct {
	face    font.Face
	fg      image.Image
	bg      image.Image
	lineH   int
	padding int
}

// NewHUD creates a HUD using the Go Regular font at the given point size.
func NewHUD(size float64) (*HUD, error) {
	ttf, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	face := truetype.NewFace(ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	metrics := face.Metrics()
	return &HUD{
		face:    face,
		fg:      image.NewUniform(color.White),
		bg:      image.NewUniform(color.RGBA{A: 160}),
		lineH:   (metrics.Ascent + metrics.Descent).Ceil(),
		padding: 4,
	}, nil
}

// Draw writes lines onto dst over a translucent backdrop sized to the text.
func (h *HUD) Draw(dst draw.Image, lines ...string) {
	if len(lines) == 0 {
		return
	}
	d := font.Drawer{Dst: dst, Src: h.fg, Face: h.face}
	width := 0
	for _, line := range lines {
		width = max(width, d.MeasureString(line).Ceil())
	}
	origin := dst.Bounds().Min
	box := image.Rect(0, 0, width+2*h.padding, len(lines)*h.lineH+2*h.padding).Add(origin)
	draw.Draw(dst, box.Intersect(dst.Bounds()), h.bg, image.Point{}, draw.Over)
	ascent := h.face.Metrics().Ascent
	for i, line := range lines {
		d.Dot = fixed.Point26_6{
			X: fixed.I(origin.X + h.padding),
			Y: fixed.I(origin.Y+h.padding+i*h.lineH) + ascent,
		}
		d.DrawString(line)
	}
}
