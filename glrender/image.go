package glrender

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms2"
	"github.com/soypat/sdfpix/gleval"
)

type setImage = interface {
	image.Image
	Set(x, y int, c color.Color)
}

// ImageRendererSDF2 renders a 2D SDF over its bounds onto an image, one image
// row per batch evaluation. The top image row maps to the maximum Y of the bounds.
type ImageRendererSDF2 struct {
	conv func(f float32) color.Color
	pos  []ms2.Vec
	dist []float32
}

// NewImageRendererSDF2 instances a new [ImageRendererSDF2]. The evaluation
// buffer must be able to hold a full image row. A nil conversion renders the
// interior (negative distance) black, the exterior white and NaN/Inf red.
func NewImageRendererSDF2(evalBufferSize int, conversion func(float32) color.Color) (*ImageRendererSDF2, error) {
	if evalBufferSize <= 64 {
		return nil, errors.New("too small evaluation buffer size")
	}
	if conversion == nil {
		conversion = func(f float32) color.Color {
			switch {
			case math32.IsNaN(f) || math32.IsInf(f, 0):
				return color.RGBA{R: 255, A: 255}
			case f > 0:
				return color.White
			default:
				return color.Black
			}
		}
	}
	return &ImageRendererSDF2{
		conv: conversion,
		pos:  make([]ms2.Vec, evalBufferSize),
		dist: make([]float32, evalBufferSize),
	}, nil
}

// Render evaluates sdf at every pixel center of img and sets the converted color.
// userData is passed to all [gleval.SDF2.Evaluate] calls.
func (ir *ImageRendererSDF2) Render(sdf gleval.SDF2, img setImage, userData any) error {
	imgBB := img.Bounds()
	width, height := imgBB.Dx(), imgBB.Dy()
	if len(ir.dist) < width {
		return fmt.Errorf("require evaluation buffer (%d) to be at least of length of image row (%d)", len(ir.dist), width)
	}
	bb := sdf.Bounds()
	sz := bb.Size()
	dx := sz.X / float32(width)
	dy := sz.Y / float32(height)
	pos := ir.pos[:width]
	dist := ir.dist[:width]
	for j := 0; j < height; j++ {
		y := bb.Max.Y - (float32(j)+0.5)*dy
		for i := range pos {
			pos[i] = ms2.Vec{X: bb.Min.X + (float32(i)+0.5)*dx, Y: y}
		}
		err := sdf.Evaluate(pos, dist, userData)
		if err != nil {
			return fmt.Errorf("row %d: %w", j, err)
		}
		for i, d := range dist {
			img.Set(imgBB.Min.X+i, imgBB.Min.Y+j, ir.conv(d))
		}
	}
	return nil
}
