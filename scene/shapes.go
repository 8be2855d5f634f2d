package scene

import (
	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms2"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/sdfpix"
)

const strokeWidth = 0.015

var (
	shapesOutside = ms3.Vec{X: 0.9, Y: 0.6, Z: 0.3}
	shapesInside  = ms3.Vec{X: 0.65, Y: 0.85, Z: 1.0}
)

// Shapes is a hard union of stroked segments and the intersection of a
// rectangle with a circle, rotating slowly, shaded with inside/outside distance bands.
// Shapes are defined in region units where the smaller region side measures 1.
type Shapes struct {
	strokes  sdfpix.Shape2D
	lens     sdfpix.Shape2D
	geometry sdfpix.Shape2D
	rotSpeed float32
}

// NewShapes builds the shape scene geometry.
func NewShapes() (*Shapes, error) {
	var bld sdfpix.Builder
	bld.SetFlags(sdfpix.FlagNoDimensionPanic)
	strokes := bld.Union2D(
		bld.NewSegment(ms2.Vec{X: -0.35, Y: -0.3}, ms2.Vec{X: 0.35, Y: -0.3}),
		bld.NewSegment(ms2.Vec{X: -0.35, Y: 0.3}, ms2.Vec{X: 0.1, Y: 0.3}),
		bld.NewSegment(ms2.Vec{X: 0.3, Y: 0.15}, ms2.Vec{X: 0.3, Y: 0.15}), // A dot.
	)
	lens := bld.Intersection2D(
		bld.NewRect(ms2.Vec{}, ms2.Vec{X: 0.22, Y: 0.12}),
		bld.NewCircle(ms2.Vec{X: 0.05}, 0.2),
	)
	geometry := bld.Union2D(strokes, lens)
	if err := bld.Err(); err != nil {
		return nil, err
	}
	return &Shapes{strokes: strokes, lens: lens, geometry: geometry, rotSpeed: 0.3}, nil
}

// Geometry returns the unrotated shapes without stroke width, for debugging output.
func (s *Shapes) Geometry() sdfpix.Shape2D {
	return s.geometry
}

// Distance returns the signed distance at p in region units, p relative to the region center.
func (s *Shapes) Distance(p ms2.Vec, t float32) float32 {
	sin, cos := math32.Sin(t*s.rotSpeed), math32.Cos(t*s.rotSpeed)
	pr := ms2.Vec{X: cos*p.X + sin*p.Y, Y: -sin*p.X + cos*p.Y}
	return sdfpix.Union(s.strokes.Distance(pr)-strokeWidth, s.lens.Distance(pr))
}

// Shade implements [Scene].
func (s *Shapes) Shade(p, size ms2.Vec, fc sdfpix.FrameContext) sdfpix.Color {
	m := minDim(size)
	pn := ms2.Scale(1/m, ms2.Sub(p, ms2.Scale(0.5, size)))
	d := s.Distance(pn, fc.Elapsed)
	col := shapesInside
	if d > 0 {
		col = shapesOutside
	}
	ad := math32.Abs(d)
	col = ms3.Scale(1-math32.Exp(-12*ad), col)
	col = ms3.Scale(0.8+0.2*math32.Cos(300*d-4*fc.Elapsed), col)
	// Highlight the boundary; one pixel in region units.
	edge := 1 - sdfpix.SmoothStep(0, 1.5/m, ad)
	col = ms3.Vec{
		X: sdfpix.Mix(col.X, 1, edge),
		Y: sdfpix.Mix(col.Y, 1, edge),
		Z: sdfpix.Mix(col.Z, 1, edge),
	}
	return sdfpix.Opaque(col)
}
