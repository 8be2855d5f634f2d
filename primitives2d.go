package sdfpix

import (
	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms1"
	"github.com/soypat/geometry/ms2"
)

// Shape2D is a 2D signed distance field. Distance is negative inside the shape,
// zero on its boundary and positive outside. Shape2D values satisfy [gleval.SDF2]
// so they may be rendered in batches.
//
// Shape2D is implemented by [Circle], [Rect] and [Segment] and by the
// combinators of this package.
type Shape2D interface {
	// Distance returns the signed distance from p to the shape.
	Distance(p ms2.Vec) float32
	// Bounds returns the shape's bounding box such that all of the shape is contained within.
	Bounds() ms2.Box
	// Evaluate stores the distances of all positions in dist. pos and dist must be of same length.
	Evaluate(pos []ms2.Vec, dist []float32, userData any) error
}

var (
	_ Shape2D = Circle{}
	_ Shape2D = Rect{}
	_ Shape2D = Segment{}
)

// SDFCircle returns the signed distance from p to the circle of radius centered at center.
func SDFCircle(p, center ms2.Vec, radius float32) float32 {
	return Euclidean(p, center) - radius
}

// SDFRect returns the signed distance from p to the axis-aligned rectangle
// centered at center with half side lengths halfExtents. Outside the box the
// result is the Euclidean distance to the nearest edge or corner, inside it is
// the negated distance to the nearest edge.
func SDFRect(p, center, halfExtents ms2.Vec) float32 {
	d := ms2.Sub(ms2.AbsElem(ms2.Sub(p, center)), halfExtents)
	return ms2.Norm(ms2.MaxElem(d, ms2.Vec{})) + math32.Min(math32.Max(d.X, d.Y), 0)
}

// DistancePointToSegment returns the unsigned distance from p to the closed
// line segment between start and end. A zero length segment is the point start.
func DistancePointToSegment(p, start, end ms2.Vec) float32 {
	ba := ms2.Sub(end, start)
	dotba := ms2.Dot(ba, ba)
	if dotba == 0 {
		return Euclidean(p, start)
	}
	pa := ms2.Sub(p, start)
	h := ms1.Clamp(ms2.Dot(pa, ba)/dotba, 0, 1)
	return ms2.Norm(ms2.Sub(pa, ms2.Scale(h, ba)))
}

// Circle is a disk of Radius centered at Center.
type Circle struct {
	Center ms2.Vec
	Radius float32
}

// NewCircle creates a circle and validates its radius.
func (bld *Builder) NewCircle(center ms2.Vec, radius float32) Circle {
	okRadius := radius > 0 && !math32.IsInf(radius, 1)
	if !okRadius {
		bld.shapeErrorf("bad circle radius: %g", radius)
	} else if isBad(center.X) || isBad(center.Y) {
		bld.shapeErrorf("bad circle center")
	}
	return Circle{Center: center, Radius: radius}
}

// Distance implements [Shape2D].
func (c Circle) Distance(p ms2.Vec) float32 {
	return SDFCircle(p, c.Center, c.Radius)
}

// Bounds implements [Shape2D].
func (c Circle) Bounds() ms2.Box {
	r := c.Radius
	return ms2.NewBox(c.Center.X-r, c.Center.Y-r, c.Center.X+r, c.Center.Y+r)
}

// Rect is an axis aligned rectangle centered at Center whose sides measure twice HalfExtents.
type Rect struct {
	Center      ms2.Vec
	HalfExtents ms2.Vec
}

// NewRect creates a rectangle and validates its extents.
func (bld *Builder) NewRect(center, halfExtents ms2.Vec) Rect {
	okRect := halfExtents.X > 0 && halfExtents.Y > 0 && !math32.IsInf(halfExtents.X, 1) && !math32.IsInf(halfExtents.Y, 1)
	if !okRect {
		bld.shapeErrorf("bad rectangle half extents")
	} else if isBad(center.X) || isBad(center.Y) {
		bld.shapeErrorf("bad rectangle center")
	}
	return Rect{Center: center, HalfExtents: halfExtents}
}

// Distance implements [Shape2D].
func (r Rect) Distance(p ms2.Vec) float32 {
	return SDFRect(p, r.Center, r.HalfExtents)
}

// Bounds implements [Shape2D].
func (r Rect) Bounds() ms2.Box {
	return ms2.Box{
		Min: ms2.Sub(r.Center, r.HalfExtents),
		Max: ms2.Add(r.Center, r.HalfExtents),
	}
}

// Segment is the closed line segment between Start and End. It has no interior
// so its distance is never negative.
type Segment struct {
	Start, End ms2.Vec
}

// NewSegment creates a segment. Zero length segments are valid.
func (bld *Builder) NewSegment(start, end ms2.Vec) Segment {
	if isBad(start.X) || isBad(start.Y) || isBad(end.X) || isBad(end.Y) {
		bld.shapeErrorf("NaN or Inf argument to NewSegment")
	}
	return Segment{Start: start, End: end}
}

// Distance implements [Shape2D].
func (s Segment) Distance(p ms2.Vec) float32 {
	return DistancePointToSegment(p, s.Start, s.End)
}

// Bounds implements [Shape2D].
func (s Segment) Bounds() ms2.Box {
	return ms2.Box{Min: s.Start, Max: s.End}.Canon()
}
