package sdfpix

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms2"
)

// Union returns the hard union of two signed distances. Is exact outside of the shapes
// and creases along the seam where both distances are equal.
func Union(d1, d2 float32) float32 {
	return math32.Min(d1, d2)
}

// Intersection returns the hard intersection of two signed distances.
func Intersection(d1, d2 float32) float32 {
	return math32.Max(d1, d2)
}

// Difference returns the signed distance of the first shape with the second removed.
func Difference(d1, d2 float32) float32 {
	return math32.Max(d1, -d2)
}

// Xor returns the signed distance of the region covered by exactly one of the shapes.
func Xor(d1, d2 float32) float32 {
	return math32.Max(math32.Min(d1, d2), -math32.Max(d1, d2))
}

// SmoothUnion joins two signed distances rounding the seam between them over
// the blend radius k. k must be positive. Where the distances differ by k or more
// the result is exactly the hard [Union]; as k approaches zero the result converges to it.
func SmoothUnion(d1, d2, k float32) float32 {
	h := clampf(0.5+0.5*(d2-d1)/k, 0, 1)
	return mixf(d2, d1, h) - k*h*(1-h)
}

// UnionN returns the hard union of all distances. The result does not depend
// on argument order. UnionN of no distances is a very large positive number (empty shape).
func UnionN(ds ...float32) float32 {
	d := float32(largenum)
	for _, di := range ds {
		d = math32.Min(d, di)
	}
	return d
}

// SmoothUnionN folds [SmoothUnion] over the distances from left to right.
// Smooth union is not associative so the result depends on argument order.
func SmoothUnionN(k float32, ds ...float32) float32 {
	if len(ds) == 0 {
		return largenum
	}
	d := ds[0]
	for _, di := range ds[1:] {
		d = SmoothUnion(d, di, k)
	}
	return d
}

// OpUnion2D is the result of [Builder.Union2D].
type OpUnion2D struct {
	joined []Shape2D
}

// Union2D joins the shapes of several 2D SDFs into one. Is exact.
// Union2D aggregates nested Union2D results into its own.
func (*Builder) Union2D(shapes ...Shape2D) Shape2D {
	if len(shapes) < 2 {
		panic("need at least 2 arguments to Union2D")
	}
	var U OpUnion2D
	for i, s := range shapes {
		if s == nil {
			panic(fmt.Sprintf("nil %d argument to Union2D", i))
		}
		if subU, ok := s.(*OpUnion2D); ok {
			U.joined = append(U.joined, subU.joined...)
		} else {
			U.joined = append(U.joined, s)
		}
	}
	return &U
}

// Distance implements [Shape2D].
func (u *OpUnion2D) Distance(p ms2.Vec) float32 {
	u.mustValidate()
	d := u.joined[0].Distance(p)
	for _, s := range u.joined[1:] {
		d = Union(d, s.Distance(p))
	}
	return d
}

// Bounds returns the union of all joined SDFs. Implements [Shape2D].
func (u *OpUnion2D) Bounds() ms2.Box {
	u.mustValidate()
	bb := u.joined[0].Bounds()
	for _, s := range u.joined[1:] {
		bb = bb.Union(s.Bounds())
	}
	return bb
}

func (u *OpUnion2D) mustValidate() {
	if len(u.joined) < 2 {
		panic("OpUnion2D must have at least 2 elements. Please prefer using Builder.Union2D over OpUnion2D")
	}
}

type intersect2D struct {
	s1, s2 Shape2D
}

// Intersection2D is the SDF intersection of a ∩ b.
func (bld *Builder) Intersection2D(a, b Shape2D) Shape2D {
	if a == nil || b == nil {
		bld.nilsdf("Intersection2D")
	}
	return &intersect2D{s1: a, s2: b}
}

func (u *intersect2D) Distance(p ms2.Vec) float32 {
	return Intersection(u.s1.Distance(p), u.s2.Distance(p))
}

func (u *intersect2D) Bounds() ms2.Box {
	b1, b2 := u.s1.Bounds(), u.s2.Bounds()
	return ms2.Box{
		Min: ms2.MaxElem(b1.Min, b2.Min),
		Max: ms2.MinElem(b1.Max, b2.Max),
	}
}

type diff2D struct {
	s1, s2 Shape2D
}

// Difference2D is the SDF difference of a-b. Does not produce a true SDF.
func (bld *Builder) Difference2D(a, b Shape2D) Shape2D {
	if a == nil || b == nil {
		bld.nilsdf("Difference2D")
	}
	return &diff2D{s1: a, s2: b}
}

func (u *diff2D) Distance(p ms2.Vec) float32 {
	return Difference(u.s1.Distance(p), u.s2.Distance(p))
}

func (u *diff2D) Bounds() ms2.Box {
	return u.s1.Bounds()
}

type smoothUnion2D struct {
	joined []Shape2D
	k      float32
}

// SmoothUnion2D joins shapes rounding their seams over blend radius k.
// Shapes are folded left to right, see [SmoothUnionN].
func (bld *Builder) SmoothUnion2D(k float32, shapes ...Shape2D) Shape2D {
	if len(shapes) < 2 {
		panic("need at least 2 arguments to SmoothUnion2D")
	}
	for i, s := range shapes {
		if s == nil {
			panic(fmt.Sprintf("nil %d argument to SmoothUnion2D", i))
		}
	}
	if !(k > 0) || math32.IsInf(k, 1) {
		bld.shapeErrorf("smooth union blend radius must be positive and finite, got %g", k)
	}
	return &smoothUnion2D{joined: append([]Shape2D{}, shapes...), k: k}
}

func (u *smoothUnion2D) Distance(p ms2.Vec) float32 {
	d := u.joined[0].Distance(p)
	for _, s := range u.joined[1:] {
		d = SmoothUnion(d, s.Distance(p), u.k)
	}
	return d
}

func (u *smoothUnion2D) Bounds() ms2.Box {
	bb := u.joined[0].Bounds()
	for _, s := range u.joined[1:] {
		bb = bb.Union(s.Bounds())
	}
	// The blend bulges out at most k/4 per fold.
	grow := u.k / 4 * float32(len(u.joined)-1)
	bb.Min = ms2.AddScalar(-grow, bb.Min)
	bb.Max = ms2.AddScalar(grow, bb.Max)
	return bb
}
