package sdfpix

import (
	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms1"
	"github.com/soypat/geometry/ms2"
	"github.com/soypat/sdfpix/gleval"
)

// Evaluate implements [gleval.SDF2].
func (c Circle) Evaluate(pos []ms2.Vec, dist []float32, userData any) error {
	if err := gleval.CheckBuffers(pos, dist); err != nil {
		return err
	}
	center, r := c.Center, c.Radius
	for i, p := range pos {
		dist[i] = ms2.Norm(ms2.Sub(p, center)) - r
	}
	return nil
}

// Evaluate implements [gleval.SDF2].
func (r Rect) Evaluate(pos []ms2.Vec, dist []float32, userData any) error {
	if err := gleval.CheckBuffers(pos, dist); err != nil {
		return err
	}
	center, b := r.Center, r.HalfExtents
	for i, p := range pos {
		d := ms2.Sub(ms2.AbsElem(ms2.Sub(p, center)), b)
		dist[i] = ms2.Norm(ms2.MaxElem(d, ms2.Vec{})) + math32.Min(0, math32.Max(d.X, d.Y))
	}
	return nil
}

// Evaluate implements [gleval.SDF2].
func (s Segment) Evaluate(pos []ms2.Vec, dist []float32, userData any) error {
	if err := gleval.CheckBuffers(pos, dist); err != nil {
		return err
	}
	a := s.Start
	ba := ms2.Sub(s.End, s.Start)
	dotba := ms2.Dot(ba, ba)
	if dotba == 0 {
		for i, p := range pos {
			dist[i] = ms2.Norm(ms2.Sub(a, p))
		}
		return nil
	}
	for i, p := range pos {
		pa := ms2.Sub(p, a)
		h := ms1.Clamp(ms2.Dot(pa, ba)/dotba, 0, 1)
		dist[i] = ms2.Norm(ms2.Sub(pa, ms2.Scale(h, ba)))
	}
	return nil
}

// Evaluate implements [gleval.SDF2].
func (u *OpUnion2D) Evaluate(pos []ms2.Vec, dist []float32, userData any) error {
	u.mustValidate()
	vp, err := gleval.GetVecPool(userData)
	if err != nil {
		return err
	}
	auxDist := vp.Float.Acquire(len(dist))
	defer vp.Float.Release(auxDist)

	err = u.joined[0].Evaluate(pos, dist, userData)
	if err != nil {
		return err
	}
	for _, shape := range u.joined[1:] {
		err = shape.Evaluate(pos, auxDist, userData)
		if err != nil {
			return err
		}
		for i, d := range dist {
			dist[i] = math32.Min(d, auxDist[i])
		}
	}
	return nil
}

func (u *intersect2D) Evaluate(pos []ms2.Vec, dist []float32, userData any) error {
	vp, err := gleval.GetVecPool(userData)
	if err != nil {
		return err
	}
	d1 := dist
	d2 := vp.Float.Acquire(len(dist))
	defer vp.Float.Release(d2)
	err = u.s1.Evaluate(pos, d1, userData)
	if err != nil {
		return err
	}
	err = u.s2.Evaluate(pos, d2, userData)
	if err != nil {
		return err
	}
	for i := range dist {
		dist[i] = maxf(d1[i], d2[i])
	}
	return nil
}

func (u *diff2D) Evaluate(pos []ms2.Vec, dist []float32, userData any) error {
	vp, err := gleval.GetVecPool(userData)
	if err != nil {
		return err
	}
	d1 := dist
	d2 := vp.Float.Acquire(len(dist))
	defer vp.Float.Release(d2)
	err = u.s1.Evaluate(pos, d1, userData)
	if err != nil {
		return err
	}
	err = u.s2.Evaluate(pos, d2, userData)
	if err != nil {
		return err
	}
	for i := range dist {
		dist[i] = maxf(d1[i], -d2[i])
	}
	return nil
}

func (u *smoothUnion2D) Evaluate(pos []ms2.Vec, dist []float32, userData any) error {
	vp, err := gleval.GetVecPool(userData)
	if err != nil {
		return err
	}
	aux := vp.Float.Acquire(len(dist))
	defer vp.Float.Release(aux)
	err = u.joined[0].Evaluate(pos, dist, userData)
	if err != nil {
		return err
	}
	k := u.k
	for _, shape := range u.joined[1:] {
		err = shape.Evaluate(pos, aux, userData)
		if err != nil {
			return err
		}
		for i := range dist {
			a, b := dist[i], aux[i]
			h := clampf(0.5+0.5*(b-a)/k, 0, 1)
			dist[i] = mixf(b, a, h) - k*h*(1-h)
		}
	}
	return nil
}
