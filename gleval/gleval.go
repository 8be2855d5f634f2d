// Package gleval defines the batch evaluation contract for 2D signed distance
// fields and scratch buffer pooling used while evaluating them.
package gleval

import (
	"errors"
	"fmt"

	"github.com/soypat/geometry/ms2"
)

// SDF2 implements a 2D signed distance field in vectorized form.
type SDF2 interface {
	// Evaluate evaluates the signed distance field over pos positions.
	// dist and pos must be of same length.  Resulting distances are stored
	// in dist.
	//
	// userData facilitates getting data to the evaluators for use in processing, such as [VecPool].
	Evaluate(pos []ms2.Vec, dist []float32, userData any) error
	// Bounds returns the SDF's bounding box such that all of the shape is contained within.
	Bounds() ms2.Box
}

var (
	errEmptyBuffers         = errors.New("empty buffers")
	errMismatchBufferLength = errors.New("position and distance buffer length mismatch")
)

// CheckBuffers returns an error if pos and dist are not usable as evaluation buffers.
func CheckBuffers(pos []ms2.Vec, dist []float32) error {
	if len(pos) != len(dist) {
		return errMismatchBufferLength
	} else if len(pos) == 0 {
		return errEmptyBuffers
	}
	return nil
}

// AssertSDF2 asserts the argument as a SDF2 implementation and returns the raw result.
// It provides a helpful error message when the assertion fails.
func AssertSDF2(s any) (SDF2, error) {
	if s == nil {
		return nil, errors.New("nil argument to AssertSDF2")
	}
	sdf, ok := s.(SDF2)
	if !ok {
		return nil, fmt.Errorf("%T does not implement gleval.SDF2", s)
	}
	return sdf, nil
}

// Evaluate2 evaluates a single position. It is a convenience wrapper around
// s.Evaluate for callers that only need one distance.
func Evaluate2(s SDF2, p ms2.Vec, userData any) (float32, error) {
	var pos = [1]ms2.Vec{p}
	var dist [1]float32
	err := s.Evaluate(pos[:], dist[:], userData)
	return dist[0], err
}
