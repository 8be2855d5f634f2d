// Package sdfpix implements the distance-field math used to synthesize
// procedural images: distance metrics, 2D signed distance primitives,
// combinators, hashing/noise, cell partitioning and distance-driven effects.
//
// All functions in this package that take points and return distances are pure
// and safe to call concurrently from any number of goroutines.
package sdfpix

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
)

const (
	largenum = 1e20
	// oneMinusUlp is the largest float32 strictly less than 1.
	oneMinusUlp = 0.99999994
)

// Flags modify the behaviour of a [Builder].
type Flags uint64

const (
	// FlagNoDimensionPanic makes the Builder accumulate shape argument errors
	// instead of panicking. Errors are retrieved with [Builder.Err].
	FlagNoDimensionPanic Flags = 1 << iota
)

// Builder validates shape arguments at construction time and provides error handling
// strategies with panics or error accumulation. Shapes built by a Builder are plain values;
// the Builder is never consulted during per-pixel evaluation.
type Builder struct {
	flags     Flags
	accumErrs []error
}

// SetFlags sets the Builder's flags.
func (bld *Builder) SetFlags(flags Flags) {
	bld.flags = flags
}

// Flags returns the Builder's flags.
func (bld *Builder) Flags() Flags {
	return bld.flags
}

// Err returns all accumulated shape errors joined together, or nil.
func (bld *Builder) Err() error {
	if len(bld.accumErrs) == 0 {
		return nil
	}
	return errors.Join(bld.accumErrs...)
}

// ClearErrors discards accumulated errors.
func (bld *Builder) ClearErrors() {
	bld.accumErrs = bld.accumErrs[:0]
}

func (bld *Builder) shapeErrorf(msg string, args ...any) {
	if bld.flags&FlagNoDimensionPanic == 0 {
		panic(fmt.Sprintf(msg, args...))
	}
	bld.accumErrs = append(bld.accumErrs, fmt.Errorf(msg, args...))
}

func (*Builder) nilsdf(msg string) {
	panic("nil SDF argument: " + msg)
}

func maxf(a, b float32) float32 {
	return math32.Max(a, b)
}

func clampf(v, Min, Max float32) float32 {
	if v < Min {
		return Min
	} else if v > Max {
		return Max
	}
	return v
}

func mixf(x, y, a float32) float32 {
	return x*(1-a) + y*a
}

func isBad(f float32) bool {
	return math32.IsNaN(f) || math32.IsInf(f, 0)
}
