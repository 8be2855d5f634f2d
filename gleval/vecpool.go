package gleval

import (
	"errors"
	"fmt"

	"github.com/soypat/geometry/ms2"
)

// VecPool holds reusable scratch buffers for evaluators that need auxiliary storage,
// such as combinators that evaluate more than one child.
// A VecPool is not safe for concurrent use; give each goroutine its own.
type VecPool struct {
	V2    bufPool[ms2.Vec]
	Float bufPool[float32]
}

// GetVecPool extracts a [VecPool] from userData. userData may be a *VecPool
// or implement interface{ VecPool() *VecPool }.
func GetVecPool(userData any) (*VecPool, error) {
	switch v := userData.(type) {
	case *VecPool:
		if v == nil {
			return nil, errors.New("nil *VecPool in userData")
		}
		return v, nil
	case interface{ VecPool() *VecPool }:
		vp := v.VecPool()
		if vp == nil {
			return nil, fmt.Errorf("%T returned nil VecPool", userData)
		}
		return vp, nil
	}
	return nil, fmt.Errorf("want userData type *gleval.VecPool for CPU evaluations, got %T", userData)
}

// AssertAllReleased returns an error if any buffer acquired from the pool was not released.
func (vp *VecPool) AssertAllReleased() error {
	if err := vp.V2.assertAllReleased(); err != nil {
		return fmt.Errorf("V2: %w", err)
	}
	if err := vp.Float.assertAllReleased(); err != nil {
		return fmt.Errorf("Float: %w", err)
	}
	return nil
}

type bufPool[T any] struct {
	instances [][]T
	acquired  []bool
}

// Acquire returns a buffer of exactly length elements. Contents are unspecified.
func (bp *bufPool[T]) Acquire(length int) []T {
	for i, inUse := range bp.acquired {
		if !inUse && cap(bp.instances[i]) >= length {
			bp.acquired[i] = true
			return bp.instances[i][:length]
		}
	}
	newBuf := make([]T, length)
	bp.instances = append(bp.instances, newBuf)
	bp.acquired = append(bp.acquired, true)
	return newBuf
}

// Release returns a buffer obtained with Acquire back to the pool.
func (bp *bufPool[T]) Release(buf []T) error {
	for i, instance := range bp.instances {
		if cap(instance) > 0 && cap(buf) > 0 && &instance[:1][0] == &buf[:1][0] {
			if !bp.acquired[i] {
				return errors.New("release of unacquired buffer")
			}
			bp.acquired[i] = false
			return nil
		}
	}
	return errors.New("release of buffer not in pool")
}

func (bp *bufPool[T]) assertAllReleased() error {
	for _, inUse := range bp.acquired {
		if inUse {
			return errors.New("buffer not released")
		}
	}
	return nil
}
