package sdfpix

import "strconv"

// Resolution is an output size in pixels.
type Resolution struct {
	Width, Height uint32
}

// IsZero reports whether either dimension is zero.
func (r Resolution) IsZero() bool {
	return r.Width == 0 || r.Height == 0
}

// Pixels returns Width*Height.
func (r Resolution) Pixels() int {
	return int(r.Width) * int(r.Height)
}

func (r Resolution) String() string {
	return strconv.FormatUint(uint64(r.Width), 10) + "x" + strconv.FormatUint(uint64(r.Height), 10)
}

// FrameContext holds the uniform inputs of a single frame. It is supplied by the
// host once per frame and is read-only to everything that shades pixels.
type FrameContext struct {
	// Elapsed is the monotonic time in seconds since rendering started.
	Elapsed float32
	// Resolution is the size of the image the frame must produce.
	Resolution Resolution
}
