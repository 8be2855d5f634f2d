package glrender

import (
	"image"
	"image/color"

	"github.com/soypat/sdfpix"
)

// FrameBuffer is the intermediate image written by Stage A and read by Stage B.
// It always has exactly the resolution it was allocated with; a resize replaces
// it wholesale with a buffer of a new generation.
type FrameBuffer struct {
	img        *image.RGBA
	res        sdfpix.Resolution
	generation uint64
}

func newFrameBuffer(res sdfpix.Resolution, generation uint64) *FrameBuffer {
	return &FrameBuffer{
		img:        image.NewRGBA(image.Rect(0, 0, int(res.Width), int(res.Height))),
		res:        res,
		generation: generation,
	}
}

// Resolution returns the buffer dimensions.
func (fb *FrameBuffer) Resolution() sdfpix.Resolution { return fb.res }

// Generation identifies the allocation. It changes on every resize.
func (fb *FrameBuffer) Generation() uint64 { return fb.generation }

// Image returns the underlying image. Pixels are alpha-premultiplied.
func (fb *FrameBuffer) Image() *image.RGBA { return fb.img }

// setRow writes one row of pixels starting at column 0. Distinct rows occupy
// distinct byte ranges of Pix so concurrent writes to different rows do not race.
func (fb *FrameBuffer) setRow(y int, row []color.RGBA) {
	off := y * fb.img.Stride
	pix := fb.img.Pix[off : off+4*len(row)]
	for i, c := range row {
		pix[4*i+0] = c.R
		pix[4*i+1] = c.G
		pix[4*i+2] = c.B
		pix[4*i+3] = c.A
	}
}
