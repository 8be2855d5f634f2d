package glrender

import (
	"errors"
	"fmt"
	"image"

	"github.com/soypat/sdfpix"
	"golang.org/x/image/draw"
)

var errBindingMismatch = errors.New("sampler binding does not match frame buffer")

// Filter selects how Stage B samples the frame buffer.
type Filter uint8

const (
	FilterNearest Filter = iota
	FilterBilinear
)

var filterNames = [...]string{
	FilterNearest:  "nearest",
	FilterBilinear: "bilinear",
}

func (f Filter) String() string {
	if int(f) < len(filterNames) {
		return filterNames[f]
	}
	return fmt.Sprintf("Filter(%d)", f)
}

// interpolator returns the x/image/draw scaler for the filter.
func (f Filter) interpolator() draw.Interpolator {
	if f == FilterBilinear {
		return draw.BiLinear
	}
	return draw.NearestNeighbor
}

// MarshalText implements [encoding.TextMarshaler].
func (f Filter) MarshalText() ([]byte, error) {
	if int(f) >= len(filterNames) {
		return nil, fmt.Errorf("invalid filter %d", f)
	}
	return []byte(filterNames[f]), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler] so filters can be set from configuration.
func (f *Filter) UnmarshalText(text []byte) error {
	for i, name := range filterNames {
		if name == string(text) {
			*f = Filter(i)
			return nil
		}
	}
	return fmt.Errorf("unknown filter %q", text)
}

// binding ties a surface image and its scaler to one frame buffer generation.
// It is rebuilt together with the buffer so a frame can never sample a buffer
// it was not sized for.
type binding struct {
	generation uint64
	src        image.Rectangle
	surface    *image.RGBA
	scaler     draw.Interpolator
}

func newBinding(fb *FrameBuffer, surfaceSize sdfpix.Resolution, filter Filter) *binding {
	return &binding{
		generation: fb.generation,
		src:        fb.img.Bounds(),
		surface:    image.NewRGBA(image.Rect(0, 0, int(surfaceSize.Width), int(surfaceSize.Height))),
		scaler:     filter.interpolator(),
	}
}

// sample copies the frame buffer into the surface image through the scaler.
func (b *binding) sample(fb *FrameBuffer) error {
	if fb.generation != b.generation || fb.img.Bounds() != b.src {
		return fmt.Errorf("%w: binding gen %d, buffer gen %d", errBindingMismatch, b.generation, fb.generation)
	}
	b.scaler.Scale(b.surface, b.surface.Bounds(), fb.img, b.src, draw.Src, nil)
	return nil
}
