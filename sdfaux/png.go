package sdfaux

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/soypat/geometry/ms2"
	"github.com/soypat/sdfpix"
	"github.com/soypat/sdfpix/gleval"
	"github.com/soypat/sdfpix/glrender"
)

// RenderPNGFile renders a 2D shape over its bounds and saves the result to a PNG file.
// The image width is sized from picHeight to preserve the shape's aspect ratio.
// A nil color conversion uses [ColorConversionInigoQuilez].
func RenderPNGFile(filename string, s sdfpix.Shape2D, picHeight int, colorConversion func(float32) color.Color) error {
	bb := s.Bounds()
	sz := bb.Size()
	if colorConversion == nil {
		colorConversion = ColorConversionInigoQuilez(ms2.Norm(sz) / 3)
	}
	pixPerUnit := float64(picHeight) / float64(sz.Y)
	picWidth := int(pixPerUnit * float64(sz.X))
	img := image.NewRGBA(image.Rect(0, 0, picWidth, picHeight))
	renderer, err := glrender.NewImageRendererSDF2(max(4096, picWidth), colorConversion)
	if err != nil {
		return err
	}
	var vp gleval.VecPool
	watch := stopwatch()
	err = renderer.Render(s, img, &vp)
	if err != nil {
		return err
	}
	glrender.Logger().Debug("rendered shape", "file", filename, "size", img.Bounds().Size(), "took", watch())
	return writePNG(filename, img, png.DefaultCompression)
}

func writePNG(filename string, img image.Image, level png.CompressionLevel) error {
	fp, err := os.Create(filename)
	if err != nil {
		return err
	}
	enc := png.Encoder{CompressionLevel: level}
	err = enc.Encode(fp, img)
	if err != nil {
		fp.Close()
		return err
	}
	return fp.Close()
}

// PNGSequence is a presenter that writes every frame to a numbered PNG file
// in a directory, optionally with a status HUD drawn on top.
type PNGSequence struct {
	dir     string
	n       int
	hud     *HUD
	status  []string
	scratch *image.RGBA
	start   time.Time
}

// NewPNGSequence creates dir if needed and returns a presenter writing frames into it.
// hud may be nil.
func NewPNGSequence(dir string, hud *HUD) (*PNGSequence, error) {
	err := os.MkdirAll(dir, 0o755)
	if err != nil {
		return nil, err
	}
	return &PNGSequence{dir: dir, hud: hud, start: time.Now()}, nil
}

// SetStatus sets the HUD lines drawn on following frames.
func (ps *PNGSequence) SetStatus(lines ...string) {
	ps.status = append(ps.status[:0], lines...)
}

// Filename returns the path of frame n.
func (ps *PNGSequence) Filename(n int) string {
	return filepath.Join(ps.dir, fmt.Sprintf("frame-%05d.png", n))
}

// Frames returns the number of frames written.
func (ps *PNGSequence) Frames() int { return ps.n }

// Present implements [glrender.Presenter]. The frame is copied before drawing
// the HUD so the pipeline's surface is never modified.
func (ps *PNGSequence) Present(img *image.RGBA) error {
	out := img
	if ps.hud != nil && len(ps.status) > 0 {
		if ps.scratch == nil || ps.scratch.Bounds() != img.Bounds() {
			ps.scratch = image.NewRGBA(img.Bounds())
		}
		copy(ps.scratch.Pix, img.Pix)
		ps.hud.Draw(ps.scratch, ps.status...)
		out = ps.scratch
	}
	filename := ps.Filename(ps.n)
	err := writePNG(filename, out, png.BestSpeed)
	if err != nil {
		return err
	}
	ps.n++
	glrender.Logger().Debug("wrote frame", "file", filename, "elapsed", time.Since(ps.start))
	return nil
}

func stopwatch() func() time.Duration {
	start := time.Now()
	return func() time.Duration {
		return time.Since(start)
	}
}
