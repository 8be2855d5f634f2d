package glrender

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"sync"
	"time"

	"github.com/soypat/sdfpix"
	"github.com/soypat/sdfpix/internal/parallel"
)

var (
	// ErrClosed is returned by operations on a closed [Pipeline].
	ErrClosed         = errors.New("glrender: pipeline closed")
	errZeroResolution = errors.New("zero resolution")
)

// PixelShader computes the color of a single output pixel. x and y are image
// coordinates with the origin at the top-left pixel. ShadePixel is called
// concurrently from many goroutines and must only read shared state.
type PixelShader interface {
	ShadePixel(x, y int, fc sdfpix.FrameContext) sdfpix.Color
}

// PixelShaderFunc adapts a function to [PixelShader].
type PixelShaderFunc func(x, y int, fc sdfpix.FrameContext) sdfpix.Color

func (f PixelShaderFunc) ShadePixel(x, y int, fc sdfpix.FrameContext) sdfpix.Color {
	return f(x, y, fc)
}

// Presenter consumes finished frames. The image has exactly the surface size
// and stays valid until Present returns; it is overwritten by the
// next frame, so presenters that keep it must copy it.
type Presenter interface {
	Present(img *image.RGBA) error
}

// PresenterFunc adapts a function to [Presenter].
type PresenterFunc func(img *image.RGBA) error

func (f PresenterFunc) Present(img *image.RGBA) error { return f(img) }

// PipelineConfig configures a [Pipeline].
type PipelineConfig struct {
	// Resolution is the initial output size. Must be non-zero.
	Resolution sdfpix.Resolution
	// Workers is the number of Stage A goroutines. Zero uses GOMAXPROCS.
	Workers int
	// BandsPerWorker is how many row bands each worker receives per frame on
	// average. Zero means 4. More bands balance uneven rows at higher dispatch cost.
	BandsPerWorker int
	// Surface is the size of the image handed to the Presenter. Stage B scales
	// the frame buffer to it with Filter. Zero makes the surface track Resolution.
	Surface sdfpix.Resolution
	// Filter is the Stage B sampling filter.
	Filter Filter
}

// Stats is a snapshot of pipeline counters.
type Stats struct {
	Frames     uint64
	Resizes    uint64
	Resolution sdfpix.Resolution
	Surface    sdfpix.Resolution
	// Durations of the last frame's stages.
	StageA, StageB time.Duration
}

// Pipeline renders frames in two stages. Stage A shades every pixel of the
// frame buffer in parallel row bands and waits for all of them. Stage B samples
// the buffer into a surface image and hands it to the [Presenter].
//
// Frames and resizes are serialized by a single lock: a resize requested while
// a frame is in flight takes effect after that frame has been presented, and
// Stage A of one frame never overlaps Stage B of the previous one.
type Pipeline struct {
	mu        sync.Mutex
	shader    PixelShader
	presenter Presenter
	cfg       PipelineConfig
	pool      *parallel.WorkerPool
	fb        *FrameBuffer
	bind      *binding
	gen       uint64
	rows      [][]color.RGBA // Per band scratch rows.
	stats     Stats
	closed    bool
}

// NewPipeline allocates the frame buffer and sampler binding for cfg.Resolution and starts the workers.
func NewPipeline(shader PixelShader, presenter Presenter, cfg PipelineConfig) (*Pipeline, error) {
	if shader == nil || presenter == nil {
		return nil, errors.New("nil shader or presenter")
	} else if cfg.Resolution.IsZero() {
		return nil, fmt.Errorf("initial resolution %s: %w", cfg.Resolution, errZeroResolution)
	} else if !validSurface(cfg.Surface) {
		return nil, fmt.Errorf("surface %s: %w", cfg.Surface, errZeroResolution)
	} else if cfg.BandsPerWorker < 0 || cfg.Workers < 0 {
		return nil, errors.New("negative worker or band count")
	}
	if cfg.BandsPerWorker == 0 {
		cfg.BandsPerWorker = 4
	}
	p := &Pipeline{
		shader:    shader,
		presenter: presenter,
		cfg:       cfg,
		pool:      parallel.NewWorkerPool(cfg.Workers),
	}
	p.rebuild(cfg.Resolution)
	Logger().Info("pipeline started", slog.String("resolution", cfg.Resolution.String()),
		slog.String("surface", p.stats.Surface.String()), slog.Int("workers", p.pool.Workers()),
		slog.String("filter", cfg.Filter.String()))
	return p, nil
}

// rebuild discards the frame buffer and binding and allocates new ones sized to res.
// Called with mu held.
func (p *Pipeline) rebuild(res sdfpix.Resolution) {
	p.gen++
	p.fb = newFrameBuffer(res, p.gen)
	p.rebind()
	nbands := p.pool.Workers() * p.cfg.BandsPerWorker
	if len(p.rows) != nbands {
		p.rows = make([][]color.RGBA, nbands)
	}
	for i := range p.rows {
		p.rows[i] = make([]color.RGBA, res.Width)
	}
	p.stats.Resolution = res
}

// validSurface reports whether res is either fully zero or fully non-zero.
func validSurface(res sdfpix.Resolution) bool {
	return (res.Width == 0) == (res.Height == 0)
}

// rebind allocates a new sampler binding for the current frame buffer. Called with mu held.
func (p *Pipeline) rebind() {
	surface := p.cfg.Surface
	if surface.IsZero() {
		surface = p.fb.res
	}
	p.bind = newBinding(p.fb, surface, p.cfg.Filter)
	p.stats.Surface = surface
}

// SetSurface changes the size of presented images without touching the frame
// buffer, so the render resolution stays fixed while the output is scaled.
// A zero res makes the surface track the render resolution again.
func (p *Pipeline) SetSurface(res sdfpix.Resolution) error {
	if !validSurface(res) {
		return fmt.Errorf("surface %s: %w", res, errZeroResolution)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	if res == p.cfg.Surface {
		return nil
	}
	p.cfg.Surface = res
	p.rebind()
	Logger().Info("surface resized", slog.String("surface", p.stats.Surface.String()),
		slog.String("resolution", p.fb.res.String()))
	return nil
}

// Resize replaces the frame buffer and sampler binding with ones sized to res.
// It waits for an in-flight frame to be presented first. Zero dimensions are rejected.
func (p *Pipeline) Resize(res sdfpix.Resolution) error {
	if res.IsZero() {
		return fmt.Errorf("resize to %s: %w", res, errZeroResolution)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	if res == p.fb.res {
		return nil
	}
	p.resizeLocked(res)
	return nil
}

func (p *Pipeline) resizeLocked(res sdfpix.Resolution) {
	old := p.fb.res
	p.rebuild(res)
	p.stats.Resizes++
	Logger().Info("pipeline resized", slog.String("from", old.String()), slog.String("to", res.String()),
		slog.Uint64("generation", p.gen))
}

// RenderFrame renders and presents one frame. If fc.Resolution is non-zero and
// differs from the current resolution the pipeline is rebuilt before Stage A.
// A zero fc.Resolution renders at the current resolution; shaders always see
// the effective resolution in fc.
func (p *Pipeline) RenderFrame(fc sdfpix.FrameContext) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	if fc.Resolution.IsZero() {
		fc.Resolution = p.fb.res
	} else if fc.Resolution != p.fb.res {
		p.resizeLocked(fc.Resolution)
	}

	start := time.Now()
	err := p.stageA(fc)
	if err != nil {
		return fmt.Errorf("stage A: %w", err)
	}
	mid := time.Now()
	err = p.bind.sample(p.fb)
	if err != nil {
		return fmt.Errorf("stage B: %w", err)
	}
	err = p.presenter.Present(p.bind.surface)
	end := time.Now()
	p.stats.StageA = mid.Sub(start)
	p.stats.StageB = end.Sub(mid)
	if err != nil {
		Logger().Warn("present failed", slog.String("err", err.Error()))
		return fmt.Errorf("present: %w", err)
	}
	p.stats.Frames++
	Logger().Debug("frame", slog.Uint64("n", p.stats.Frames), slog.Duration("stageA", p.stats.StageA),
		slog.Duration("stageB", p.stats.StageB))
	return nil
}

// stageA shades every pixel. Each band owns a disjoint range of rows and its
// own scratch row, so bands share no mutable state. Run returns after all bands finish.
func (p *Pipeline) stageA(fc sdfpix.FrameContext) error {
	fb := p.fb
	width := int(fb.res.Width)
	bands := parallel.Bands(int(fb.res.Height), len(p.rows))
	return p.pool.Run(len(bands), func(i int) {
		row := p.rows[i]
		for y := bands[i][0]; y < bands[i][1]; y++ {
			for x := 0; x < width; x++ {
				row[x] = p.shader.ShadePixel(x, y, fc).RGBA8()
			}
			fb.setRow(y, row)
		}
	})
}

// Stats returns a snapshot of the pipeline counters.
func (p *Pipeline) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}

// Resolution returns the current output resolution.
func (p *Pipeline) Resolution() sdfpix.Resolution {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fb.res
}

// Close waits for an in-flight frame and stops the workers. Subsequent frames
// and resizes return [ErrClosed]. Close is safe to call multiple times.
func (p *Pipeline) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	p.pool.Close()
	Logger().Info("pipeline closed", slog.Uint64("frames", p.stats.Frames))
}
