//go:build !tinygo && cgo

package sdfaux

import (
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/soypat/glgl/v4.6-core/glgl"
	"github.com/soypat/sdfpix"
	"github.com/soypat/sdfpix/glrender"
)

const quadVertexShader = `#version 460
in vec2 aPos;
out vec2 vTexCoord;
void main() {
    // Image row 0 is the top of the screen.
    vTexCoord = vec2(aPos.x * 0.5 + 0.5, 0.5 - aPos.y * 0.5);
    gl_Position = vec4(aPos, 0.0, 1.0);
}
` + "\x00"

const quadFragmentShader = `#version 460
in vec2 vTexCoord;
out vec4 fragColor;
uniform sampler2D uFrame;
void main() {
    fragColor = texture(uFrame, vTexCoord);
}
` + "\x00"

// WindowConfig configures a [Window].
type WindowConfig struct {
	Width, Height int
	Title         string
}

// Window is a GLFW window that presents frames as a texture on a full-screen quad.
// It must be created, used and closed from the main OS thread.
type Window struct {
	window     *glfw.Window
	prog       glgl.Program
	vao, vbo   uint32
	tex        uint32
	texW, texH int
}

var _ glrender.Presenter = (*Window)(nil)

// NewWindow opens a resizable window with an OpenGL 4.6 core context.
func NewWindow(cfg WindowConfig) (*Window, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, errors.New("invalid window size")
	}
	if cfg.Title == "" {
		cfg.Title = "sdfpix"
	}
	window, err := startGLFW(cfg.Width, cfg.Height, cfg.Title)
	if err != nil {
		return nil, err
	}
	prog, err := glgl.CompileProgram(glgl.ShaderSource{
		Vertex:   quadVertexShader,
		Fragment: quadFragmentShader,
	})
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("compiling quad program: %w", err)
	}
	prog.Bind()
	w := &Window{window: window, prog: prog}

	// Two triangles covering clip space.
	gl.GenVertexArrays(1, &w.vao)
	gl.BindVertexArray(w.vao)
	gl.GenBuffers(1, &w.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, w.vbo)
	vertices := []float32{
		-1.0, -1.0,
		1.0, -1.0,
		-1.0, 1.0,
		-1.0, 1.0,
		1.0, -1.0,
		1.0, 1.0,
	}
	gl.BufferData(gl.ARRAY_BUFFER, 4*len(vertices), gl.Ptr(vertices), gl.STATIC_DRAW)
	posAttrib, err := prog.AttribLocation("aPos\x00")
	if err != nil {
		w.Close()
		return nil, err
	}
	gl.EnableVertexAttribArray(posAttrib)
	gl.VertexAttribPointer(posAttrib, 2, gl.FLOAT, false, 0, gl.PtrOffset(0))
	frameUniform, err := prog.UniformLocation("uFrame\x00")
	if err != nil {
		w.Close()
		return nil, err
	}
	gl.Uniform1i(frameUniform, 0)

	// Frames arrive at the framebuffer size; scaling is done by the pipeline.
	var filter int32 = gl.NEAREST
	gl.GenTextures(1, &w.tex)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, w.tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, filter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	glrender.Logger().Info("window opened", slog.Int("width", cfg.Width), slog.Int("height", cfg.Height),
		slog.String("gl", gl.GoStr(gl.GetString(gl.VERSION))))
	return w, nil
}

// Present uploads img to the window texture, draws it and swaps buffers.
// The texture is reallocated when the frame size changes.
func (w *Window) Present(img *image.RGBA) error {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if img.Stride != 4*width {
		return errors.New("window requires a tightly packed image")
	}
	gl.BindTexture(gl.TEXTURE_2D, w.tex)
	if width != w.texW || height != w.texH {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
		w.texW, w.texH = width, height
	} else {
		gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	}
	fbw, fbh := w.window.GetFramebufferSize()
	gl.Viewport(0, 0, int32(fbw), int32(fbh))
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	w.prog.Bind()
	gl.BindVertexArray(w.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	w.window.SwapBuffers()
	glfw.PollEvents()
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("gl error 0x%x", code)
	}
	return nil
}

// Resolution returns the framebuffer size, which may differ from the window
// size on high density displays.
func (w *Window) Resolution() sdfpix.Resolution {
	fbw, fbh := w.window.GetFramebufferSize()
	return sdfpix.Resolution{Width: uint32(max(fbw, 0)), Height: uint32(max(fbh, 0))}
}

// Elapsed returns seconds since the window system was initialized.
func (w *Window) Elapsed() float32 {
	return float32(glfw.GetTime())
}

// ShouldClose reports whether the user asked to close the window.
func (w *Window) ShouldClose() bool {
	return w.window.ShouldClose()
}

// PollEvents processes pending window events without presenting.
func (w *Window) PollEvents() {
	glfw.PollEvents()
}

// WaitEvents blocks until a window event arrives, for idling while minimized.
func (w *Window) WaitEvents() {
	glfw.WaitEvents()
}

// Close releases GL resources, destroys the window and terminates GLFW.
func (w *Window) Close() {
	if w.window == nil {
		return
	}
	gl.DeleteTextures(1, &w.tex)
	gl.DeleteBuffers(1, &w.vbo)
	gl.DeleteVertexArrays(1, &w.vao)
	w.prog.Delete()
	w.window.Destroy()
	w.window = nil
	glfw.Terminate()
}

func startGLFW(width, height int, title string) (*glfw.Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("initializing GLFW: %w", err)
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 6)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	window, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("creating GLFW window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)
	if err := gl.Init(); err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("initializing OpenGL: %w", err)
	}
	return window, nil
}
