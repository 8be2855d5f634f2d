//go:build tinygo || !cgo

package sdfaux

import (
	"errors"
	"image"

	"github.com/soypat/sdfpix"
)

var errNoCgo = errors.New("require cgo for window rendering")

// WindowConfig configures a [Window].
type WindowConfig struct {
	Width, Height int
	Title         string
}

// Window is unavailable without cgo.
type Window struct{}

// NewWindow always fails without cgo.
func NewWindow(cfg WindowConfig) (*Window, error) {
	return nil, errNoCgo
}

func (w *Window) Present(img *image.RGBA) error { return errNoCgo }
func (w *Window) Resolution() sdfpix.Resolution { return sdfpix.Resolution{} }
func (w *Window) Elapsed() float32              { return 0 }
func (w *Window) ShouldClose() bool             { return true }
func (w *Window) PollEvents()                   {}
func (w *Window) WaitEvents()                   {}
func (w *Window) Close()                        {}
