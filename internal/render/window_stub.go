//go:build !sdl

package render

import (
	"errors"
	"image"
)

// Window is unavailable without the sdl build tag.
type Window struct{}

// OpenWindow always fails in builds without SDL.
func OpenWindow(title string, width, height int) (*Window, error) {
	return nil, errors.New("preview window not enabled; rebuild with -tags sdl")
}

// Present is a no-op.
func (w *Window) Present(img *image.RGBA) error { return ErrWindowClosed }

// Close is a no-op.
func (w *Window) Close() error { return nil }

// SupportsWindow reports whether the binary was built with SDL.
func SupportsWindow() bool { return false }
