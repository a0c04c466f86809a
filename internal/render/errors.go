package render

import "errors"

// ErrWindowClosed is returned by Window.Present after the user closes it.
var ErrWindowClosed = errors.New("preview window closed")
