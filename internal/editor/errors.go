package editor

import "errors"

// Editor errors.
var (
	// ErrInvalidState indicates an initial state the editor cannot show.
	ErrInvalidState = errors.New("invalid editor state")

	// ErrNoSurface indicates a missing drawing surface.
	ErrNoSurface = errors.New("no drawing surface")
)
