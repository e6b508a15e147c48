package core

import (
	"errors"
)

var (
	// ErrShaderNotFound is returned when a shader program is looked up by a
	// name that was never compiled, or after the cache has been shut down.
	ErrShaderNotFound = errors.New("shader program not found")
	// ErrInvalidDimensions is returned for zero-sized viewports or framebuffers.
	ErrInvalidDimensions = errors.New("invalid dimensions")
	// ErrWatcherClosed is returned when a watcher is used after Close.
	ErrWatcherClosed = errors.New("shader watcher already closed")
)
