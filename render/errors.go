package render

import "errors"

var (
	// ErrInvalidArgument is wrapped by all argument validation errors.
	// Nothing has been written to the buffer when it is returned.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrWorkerFailed is wrapped when a worker aborted; the whole render failed.
	ErrWorkerFailed = errors.New("render worker failed")
)
