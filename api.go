package mandel

import (
	"errors"
	"fmt"
)

//go:generate go run github.com/marben/irpc/cmd/irpc $GOFILE

// MaxSide bounds the width and height of a rendered image.
const MaxSide = 16384

// ErrBadRequest is wrapped by every Request validation failure.
var ErrBadRequest = errors.New("bad render request")

// Request describes one render.
type Request struct {
	Width      int      `json:"width"`
	Height     int      `json:"height"`
	Viewport   Viewport `json:"viewport"`
	Iterations int      `json:"iterations"`
	// Workers is a hint; zero lets the renderer pick its own default.
	Workers int `json:"workers,omitempty"`
}

// Validate checks the request before it is handed to a Renderer.
func (r Request) Validate() error {
	if r.Width <= 0 || r.Width > MaxSide {
		return fmt.Errorf("%w: width %d out of range (1..%d)", ErrBadRequest, r.Width, MaxSide)
	}
	if r.Height <= 0 || r.Height > MaxSide {
		return fmt.Errorf("%w: height %d out of range (1..%d)", ErrBadRequest, r.Height, MaxSide)
	}
	if r.Iterations <= 0 {
		return fmt.Errorf("%w: iterations %d must be positive", ErrBadRequest, r.Iterations)
	}
	if r.Workers < 0 {
		return fmt.Errorf("%w: workers %d must not be negative", ErrBadRequest, r.Workers)
	}
	if err := r.Viewport.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	return nil
}

// Renderer renders a request into a new frame.
// Its irpc service and client live in api_irpc.go.
type Renderer interface {
	Render(req Request) (Frame, error)
}
