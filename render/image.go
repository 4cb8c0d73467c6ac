package render

import (
	"image"
	"runtime"

	"golang.org/x/image/draw"

	mandel "github.com/marben/bandmandel"
)

// RenderImage renders into a newly allocated image.
func RenderImage(width, height int, vp mandel.Viewport, budget, workers int, opts ...Option) (*image.RGBA, error) {
	if err := checkSize(width, height); err != nil {
		return nil, err
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if err := Render(img.Pix, width, height, vp, budget, workers, opts...); err != nil {
		return nil, err
	}
	return img, nil
}

// Thumbnail scales img down to maxWidth pixels wide, keeping the aspect
// ratio. Images that are already narrow enough are returned as is.
func Thumbnail(img *image.RGBA, maxWidth int) *image.RGBA {
	b := img.Bounds()
	if maxWidth <= 0 || b.Dx() <= maxWidth {
		return img
	}
	h := max(1, b.Dy()*maxWidth/b.Dx())
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Local renders requests on this machine.
type Local struct {
	// Workers is used when a request does not ask for a worker count.
	// Zero means one worker per CPU.
	Workers int
	Options []Option
}

// Render implements mandel.Renderer.
func (l Local) Render(req mandel.Request) (mandel.Frame, error) {
	img, err := l.Image(req)
	if err != nil {
		return mandel.Frame{}, err
	}
	return mandel.NewFrame(img), nil
}

// Image renders req without compressing it.
func (l Local) Image(req mandel.Request) (*image.RGBA, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	workers := req.Workers
	if workers == 0 {
		workers = l.Workers
	}
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	return RenderImage(req.Width, req.Height, req.Viewport, req.Iterations, workers, l.Options...)
}

var _ mandel.Renderer = Local{}
