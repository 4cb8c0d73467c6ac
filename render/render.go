// Package render rasterizes the Mandelbrot set into RGBA buffers.
//
// The image is cut into horizontal row bands, one per worker goroutine.
// Every worker writes only to its own rows of the shared buffer, so the buffer
// needs no locking; Render returns once all workers are done.
package render

import (
	"fmt"
	"image/color"
	"math"
	"sync"

	mandel "github.com/marben/bandmandel"
)

// job is the work of a single worker: one band of rows of a shared image.
type job struct {
	pix           []byte // whole image, row-major RGBA
	width, height int
	region        mandel.Region
	budget        int
	Band

	table *Table // nil colors with Shade directly
}

func (j *job) run() {
	if j.Empty() {
		return
	}
	stride := j.width * 4
	for y := j.Start; y < j.End; y++ {
		row := j.pix[y*stride : (y+1)*stride]
		for x := range j.width {
			cr, ci := PixelAt(x, y, j.width, j.height, j.region)
			iter := Escape(cr, ci, j.budget)

			c := j.shade(iter)
			p := row[x*4 : x*4+4 : x*4+4]
			p[0] = c.R
			p[1] = c.G
			p[2] = c.B
			p[3] = 255
		}
	}
}

func (j *job) shade(iter int) color.RGBA {
	if j.table != nil {
		return j.table.Lookup(iter, j.budget)
	}
	return Shade(Fraction(iter, j.budget))
}

// Render draws the Mandelbrot set for vp into pix, a width x height RGBA
// buffer with pixel (x, y) at offset (y*width+x)*4. The rows are split
// between at most workers goroutines, never more than one per row.
// Render blocks until every row is written.
//
// All arguments are checked before any work starts; on an
// ErrInvalidArgument error pix is untouched.
func Render(pix []byte, width, height int, vp mandel.Viewport, budget, workers int, opts ...Option) error {
	if err := validate(len(pix), width, height, vp, budget, workers); err != nil {
		return err
	}

	var cfg config
	for _, o := range opts {
		o(&cfg)
	}

	// built before any worker starts, read-only afterwards
	var table *Table
	if cfg.table {
		table = NewTable()
	}

	partition := Partition
	if cfg.balanced {
		partition = BalancedPartition
	}
	// extra workers would only get empty bands
	bands := partition(height, min(workers, height))

	region := vp.Region()
	errs := make([]error, len(bands))
	var wg sync.WaitGroup
	for i, b := range bands {
		j := &job{
			pix:    pix,
			width:  width,
			height: height,
			region: region,
			budget: budget,
			Band:   b,
			table:  table,
		}
		wg.Go(func() {
			errs[i] = j.runBand(cfg.onBand)
		})
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// runBand runs the job and turns a panic into ErrWorkerFailed.
func (j *job) runBand(onBand func(Band)) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: rows [%d, %d): %v", ErrWorkerFailed, j.Start, j.End, r)
		}
	}()
	j.run()
	if onBand != nil {
		onBand(j.Band)
	}
	return nil
}

func validate(bufLen, width, height int, vp mandel.Viewport, budget, workers int) error {
	if err := checkSize(width, height); err != nil {
		return err
	}
	if budget < 1 {
		return fmt.Errorf("%w: iteration budget %d must be at least 1", ErrInvalidArgument, budget)
	}
	if workers < 1 {
		return fmt.Errorf("%w: worker count %d must be at least 1", ErrInvalidArgument, workers)
	}
	if err := vp.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	if need := width * height * 4; bufLen < need {
		return fmt.Errorf("%w: buffer holds %d bytes, %dx%d image needs %d", ErrInvalidArgument, bufLen, width, height, need)
	}
	return nil
}

func checkSize(width, height int) error {
	if width <= 0 {
		return fmt.Errorf("%w: width %d must be positive", ErrInvalidArgument, width)
	}
	if height <= 0 {
		return fmt.Errorf("%w: height %d must be positive", ErrInvalidArgument, height)
	}
	if width > math.MaxInt/4/height {
		return fmt.Errorf("%w: %dx%d image is too large", ErrInvalidArgument, width, height)
	}
	return nil
}
