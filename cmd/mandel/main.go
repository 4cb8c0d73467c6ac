// Command mandel renders the Mandelbrot set on this machine and saves it as
// a PNG file.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"log"
	"os"
	"runtime"
	"time"

	mandel "github.com/marben/bandmandel"
	"github.com/marben/bandmandel/render"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("run: %+v", err)
	}
}

func run() error {
	landmark := flag.String("landmark", "", "named viewport, overrides -cx -cy -zoom")
	cx := flag.Float64("cx", mandel.FullView.CenterX, "viewport center, real part")
	cy := flag.Float64("cy", mandel.FullView.CenterY, "viewport center, imaginary part")
	zoom := flag.Float64("zoom", mandel.FullView.Zoom, "viewport zoom, smaller is closer")
	width := flag.Int("w", 1920, "image width")
	height := flag.Int("h", 1080, "image height")
	iter := flag.Int("iter", 1000, "iteration budget")
	workers := flag.Int("workers", runtime.NumCPU(), "number of row bands rendered in parallel")
	table := flag.Bool("table", false, "color through the 1024 entry palette table")
	balanced := flag.Bool("balanced", false, "spread remainder rows over the first bands")
	verbose := flag.Bool("v", false, "log every finished band")
	out := flag.String("o", "mandel.png", "output file")
	thumb := flag.Int("thumb", 0, "scale the image down to this width")
	flag.Parse()

	vp := mandel.Viewport{CenterX: *cx, CenterY: *cy, Zoom: *zoom}
	if *landmark != "" {
		var ok bool
		if vp, ok = mandel.Landmark(*landmark); !ok {
			return fmt.Errorf("unknown landmark %q, have %v", *landmark, mandel.LandmarkNames())
		}
	}

	var opts []render.Option
	if *table {
		opts = append(opts, render.WithColorTable())
	}
	if *balanced {
		opts = append(opts, render.WithBalancedBands())
	}
	if *verbose {
		opts = append(opts, render.WithBandHook(func(b render.Band) {
			log.Printf("band [%d, %d) done", b.Start, b.End)
		}))
	}

	start := time.Now()
	img, err := render.RenderImage(*width, *height, vp, *iter, *workers, opts...)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	log.Printf("rendered %dx%d with %d workers in %s", *width, *height, *workers, time.Since(start))

	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, render.Thumbnail(img, *thumb)); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	log.Printf("saved %q", *out)
	return nil
}
