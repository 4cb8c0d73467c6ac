// cliclient is a CLI client for the Mandelbrot render server.
// It connects to the server, asks for one image and saves it as a PNG file.

package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"log"
	"os"
	"time"

	mandel "github.com/marben/bandmandel"
	"github.com/marben/bandmandel/render"
)

// main is the entry point for the CLI client.
// It runs the client logic and logs any fatal errors.
func main() {
	if err := run(); err != nil {
		log.Fatalf("run: %+v", err)
	}
}

func run() error {
	network := flag.String("net", "tcp", `transport, "tcp" or "ws"`)
	addr := flag.String("addr", "localhost:8081", "server address, or websocket URL for -net ws")
	landmark := flag.String("landmark", "", "named viewport, overrides -cx -cy -zoom")
	cx := flag.Float64("cx", mandel.FullView.CenterX, "viewport center, real part")
	cy := flag.Float64("cy", mandel.FullView.CenterY, "viewport center, imaginary part")
	zoom := flag.Float64("zoom", mandel.FullView.Zoom, "viewport zoom, smaller is closer")
	width := flag.Int("w", 1920, "image width")
	height := flag.Int("h", 1080, "image height")
	iter := flag.Int("iter", 1000, "iteration budget")
	workers := flag.Int("workers", 0, "workers to ask the server for, 0 for its default")
	out := flag.String("o", "mandel.png", "output file")
	thumb := flag.Int("thumb", 0, "scale the image down to this width")
	timeout := flag.Duration("timeout", 10*time.Second, "dial timeout")
	flag.Parse()

	vp := mandel.Viewport{CenterX: *cx, CenterY: *cy, Zoom: *zoom}
	if *landmark != "" {
		var ok bool
		if vp, ok = mandel.Landmark(*landmark); !ok {
			return fmt.Errorf("unknown landmark %q, have %v", *landmark, mandel.LandmarkNames())
		}
	}
	req := mandel.Request{
		Width:      *width,
		Height:     *height,
		Viewport:   vp,
		Iterations: *iter,
		Workers:    *workers,
	}

	// Connect to Mandelbrot server
	log.Printf("connecting to %s over %s", *addr, *network)
	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	client, err := mandel.Dial(ctx, *network, *addr)
	if err != nil {
		return err
	}
	defer client.Close()

	// Request the rendered image from the server
	start := time.Now()
	img, err := client.RenderImage(req)
	if err != nil {
		return fmt.Errorf("client.RenderImage: %w", err)
	}
	log.Printf("received %v image in %s", img.Rect.Size(), time.Since(start))

	// Save rendered file
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

	log.Printf("fully rendered file saved to %q", *out)
	return nil
}
