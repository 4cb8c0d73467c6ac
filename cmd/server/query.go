package main

import (
	"fmt"
	"net/url"
	"strconv"

	mandel "github.com/marben/bandmandel"
)

// parseRenderQuery builds a request from the /render.png query.
// A landmark selects the viewport, cx, cy and zoom then override its fields.
func parseRenderQuery(q url.Values) (req mandel.Request, thumb int, err error) {
	req = mandel.Request{
		Width:      800,
		Height:     640,
		Viewport:   mandel.FullView,
		Iterations: 256,
	}

	if name := q.Get("landmark"); name != "" {
		vp, ok := mandel.Landmark(name)
		if !ok {
			return req, 0, fmt.Errorf("unknown landmark %q, have %v", name, mandel.LandmarkNames())
		}
		req.Viewport = vp
	}

	floats := []struct {
		key string
		dst *float64
	}{
		{"cx", &req.Viewport.CenterX},
		{"cy", &req.Viewport.CenterY},
		{"zoom", &req.Viewport.Zoom},
	}
	for _, f := range floats {
		if s := q.Get(f.key); s != "" {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return req, 0, fmt.Errorf("%s: %w", f.key, err)
			}
			*f.dst = v
		}
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"w", &req.Width},
		{"h", &req.Height},
		{"iter", &req.Iterations},
		{"workers", &req.Workers},
		{"thumb", &thumb},
	}
	for _, i := range ints {
		if s := q.Get(i.key); s != "" {
			v, err := strconv.Atoi(s)
			if err != nil {
				return req, 0, fmt.Errorf("%s: %w", i.key, err)
			}
			*i.dst = v
		}
	}
	return req, thumb, nil
}
