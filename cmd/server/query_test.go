package main

import (
	"net/url"
	"testing"

	mandel "github.com/marben/bandmandel"
)

func TestParseRenderQuery(t *testing.T) {
	q, _ := url.ParseQuery("landmark=triple-spiral&zoom=0.5&w=64&iter=20&workers=3&thumb=16")
	req, thumb, err := parseRenderQuery(q)
	if err != nil {
		t.Fatal(err)
	}
	want := mandel.Request{
		Width:  64,
		Height: 640,
		Viewport: mandel.Viewport{
			CenterX: mandel.TripleSpiral.CenterX,
			CenterY: mandel.TripleSpiral.CenterY,
			Zoom:    0.5,
		},
		Iterations: 20,
		Workers:    3,
	}
	if req != want || thumb != 16 {
		t.Errorf("got %+v thumb %d, want %+v thumb 16", req, thumb, want)
	}
}

func TestParseRenderQueryDefaults(t *testing.T) {
	req, thumb, err := parseRenderQuery(url.Values{})
	if err != nil {
		t.Fatal(err)
	}
	if req.Viewport != mandel.FullView || thumb != 0 {
		t.Errorf("got %+v thumb %d", req, thumb)
	}
	if err := req.Validate(); err != nil {
		t.Errorf("default request invalid: %v", err)
	}
}

func TestParseRenderQueryErrors(t *testing.T) {
	for _, raw := range []string{"landmark=nope", "cx=left", "h=1.5", "thumb=x"} {
		q, _ := url.ParseQuery(raw)
		if _, _, err := parseRenderQuery(q); err == nil {
			t.Errorf("%s: no error", raw)
		}
	}
}
