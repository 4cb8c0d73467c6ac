package mandel

import (
	"errors"
	"math"
	"slices"
	"testing"
)

func TestViewportRegion(t *testing.T) {
	r := Viewport{CenterX: -0.5, CenterY: 0, Zoom: 1}.Region()
	want := Region{Xmin: -3, Xmax: 2, Ymin: -2, Ymax: 2}
	if r != want {
		t.Errorf("Region() = %+v, want %+v", r, want)
	}

	r = Viewport{CenterX: 1, CenterY: 1, Zoom: 0.5}.Region()
	want = Region{Xmin: -0.25, Xmax: 2.25, Ymin: 0, Ymax: 2}
	if r != want {
		t.Errorf("Region() = %+v, want %+v", r, want)
	}
}

func TestViewportValidate(t *testing.T) {
	tests := []struct {
		vp Viewport
		ok bool
	}{
		{Viewport{Zoom: 1}, true},
		{Viewport{Zoom: 1e-12}, true},
		{Viewport{Zoom: 0}, false},
		{Viewport{Zoom: -2}, false},
		{Viewport{Zoom: math.Inf(1)}, false},
		{Viewport{CenterY: math.NaN(), Zoom: 1}, false},
		{Viewport{CenterX: math.Inf(-1), Zoom: 1}, false},
	}
	for _, tc := range tests {
		if err := tc.vp.Validate(); (err == nil) != tc.ok {
			t.Errorf("%+v: Validate() = %v", tc.vp, err)
		}
	}
}

func TestLandmarks(t *testing.T) {
	names := LandmarkNames()
	if !slices.IsSorted(names) || len(names) != 7 {
		t.Fatalf("LandmarkNames() = %v", names)
	}
	for _, name := range names {
		vp, ok := Landmark(name)
		if !ok {
			t.Fatalf("Landmark(%q) not found", name)
		}
		if err := vp.Validate(); err != nil {
			t.Errorf("%s: %v", name, err)
		}
		r := vp.Region()
		if !(r.Xmax > r.Xmin && r.Ymax > r.Ymin) {
			t.Errorf("%s: empty region %+v", name, r)
		}
	}

	r := SeahorseValley.Region()
	if math.Abs(r.Xmin+0.8) > 1e-12 || math.Abs(r.Xmax+0.7) > 1e-12 {
		t.Errorf("seahorse valley spans [%g, %g], want [-0.8, -0.7]", r.Xmin, r.Xmax)
	}

	if _, ok := Landmark("nowhere"); ok {
		t.Error("unknown landmark found")
	}
}

func TestRequestValidate(t *testing.T) {
	good := Request{Width: 10, Height: 10, Viewport: FullView, Iterations: 10}
	if err := good.Validate(); err != nil {
		t.Fatal(err)
	}

	bad := []func(*Request){
		func(r *Request) { r.Width = 0 },
		func(r *Request) { r.Height = MaxSide + 1 },
		func(r *Request) { r.Iterations = 0 },
		func(r *Request) { r.Workers = -1 },
		func(r *Request) { r.Viewport.Zoom = 0 },
	}
	for i, mutate := range bad {
		req := good
		mutate(&req)
		if err := req.Validate(); !errors.Is(err, ErrBadRequest) {
			t.Errorf("case %d: err = %v, want ErrBadRequest", i, err)
		}
	}
}
