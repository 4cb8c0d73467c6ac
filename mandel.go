package mandel

import (
	"fmt"
	"maps"
	"math"
	"slices"
)

// Half extents of the world rectangle at zoom 1.
const (
	HalfWidth  = 2.5
	HalfHeight = 2.0
)

// Viewport selects the part of the complex plane that is rendered.
// Zoom scales both half extents, smaller values zoom in.
type Viewport struct {
	CenterX, CenterY float64
	Zoom             float64
}

// Region within the Mandelbrot set
type Region struct {
	Xmin, Xmax float64
	Ymin, Ymax float64
}

// Region returns the world rectangle covered by vp.
func (vp Viewport) Region() Region {
	return Region{
		Xmin: vp.CenterX - HalfWidth*vp.Zoom,
		Xmax: vp.CenterX + HalfWidth*vp.Zoom,
		Ymin: vp.CenterY - HalfHeight*vp.Zoom,
		Ymax: vp.CenterY + HalfHeight*vp.Zoom,
	}
}

// Validate reports whether vp describes a non-empty finite rectangle.
func (vp Viewport) Validate() error {
	if !finite(vp.CenterX) || !finite(vp.CenterY) {
		return fmt.Errorf("center (%g, %g) is not finite", vp.CenterX, vp.CenterY)
	}
	if !finite(vp.Zoom) || vp.Zoom <= 0 {
		return fmt.Errorf("zoom %g must be positive", vp.Zoom)
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Classic regions / landmarks in the Mandelbrot set, centered so that the
// landmark's width fills the viewport.
var (
	// Full view of the set
	FullView = Viewport{CenterX: -0.5, CenterY: 0, Zoom: 1}

	// Seahorse Valley – dense filaments and repeating “seahorse” curls
	SeahorseValley = Viewport{CenterX: -0.75, CenterY: 0.1, Zoom: 0.02}

	// Elephant Valley – large bulb with trunk-like tendrils
	ElephantValley = Viewport{CenterX: -1.8, CenterY: -0.06, Zoom: 0.02}

	// Spiral Minibrot – small Mandelbrot copy with tight spiral arms
	SpiralMinibrot = Viewport{CenterX: -0.74275, CenterY: 0.13175, Zoom: 0.0003}

	// Triple Spiral – threefold symmetric spiral structure
	TripleSpiral = Viewport{CenterX: -0.7465, CenterY: 0.0965, Zoom: 0.0006}

	// Valley of the Dragon – deep, highly detailed spiral filaments
	ValleyOfTheDragon = Viewport{CenterX: -0.7375, CenterY: 0.1825, Zoom: 0.001}

	// Minibrot in a Mini-Spiral – self-similar Mandelbrot copy inside a spiral arm
	MinibrotInMiniSpiral = Viewport{CenterX: -1.73825, CenterY: -0.02275, Zoom: 0.0003}
)

var landmarks = map[string]Viewport{
	"full":                    FullView,
	"seahorse-valley":         SeahorseValley,
	"elephant-valley":         ElephantValley,
	"spiral-minibrot":         SpiralMinibrot,
	"triple-spiral":           TripleSpiral,
	"valley-of-the-dragon":    ValleyOfTheDragon,
	"minibrot-in-mini-spiral": MinibrotInMiniSpiral,
}

// Landmark returns the named viewport.
func Landmark(name string) (Viewport, bool) {
	vp, ok := landmarks[name]
	return vp, ok
}

// LandmarkNames returns the names accepted by Landmark, sorted.
func LandmarkNames() []string {
	return slices.Sorted(maps.Keys(landmarks))
}
