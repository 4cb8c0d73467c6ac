package render

import mandel "github.com/marben/bandmandel"

// Escape iterates z <- z*z + c starting at zero and returns the number of
// iterations performed before |z|^2 reached 4, or budget if it never did.
func Escape(cr, ci float64, budget int) int {
	var zr, zi, zr2, zi2 float64
	iter := 0
	for zr2+zi2 < 4.0 && iter < budget {
		// zi first, it needs the old zr
		zi = 2.0*zr*zi + ci
		zr = zr2 - zi2 + cr

		zr2 = zr * zr
		zi2 = zi * zi
		iter++
	}
	return iter
}

// Fraction normalizes an iteration count. Points that never escaped get 1.
func Fraction(iter, budget int) float64 {
	return float64(iter) / float64(budget)
}

// PixelAt maps pixel (x, y) of a width x height image into r.
// The divisors are width and height, so the last column and row stop one
// pixel short of Xmax and Ymax.
func PixelAt(x, y, width, height int, r mandel.Region) (cr, ci float64) {
	cr = r.Xmin + (float64(x)/float64(width))*(r.Xmax-r.Xmin)
	ci = r.Ymin + (float64(y)/float64(height))*(r.Ymax-r.Ymin)
	return cr, ci
}
