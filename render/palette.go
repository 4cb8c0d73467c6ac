package render

import (
	"image/color"
	"math"
)

// TableSize is the number of entries in a precomputed palette Table.
const TableSize = 1024

// Shade maps an escape fraction t in [0, 1] to an opaque color.
//
//	r = 9   (1-t)   t^3
//	g = 15  (1-t)^2 t^2
//	b = 8.5 (1-t)^3 t
//
// each scaled by 255 and clamped to a byte.
func Shade(t float64) color.RGBA {
	u := 1 - t
	return color.RGBA{
		R: clampByte(9 * u * t * t * t * 255),
		G: clampByte(15 * u * u * t * t * 255),
		B: clampByte(8.5 * u * u * u * t * 255),
		A: 255,
	}
}

// clampByte truncates v toward zero after clamping it to [0, 255].
func clampByte(v float64) uint8 {
	switch {
	case math.IsNaN(v):
		return 0
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}

// Table is Shade sampled at TableSize evenly spaced fractions.
// It is never modified after NewTable returns.
type Table [TableSize]color.RGBA

// NewTable builds the palette table.
func NewTable() *Table {
	var tab Table
	for i := range tab {
		tab[i] = Shade(float64(i) / (TableSize - 1))
	}
	return &tab
}

// Lookup returns the table color for an iteration count.
func (tab *Table) Lookup(iter, budget int) color.RGBA {
	i := int(Fraction(iter, budget) * (TableSize - 1))
	i = min(max(i, 0), TableSize-1)
	return tab[i]
}
