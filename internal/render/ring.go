package render

import (
	"math"
	"strings"
)

// Ring glyphs.
const (
	ringDone = '●'
	ringLeft = '○'
)

// Ring draws a circle of radius r (in rows) whose dots fill clockwise from
// twelve o'clock as fraction goes from 0 to 1. Terminal cells are about
// twice as tall as wide, so columns are stretched by two. The returned
// lines all have the same width.
func Ring(fraction float64, r int) []string {
	if r < 1 {
		r = 1
	}
	if math.IsNaN(fraction) || math.IsInf(fraction, 0) {
		fraction = 0
	}
	fraction = math.Max(0, math.Min(1, fraction))

	h := 2*r + 1
	w := 4*r + 1
	grid := make([][]rune, h)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", w))
	}

	// Enough points that neighbouring cells are not skipped.
	steps := 8 * r * 4
	for i := 0; i < steps; i++ {
		share := float64(i) / float64(steps)
		theta := 2 * math.Pi * share
		x := int(math.Round(float64(2*r) + 2*float64(r)*math.Sin(theta)))
		y := int(math.Round(float64(r) - float64(r)*math.Cos(theta)))

		ch := ringLeft
		if share < fraction || fraction >= 1 {
			ch = ringDone
		}
		// First writer wins so the filled arc is not overwritten by the
		// tail of the sweep landing on the same cell.
		if grid[y][x] == ' ' {
			grid[y][x] = ch
		}
	}

	out := make([]string, h)
	for i, row := range grid {
		out[i] = string(row)
	}
	return out
}
