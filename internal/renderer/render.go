package renderer

import (
	"github.com/dshills/pixelstorm/internal/picture"
	"github.com/dshills/pixelstorm/internal/renderer/backend"
)

// Diff returns the cells of next whose color differs from prev, in
// row-major order. Every cell is returned when prev is nil or has
// different dimensions.
func Diff(next, prev *picture.Picture) []picture.Point {
	w, h := next.Size()
	full := !next.SameSize(prev)

	var changed []picture.Point
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if full || prev.At(x, y) != next.At(x, y) {
				changed = append(changed, picture.Point{X: x, Y: y})
			}
		}
	}
	return changed
}

// Render updates surface to show next, given that prev is what the surface
// currently shows (nil on first render). Each changed cell is painted as a
// cellSize x cellSize square at (x*cellSize, y*cellSize).
func Render(next, prev *picture.Picture, surface backend.Surface, cellSize int) {
	if !next.SameSize(prev) {
		surface.Resize(next.Width()*cellSize, next.Height()*cellSize)
	}

	for _, pt := range Diff(next, prev) {
		surface.FillRect(pt.X*cellSize, pt.Y*cellSize, cellSize, cellSize, next.At(pt.X, pt.Y))
	}
}
