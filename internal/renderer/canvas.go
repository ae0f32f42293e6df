package renderer

import (
	"github.com/dshills/pixelstorm/internal/picture"
	"github.com/dshills/pixelstorm/internal/renderer/backend"
)

// Canvas is the view that keeps a surface in sync with the current picture.
type Canvas struct {
	surface  backend.Surface
	cellSize int
	picture  *picture.Picture
	renders  int
}

// NewCanvas creates a canvas drawing cells of cellSize surface pixels.
// Nothing is drawn until the first SyncState.
func NewCanvas(surface backend.Surface, cellSize int) *Canvas {
	if cellSize < 1 {
		cellSize = 1
	}
	return &Canvas{surface: surface, cellSize: cellSize}
}

// SyncState renders p unless it is the picture already shown.
// Pictures are immutable, so reference equality is enough.
func (c *Canvas) SyncState(p *picture.Picture) {
	if p == nil || p == c.picture {
		return
	}
	Render(p, c.picture, c.surface, c.cellSize)
	c.picture = p
	c.renders++
}

// Picture returns the picture currently shown.
func (c *Canvas) Picture() *picture.Picture {
	return c.picture
}

// CellSize returns the size of one cell in surface pixels.
func (c *Canvas) CellSize() int {
	return c.cellSize
}

// Bounds returns the grid dimensions of the shown picture, or zero before
// the first render.
func (c *Canvas) Bounds() (width, height int) {
	if c.picture == nil {
		return 0, 0
	}
	return c.picture.Size()
}

// PixelSize returns the surface area covered by the shown picture.
func (c *Canvas) PixelSize() (width, height int) {
	w, h := c.Bounds()
	return w * c.cellSize, h * c.cellSize
}

// Renders returns how many times the canvas has rendered.
func (c *Canvas) Renders() int {
	return c.renders
}
