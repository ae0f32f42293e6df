package picture

import "fmt"

// Color is a color value as written in configuration, such as "#f0f0f0" or
// "white". Cells are compared by value; resolving a Color to RGB is left to
// the surface that paints it.
type Color string

// Point identifies a cell by its grid coordinates.
type Point struct {
	X int
	Y int
}

// Equal returns true if two points name the same cell.
func (p Point) Equal(other Point) bool {
	return p.X == other.X && p.Y == other.Y
}

// Edit replaces the color of a single cell.
type Edit struct {
	Point
	Color Color
}

// Picture is an immutable grid of colored cells.
type Picture struct {
	width  int
	height int
	cells  []Color
}

// Empty creates a width x height picture with every cell set to color.
// Every cell of a picture holds a non-empty color, so the color must not
// be "".
func Empty(width, height int, color Color) (*Picture, error) {
	if width <= 0 || height <= 0 {
		return nil, &DimensionError{Width: width, Height: height}
	}
	if color == "" {
		return nil, ErrEmptyColor
	}

	cells := make([]Color, width*height)
	for i := range cells {
		cells[i] = color
	}

	return &Picture{width: width, height: height, cells: cells}, nil
}

// Width returns the number of columns.
func (p *Picture) Width() int { return p.width }

// Height returns the number of rows.
func (p *Picture) Height() int { return p.height }

// Size returns the width and height.
func (p *Picture) Size() (width, height int) {
	return p.width, p.height
}

// SameSize returns true if both pictures have the same dimensions.
func (p *Picture) SameSize(other *Picture) bool {
	return other != nil && p.width == other.width && p.height == other.height
}

// InBounds returns true if pt lies inside the grid.
func (p *Picture) InBounds(pt Point) bool {
	return pt.X >= 0 && pt.X < p.width && pt.Y >= 0 && pt.Y < p.height
}

// Pixel returns the color at (x, y).
func (p *Picture) Pixel(x, y int) (Color, error) {
	if !p.InBounds(Point{X: x, Y: y}) {
		return "", &BoundsError{X: x, Y: y, Width: p.width, Height: p.height}
	}
	return p.cells[x+y*p.width], nil
}

// At returns the color at (x, y) without a bounds check.
// Callers must only pass in-bounds coordinates.
func (p *Picture) At(x, y int) Color {
	return p.cells[x+y*p.width]
}

// Draw returns a copy of the picture with the edits applied in order.
// Every edit is validated before anything is copied; if one is out of
// bounds or has an empty color, no picture is returned.
func (p *Picture) Draw(edits []Edit) (*Picture, error) {
	for _, e := range edits {
		if !p.InBounds(e.Point) {
			return nil, &BoundsError{X: e.X, Y: e.Y, Width: p.width, Height: p.height}
		}
		if e.Color == "" {
			return nil, fmt.Errorf("%w at (%d, %d)", ErrEmptyColor, e.X, e.Y)
		}
	}

	cells := make([]Color, len(p.cells))
	copy(cells, p.cells)
	for _, e := range edits {
		cells[e.X+e.Y*p.width] = e.Color
	}

	return &Picture{width: p.width, height: p.height, cells: cells}, nil
}

// Equal returns true if both pictures have the same size and cells.
func (p *Picture) Equal(other *Picture) bool {
	if p == other {
		return true
	}
	if !p.SameSize(other) {
		return false
	}
	for i, c := range p.cells {
		if other.cells[i] != c {
			return false
		}
	}
	return true
}
