package picture

import (
	"errors"
	"fmt"
)

// Picture errors.
var (
	// ErrOutOfBounds indicates a coordinate outside the grid.
	ErrOutOfBounds = errors.New("coordinate out of bounds")

	// ErrInvalidDimensions indicates a non-positive width or height.
	ErrInvalidDimensions = errors.New("invalid picture dimensions")

	// ErrEmptyColor indicates a cell color of "".
	ErrEmptyColor = errors.New("empty color")
)

// BoundsError reports the offending coordinate and the grid size.
type BoundsError struct {
	X, Y          int
	Width, Height int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("%s: (%d, %d) not in %dx%d", ErrOutOfBounds, e.X, e.Y, e.Width, e.Height)
}

func (e *BoundsError) Unwrap() error {
	return ErrOutOfBounds
}

// DimensionError reports the rejected dimensions.
type DimensionError struct {
	Width, Height int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("%s: %dx%d", ErrInvalidDimensions, e.Width, e.Height)
}

func (e *DimensionError) Unwrap() error {
	return ErrInvalidDimensions
}
