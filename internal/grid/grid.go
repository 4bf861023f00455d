package grid

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig indicates grid dimensions that cannot produce a canvas.
var ErrInvalidConfig = errors.New("grid: invalid config")

// Config describes a square grid of circles.
type Config struct {
	Dim       int     // cells per side
	MaxRadius float64 // largest circle radius in pixels
	Gap       float64 // spacing between neighbouring circles in pixels
}

// Cell is one grid position in row-major order.
type Cell struct {
	Index int
	X, Y  int
}

func (c Config) Validate() error {
	if c.Dim < 1 {
		return fmt.Errorf("%w: dim must be at least 1, got %d", ErrInvalidConfig, c.Dim)
	}
	if math.IsNaN(c.MaxRadius) || math.IsInf(c.MaxRadius, 0) || c.MaxRadius <= 0 {
		return fmt.Errorf("%w: max radius must be positive, got %v", ErrInvalidConfig, c.MaxRadius)
	}
	if math.IsNaN(c.Gap) || math.IsInf(c.Gap, 0) || c.Gap < 0 {
		return fmt.Errorf("%w: gap must be non-negative, got %v", ErrInvalidConfig, c.Gap)
	}
	return nil
}

// Cells returns the number of cells in the grid.
func (c Config) Cells() int {
	if c.Dim <= 0 {
		return 0
	}
	return c.Dim * c.Dim
}

// Cell maps a linear index to grid coordinates.
func (c Config) Cell(i int) Cell {
	return Cell{Index: i, X: i % c.Dim, Y: i / c.Dim}
}

// Center returns the pixel center of a cell. Circles of radius up to
// MaxRadius never overlap.
func (c Config) Center(cell Cell) (float64, float64) {
	cx := c.MaxRadius*float64(2*cell.X+1) + c.Gap*float64(cell.X)
	cy := c.MaxRadius*float64(2*cell.Y+1) + c.Gap*float64(cell.Y)
	return cx, cy
}

// Length is the side of the square canvas holding the grid.
func (c Config) Length() float64 {
	return float64(c.Dim)*(2*c.MaxRadius+c.Gap) - c.Gap
}

// Size rounds Length up to whole pixels for backends that need integers.
func (c Config) Size() int {
	l := c.Length()
	if l <= 0 {
		return 0
	}
	return int(math.Ceil(l))
}
