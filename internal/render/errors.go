package render

import (
	"errors"
	"fmt"

	"github.com/san-kum/tixy/internal/grid"
)

var (
	// ErrInvalidConfig indicates a configuration rejected before the loop starts.
	ErrInvalidConfig = errors.New("render: invalid config")

	// ErrFieldEvaluation indicates the field function failed for a cell.
	ErrFieldEvaluation = errors.New("render: field evaluation failed")
)

// FieldError records the cell on which the field function panicked.
type FieldError struct {
	Frame int
	Time  float64
	Cell  grid.Cell
	Value any
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("render: field evaluation failed at frame %d (t=%.4f) cell %d (%d, %d): %v",
		e.Frame, e.Time, e.Cell.Index, e.Cell.X, e.Cell.Y, e.Value)
}

func (e *FieldError) Unwrap() []error {
	if err, ok := e.Value.(error); ok {
		return []error{ErrFieldEvaluation, err}
	}
	return []error{ErrFieldEvaluation}
}
