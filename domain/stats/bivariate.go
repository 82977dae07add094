package stats

import (
	"benchlab/internal/errors"
)

// Data is an immutable pair of equal-length vectors. For benchmark
// analysis x carries iteration counts and y elapsed nanoseconds.
type Data struct {
	x, y []float64
}

// NewData validates the pair and wraps it without copying.
func NewData(x, y []float64) (*Data, error) {
	if len(x) != len(y) {
		return nil, errors.InvalidInput("bivariate vectors must have equal length")
	}
	if len(x) < 2 {
		return nil, errors.InvalidInput("bivariate data needs at least two points")
	}
	return &Data{x: x, y: y}, nil
}

// Len returns the number of pairs.
func (d *Data) Len() int {
	return len(d.x)
}

// X returns the x vector; treat as read-only.
func (d *Data) X() []float64 {
	return d.x
}

// Y returns the y vector; treat as read-only.
func (d *Data) Y() []float64 {
	return d.y
}
