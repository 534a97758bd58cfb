package domain

import (
	"gonum.org/v1/gonum/mat"
)

// Field is an intensity value per grid cell: one row per longitude sample,
// one column per latitude sample. Fields are never modified after creation.
type Field struct {
	m *mat.Dense
}

// NewField wraps row-major data of the given shape.
func NewField(rows, cols int, data []float64) Field {
	return Field{m: mat.NewDense(rows, cols, data)}
}

// Dims returns the number of rows and columns.
func (f Field) Dims() (rows, cols int) {
	if f.m == nil {
		return 0, 0
	}
	return f.m.Dims()
}

// At returns the value at row i, column j.
func (f Field) At(i, j int) float64 {
	return f.m.At(i, j)
}

// Rows returns a view of rows [from, to). It panics if the bounds are
// outside the field, like slicing does.
func (f Field) Rows(from, to int) Field {
	_, cols := f.m.Dims()
	return Field{m: f.m.Slice(from, to, 0, cols).(*mat.Dense)}
}

// Range returns the smallest and largest value in the field.
func (f Field) Range() (lo, hi float64) {
	if f.m == nil {
		return 0, 0
	}
	return mat.Min(f.m), mat.Max(f.m)
}
