// Package matrix provides labeled numeric matrices for expression data.
//
// A Matrix pairs a two-dimensional float64 array with gene identifiers on the
// row axis and cell identifiers on the column axis. Two concrete
// representations satisfy the capability: Dense (gonum-backed) and Sparse
// (column-compressed). Callers that only need indexed access, labels, and
// shape should accept the Matrix interface and stay generic over storage.
package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Matrix is the capability contract shared by dense and sparse expression
// matrices: indexed numeric access, row/column labels, and shape query.
type Matrix interface {
	// Dims returns the number of rows (genes) and columns (cells).
	Dims() (r, c int)

	// At returns the value at row i, column j.
	At(i, j int) float64

	// RowNames returns the gene identifiers, one per row.
	RowNames() []string

	// ColNames returns the cell identifiers, one per column.
	ColNames() []string
}

// Dense is a labeled dense matrix backed by a gonum mat.Dense.
type Dense struct {
	m    *mat.Dense
	rows []string
	cols []string
}

// NewDense builds a labeled dense matrix from row-major data. The data length
// must equal len(rows)*len(cols).
func NewDense(rows, cols []string, data []float64) (*Dense, error) {
	if len(data) != len(rows)*len(cols) {
		return nil, fmt.Errorf("%w: %d values for %d x %d matrix", ErrShape, len(data), len(rows), len(cols))
	}
	if len(rows) == 0 || len(cols) == 0 {
		return nil, fmt.Errorf("%w: zero rows or columns", ErrShape)
	}
	return &Dense{
		m:    mat.NewDense(len(rows), len(cols), data),
		rows: append([]string(nil), rows...),
		cols: append([]string(nil), cols...),
	}, nil
}

// Dims returns the matrix shape.
func (d *Dense) Dims() (r, c int) { return d.m.Dims() }

// At returns the value at row i, column j.
func (d *Dense) At(i, j int) float64 { return d.m.At(i, j) }

// Set stores v at row i, column j.
func (d *Dense) Set(i, j int, v float64) { d.m.Set(i, j, v) }

// RowNames returns the gene identifiers.
func (d *Dense) RowNames() []string { return d.rows }

// ColNames returns the cell identifiers.
func (d *Dense) ColNames() []string { return d.cols }

// Mat exposes the backing gonum matrix for numeric routines. The labels are
// not carried; callers must not resize it.
func (d *Dense) Mat() *mat.Dense { return d.m }

// Row copies row i into a new slice.
func (d *Dense) Row(i int) []float64 {
	_, c := d.m.Dims()
	out := make([]float64, c)
	mat.Row(out, i, d.m)
	return out
}

// Col copies column j into a new slice.
func (d *Dense) Col(j int) []float64 {
	r, _ := d.m.Dims()
	out := make([]float64, r)
	mat.Col(out, j, d.m)
	return out
}

// Clone returns a deep copy.
func (d *Dense) Clone() *Dense {
	out := &Dense{
		m:    mat.DenseCopyOf(d.m),
		rows: append([]string(nil), d.rows...),
		cols: append([]string(nil), d.cols...),
	}
	return out
}

// RowIndex returns the index of the named row, or -1.
func (d *Dense) RowIndex(name string) int { return indexOf(d.rows, name) }

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}

// RowIndex returns the index of the named row in m, or -1. It works for any
// Matrix implementation.
func RowIndex(m Matrix, name string) int { return indexOf(m.RowNames(), name) }
