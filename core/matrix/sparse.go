package matrix

import (
	"fmt"
	"math"

	"github.com/james-bowman/sparse"
)

// Sparse is a labeled column-compressed (CSC) matrix. Expression count
// matrices are typically >90% zeros, so this is the default storage for the
// data slot of a communication object.
type Sparse struct {
	m    *sparse.CSC
	rows []string
	cols []string
}

// Dims returns the matrix shape.
func (s *Sparse) Dims() (r, c int) { return s.m.Dims() }

// At returns the value at row i, column j. Entries never stored are zero.
func (s *Sparse) At(i, j int) float64 { return s.m.At(i, j) }

// RowNames returns the gene identifiers.
func (s *Sparse) RowNames() []string { return s.rows }

// ColNames returns the cell identifiers.
func (s *Sparse) ColNames() []string { return s.cols }

// DoNonZero calls fn for each explicitly stored element.
func (s *Sparse) DoNonZero(fn func(i, j int, v float64)) { s.m.DoNonZero(fn) }

// ToSparse converts a dense labeled matrix to column-compressed storage.
// This is a storage-format transform only: values and labels are unchanged,
// and the result is verified element-wise against the input before being
// returned. A verification failure reports ErrStorageConversion.
func ToSparse(d *Dense) (*Sparse, error) {
	r, c := d.Dims()

	var (
		ri, ci []int
		data   []float64
	)
	for j := 0; j < c; j++ {
		for i := 0; i < r; i++ {
			if v := d.At(i, j); v != 0 || math.IsNaN(v) {
				ri = append(ri, i)
				ci = append(ci, j)
				data = append(data, v)
			}
		}
	}

	s := &Sparse{
		m:    sparse.NewCOO(r, c, ri, ci, data).ToCSC(),
		rows: append([]string(nil), d.RowNames()...),
		cols: append([]string(nil), d.ColNames()...),
	}

	if err := verifyConversion(d, s); err != nil {
		return nil, err
	}
	return s, nil
}

// verifyConversion checks that every element survived the storage transform.
func verifyConversion(d *Dense, s *Sparse) error {
	r, c := d.Dims()
	sr, sc := s.Dims()
	if sr != r || sc != c {
		return fmt.Errorf("%w: shape changed from %dx%d to %dx%d", ErrStorageConversion, r, c, sr, sc)
	}
	for j := 0; j < c; j++ {
		for i := 0; i < r; i++ {
			if !equalValue(d.At(i, j), s.At(i, j)) {
				return fmt.Errorf("%w: value at (%d,%d) changed from %v to %v",
					ErrStorageConversion, i, j, d.At(i, j), s.At(i, j))
			}
		}
	}
	return nil
}

func equalValue(a, b float64) bool {
	if math.IsNaN(a) && math.IsNaN(b) {
		return true
	}
	return a == b
}

// ToDense materializes any labeled matrix as dense storage.
func ToDense(m Matrix) *Dense {
	if d, ok := m.(*Dense); ok {
		return d.Clone()
	}
	r, c := m.Dims()
	data := make([]float64, r*c)
	if s, ok := m.(*Sparse); ok {
		s.DoNonZero(func(i, j int, v float64) {
			data[i*c+j] = v
		})
	} else {
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				data[i*c+j] = m.At(i, j)
			}
		}
	}
	d, _ := NewDense(m.RowNames(), m.ColNames(), data)
	return d
}

// Equal reports whether two labeled matrices have identical labels and
// element-wise identical values. NaN entries compare equal to NaN.
func Equal(a, b Matrix) bool {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ar != br || ac != bc {
		return false
	}
	if !equalNames(a.RowNames(), b.RowNames()) || !equalNames(a.ColNames(), b.ColNames()) {
		return false
	}
	for i := 0; i < ar; i++ {
		for j := 0; j < ac; j++ {
			if !equalValue(a.At(i, j), b.At(i, j)) {
				return false
			}
		}
	}
	return true
}

func equalNames(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
